package repo

import (
	"errors"

	"gorm.io/gorm"

	"storefront-api/internal/feature/category"
)

var CategorySort = SortColumns{
	"id":         {Table: "categories", Name: "id"},
	"title":      {Table: "categories", Name: "title"},
	"created_at": {Table: "categories", Name: "created_at"},
	"updated_at": {Table: "categories", Name: "updated_at"},
}

type CategoryRepo struct{ db *gorm.DB }

func NewCategoryRepo(db *gorm.DB) *CategoryRepo { return &CategoryRepo{db: db} }

func (r *CategoryRepo) filtered(spec ListSpec) *gorm.DB {
	return spec.Filter(r.db.Unscoped().Model(&category.CategoryModel{}), "categories.deleted_at", "categories.title")
}

func (r *CategoryRepo) Count(spec ListSpec) (int64, error) {
	var n int64
	err := r.filtered(spec).Count(&n).Error
	return n, err
}

func (r *CategoryRepo) FindAll(spec ListSpec) ([]category.CategoryModel, error) {
	var out []category.CategoryModel
	err := spec.Page(r.filtered(spec)).Find(&out).Error
	return out, err
}

func (r *CategoryRepo) take(where string, args ...any) (*category.CategoryModel, error) {
	var m category.CategoryModel
	err := r.db.Unscoped().Where(where, args...).Take(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *CategoryRepo) FindByID(id uint) (*category.CategoryModel, error) {
	return r.take("id = ?", id)
}

func (r *CategoryRepo) FindActiveByID(id uint) (*category.CategoryModel, error) {
	return r.take("id = ? AND deleted_at IS NULL", id)
}

func (r *CategoryRepo) FindTrashedByID(id uint) (*category.CategoryModel, error) {
	return r.take("id = ? AND deleted_at IS NOT NULL", id)
}

func (r *CategoryRepo) Store(m *category.CategoryModel) (uint, error) {
	if err := r.db.Create(m).Error; err != nil {
		return 0, err
	}
	return m.ID, nil
}

func (r *CategoryRepo) Update(id uint, cols map[string]any) (int64, error) {
	res := r.db.Model(&category.CategoryModel{}).Where("id = ?", id).Updates(cols)
	return res.RowsAffected, res.Error
}

func (r *CategoryRepo) SoftDelete(id uint) (int64, error) {
	res := r.db.Where("id = ?", id).Delete(&category.CategoryModel{})
	return res.RowsAffected, res.Error
}

func (r *CategoryRepo) Restore(id uint) (int64, error) {
	res := r.db.Unscoped().Model(&category.CategoryModel{}).
		Where("id = ? AND deleted_at IS NOT NULL", id).
		Update("deleted_at", nil)
	return res.RowsAffected, res.Error
}
