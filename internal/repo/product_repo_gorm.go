package repo

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"storefront-api/internal/feature/product"
)

var ProductSort = SortColumns{
	"id":         {Table: "products", Name: "id"},
	"title":      {Table: "products", Name: "title"},
	"slug":       {Table: "products", Name: "slug"},
	"featured":   {Table: "products", Name: "featured"},
	"created_at": {Table: "products", Name: "created_at"},
	"updated_at": {Table: "products", Name: "updated_at"},
}

const productColumns = "products.id, products.title, products.slug, products.description, " +
	"products.featured, products.active, products.category_id, categories.title AS category, " +
	"products.created_at, products.updated_at, products.deleted_at"

type ProductRepo struct{ db *gorm.DB }

func NewProductRepo(db *gorm.DB) *ProductRepo { return &ProductRepo{db: db} }

func (r *ProductRepo) from() *gorm.DB {
	return r.db.Unscoped().Table("products").
		Joins("LEFT JOIN categories ON categories.id = products.category_id")
}

func (r *ProductRepo) filtered(spec ListSpec) *gorm.DB {
	db := spec.Filter(r.from(), "products.deleted_at", "products.title", "products.description")
	if spec.Published {
		db = db.Where("products.active = ?", true)
	}
	return db
}

func (r *ProductRepo) Count(spec ListSpec) (int64, error) {
	var n int64
	err := r.filtered(spec).Count(&n).Error
	return n, err
}

func (r *ProductRepo) FindAll(spec ListSpec) ([]product.Row, error) {
	var rows []product.Row
	err := spec.Page(r.filtered(spec).Select(productColumns)).Scan(&rows).Error
	return rows, err
}

func (r *ProductRepo) take(where string, args ...any) (*product.Row, error) {
	var row product.Row
	err := r.from().Select(productColumns).Where(where, args...).Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *ProductRepo) FindByID(id uint) (*product.Row, error) {
	return r.take("products.id = ?", id)
}

func (r *ProductRepo) FindActiveByID(id uint) (*product.Row, error) {
	return r.take("products.id = ? AND products.deleted_at IS NULL", id)
}

func (r *ProductRepo) FindTrashedByID(id uint) (*product.Row, error) {
	return r.take("products.id = ? AND products.deleted_at IS NOT NULL", id)
}

func (r *ProductRepo) Attributes(id uint) ([]product.AttributeRow, error) {
	var rows []product.AttributeRow
	err := r.db.Table("product_attribute_values").
		Select("attributes.name AS title, product_attribute_values.value AS value").
		Joins("JOIN attributes ON attributes.id = product_attribute_values.attribute_id").
		Where("product_attribute_values.product_id = ?", id).
		Order("attributes.name").
		Scan(&rows).Error
	return rows, err
}

func (r *ProductRepo) Images(id uint) ([]product.ImageModel, error) {
	var rows []product.ImageModel
	err := r.db.Where("product_id = ?", id).Order("id").Find(&rows).Error
	return rows, err
}

func (r *ProductRepo) Store(m *product.ProductModel) (uint, error) {
	if err := r.db.Omit(clause.Associations).Create(m).Error; err != nil {
		return 0, err
	}
	return m.ID, nil
}

func (r *ProductRepo) Update(id uint, cols map[string]any) (int64, error) {
	res := r.db.Model(&product.ProductModel{}).Where("id = ?", id).Updates(cols)
	return res.RowsAffected, res.Error
}

func (r *ProductRepo) SoftDelete(id uint) (int64, error) {
	res := r.db.Where("id = ?", id).Delete(&product.ProductModel{})
	return res.RowsAffected, res.Error
}

func (r *ProductRepo) Restore(id uint) (int64, error) {
	res := r.db.Unscoped().Model(&product.ProductModel{}).
		Where("id = ? AND deleted_at IS NOT NULL", id).
		Update("deleted_at", nil)
	return res.RowsAffected, res.Error
}
