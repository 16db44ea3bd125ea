package repo

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"storefront-api/internal/feature/admin"
	"storefront-api/internal/feature/user"
)

var AdminSort = SortColumns{
	"id":         {Table: "admins", Name: "id"},
	"is_super":   {Table: "admins", Name: "is_super"},
	"first_name": {Table: "users", Name: "first_name"},
	"last_name":  {Table: "users", Name: "last_name"},
	"email":      {Table: "users", Name: "email"},
	"created_at": {Table: "admins", Name: "created_at"},
}

const adminColumns = "admins.id, admins.user_id, admins.is_super, users.first_name, users.last_name, " +
	"users.email, COALESCE(user_roles.type, '') AS user_role, " +
	"admins.created_at, admins.updated_at, users.deleted_at"

// AdminRepo 管理员的启用/禁用落在 users.deleted_at
type AdminRepo struct{ db *gorm.DB }

func NewAdminRepo(db *gorm.DB) *AdminRepo { return &AdminRepo{db: db} }

func (r *AdminRepo) from() *gorm.DB {
	return r.db.Unscoped().Table("admins").
		Joins("JOIN users ON users.id = admins.user_id").
		Joins("LEFT JOIN user_roles ON user_roles.id = users.user_role_id")
}

func (r *AdminRepo) filtered(spec ListSpec) *gorm.DB {
	return spec.Filter(r.from(), "users.deleted_at", "users.first_name", "users.last_name")
}

func (r *AdminRepo) Count(spec ListSpec) (int64, error) {
	var n int64
	err := r.filtered(spec).Count(&n).Error
	return n, err
}

func (r *AdminRepo) FindAll(spec ListSpec) ([]admin.Row, error) {
	var rows []admin.Row
	err := spec.Page(r.filtered(spec).Select(adminColumns)).Scan(&rows).Error
	return rows, err
}

func (r *AdminRepo) take(where string, args ...any) (*admin.Row, error) {
	var row admin.Row
	err := r.from().Select(adminColumns).Where(where, args...).Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *AdminRepo) FindByID(id uint) (*admin.Row, error) {
	return r.take("admins.id = ?", id)
}

func (r *AdminRepo) FindActiveByID(id uint) (*admin.Row, error) {
	return r.take("admins.id = ? AND users.deleted_at IS NULL", id)
}

func (r *AdminRepo) FindTrashedByID(id uint) (*admin.Row, error) {
	return r.take("admins.id = ? AND users.deleted_at IS NOT NULL", id)
}

func (r *AdminRepo) Store(m *admin.AdminModel) (uint, error) {
	if err := r.db.Omit(clause.Associations).Create(m).Error; err != nil {
		return 0, err
	}
	return m.ID, nil
}

func (r *AdminRepo) Update(id uint, cols map[string]any) (int64, error) {
	res := r.db.Model(&admin.AdminModel{}).Where("id = ?", id).Updates(cols)
	return res.RowsAffected, res.Error
}

func (r *AdminRepo) userOf(id uint) *gorm.DB {
	return r.db.Model(&admin.AdminModel{}).Select("user_id").Where("id = ?", id)
}

func (r *AdminRepo) SoftDelete(id uint) (int64, error) {
	res := r.db.Where("id IN (?)", r.userOf(id)).Delete(&user.UserModel{})
	return res.RowsAffected, res.Error
}

func (r *AdminRepo) Restore(id uint) (int64, error) {
	res := r.db.Unscoped().Model(&user.UserModel{}).
		Where("id IN (?) AND deleted_at IS NOT NULL", r.userOf(id)).
		Update("deleted_at", nil)
	return res.RowsAffected, res.Error
}
