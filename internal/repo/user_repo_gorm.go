package repo

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"storefront-api/internal/feature/user"
)

var UserSort = SortColumns{
	"id":         {Table: "users", Name: "id"},
	"first_name": {Table: "users", Name: "first_name"},
	"last_name":  {Table: "users", Name: "last_name"},
	"email":      {Table: "users", Name: "email"},
	"created_at": {Table: "users", Name: "created_at"},
	"updated_at": {Table: "users", Name: "updated_at"},
}

const userColumns = "users.id, users.first_name, users.last_name, users.email, " +
	"users.user_role_id, COALESCE(user_roles.type, '') AS user_role, " +
	"users.created_at, users.updated_at, users.deleted_at"

// UserRepo 绑定在借出的连接或事务上，自身不开事务
type UserRepo struct{ db *gorm.DB }

func NewUserRepo(db *gorm.DB) *UserRepo { return &UserRepo{db: db} }

func (r *UserRepo) from() *gorm.DB {
	return r.db.Unscoped().Table("users").
		Joins("LEFT JOIN user_roles ON user_roles.id = users.user_role_id")
}

func (r *UserRepo) filtered(spec ListSpec) *gorm.DB {
	return spec.Filter(r.from(), "users.deleted_at", "users.first_name", "users.last_name")
}

func (r *UserRepo) Count(spec ListSpec) (int64, error) {
	var n int64
	err := r.filtered(spec).Count(&n).Error
	return n, err
}

func (r *UserRepo) FindAll(spec ListSpec) ([]user.Row, error) {
	var rows []user.Row
	err := spec.Page(r.filtered(spec).Select(userColumns)).Scan(&rows).Error
	return rows, err
}

func (r *UserRepo) take(where string, args ...any) (*user.Row, error) {
	var row user.Row
	err := r.from().Select(userColumns).Where(where, args...).Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// FindByID 不区分软删状态
func (r *UserRepo) FindByID(id uint) (*user.Row, error) {
	return r.take("users.id = ?", id)
}

func (r *UserRepo) FindActiveByID(id uint) (*user.Row, error) {
	return r.take("users.id = ? AND users.deleted_at IS NULL", id)
}

func (r *UserRepo) FindTrashedByID(id uint) (*user.Row, error) {
	return r.take("users.id = ? AND users.deleted_at IS NOT NULL", id)
}

// FindByEmailWithTrashed 唯一性检查用，包含已软删的账号
func (r *UserRepo) FindByEmailWithTrashed(email string) (*user.Row, error) {
	return r.take("users.email = ?", email)
}

// PasswordOf 只取未软删用户的密码哈希；找不到返回 ""
func (r *UserRepo) PasswordOf(id uint) (string, error) {
	var hashes []string
	err := r.db.Model(&user.UserModel{}).Where("id = ?", id).Limit(1).Pluck("password", &hashes).Error
	if err != nil || len(hashes) == 0 {
		return "", err
	}
	return hashes[0], nil
}

func (r *UserRepo) RoleID(roleType string) (uint, error) {
	var role user.RoleModel
	if err := r.db.Where("type = ?", roleType).Take(&role).Error; err != nil {
		return 0, fmt.Errorf("role %q: %w", roleType, err)
	}
	return role.ID, nil
}

func (r *UserRepo) Store(m *user.UserModel) (uint, error) {
	if err := r.db.Omit(clause.Associations).Create(m).Error; err != nil {
		return 0, err
	}
	return m.ID, nil
}

// Update 只更新未软删的行
func (r *UserRepo) Update(id uint, cols map[string]any) (int64, error) {
	res := r.db.Model(&user.UserModel{}).Where("id = ?", id).Updates(cols)
	return res.RowsAffected, res.Error
}

func (r *UserRepo) SoftDelete(id uint) (int64, error) {
	res := r.db.Where("id = ?", id).Delete(&user.UserModel{})
	return res.RowsAffected, res.Error
}

func (r *UserRepo) Restore(id uint) (int64, error) {
	res := r.db.Unscoped().Model(&user.UserModel{}).
		Where("id = ? AND deleted_at IS NOT NULL", id).
		Update("deleted_at", nil)
	return res.RowsAffected, res.Error
}
