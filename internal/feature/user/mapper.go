package user

import "storefront-api/internal/domain"

func (r Row) ToDomain() *domain.User {
	return &domain.User{
		ID:        r.ID,
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Email:     r.Email,
		RoleID:    r.UserRoleID,
		Role:      r.UserRole,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
		DeletedAt: r.DeletedAt,
	}
}

func NewModel(in domain.NewUser, hash string, roleID uint) *UserModel {
	return &UserModel{
		FirstName:  in.FirstName,
		LastName:   in.LastName,
		Email:      in.Email,
		Password:   hash,
		UserRoleID: roleID,
	}
}

// Columns 只保留非 nil 字段；密码由调用方先哈希，hash 为空表示不改
func Columns(p domain.UserPatch, hash string) map[string]any {
	cols := map[string]any{}
	if p.FirstName != nil {
		cols["first_name"] = *p.FirstName
	}
	if p.LastName != nil {
		cols["last_name"] = *p.LastName
	}
	if p.Email != nil {
		cols["email"] = *p.Email
	}
	if hash != "" {
		cols["password"] = hash
	}
	return cols
}
