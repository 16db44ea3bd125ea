package admin

import "storefront-api/internal/domain"

func (r Row) ToDomain() *domain.Admin {
	return &domain.Admin{
		ID:        r.ID,
		UserID:    r.UserID,
		IsSuper:   r.IsSuper,
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Email:     r.Email,
		Role:      r.UserRole,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
		DeletedAt: r.DeletedAt,
	}
}

func Columns(p domain.AdminPatch) map[string]any {
	cols := map[string]any{}
	if p.IsSuper != nil {
		cols["is_super"] = *p.IsSuper
	}
	return cols
}
