package domain

import "time"

// Admin 管理员 = admins 行 + 所属 users 行
type Admin struct {
	ID        uint       `json:"id"`
	UserID    uint       `json:"user_id"`
	IsSuper   bool       `json:"is_super"`
	FirstName string     `json:"first_name"`
	LastName  string     `json:"last_name"`
	Email     string     `json:"email"`
	Role      string     `json:"user_role"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	DeletedAt *time.Time `json:"deleted_at"`
}

type NewAdmin struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
	IsSuper   bool
}

type AdminPatch struct {
	UserPatch
	IsSuper *bool
}
