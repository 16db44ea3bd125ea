package domain

import "time"

type User struct {
	ID        uint       `json:"id"`
	FirstName string     `json:"first_name"`
	LastName  string     `json:"last_name"`
	Email     string     `json:"email"`
	RoleID    uint       `json:"user_role_id"`
	Role      string     `json:"user_role"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	DeletedAt *time.Time `json:"deleted_at"`
}

type NewUser struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
}

// UserPatch nil 字段不更新
type UserPatch struct {
	FirstName *string
	LastName  *string
	Email     *string
	Password  *string
}
