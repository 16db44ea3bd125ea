package user

import (
	"time"

	"gorm.io/gorm"
)

const (
	RoleAdmin    = "admin"
	RoleCustomer = "customer"
)

type RoleModel struct {
	ID   uint   `gorm:"primaryKey"`
	Type string `gorm:"uniqueIndex;size:16;not null"`
}

func (RoleModel) TableName() string { return "user_roles" }

type UserModel struct {
	ID         uint   `gorm:"primaryKey"`
	FirstName  string `gorm:"size:64;not null"`
	LastName   string `gorm:"size:64;not null"`
	Email      string `gorm:"uniqueIndex;size:64;not null"`
	Password   string `gorm:"size:100;not null"`
	UserRoleID uint   `gorm:"not null;index"`

	CreatedAt time.Time      `gorm:"autoCreateTime"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime"`
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (UserModel) TableName() string { return "users" }

// Row users 关联 user_roles 的读模型；Unscoped 查询时 deleted_at 可能非空，不含密码哈希
type Row struct {
	ID         uint
	FirstName  string
	LastName   string
	Email      string
	UserRoleID uint
	UserRole   string
	CreatedAt  time.Time
	UpdatedAt  time.Time
	DeletedAt  *time.Time
}
