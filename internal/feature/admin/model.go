package admin

import (
	"time"

	"storefront-api/internal/feature/user"
)

// AdminModel 软删状态记在所属 users 行上
type AdminModel struct {
	ID      uint            `gorm:"primaryKey"`
	UserID  uint            `gorm:"uniqueIndex;not null"`
	User    *user.UserModel `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	IsSuper bool            `gorm:"not null"`

	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (AdminModel) TableName() string { return "admins" }

type Row struct {
	ID        uint
	UserID    uint
	IsSuper   bool
	FirstName string
	LastName  string
	Email     string
	UserRole  string
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time
}
