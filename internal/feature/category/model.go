package category

import (
	"time"

	"gorm.io/gorm"

	"storefront-api/internal/domain"
)

type CategoryModel struct {
	ID    uint   `gorm:"primaryKey"`
	Title string `gorm:"size:64;not null"`

	CreatedAt time.Time      `gorm:"autoCreateTime"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime"`
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (CategoryModel) TableName() string { return "categories" }

func (m CategoryModel) ToDomain() *domain.Category {
	c := &domain.Category{
		ID:        m.ID,
		Title:     m.Title,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
	if m.DeletedAt.Valid {
		t := m.DeletedAt.Time
		c.DeletedAt = &t
	}
	return c
}
