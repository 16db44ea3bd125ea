package product

import (
	"time"

	"gorm.io/gorm"

	"storefront-api/internal/feature/category"
)

type ProductModel struct {
	ID          uint                    `gorm:"primaryKey"`
	Title       string                  `gorm:"size:128;not null"`
	Slug        string                  `gorm:"uniqueIndex;size:128;not null"`
	Description string                  `gorm:"type:text"`
	Featured    bool                    `gorm:"not null"`
	Active      bool                    `gorm:"not null"`
	CategoryID  *uint                   `gorm:"index"`
	Category    *category.CategoryModel `gorm:"foreignKey:CategoryID;constraint:OnDelete:SET NULL"`

	CreatedAt time.Time      `gorm:"autoCreateTime"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime"`
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (ProductModel) TableName() string { return "products" }

type AttributeModel struct {
	ID   uint   `gorm:"primaryKey"`
	Name string `gorm:"uniqueIndex;size:64;not null"`
}

func (AttributeModel) TableName() string { return "attributes" }

type AttributeValueModel struct {
	ID          uint   `gorm:"primaryKey"`
	ProductID   uint   `gorm:"index;not null"`
	AttributeID uint   `gorm:"index;not null"`
	Value       string `gorm:"size:128;not null"`
}

func (AttributeValueModel) TableName() string { return "product_attribute_values" }

type ImageModel struct {
	ID        uint   `gorm:"primaryKey"`
	ProductID uint   `gorm:"index;not null"`
	VariantID *uint  `gorm:"index"`
	URL       string `gorm:"size:255;not null"`
}

func (ImageModel) TableName() string { return "product_images" }

// Row products 左连 categories
type Row struct {
	ID          uint
	Title       string
	Slug        string
	Description string
	Featured    bool
	Active      bool
	CategoryID  *uint
	Category    *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   *time.Time
}

type AttributeRow struct {
	Title string
	Value string
}
