package domain

import "time"

type Category struct {
	ID        uint       `json:"id"`
	Title     string     `json:"title"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	DeletedAt *time.Time `json:"deleted_at"`
}

type Product struct {
	ID          uint               `json:"id"`
	Title       string             `json:"title"`
	Slug        string             `json:"slug"`
	Description string             `json:"description"`
	Featured    bool               `json:"featured"`
	Active      bool               `json:"active"`
	CategoryID  *uint              `json:"category_id"`
	Category    *string            `json:"category"`
	Attributes  []ProductAttribute `json:"attributes,omitempty"`
	Images      []ProductImage     `json:"images,omitempty"`
	CreatedAt   time.Time          `json:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at"`
	DeletedAt   *time.Time         `json:"deleted_at"`
}

type ProductAttribute struct {
	Title string `json:"title"`
	Value string `json:"value"`
}

type ProductImage struct {
	ID        uint   `json:"id"`
	URL       string `json:"url"`
	ProductID uint   `json:"product_id"`
	VariantID *uint  `json:"variant_id"`
}

type NewProduct struct {
	Title       string
	Slug        string
	Description string
	Featured    bool
	Active      bool
	CategoryID  *uint
}

type ProductPatch struct {
	Title       *string
	Slug        *string
	Description *string
	Featured    *bool
	Active      *bool
	CategoryID  *uint
}
