package product

import "storefront-api/internal/domain"

func (r Row) ToDomain() *domain.Product {
	return &domain.Product{
		ID:          r.ID,
		Title:       r.Title,
		Slug:        r.Slug,
		Description: r.Description,
		Featured:    r.Featured,
		Active:      r.Active,
		CategoryID:  r.CategoryID,
		Category:    r.Category,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
		DeletedAt:   r.DeletedAt,
	}
}

func NewModel(in domain.NewProduct) *ProductModel {
	return &ProductModel{
		Title:       in.Title,
		Slug:        in.Slug,
		Description: in.Description,
		Featured:    in.Featured,
		Active:      in.Active,
		CategoryID:  in.CategoryID,
	}
}

func Columns(p domain.ProductPatch) map[string]any {
	cols := map[string]any{}
	if p.Title != nil {
		cols["title"] = *p.Title
	}
	if p.Slug != nil {
		cols["slug"] = *p.Slug
	}
	if p.Description != nil {
		cols["description"] = *p.Description
	}
	if p.Featured != nil {
		cols["featured"] = *p.Featured
	}
	if p.Active != nil {
		cols["active"] = *p.Active
	}
	if p.CategoryID != nil {
		cols["category_id"] = *p.CategoryID
	}
	return cols
}

func Attributes(rows []AttributeRow) []domain.ProductAttribute {
	out := make([]domain.ProductAttribute, 0, len(rows))
	for _, r := range rows {
		out = append(out, domain.ProductAttribute{Title: r.Title, Value: r.Value})
	}
	return out
}

func Images(rows []ImageModel) []domain.ProductImage {
	out := make([]domain.ProductImage, 0, len(rows))
	for _, r := range rows {
		out = append(out, domain.ProductImage{ID: r.ID, URL: r.URL, ProductID: r.ProductID, VariantID: r.VariantID})
	}
	return out
}
