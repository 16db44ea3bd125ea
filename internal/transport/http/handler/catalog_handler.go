package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront-api/internal/domain"
	"storefront-api/internal/repo"
	"storefront-api/internal/service"
	"storefront-api/internal/transport/http/ez"
)

// catalogQuery 前台列表不开放 status
type catalogQuery struct {
	Page   int    `form:"page"   binding:"omitempty,min=1"`
	Size   int    `form:"size"   binding:"omitempty,min=1"`
	Skip   int    `form:"skip"   binding:"omitempty,min=0"`
	Limit  int    `form:"limit"  binding:"omitempty,min=1"`
	Sort   string `form:"sort"   binding:"omitempty,max=32"`
	Search string `form:"search" binding:"omitempty,searchterm"`
}

func (q catalogQuery) toQuery() domain.ListQuery {
	return domain.ListQuery{
		Page:   q.Page,
		Size:   q.Size,
		Skip:   q.Skip,
		Limit:  q.Limit,
		Sort:   q.Sort,
		Search: q.Search,
		Status: repo.StatusActive,
	}
}

// CatalogHandler 前台只读：未删除的分类，上架的商品
type CatalogHandler struct {
	categories *service.CategoryService
	products   *service.ProductService
}

func NewCatalogHandler(c *service.CategoryService, p *service.ProductService) *CatalogHandler {
	return &CatalogHandler{categories: c, products: p}
}

func (h *CatalogHandler) MountAPI(g *gin.RouterGroup) {
	e := ez.New(g)

	ez.RegisterAction(e, ez.Action[catalogQuery, *domain.Page[domain.Category]]{
		Method: http.MethodGet,
		Path:   "/categories",
		Binder: ez.BindQuery,
		Key:    "categories",
		Handler: func(c *gin.Context, in *catalogQuery) (*domain.Page[domain.Category], error) {
			return h.categories.FindAll(c.Request.Context(), in.toQuery())
		},
	})

	ez.RegisterAction(e, ez.Action[none, *domain.Category]{
		Method: http.MethodGet,
		Path:   "/categories/:id",
		Binder: ez.BindNone,
		Key:    "category",
		Handler: func(c *gin.Context, _ *none) (*domain.Category, error) {
			id, err := ez.ParamID(c, "id")
			if err != nil {
				return nil, err
			}
			return h.categories.FindActive(c.Request.Context(), id)
		},
	})

	ez.RegisterAction(e, ez.Action[catalogQuery, *domain.Page[domain.Product]]{
		Method: http.MethodGet,
		Path:   "/products",
		Binder: ez.BindQuery,
		Key:    "products",
		Handler: func(c *gin.Context, in *catalogQuery) (*domain.Page[domain.Product], error) {
			q := in.toQuery()
			q.Published = true
			return h.products.FindAll(c.Request.Context(), q)
		},
	})

	ez.RegisterAction(e, ez.Action[none, *domain.Product]{
		Method: http.MethodGet,
		Path:   "/products/:id",
		Binder: ez.BindNone,
		Key:    "product",
		Handler: func(c *gin.Context, _ *none) (*domain.Product, error) {
			id, err := ez.ParamID(c, "id")
			if err != nil {
				return nil, err
			}
			return h.products.FindPublished(c.Request.Context(), id)
		},
	})
}
