package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront-api/internal/domain"
	"storefront-api/internal/service"
	"storefront-api/internal/transport/http/ez"
	resp "storefront-api/internal/transport/http/response"
)

type storeProductIn struct {
	Title       string `json:"title"       binding:"required,max=128"`
	Slug        string `json:"slug"        binding:"required,max=128,slug"`
	Description string `json:"description" binding:"max=4096"`
	Featured    bool   `json:"featured"`
	Active      bool   `json:"active"`
	CategoryID  *uint  `json:"category_id" binding:"omitempty,min=1"`
}

type updateProductIn struct {
	Title       *string `json:"title"       binding:"omitempty,min=1,max=128"`
	Slug        *string `json:"slug"        binding:"omitempty,max=128,slug"`
	Description *string `json:"description" binding:"omitempty,max=4096"`
	Featured    *bool   `json:"featured"`
	Active      *bool   `json:"active"`
	CategoryID  *uint   `json:"category_id" binding:"omitempty,min=1"`
}

// ProductHandler /products，管理端
type ProductHandler struct{ svc *service.ProductService }

func NewProductHandler(s *service.ProductService) *ProductHandler {
	return &ProductHandler{svc: s}
}

func (ProductHandler) Priority() int { return 40 }

func (h *ProductHandler) MountAdmin(g *gin.RouterGroup) {
	e := ez.New(g)

	ez.RegisterAction(e, ez.Action[listQuery, *domain.Page[domain.Product]]{
		Method: http.MethodGet,
		Path:   "/products",
		Binder: ez.BindQuery,
		Key:    "products",
		Handler: func(c *gin.Context, in *listQuery) (*domain.Page[domain.Product], error) {
			return h.svc.FindAll(c.Request.Context(), in.toQuery())
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
			return h.svc.FindByID(c.Request.Context(), id)
		},
	})

	ez.RegisterAction(e, ez.Action[storeProductIn, *domain.Product]{
		Method:  http.MethodPost,
		Path:    "/products",
		Binder:  ez.BindJSON,
		Status:  http.StatusCreated,
		Message: resp.MsgCreated,
		Key:     "product",
		Handler: func(c *gin.Context, in *storeProductIn) (*domain.Product, error) {
			return h.svc.Store(c.Request.Context(), domain.NewProduct{
				Title:       in.Title,
				Slug:        in.Slug,
				Description: in.Description,
				Featured:    in.Featured,
				Active:      in.Active,
				CategoryID:  in.CategoryID,
			})
		},
	})

	ez.RegisterAction(e, ez.Action[updateProductIn, *domain.Product]{
		Method:  http.MethodPut,
		Path:    "/products/:id",
		Binder:  ez.BindJSON,
		Message: resp.MsgUpdated,
		Key:     "product",
		Handler: func(c *gin.Context, in *updateProductIn) (*domain.Product, error) {
			id, err := ez.ParamID(c, "id")
			if err != nil {
				return nil, err
			}
			return h.svc.Update(c.Request.Context(), id, domain.ProductPatch{
				Title:       in.Title,
				Slug:        in.Slug,
				Description: in.Description,
				Featured:    in.Featured,
				Active:      in.Active,
				CategoryID:  in.CategoryID,
			})
		},
	})

	ez.RegisterAction(e, ez.Action[none, idOut]{
		Method:  http.MethodPut,
		Path:    "/products/:id/restore",
		Binder:  ez.BindNone,
		Message: resp.MsgRestored,
		Key:     "product",
		Handler: func(c *gin.Context, _ *none) (idOut, error) {
			id, err := ez.ParamID(c, "id")
			if err != nil {
				return idOut{}, err
			}
			return idOut{ID: id}, h.svc.Restore(c.Request.Context(), id)
		},
	})

	ez.RegisterAction(e, ez.Action[none, idOut]{
		Method:  http.MethodDelete,
		Path:    "/products/:id",
		Binder:  ez.BindNone,
		Message: resp.MsgDeleted,
		Key:     "product",
		Handler: func(c *gin.Context, _ *none) (idOut, error) {
			id, err := ez.ParamID(c, "id")
			if err != nil {
				return idOut{}, err
			}
			return idOut{ID: id}, h.svc.Delete(c.Request.Context(), id)
		},
	})
}
