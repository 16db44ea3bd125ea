package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront-api/internal/domain"
	"storefront-api/internal/service"
	"storefront-api/internal/transport/http/ez"
	resp "storefront-api/internal/transport/http/response"
)

type storeCategoryIn struct {
	Title string `json:"title" binding:"required,max=64"`
}

type updateCategoryIn struct {
	Title *string `json:"title" binding:"omitempty,min=1,max=64"`
}

// CategoryHandler /categories，管理端
type CategoryHandler struct{ svc *service.CategoryService }

func NewCategoryHandler(s *service.CategoryService) *CategoryHandler {
	return &CategoryHandler{svc: s}
}

func (CategoryHandler) Priority() int { return 30 }

func (h *CategoryHandler) MountAdmin(g *gin.RouterGroup) {
	e := ez.New(g)

	ez.RegisterAction(e, ez.Action[listQuery, *domain.Page[domain.Category]]{
		Method: http.MethodGet,
		Path:   "/categories",
		Binder: ez.BindQuery,
		Key:    "categories",
		Handler: func(c *gin.Context, in *listQuery) (*domain.Page[domain.Category], error) {
			return h.svc.FindAll(c.Request.Context(), in.toQuery())
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
			return h.svc.FindByID(c.Request.Context(), id)
		},
	})

	ez.RegisterAction(e, ez.Action[storeCategoryIn, *domain.Category]{
		Method:  http.MethodPost,
		Path:    "/categories",
		Binder:  ez.BindJSON,
		Status:  http.StatusCreated,
		Message: resp.MsgCreated,
		Key:     "category",
		Handler: func(c *gin.Context, in *storeCategoryIn) (*domain.Category, error) {
			return h.svc.Store(c.Request.Context(), in.Title)
		},
	})

	ez.RegisterAction(e, ez.Action[updateCategoryIn, *domain.Category]{
		Method:  http.MethodPut,
		Path:    "/categories/:id",
		Binder:  ez.BindJSON,
		Message: resp.MsgUpdated,
		Key:     "category",
		Handler: func(c *gin.Context, in *updateCategoryIn) (*domain.Category, error) {
			id, err := ez.ParamID(c, "id")
			if err != nil {
				return nil, err
			}
			return h.svc.Update(c.Request.Context(), id, in.Title)
		},
	})

	ez.RegisterAction(e, ez.Action[none, idOut]{
		Method:  http.MethodPut,
		Path:    "/categories/:id/restore",
		Binder:  ez.BindNone,
		Message: resp.MsgRestored,
		Key:     "category",
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
		Path:    "/categories/:id",
		Binder:  ez.BindNone,
		Message: resp.MsgDeleted,
		Key:     "category",
		Handler: func(c *gin.Context, _ *none) (idOut, error) {
			id, err := ez.ParamID(c, "id")
			if err != nil {
				return idOut{}, err
			}
			return idOut{ID: id}, h.svc.Delete(c.Request.Context(), id)
		},
	})
}
