package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront-api/internal/domain"
	"storefront-api/internal/service"
	"storefront-api/internal/transport/http/ez"
	resp "storefront-api/internal/transport/http/response"
)

type storeAdminIn struct {
	FirstName            string `json:"first_name"            binding:"required,max=64,personname"`
	LastName             string `json:"last_name"             binding:"required,max=64,personname"`
	Email                string `json:"email"                 binding:"required,email,max=64"`
	Password             string `json:"password"              binding:"required,min=8,max=72"`
	PasswordConfirmation string `json:"password_confirmation" binding:"required,eqfield=Password"`
	IsSuper              bool   `json:"is_super"`
}

type updateAdminIn struct {
	FirstName            *string `json:"first_name"            binding:"omitempty,max=64,personname"`
	LastName             *string `json:"last_name"             binding:"omitempty,max=64,personname"`
	Email                *string `json:"email"                 binding:"omitempty,email,max=64"`
	Password             *string `json:"password"              binding:"omitempty,min=8,max=72"`
	PasswordConfirmation *string `json:"password_confirmation"`
	IsSuper              *bool   `json:"is_super"`
}

// AdminHandler /admins
type AdminHandler struct{ svc *service.AdminService }

func NewAdminHandler(s *service.AdminService) *AdminHandler { return &AdminHandler{svc: s} }

func (AdminHandler) Priority() int { return 10 }

func (h *AdminHandler) MountAdmin(g *gin.RouterGroup) {
	e := ez.New(g)

	ez.RegisterAction(e, ez.Action[listQuery, *domain.Page[domain.Admin]]{
		Method: http.MethodGet,
		Path:   "/admins",
		Binder: ez.BindQuery,
		Key:    "admins",
		Handler: func(c *gin.Context, in *listQuery) (*domain.Page[domain.Admin], error) {
			return h.svc.FindAll(c.Request.Context(), in.toQuery())
		},
	})

	ez.RegisterAction(e, ez.Action[none, *domain.Admin]{
		Method: http.MethodGet,
		Path:   "/admins/:id",
		Binder: ez.BindNone,
		Key:    "admin",
		Handler: func(c *gin.Context, _ *none) (*domain.Admin, error) {
			id, err := ez.ParamID(c, "id")
			if err != nil {
				return nil, err
			}
			return h.svc.FindByID(c.Request.Context(), id)
		},
	})

	ez.RegisterAction(e, ez.Action[storeAdminIn, *domain.Admin]{
		Method:  http.MethodPost,
		Path:    "/admins",
		Binder:  ez.BindJSON,
		Status:  http.StatusCreated,
		Message: resp.MsgCreated,
		Key:     "admin",
		Handler: func(c *gin.Context, in *storeAdminIn) (*domain.Admin, error) {
			return h.svc.Store(c.Request.Context(), domain.NewAdmin{
				FirstName: in.FirstName,
				LastName:  in.LastName,
				Email:     in.Email,
				Password:  in.Password,
				IsSuper:   in.IsSuper,
			})
		},
	})

	ez.RegisterAction(e, ez.Action[updateAdminIn, *domain.Admin]{
		Method:  http.MethodPut,
		Path:    "/admins/:id",
		Binder:  ez.BindJSON,
		Message: resp.MsgUpdated,
		Key:     "admin",
		Handler: func(c *gin.Context, in *updateAdminIn) (*domain.Admin, error) {
			id, err := ez.ParamID(c, "id")
			if err != nil {
				return nil, err
			}
			if err := confirm(in.Password, in.PasswordConfirmation); err != nil {
				return nil, err
			}
			return h.svc.Update(c.Request.Context(), id, domain.AdminPatch{
				UserPatch: domain.UserPatch{
					FirstName: in.FirstName,
					LastName:  in.LastName,
					Email:     in.Email,
					Password:  in.Password,
				},
				IsSuper: in.IsSuper,
			})
		},
	})

	ez.RegisterAction(e, ez.Action[none, idOut]{
		Method:  http.MethodPut,
		Path:    "/admins/:id/restore",
		Binder:  ez.BindNone,
		Message: resp.MsgRestored,
		Key:     "admin",
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
		Path:    "/admins/:id",
		Binder:  ez.BindNone,
		Message: resp.MsgDeleted,
		Key:     "admin",
		Handler: func(c *gin.Context, _ *none) (idOut, error) {
			id, err := ez.ParamID(c, "id")
			if err != nil {
				return idOut{}, err
			}
			return idOut{ID: id}, h.svc.Delete(c.Request.Context(), id)
		},
	})
}
