package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront-api/internal/domain"
	"storefront-api/internal/service"
	"storefront-api/internal/transport/http/ez"
	resp "storefront-api/internal/transport/http/response"
)

type storeUserIn struct {
	FirstName            string `json:"first_name"            binding:"required,max=64,personname"`
	LastName             string `json:"last_name"             binding:"required,max=64,personname"`
	Email                string `json:"email"                 binding:"required,email,max=64"`
	Password             string `json:"password"              binding:"required,min=8,max=72"`
	PasswordConfirmation string `json:"password_confirmation" binding:"required,eqfield=Password"`
}

type updateUserIn struct {
	FirstName            *string `json:"first_name"            binding:"omitempty,max=64,personname"`
	LastName             *string `json:"last_name"             binding:"omitempty,max=64,personname"`
	Email                *string `json:"email"                 binding:"omitempty,email,max=64"`
	Password             *string `json:"password"              binding:"omitempty,min=8,max=72"`
	PasswordConfirmation *string `json:"password_confirmation"`
}

func (in updateUserIn) patch() domain.UserPatch {
	return domain.UserPatch{
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Email:     in.Email,
		Password:  in.Password,
	}
}

// UserHandler /users，管理端
type UserHandler struct{ svc *service.UserService }

func NewUserHandler(s *service.UserService) *UserHandler { return &UserHandler{svc: s} }

func (UserHandler) Priority() int { return 20 }

func (h *UserHandler) MountAdmin(g *gin.RouterGroup) {
	e := ez.New(g)

	ez.RegisterAction(e, ez.Action[listQuery, *domain.Page[domain.User]]{
		Method: http.MethodGet,
		Path:   "/users",
		Binder: ez.BindQuery,
		Key:    "users",
		Handler: func(c *gin.Context, in *listQuery) (*domain.Page[domain.User], error) {
			return h.svc.FindAll(c.Request.Context(), in.toQuery())
		},
	})

	ez.RegisterAction(e, ez.Action[none, *domain.User]{
		Method: http.MethodGet,
		Path:   "/users/:id",
		Binder: ez.BindNone,
		Key:    "user",
		Handler: func(c *gin.Context, _ *none) (*domain.User, error) {
			id, err := ez.ParamID(c, "id")
			if err != nil {
				return nil, err
			}
			return h.svc.FindByID(c.Request.Context(), id)
		},
	})

	ez.RegisterAction(e, ez.Action[storeUserIn, *domain.User]{
		Method:  http.MethodPost,
		Path:    "/users",
		Binder:  ez.BindJSON,
		Status:  http.StatusCreated,
		Message: resp.MsgCreated,
		Key:     "user",
		Handler: func(c *gin.Context, in *storeUserIn) (*domain.User, error) {
			return h.svc.Store(c.Request.Context(), domain.NewUser{
				FirstName: in.FirstName,
				LastName:  in.LastName,
				Email:     in.Email,
				Password:  in.Password,
			})
		},
	})

	ez.RegisterAction(e, ez.Action[updateUserIn, *domain.User]{
		Method:  http.MethodPut,
		Path:    "/users/:id",
		Binder:  ez.BindJSON,
		Message: resp.MsgUpdated,
		Key:     "user",
		Handler: func(c *gin.Context, in *updateUserIn) (*domain.User, error) {
			id, err := ez.ParamID(c, "id")
			if err != nil {
				return nil, err
			}
			if err := confirm(in.Password, in.PasswordConfirmation); err != nil {
				return nil, err
			}
			return h.svc.Update(c.Request.Context(), id, in.patch())
		},
	})

	ez.RegisterAction(e, ez.Action[none, idOut]{
		Method:  http.MethodPut,
		Path:    "/users/:id/restore",
		Binder:  ez.BindNone,
		Message: resp.MsgRestored,
		Key:     "user",
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
		Path:    "/users/:id",
		Binder:  ez.BindNone,
		Message: resp.MsgDeleted,
		Key:     "user",
		Handler: func(c *gin.Context, _ *none) (idOut, error) {
			id, err := ez.ParamID(c, "id")
			if err != nil {
				return idOut{}, err
			}
			actor, err := ez.ActorID(c)
			if err != nil {
				return idOut{}, err
			}
			return idOut{ID: id}, h.svc.Delete(c.Request.Context(), id, actor)
		},
	})
}
