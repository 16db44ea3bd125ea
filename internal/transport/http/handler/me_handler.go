package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront-api/internal/domain"
	"storefront-api/internal/service"
	"storefront-api/internal/transport/http/ez"
	resp "storefront-api/internal/transport/http/response"
)

type updateMeIn struct {
	FirstName *string `json:"first_name" binding:"omitempty,max=64,personname"`
	LastName  *string `json:"last_name"  binding:"omitempty,max=64,personname"`
	Email     *string `json:"email"      binding:"omitempty,email,max=64"`
}

type changePasswordIn struct {
	CurrentPassword      string `json:"current_password"      binding:"required,max=72"`
	NewPassword          string `json:"new_password"          binding:"required,min=8,max=72,nefield=CurrentPassword"`
	PasswordConfirmation string `json:"password_confirmation" binding:"required,eqfield=NewPassword"`
}

// MeHandler 当前登录用户；必须挂在 AuthJWT 之后
type MeHandler struct{ svc *service.UserService }

func NewMeHandler(s *service.UserService) *MeHandler { return &MeHandler{svc: s} }

func (h *MeHandler) MountAPI(g *gin.RouterGroup) {
	e := ez.New(g)

	ez.RegisterAction(e, ez.Action[none, *domain.User]{
		Method: http.MethodGet,
		Path:   "/me",
		Binder: ez.BindNone,
		Key:    "user",
		Handler: func(c *gin.Context, _ *none) (*domain.User, error) {
			uid, err := ez.ActorID(c)
			if err != nil {
				return nil, err
			}
			return h.svc.FindByID(c.Request.Context(), uid)
		},
	})

	ez.RegisterAction(e, ez.Action[updateMeIn, *domain.User]{
		Method:  http.MethodPut,
		Path:    "/me",
		Binder:  ez.BindJSON,
		Message: resp.MsgUpdated,
		Key:     "user",
		Handler: func(c *gin.Context, in *updateMeIn) (*domain.User, error) {
			uid, err := ez.ActorID(c)
			if err != nil {
				return nil, err
			}
			return h.svc.Update(c.Request.Context(), uid, domain.UserPatch{
				FirstName: in.FirstName,
				LastName:  in.LastName,
				Email:     in.Email,
			})
		},
	})

	ez.RegisterAction(e, ez.Action[changePasswordIn, none]{
		Method:  http.MethodPut,
		Path:    "/me/password",
		Binder:  ez.BindJSON,
		Message: resp.MsgUpdated,
		Handler: func(c *gin.Context, in *changePasswordIn) (none, error) {
			uid, err := ez.ActorID(c)
			if err != nil {
				return none{}, err
			}
			return none{}, h.svc.ChangePassword(c.Request.Context(), uid, in.CurrentPassword, in.NewPassword)
		},
	})
}
