// internal/transport/http/router/admin.go
package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"storefront-api/internal/core/auth"
	"storefront-api/internal/core/server"
	"storefront-api/internal/feature/user"
	"storefront-api/internal/service"
	"storefront-api/internal/transport/http/ez"
	"storefront-api/internal/transport/http/handler"
	mdw "storefront-api/internal/transport/http/middleware"
)

func NewAdminEngine(l *zap.Logger, svc *service.Services, jwter *auth.JWTer, lim Limits) *gin.Engine {
	ez.RegisterValidations()
	r := server.NewRouter(l)
	r.Use(stack(l, lim)...)

	// 管理端 v1（统一要求 admin 角色）
	admin := r.Group("/admin/v1")
	admin.Use(mdw.AuthJWT(jwter, user.RoleAdmin))

	reg := &Registry{}
	reg.Register(
		handler.NewAdminHandler(svc.Admins),
		handler.NewUserHandler(svc.Users),
		handler.NewCategoryHandler(svc.Categories),
		handler.NewProductHandler(svc.Products),
	).MountAdmin(admin)

	return r
}
