package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"storefront-api/internal/core/auth"
	"storefront-api/internal/core/server"
	"storefront-api/internal/service"
	"storefront-api/internal/transport/http/ez"
	"storefront-api/internal/transport/http/handler"
	mdw "storefront-api/internal/transport/http/middleware"
)

func NewAPIEngine(l *zap.Logger, svc *service.Services, jwter *auth.JWTer, lim Limits) *gin.Engine {
	ez.RegisterValidations()
	r := server.NewRouter(l)
	r.Use(stack(l, lim)...)

	api := r.Group("/api/v1")
	(&Registry{}).Register(handler.NewCatalogHandler(svc.Categories, svc.Products)).MountAPI(api)

	// 鉴权分组（/me 必须挂这里，才能拿到 userId）
	authed := api.Group("")
	authed.Use(mdw.AuthJWT(jwter, ""))
	(&Registry{}).Register(handler.NewMeHandler(svc.Users)).MountAPI(authed)

	return r
}
