package ez

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"storefront-api/internal/domain"
	resp "storefront-api/internal/transport/http/response"
)

// 绑定方式
type Binder string

const (
	BindJSON  Binder = "json"  // 从 JSON 绑定
	BindQuery Binder = "query" // 从 URL ?a=b 绑定
	BindNone  Binder = "none"  // 不绑定，自己从 c.Param 取
)

type EZ struct{ g *gin.RouterGroup }

func New(g *gin.RouterGroup) EZ { return EZ{g: g} }

// Action I 入参，O 出参；成功时 O 放在响应的 Key 字段下
type Action[I any, O any] struct {
	Method  string // "GET" | "POST" | "PUT" | "DELETE"
	Path    string // 例："/admins/:id/restore"
	Binder  Binder
	Status  int    // 成功状态码，默认 200
	Message string // 默认 "Ok"
	Key     string
	Handler func(c *gin.Context, in *I) (O, error)
}

// RegisterAction 绑定 -> 校验 -> 执行 -> 统一响应
func RegisterAction[I any, O any](e EZ, a Action[I, O]) {
	status, message := a.Status, a.Message
	if status == 0 {
		status = http.StatusOK
	}
	if message == "" {
		message = resp.MsgOK
	}

	h := func(c *gin.Context) {
		var in I
		var bindErr error
		switch a.Binder {
		case BindJSON:
			bindErr = c.ShouldBindJSON(&in)
		case BindQuery:
			bindErr = c.ShouldBindQuery(&in)
		default: // BindNone: 不绑定
		}
		if bindErr != nil {
			resp.Fail(c, BindError(bindErr))
			return
		}

		out, err := a.Handler(c, &in)
		if err != nil {
			resp.Fail(c, err)
			return
		}
		resp.JSON(c, status, message, a.Key, out)
	}

	switch strings.ToUpper(a.Method) {
	case http.MethodGet:
		e.g.GET(a.Path, h)
	case http.MethodPut:
		e.g.PUT(a.Path, h)
	case http.MethodDelete:
		e.g.DELETE(a.Path, h)
	default: // 默认 POST
		e.g.POST(a.Path, h)
	}
}

// BindError 校验失败按字段列出；其余绑定错误（JSON 语法、类型不符）只给通用提示
func BindError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return domain.BadRequest("")
	}
	fields := make([]domain.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, domain.FieldError{Field: fe.Field(), Message: describe(fe)})
	}
	return domain.BadRequest("", fields...)
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email"
	case "min":
		return "must be at least " + fe.Param()
	case "max":
		return "must be at most " + fe.Param()
	case "oneof":
		return "must be one of " + fe.Param()
	case "eqfield":
		return "does not match"
	case "nefield":
		return "must be different"
	case "personname":
		return "may only contain letters, spaces and ' -"
	case "slug":
		return "may only contain lowercase letters, digits and single hyphens"
	case "searchterm":
		return "may only contain letters, spaces and . ' -"
	default:
		return "is not valid"
	}
}

// ParamID 路径参数必须是正整数
func ParamID(c *gin.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, domain.BadRequest("", domain.FieldError{Field: name, Message: "must be a positive integer"})
	}
	return uint(id), nil
}

// ActorID AuthJWT 写入的当前用户
func ActorID(c *gin.Context) (uint, error) {
	id, err := strconv.ParseUint(c.GetString("userId"), 10, 64)
	if err != nil || id == 0 {
		return 0, domain.Unauthorized("Unauthorized")
	}
	return uint(id), nil
}
