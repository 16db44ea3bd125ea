package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront-api/internal/domain"
)

type ErrorBody struct {
	Message string              `json:"message"`
	Error   string              `json:"error"`
	Errors  []domain.FieldError `json:"errors,omitempty"`
}

// Paged 列表结果；domain.Page 实现
type Paged interface {
	Rows() any
	Meta() domain.Pagination
}

// JSON 成功信封 {message, <key>: data, pagination?}
func JSON(c *gin.Context, status int, message, key string, data any) {
	body := gin.H{"message": message}
	if p, ok := data.(Paged); ok {
		body[key] = p.Rows()
		body["pagination"] = p.Meta()
	} else if key != "" {
		body[key] = data
	}
	c.JSON(status, body)
}

// Fail 领域错误按自带状态返回；其它错误一律 500，不透出原始信息
func Fail(c *gin.Context, err error) {
	var derr *domain.Error
	if !errors.As(err, &derr) {
		_ = c.Error(err)
		Abort(c, http.StatusInternalServerError, "Something went wrong")
		return
	}
	c.AbortWithStatusJSON(derr.Status, ErrorBody{
		Message: derr.Message,
		Error:   label(derr.Status),
		Errors:  derr.Errors,
	})
}

func Abort(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, ErrorBody{Message: message, Error: label(status)})
}
