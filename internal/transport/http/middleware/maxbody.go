package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	resp "storefront-api/internal/transport/http/response"
)

// MaxBodyBytes 超过 n 字节时读 body 报错；Content-Length 已知超限的直接拒绝
func MaxBodyBytes(n int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.ContentLength > n {
			resp.Abort(c, http.StatusRequestEntityTooLarge, "Request body too large")
			return
		}
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, n)
		c.Next()
	}
}
