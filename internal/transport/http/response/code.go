package response

import "net/http"

// 成功信封里的 message
const (
	MsgOK       = "Ok"
	MsgCreated  = "Created"
	MsgUpdated  = "Updated"
	MsgDeleted  = "Deleted"
	MsgRestored = "Restored"
)

// errorLabel 错误信封里的 error 字段
var errorLabel = map[int]string{
	http.StatusBadRequest:            "Bad request",
	http.StatusUnauthorized:          "Unauthorized",
	http.StatusForbidden:             "Forbidden",
	http.StatusNotFound:              "Not found",
	http.StatusConflict:              "Conflict",
	http.StatusRequestEntityTooLarge: "Payload too large",
	http.StatusTooManyRequests:       "Too many requests",
	http.StatusInternalServerError:   "Internal server error",
	http.StatusServiceUnavailable:    "Service unavailable",
	http.StatusGatewayTimeout:        "Gateway timeout",
}

func label(status int) string {
	if l, ok := errorLabel[status]; ok {
		return l
	}
	return http.StatusText(status)
}
