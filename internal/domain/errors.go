package domain

import (
	"fmt"
	"net/http"
)

type Kind string

const (
	KindNotFound    Kind = "NOT_FOUND"
	KindEmailTaken  Kind = "EMAIL_ALREADY_TAKEN"
	KindBadRequest  Kind = "BAD_REQUEST"
	KindAuth        Kind = "UNAUTHORIZED"
	KindInternal    Kind = "INTERNAL_SERVER_ERROR"
	KindUnavailable Kind = "SERVICE_UNAVAILABLE"
)

// FieldError 单个字段的校验失败
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error 带 HTTP 状态的领域错误；Message 可以直接返回给调用方，cause 不可以
type Error struct {
	Kind    Kind
	Status  int
	Message string
	Errors  []FieldError
	cause   error
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.cause }

func NotFound(resource string) *Error {
	return &Error{
		Kind:    KindNotFound,
		Status:  http.StatusNotFound,
		Message: fmt.Sprintf("The %s was not found", resource),
	}
}

func EmailTaken(email string) *Error {
	return &Error{
		Kind:    KindEmailTaken,
		Status:  http.StatusConflict,
		Message: fmt.Sprintf("The email %s is already taken", email),
	}
}

func BadRequest(message string, fields ...FieldError) *Error {
	if message == "" {
		message = "The request data is not valid"
	}
	return &Error{
		Kind:    KindBadRequest,
		Status:  http.StatusBadRequest,
		Message: message,
		Errors:  fields,
	}
}

func Unauthorized(message string) *Error {
	return &Error{Kind: KindAuth, Status: http.StatusUnauthorized, Message: message}
}

func Internal(message string, cause error) *Error {
	return &Error{
		Kind:    KindInternal,
		Status:  http.StatusInternalServerError,
		Message: message,
		cause:   cause,
	}
}

// NotModified 预检通过但写入影响行数不是 1
func NotModified(resource, action string) *Error {
	return Internal(fmt.Sprintf("The %s was not %s", resource, action), nil)
}

func Unavailable(message string, cause error) *Error {
	return &Error{
		Kind:    KindUnavailable,
		Status:  http.StatusServiceUnavailable,
		Message: message,
		cause:   cause,
	}
}
