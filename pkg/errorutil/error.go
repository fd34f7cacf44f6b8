package errorutil

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind 错误分类
type Kind string

const (
	KindNotFound       Kind = "NOT_FOUND"
	KindValidation     Kind = "VALIDATION_FAILED"
	KindTransientStore Kind = "STORE_UNAVAILABLE"
	KindInternal       Kind = "INTERNAL"
)

// Error 错误结构（包含可重试标记）
type Error struct {
	Kind       Kind   `json:"kind"`
	Code       int    `json:"code"`
	Message    string `json:"message"`
	Retryable  bool   `json:"retryable"`
	DevDetails string `json:"dev_details,omitempty"`
	cause      error
}

// Error 实现 error 接口
func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.cause)
	}
	return e.Message
}

// Unwrap 支持 errors.Is / errors.As
func (e *Error) Unwrap() error {
	return e.cause
}

// NotFound 资源不存在（不重试）
func NotFound(format string, args ...interface{}) *Error {
	return &Error{
		Kind:    KindNotFound,
		Code:    http.StatusNotFound,
		Message: fmt.Sprintf(format, args...),
	}
}

// Validation 参数校验失败（不重试）
func Validation(message string, cause error) *Error {
	return &Error{
		Kind:    KindValidation,
		Code:    http.StatusBadRequest,
		Message: message,
		cause:   cause,
	}
}

// TransientStore 存储暂不可用（可重试，下一次调度即为重试）
func TransientStore(op string, cause error) *Error {
	e := &Error{
		Kind:      KindTransientStore,
		Code:      http.StatusServiceUnavailable,
		Message:   fmt.Sprintf("inventory store %s failed", op),
		Retryable: true,
		cause:     cause,
	}
	if cause != nil {
		e.DevDetails = fmt.Sprintf("%+v", cause)
	}
	return e
}

// Wrap 包装错误（已是 Error 类型则直接返回）
func Wrap(err error) *Error {
	if err == nil {
		return nil
	}

	var e *Error
	if errors.As(err, &e) {
		return e
	}

	// 默认为不可重试的内部错误
	return &Error{
		Kind:       KindInternal,
		Code:       http.StatusInternalServerError,
		Message:    err.Error(),
		DevDetails: fmt.Sprintf("%+v", err),
		cause:      err,
	}
}

// KindOf 获取错误分类
func KindOf(err error) Kind {
	if err == nil {
		return ""
	}
	return Wrap(err).Kind
}

// IsNotFound 是否资源不存在
func IsNotFound(err error) bool {
	return KindOf(err) == KindNotFound
}

// IsValidation 是否校验失败
func IsValidation(err error) bool {
	return KindOf(err) == KindValidation
}

// IsRetryable 是否可重试
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}
	return Wrap(err).Retryable
}

// HTTPStatus 错误对应的 HTTP 状态码
func HTTPStatus(err error) int {
	if err == nil {
		return http.StatusOK
	}
	return Wrap(err).Code
}
