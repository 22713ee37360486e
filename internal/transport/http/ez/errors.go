package ez

import (
	"errors"
	"net/http"

	"go-task-manager/internal/domain"
)

// AErr HTTP 层错误，Code 即响应状态码
type AErr struct {
	Code int
	Msg  string
	Err  error
}

func (e *AErr) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "action error"
}

func (e *AErr) Unwrap() error { return e.Err }

func BadRequest(msg string) error   { return &AErr{Code: http.StatusBadRequest, Msg: msg} }
func Unauthorized(msg string) error { return &AErr{Code: http.StatusUnauthorized, Msg: msg} }
func Forbidden(msg string) error    { return &AErr{Code: http.StatusForbidden, Msg: msg} }
func NotFound(msg string) error     { return &AErr{Code: http.StatusNotFound, Msg: msg} }
func Internal(msg string, err error) error {
	return &AErr{Code: http.StatusInternalServerError, Msg: msg, Err: err}
}

// Resolve 把仓储/用例返回的 Result 映射成 (值, HTTP 错误)：
// 校验错误 → 400；其余失败 → 500（原因只进日志）；Absent → notFound（nil 则 404）
func Resolve[T any](r domain.Result[T], notFound error) (T, error) {
	var zero T
	if err := r.Err(); err != nil {
		return zero, FromError(err)
	}
	v, ok := r.Get()
	if !ok {
		if notFound == nil {
			notFound = NotFound("not found")
		}
		return zero, notFound
	}
	return v, nil
}

// FromError 校验错误 → 400，其余 → 500
func FromError(err error) error {
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		return &AErr{Code: http.StatusBadRequest, Msg: ve.Error(), Err: err}
	}
	return Internal("internal error", err)
}
