package response

import "net/http"

// 错误码直接使用 HTTP 状态码
const (
	CodeBadRequest      = http.StatusBadRequest
	CodeUnauthorized    = http.StatusUnauthorized
	CodeForbidden       = http.StatusForbidden
	CodeNotFound        = http.StatusNotFound
	CodeTooLarge        = http.StatusRequestEntityTooLarge
	CodeTooManyRequests = http.StatusTooManyRequests
	CodeServerError     = http.StatusInternalServerError
	CodeUnavailable     = http.StatusServiceUnavailable
	CodeTimeout         = http.StatusGatewayTimeout
)

// CodeMsgMap 用于集中管理 code - msg
var CodeMsgMap = map[int]string{
	CodeBadRequest:      "bad request",
	CodeUnauthorized:    "please authenticate",
	CodeForbidden:       "forbidden",
	CodeNotFound:        "not found",
	CodeTooLarge:        "request body too large",
	CodeTooManyRequests: "too many requests",
	CodeServerError:     "internal error",
	CodeUnavailable:     "server busy",
	CodeTimeout:         "timeout",
}
