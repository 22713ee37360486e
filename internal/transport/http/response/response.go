package response

// Resp 错误响应体；成功时直接返回资源本身
type Resp struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// Error 失败响应（可以传自定义 msg 覆盖默认）
func Error(code int, customMsg string) Resp {
	msg := CodeMsgMap[code]
	if customMsg != "" {
		msg = customMsg
	}
	return Resp{Code: code, Message: msg}
}
