package domain

import (
	"errors"
	"fmt"
)

// ValidationError 输入不合法（字段不在白名单、格式错误等），映射为 400
type ValidationError struct {
	Field string
	Msg   string
	Err   error
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Msg)
	}
	return e.Msg
}

func (e *ValidationError) Unwrap() error { return e.Err }

func Invalid(field, msg string) error { return &ValidationError{Field: field, Msg: msg} }

var (
	ErrEmailTaken = &ValidationError{Field: "email", Msg: "email is already registered"}
	ErrNotFound   = errors.New("not found")
)

// IsValidation 判断错误链中是否为校验错误
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
