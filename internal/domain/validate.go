package domain

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	UseJSONNames(v)
	_ = v.RegisterValidation("nopassword", func(fl validator.FieldLevel) bool {
		return !strings.Contains(strings.ToLower(fl.Field().String()), "password")
	})
	return v
}

// UseJSONNames 让错误信息里使用 json 字段名（gin 的校验器也要注册）
func UseJSONNames(v *validator.Validate) {
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

func validateStruct(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	return FromValidator(err)
}

// FromValidator 把 validator 的错误收敛成 ValidationError，只保留第一个字段
func FromValidator(err error) error {
	var ves validator.ValidationErrors
	if !errors.As(err, &ves) || len(ves) == 0 {
		return &ValidationError{Msg: "invalid input", Err: err}
	}
	fe := ves[0]
	return &ValidationError{Field: fe.Field(), Msg: ruleMessage(fe), Err: err}
}

func ruleMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "is not a valid email"
	case "min":
		return "should be at least " + fe.Param() + " characters"
	case "max":
		return "should be at most " + fe.Param() + " characters"
	case "gt":
		return "should be greater than " + fe.Param()
	case "nopassword":
		return `must not include the word "password"`
	default:
		return "failed on " + fe.Tag()
	}
}

func trimPtr(p *string) {
	if p != nil {
		*p = strings.TrimSpace(*p)
	}
}
