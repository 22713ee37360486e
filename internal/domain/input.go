package domain

import "strings"

// NewUser 注册入参
type NewUser struct {
	Name     string `json:"name"     validate:"required,min=3,max=64"`
	Email    string `json:"email"    validate:"required,email,max=191"`
	Password string `json:"password" validate:"required,min=6,max=72,nopassword"`
	Age      *int   `json:"age"      validate:"omitempty,gt=0"`
}

func (in *NewUser) Validate() error {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = NormalizeEmail(in.Email)
	in.Password = strings.TrimSpace(in.Password)
	return validateStruct(in)
}

// NewTask 创建任务入参；客户端提交的 authorId 不在此结构中，直接被忽略
type NewTask struct {
	Description string `json:"description" validate:"required,min=2,max=1024"`
	Completed   bool   `json:"completed"`
}

func (in *NewTask) Validate() error {
	in.Description = strings.TrimSpace(in.Description)
	return validateStruct(in)
}
