package service

import (
	"context"
	"io"
	"time"

	"go-task-manager/internal/domain"
)

// TokenIssuer 由 auth.JWTer 实现
type TokenIssuer interface {
	Issue(uid string) (string, error)
}

// ImageProcessor 由 avatar.Processor 实现
type ImageProcessor interface {
	Process(filename string, r io.Reader) ([]byte, error)
}

// AuthResult 注册/登录的响应体
type AuthResult struct {
	User  domain.PublicUser `json:"user"`
	Token string            `json:"token"`
}

// Profile GET /users/me 的响应体
type Profile struct {
	domain.PublicUser
	Tasks     []domain.Task `json:"tasks"`
	TaskCount int64         `json:"taskCount"`
}

const mailTimeout = 5 * time.Second

// detached 邮件等收尾动作不随请求取消
func detached(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.WithoutCancel(ctx), mailTimeout)
}
