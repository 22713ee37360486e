package domain

import (
	"context"
	"strings"
	"time"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type User struct {
	ID           string    `gorm:"primaryKey;size:36" json:"id"`
	Name         string    `gorm:"size:64;not null" json:"name"`
	Email        string    `gorm:"uniqueIndex;size:191;not null" json:"email"`
	PasswordHash string    `gorm:"size:100;not null" json:"-"`
	Age          int       `gorm:"not null;default:0" json:"age"`
	Role         string    `gorm:"size:16;not null;default:user" json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func (User) TableName() string { return "users" }

// SessionToken 用户的一个有效登录凭证；ID 自增即签发顺序
type SessionToken struct {
	ID        uint      `gorm:"primaryKey;autoIncrement"`
	UserID    string    `gorm:"size:36;not null;index:idx_session_user_token,priority:1"`
	Token     string    `gorm:"size:512;not null;index:idx_session_user_token,priority:2"`
	CreatedAt time.Time
}

func (SessionToken) TableName() string { return "session_tokens" }

// Avatar 头像（已缩放的 PNG）
type Avatar struct {
	UserID    string `gorm:"primaryKey;size:36"`
	Data      []byte `gorm:"not null"`
	UpdatedAt time.Time
}

func (Avatar) TableName() string { return "avatars" }

// PublicUser 对外展示，不含密码哈希与 token 原文
type PublicUser struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Age       int       `json:"age,omitempty"`
	Role      string    `json:"role"`
	Sessions  int       `json:"sessions"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (u User) Public(sessions int) PublicUser {
	return PublicUser{
		ID: u.ID, Name: u.Name, Email: u.Email, Age: u.Age, Role: u.Role,
		Sessions: sessions, CreatedAt: u.CreatedAt, UpdatedAt: u.UpdatedAt,
	}
}

// NormalizeEmail 邮箱大小写不敏感，统一小写存储
func NormalizeEmail(s string) string { return strings.ToLower(strings.TrimSpace(s)) }

type UserRepository interface {
	Create(ctx context.Context, u *User) Result[User]
	FindByID(ctx context.Context, id string) Result[User]
	FindByEmail(ctx context.Context, email string) Result[User]
	List(ctx context.Context, q string, offset, limit int) Result[Page[User]]
	Update(ctx context.Context, u *User) Result[User]
	Delete(ctx context.Context, id string) Result[User]
	SetRole(ctx context.Context, id, role string) Result[User]

	SaveAvatar(ctx context.Context, userID string, png []byte) Result[Avatar]
	FindAvatar(ctx context.Context, userID string) Result[Avatar]
	DeleteAvatar(ctx context.Context, userID string) Result[int64]
}

// SessionRegistry 每个用户的有效 token 列表；签名合法但不在列表内的 token 视为已吊销
type SessionRegistry interface {
	AddToken(ctx context.Context, userID, token string) Result[string]
	ResolveSession(ctx context.Context, userID, token string) Result[User]
	RevokeOne(ctx context.Context, userID, token string) Result[int]
	RevokeAll(ctx context.Context, userID string) Result[int]
	Count(ctx context.Context, userID string) Result[int]
}
