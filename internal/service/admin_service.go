package service

import (
	"context"

	"go.uber.org/zap"

	"go-task-manager/internal/domain"
)

type AdminService struct {
	Users    domain.UserRepository
	Sessions domain.SessionRegistry
	Accounts *UserService // 删除复用同一套级联
	Log      *zap.Logger
}

func (s *AdminService) ListUsers(ctx context.Context, q string, offset, limit int) domain.Result[domain.Page[domain.PublicUser]] {
	if offset < 0 {
		return domain.Failure[domain.Page[domain.PublicUser]](domain.Invalid("offset", "should not be negative"))
	}
	if limit < 0 || limit > domain.MaxPageLimit {
		return domain.Failure[domain.Page[domain.PublicUser]](domain.Invalid("limit", "should be between 1 and 100"))
	}
	if limit == 0 {
		limit = domain.DefaultPageLimit
	}
	return domain.Map(s.Users.List(ctx, q, offset, limit), func(p domain.Page[domain.User]) domain.Page[domain.PublicUser] {
		items := make([]domain.PublicUser, 0, len(p.Items))
		for _, u := range p.Items {
			items = append(items, u.Public(s.Accounts.sessionCount(ctx, u.ID)))
		}
		return domain.Page[domain.PublicUser]{Items: items, Total: p.Total}
	})
}

// ForceLogout 用户不存在返回 Absent
func (s *AdminService) ForceLogout(ctx context.Context, userID string) domain.Result[int] {
	found := s.Users.FindByID(ctx, userID)
	if !found.Found() {
		return domain.Map(found, func(domain.User) int { return 0 })
	}
	res := s.Sessions.RevokeAll(ctx, userID)
	if n, ok := res.Get(); ok {
		s.Log.Info("admin force logout", zap.String("userId", userID), zap.Int("revoked", n))
	}
	return res
}

func (s *AdminService) DeleteUser(ctx context.Context, userID string) domain.Result[domain.User] {
	res := s.Accounts.Delete(ctx, userID)
	if res.Found() {
		s.Log.Info("admin deleted user", zap.String("userId", userID))
	}
	return res
}

// Bootstrap 把已注册的邮箱提升为 admin；邮箱为空时什么都不做
func (s *AdminService) Bootstrap(ctx context.Context, email string) domain.Result[domain.User] {
	if email == "" {
		return domain.Absent[domain.User]()
	}
	res := s.Users.FindByEmail(ctx, email)
	u, ok := res.Get()
	if !ok {
		return res
	}
	if u.Role == domain.RoleAdmin {
		return res
	}
	return s.Users.SetRole(ctx, u.ID, domain.RoleAdmin)
}
