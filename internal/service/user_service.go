package service

import (
	"context"
	"fmt"
	"io"

	"go.uber.org/zap"

	"go-task-manager/internal/core/mail"
	"go-task-manager/internal/domain"
	"go-task-manager/pkg/utils"
)

type UserService struct {
	Users    domain.UserRepository
	Sessions domain.SessionRegistry
	Tasks    domain.TaskRepository
	Tokens   TokenIssuer
	Mailer   mail.Mailer
	Avatars  ImageProcessor
	Log      *zap.Logger
}

// Register 校验 → 显式哈希 → 落库 → 签发 token 并登记
func (s *UserService) Register(ctx context.Context, in domain.NewUser) domain.Result[AuthResult] {
	if err := in.Validate(); err != nil {
		return domain.Failure[AuthResult](err)
	}
	u := domain.User{
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: utils.HashPassword(in.Password),
	}
	if in.Age != nil {
		u.Age = *in.Age
	}
	res := s.Users.Create(ctx, &u)
	created, ok := res.Get()
	if !ok {
		return domain.Failure[AuthResult](res.Err())
	}
	out := s.startSession(ctx, created)
	if out.Found() {
		s.send(ctx, mail.Welcome(created.Email, created.Name))
	}
	return out
}

// Login 邮箱不存在与密码错误同样返回 Absent，不区分
func (s *UserService) Login(ctx context.Context, email, password string) domain.Result[AuthResult] {
	res := s.Users.FindByEmail(ctx, email)
	u, ok := res.Get()
	if !ok {
		return domain.Map(res, func(domain.User) AuthResult { return AuthResult{} })
	}
	if !utils.CheckPassword(password, u.PasswordHash) {
		return domain.Absent[AuthResult]()
	}
	return s.startSession(ctx, u)
}

func (s *UserService) startSession(ctx context.Context, u domain.User) domain.Result[AuthResult] {
	token, err := s.Tokens.Issue(u.ID)
	if err != nil {
		return domain.Failure[AuthResult](fmt.Errorf("issue token: %w", err))
	}
	if added := s.Sessions.AddToken(ctx, u.ID, token); !added.OK() {
		return domain.Failure[AuthResult](added.Err())
	}
	return domain.Success(AuthResult{User: u.Public(s.sessionCount(ctx, u.ID)), Token: token})
}

// Logout 只吊销当前 token
func (s *UserService) Logout(ctx context.Context, userID, token string) domain.Result[int] {
	return s.Sessions.RevokeOne(ctx, userID, token)
}

func (s *UserService) LogoutAll(ctx context.Context, userID string) domain.Result[int] {
	return s.Sessions.RevokeAll(ctx, userID)
}

// Me 当前用户及其任务（最多 MaxPageLimit 条，按创建时间升序）
func (s *UserService) Me(ctx context.Context, u domain.User) domain.Result[Profile] {
	page := s.Tasks.GetAll(ctx, u.ID, domain.TaskFilter{}, domain.PageOptions{Limit: domain.MaxPageLimit, Sort: domain.DefaultTaskSort})
	return domain.Map(page, func(p domain.Page[domain.Task]) Profile {
		return Profile{PublicUser: u.Public(s.sessionCount(ctx, u.ID)), Tasks: p.Items, TaskCount: p.Total}
	})
}

// Update 合并白名单字段；带 password 时重新哈希
func (s *UserService) Update(ctx context.Context, u domain.User, p domain.UserPatch) domain.Result[domain.PublicUser] {
	if p.Name != nil {
		u.Name = *p.Name
	}
	if p.Email != nil {
		u.Email = *p.Email
	}
	if p.Age != nil {
		u.Age = *p.Age
	}
	if p.Password != nil {
		u.PasswordHash = utils.HashPassword(*p.Password)
	}
	return domain.Map(s.Users.Update(ctx, &u), func(v domain.User) domain.PublicUser {
		return v.Public(s.sessionCount(ctx, v.ID))
	})
}

// Delete 吊销会话 → 删头像 → 删用户 → 删其全部任务。
// 用户删除成功后，级联失败只记 error 日志，结果仍是成功
func (s *UserService) Delete(ctx context.Context, userID string) domain.Result[domain.User] {
	log := s.Log.With(zap.String("userId", userID))
	if r := s.Sessions.RevokeAll(ctx, userID); !r.OK() {
		log.Error("cascade: revoke sessions failed", zap.Error(r.Err()))
	}
	if r := s.Users.DeleteAvatar(ctx, userID); !r.OK() {
		log.Error("cascade: delete avatar failed", zap.Error(r.Err()))
	}
	res := s.Users.Delete(ctx, userID)
	u, ok := res.Get()
	if !ok {
		return res
	}
	if r := s.Tasks.DeleteAllByOwner(ctx, userID); !r.OK() {
		log.Error("cascade: delete tasks failed, tasks orphaned", zap.Error(r.Err()))
	} else if n, _ := r.Get(); n > 0 {
		log.Info("cascade: tasks deleted", zap.Int64("count", n))
	}
	s.send(ctx, mail.Cancellation(u.Email, u.Name))
	return res
}

// SetAvatar 返回存储的字节数
func (s *UserService) SetAvatar(ctx context.Context, userID, filename string, r io.Reader) domain.Result[int] {
	png, err := s.Avatars.Process(filename, r)
	if err != nil {
		return domain.Failure[int](err)
	}
	return domain.Map(s.Users.SaveAvatar(ctx, userID, png), func(a domain.Avatar) int { return len(a.Data) })
}

func (s *UserService) Avatar(ctx context.Context, userID string) domain.Result[[]byte] {
	return domain.Map(s.Users.FindAvatar(ctx, userID), func(a domain.Avatar) []byte { return a.Data })
}

func (s *UserService) DeleteAvatar(ctx context.Context, userID string) domain.Result[int64] {
	return s.Users.DeleteAvatar(ctx, userID)
}

// sessionCount 只用于展示，失败记日志返回 0
func (s *UserService) sessionCount(ctx context.Context, userID string) int {
	res := s.Sessions.Count(ctx, userID)
	if !res.OK() {
		s.Log.Warn("count sessions failed", zap.String("userId", userID), zap.Error(res.Err()))
	}
	n, _ := res.Get()
	return n
}

// send 邮件失败不影响主流程
func (s *UserService) send(ctx context.Context, m mail.Message) {
	if s.Mailer == nil {
		return
	}
	mctx, cancel := detached(ctx)
	defer cancel()
	if err := s.Mailer.Send(mctx, m); err != nil {
		s.Log.Warn("send mail failed", zap.String("to", m.To), zap.String("subject", m.Subject), zap.Error(err))
	}
}
