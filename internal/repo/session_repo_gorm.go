package repo

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"go-task-manager/internal/domain"
)

// SessionRepo 把 token 列表存在 session_tokens 表，与用户记录同库
type SessionRepo struct{ db *gorm.DB }

func NewSessionRepo(db *gorm.DB) *SessionRepo { return &SessionRepo{db: db} }

var _ domain.SessionRegistry = (*SessionRepo)(nil)

func (r *SessionRepo) AddToken(ctx context.Context, userID, token string) domain.Result[string] {
	st := domain.SessionToken{UserID: userID, Token: token}
	if err := r.db.WithContext(ctx).Create(&st).Error; err != nil {
		return domain.Failure[string](fmt.Errorf("add token for %s: %w", userID, err))
	}
	return domain.Success(token)
}

// ResolveSession 用户存在且 token 仍在其列表中才算有效，一条查询完成
func (r *SessionRepo) ResolveSession(ctx context.Context, userID, token string) domain.Result[domain.User] {
	q := r.db.WithContext(ctx).
		Where("id = ?", userID).
		Where("EXISTS (SELECT 1 FROM session_tokens st WHERE st.user_id = users.id AND st.token = ?)", token)
	return take[domain.User](q, "resolve session for "+userID)
}

func (r *SessionRepo) RevokeOne(ctx context.Context, userID, token string) domain.Result[int] {
	res := r.db.WithContext(ctx).Where("user_id = ? AND token = ?", userID, token).Delete(&domain.SessionToken{})
	if res.Error != nil {
		return domain.Failure[int](fmt.Errorf("revoke token for %s: %w", userID, res.Error))
	}
	return domain.Success(int(res.RowsAffected))
}

func (r *SessionRepo) RevokeAll(ctx context.Context, userID string) domain.Result[int] {
	res := r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&domain.SessionToken{})
	if res.Error != nil {
		return domain.Failure[int](fmt.Errorf("revoke all tokens for %s: %w", userID, res.Error))
	}
	return domain.Success(int(res.RowsAffected))
}

func (r *SessionRepo) Count(ctx context.Context, userID string) domain.Result[int] {
	var n int64
	if err := r.db.WithContext(ctx).Model(&domain.SessionToken{}).Where("user_id = ?", userID).Count(&n).Error; err != nil {
		return domain.Failure[int](fmt.Errorf("count tokens for %s: %w", userID, err))
	}
	return domain.Success(int(n))
}
