package repo

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"go-task-manager/internal/domain"
	"go-task-manager/pkg/utils"
)

type UserRepo struct{ db *gorm.DB }

func NewUserRepo(db *gorm.DB) *UserRepo { return &UserRepo{db: db} }

var _ domain.UserRepository = (*UserRepo)(nil)

func (r *UserRepo) Create(ctx context.Context, u *domain.User) domain.Result[domain.User] {
	if u.ID == "" {
		u.ID = utils.NewID()
	}
	if u.Role == "" {
		u.Role = domain.RoleUser
	}
	if err := r.db.WithContext(ctx).Create(u).Error; err != nil {
		if isDupKey(err) {
			return domain.Failure[domain.User](domain.ErrEmailTaken)
		}
		return domain.Failure[domain.User](fmt.Errorf("create user: %w", err))
	}
	return domain.Success(*u)
}

func (r *UserRepo) FindByID(ctx context.Context, id string) domain.Result[domain.User] {
	return take[domain.User](r.db.WithContext(ctx).Where("id = ?", id), "find user "+id)
}

func (r *UserRepo) FindByEmail(ctx context.Context, email string) domain.Result[domain.User] {
	return take[domain.User](r.db.WithContext(ctx).Where("email = ?", domain.NormalizeEmail(email)), "find user by email")
}

func (r *UserRepo) List(ctx context.Context, q string, offset, limit int) domain.Result[domain.Page[domain.User]] {
	tx := r.db.WithContext(ctx).Model(&domain.User{}).Session(&gorm.Session{})
	if s := strings.TrimSpace(q); s != "" {
		like := "%" + s + "%"
		tx = tx.Where("email LIKE ? OR name LIKE ?", like, like).Session(&gorm.Session{})
	}
	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return domain.Failure[domain.Page[domain.User]](fmt.Errorf("count users: %w", err))
	}
	users := make([]domain.User, 0)
	if err := tx.Order("created_at DESC").Order("id").Offset(offset).Limit(limit).Find(&users).Error; err != nil {
		return domain.Failure[domain.Page[domain.User]](fmt.Errorf("list users: %w", err))
	}
	return domain.Success(domain.Page[domain.User]{Items: users, Total: total})
}

// Update 只写可变字段；记录已不存在时返回 Absent（不会像 Save 那样重新插入）
func (r *UserRepo) Update(ctx context.Context, u *domain.User) domain.Result[domain.User] {
	res := r.db.WithContext(ctx).Model(u).
		Select("Name", "Email", "PasswordHash", "Age", "Role", "UpdatedAt").
		Updates(u)
	if res.Error != nil {
		if isDupKey(res.Error) {
			return domain.Failure[domain.User](domain.ErrEmailTaken)
		}
		return domain.Failure[domain.User](fmt.Errorf("update user %s: %w", u.ID, res.Error))
	}
	if res.RowsAffected == 0 {
		return domain.Absent[domain.User]()
	}
	return domain.Success(*u)
}

func (r *UserRepo) Delete(ctx context.Context, id string) domain.Result[domain.User] {
	found := r.FindByID(ctx, id)
	u, ok := found.Get()
	if !ok {
		return found
	}
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&domain.User{})
	if res.Error != nil {
		return domain.Failure[domain.User](fmt.Errorf("delete user %s: %w", id, res.Error))
	}
	if res.RowsAffected == 0 {
		return domain.Absent[domain.User]()
	}
	return domain.Success(u)
}

func (r *UserRepo) SetRole(ctx context.Context, id, role string) domain.Result[domain.User] {
	res := r.db.WithContext(ctx).Model(&domain.User{}).Where("id = ?", id).Update("role", role)
	if res.Error != nil {
		return domain.Failure[domain.User](fmt.Errorf("set role %s: %w", id, res.Error))
	}
	if res.RowsAffected == 0 {
		return domain.Absent[domain.User]()
	}
	return r.FindByID(ctx, id)
}

func (r *UserRepo) SaveAvatar(ctx context.Context, userID string, png []byte) domain.Result[domain.Avatar] {
	a := domain.Avatar{UserID: userID, Data: png}
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "user_id"}}, DoUpdates: clause.AssignmentColumns([]string{"data", "updated_at"})}).
		Create(&a).Error
	if err != nil {
		return domain.Failure[domain.Avatar](fmt.Errorf("save avatar %s: %w", userID, err))
	}
	return domain.Success(a)
}

func (r *UserRepo) FindAvatar(ctx context.Context, userID string) domain.Result[domain.Avatar] {
	return take[domain.Avatar](r.db.WithContext(ctx).Where("user_id = ?", userID), "find avatar "+userID)
}

func (r *UserRepo) DeleteAvatar(ctx context.Context, userID string) domain.Result[int64] {
	res := r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&domain.Avatar{})
	if res.Error != nil {
		return domain.Failure[int64](fmt.Errorf("delete avatar %s: %w", userID, res.Error))
	}
	return domain.Success(res.RowsAffected)
}
