package repo

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"go-task-manager/internal/domain"
)

// RedisSessionRepo 每个用户一个 ZSET（member = token，score = 签发时间），
// key 随 token 有效期过期；用户资料仍从 UserRepository 读取
type RedisSessionRepo struct {
	RDB   *redis.Client
	users domain.UserRepository
	ttl   time.Duration
	now   func() time.Time
}

func NewRedisSessionRepo(rdb *redis.Client, users domain.UserRepository, ttl time.Duration) *RedisSessionRepo {
	return &RedisSessionRepo{RDB: rdb, users: users, ttl: ttl, now: time.Now}
}

var _ domain.SessionRegistry = (*RedisSessionRepo)(nil)

func sessionKey(userID string) string { return "session:" + userID }

func (r *RedisSessionRepo) AddToken(ctx context.Context, userID, token string) domain.Result[string] {
	key := sessionKey(userID)
	now := r.now()
	_, err := r.RDB.TxPipelined(ctx, func(p redis.Pipeliner) error {
		// 顺手清掉已经过期的 token
		p.ZRemRangeByScore(ctx, key, "-inf", strconv.FormatInt(now.Add(-r.ttl).UnixNano(), 10))
		p.ZAdd(ctx, key, redis.Z{Score: float64(now.UnixNano()), Member: token})
		p.Expire(ctx, key, r.ttl)
		return nil
	})
	if err != nil {
		return domain.Failure[string](fmt.Errorf("add token for %s: %w", userID, err))
	}
	return domain.Success(token)
}

func (r *RedisSessionRepo) ResolveSession(ctx context.Context, userID, token string) domain.Result[domain.User] {
	err := r.RDB.ZScore(ctx, sessionKey(userID), token).Err()
	switch {
	case errors.Is(err, redis.Nil):
		return domain.Absent[domain.User]()
	case err != nil:
		return domain.Failure[domain.User](fmt.Errorf("resolve session for %s: %w", userID, err))
	}
	return r.users.FindByID(ctx, userID)
}

func (r *RedisSessionRepo) RevokeOne(ctx context.Context, userID, token string) domain.Result[int] {
	n, err := r.RDB.ZRem(ctx, sessionKey(userID), token).Result()
	if err != nil {
		return domain.Failure[int](fmt.Errorf("revoke token for %s: %w", userID, err))
	}
	return domain.Success(int(n))
}

func (r *RedisSessionRepo) RevokeAll(ctx context.Context, userID string) domain.Result[int] {
	key := sessionKey(userID)
	var card *redis.IntCmd
	_, err := r.RDB.TxPipelined(ctx, func(p redis.Pipeliner) error {
		card = p.ZCard(ctx, key)
		p.Del(ctx, key)
		return nil
	})
	if err != nil {
		return domain.Failure[int](fmt.Errorf("revoke all tokens for %s: %w", userID, err))
	}
	return domain.Success(int(card.Val()))
}

func (r *RedisSessionRepo) Count(ctx context.Context, userID string) domain.Result[int] {
	n, err := r.RDB.ZCard(ctx, sessionKey(userID)).Result()
	if err != nil {
		return domain.Failure[int](fmt.Errorf("count tokens for %s: %w", userID, err))
	}
	return domain.Success(int(n))
}
