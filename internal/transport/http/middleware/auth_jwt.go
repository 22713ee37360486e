package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"go-task-manager/internal/domain"
	resp "go-task-manager/internal/transport/http/response"
)

// gin.Context 中的认证信息 key
const (
	KeyUserID = "userId"
	KeyToken  = "token"
	KeyUser   = "user"
	KeyRole   = "role"
)

// TokenVerifier 由 auth.JWTer 实现
type TokenVerifier interface {
	Verify(token string) (string, error)
}

var authFailures = prometheus.NewCounterVec(
	prometheus.CounterOpts{Name: "auth_failures_total", Help: "Rejected authentication attempts"},
	[]string{"reason"},
)

func init() { prometheus.MustRegister(authFailures) }

// Authenticate Bearer token → 验签 → 会话登记校验；任何失败都是 401 "please authenticate"
func Authenticate(tokens TokenVerifier, sessions domain.SessionRegistry, l *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if reason := authenticate(c, tokens, sessions, l); reason != "" {
			authFailures.WithLabelValues(reason).Inc()
			c.AbortWithStatusJSON(resp.CodeUnauthorized, resp.Error(resp.CodeUnauthorized, ""))
			return
		}
		c.Next()
	}
}

// authenticate 返回拒绝原因，空串表示通过
func authenticate(c *gin.Context, tokens TokenVerifier, sessions domain.SessionRegistry, l *zap.Logger) (reason string) {
	defer func() {
		if rec := recover(); rec != nil {
			l.Error("auth panic", zap.Any("panic", rec), zap.String("rid", c.GetString("rid")))
			reason = "panic"
		}
	}()

	ah := c.GetHeader("Authorization")
	if !strings.HasPrefix(ah, "Bearer ") {
		return "missing_token"
	}
	token := strings.TrimSpace(strings.TrimPrefix(ah, "Bearer "))
	uid, err := tokens.Verify(token)
	if err != nil {
		return "invalid_token"
	}

	res := sessions.ResolveSession(c.Request.Context(), uid, token)
	if !res.OK() {
		l.Error("resolve session failed", zap.String("userId", uid), zap.Error(res.Err()))
		return "lookup_error"
	}
	u, ok := res.Get()
	if !ok {
		l.Debug("user does not exist or token revoked", zap.String("userId", uid))
		return "revoked"
	}

	c.Set(KeyUserID, u.ID)
	c.Set(KeyToken, token)
	c.Set(KeyUser, u)
	c.Set(KeyRole, u.Role)
	return ""
}

// RequireRole 跟在 Authenticate 之后使用
func RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString(KeyRole) != role {
			c.AbortWithStatusJSON(resp.CodeForbidden, resp.Error(resp.CodeForbidden, ""))
			return
		}
		c.Next()
	}
}

// CurrentUser 取认证后的用户；未经过 Authenticate 时返回 false
func CurrentUser(c *gin.Context) (domain.User, bool) {
	v, ok := c.Get(KeyUser)
	if !ok {
		return domain.User{}, false
	}
	u, ok := v.(domain.User)
	return u, ok
}
