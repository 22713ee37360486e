package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"go-task-manager/internal/core/config"
	"go-task-manager/internal/core/mail"
	"go-task-manager/internal/repo"
	"go-task-manager/internal/transport/http/router"
	"go-task-manager/pkg/utils"
)

func testConfig() *config.Config {
	return &config.Config{
		JWT: config.JWT{Secret: "s", Issuer: "test", AccessTokenTTLMin: 60},
		DB: config.DB{
			Driver: "sqlite", DSN: "file:" + utils.NewID() + "?mode=memory&cache=shared",
			MaxOpenConns: 1, AutoMigrate: true,
		},
		Session: config.Session{Store: "db"},
		Avatar:  config.Avatar{MaxBytes: 512 << 10, Width: 100},
	}
}

func TestBuild_DBSessions(t *testing.T) {
	a, err := Build(context.Background(), testConfig(), zap.NewNop())
	require.NoError(t, err)
	defer a.Close()

	assert.Nil(t, a.RDB)
	assert.IsType(t, &repo.SessionRepo{}, a.Deps.Sessions)
	assert.IsType(t, mail.LogMailer{}, a.Deps.Users.Mailer)
	assert.EqualValues(t, 1<<20, a.Deps.MaxBodyBytes)
	assert.True(t, a.DB.Migrator().HasTable("session_tokens"))
}

func TestBuild_RedisSessions(t *testing.T) {
	mr := miniredis.RunT(t)
	cfg := testConfig()
	cfg.Session.Store = "redis"
	cfg.Redis = config.Redis{Addr: mr.Addr()}

	a, err := Build(context.Background(), cfg, zap.NewNop())
	require.NoError(t, err)
	defer a.Close()
	require.NotNil(t, a.RDB)
	assert.IsType(t, &repo.RedisSessionRepo{}, a.Deps.Sessions)

	// 注册后 token 落在 redis
	gin.SetMode(gin.TestMode)
	api := router.NewAPIEngine(a.Deps)
	req := httptest.NewRequest(http.MethodPost, "/users",
		strings.NewReader(`{"name":"Ann","email":"ann@example.com","password":"secret123"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	api.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Len(t, mr.Keys(), 1)
}

func TestBuild_Errors(t *testing.T) {
	cfg := testConfig()
	cfg.DB.Driver = "oracle"
	_, err := Build(context.Background(), cfg, zap.NewNop())
	assert.Error(t, err)

	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()
	cfg = testConfig()
	cfg.Session.Store = "redis"
	cfg.Redis = config.Redis{Addr: addr}
	_, err = Build(context.Background(), cfg, zap.NewNop())
	assert.Error(t, err)
}
