package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"go-task-manager/internal/core/server"
	"go-task-manager/internal/domain"
	"go-task-manager/internal/service"
	mdw "go-task-manager/internal/transport/http/middleware"
)

// Deps 两个引擎共用的依赖
type Deps struct {
	Log          *zap.Logger
	Tokens       mdw.TokenVerifier
	Sessions     domain.SessionRegistry
	Users        *service.UserService
	Tasks        *service.TaskService
	Admin        *service.AdminService
	AllowOrigins []string
	MaxBodyBytes int64
}

// newBase 公共中间件 + /health + /metrics
func newBase(d Deps) *gin.Engine {
	maxBody := d.MaxBodyBytes
	if maxBody <= 0 {
		maxBody = 2 << 20
	}
	r := server.NewRouter(d.AllowOrigins)
	r.Use(
		mdw.RequestID(),
		mdw.Recovery(d.Log),
		mdw.RateLimit(200, 400),
		mdw.ConcurrencyLimit(300),
		mdw.MaxBodyBytes(maxBody),
		mdw.Timeout(10*time.Second),
		mdw.Metrics(),
		mdw.AccessLog(d.Log),
	)

	// 健康检查
	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": 1}) })
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	return r
}
