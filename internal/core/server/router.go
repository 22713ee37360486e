package server

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// NewRouter 空 gin 引擎 + CORS；其余中间件由调用方追加
func NewRouter(allowOrigins []string) *gin.Engine {
	r := gin.New()
	cfg := cors.DefaultConfig()
	if len(allowOrigins) == 0 || (len(allowOrigins) == 1 && allowOrigins[0] == "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = allowOrigins
	}
	cfg.AddAllowHeaders("Authorization", "X-Request-ID")
	cfg.AddExposeHeaders("Location", "X-Total-Count", "X-Request-ID")
	r.Use(cors.New(cfg))
	return r
}

// BuildServer errorLog 可为 nil（使用标准库默认输出）
func BuildServer(addr string, handler http.Handler, rt, wt, it time.Duration, errorLog *log.Logger) *http.Server {
	return &http.Server{
		Addr:           addr,
		Handler:        handler,
		ReadTimeout:    rt,
		WriteTimeout:   wt,
		IdleTimeout:    it,
		MaxHeaderBytes: 1 << 20, // 1MB
		ErrorLog:       errorLog,
	}
}

func Addr(host string, port int) string { return fmt.Sprintf("%s:%d", host, port) }
