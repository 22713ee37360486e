package router

import (
	"github.com/gin-gonic/gin"

	"go-task-manager/internal/transport/http/handler"
	mdw "go-task-manager/internal/transport/http/middleware"
)

func NewAPIEngine(d Deps) *gin.Engine {
	r := newBase(d)
	auth := mdw.Authenticate(d.Tokens, d.Sessions, d.Log)

	var reg Registry
	reg.Register(
		&handler.UserHandler{Svc: d.Users, Auth: auth, Guard: mdw.RateLimitPerIP(5, 30), Log: d.Log},
		&handler.TaskHandler{Svc: d.Tasks, Auth: auth, Log: d.Log},
	)
	reg.MountAPI(&r.RouterGroup)
	return r
}
