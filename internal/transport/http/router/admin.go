package router

import (
	"github.com/gin-gonic/gin"

	"go-task-manager/internal/domain"
	"go-task-manager/internal/transport/http/handler"
	mdw "go-task-manager/internal/transport/http/middleware"
)

func NewAdminEngine(d Deps) *gin.Engine {
	r := newBase(d)

	// 管理端 v1（统一要求 admin 角色）
	admin := r.Group("/admin/v1", mdw.Authenticate(d.Tokens, d.Sessions, d.Log), mdw.RequireRole(domain.RoleAdmin))

	var reg Registry
	reg.Register(&handler.AdminHandler{Svc: d.Admin, Log: d.Log})
	reg.MountAdmin(admin)
	return r
}
