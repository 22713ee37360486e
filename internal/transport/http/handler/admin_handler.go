package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"go-task-manager/internal/domain"
	"go-task-manager/internal/service"
	"go-task-manager/internal/transport/http/ez"
)

// AdminHandler 挂在已校验 admin 角色的分组下
type AdminHandler struct {
	Svc *service.AdminService
	Log *zap.Logger
}

type listUsersQ struct {
	Offset int    `form:"offset"`
	Limit  int    `form:"limit"`
	Q      string `form:"q"` // 按 email/name 模糊搜
}

var userNotFound = ez.NotFound("user not found")

func (h *AdminHandler) MountAdmin(g *gin.RouterGroup) {
	e := ez.New(g, h.Log)

	ez.RegisterAction(e, ez.Action[listUsersQ, domain.Page[domain.PublicUser]]{
		Method: http.MethodGet, Path: "/users", Binder: ez.BindQuery,
		Handler: func(c *gin.Context, in *listUsersQ) (domain.Page[domain.PublicUser], error) {
			return ez.Resolve(h.Svc.ListUsers(c.Request.Context(), in.Q, in.Offset, in.Limit), nil)
		},
	})

	ez.RegisterAction(e, ez.Action[struct{}, revokedOut]{
		Method: http.MethodPost, Path: "/users/:id/logoutAll", Binder: ez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) (revokedOut, error) {
			n, err := ez.Resolve(h.Svc.ForceLogout(c.Request.Context(), c.Param("id")), userNotFound)
			return revokedOut{Revoked: n}, err
		},
	})

	ez.RegisterAction(e, ez.Action[struct{}, struct{}]{
		Method: http.MethodDelete, Path: "/users/:id", Binder: ez.BindNone,
		Status: http.StatusNoContent,
		Handler: func(c *gin.Context, _ *struct{}) (struct{}, error) {
			_, err := ez.Resolve(h.Svc.DeleteUser(c.Request.Context(), c.Param("id")), userNotFound)
			return struct{}{}, err
		},
	})
}
