package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"go-task-manager/internal/domain"
	"go-task-manager/internal/service"
	"go-task-manager/internal/transport/http/ez"
	mdw "go-task-manager/internal/transport/http/middleware"
)

type UserHandler struct {
	Svc   *service.UserService
	Auth  gin.HandlerFunc // Authenticate
	Guard gin.HandlerFunc // 注册/登录的每 IP 限速，可为 nil
	Log   *zap.Logger
}

type loginIn struct {
	Email    string `json:"email"    binding:"required"`
	Password string `json:"password" binding:"required"`
}

type revokedOut struct {
	Revoked int `json:"revoked"`
}

type avatarOut struct {
	Bytes int `json:"bytes"`
}

func (h *UserHandler) MountAPI(g *gin.RouterGroup) {
	public := ez.New(g, h.Log)
	if h.Guard != nil {
		public = public.Group("", h.Guard)
	}

	ez.RegisterAction(public, ez.Action[domain.NewUser, service.AuthResult]{
		Method: http.MethodPost, Path: "/users", Binder: ez.BindJSON,
		Status:   http.StatusCreated,
		Location: func(service.AuthResult) string { return "/users/me" },
		Handler: func(c *gin.Context, in *domain.NewUser) (service.AuthResult, error) {
			return ez.Resolve(h.Svc.Register(c.Request.Context(), *in), nil)
		},
	})

	ez.RegisterAction(public, ez.Action[loginIn, service.AuthResult]{
		Method: http.MethodPost, Path: "/users/login", Binder: ez.BindJSON,
		Handler: func(c *gin.Context, in *loginIn) (service.AuthResult, error) {
			return ez.Resolve(h.Svc.Login(c.Request.Context(), in.Email, in.Password), ez.BadRequest("unable to login"))
		},
	})

	// 头像公开可读
	g.GET("/users/:id/avatar", h.getAvatar)

	authed := ez.New(g, h.Log).Group("", h.Auth)

	ez.RegisterAction(authed, ez.Action[struct{}, revokedOut]{
		Method: http.MethodPost, Path: "/users/logout", Binder: ez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) (revokedOut, error) {
			n, err := ez.Resolve(h.Svc.Logout(c.Request.Context(), c.GetString(mdw.KeyUserID), c.GetString(mdw.KeyToken)), nil)
			return revokedOut{Revoked: n}, err
		},
	})

	ez.RegisterAction(authed, ez.Action[struct{}, revokedOut]{
		Method: http.MethodPost, Path: "/users/logoutAll", Binder: ez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) (revokedOut, error) {
			n, err := ez.Resolve(h.Svc.LogoutAll(c.Request.Context(), c.GetString(mdw.KeyUserID)), nil)
			return revokedOut{Revoked: n}, err
		},
	})

	ez.RegisterAction(authed, ez.Action[struct{}, service.Profile]{
		Method: http.MethodGet, Path: "/users/me", Binder: ez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) (service.Profile, error) {
			u, _ := mdw.CurrentUser(c)
			return ez.Resolve(h.Svc.Me(c.Request.Context(), u), nil)
		},
	})

	ez.RegisterAction(authed, ez.Action[struct{}, domain.PublicUser]{
		Method: http.MethodPatch, Path: "/users/me", Binder: ez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) (domain.PublicUser, error) {
			body, err := c.GetRawData()
			if err != nil {
				return domain.PublicUser{}, ez.BodyError(err)
			}
			p, err := domain.ParseUserPatch(body)
			if err != nil {
				return domain.PublicUser{}, ez.FromError(err)
			}
			u, _ := mdw.CurrentUser(c)
			return ez.Resolve(h.Svc.Update(c.Request.Context(), u, p), ez.NotFound("user not found"))
		},
	})

	ez.RegisterAction(authed, ez.Action[struct{}, struct{}]{
		Method: http.MethodDelete, Path: "/users/me", Binder: ez.BindNone,
		Status: http.StatusNoContent,
		Handler: func(c *gin.Context, _ *struct{}) (struct{}, error) {
			_, err := ez.Resolve(h.Svc.Delete(c.Request.Context(), c.GetString(mdw.KeyUserID)), ez.NotFound("user not found"))
			return struct{}{}, err
		},
	})

	ez.RegisterAction(authed, ez.Action[struct{}, avatarOut]{
		Method: http.MethodPost, Path: "/users/me/avatar", Binder: ez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) (avatarOut, error) {
			fh, err := c.FormFile("avatar")
			if err != nil {
				var mbe *http.MaxBytesError
				if errors.As(err, &mbe) {
					return avatarOut{}, ez.BodyError(err)
				}
				return avatarOut{}, ez.BadRequest("please upload an image in the avatar field")
			}
			f, err := fh.Open()
			if err != nil {
				return avatarOut{}, ez.Internal("open upload", err)
			}
			defer f.Close()
			n, err := ez.Resolve(h.Svc.SetAvatar(c.Request.Context(), c.GetString(mdw.KeyUserID), fh.Filename, f), nil)
			return avatarOut{Bytes: n}, err
		},
	})

	ez.RegisterAction(authed, ez.Action[struct{}, struct{}]{
		Method: http.MethodDelete, Path: "/users/me/avatar", Binder: ez.BindNone,
		Status: http.StatusNoContent,
		Handler: func(c *gin.Context, _ *struct{}) (struct{}, error) {
			_, err := ez.Resolve(h.Svc.DeleteAvatar(c.Request.Context(), c.GetString(mdw.KeyUserID)), nil)
			return struct{}{}, err
		},
	})
}

func (h *UserHandler) getAvatar(c *gin.Context) {
	data, err := ez.Resolve(h.Svc.Avatar(c.Request.Context(), c.Param("id")), nil)
	if err != nil {
		ez.Fail(c, h.Log, err)
		return
	}
	c.Data(http.StatusOK, "image/png", data)
}
