package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"go-task-manager/internal/domain"
	"go-task-manager/internal/service"
	"go-task-manager/internal/transport/http/ez"
	mdw "go-task-manager/internal/transport/http/middleware"
)

type TaskHandler struct {
	Svc  *service.TaskService
	Auth gin.HandlerFunc
	Log  *zap.Logger
}

type listTasksQ struct {
	Completed *bool  `form:"completed"`
	Limit     int    `form:"limit"`
	Skip      int    `form:"skip"`
	SortBy    string `form:"sortBy"`
}

var taskNotFound = ez.NotFound("task not found")

func (h *TaskHandler) MountAPI(g *gin.RouterGroup) {
	e := ez.New(g, h.Log).Group("/tasks", h.Auth)

	ez.RegisterAction(e, ez.Action[domain.NewTask, domain.Task]{
		Method: http.MethodPost, Path: "", Binder: ez.BindJSON,
		Status:   http.StatusCreated,
		Location: func(t domain.Task) string { return t.ID },
		Handler: func(c *gin.Context, in *domain.NewTask) (domain.Task, error) {
			return ez.Resolve(h.Svc.Create(c.Request.Context(), c.GetString(mdw.KeyUserID), *in), nil)
		},
	})

	ez.RegisterAction(e, ez.Action[listTasksQ, []domain.Task]{
		Method: http.MethodGet, Path: "", Binder: ez.BindQuery,
		Handler: func(c *gin.Context, in *listTasksQ) ([]domain.Task, error) {
			opts, err := domain.NewPageOptions(in.Limit, in.Skip, in.SortBy)
			if err != nil {
				return nil, ez.FromError(err)
			}
			page, err := ez.Resolve(h.Svc.List(c.Request.Context(), c.GetString(mdw.KeyUserID),
				domain.TaskFilter{Completed: in.Completed}, opts), nil)
			if err != nil {
				return nil, err
			}
			c.Header("X-Total-Count", strconv.FormatInt(page.Total, 10))
			return page.Items, nil
		},
	})

	ez.RegisterAction(e, ez.Action[struct{}, domain.Task]{
		Method: http.MethodGet, Path: "/:id", Binder: ez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) (domain.Task, error) {
			return ez.Resolve(h.Svc.Get(c.Request.Context(), c.GetString(mdw.KeyUserID), c.Param("id")), taskNotFound)
		},
	})

	ez.RegisterAction(e, ez.Action[struct{}, domain.Task]{
		Method: http.MethodPatch, Path: "/:id", Binder: ez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) (domain.Task, error) {
			body, err := c.GetRawData()
			if err != nil {
				return domain.Task{}, ez.BodyError(err)
			}
			// 白名单校验在访问存储之前
			p, err := domain.ParseTaskPatch(body)
			if err != nil {
				return domain.Task{}, ez.FromError(err)
			}
			return ez.Resolve(h.Svc.Update(c.Request.Context(), c.GetString(mdw.KeyUserID), c.Param("id"), p), taskNotFound)
		},
	})

	ez.RegisterAction(e, ez.Action[struct{}, struct{}]{
		Method: http.MethodDelete, Path: "/:id", Binder: ez.BindNone,
		Status: http.StatusNoContent,
		Handler: func(c *gin.Context, _ *struct{}) (struct{}, error) {
			_, err := ez.Resolve(h.Svc.Delete(c.Request.Context(), c.GetString(mdw.KeyUserID), c.Param("id")), taskNotFound)
			return struct{}{}, err
		},
	})
}
