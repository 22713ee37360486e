package ez

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"go-task-manager/internal/domain"
	resp "go-task-manager/internal/transport/http/response"
)

func init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		domain.UseJSONNames(v)
	}
}

type EZ struct {
	g   *gin.RouterGroup
	log *zap.Logger
}

func New(g *gin.RouterGroup, log *zap.Logger) EZ { return EZ{g: g, log: log} }

// Group 在当前分组下派生子分组（通常用来挂鉴权中间件）
func (e EZ) Group(path string, h ...gin.HandlerFunc) EZ {
	return EZ{g: e.g.Group(path, h...), log: e.log}
}

// 绑定方式
type Binder string

const (
	BindJSON  Binder = "json"  // 从 JSON 绑定
	BindQuery Binder = "query" // 从 URL ?a=b 绑定
	BindNone  Binder = "none"  // 不绑定，自己从 c.Param / c.GetRawData 取
)

// Action 动作定义：I 入参，O 出参
type Action[I any, O any] struct {
	Method string // "GET" | "POST" | "PATCH" | "PUT" | "DELETE"
	Path   string
	Binder Binder
	Status int // 成功状态码，默认 200；204 不写响应体
	// Location 返回新资源 id 或以 "/" 开头的路径；非空时写 Location 头
	// id 拼在请求路径后面，路径直接使用
	Location func(O) string
	Handler  func(c *gin.Context, in *I) (O, error)
}

// RegisterAction 在当前 EZ 下注册动作接口
func RegisterAction[I any, O any](e EZ, a Action[I, O]) {
	h := func(c *gin.Context) {
		var in I
		var bindErr error
		switch a.Binder {
		case BindJSON:
			bindErr = c.ShouldBindJSON(&in)
		case BindQuery:
			bindErr = c.ShouldBindQuery(&in)
		default:
		}
		if bindErr != nil {
			Fail(c, e.log, bindError(bindErr))
			return
		}

		out, err := a.Handler(c, &in)
		if err != nil {
			Fail(c, e.log, err)
			return
		}

		status := a.Status
		if status == 0 {
			status = http.StatusOK
		}
		if a.Location != nil {
			if id := a.Location(out); id != "" {
				c.Header("Location", locationOf(c, id))
			}
		}
		if status == http.StatusNoContent {
			c.Status(status)
			return
		}
		c.JSON(status, out)
	}

	switch strings.ToUpper(a.Method) {
	case http.MethodGet:
		e.g.GET(a.Path, h)
	case http.MethodPut:
		e.g.PUT(a.Path, h)
	case http.MethodPatch:
		e.g.PATCH(a.Path, h)
	case http.MethodDelete:
		e.g.DELETE(a.Path, h)
	default: // 默认 POST
		e.g.POST(a.Path, h)
	}
}

// Fail 统一错误输出；5xx 的原因写日志，不回给客户端
func Fail(c *gin.Context, log *zap.Logger, err error) {
	var ae *AErr
	if !errors.As(err, &ae) {
		ae = &AErr{Code: http.StatusInternalServerError, Msg: "internal error", Err: err}
	}
	if ae.Code >= http.StatusInternalServerError && log != nil {
		log.Error("request failed",
			zap.String("rid", c.GetString("rid")),
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Error(ae.Err),
		)
		c.AbortWithStatusJSON(ae.Code, resp.Error(ae.Code, ""))
		return
	}
	c.AbortWithStatusJSON(ae.Code, resp.Error(ae.Code, ae.Msg))
}

func bindError(err error) error {
	var mbe *http.MaxBytesError
	if errors.As(err, &mbe) {
		return &AErr{Code: http.StatusRequestEntityTooLarge, Err: err}
	}
	var ves validator.ValidationErrors
	if errors.As(err, &ves) {
		return FromError(domain.FromValidator(err))
	}
	var ute *json.UnmarshalTypeError
	if errors.As(err, &ute) && ute.Field != "" {
		return FromError(&domain.ValidationError{Field: ute.Field, Msg: "has the wrong type", Err: err})
	}
	return &AErr{Code: http.StatusBadRequest, Msg: "invalid request body", Err: err}
}

// BodyError 手动读取请求体失败时使用
func BodyError(err error) error { return bindError(err) }

func locationOf(c *gin.Context, ref string) string {
	scheme := "http"
	if c.Request.TLS != nil {
		scheme = "https"
	}
	// 只认 http / https，其余值忽略
	switch p := strings.ToLower(c.GetHeader("X-Forwarded-Proto")); p {
	case "http", "https":
		scheme = p
	}
	path := ref
	if !strings.HasPrefix(ref, "/") {
		path = strings.TrimSuffix(c.Request.URL.Path, "/") + "/" + ref
	}
	return scheme + "://" + c.Request.Host + path
}
