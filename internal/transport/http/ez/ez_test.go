package ez

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"go-task-manager/internal/domain"
	resp "go-task-manager/internal/transport/http/response"
)

func init() { gin.SetMode(gin.TestMode) }

type item struct {
	ID   string `json:"id"`
	Name string `json:"name" binding:"required"`
}

func newEngine(log *zap.Logger) *gin.Engine {
	r := gin.New()
	e := New(r.Group(""), log)

	RegisterAction(e, Action[item, item]{
		Method: http.MethodPost, Path: "/items", Binder: BindJSON, Status: http.StatusCreated,
		Location: func(o item) string { return o.ID },
		Handler: func(_ *gin.Context, in *item) (item, error) {
			in.ID = "abc"
			return *in, nil
		},
	})
	RegisterAction(e, Action[struct{}, item]{
		Method: http.MethodGet, Path: "/items/:id", Binder: BindNone,
		Handler: func(c *gin.Context, _ *struct{}) (item, error) {
			switch c.Param("id") {
			case "bad":
				return Resolve(domain.Failure[item](domain.Invalid("name", "too short")), nil)
			case "boom":
				return Resolve(domain.Failure[item](errors.New("db password=hunter2 unreachable")), nil)
			case "none":
				return Resolve(domain.Absent[item](), nil)
			case "login":
				return Resolve(domain.Absent[item](), BadRequest("unable to login"))
			}
			return Resolve(domain.Success(item{ID: c.Param("id"), Name: "x"}), nil)
		},
	})
	RegisterAction(e, Action[struct{}, struct{}]{
		Method: http.MethodDelete, Path: "/items/:id", Binder: BindNone, Status: http.StatusNoContent,
		Handler: func(*gin.Context, *struct{}) (struct{}, error) { return struct{}{}, nil },
	})
	return r
}

func do(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeErr(t *testing.T, w *httptest.ResponseRecorder) resp.Resp {
	t.Helper()
	var out resp.Resp
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func TestRegisterAction_Created(t *testing.T) {
	w := do(newEngine(zap.NewNop()), http.MethodPost, "/items", `{"name":"n"}`)
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "http://example.com/items/abc", w.Header().Get("Location"))
	assert.JSONEq(t, `{"id":"abc","name":"n"}`, w.Body.String())
}

func TestRegisterAction_BindError(t *testing.T) {
	tests := []struct {
		name, body, msg string
	}{
		{"missing field", `{}`, "name: is required"},
		{"wrong type", `{"name":1}`, "name: has the wrong type"},
		{"malformed", `{"name":`, "invalid request body"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(newEngine(zap.NewNop()), http.MethodPost, "/items", tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			e := decodeErr(t, w)
			assert.Equal(t, 400, e.Code)
			assert.Equal(t, tt.msg, e.Message)
			assert.NotContains(t, w.Body.String(), "item.")
		})
	}
}

func TestRegisterAction_LocationScheme(t *testing.T) {
	r := newEngine(zap.NewNop())
	tests := []struct {
		proto, want string
	}{
		{"", "http://example.com/items/abc"},
		{"https", "https://example.com/items/abc"},
		{"HTTPS", "https://example.com/items/abc"},
		{"javascript", "http://example.com/items/abc"},
		{"https://evil.example/", "http://example.com/items/abc"},
	}
	for _, tt := range tests {
		t.Run(tt.proto, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/items", strings.NewReader(`{"name":"n"}`))
			req.Header.Set("Content-Type", "application/json")
			if tt.proto != "" {
				req.Header.Set("X-Forwarded-Proto", tt.proto)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			assert.Equal(t, tt.want, w.Header().Get("Location"))
		})
	}
}

func TestRegisterAction_LocationPath(t *testing.T) {
	r := gin.New()
	RegisterAction(New(r.Group(""), zap.NewNop()), Action[struct{}, item]{
		Method: http.MethodPost, Path: "/accounts", Binder: BindNone, Status: http.StatusCreated,
		Location: func(item) string { return "/accounts/me" },
		Handler:  func(*gin.Context, *struct{}) (item, error) { return item{ID: "1"}, nil },
	})
	w := do(r, http.MethodPost, "/accounts", "")
	assert.Equal(t, "http://example.com/accounts/me", w.Header().Get("Location"))
}

func TestRegisterAction_NoContent(t *testing.T) {
	w := do(newEngine(zap.NewNop()), http.MethodDelete, "/items/1", "")
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.String())
}

func TestResolveMapping(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	r := newEngine(zap.New(core))

	tests := []struct {
		path   string
		status int
		msg    string
	}{
		{"/items/ok", http.StatusOK, ""},
		{"/items/bad", http.StatusBadRequest, "name: too short"},
		{"/items/boom", http.StatusInternalServerError, "internal error"},
		{"/items/none", http.StatusNotFound, "not found"},
		{"/items/login", http.StatusBadRequest, "unable to login"},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			w := do(r, http.MethodGet, tt.path, "")
			assert.Equal(t, tt.status, w.Code)
			if tt.msg != "" {
				e := decodeErr(t, w)
				assert.Equal(t, tt.status, e.Code)
				assert.Equal(t, tt.msg, e.Message)
				assert.NotContains(t, w.Body.String(), "hunter2")
			}
		})
	}
	require.Equal(t, 1, logs.Len())
	assert.Contains(t, logs.All()[0].ContextMap()["error"], "unreachable")
}

func TestBodyError(t *testing.T) {
	var ae *AErr
	require.ErrorAs(t, BodyError(&http.MaxBytesError{Limit: 1}), &ae)
	assert.Equal(t, http.StatusRequestEntityTooLarge, ae.Code)
	require.ErrorAs(t, BodyError(errors.New("eof")), &ae)
	assert.Equal(t, http.StatusBadRequest, ae.Code)
}
