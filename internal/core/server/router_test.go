package server

import (
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestNewRouter_CORS(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := NewRouter([]string{"https://app.example.com"})
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("Origin", "https://app.example.com")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "https://app.example.com", w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestBuildServer(t *testing.T) {
	el := log.New(io.Discard, "", 0)
	srv := BuildServer(Addr("127.0.0.1", 3000), http.NotFoundHandler(), time.Second, 2*time.Second, 3*time.Second, el)
	assert.Equal(t, "127.0.0.1:3000", srv.Addr)
	assert.Equal(t, 2*time.Second, srv.WriteTimeout)
	assert.Same(t, el, srv.ErrorLog)
}
