package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(p, []byte(body), 0o600))
	return p
}

func TestLoadE_FileAndDefaults(t *testing.T) {
	p := writeConfig(t, `
app:
  http:
    port: 8080
jwt:
  secret: "1234567890!"
db:
  driver: postgres
  dsn: "postgres://u:p@localhost/tasks"
`)
	c, err := LoadE(p)
	require.NoError(t, err)

	assert.Equal(t, 8080, c.App.HTTP.Port)
	assert.Equal(t, "postgres", c.DB.Driver)
	assert.Equal(t, "1234567890!", c.JWT.Secret)
	assert.Equal(t, 24*time.Hour, c.JWT.TTL())
	assert.Equal(t, "db", c.Session.Store)
	assert.Equal(t, int64(512<<10), c.Avatar.MaxBytes)
	assert.Equal(t, 100, c.Avatar.Width)
}

func TestLoadE_EnvOverride(t *testing.T) {
	p := writeConfig(t, "jwt:\n  secret: from-file\n")
	t.Setenv("APP_JWT_SECRET", "from-env")
	t.Setenv("APP_SESSION_STORE", "redis")

	c, err := LoadE(p)
	require.NoError(t, err)
	assert.Equal(t, "from-env", c.JWT.Secret)
	assert.Equal(t, "redis", c.Session.Store)
}

func TestLoadE_Errors(t *testing.T) {
	_, err := LoadE(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = LoadE(writeConfig(t, "app:\n  name: x\n"))
	assert.ErrorContains(t, err, "jwt.secret")

	_, err = LoadE(writeConfig(t, "jwt:\n  secret: s\nsession:\n  store: memcached\n"))
	assert.ErrorContains(t, err, "session.store")
}
