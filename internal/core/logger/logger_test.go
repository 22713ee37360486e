package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestBuild_JSONLevelFilter(t *testing.T) {
	var buf bytes.Buffer
	l, cleanup := Build(Options{Level: "warn", JSON: true, Out: zapcore.AddSync(&buf)})
	defer cleanup()

	l.Info("dropped")
	l.Warn("kept", zap.String("k", "v"))
	cleanup()

	var line map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &line))
	assert.Equal(t, "kept", line["msg"])
	assert.Equal(t, "v", line["k"])
	assert.Contains(t, line, "ts")
}

func TestBuild_BadLevelFallsBackToInfo(t *testing.T) {
	var buf bytes.Buffer
	l, _ := Build(Options{Level: "loud", JSON: true, Out: zapcore.AddSync(&buf)})
	l.Debug("hidden")
	l.Info("shown")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}

func TestToWriter(t *testing.T) {
	var buf bytes.Buffer
	l, _ := Build(Options{Level: "debug", JSON: true, Out: zapcore.AddSync(&buf)})

	w := ToWriter(l, zapcore.WarnLevel)
	n, err := w.Write([]byte("slow sql\n"))
	require.NoError(t, err)
	assert.Equal(t, 9, n)
	assert.Contains(t, buf.String(), `"msg":"slow sql"`)
	assert.Contains(t, buf.String(), `"level":"warn"`)
}

func TestToStdLogger(t *testing.T) {
	var buf bytes.Buffer
	l, _ := Build(Options{Level: "debug", JSON: true, Out: zapcore.AddSync(&buf)})

	ToStdLogger(l, zapcore.ErrorLevel).Print("tls handshake error")
	assert.Contains(t, buf.String(), "tls handshake error")
}
