package logger

import (
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/joeydtaylor/steeze-items/pkg/middleware/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func newObserved(t *testing.T) (*Middleware, *observer.ObservedLogs, http.Handler) {
	t.Helper()
	core, logs := observer.New(zap.InfoLevel)
	m := NewMiddleware(zap.New(core))

	r := chi.NewRouter()
	r.Use(m.Middleware(nil))
	r.Post("/items", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"ok":true}`))
	})
	r.Put("/items/{id}", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })
	return m, logs, r
}

func TestMiddleware_AccessLine(t *testing.T) {
	_, logs, h := newObserved(t)

	req := httptest.NewRequest(http.MethodPost, "/items", strings.NewReader(`{"name":"x"}`))
	req.Header.Set("Content-Type", "application/json")
	h.ServeHTTP(httptest.NewRecorder(), req)

	require.Equal(t, 1, logs.Len())
	fields := logs.All()[0].ContextMap()
	assert.Equal(t, "POST", fields["httpMethod"])
	assert.Equal(t, "/items", fields["uri"])
	assert.EqualValues(t, http.StatusCreated, fields["status"])
	assert.EqualValues(t, len(`{"ok":true}`), fields["responseSize"])
	assert.Equal(t, false, fields["isAuthenticated"])
	assert.NotContains(t, fields, "requestData")
}

func TestMiddleware_BodyAllowlistByPattern(t *testing.T) {
	m, logs, h := newObserved(t)
	m.AllowBodyLogging("/items/{id}", " ")

	send := func(method, path, ct string) {
		req := httptest.NewRequest(method, path, strings.NewReader(`{"status":"inactive"}`))
		req.Header.Set("Content-Type", ct)
		h.ServeHTTP(httptest.NewRecorder(), req)
	}
	send(http.MethodPut, "/items/7", "application/json; charset=utf-8")
	send(http.MethodPut, "/items/7", "text/plain")
	send(http.MethodPost, "/items", "application/json")

	require.Equal(t, 3, logs.Len())
	all := logs.All()
	assert.Equal(t, `{"status":"inactive"}`, all[0].ContextMap()["requestData"])
	assert.NotContains(t, all[1].ContextMap(), "requestData")
	assert.NotContains(t, all[2].ContextMap(), "requestData")
}

func TestMiddleware_BodyStillReadableDownstream(t *testing.T) {
	m := NewMiddleware(nil)
	var got string
	h := m.Middleware(auth.New(auth.Config{}))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		got = string(b)
	}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/", strings.NewReader("payload")))
	assert.Equal(t, "payload", got)
}

func TestNewLog_WritesUnderDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")
	l := NewLog(dir, "system.log")
	l.Info("hello", zap.String("k", "v"))
	_ = l.Sync()

	b, err := os.ReadFile(filepath.Join(dir, "system.log"))
	require.NoError(t, err)
	assert.Contains(t, string(b), `"msg":"hello"`)
	assert.Contains(t, string(b), `"k":"v"`)
}

func TestEnvHelpers(t *testing.T) {
	t.Setenv("LOG_DIR", "")
	t.Setenv("LOG_LEVEL", "")
	assert.Equal(t, "log", LogDir())
	assert.Equal(t, zapcore.InfoLevel, Level())

	t.Setenv("LOG_DIR", "/tmp/x")
	t.Setenv("LOG_LEVEL", "debug")
	assert.Equal(t, "/tmp/x", LogDir())
	assert.Equal(t, zapcore.DebugLevel, Level())

	t.Setenv("LOG_LEVEL", "loud")
	assert.Equal(t, zapcore.InfoLevel, Level())
}
