package httpapi

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestLoggingMiddleware(t *testing.T) {
	core, recorded := observer.New(zapcore.InfoLevel)

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte("nope"))
	})
	wrapped := LoggingMiddleware(zap.New(core), next)

	req := httptest.NewRequest(http.MethodGet, "/api/devices/specifications/x", nil)
	rec := httptest.NewRecorder()
	wrapped.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "nope", rec.Body.String())

	logs := recorded.All()
	require.Len(t, logs, 1)
	assert.Equal(t, "HTTP request", logs[0].Message)

	fields := logs[0].ContextMap()
	assert.Equal(t, "GET", fields["method"])
	assert.Equal(t, "/api/devices/specifications/x", fields["path"])
	assert.Equal(t, int64(http.StatusNotFound), fields["status"])
	assert.Contains(t, fields, "duration_ms")
}

func TestLoggingMiddlewareDefaultsToOK(t *testing.T) {
	core, recorded := observer.New(zapcore.InfoLevel)

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("implicit 200"))
	})
	wrapped := LoggingMiddleware(zap.New(core), next)

	rec := httptest.NewRecorder()
	wrapped.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/test", nil))

	logs := recorded.All()
	require.Len(t, logs, 1)
	assert.Equal(t, int64(http.StatusOK), logs[0].ContextMap()["status"])
}
