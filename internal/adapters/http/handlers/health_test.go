package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/quotedash/internal/ports"
)

func newHealthEngine(t *testing.T, checks ...ports.HealthChecker) *gin.Engine {
	t.Helper()

	registry := ports.NewHealthRegistry()
	for _, c := range checks {
		require.NoError(t, registry.Register(c))
	}

	engine := gin.New()
	NewHealthHandler(registry, NewBuildInfo("quotedash", "1.2.3", "abc123", "2026-01-01")).RegisterRoutes(engine)

	return engine
}

func get(engine *gin.Engine, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))

	return w
}

func TestHealthHandler_Liveness(t *testing.T) {
	w := get(newHealthEngine(t), "/-/live")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestHealthHandler_Readiness(t *testing.T) {
	ok := ports.CheckFunc{CheckName: "credential-store", Fn: func(context.Context) error { return nil }}
	down := ports.CheckFunc{CheckName: "youquote", Fn: func(context.Context) error { return errors.New("connection refused") }}

	tests := []struct {
		name   string
		checks []ports.HealthChecker
		status int
	}{
		{"no checks", nil, http.StatusOK},
		{"all healthy", []ports.HealthChecker{ok}, http.StatusOK},
		{"one failing", []ports.HealthChecker{ok, down}, http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := get(newHealthEngine(t, tt.checks...), "/-/ready")
			assert.Equal(t, tt.status, w.Code)
		})
	}
}

func TestHealthHandler_Build(t *testing.T) {
	w := get(newHealthEngine(t), "/-/build")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"version":"1.2.3"`)
	assert.Contains(t, w.Body.String(), `"goVersion":"go`)
}

func TestHealthHandler_Metrics(t *testing.T) {
	w := get(newHealthEngine(t), "/-/metrics")

	assert.Equal(t, http.StatusOK, w.Code)
}
