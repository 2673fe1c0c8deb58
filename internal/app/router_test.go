package app

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"pharma-prep-core/internal/app/config"
	"pharma-prep-core/internal/infrastructure/logger"
	"pharma-prep-core/internal/shared/middleware/core"
	"pharma-prep-core/internal/shared/middleware/metrics"
	"pharma-prep-core/internal/shared/middleware/security"

	"github.com/gin-gonic/gin"
)

func newTestRouterParams(metricsEnabled bool) RouterParams {
	cfg := &config.Config{
		Environment: "test",
		CORS: config.CORSConfig{
			AllowedOrigins: []string{"http://front.test"},
			AllowedMethods: []string{"GET", "POST"},
		},
		Metrics: config.MetricsConfig{Enabled: metricsEnabled, Path: "/metrics"},
	}
	log := logger.NewWithWriter(logger.Options{Environment: "test", Level: "error"}, io.Discard)

	return RouterParams{
		Config:    cfg,
		RequestID: core.RequestIDMiddleware(),
		Recovery:  core.RecoveryMiddleware(log),
		CORS:      security.CORSMiddleware(cfg),
		Logging:   logger.NewMiddleware(log),
		Metrics:   metrics.NewRegistry(),
	}
}

func TestRouterUnknownRoute(t *testing.T) {
	r := buildRouter(newTestRouterParams(false))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/inconnu", nil))

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
	if w.Header().Get(core.RequestIDHeader) == "" {
		t.Fatal("expected request id header on every response")
	}

	var body struct {
		Details map[string]any `json:"details"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if body.Details["code"] != "ROUTE_NOT_FOUND" {
		t.Fatalf("expected ROUTE_NOT_FOUND, got %v", body.Details["code"])
	}
}

func TestRouterMetricsEndpoint(t *testing.T) {
	r := buildRouter(newTestRouterParams(true))
	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/ping", nil))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 on /metrics, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `route="/ping"`) {
		t.Fatalf("expected /ping in metrics output:\n%s", w.Body.String())
	}
}

func TestRouterMetricsDisabled(t *testing.T) {
	r := buildRouter(newTestRouterParams(false))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 when metrics are disabled, got %d", w.Code)
	}
}

func TestRouterCORSPreflight(t *testing.T) {
	r := buildRouter(newTestRouterParams(false))

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/patients", nil)
	req.Header.Set("Origin", "http://front.test")
	req.Header.Set("Access-Control-Request-Method", "POST")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "http://front.test" {
		t.Fatalf("expected allowed origin echoed, got %q", got)
	}
}
