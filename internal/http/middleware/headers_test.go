package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jengaest/estimate-api/internal/config"
	"github.com/jengaest/estimate-api/internal/http/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestSecurityHeaders(t *testing.T) {
	cfg := &config.SecurityConfig{
		EnableHSTS:            true,
		HSTSMaxAge:            31536000,
		HSTSIncludeSubdomains: true,
		ContentSecurityPolicy: "default-src 'self'",
		FrameOptions:          "DENY",
		ContentTypeNosniff:    true,
		ReferrerPolicy:        "strict-origin-when-cross-origin",
	}

	calls := 0
	h := middleware.SecurityHeaders(cfg)(okHandler(&calls))
	w := doRequest(h, "/", "10.0.0.1:1")

	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", w.Header().Get("X-Frame-Options"))
	assert.Equal(t, "default-src 'self'", w.Header().Get("Content-Security-Policy"))
	assert.Equal(t, "strict-origin-when-cross-origin", w.Header().Get("Referrer-Policy"))
	assert.Equal(t, "max-age=31536000; includeSubDomains", w.Header().Get("Strict-Transport-Security"))
	assert.Equal(t, 1, calls)
}

func TestSecurityHeaders_Disabled(t *testing.T) {
	calls := 0
	h := middleware.SecurityHeaders(&config.SecurityConfig{})(okHandler(&calls))
	w := doRequest(h, "/", "10.0.0.1:1")

	assert.Empty(t, w.Header().Get("Strict-Transport-Security"))
	assert.Empty(t, w.Header().Get("X-Frame-Options"))
	assert.Empty(t, w.Header().Get("X-Content-Type-Options"))
}

func TestCORS(t *testing.T) {
	base := config.CORSConfig{
		AllowedMethods: []string{"GET", "POST"},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
	}

	tests := []struct {
		name        string
		origins     []string
		environment string
		origin      string
		wantAllowed bool
	}{
		{name: "explicit origin allowed", origins: []string{"https://app.example.com"}, environment: "production", origin: "https://app.example.com", wantAllowed: true},
		{name: "explicit origin rejects others", origins: []string{"https://app.example.com"}, environment: "production", origin: "https://evil.example.com", wantAllowed: false},
		{name: "wildcard reflects", origins: []string{"*"}, environment: "production", origin: "https://any.example.com", wantAllowed: true},
		{name: "no origins in development", environment: "development", origin: "http://localhost:3000", wantAllowed: true},
		{name: "no origins in production", environment: "production", origin: "http://localhost:3000", wantAllowed: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base
			cfg.AllowedOrigins = tt.origins

			calls := 0
			h := middleware.CORS(&cfg, tt.environment, zap.NewNop())(okHandler(&calls))

			req := httptest.NewRequest(http.MethodGet, "/api/v1/estimates", nil)
			req.Header.Set("Origin", tt.origin)
			w := httptest.NewRecorder()
			h.ServeHTTP(w, req)

			if tt.wantAllowed {
				assert.Equal(t, tt.origin, w.Header().Get("Access-Control-Allow-Origin"))
			} else {
				assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
			}
		})
	}
}

func TestLogging_RequestID(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	logger := zap.New(core)

	var seen string
	h := middleware.Logging(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = r.Header.Get(middleware.RequestIDHeader)
		w.WriteHeader(http.StatusCreated)
	}))

	t.Run("keeps incoming id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/estimates", nil)
		req.Header.Set(middleware.RequestIDHeader, "req-123")
		w := httptest.NewRecorder()
		h.ServeHTTP(w, req)

		assert.Equal(t, "req-123", seen)
		assert.Equal(t, "req-123", w.Header().Get(middleware.RequestIDHeader))
	})

	t.Run("generates id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/estimates", nil)
		w := httptest.NewRecorder()
		h.ServeHTTP(w, req)

		assert.NotEmpty(t, seen)
		assert.NotEqual(t, "req-123", seen)
		assert.Equal(t, seen, w.Header().Get(middleware.RequestIDHeader))
	})

	require.Equal(t, 2, logs.Len())
	assert.Equal(t, int64(http.StatusCreated), logs.All()[0].ContextMap()["status_code"])
}

func TestRecovery(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	h := middleware.Recovery(zap.New(core))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	w := doRequest(h, "/api/v1/estimates", "10.0.0.1:1")

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "unexpected error")
	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "panic recovered", logs.All()[0].Message)
}
