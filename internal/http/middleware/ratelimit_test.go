package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jengaest/estimate-api/internal/config"
	"github.com/jengaest/estimate-api/internal/http/middleware"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func okHandler(calls *int) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*calls++
		w.WriteHeader(http.StatusOK)
	})
}

func doRequest(h http.Handler, path, remoteAddr string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	req.RemoteAddr = remoteAddr
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestRateLimiter_Disabled(t *testing.T) {
	rl := middleware.NewRateLimiter(&config.RateLimitConfig{Enabled: false, RequestsPerMinute: 2}, zap.NewNop())

	calls := 0
	h := rl.LimitByIP(okHandler(&calls))
	for i := 0; i < 20; i++ {
		assert.Equal(t, http.StatusOK, doRequest(h, "/api/v1/estimates", "10.0.0.1:1234").Code)
	}
	assert.Equal(t, 20, calls)
}

func TestRateLimiter_LimitByIP(t *testing.T) {
	rl := middleware.NewRateLimiter(&config.RateLimitConfig{
		Enabled:                 true,
		RequestsPerMinute:       3,
		SharedRequestsPerMinute: 1,
	}, zap.NewNop())

	calls := 0
	h := rl.LimitByIP(okHandler(&calls))

	for i := 0; i < 3; i++ {
		assert.Equal(t, http.StatusOK, doRequest(h, "/api/v1/estimates", "10.0.0.1:1234").Code)
	}

	w := doRequest(h, "/api/v1/estimates", "10.0.0.1:1234")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "60", w.Header().Get("Retry-After"))
	assert.Contains(t, w.Body.String(), "Too many requests")

	// Another client keeps its own budget
	assert.Equal(t, http.StatusOK, doRequest(h, "/api/v1/estimates", "10.0.0.2:1234").Code)
	assert.Equal(t, 4, calls)
}

func TestRateLimiter_LimitShared(t *testing.T) {
	rl := middleware.NewRateLimiter(&config.RateLimitConfig{
		Enabled:                 true,
		RequestsPerMinute:       100,
		SharedRequestsPerMinute: 2,
	}, zap.NewNop())

	calls := 0
	h := rl.LimitShared(okHandler(&calls))

	assert.Equal(t, http.StatusOK, doRequest(h, "/api/v1/shared/a", "10.0.0.9:1").Code)
	assert.Equal(t, http.StatusOK, doRequest(h, "/api/v1/shared/b", "10.0.0.9:1").Code)
	assert.Equal(t, http.StatusTooManyRequests, doRequest(h, "/api/v1/shared/c", "10.0.0.9:1").Code)
	assert.Equal(t, 2, calls)
}

func TestRateLimiter_Whitelist(t *testing.T) {
	rl := middleware.NewRateLimiter(&config.RateLimitConfig{
		Enabled:           true,
		RequestsPerMinute: 1,
		WhitelistIPs:      []string{"127.0.0.1"},
		WhitelistPaths:    []string{"/health", "/swagger/*"},
	}, zap.NewNop())

	tests := []struct {
		name       string
		path       string
		remoteAddr string
	}{
		{name: "whitelisted ip", path: "/api/v1/estimates", remoteAddr: "127.0.0.1:5555"},
		{name: "exact path", path: "/health", remoteAddr: "10.1.1.1:5555"},
		{name: "prefix path", path: "/swagger/index.html", remoteAddr: "10.1.1.2:5555"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			h := rl.LimitByIP(okHandler(&calls))
			for i := 0; i < 5; i++ {
				assert.Equal(t, http.StatusOK, doRequest(h, tt.path, tt.remoteAddr).Code)
			}
			assert.Equal(t, 5, calls)
		})
	}
}

func TestRateLimiter_ForwardedFor(t *testing.T) {
	rl := middleware.NewRateLimiter(&config.RateLimitConfig{
		Enabled:           true,
		RequestsPerMinute: 1,
	}, zap.NewNop())

	calls := 0
	h := rl.LimitByIP(okHandler(&calls))

	send := func(xff string) int {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/estimates", nil)
		req.RemoteAddr = "10.9.9.9:80"
		req.Header.Set("X-Forwarded-For", xff)
		w := httptest.NewRecorder()
		h.ServeHTTP(w, req)
		return w.Code
	}

	assert.Equal(t, http.StatusOK, send("203.0.113.1, 10.9.9.9"))
	assert.Equal(t, http.StatusOK, send("203.0.113.2"))
	assert.Equal(t, http.StatusTooManyRequests, send("203.0.113.1"))
}
