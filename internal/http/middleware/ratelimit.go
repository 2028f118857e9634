package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/httprate"
	"github.com/jengaest/estimate-api/internal/config"
	"github.com/jengaest/estimate-api/internal/service"
	"go.uber.org/zap"
)

// RateLimiter holds the per-IP limiters for the API and for public share links
type RateLimiter struct {
	cfg            *config.RateLimitConfig
	logger         *zap.Logger
	ipLimiter      func(http.Handler) http.Handler
	sharedLimiter  func(http.Handler) http.Handler
	whitelistIPs   map[string]bool
	whitelistPaths map[string]bool
}

// NewRateLimiter creates a new rate limiter with the given configuration
func NewRateLimiter(cfg *config.RateLimitConfig, logger *zap.Logger) *RateLimiter {
	rl := &RateLimiter{
		cfg:            cfg,
		logger:         logger,
		whitelistIPs:   make(map[string]bool),
		whitelistPaths: make(map[string]bool),
	}

	for _, ip := range cfg.WhitelistIPs {
		rl.whitelistIPs[ip] = true
	}
	for _, path := range cfg.WhitelistPaths {
		rl.whitelistPaths[path] = true
	}

	rl.ipLimiter = httprate.Limit(
		cfg.RequestsPerMinute,
		time.Minute,
		httprate.WithKeyFuncs(rl.keyByIP),
		httprate.WithLimitHandler(rl.rateLimitExceededHandler),
	)

	// Share tokens are guessable only by brute force, so their lookups get a
	// tighter budget under a separate key space
	rl.sharedLimiter = httprate.Limit(
		cfg.SharedRequestsPerMinute,
		time.Minute,
		httprate.WithKeyFuncs(func(r *http.Request) (string, error) {
			return "shared:" + service.ClientIP(r), nil
		}),
		httprate.WithLimitHandler(rl.rateLimitExceededHandler),
	)

	logger.Info("Rate limiter initialized",
		zap.Bool("enabled", cfg.Enabled),
		zap.Int("requests_per_minute", cfg.RequestsPerMinute),
		zap.Int("shared_requests_per_minute", cfg.SharedRequestsPerMinute),
		zap.Strings("whitelist_ips", cfg.WhitelistIPs),
		zap.Strings("whitelist_paths", cfg.WhitelistPaths),
	)

	return rl
}

// LimitByIP applies the global per-IP budget
func (rl *RateLimiter) LimitByIP(next http.Handler) http.Handler {
	return rl.wrap(rl.ipLimiter, next)
}

// LimitShared applies the public share-link budget
func (rl *RateLimiter) LimitShared(next http.Handler) http.Handler {
	return rl.wrap(rl.sharedLimiter, next)
}

func (rl *RateLimiter) wrap(limiter func(http.Handler) http.Handler, next http.Handler) http.Handler {
	if !rl.cfg.Enabled {
		return next
	}
	limited := limiter(next)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if rl.isPathWhitelisted(r.URL.Path) || rl.whitelistIPs[service.ClientIP(r)] {
			next.ServeHTTP(w, r)
			return
		}
		limited.ServeHTTP(w, r)
	})
}

func (rl *RateLimiter) keyByIP(r *http.Request) (string, error) {
	return "ip:" + service.ClientIP(r), nil
}

// isPathWhitelisted matches exact paths and "/prefix/*" entries
func (rl *RateLimiter) isPathWhitelisted(path string) bool {
	if rl.whitelistPaths[path] {
		return true
	}
	for wp := range rl.whitelistPaths {
		if prefix, ok := strings.CutSuffix(wp, "/*"); ok && strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

func (rl *RateLimiter) rateLimitExceededHandler(w http.ResponseWriter, r *http.Request) {
	rl.logger.Warn("rate limit exceeded",
		zap.String("path", r.URL.Path),
		zap.String("method", r.Method),
		zap.String("client_ip", service.ClientIP(r)),
	)

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Retry-After", "60")
	w.WriteHeader(http.StatusTooManyRequests)
	_, _ = w.Write([]byte(`{"type":"rate_limited","title":"Too Many Requests","status":429,"detail":"Too many requests. Please try again later."}`))
}
