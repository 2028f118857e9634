package middleware

import (
	"fmt"
	"net/http"

	"github.com/jengaest/estimate-api/internal/config"
)

// SecurityHeaders adds the configured security headers to every response
func SecurityHeaders(cfg *config.SecurityConfig) func(http.Handler) http.Handler {
	hsts := ""
	if cfg.EnableHSTS {
		hsts = fmt.Sprintf("max-age=%d", cfg.HSTSMaxAge)
		if cfg.HSTSIncludeSubdomains {
			hsts += "; includeSubDomains"
		}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := w.Header()
			if cfg.ContentTypeNosniff {
				h.Set("X-Content-Type-Options", "nosniff")
			}
			if cfg.FrameOptions != "" {
				h.Set("X-Frame-Options", cfg.FrameOptions)
			}
			if cfg.ContentSecurityPolicy != "" {
				h.Set("Content-Security-Policy", cfg.ContentSecurityPolicy)
			}
			if cfg.ReferrerPolicy != "" {
				h.Set("Referrer-Policy", cfg.ReferrerPolicy)
			}
			if hsts != "" {
				h.Set("Strict-Transport-Security", hsts)
			}

			h.Del("X-Powered-By")
			h.Del("Server")

			next.ServeHTTP(w, r)
		})
	}
}
