package middleware

import (
	"net/http"

	"github.com/go-chi/cors"
	"github.com/jengaest/estimate-api/internal/config"
	"go.uber.org/zap"
)

// CORS builds the cross-origin handler. A "*" origin, or no origins at all in a
// development environment, reflects any caller; no origins elsewhere denies all.
func CORS(cfg *config.CORSConfig, environment string, logger *zap.Logger) func(http.Handler) http.Handler {
	options := cors.Options{
		AllowedMethods:   cfg.AllowedMethods,
		AllowedHeaders:   cfg.AllowedHeaders,
		ExposedHeaders:   append([]string{RequestIDHeader}, cfg.ExposedHeaders...),
		AllowCredentials: cfg.AllowCredentials,
		MaxAge:           cfg.MaxAge,
	}

	allowAny := func(r *http.Request, origin string) bool { return origin != "" }

	switch {
	case containsString(cfg.AllowedOrigins, "*"):
		if !isDevEnvironment(environment) {
			logger.Warn("CORS allows any origin outside development",
				zap.String("environment", environment))
		}
		options.AllowOriginFunc = allowAny
	case len(cfg.AllowedOrigins) > 0:
		options.AllowedOrigins = cfg.AllowedOrigins
		logger.Info("CORS configured with explicit origins",
			zap.Strings("origins", cfg.AllowedOrigins))
	case isDevEnvironment(environment):
		options.AllowOriginFunc = allowAny
		logger.Info("CORS allows any origin in development")
	default:
		// An empty AllowedOrigins means "*" to go-chi/cors, so deny explicitly
		options.AllowOriginFunc = func(r *http.Request, origin string) bool { return false }
		logger.Warn("CORS has no allowed origins, cross-origin requests will be denied",
			zap.String("environment", environment))
	}

	return cors.Handler(options)
}

func isDevEnvironment(env string) bool {
	return env == "" || env == "development" || env == "local"
}

func containsString(values []string, want string) bool {
	for _, v := range values {
		if v == want {
			return true
		}
	}
	return false
}
