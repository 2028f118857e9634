package router

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jengaest/estimate-api/internal/auth"
	"github.com/jengaest/estimate-api/internal/config"
	"github.com/jengaest/estimate-api/internal/database"
	"github.com/jengaest/estimate-api/internal/http/handler"
	"github.com/jengaest/estimate-api/internal/http/middleware"
	"github.com/jengaest/estimate-api/internal/marketdata"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	_ "github.com/jengaest/estimate-api/docs" // registers the OpenAPI document
)

// healthTimeout bounds each dependency probe of the readiness check
const healthTimeout = 3 * time.Second

// MarketDataHealth reports on the optional market data warehouse
type MarketDataHealth interface {
	Health(ctx context.Context) *marketdata.HealthStatus
}

// Handlers groups every HTTP handler the router mounts
type Handlers struct {
	Estimate    *handler.EstimateHandler
	Calculation *handler.CalculationHandler
	Reference   *handler.ReferenceHandler
	Share       *handler.ShareHandler
	Upload      *handler.UploadHandler
	AI          *handler.AIEstimateHandler
	Audit       *handler.AuditHandler
	MarketData  *handler.MarketDataHandler
	Auth        *handler.AuthHandler
}

type Router struct {
	cfg             *config.Config
	logger          *zap.Logger
	db              *gorm.DB
	marketData      MarketDataHealth
	authMiddleware  *auth.Middleware
	rateLimiter     *middleware.RateLimiter
	auditMiddleware *middleware.AuditMiddleware
	handlers        Handlers
}

func NewRouter(
	cfg *config.Config,
	logger *zap.Logger,
	db *gorm.DB,
	marketData MarketDataHealth,
	authMiddleware *auth.Middleware,
	rateLimiter *middleware.RateLimiter,
	auditMiddleware *middleware.AuditMiddleware,
	handlers Handlers,
) *Router {
	return &Router{
		cfg:             cfg,
		logger:          logger,
		db:              db,
		marketData:      marketData,
		authMiddleware:  authMiddleware,
		rateLimiter:     rateLimiter,
		auditMiddleware: auditMiddleware,
		handlers:        handlers,
	}
}

func (rt *Router) Setup() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recovery(rt.logger))
	r.Use(middleware.Logging(rt.logger))
	r.Use(middleware.SecurityHeaders(&rt.cfg.Security))
	r.Use(middleware.CORS(&rt.cfg.CORS, rt.cfg.App.Environment, rt.logger))
	r.Use(rt.rateLimiter.LimitByIP)

	// Liveness
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})
	r.Get("/health/db", rt.databaseHealth)
	r.Get("/health/ready", rt.readiness)

	if rt.cfg.Server.EnableSwagger {
		r.Get("/swagger/*", httpSwagger.Handler(
			httpSwagger.URL("/swagger/doc.json"),
		))
	}

	h := rt.handlers

	r.Route("/api/v1", func(r chi.Router) {
		// Public share links carry their own, tighter limit
		r.With(rt.rateLimiter.LimitShared).Get("/shared/{token}", h.Share.Resolve)

		r.Group(func(r chi.Router) {
			r.Use(rt.authMiddleware.Authenticate)
			r.Use(rt.auditMiddleware.Audit)

			r.Get("/auth/me", h.Auth.Me)

			r.Get("/project-types", h.Reference.ListProjectTypes)
			r.Get("/project-types/{ref}", h.Reference.GetProjectType)
			r.Get("/locations", h.Reference.ListLocations)
			r.Get("/locations/{ref}", h.Reference.GetLocation)

			r.Route("/estimates", func(r chi.Router) {
				r.Get("/", h.Estimate.List)
				r.Post("/", h.Estimate.Create)
				r.Post("/calculate", h.Calculation.Calculate)
				r.Get("/statistics", h.Estimate.Statistics)
				r.Post("/upload", h.Upload.Upload)
				r.Post("/ai", h.AI.Submit)
				r.Get("/ai/tasks/{taskId}", h.AI.TaskStatus)

				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", h.Estimate.GetByID)
					r.Put("/", h.Estimate.Update)
					r.Delete("/", h.Estimate.Delete)
					r.Post("/duplicate", h.Estimate.Duplicate)
					r.Get("/revisions", h.Estimate.ListRevisions)
					r.Get("/ai", h.AI.Get)
					r.Get("/plan", h.Upload.Download)
					r.Post("/share", h.Share.Issue)
					r.Get("/shares", h.Share.List)
					r.Delete("/shares/{shareId}", h.Share.Revoke)
				})
			})

			r.Group(func(r chi.Router) {
				r.Use(rt.authMiddleware.RequireStaff)

				r.Get("/audit", h.Audit.List)
				r.Get("/audit/entity/{entityType}/{entityId}", h.Audit.GetByEntity)

				r.Post("/market-data/sync", h.MarketData.Sync)
				r.Get("/market-data/health", h.MarketData.Health)
			})
		})
	})

	return r
}

func (rt *Router) databaseHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), healthTimeout)
	defer cancel()

	status := database.HealthCheck(ctx, rt.db)
	code := http.StatusOK
	if status.Status != "healthy" {
		rt.logger.Error("Database health check failed", zap.String("error", status.Error))
		code = http.StatusServiceUnavailable
	}
	writeJSON(w, code, status)
}

// readiness fails only on the primary database; the market data warehouse is
// optional and reported for information
func (rt *Router) readiness(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), healthTimeout)
	defer cancel()

	checks := map[string]interface{}{}
	healthy := true

	db := database.HealthCheck(ctx, rt.db)
	checks["database"] = db
	if db.Status != "healthy" {
		rt.logger.Error("Database health check failed", zap.String("error", db.Error))
		healthy = false
	}

	if rt.marketData != nil {
		checks["marketData"] = rt.marketData.Health(ctx)
	}

	status, code := "healthy", http.StatusOK
	if !healthy {
		status, code = "unhealthy", http.StatusServiceUnavailable
	}
	writeJSON(w, code, map[string]interface{}{
		"status": status,
		"checks": checks,
	})
}
