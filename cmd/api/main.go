package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jengaest/estimate-api/docs"
	"github.com/jengaest/estimate-api/internal/aiestimator"
	"github.com/jengaest/estimate-api/internal/auth"
	"github.com/jengaest/estimate-api/internal/config"
	"github.com/jengaest/estimate-api/internal/costing"
	"github.com/jengaest/estimate-api/internal/database"
	"github.com/jengaest/estimate-api/internal/http/handler"
	"github.com/jengaest/estimate-api/internal/http/middleware"
	"github.com/jengaest/estimate-api/internal/http/router"
	"github.com/jengaest/estimate-api/internal/jobs"
	"github.com/jengaest/estimate-api/internal/logger"
	"github.com/jengaest/estimate-api/internal/marketdata"
	"github.com/jengaest/estimate-api/internal/repository"
	"github.com/jengaest/estimate-api/internal/service"
	"github.com/jengaest/estimate-api/internal/storage"
	"go.uber.org/zap"
)

// @title Jenga Estimate API
// @version 1.0
// @description Construction cost estimation: rate-based estimates, revisions, share links, plan uploads and AI-assisted estimates
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.email support@jengaest.co.ke

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT Bearer token

// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name x-api-key
// @description API Key for system operations
// @Security BearerAuth
// @Security ApiKeyAuth

const (
	shutdownTimeout       = 30 * time.Second
	marketRateSyncTimeout = 5 * time.Minute
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx := context.Background()

	// Basic configuration first, for logging setup
	basicCfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	log, err := logger.NewLogger(&basicCfg.Logging, &basicCfg.App)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	log.Info("Starting application",
		zap.String("app", basicCfg.App.Name),
		zap.String("env", basicCfg.App.Environment),
		zap.Int("port", basicCfg.App.Port),
	)

	switch basicCfg.App.Environment {
	case "staging":
		docs.SwaggerInfo.Host = "estimate-api-staging.jengaest.co.ke"
	case "production":
		docs.SwaggerInfo.Host = "api.jengaest.co.ke"
	default:
		docs.SwaggerInfo.Host = fmt.Sprintf("localhost:%d", basicCfg.App.Port)
	}

	// Development reads secrets from the environment, staging and production from Key Vault
	cfg, err := config.LoadWithSecrets(ctx, log)
	if err != nil {
		return fmt.Errorf("failed to load secrets: %w", err)
	}

	db, err := database.NewDatabase(&cfg.Database, log)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	if cfg.Database.Driver == "sqlite" {
		// sqlite is used for local development and has no goose migrations
		if err := database.AutoMigrate(db); err != nil {
			return fmt.Errorf("failed to migrate sqlite database: %w", err)
		}
	}

	fileStorage, err := storage.NewStorage(&cfg.Storage, log)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	log.Info("Storage initialized", zap.String("mode", cfg.Storage.Mode))

	// Market data is optional; the service runs on stored rates without it
	var marketClient *marketdata.Client
	if cfg.MarketData.Enabled {
		marketClient, err = marketdata.NewClient(&cfg.MarketData, log)
		if err != nil {
			log.Warn("Market data connection failed, continuing without it", zap.Error(err))
			marketClient = nil
		} else {
			log.Info("Market data connected",
				zap.Int("max_open_conns", cfg.MarketData.MaxOpenConns),
				zap.Int("query_timeout_seconds", cfg.MarketData.QueryTimeout),
			)
		}
	} else {
		log.Info("Market data not configured, skipping")
	}

	var estimator service.Estimator
	if cfg.AI.Enabled {
		estimator = aiestimator.NewClient(&cfg.AI, nil, log)
		log.Info("AI estimation enabled", zap.String("model", cfg.AI.Model))
	} else {
		log.Info("AI estimation disabled")
	}
	taskRunner := jobs.NewTaskRunner(cfg.AI.Workers, cfg.AI.QueueSize, log)

	baseRate, multiplier, contingency := cfg.Estimation.Defaults()
	calculator := costing.NewCalculator(costing.Defaults{
		BaseRate:    baseRate,
		Multiplier:  multiplier,
		Contingency: contingency,
	})

	// Repositories
	projectTypeRepo := repository.NewProjectTypeRepository(db)
	locationRepo := repository.NewLocationRepository(db)
	estimateRepo := repository.NewEstimateRepository(db)
	itemRepo := repository.NewEstimateItemRepository(db)
	revisionRepo := repository.NewEstimateRevisionRepository(db)
	shareRepo := repository.NewEstimateShareRepository(db)
	aiRepo := repository.NewAIEstimateRepository(db)
	auditLogRepo := repository.NewAuditLogRepository(db)

	// Services
	referenceService := service.NewReferenceService(projectTypeRepo, locationRepo, baseRate, log)
	estimateService := service.NewEstimateService(db, estimateRepo, itemRepo, revisionRepo, referenceService, calculator, fileStorage, cfg.Estimation.RevisionRetries, log)
	calculationService := service.NewCalculationService(referenceService, calculator)
	shareService := service.NewShareService(shareRepo, estimateRepo, cfg.Sharing.DefaultTTL(), cfg.Sharing.MaxTTL(), log)
	uploadService := service.NewUploadService(db, estimateService, fileStorage, cfg.Storage.AllowedExtensions, cfg.Storage.MaxUploadBytes(), log)
	aiService := service.NewAIEstimateService(db, estimateRepo, aiRepo, referenceService, calculator, estimator, taskRunner, cfg.Estimation.ConfidenceScore(), log)
	auditLogService := service.NewAuditLogService(auditLogRepo, log)

	var rateSource service.RateSource
	if marketClient != nil {
		rateSource = marketClient
	}
	marketRateService := service.NewMarketRateService(rateSource, locationRepo, projectTypeRepo, log)

	// Middleware
	authMiddleware := auth.NewMiddleware(&cfg.Auth, log)
	rateLimiter := middleware.NewRateLimiter(&cfg.RateLimit, log)
	auditMiddleware := middleware.NewAuditMiddleware(auditLogService, nil, log)

	rt := router.NewRouter(
		cfg,
		log,
		db,
		marketRateService,
		authMiddleware,
		rateLimiter,
		auditMiddleware,
		router.Handlers{
			Estimate:    handler.NewEstimateHandler(estimateService, log),
			Calculation: handler.NewCalculationHandler(calculationService, log),
			Reference:   handler.NewReferenceHandler(referenceService, log),
			Share:       handler.NewShareHandler(shareService, log),
			Upload:      handler.NewUploadHandler(uploadService, cfg.Storage.MaxUploadSizeMB, log),
			AI:          handler.NewAIEstimateHandler(aiService, log),
			Audit:       handler.NewAuditHandler(auditLogService, log),
			MarketData:  handler.NewMarketDataHandler(marketRateService, log),
			Auth:        handler.NewAuthHandler(),
		},
	)

	var scheduler *jobs.Scheduler
	if cfg.Jobs.Enabled {
		scheduler = jobs.NewScheduler(log)
		registerJobs(scheduler, cfg, shareService, aiService, auditLogService, marketRateService, log)
		scheduler.Start()
		log.Info("Scheduler started", zap.Strings("jobs", scheduler.JobNames()))
	} else {
		log.Info("Background jobs disabled")
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.App.Port),
		Handler:      rt.Setup(),
		ReadTimeout:  cfg.Server.ReadTimeoutDuration(),
		WriteTimeout: cfg.Server.WriteTimeoutDuration(),
	}

	serverErrors := make(chan error, 1)
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		serverErrors <- srv.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
	case sig := <-shutdown:
		log.Info("Shutdown signal received", zap.String("signal", sig.String()))

		if scheduler != nil {
			<-scheduler.Stop().Done()
			log.Info("Scheduler stopped")
		}

		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			log.Error("Failed to shutdown gracefully", zap.Error(err))
			return err
		}

		// AI tasks already accepted get the rest of the shutdown window
		if err := taskRunner.Stop(ctx); err != nil {
			log.Warn("Background tasks did not finish before shutdown", zap.Error(err))
		}

		if err := marketClient.Close(); err != nil {
			log.Warn("Error closing market data connection", zap.Error(err))
		}

		log.Info("Server stopped gracefully")
	}

	return nil
}

// registerJobs adds the periodic sweeps. A job that fails to register is
// logged and skipped so the others still run.
func registerJobs(
	scheduler *jobs.Scheduler,
	cfg *config.Config,
	shares *service.ShareService,
	ai *service.AIEstimateService,
	audit *service.AuditLogService,
	marketRates *service.MarketRateService,
	log *zap.Logger,
) {
	sweeps := []struct {
		job  *jobs.SweepJob
		cron string
	}{
		{jobs.NewShareExpiryJob(shares, log), cfg.Jobs.ShareExpirySchedule},
		{jobs.NewStaleProcessingJob(ai, cfg.Jobs.ProcessingTimeout(), log), cfg.Jobs.StaleProcessingSchedule},
		{jobs.NewAuditCleanupJob(audit, cfg.Jobs.AuditRetentionDays, log), cfg.Jobs.AuditCleanupSchedule},
	}
	for _, s := range sweeps {
		if err := s.job.Register(scheduler, s.cron); err != nil {
			log.Error("Failed to register job", zap.String("job", s.job.Name()), zap.Error(err))
		}
	}

	if !marketRates.IsEnabled() {
		log.Info("Market rate sync disabled, market data unavailable")
		return
	}
	if err := jobs.RegisterMarketRateSyncJob(
		scheduler,
		marketRates,
		log,
		cfg.MarketData.Schedule,
		marketRateSyncTimeout,
		true,
	); err != nil {
		log.Error("Failed to register market rate sync job", zap.Error(err))
	}
}
