package database

import (
	"context"
	"fmt"
	"time"

	"github.com/jengaest/estimate-api/internal/config"
	"github.com/jengaest/estimate-api/internal/domain"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase opens the primary store selected by cfg.Driver
func NewDatabase(cfg *config.DatabaseConfig, log *zap.Logger) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.Driver {
	case "sqlite":
		dialector = sqlite.Open(cfg.Path)
	case "postgres", "":
		dialector = postgres.Open(cfg.ConnectionString())
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}

	db, err := Open(dialector)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}

	if cfg.Driver == "sqlite" {
		// sqlite allows a single writer; serialising connections avoids SQLITE_BUSY
		sqlDB.SetMaxOpenConns(1)
		if err := db.Exec("PRAGMA foreign_keys = ON").Error; err != nil {
			return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
		}
	} else {
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
		sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
		sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetimeDuration())
	}

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	log.Info("Database connection established",
		zap.String("driver", db.Dialector.Name()),
		zap.String("database", cfg.Name),
	)
	return db, nil
}

// Open wraps gorm.Open with the settings every connection in this service uses.
// TranslateError maps unique violations to gorm.ErrDuplicatedKey on all drivers.
func Open(dialector gorm.Dialector) (*gorm.DB, error) {
	return gorm.Open(dialector, &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
}

// AutoMigrate creates tables from the models. Production schemas come from the
// goose migrations; this is used for sqlite development databases and tests.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&domain.ProjectType{},
		&domain.Location{},
		&domain.Estimate{},
		&domain.EstimateItem{},
		&domain.EstimateRevision{},
		&domain.EstimateShare{},
		&domain.AIEstimate{},
		&domain.AuditLog{},
	)
}

// HealthStatus reports database reachability and pool statistics
type HealthStatus struct {
	Status          string `json:"status"`
	Driver          string `json:"driver"`
	OpenConnections int    `json:"openConnections"`
	InUse           int    `json:"inUse"`
	Idle            int    `json:"idle"`
	LatencyMs       int64  `json:"latencyMs"`
	Error           string `json:"error,omitempty"`
}

// HealthCheck pings the database within the context deadline
func HealthCheck(ctx context.Context, db *gorm.DB) HealthStatus {
	status := HealthStatus{Status: "healthy", Driver: db.Dialector.Name()}

	sqlDB, err := db.DB()
	if err != nil {
		status.Status = "unhealthy"
		status.Error = err.Error()
		return status
	}

	start := time.Now()
	if err := sqlDB.PingContext(ctx); err != nil {
		status.Status = "unhealthy"
		status.Error = err.Error()
	}
	status.LatencyMs = time.Since(start).Milliseconds()

	stats := sqlDB.Stats()
	status.OpenConnections = stats.OpenConnections
	status.InUse = stats.InUse
	status.Idle = stats.Idle
	return status
}
