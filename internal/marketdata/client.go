// Package marketdata provides read-only access to the SQL Server market-rate
// warehouse that publishes county cost indices and per-project-type base rates.
package marketdata

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/jengaest/estimate-api/internal/config"
	_ "github.com/microsoft/go-mssqldb" // SQL Server driver
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const (
	defaultMaxRetries     = 3
	defaultInitialBackoff = 1 * time.Second
	defaultMaxBackoff     = 10 * time.Second
	defaultBackoffFactor  = 2.0

	defaultHealthCheckTimeout = 5 * time.Second
)

const (
	countyRatesQuery = `SELECT county_code, cost_multiplier
		FROM market_county_index
		WHERE is_current = 1
		ORDER BY county_code`

	projectRatesQuery = `SELECT project_type_name, base_cost_per_sqm
		FROM market_project_rates
		WHERE is_current = 1
		ORDER BY project_type_name`
)

// CountyRate is the current cost multiplier published for a county
type CountyRate struct {
	CountyCode     string
	CostMultiplier decimal.Decimal
}

// ProjectRate is the current base cost per square metre for a project type
type ProjectRate struct {
	ProjectTypeName string
	BaseCostPerSqm  decimal.Decimal
}

// HealthStatus represents the health check result for the warehouse connection
type HealthStatus struct {
	Status    string        `json:"status"`
	Latency   time.Duration `json:"latency_ms"`
	Error     string        `json:"error,omitempty"`
	Open      int           `json:"open_connections"`
	InUse     int           `json:"in_use"`
	WaitCount int64         `json:"wait_count"`
}

// Client reads current market rates. A nil *Client is valid and reports disabled.
type Client struct {
	db           *sql.DB
	logger       *zap.Logger
	queryTimeout time.Duration
}

// NewClient connects to the warehouse with retries. It returns nil, nil when
// the source is disabled or has no credentials.
func NewClient(cfg *config.MarketDataConfig, logger *zap.Logger) (*Client, error) {
	if cfg == nil || !cfg.Enabled {
		logger.Info("market data source disabled")
		return nil, nil
	}

	if cfg.Server == "" || cfg.User == "" || cfg.Password == "" {
		logger.Warn("market data enabled but missing credentials, skipping connection",
			zap.Bool("serverPresent", cfg.Server != ""),
			zap.Bool("userPresent", cfg.User != ""),
			zap.Bool("passwordPresent", cfg.Password != ""),
		)
		return nil, nil
	}

	connStr := BuildConnectionString(cfg)

	var (
		db  *sql.DB
		err error
	)
	backoff := defaultInitialBackoff

	for attempt := 1; attempt <= defaultMaxRetries; attempt++ {
		db, err = sql.Open("sqlserver", connStr)
		if err == nil {
			db.SetMaxOpenConns(cfg.MaxOpenConns)
			db.SetConnMaxLifetime(cfg.ConnMaxLifetimeDuration())

			ctx, cancel := context.WithTimeout(context.Background(), defaultHealthCheckTimeout)
			err = db.PingContext(ctx)
			cancel()

			if err == nil {
				logger.Info("market data connection established", zap.Int("attempts", attempt))
				return NewClientWithDB(db, cfg.QueryTimeoutDuration(), logger), nil
			}
			_ = db.Close()
		}

		logger.Warn("market data connection attempt failed",
			zap.Error(err),
			zap.Int("attempt", attempt),
			zap.Int("maxAttempts", defaultMaxRetries),
		)
		if attempt < defaultMaxRetries {
			time.Sleep(backoff)
			backoff = min(time.Duration(float64(backoff)*defaultBackoffFactor), defaultMaxBackoff)
		}
	}

	return nil, fmt.Errorf("failed to connect to market data after %d attempts: %w", defaultMaxRetries, err)
}

// NewClientWithDB wraps an existing connection pool
func NewClientWithDB(db *sql.DB, queryTimeout time.Duration, logger *zap.Logger) *Client {
	if queryTimeout <= 0 {
		queryTimeout = 30 * time.Second
	}
	return &Client{db: db, logger: logger, queryTimeout: queryTimeout}
}

// BuildConnectionString constructs a sqlserver:// URL from the config
func BuildConnectionString(cfg *config.MarketDataConfig) string {
	port := cfg.Port
	if port == 0 {
		port = 1433
	}

	query := url.Values{}
	query.Add("encrypt", "true")
	query.Add("TrustServerCertificate", "false")
	query.Add("connection timeout", "30")
	query.Add("ApplicationIntent", "ReadOnly")
	if cfg.Database != "" {
		query.Add("database", cfg.Database)
	}

	u := &url.URL{
		Scheme:   "sqlserver",
		User:     url.UserPassword(cfg.User, cfg.Password),
		Host:     cfg.Server + ":" + strconv.Itoa(port),
		RawQuery: query.Encode(),
	}
	return u.String()
}

// IsEnabled reports whether the client is connected
func (c *Client) IsEnabled() bool {
	return c != nil && c.db != nil
}

// Close releases the connection pool
func (c *Client) Close() error {
	if !c.IsEnabled() {
		return nil
	}
	if err := c.db.Close(); err != nil {
		return fmt.Errorf("failed to close market data connection: %w", err)
	}
	return nil
}

// HealthCheck pings the warehouse and reports pool statistics
func (c *Client) HealthCheck(ctx context.Context) *HealthStatus {
	if !c.IsEnabled() {
		return &HealthStatus{Status: "disabled"}
	}

	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, defaultHealthCheckTimeout)
		defer cancel()
	}

	start := time.Now()
	err := c.db.PingContext(ctx)
	stats := c.db.Stats()

	status := &HealthStatus{
		Status:    "healthy",
		Latency:   time.Since(start),
		Open:      stats.OpenConnections,
		InUse:     stats.InUse,
		WaitCount: stats.WaitCount,
	}
	if err != nil {
		status.Status = "unhealthy"
		status.Error = err.Error()
	}
	return status
}

// CountyRates returns the current multiplier of every county that publishes one
func (c *Client) CountyRates(ctx context.Context) ([]CountyRate, error) {
	var rates []CountyRate
	err := c.query(ctx, countyRatesQuery, func(rows *sql.Rows) error {
		var (
			code       string
			multiplier decimal.NullDecimal
		)
		if err := rows.Scan(&code, &multiplier); err != nil {
			return err
		}
		if multiplier.Valid {
			rates = append(rates, CountyRate{CountyCode: code, CostMultiplier: multiplier.Decimal})
		}
		return nil
	})
	return rates, err
}

// ProjectRates returns the current base rate of every project type that publishes one
func (c *Client) ProjectRates(ctx context.Context) ([]ProjectRate, error) {
	var rates []ProjectRate
	err := c.query(ctx, projectRatesQuery, func(rows *sql.Rows) error {
		var (
			name string
			base decimal.NullDecimal
		)
		if err := rows.Scan(&name, &base); err != nil {
			return err
		}
		if base.Valid {
			rates = append(rates, ProjectRate{ProjectTypeName: name, BaseCostPerSqm: base.Decimal})
		}
		return nil
	})
	return rates, err
}

func (c *Client) query(ctx context.Context, query string, scan func(*sql.Rows) error) error {
	if !c.IsEnabled() {
		return fmt.Errorf("market data client not initialized")
	}

	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.queryTimeout)
		defer cancel()
	}

	start := time.Now()
	rows, err := c.db.QueryContext(ctx, query)
	if err != nil {
		c.logger.Error("market data query failed", zap.Error(err), zap.Duration("duration", time.Since(start)))
		return fmt.Errorf("query execution failed: %w", err)
	}
	defer rows.Close()

	count := 0
	for rows.Next() {
		if err := scan(rows); err != nil {
			return fmt.Errorf("failed to scan row: %w", err)
		}
		count++
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("error iterating rows: %w", err)
	}

	c.logger.Debug("market data query completed",
		zap.Int("rows", count),
		zap.Duration("duration", time.Since(start)),
	)
	return nil
}
