package config

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jengaest/estimate-api/internal/secrets"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// Config holds all application configuration
type Config struct {
	App        AppConfig
	Database   DatabaseConfig
	Auth       AuthConfig
	Storage    StorageConfig
	Secrets    SecretsConfig
	Logging    LoggingConfig
	Server     ServerConfig
	CORS       CORSConfig
	Security   SecurityConfig
	RateLimit  RateLimitConfig
	Estimation EstimationConfig
	Sharing    SharingConfig
	AI         AIConfig
	MarketData MarketDataConfig
	Jobs       JobsConfig
}

type AppConfig struct {
	Name        string
	Environment string
	Port        int
}

// DatabaseConfig selects and configures the primary store.
// Driver is "postgres" or "sqlite"; Path is only used by sqlite.
type DatabaseConfig struct {
	Driver          string
	Host            string
	Port            int
	Name            string
	User            string
	Password        string
	SSLMode         string
	Path            string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime int
}

// AuthConfig configures bearer token validation and the service API key
type AuthConfig struct {
	JWTSecret string
	Issuer    string
	Audience  string
	APIKey    string
}

type StorageConfig struct {
	Mode                  string
	LocalBasePath         string
	CloudConnectionString string
	CloudContainer        string
	MaxUploadSizeMB       int64
	AllowedExtensions     []string
}

type SecretsConfig struct {
	// Source is "environment", "vault" or "auto"
	Source       string
	KeyVaultName string
	CacheEnabled bool
	CacheTTL     int // seconds
}

type LoggingConfig struct {
	Level  string
	Format string
}

type ServerConfig struct {
	ReadTimeout    int
	WriteTimeout   int
	RequestTimeout int
	EnableSwagger  bool
}

// CORSConfig holds CORS configuration
type CORSConfig struct {
	AllowedOrigins   []string
	AllowedMethods   []string
	AllowedHeaders   []string
	ExposedHeaders   []string
	AllowCredentials bool
	MaxAge           int
}

// SecurityConfig holds security header configuration
type SecurityConfig struct {
	EnableHSTS            bool
	HSTSMaxAge            int
	HSTSIncludeSubdomains bool
	ContentSecurityPolicy string
	FrameOptions          string
	ContentTypeNosniff    bool
	ReferrerPolicy        string
}

// RateLimitConfig holds rate limiting configuration
type RateLimitConfig struct {
	Enabled bool
	// RequestsPerMinute applies per client IP to the whole API
	RequestsPerMinute int
	// SharedRequestsPerMinute applies per client IP to public share links
	SharedRequestsPerMinute int
	WhitelistIPs            []string
	WhitelistPaths          []string
}

// EstimationConfig holds the defaults used when inputs are absent.
// Decimal values are kept as strings so they never pass through float64.
type EstimationConfig struct {
	DefaultBaseRate    string
	DefaultMultiplier  string
	DefaultContingency string
	RevisionRetries    int
	AIConfidenceScore  string
}

type SharingConfig struct {
	DefaultTTLHours int
	MaxTTLHours     int
}

// AIConfig configures the external AI estimation collaborator
type AIConfig struct {
	Enabled   bool
	Endpoint  string
	APIKey    string
	Model     string
	Timeout   int // seconds
	Workers   int
	QueueSize int
}

// MarketDataConfig configures the optional read-only SQL Server market-rate source
type MarketDataConfig struct {
	Enabled         bool
	Server          string
	Port            int
	Database        string
	User            string
	Password        string
	QueryTimeout    int
	MaxOpenConns    int
	ConnMaxLifetime int
	Schedule        string
}

// JobsConfig holds cron schedules for background jobs (seconds field first)
type JobsConfig struct {
	Enabled                  bool
	ShareExpirySchedule      string
	StaleProcessingSchedule  string
	ProcessingTimeoutMinutes int
	AuditCleanupSchedule     string
	AuditRetentionDays       int
}

// ConnectionString builds a PostgreSQL connection string
func (d *DatabaseConfig) ConnectionString() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode,
	)
}

// ConnMaxLifetimeDuration returns connection max lifetime as duration
func (d *DatabaseConfig) ConnMaxLifetimeDuration() time.Duration {
	return time.Duration(d.ConnMaxLifetime) * time.Second
}

// ReadTimeoutDuration returns read timeout as duration
func (s *ServerConfig) ReadTimeoutDuration() time.Duration {
	return time.Duration(s.ReadTimeout) * time.Second
}

// WriteTimeoutDuration returns write timeout as duration
func (s *ServerConfig) WriteTimeoutDuration() time.Duration {
	return time.Duration(s.WriteTimeout) * time.Second
}

// RequestTimeoutDuration returns request timeout as duration
func (s *ServerConfig) RequestTimeoutDuration() time.Duration {
	return time.Duration(s.RequestTimeout) * time.Second
}

// MaxUploadBytes returns the upload size limit in bytes
func (s *StorageConfig) MaxUploadBytes() int64 {
	return s.MaxUploadSizeMB * 1024 * 1024
}

// Defaults parses the estimation defaults. Invalid values fall back to the built-in constants.
func (e *EstimationConfig) Defaults() (baseRate, multiplier, contingency decimal.Decimal) {
	return parseDecimal(e.DefaultBaseRate, "50000.00"),
		parseDecimal(e.DefaultMultiplier, "1.00"),
		parseDecimal(e.DefaultContingency, "10.00")
}

// ConfidenceScore parses the confidence recorded against AI estimates
func (e *EstimationConfig) ConfidenceScore() decimal.Decimal {
	return parseDecimal(e.AIConfidenceScore, "85.00")
}

func parseDecimal(value, fallback string) decimal.Decimal {
	if d, err := decimal.NewFromString(value); err == nil {
		return d
	}
	return decimal.RequireFromString(fallback)
}

// DefaultTTL returns the share link lifetime used when the caller does not pass one
func (s *SharingConfig) DefaultTTL() time.Duration {
	return time.Duration(s.DefaultTTLHours) * time.Hour
}

// MaxTTL returns the longest share link lifetime a caller may request
func (s *SharingConfig) MaxTTL() time.Duration {
	return time.Duration(s.MaxTTLHours) * time.Hour
}

// TimeoutDuration returns the AI request timeout
func (a *AIConfig) TimeoutDuration() time.Duration {
	return time.Duration(a.Timeout) * time.Second
}

// QueryTimeoutDuration returns the market-data query timeout
func (m *MarketDataConfig) QueryTimeoutDuration() time.Duration {
	return time.Duration(m.QueryTimeout) * time.Second
}

// ConnMaxLifetimeDuration returns connection max lifetime as duration
func (m *MarketDataConfig) ConnMaxLifetimeDuration() time.Duration {
	return time.Duration(m.ConnMaxLifetime) * time.Second
}

// ProcessingTimeout returns how long an estimate may stay in processing
func (j *JobsConfig) ProcessingTimeout() time.Duration {
	return time.Duration(j.ProcessingTimeoutMinutes) * time.Minute
}

// Load loads configuration from defaults, config.json and environment variables.
// It does not touch Key Vault; use LoadWithSecrets for that.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("json")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if cfg.Secrets.KeyVaultName == "" {
		cfg.Secrets.KeyVaultName = v.GetString("AZURE_KEY_VAULT_NAME")
	}
	if cfg.AI.APIKey == "" {
		cfg.AI.APIKey = v.GetString("GEMINI_API_KEY")
	}
	if model := v.GetString("GEMINI_MODEL"); model != "" {
		cfg.AI.Model = model
	}

	return &cfg, nil
}

// Secret references resolved by LoadWithSecrets
var (
	secretDatabasePassword   = secrets.Ref{VaultName: "postgres-password", EnvName: "DATABASE_PASSWORD"}
	secretJWT                = secrets.Ref{VaultName: "jwt-signing-secret", EnvName: "AUTH_JWTSECRET"}
	secretAPIKey             = secrets.Ref{VaultName: "service-api-key", EnvName: "AUTH_APIKEY"}
	secretAIKey              = secrets.Ref{VaultName: "gemini-api-key", EnvName: "GEMINI_API_KEY"}
	secretStorage            = secrets.Ref{VaultName: "storage-connection-string", EnvName: "STORAGE_CLOUDCONNECTIONSTRING"}
	secretMarketDataPassword = secrets.Ref{VaultName: "marketdata-password", EnvName: "MARKETDATA_PASSWORD"}
)

// LoadWithSecrets loads configuration and then overlays credentials from the secrets
// provider. In development the provider reads environment variables; in staging and
// production it reads Azure Key Vault.
func LoadWithSecrets(ctx context.Context, logger *zap.Logger) (*Config, error) {
	cfg, err := Load()
	if err != nil {
		return nil, err
	}

	provider, err := secrets.NewProvider(&secrets.ProviderConfig{
		Source:       secrets.SecretSource(cfg.Secrets.Source),
		VaultName:    cfg.Secrets.KeyVaultName,
		Environment:  cfg.App.Environment,
		CacheEnabled: cfg.Secrets.CacheEnabled,
		CacheTTL:     time.Duration(cfg.Secrets.CacheTTL) * time.Second,
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize secrets provider: %w", err)
	}

	ApplySecrets(ctx, cfg, provider)

	logger.Info("Configuration loaded",
		zap.String("environment", cfg.App.Environment),
		zap.String("secretSource", string(provider.Source())),
		zap.String("databaseDriver", cfg.Database.Driver),
	)
	return cfg, nil
}

// ApplySecrets overlays credentials from the provider onto cfg, keeping existing values as fallbacks
func ApplySecrets(ctx context.Context, cfg *Config, provider *secrets.Provider) {
	cfg.Database.Password = provider.GetOrDefault(ctx, secretDatabasePassword, cfg.Database.Password)
	cfg.Auth.JWTSecret = provider.GetOrDefault(ctx, secretJWT, cfg.Auth.JWTSecret)
	cfg.Auth.APIKey = provider.GetOrDefault(ctx, secretAPIKey, cfg.Auth.APIKey)
	cfg.AI.APIKey = provider.GetOrDefault(ctx, secretAIKey, cfg.AI.APIKey)
	cfg.Storage.CloudConnectionString = provider.GetOrDefault(ctx, secretStorage, cfg.Storage.CloudConnectionString)
	if cfg.MarketData.Enabled {
		cfg.MarketData.Password = provider.GetOrDefault(ctx, secretMarketDataPassword, cfg.MarketData.Password)
	}
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "Estimate API")
	v.SetDefault("app.environment", "development")
	v.SetDefault("app.port", 8080)

	v.SetDefault("database.driver", "postgres")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.name", "estimates")
	v.SetDefault("database.user", "estimates_user")
	v.SetDefault("database.password", "estimates_password")
	v.SetDefault("database.sslMode", "disable")
	v.SetDefault("database.path", "./estimates.db")
	v.SetDefault("database.maxOpenConns", 25)
	v.SetDefault("database.maxIdleConns", 5)
	v.SetDefault("database.connMaxLifetime", 300)

	v.SetDefault("auth.issuer", "estimate-api")

	v.SetDefault("secrets.source", "auto")
	v.SetDefault("secrets.cacheEnabled", true)
	v.SetDefault("secrets.cacheTTL", 300)

	v.SetDefault("storage.mode", "local")
	v.SetDefault("storage.localBasePath", "./storage")
	v.SetDefault("storage.cloudContainer", "plans")
	v.SetDefault("storage.maxUploadSizeMB", 50)
	v.SetDefault("storage.allowedExtensions", []string{".pdf", ".dwg", ".dxf"})

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")

	v.SetDefault("server.readTimeout", 30)
	v.SetDefault("server.writeTimeout", 60)
	v.SetDefault("server.requestTimeout", 60)
	v.SetDefault("server.enableSwagger", true)

	v.SetDefault("cors.allowedOrigins", []string{})
	v.SetDefault("cors.allowedMethods", []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"})
	v.SetDefault("cors.allowedHeaders", []string{"Accept", "Authorization", "Content-Type", "X-API-Key", "X-Request-ID"})
	v.SetDefault("cors.exposedHeaders", []string{"Location", "X-Request-ID"})
	v.SetDefault("cors.allowCredentials", true)
	v.SetDefault("cors.maxAge", 300)

	v.SetDefault("security.enableHSTS", false)
	v.SetDefault("security.hstsMaxAge", 31536000)
	v.SetDefault("security.hstsIncludeSubdomains", true)
	v.SetDefault("security.contentSecurityPolicy", "default-src 'self'")
	v.SetDefault("security.frameOptions", "DENY")
	v.SetDefault("security.contentTypeNosniff", true)
	v.SetDefault("security.referrerPolicy", "strict-origin-when-cross-origin")

	v.SetDefault("rateLimit.enabled", true)
	v.SetDefault("rateLimit.requestsPerMinute", 120)
	v.SetDefault("rateLimit.sharedRequestsPerMinute", 30)
	v.SetDefault("rateLimit.whitelistIPs", []string{"127.0.0.1", "::1"})
	v.SetDefault("rateLimit.whitelistPaths", []string{"/health", "/health/db", "/health/ready"})

	v.SetDefault("estimation.defaultBaseRate", "50000.00")
	v.SetDefault("estimation.defaultMultiplier", "1.00")
	v.SetDefault("estimation.defaultContingency", "10.00")
	v.SetDefault("estimation.revisionRetries", 3)
	v.SetDefault("estimation.aiConfidenceScore", "85.00")

	v.SetDefault("sharing.defaultTTLHours", 24*7)
	v.SetDefault("sharing.maxTTLHours", 24*90)

	v.SetDefault("ai.enabled", false)
	v.SetDefault("ai.endpoint", "https://generativelanguage.googleapis.com/v1beta")
	v.SetDefault("ai.model", "gemini-1.5-flash")
	v.SetDefault("ai.timeout", 120)
	v.SetDefault("ai.workers", 2)
	v.SetDefault("ai.queueSize", 32)

	v.SetDefault("marketData.enabled", false)
	v.SetDefault("marketData.port", 1433)
	v.SetDefault("marketData.queryTimeout", 30)
	v.SetDefault("marketData.maxOpenConns", 5)
	v.SetDefault("marketData.connMaxLifetime", 300)
	v.SetDefault("marketData.schedule", "0 0 3 * * *")

	v.SetDefault("jobs.enabled", true)
	v.SetDefault("jobs.shareExpirySchedule", "0 0 * * * *")
	v.SetDefault("jobs.staleProcessingSchedule", "0 */5 * * * *")
	v.SetDefault("jobs.processingTimeoutMinutes", 30)
	v.SetDefault("jobs.auditCleanupSchedule", "0 30 2 * * *")
	v.SetDefault("jobs.auditRetentionDays", 365)
}
