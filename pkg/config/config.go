package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds application configuration
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	JWT      JWTConfig
	Storage  StorageConfig
	Recall   RecallConfig
	Dispatch DispatchConfig
	Trigger  TriggerConfig
	NATS     NATSConfig
	Sweep    SweepConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port            string   `envconfig:"PORT" default:"8080"`
	Host            string   `envconfig:"HOST" default:"0.0.0.0"`
	Environment     string   `envconfig:"ENVIRONMENT" default:"development"`
	AllowedOrigins  []string `envconfig:"ALLOWED_ORIGINS" default:"http://localhost:3000"`
	ShutdownTimeout int      `envconfig:"SHUTDOWN_TIMEOUT" default:"10"`
	AuthDisabled    bool     `envconfig:"AUTH_DISABLED" default:"false"`
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host        string `envconfig:"DB_HOST" default:"localhost"`
	Port        string `envconfig:"DB_PORT" default:"5432"`
	User        string `envconfig:"DB_USER" default:"postgres"`
	Password    string `envconfig:"DB_PASSWORD" default:"postgres"`
	Name        string `envconfig:"DB_NAME" default:"customer_pulse"`
	SSLMode     string `envconfig:"DB_SSLMODE" default:"disable"`
	MaxConns    int    `envconfig:"DB_MAX_CONNS" default:"25"`
	MinConns    int    `envconfig:"DB_MIN_CONNS" default:"5"`
	AutoMigrate bool   `envconfig:"DB_AUTO_MIGRATE" default:"false"`
}

// RedisConfig holds Redis configuration. An empty host falls back to the
// in-process lock store.
type RedisConfig struct {
	Host     string `envconfig:"REDIS_HOST"`
	Port     string `envconfig:"REDIS_PORT" default:"6379"`
	Password string `envconfig:"REDIS_PASSWORD"`
	DB       int    `envconfig:"REDIS_DB" default:"0"`
}

// JWTConfig holds the secret used to validate service tokens
type JWTConfig struct {
	AccessSecret string        `envconfig:"JWT_ACCESS_SECRET"`
	AccessExpiry time.Duration `envconfig:"JWT_ACCESS_EXPIRY" default:"15m"`
	Issuer       string        `envconfig:"JWT_ISSUER" default:"customer-pulse"`
}

// StorageConfig holds storage configuration for the transcript archive
type StorageConfig struct {
	Enabled         bool   `envconfig:"STORAGE_ENABLED" default:"false"`
	Endpoint        string `envconfig:"STORAGE_ENDPOINT" default:"localhost:9000"`
	AccessKeyID     string `envconfig:"STORAGE_ACCESS_KEY" default:"minioadmin"`
	SecretAccessKey string `envconfig:"STORAGE_SECRET_KEY" default:"minioadmin"`
	BucketName      string `envconfig:"STORAGE_BUCKET" default:"customer-pulse"`
	UseSSL          bool   `envconfig:"STORAGE_USE_SSL" default:"false"`
}

// RecallConfig holds recording vendor configuration
type RecallConfig struct {
	APIKey        string        `envconfig:"RECALL_API_KEY"`
	BaseURL       string        `envconfig:"RECALL_API_URL" default:"https://us-west-2.recall.ai/api/v1"`
	WebhookSecret string        `envconfig:"RECALL_WEBHOOK_SECRET"`
	Timeout       time.Duration `envconfig:"RECALL_TIMEOUT" default:"30s"`
}

// DispatchConfig selects how task commands leave the service
type DispatchConfig struct {
	Backend string `envconfig:"DISPATCH_BACKEND" default:"trigger"`
}

// TriggerConfig holds task runner configuration
type TriggerConfig struct {
	APIKey         string        `envconfig:"TRIGGER_SECRET_KEY"`
	BaseURL        string        `envconfig:"TRIGGER_API_URL" default:"https://api.trigger.dev"`
	Timeout        time.Duration `envconfig:"TRIGGER_TIMEOUT" default:"10s"`
	MaxElapsedTime time.Duration `envconfig:"TRIGGER_RETRY_MAX_ELAPSED" default:"30s"`
}

// NATSConfig holds NATS configuration for the nats dispatch backend
type NATSConfig struct {
	URL           string `envconfig:"NATS_URL" default:"nats://localhost:4222"`
	SubjectPrefix string `envconfig:"NATS_SUBJECT_PREFIX" default:"tasks"`
}

// SweepConfig holds transcript recovery sweep configuration
type SweepConfig struct {
	Interval     time.Duration `envconfig:"SWEEP_INTERVAL" default:"0s"`
	BatchLimit   int           `envconfig:"SWEEP_BATCH_LIMIT" default:"5"`
	ItemTimeout  time.Duration `envconfig:"SWEEP_ITEM_TIMEOUT" default:"2m"`
	LockTTL      time.Duration `envconfig:"SWEEP_LOCK_TTL" default:"5m"`
	AnalysisTask string        `envconfig:"SWEEP_ANALYSIS_TASK" default:"process-meeting-transcript"`
	ThreadTask   string        `envconfig:"THREAD_ANALYSIS_TASK" default:"analyze-thread"`
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if exists (ignore error if file doesn't exist)
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables or defaults")
	}

	cfg := &Config{}
	sections := []interface{}{
		&cfg.Server,
		&cfg.Database,
		&cfg.Redis,
		&cfg.JWT,
		&cfg.Storage,
		&cfg.Recall,
		&cfg.Dispatch,
		&cfg.Trigger,
		&cfg.NATS,
		&cfg.Sweep,
	}
	for _, section := range sections {
		if err := envconfig.Process("", section); err != nil {
			return nil, fmt.Errorf("failed to read environment: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadDatabase reads only the server and database sections, for tools that
// touch the schema without talking to any vendor
func LoadDatabase() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables or defaults")
	}

	cfg := &Config{}
	if err := envconfig.Process("", &cfg.Server); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}
	if err := envconfig.Process("", &cfg.Database); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}
	return cfg, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Recall.APIKey == "" {
		return fmt.Errorf("RECALL_API_KEY is required")
	}
	if !c.Server.AuthDisabled && c.JWT.AccessSecret == "" {
		return fmt.Errorf("JWT_ACCESS_SECRET is required unless AUTH_DISABLED is set")
	}

	switch strings.ToLower(c.Dispatch.Backend) {
	case "trigger":
		if c.Trigger.APIKey == "" {
			return fmt.Errorf("TRIGGER_SECRET_KEY is required for the trigger dispatch backend")
		}
	case "nats":
		if c.NATS.URL == "" {
			return fmt.Errorf("NATS_URL is required for the nats dispatch backend")
		}
	default:
		return fmt.Errorf("unsupported DISPATCH_BACKEND %q", c.Dispatch.Backend)
	}

	if c.Sweep.BatchLimit <= 0 {
		return fmt.Errorf("SWEEP_BATCH_LIMIT must be positive")
	}
	return nil
}

// GetDatabaseDSN returns the database connection string
func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

// GetRedisAddr returns the Redis address
func (c *Config) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", c.Redis.Host, c.Redis.Port)
}

// RedisEnabled reports whether a Redis host was configured
func (c *Config) RedisEnabled() bool {
	return c.Redis.Host != ""
}
