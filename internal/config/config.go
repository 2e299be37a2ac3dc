package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Supported database drivers
const (
	DriverSurrealDB = "surrealdb"
	DriverPostgres  = "postgres"
)

// Config holds all application configuration
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Auth     AuthConfig     `yaml:"auth"`
	Log      LogConfig      `yaml:"log"`
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port           string        `yaml:"port"`
	Env            string        `yaml:"env"`
	ReadTimeout    time.Duration `yaml:"read_timeout"`
	WriteTimeout   time.Duration `yaml:"write_timeout"`
	AllowedOrigins []string      `yaml:"allowed_origins"`
	MetricsEnabled bool          `yaml:"metrics_enabled"`

	// Write routes are limited per client
	RateLimitPerMinute int `yaml:"rate_limit_per_minute"`
	RateLimitBurst     int `yaml:"rate_limit_burst"`
}

// DatabaseConfig selects the persistence backend and holds its connection settings
type DatabaseConfig struct {
	Driver string `yaml:"driver"`

	// SurrealDB
	Host      string `yaml:"host"`
	Port      string `yaml:"port"`
	Namespace string `yaml:"namespace"`
	Database  string `yaml:"database"`
	User      string `yaml:"user"`
	Password  string `yaml:"password"`

	// PostgreSQL
	PostgresDSN     string        `yaml:"postgres_dsn"`
	MaxConns        int           `yaml:"max_conns"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"`
	AutoMigrate     bool          `yaml:"auto_migrate"`
}

// AuthConfig holds admin token settings
type AuthConfig struct {
	Enabled        bool   `yaml:"enabled"`
	PrivateKeyPath string `yaml:"private_key_path"`
	PublicKeyPath  string `yaml:"public_key_path"`
	ExpirationMins int    `yaml:"expiration_mins"`
	Issuer         string `yaml:"issuer"`
}

// LogConfig holds logger settings. An empty File logs to stdout.
type LogConfig struct {
	Level      string `yaml:"level"`
	Format     string `yaml:"format"`
	File       string `yaml:"file"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
	Compress   bool   `yaml:"compress"`
}

// Defaults returns the configuration used when nothing is set
func Defaults() *Config {
	return &Config{
		Server: ServerConfig{
			Port:           "8080",
			Env:            "development",
			ReadTimeout:    15 * time.Second,
			WriteTimeout:   15 * time.Second,
			AllowedOrigins: []string{"http://localhost:3000"},
			MetricsEnabled: true,

			RateLimitPerMinute: 60,
			RateLimitBurst:     10,
		},
		Database: DatabaseConfig{
			Driver:          DriverSurrealDB,
			Host:            "localhost",
			Port:            "8000",
			Namespace:       "piensaperu",
			Database:        "main",
			User:            "root",
			Password:        "root",
			MaxConns:        10,
			MaxConnLifetime: time.Hour,
			AutoMigrate:     true,
		},
		Auth: AuthConfig{
			Enabled:        false,
			PrivateKeyPath: "./keys/private.pem",
			PublicKeyPath:  "./keys/public.pem",
			ExpirationMins: 60,
			Issuer:         "api.piensaperu.pe",
		},
		Log: LogConfig{
			Level:      "info",
			Format:     "json",
			MaxSizeMB:  100,
			MaxBackups: 3,
			MaxAgeDays: 28,
		},
	}
}

// Load builds the configuration from defaults, then the YAML file named by
// CONFIG_FILE if set, then environment variables. Later sources win.
func Load() (*Config, error) {
	cfg := Defaults()

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}

	cfg.applyEnv()
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() {
	c.Server.Port = getEnv("SERVER_PORT", c.Server.Port)
	c.Server.Env = getEnv("SERVER_ENV", c.Server.Env)
	c.Server.ReadTimeout = getDurationEnv("SERVER_READ_TIMEOUT", c.Server.ReadTimeout)
	c.Server.WriteTimeout = getDurationEnv("SERVER_WRITE_TIMEOUT", c.Server.WriteTimeout)
	c.Server.AllowedOrigins = getSliceEnv("CORS_ALLOWED_ORIGINS", c.Server.AllowedOrigins)
	c.Server.MetricsEnabled = getBoolEnv("METRICS_ENABLED", c.Server.MetricsEnabled)
	c.Server.RateLimitPerMinute = getIntEnv("RATE_LIMIT_PER_MINUTE", c.Server.RateLimitPerMinute)
	c.Server.RateLimitBurst = getIntEnv("RATE_LIMIT_BURST", c.Server.RateLimitBurst)

	c.Database.Driver = getEnv("DB_DRIVER", c.Database.Driver)
	c.Database.Host = getEnv("DB_HOST", c.Database.Host)
	c.Database.Port = getEnv("DB_PORT", c.Database.Port)
	c.Database.Namespace = getEnv("DB_NAMESPACE", c.Database.Namespace)
	c.Database.Database = getEnv("DB_DATABASE", c.Database.Database)
	c.Database.User = getEnv("DB_USER", c.Database.User)
	c.Database.Password = getEnv("DB_PASSWORD", c.Database.Password)
	c.Database.PostgresDSN = getEnv("POSTGRES_DSN", c.Database.PostgresDSN)
	c.Database.MaxConns = getIntEnv("POSTGRES_MAX_CONNS", c.Database.MaxConns)
	c.Database.MaxConnLifetime = getDurationEnv("POSTGRES_MAX_CONN_LIFETIME", c.Database.MaxConnLifetime)
	c.Database.AutoMigrate = getBoolEnv("DB_AUTO_MIGRATE", c.Database.AutoMigrate)

	c.Auth.Enabled = getBoolEnv("AUTH_ENABLED", c.Auth.Enabled)
	c.Auth.PrivateKeyPath = getEnv("JWT_PRIVATE_KEY_PATH", c.Auth.PrivateKeyPath)
	c.Auth.PublicKeyPath = getEnv("JWT_PUBLIC_KEY_PATH", c.Auth.PublicKeyPath)
	c.Auth.ExpirationMins = getIntEnv("JWT_EXPIRATION_MINS", c.Auth.ExpirationMins)
	c.Auth.Issuer = getEnv("JWT_ISSUER", c.Auth.Issuer)

	c.Log.Level = getEnv("LOG_LEVEL", c.Log.Level)
	c.Log.Format = getEnv("LOG_FORMAT", c.Log.Format)
	c.Log.File = getEnv("LOG_FILE", c.Log.File)
	c.Log.MaxSizeMB = getIntEnv("LOG_MAX_SIZE_MB", c.Log.MaxSizeMB)
	c.Log.MaxBackups = getIntEnv("LOG_MAX_BACKUPS", c.Log.MaxBackups)
	c.Log.MaxAgeDays = getIntEnv("LOG_MAX_AGE_DAYS", c.Log.MaxAgeDays)
	c.Log.Compress = getBoolEnv("LOG_COMPRESS", c.Log.Compress)
}

// IsDevelopment returns true if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Server.Env == "development"
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	return c.Server.Env == "production"
}

// Validate checks that all required configuration values are present and valid.
// It returns an error describing all validation failures, or nil if valid.
func (c *Config) Validate() error {
	var errs []error

	// Server validation
	if c.Server.Port == "" {
		errs = append(errs, errors.New("SERVER_PORT is required"))
	}
	if c.Server.Env != "development" && c.Server.Env != "production" && c.Server.Env != "test" {
		errs = append(errs, fmt.Errorf("SERVER_ENV must be 'development', 'production', or 'test', got '%s'", c.Server.Env))
	}
	if len(c.Server.AllowedOrigins) == 0 {
		errs = append(errs, errors.New("CORS_ALLOWED_ORIGINS must have at least one origin"))
	}
	if c.Server.RateLimitPerMinute < 0 || c.Server.RateLimitBurst < 0 {
		errs = append(errs, errors.New("RATE_LIMIT_PER_MINUTE and RATE_LIMIT_BURST must not be negative"))
	}

	// Database validation
	switch c.Database.Driver {
	case DriverSurrealDB:
		if c.Database.Host == "" {
			errs = append(errs, errors.New("DB_HOST is required"))
		}
		if c.Database.Port == "" {
			errs = append(errs, errors.New("DB_PORT is required"))
		}
		if c.Database.Namespace == "" {
			errs = append(errs, errors.New("DB_NAMESPACE is required"))
		}
		if c.Database.Database == "" {
			errs = append(errs, errors.New("DB_DATABASE is required"))
		}
	case DriverPostgres:
		if c.Database.PostgresDSN == "" {
			errs = append(errs, errors.New("POSTGRES_DSN is required when DB_DRIVER is postgres"))
		}
		if c.Database.MaxConns <= 0 {
			errs = append(errs, errors.New("POSTGRES_MAX_CONNS must be positive"))
		}
	default:
		errs = append(errs, fmt.Errorf("DB_DRIVER must be '%s' or '%s', got '%s'", DriverSurrealDB, DriverPostgres, c.Database.Driver))
	}

	// Auth validation - keys are mandatory once tokens are checked
	if c.Auth.Enabled || c.IsProduction() {
		if c.Auth.PublicKeyPath == "" {
			errs = append(errs, errors.New("JWT_PUBLIC_KEY_PATH is required when auth is enabled"))
		}
	}
	if c.Auth.ExpirationMins <= 0 {
		errs = append(errs, errors.New("JWT_EXPIRATION_MINS must be positive"))
	}

	// Log validation
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("LOG_LEVEL must be debug, info, warn or error, got '%s'", c.Log.Level))
	}
	if c.Log.Format != "json" && c.Log.Format != "text" {
		errs = append(errs, fmt.Errorf("LOG_FORMAT must be 'json' or 'text', got '%s'", c.Log.Format))
	}
	if c.Log.File != "" && c.Log.MaxSizeMB <= 0 {
		errs = append(errs, errors.New("LOG_MAX_SIZE_MB must be positive when LOG_FILE is set"))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// Helper functions for reading environment variables

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

func getSliceEnv(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		return strings.Split(value, ",")
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}
