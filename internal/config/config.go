package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Supported document store backends.
const (
	BackendFile     = "file"
	BackendPostgres = "postgres"
	BackendS3       = "s3"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig
	Store    StoreConfig
	Database DatabaseConfig
	Logger   LoggerConfig
	S3       S3Config
	Static   StaticConfig
}

// ServerConfig holds server-related configuration.
type ServerConfig struct {
	Host string
	Port int
}

// StoreConfig selects and configures the code document store.
type StoreConfig struct {
	Backend      string // "file", "postgres" or "s3"
	FilePath     string
	DocumentName string // postgres row name and S3 key stem
}

// DatabaseConfig holds database-related configuration.
type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	Database        string
	MaxConnections  int
	MinConnections  int
	MaxConnLifetime int // seconds
}

// LoggerConfig holds logger-related configuration.
type LoggerConfig struct {
	Level  string
	Format string // "json" or "console"
}

// S3Config holds AWS S3 configuration for the document store and code lists.
type S3Config struct {
	Bucket string
	Region string
	Prefix string // Path prefix within bucket (e.g., "codebind/")
}

// StaticConfig holds the static site configuration.
type StaticConfig struct {
	Dir string // empty disables static file serving
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Host: getEnv("SERVER_HOST", "localhost"),
			Port: getEnvAsInt("SERVER_PORT", 5000),
		},
		Store: StoreConfig{
			Backend:      strings.ToLower(getEnv("STORE_BACKEND", BackendFile)),
			FilePath:     getEnv("STORE_FILE_PATH", "codes.json"),
			DocumentName: getEnv("STORE_DOCUMENT_NAME", "codes"),
		},
		Database: DatabaseConfig{
			Host:            getEnv("DB_HOST", "localhost"),
			Port:            getEnvAsInt("DB_PORT", 5432),
			User:            getEnv("DB_USER", "postgres"),
			Password:        getEnv("DB_PASSWORD", ""),
			Database:        getEnv("DB_NAME", "codebind"),
			MaxConnections:  getEnvAsInt("DB_MAX_CONNECTIONS", 10),
			MinConnections:  getEnvAsInt("DB_MIN_CONNECTIONS", 1),
			MaxConnLifetime: getEnvAsInt("DB_MAX_CONN_LIFETIME", 300),
		},
		Logger: LoggerConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
		S3: S3Config{
			Bucket: getEnv("S3_BUCKET", ""),
			Region: getEnv("S3_REGION", "us-east-1"),
			Prefix: getEnv("S3_PREFIX", "codebind/"),
		},
		Static: StaticConfig{
			Dir: getEnv("STATIC_DIR", ""),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	switch c.Store.Backend {
	case BackendFile:
		if c.Store.FilePath == "" {
			return fmt.Errorf("store file path is required for the file backend")
		}
	case BackendPostgres:
		if c.Store.DocumentName == "" {
			return fmt.Errorf("store document name is required")
		}
		if err := c.Database.Validate(); err != nil {
			return err
		}
	case BackendS3:
		if c.Store.DocumentName == "" {
			return fmt.Errorf("store document name is required")
		}
		if c.S3.Bucket == "" {
			return fmt.Errorf("S3 bucket is required for the s3 backend")
		}
		if c.S3.Region == "" {
			return fmt.Errorf("S3 region is required for the s3 backend")
		}
	default:
		return fmt.Errorf("invalid store backend: %s (must be file, postgres, or s3)", c.Store.Backend)
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}

	if !validLogLevels[c.Logger.Level] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.Logger.Level)
	}

	if c.Logger.Format != "json" && c.Logger.Format != "console" {
		return fmt.Errorf("invalid log format: %s (must be json or console)", c.Logger.Format)
	}

	if c.Static.Dir != "" {
		info, err := os.Stat(c.Static.Dir)
		if err != nil || !info.IsDir() {
			return fmt.Errorf("static dir %s is not a directory", c.Static.Dir)
		}
	}

	return nil
}

// Validate validates the database settings used by the postgres backend.
func (c *DatabaseConfig) Validate() error {
	if c.Host == "" {
		return fmt.Errorf("database host is required")
	}

	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("invalid database port: %d", c.Port)
	}

	if c.User == "" {
		return fmt.Errorf("database user is required")
	}

	if c.Database == "" {
		return fmt.Errorf("database name is required")
	}

	if c.MaxConnections < 1 {
		return fmt.Errorf("database max connections must be at least 1")
	}

	if c.MinConnections < 0 {
		return fmt.Errorf("database min connections cannot be negative")
	}

	if c.MinConnections > c.MaxConnections {
		return fmt.Errorf("database min connections cannot exceed max connections")
	}

	return nil
}

// ConnectionString returns the PostgreSQL connection string.
func (c *DatabaseConfig) ConnectionString() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=disable",
		c.User,
		c.Password,
		c.Host,
		c.Port,
		c.Database,
	)
}

// Address returns the server address.
func (c *ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// DocumentKey returns the S3 key of the code document.
func (c *Config) DocumentKey() string {
	return c.S3.Prefix + c.Store.DocumentName + ".json"
}

// getEnv retrieves an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt retrieves an environment variable as an integer or returns a default value.
func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
