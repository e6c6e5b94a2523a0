package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// ErrMissingAPIKey is returned when the question/scoring service credential is not configured
var ErrMissingAPIKey = errors.New("AI_API_KEY is required")

// Store backends
const (
	StoreMemory   = "memory"
	StoreFile     = "file"
	StoreRedis    = "redis"
	StorePostgres = "postgres"
)

// Config holds all configuration for interview-assistant
type Config struct {
	Server    ServerConfig
	AIServer  AIServerConfig
	AI        AIConfig
	Interview InterviewConfig
	Store     StoreConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	Log       LogConfig
}

// ServerConfig holds the application HTTP server configuration
type ServerConfig struct {
	Host string
	Port int
}

// AIServerConfig holds the question/scoring backend configuration
type AIServerConfig struct {
	Host          string
	Port          int
	QuestionsFile string
}

// AIConfig holds the question/scoring service client configuration
type AIConfig struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

// InterviewConfig holds session controller configuration
type InterviewConfig struct {
	Tick time.Duration
}

// StoreConfig holds candidate store persistence configuration
type StoreConfig struct {
	Backend   string
	Namespace string
	File      string
}

// DatabaseConfig holds PostgreSQL configuration
type DatabaseConfig struct {
	DSN           string
	MigrationsDir string
	MaxOpenConns  int
	MaxIdleConns  int
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Address  string
	Password string
	DB       int
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string
	Format string
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Host: getEnv("SERVER_HOST", "0.0.0.0"),
			Port: getEnvAsInt("SERVER_PORT", 8080),
		},
		AIServer: AIServerConfig{
			Host:          getEnv("AI_SERVER_HOST", "0.0.0.0"),
			Port:          getEnvAsInt("PORT", 4000),
			QuestionsFile: getEnv("QUESTIONS_FILE", ""),
		},
		AI: AIConfig{
			BaseURL: getEnv("AI_BASE_URL", "http://localhost:4000"),
			APIKey:  strings.TrimSpace(getEnv("AI_API_KEY", "")),
			Timeout: getEnvAsDuration("AI_TIMEOUT", 15*time.Second),
		},
		Interview: InterviewConfig{
			Tick: getEnvAsDuration("INTERVIEW_TICK", time.Second),
		},
		Store: StoreConfig{
			Backend:   strings.ToLower(getEnv("STORE_BACKEND", StoreFile)),
			Namespace: getEnv("STORE_NAMESPACE", "persist:root"),
			File:      getEnv("STORE_FILE", "./data/state.json"),
		},
		Database: DatabaseConfig{
			DSN:           getEnv("DATABASE_DSN", ""),
			MigrationsDir: getEnv("DATABASE_MIGRATIONS_DIR", "./migrations"),
			MaxOpenConns:  getEnvAsInt("DATABASE_MAX_OPEN_CONNS", 10),
			MaxIdleConns:  getEnvAsInt("DATABASE_MAX_IDLE_CONNS", 2),
		},
		Redis: RedisConfig{
			Address:  getEnv("REDIS_ADDRESS", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},
		Log: LogConfig{
			Level:  strings.ToLower(getEnv("LOG_LEVEL", "info")),
			Format: strings.ToLower(getEnv("LOG_FORMAT", "json")),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	if c.AIServer.Port < 1 || c.AIServer.Port > 65535 {
		return fmt.Errorf("invalid ai server port: %d", c.AIServer.Port)
	}

	if c.Interview.Tick <= 0 {
		return fmt.Errorf("interview tick must be positive")
	}

	switch c.Store.Backend {
	case StoreMemory:
	case StoreFile:
		if c.Store.File == "" {
			return fmt.Errorf("store file is required for the file backend")
		}
	case StoreRedis:
		if c.Redis.Address == "" {
			return fmt.Errorf("redis address is required for the redis backend")
		}
	case StorePostgres:
		if c.Database.DSN == "" {
			return fmt.Errorf("database DSN is required for the postgres backend")
		}
	default:
		return fmt.Errorf("unknown store backend: %q", c.Store.Backend)
	}

	if c.Store.Namespace == "" {
		return fmt.Errorf("store namespace is required")
	}

	return nil
}

// RequireAPIKey fails when no credential for the question/scoring service is configured.
// There is no fallback key.
func (c *Config) RequireAPIKey() error {
	if c.AI.APIKey == "" {
		return ErrMissingAPIKey
	}
	return nil
}

// Helper functions

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
