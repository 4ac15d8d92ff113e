// Package config provides application configuration loading.
// This is part of the platform layer and contains no business logic.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Storage drivers accepted by STORAGE_DRIVER.
const (
	StorageFile     = "file"
	StorageMemory   = "memory"
	StoragePostgres = "postgres"
	StorageSQLite   = "sqlite"
	StorageRedis    = "redis"
	StorageMinIO    = "minio"
)

// =============================================================================
// Module-Specific Config Interfaces (Principle of Least Privilege)
// =============================================================================

// HTTPConfig provides settings for the HTTP server.
type HTTPConfig interface {
	GetHTTPAddr() string
	GetCORSAllowAll() bool
	GetCORSOrigins() []string
	GetCORSAllowCreds() bool
}

// JWTConfig provides bearer token validation settings. An empty secret
// disables authentication on the protected route group.
type JWTConfig interface {
	GetJWTAccessSecret() string
}

// StorageConfig selects and locates the lead snapshot backend.
type StorageConfig interface {
	GetStorageDriver() string
	GetStorageKey() string
	GetDataDir() string
}

// DatabaseConfig provides database connection settings.
type DatabaseConfig interface {
	GetDatabaseURL() string
}

// RedisConfig provides the Redis connection used by the redis snapshot backend.
type RedisConfig interface {
	GetRedisURL() string
	GetRedisTLSInsecure() bool
}

// SchedulerConfig provides settings for the asynq job queue.
type SchedulerConfig interface {
	RedisConfig
	GetAsynqQueueName() string
	GetAsynqConcurrency() int
	IsSchedulerEnabled() bool
}

// MinIOConfig provides settings for the object-storage snapshot backend.
type MinIOConfig interface {
	GetMinIOEndpoint() string
	GetMinIOAccessKey() string
	GetMinIOSecretKey() string
	GetMinIOUseSSL() bool
	GetMinioBucketSnapshots() string
}

// AIConfig provides settings for the generative model collaborators.
type AIConfig interface {
	GetGeminiAPIKey() string
	GetGeminiSearchModel() string
	GetGeminiReasoningModel() string
	GetAIRequestsPerMinute() int
	GetAITimeout() time.Duration
	IsAIEnabled() bool
}

// EnrichmentConfig provides settings for the enrichment provider.
type EnrichmentConfig interface {
	GetEnrichmentAPIURL() string
	GetEnrichmentAPIKey() string
	GetEnrichmentCacheTTL() time.Duration
	GetAITimeout() time.Duration
}

// NotificationConfig provides settings for the notification feed.
type NotificationConfig interface {
	GetNotificationLimit() int
}

// LeadConfig provides settings for lead intake.
type LeadConfig interface {
	GetPhoneDefaultRegion() string
}

// =============================================================================
// Main Config Struct
// =============================================================================

// Config holds all application configuration values.
type Config struct {
	Env                  string
	HTTPAddr             string
	CORSAllowAll         bool
	CORSOrigins          []string
	CORSAllowCreds       bool
	JWTAccessSecret      string
	StorageDriver        string
	StorageKey           string
	DataDir              string
	DatabaseURL          string
	RedisURL             string
	RedisTLSInsecure     bool
	AsynqQueueName       string
	AsynqConcurrency     int
	MinIOEndpoint        string
	MinIOAccessKey       string
	MinIOSecretKey       string
	MinIOUseSSL          bool
	MinioBucketSnapshots string
	GeminiAPIKey         string
	GeminiSearchModel    string
	GeminiReasoningModel string
	AIRequestsPerMinute  int
	AITimeout            time.Duration
	EnrichmentAPIURL     string
	EnrichmentAPIKey     string
	EnrichmentCacheTTL   time.Duration
	NotificationLimit    int
	PhoneDefaultRegion   string
}

// =============================================================================
// Interface Implementations
// =============================================================================

// HTTPConfig implementation
func (c *Config) GetHTTPAddr() string      { return c.HTTPAddr }
func (c *Config) GetCORSAllowAll() bool    { return c.CORSAllowAll }
func (c *Config) GetCORSOrigins() []string { return c.CORSOrigins }
func (c *Config) GetCORSAllowCreds() bool  { return c.CORSAllowCreds }

// JWTConfig implementation
func (c *Config) GetJWTAccessSecret() string { return c.JWTAccessSecret }

// StorageConfig implementation
func (c *Config) GetStorageDriver() string { return c.StorageDriver }
func (c *Config) GetStorageKey() string    { return c.StorageKey }
func (c *Config) GetDataDir() string       { return c.DataDir }

// DatabaseConfig implementation
func (c *Config) GetDatabaseURL() string { return c.DatabaseURL }

// SchedulerConfig implementation
func (c *Config) GetRedisURL() string        { return c.RedisURL }
func (c *Config) GetRedisTLSInsecure() bool  { return c.RedisTLSInsecure }
func (c *Config) GetAsynqQueueName() string  { return c.AsynqQueueName }
func (c *Config) GetAsynqConcurrency() int   { return c.AsynqConcurrency }
func (c *Config) IsSchedulerEnabled() bool   { return c.RedisURL != "" }

// MinIOConfig implementation
func (c *Config) GetMinIOEndpoint() string        { return c.MinIOEndpoint }
func (c *Config) GetMinIOAccessKey() string       { return c.MinIOAccessKey }
func (c *Config) GetMinIOSecretKey() string       { return c.MinIOSecretKey }
func (c *Config) GetMinIOUseSSL() bool            { return c.MinIOUseSSL }
func (c *Config) GetMinioBucketSnapshots() string { return c.MinioBucketSnapshots }

// AIConfig implementation
func (c *Config) GetGeminiAPIKey() string         { return c.GeminiAPIKey }
func (c *Config) GetGeminiSearchModel() string    { return c.GeminiSearchModel }
func (c *Config) GetGeminiReasoningModel() string { return c.GeminiReasoningModel }
func (c *Config) GetAIRequestsPerMinute() int     { return c.AIRequestsPerMinute }
func (c *Config) GetAITimeout() time.Duration     { return c.AITimeout }
func (c *Config) IsAIEnabled() bool               { return c.GeminiAPIKey != "" }

// EnrichmentConfig implementation
func (c *Config) GetEnrichmentAPIURL() string            { return c.EnrichmentAPIURL }
func (c *Config) GetEnrichmentAPIKey() string            { return c.EnrichmentAPIKey }
func (c *Config) GetEnrichmentCacheTTL() time.Duration   { return c.EnrichmentCacheTTL }

// NotificationConfig implementation
func (c *Config) GetNotificationLimit() int { return c.NotificationLimit }

// LeadConfig implementation
func (c *Config) GetPhoneDefaultRegion() string { return c.PhoneDefaultRegion }

// Load reads configuration from environment variables (and a .env file when present).
func Load() (*Config, error) {
	_ = godotenv.Load()
	return loadFromEnv()
}

func loadFromEnv() (*Config, error) {
	corsOrigins := splitCSV(getEnv("CORS_ORIGINS", "http://localhost:3000"))
	corsAllowAll := strings.EqualFold(getEnv("CORS_ALLOW_ALL", "false"), "true")
	if containsWildcard(corsOrigins) {
		corsAllowAll = true
	}

	cfg := &Config{
		Env:                  getEnv("APP_ENV", "development"),
		HTTPAddr:             getEnv("HTTP_ADDR", ":8080"),
		CORSAllowAll:         corsAllowAll,
		CORSOrigins:          corsOrigins,
		CORSAllowCreds:       strings.EqualFold(getEnv("CORS_ALLOW_CREDENTIALS", "false"), "true"),
		JWTAccessSecret:      getEnv("JWT_ACCESS_SECRET", ""),
		StorageDriver:        strings.ToLower(getEnv("STORAGE_DRIVER", StorageFile)),
		StorageKey:           getEnv("STORAGE_KEY", "rise_leads_os_v4"),
		DataDir:              getEnv("DATA_DIR", "./data"),
		DatabaseURL:          getEnv("DATABASE_URL", ""),
		RedisURL:             getEnv("REDIS_URL", ""),
		RedisTLSInsecure:     strings.EqualFold(getEnv("REDIS_TLS_INSECURE", "false"), "true"),
		AsynqQueueName:       getEnv("ASYNQ_QUEUE", "leads"),
		AsynqConcurrency:     mustInt(getEnv("ASYNQ_CONCURRENCY", "4")),
		MinIOEndpoint:        getEnv("MINIO_ENDPOINT", ""),
		MinIOAccessKey:       getEnv("MINIO_ACCESS_KEY", ""),
		MinIOSecretKey:       getEnv("MINIO_SECRET_KEY", ""),
		MinIOUseSSL:          strings.EqualFold(getEnv("MINIO_USE_SSL", "false"), "true"),
		MinioBucketSnapshots: getEnv("MINIO_BUCKET_SNAPSHOTS", "lead-snapshots"),
		GeminiAPIKey:         getEnv("GEMINI_API_KEY", ""),
		GeminiSearchModel:    getEnv("GEMINI_SEARCH_MODEL", "gemini-2.5-flash"),
		GeminiReasoningModel: getEnv("GEMINI_REASONING_MODEL", "gemini-3-pro-preview"),
		AIRequestsPerMinute:  mustInt(getEnv("AI_REQUESTS_PER_MINUTE", "60")),
		AITimeout:            mustDuration(getEnv("AI_TIMEOUT", "60s")),
		EnrichmentAPIURL:     getEnv("ENRICHMENT_API_URL", ""),
		EnrichmentAPIKey:     getEnv("ENRICHMENT_API_KEY", ""),
		EnrichmentCacheTTL:   mustDuration(getEnv("ENRICHMENT_CACHE_TTL", "24h")),
		NotificationLimit:    mustInt(getEnv("NOTIFICATION_LIMIT", "20")),
		PhoneDefaultRegion:   strings.ToUpper(getEnv("PHONE_DEFAULT_REGION", "US")),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.StorageDriver {
	case StorageFile, StorageSQLite:
		if c.DataDir == "" {
			return fmt.Errorf("DATA_DIR is required for the %s storage driver", c.StorageDriver)
		}
	case StorageMemory:
	case StoragePostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is required for the postgres storage driver")
		}
	case StorageRedis:
		if c.RedisURL == "" {
			return fmt.Errorf("REDIS_URL is required for the redis storage driver")
		}
	case StorageMinIO:
		if c.MinIOEndpoint == "" || c.MinioBucketSnapshots == "" {
			return fmt.Errorf("MINIO_ENDPOINT and MINIO_BUCKET_SNAPSHOTS are required for the minio storage driver")
		}
	default:
		return fmt.Errorf("unknown STORAGE_DRIVER %q", c.StorageDriver)
	}
	if c.StorageKey == "" {
		return fmt.Errorf("STORAGE_KEY must not be empty")
	}
	if c.NotificationLimit <= 0 {
		return fmt.Errorf("NOTIFICATION_LIMIT must be positive")
	}
	if c.AIRequestsPerMinute <= 0 {
		return fmt.Errorf("AI_REQUESTS_PER_MINUTE must be positive")
	}
	if c.AITimeout <= 0 {
		return fmt.Errorf("AI_TIMEOUT must be a positive duration")
	}
	if c.CORSAllowAll && c.CORSAllowCreds {
		return fmt.Errorf("CORS_ALLOW_CREDENTIALS cannot be true when CORS_ALLOW_ALL is true")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return fallback
}

func mustDuration(value string) time.Duration {
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0
	}
	return d
}

func mustInt(value string) int {
	result, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0
	}
	return result
}

func splitCSV(value string) []string {
	parts := strings.Split(value, ",")
	results := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			results = append(results, trimmed)
		}
	}
	return results
}

func containsWildcard(values []string) bool {
	for _, value := range values {
		if value == "*" {
			return true
		}
	}
	return false
}
