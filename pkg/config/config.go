package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds all application configuration
type Config struct {
	Env      string
	Database DatabaseConfig
	Redis    RedisConfig
	OTEL     OTELConfig
	Metrics  MetricsConfig
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
	SSLMode  string
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// OTELConfig holds OpenTelemetry configuration
type OTELConfig struct {
	ServiceName    string
	ServiceVersion string
	Endpoint       string
	Enabled        bool
}

// MetricsConfig holds the tunable constants of the quality-metrics pipeline.
// Defaults match the values the dashboards were calibrated against.
type MetricsConfig struct {
	// SatClickDwellSec is the minimum dwell time for a click to count as satisfied
	SatClickDwellSec int

	// Query-length bucket boundaries: <=Short, Short+1..Med, Med+1..Long, >Long
	LenBucketShort int
	LenBucketMed   int
	LenBucketLong  int

	// RankerMinVolume is the minimum occurrence count for a query to be ranked
	RankerMinVolume int

	// Weights of the composite badness score over zero-results and
	// no-click-with-results rates
	RankerZeroResultsWeight float64
	RankerNoClickWeight     float64

	// RankerLimit caps the number of ranked bad queries
	RankerLimit int

	// SnapshotTTLSec is how long the cached latest-run summary lives in Redis
	SnapshotTTLSec int
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	return &Config{
		Env: getEnv("APP_ENV", "development"),
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvAsInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			Database: getEnv("DB_NAME", "jp_search_quality"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnvAsInt("REDIS_PORT", 6379),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},
		OTEL: OTELConfig{
			ServiceName:    getEnv("OTEL_SERVICE_NAME", "jp-search-quality"),
			ServiceVersion: getEnv("OTEL_SERVICE_VERSION", "1.0.0"),
			Endpoint:       getEnv("OTEL_ENDPOINT", ""),
			Enabled:        getEnvAsBool("OTEL_ENABLED", false),
		},
		Metrics: MetricsConfig{
			SatClickDwellSec:        getEnvAsInt("SAT_DWELL_THRESHOLD_SEC", 30),
			LenBucketShort:          getEnvAsInt("LEN_BUCKET_SHORT", 3),
			LenBucketMed:            getEnvAsInt("LEN_BUCKET_MED", 6),
			LenBucketLong:           getEnvAsInt("LEN_BUCKET_LONG", 10),
			RankerMinVolume:         getEnvAsInt("RANKER_MIN_VOLUME", 50),
			RankerZeroResultsWeight: getEnvAsFloat("RANKER_ZERO_RESULTS_WEIGHT", 0.7),
			RankerNoClickWeight:     getEnvAsFloat("RANKER_NO_CLICK_WEIGHT", 0.3),
			RankerLimit:             getEnvAsInt("RANKER_LIMIT", 50),
			SnapshotTTLSec:          getEnvAsInt("SNAPSHOT_TTL_SEC", 24*3600),
		},
	}, nil
}

// DatabaseDSN returns the PostgreSQL connection string
func (c *DatabaseConfig) DatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Database, c.SSLMode,
	)
}

// RedisAddr returns the Redis address
func (c *RedisConfig) RedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 64); err == nil {
			return floatVal
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}
