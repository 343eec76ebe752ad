package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/lib/pq"
)

// Storage drivers
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
	DriverMemory   = "memory"
)

var ErrMissingDatabaseURL = errors.New("DATABASE_URL is required for the relational storage driver")

// Config holds all configuration values
type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	JWT       JWTConfig
	Cache     CacheConfig
	RateLimit RateLimitConfig
	Jobs      JobsConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port           string
	Env            string
	AllowedOrigins []string
}

// DatabaseConfig selects and configures the storage backend
type DatabaseConfig struct {
	Driver      string
	URL         string
	SeedOnStart bool
}

// RedisConfig holds Redis configuration. An empty URL selects the in-process cache.
type RedisConfig struct {
	URL      string
	Password string
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret        string
	AccessExpiry  time.Duration
	RefreshExpiry time.Duration
}

// CacheConfig holds response cache settings
type CacheConfig struct {
	MessageTTL time.Duration
}

// RateLimitConfig throttles the auth endpoints per client IP
type RateLimitConfig struct {
	AuthRPS   float64
	AuthBurst int
}

// JobsConfig holds background job schedules
type JobsConfig struct {
	BookingExpirySchedule string
	BookingExpiryGrace    time.Duration
}

// Load loads configuration from environment variables
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Port:           getEnv("PORT", "5000"),
			Env:            getEnv("SERVER_ENV", "development"),
			AllowedOrigins: getEnvAsList("CORS_ALLOWED_ORIGINS"),
		},
		Database: DatabaseConfig{
			Driver:      strings.ToLower(getEnv("STORAGE_DRIVER", DriverPostgres)),
			URL:         getEnv("DATABASE_URL", ""),
			SeedOnStart: getEnvAsBool("SEED_ON_START", true),
		},
		Redis: RedisConfig{
			URL:      getEnv("REDIS_URL", ""),
			Password: getEnv("REDIS_PASSWORD", ""),
		},
		JWT: JWTConfig{
			Secret:        getEnv("JWT_SECRET", "change-this-in-production"),
			AccessExpiry:  getEnvAsDuration("JWT_ACCESS_EXPIRY", 24*time.Hour),
			RefreshExpiry: getEnvAsDuration("JWT_REFRESH_EXPIRY", 7*24*time.Hour),
		},
		Cache: CacheConfig{
			MessageTTL: getEnvAsDuration("MESSAGE_CACHE_TTL", 30*time.Second),
		},
		RateLimit: RateLimitConfig{
			AuthRPS:   getEnvAsFloat("AUTH_RATE_LIMIT_RPS", 5),
			AuthBurst: getEnvAsInt("AUTH_RATE_LIMIT_BURST", 10),
		},
		Jobs: JobsConfig{
			BookingExpirySchedule: getEnv("BOOKING_EXPIRY_SCHEDULE", "@every 5m"),
			BookingExpiryGrace:    getEnvAsDuration("BOOKING_EXPIRY_GRACE", 24*time.Hour),
		},
	}
}

// Validate reports configuration that would leave the server unable to start.
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case DriverPostgres:
		if c.Database.URL == "" {
			return ErrMissingDatabaseURL
		}
		if strings.HasPrefix(c.Database.URL, "postgres://") || strings.HasPrefix(c.Database.URL, "postgresql://") {
			if _, err := pq.ParseURL(c.Database.URL); err != nil {
				return fmt.Errorf("invalid DATABASE_URL: %w", err)
			}
		}
	case DriverSQLite:
		if c.Database.URL == "" {
			return ErrMissingDatabaseURL
		}
	case DriverMemory:
	default:
		return fmt.Errorf("unknown STORAGE_DRIVER %q", c.Database.Driver)
	}

	if c.Server.Env == "production" && c.JWT.Secret == "change-this-in-production" {
		return errors.New("JWT_SECRET must be set in production")
	}
	if c.RateLimit.AuthRPS <= 0 || c.RateLimit.AuthBurst <= 0 {
		return errors.New("auth rate limit must be positive")
	}
	return nil
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
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func getEnvAsList(key string) []string {
	value := os.Getenv(key)
	if value == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
