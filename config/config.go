package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App               AppConfig
	HTTP              ServerConfig
	GRPC              ServerConfig
	Database          DatabaseConfig
	Log               LogConfig
	InternalEndpoints InternalEndpointsConfig
	Memberships       MembershipConfig
	Jobs              JobsConfig
	Redis             RedisConfig
	Tracing           TracingConfig
}

type AppConfig struct {
	ServiceName string
	APIKey      string
}

type ServerConfig struct {
	Host string
	Port string
}

type DatabaseConfig struct {
	Driver          string
	DSN             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

type LogConfig struct {
	Level string
}

type InternalEndpointsConfig struct {
	AuthGRPCAddr string
}

type MembershipConfig struct {
	BillingPeriodDays  int
	AuthRatePerMinute  int
	AuthBurst          int
	RenewalBatchSize   int
	UpcomingEventLimit int
}

// BillingPeriod is the interval added to next_billing on subscribe and renew.
func (c MembershipConfig) BillingPeriod() time.Duration {
	if c.BillingPeriodDays <= 0 {
		return 30 * 24 * time.Hour
	}
	return time.Duration(c.BillingPeriodDays) * 24 * time.Hour
}

type JobsConfig struct {
	RenewalInterval time.Duration
}

type RedisConfig struct {
	Addr       string
	Password   string
	DB         int
	CatalogTTL time.Duration
}

// Enabled reports whether the catalog cache should be wired.
func (c RedisConfig) Enabled() bool {
	return c.Addr != ""
}

type TracingConfig struct {
	OTLPEndpoint string
	Insecure     bool
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	dsn := os.Getenv("DATABASE_DSN")
	if dsn == "" {
		return nil, errors.New("DATABASE_DSN environment variable is required")
	}

	driver := getEnv("DATABASE_DRIVER", "mysql")
	switch driver {
	case "mysql", "sqlite":
	default:
		return nil, fmt.Errorf("unsupported DATABASE_DRIVER %q", driver)
	}

	return &Config{
		App: AppConfig{
			ServiceName: getEnv("APP_SERVICE_NAME", "memberships-service"),
			APIKey:      getEnv("APP_API_KEY", ""),
		},
		HTTP: ServerConfig{
			Host: getEnv("HTTP_HOST", "0.0.0.0"),
			Port: getEnv("HTTP_PORT", "8080"),
		},
		GRPC: ServerConfig{
			Host: getEnv("GRPC_HOST", "0.0.0.0"),
			Port: getEnv("GRPC_PORT", "9090"),
		},
		Database: DatabaseConfig{
			Driver:          driver,
			DSN:             dsn,
			MaxOpenConns:    getIntEnv("DATABASE_MAX_OPEN_CONNS", 10),
			MaxIdleConns:    getIntEnv("DATABASE_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: getDurationEnv("DATABASE_CONN_MAX_LIFETIME_MINUTES", 30*time.Minute),
		},
		Log: LogConfig{Level: getEnv("LOG_LEVEL", "info")},
		InternalEndpoints: InternalEndpointsConfig{
			AuthGRPCAddr: getEnv("AUTH_SERVICE_GRPC_ADDR", "localhost:9090"),
		},
		Memberships: MembershipConfig{
			BillingPeriodDays:  getIntEnv("BILLING_PERIOD_DAYS", 30),
			AuthRatePerMinute:  getIntEnv("AUTH_RATE_PER_MINUTE", 60),
			AuthBurst:          getIntEnv("AUTH_BURST", 10),
			RenewalBatchSize:   getIntEnv("RENEWAL_BATCH_SIZE", 500),
			UpcomingEventLimit: getIntEnv("UPCOMING_EVENT_LIMIT", 50),
		},
		Jobs: JobsConfig{
			RenewalInterval: getDurationEnv("RENEWAL_INTERVAL_MINUTES", 60*time.Minute),
		},
		Redis: RedisConfig{
			Addr:       getEnv("REDIS_ADDR", ""),
			Password:   getEnv("REDIS_PASSWORD", ""),
			DB:         getIntEnv("REDIS_DB", 0),
			CatalogTTL: getDurationEnv("CATALOG_CACHE_TTL_MINUTES", 5*time.Minute),
		},
		Tracing: TracingConfig{
			OTLPEndpoint: getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
			Insecure:     getBoolEnv("OTEL_EXPORTER_OTLP_INSECURE", true),
		},
	}, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
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

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if minutes, err := strconv.Atoi(value); err == nil {
			return time.Duration(minutes) * time.Minute
		}
	}
	return defaultValue
}
