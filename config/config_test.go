package config

import (
	"os"
	"testing"
	"time"
)

func setEnv(t *testing.T, key, value string) {
	t.Helper()
	old, had := os.LookupEnv(key)
	if err := os.Setenv(key, value); err != nil {
		t.Fatalf("setenv %s failed: %v", key, err)
	}
	t.Cleanup(func() {
		if had {
			_ = os.Setenv(key, old)
		} else {
			_ = os.Unsetenv(key)
		}
	})
}

func unsetEnv(t *testing.T, key string) {
	t.Helper()
	old, had := os.LookupEnv(key)
	_ = os.Unsetenv(key)
	t.Cleanup(func() {
		if had {
			_ = os.Setenv(key, old)
		}
	})
}

func TestLoadRequiresDatabaseDSN(t *testing.T) {
	unsetEnv(t, "DATABASE_DSN")
	_, err := Load()
	if err == nil {
		t.Fatal("expected error for missing DATABASE_DSN")
	}
}

func TestLoadRejectsUnknownDriver(t *testing.T) {
	setEnv(t, "DATABASE_DSN", "file:test.db")
	setEnv(t, "DATABASE_DRIVER", "postgres")
	if _, err := Load(); err == nil {
		t.Fatal("expected error for unsupported driver")
	}
}

func TestLoadDefaults(t *testing.T) {
	setEnv(t, "DATABASE_DSN", "root:root@tcp(localhost:3306)/memberships?parseTime=true")
	unsetEnv(t, "DATABASE_DRIVER")
	unsetEnv(t, "REDIS_ADDR")
	unsetEnv(t, "BILLING_PERIOD_DAYS")
	unsetEnv(t, "RENEWAL_INTERVAL_MINUTES")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if cfg.Database.Driver != "mysql" {
		t.Fatalf("unexpected default driver: %s", cfg.Database.Driver)
	}
	if cfg.Redis.Enabled() {
		t.Fatal("expected redis cache to be disabled by default")
	}
	if cfg.Memberships.BillingPeriod() != 30*24*time.Hour {
		t.Fatalf("unexpected billing period: %v", cfg.Memberships.BillingPeriod())
	}
	if cfg.Jobs.RenewalInterval != time.Hour {
		t.Fatalf("unexpected renewal interval: %v", cfg.Jobs.RenewalInterval)
	}
}

func TestLoadOverrides(t *testing.T) {
	setEnv(t, "DATABASE_DSN", "file:memberships.db")
	setEnv(t, "DATABASE_DRIVER", "sqlite")
	setEnv(t, "APP_SERVICE_NAME", "members-test")
	setEnv(t, "HTTP_PORT", "8181")
	setEnv(t, "GRPC_PORT", "9191")
	setEnv(t, "DATABASE_MAX_OPEN_CONNS", "20")
	setEnv(t, "DATABASE_MAX_IDLE_CONNS", "8")
	setEnv(t, "DATABASE_CONN_MAX_LIFETIME_MINUTES", "40")
	setEnv(t, "BILLING_PERIOD_DAYS", "7")
	setEnv(t, "AUTH_RATE_PER_MINUTE", "5")
	setEnv(t, "AUTH_BURST", "2")
	setEnv(t, "RENEWAL_INTERVAL_MINUTES", "15")
	setEnv(t, "REDIS_ADDR", "localhost:6379")
	setEnv(t, "REDIS_DB", "3")
	setEnv(t, "CATALOG_CACHE_TTL_MINUTES", "2")
	setEnv(t, "OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4318")
	setEnv(t, "OTEL_EXPORTER_OTLP_INSECURE", "false")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if cfg.App.ServiceName != "members-test" {
		t.Fatalf("unexpected app service name: %s", cfg.App.ServiceName)
	}
	if cfg.HTTP.Port != "8181" || cfg.GRPC.Port != "9191" {
		t.Fatalf("unexpected ports: http=%s grpc=%s", cfg.HTTP.Port, cfg.GRPC.Port)
	}
	if cfg.Database.Driver != "sqlite" || cfg.Database.MaxOpenConns != 20 || cfg.Database.MaxIdleConns != 8 {
		t.Fatalf("unexpected database config: %+v", cfg.Database)
	}
	if cfg.Database.ConnMaxLifetime != 40*time.Minute {
		t.Fatalf("unexpected database lifetime: %v", cfg.Database.ConnMaxLifetime)
	}
	if cfg.Memberships.BillingPeriod() != 7*24*time.Hour {
		t.Fatalf("unexpected billing period: %v", cfg.Memberships.BillingPeriod())
	}
	if cfg.Memberships.AuthRatePerMinute != 5 || cfg.Memberships.AuthBurst != 2 {
		t.Fatalf("unexpected auth limits: %+v", cfg.Memberships)
	}
	if cfg.Jobs.RenewalInterval != 15*time.Minute {
		t.Fatalf("unexpected renewal interval: %v", cfg.Jobs.RenewalInterval)
	}
	if !cfg.Redis.Enabled() || cfg.Redis.DB != 3 || cfg.Redis.CatalogTTL != 2*time.Minute {
		t.Fatalf("unexpected redis config: %+v", cfg.Redis)
	}
	if cfg.Tracing.OTLPEndpoint != "localhost:4318" || cfg.Tracing.Insecure {
		t.Fatalf("unexpected tracing config: %+v", cfg.Tracing)
	}
}

func TestBillingPeriodFallback(t *testing.T) {
	if (MembershipConfig{}).BillingPeriod() != 30*24*time.Hour {
		t.Fatal("expected 30 day fallback")
	}
}
