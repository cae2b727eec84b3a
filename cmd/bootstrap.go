package cmd

import (
	"context"
	"database/sql"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
	"github.com/vibast-solutions/ms-go-memberships/app/cache"
	"github.com/vibast-solutions/ms-go-memberships/app/container"
	"github.com/vibast-solutions/ms-go-memberships/app/database"
	"github.com/vibast-solutions/ms-go-memberships/app/metrics"
	"github.com/vibast-solutions/ms-go-memberships/app/repository"
	"github.com/vibast-solutions/ms-go-memberships/config"
)

func mustLoadConfig() *config.Config {
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("Failed to load configuration")
	}
	if err := configureLogging(cfg); err != nil {
		logrus.WithError(err).Fatal("Failed to configure logging")
	}
	return cfg
}

func mustOpenDatabase(cfg *config.Config) (*sql.DB, func()) {
	db, err := database.Open(cfg.Database.Driver, cfg.Database.DSN, database.PoolConfig{
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
	})
	if err != nil {
		logrus.WithError(err).WithField("driver", cfg.Database.Driver).Fatal("Failed to connect to database")
	}

	cleanup := func() {
		if err := db.Close(); err != nil {
			logrus.WithError(err).Warn("Failed to close database")
		}
	}
	return db, cleanup
}

// buildServices wires the engine. The plan cache is attached only when
// redis is configured and reachable; metrics only when a registry is given.
func buildServices(ctx context.Context, cfg *config.Config, db *sql.DB, registry *prometheus.Registry) (*container.Services, func()) {
	opts := container.Options{}
	cleanup := func() {}

	if registry != nil {
		opts.Recorder = metrics.NewEngineMetrics(registry)
	}

	if cfg.Redis.Enabled() {
		client, err := cache.Dial(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			logrus.WithError(err).WithField("addr", cfg.Redis.Addr).Warn("Plan cache disabled, redis unreachable")
		} else {
			opts.Cache = cache.NewPlanCache(client, cfg.Redis.CatalogTTL)
			cleanup = func() {
				if err := client.Close(); err != nil {
					logrus.WithError(err).Warn("Failed to close redis client")
				}
			}
		}
	}

	services := container.NewServices(db, repository.Dialect(cfg.Database.Driver), cfg.Memberships, opts)
	return services, cleanup
}
