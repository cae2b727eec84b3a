package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/vibast-solutions/ms-go-memberships/app/container"
	"github.com/vibast-solutions/ms-go-memberships/app/service"
	"github.com/vibast-solutions/ms-go-memberships/config"
)

var renewWorker bool

var renewCmd = &cobra.Command{
	Use:   "renew",
	Short: "Renew active auto-renewing subscriptions whose billing date has passed",
	Run: func(_ *cobra.Command, _ []string) {
		runCommand(
			"renew",
			renewWorker,
			func(cfg *config.Config) time.Duration { return cfg.Jobs.RenewalInterval },
			func(s *container.Services, ctx context.Context) error {
				renewed, err := s.Ledger.RunRenewalBatch(ctx, service.SystemClock{}.Now())
				if err != nil {
					return err
				}
				logrus.WithField("job", "renew").WithField("renewed", renewed).Debug("Renewal pass finished")
				return nil
			},
		)
	},
}

func init() {
	rootCmd.AddCommand(renewCmd)

	renewCmd.Flags().BoolVar(&renewWorker, "worker", false, "Run continuously using configured interval")
}

func runCommand(
	name string,
	worker bool,
	intervalResolver func(cfg *config.Config) time.Duration,
	fn func(s *container.Services, ctx context.Context) error,
) {
	cfg := mustLoadConfig()
	db, closeDB := mustOpenDatabase(cfg)
	defer closeDB()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	shutdownTracing := setupTracing(ctx, cfg)
	defer shutdownTracing(context.Background())

	services, closeServices := buildServices(ctx, cfg, db, nil)
	defer closeServices()

	if worker {
		runWorker(ctx, name, intervalResolver(cfg), services, fn)
		return
	}

	runJob(name, func() error { return fn(services, ctx) })
}

func runWorker(
	ctx context.Context,
	name string,
	interval time.Duration,
	services *container.Services,
	fn func(s *container.Services, ctx context.Context) error,
) {
	if interval <= 0 {
		logrus.WithField("job", name).Fatal("invalid worker interval")
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	runJob(name, func() error { return fn(services, ctx) })

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	for {
		select {
		case <-quit:
			logrus.WithField("job", name).Info("Worker shutdown requested")
			return
		case <-ticker.C:
			runJob(name, func() error { return fn(services, ctx) })
		}
	}
}

func runJob(name string, fn func() error) {
	start := time.Now()
	err := fn()
	latency := time.Since(start)
	entry := logrus.WithField("job", name).WithField("latency", latency.String())
	if err != nil {
		entry.WithError(err).Error("job_failed")
		return
	}
	entry.Info("job_completed")
}
