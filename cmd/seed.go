package cmd

import (
	"context"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/vibast-solutions/ms-go-memberships/app/service"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Insert the default plans into an empty catalog",
	Run: func(_ *cobra.Command, _ []string) {
		cfg := mustLoadConfig()
		db, closeDB := mustOpenDatabase(cfg)
		defer closeDB()

		ctx := context.Background()
		services, closeServices := buildServices(ctx, cfg, db, nil)
		defer closeServices()

		runJob("seed", func() error {
			created, err := services.Catalog.SeedDefaultPlans(ctx, service.SystemClock{}.Now())
			if err != nil {
				return err
			}
			logrus.WithField("created", created).Info("Seed finished")
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(seedCmd)
}
