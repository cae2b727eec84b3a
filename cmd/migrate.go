package cmd

import (
	"github.com/spf13/cobra"
	"github.com/vibast-solutions/ms-go-memberships/app/database"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply database migrations",
	Run: func(_ *cobra.Command, _ []string) {
		cfg := mustLoadConfig()
		db, cleanup := mustOpenDatabase(cfg)
		defer cleanup()

		runJob("migrate", func() error {
			return database.Migrate(db, cfg.Database.Driver)
		})
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
