package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "memberships",
	Short: "Membership lifecycle and redemption service",
	Long:  "Plans, subscriptions, event tickets and partner benefit redemptions for the member platform.",
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
