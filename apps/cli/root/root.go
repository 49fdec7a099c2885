package root

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// rootCmd is the base command for the PG admin CLI. Subcommands (bootstrap, seed) are attached here.
var rootCmd = &cobra.Command{
	Use:           "pgadmin",
	Short:         "PG management admin CLI",
	Long:          "Administrative utilities for the PG management backend (schema bootstrap, demo data seeding).",
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		_ = godotenv.Load()
	},
}

// Execute runs the CLI.
func Execute() error {
	return rootCmd.Execute()
}

// Root returns the mutable root command for wiring from subpackages.
func Root() *cobra.Command {
	return rootCmd
}
