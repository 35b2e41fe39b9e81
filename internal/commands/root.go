package commands

import (
	"github.com/spf13/cobra"
)

// Version is set via ldflags during build.
var Version = "dev"

// NewRootCommand creates the root cobra command for the API binary.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "sacco-admin",
		Short:   "SACCO back-office API",
		Long:    "SACCO back-office API: members, savings, loans, shares, dividends and public content.",
		Version: Version,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	rootCmd.AddCommand(newServeCommand())
	rootCmd.AddCommand(newMigrateCommand())
	rootCmd.AddCommand(newSeedCommand())
	rootCmd.AddCommand(newSweepCommand())

	return rootCmd
}
