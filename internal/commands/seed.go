package commands

import (
	"sacco-admin/internal/config"

	"github.com/spf13/cobra"
)

func newSeedCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Seed the first admin user and default system settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := bootstrap()
			if err != nil {
				return err
			}
			defer rt.close()
			return runSeeder(rt)
		},
	}
}

func runSeeder(rt *runtime) error {
	return config.NewSeeder(rt.db).Run()
}
