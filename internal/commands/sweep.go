package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

func newSweepCommand() *cobra.Command {
	var asOf string

	cmd := &cobra.Command{
		Use:   "sweep-overdue",
		Short: "Mark active loans past their due date as defaulted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			at := time.Now()
			if asOf != "" {
				parsed, err := time.Parse(time.DateOnly, asOf)
				if err != nil {
					return fmt.Errorf("parsing --as-of: %w", err)
				}
				at = parsed
			}

			rt, err := bootstrap()
			if err != nil {
				return err
			}
			defer rt.close()

			n, err := rt.services.Loans.SweepOverdue(cmd.Context(), at)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d loan(s) marked defaulted\n", n)
			return nil
		},
	}

	cmd.Flags().StringVar(&asOf, "as-of", "", "reference date (YYYY-MM-DD), defaults to today")

	return cmd
}
