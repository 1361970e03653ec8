package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ganot/procflow/internal/domain/repair"
)

// NewRepairCommand creates the one-shot contract-date repair command. It is
// meant to run offline, with the server stopped.
func NewRepairCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "repair",
		Short: "Reconcile contracted history start dates with contract dates",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := setup()
			if err != nil {
				return err
			}
			defer e.close()

			corrected, err := repair.NewService(e.store, e.logger).Run(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "corrected %d history entries\n", corrected)
			return nil
		},
	}
}
