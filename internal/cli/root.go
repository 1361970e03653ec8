// Package cli defines the procflow command tree.
package cli

import (
	"github.com/spf13/cobra"
)

// NewRootCommand creates the root command for the procflow CLI.
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "procflow",
		Short:         "Procurement process tracker",
		Long:          "Tracks procurement processes through phases and sectors, with per-change history timelines and file attachments.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.AddCommand(NewServeCommand())
	cmd.AddCommand(NewRepairCommand())

	return cmd
}
