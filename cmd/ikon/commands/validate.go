package commands

import (
	"github.com/spf13/cobra"
)

func (c *CLI) newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [paths...]",
		Short: "Check local icon set files",
		Long:  "Check that icon set files parse and import cleanly. Paths may be files, directories or glob patterns.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.app.Validate(cmd.Context(), args, cmd.OutOrStdout())
		},
	}
}
