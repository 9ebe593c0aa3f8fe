package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/ikon/internal/app"
)

func (c *CLI) newWarmCmd() *cobra.Command {
	var opts app.WarmOptions
	cmd := &cobra.Command{
		Use:   "warm [prefixes...]",
		Short: "Fetch icons into the persistent cache",
		Example: "  ikon warm mdi --icons home,account\n" +
			"  ikon warm mdi tabler --icons home --provider custom",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.ConfigPath = c.configArg
			return c.app.Warm(cmd.Context(), args, opts)
		},
	}
	cmd.Flags().StringSliceVarP(&opts.Icons, "icons", "i", nil, "Icon names to fetch for every prefix")
	cmd.Flags().StringVarP(&opts.Provider, "provider", "p", "", "API provider (default provider when empty)")
	return cmd
}
