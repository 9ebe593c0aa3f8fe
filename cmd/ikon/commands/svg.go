package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/ikon/internal/app"
	"go.trai.ch/ikon/internal/core/domain"
)

func (c *CLI) newSVGCmd() *cobra.Command {
	var (
		req    domain.RenderRequest
		outDir string
	)
	cmd := &cobra.Command{
		Use:   "svg [icons...]",
		Short: "Render icons as SVG documents",
		Example: "  ikon svg mdi:home\n" +
			"  ikon svg mdi:home mdi:account --height 32 --rotate 90deg -o icons/",
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				_ = cmd.Help()
				return nil
			}
			return c.app.Render(cmd.Context(), args, app.RenderOptions{
				ConfigPath: c.configArg,
				Request:    req,
				OutDir:     outDir,
				Out:        cmd.OutOrStdout(),
			})
		},
	}
	cmd.Flags().StringVar(&req.Width, "width", "", "Width: a number, a unit string such as 2em, 'auto' or 'unset'")
	cmd.Flags().StringVar(&req.Height, "height", "", "Height: a number, a unit string such as 2em, 'auto' or 'unset'")
	cmd.Flags().StringVar(&req.Flip, "flip", "", "Flip: 'horizontal', 'vertical' or both, comma separated")
	cmd.Flags().StringVar(&req.Rotate, "rotate", "", "Rotation: quarter turns, or an angle such as 90deg or 50%")
	cmd.Flags().BoolVar(&req.Inline, "inline", false, "Add vertical-align style for inline use")
	cmd.Flags().BoolVar(&req.Box, "box", false, "Add an invisible rectangle covering the viewBox")
	cmd.Flags().StringVarP(&outDir, "out", "o", "", "Write one file per icon into this directory")
	return cmd
}
