// Package commands implements the CLI commands for the ikon icon engine.
package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.trai.ch/ikon/internal/adapters/detector"
	"go.trai.ch/ikon/internal/app"
	"go.trai.ch/ikon/internal/build"
)

// CLI represents the command line interface for ikon.
type CLI struct {
	app       Application
	rootCmd   *cobra.Command
	setJSON   func(bool)
	configArg string
	logFormat string
}

// Application represents the application logic interface.
type Application interface {
	Render(ctx context.Context, names []string, opts app.RenderOptions) error
	Serve(ctx context.Context, opts app.ServeOptions) error
	Validate(ctx context.Context, paths []string, out io.Writer) error
	Warm(ctx context.Context, prefixes []string, opts app.WarmOptions) error
}

// Option configures a CLI.
type Option func(*CLI)

// WithLogFormat registers the function that switches the logger to JSON output.
func WithLogFormat(setJSON func(bool)) Option {
	return func(c *CLI) {
		c.setJSON = setJSON
	}
}

// New creates a new CLI instance with the given app.
func New(a Application, opts ...Option) *CLI {
	rootCmd := &cobra.Command{
		Use:           "ikon",
		Short:         "Resolve, cache and serve Iconify icons",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
	}

	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"{{.Name}} version {{.Version}} (commit: %s, date: %s)\n",
		build.Commit,
		build.Date,
	))
	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	c := &CLI{
		app:     a,
		rootCmd: rootCmd,
	}
	for _, opt := range opts {
		opt(c)
	}

	rootCmd.PersistentFlags().StringVarP(&c.configArg, "config", "c", "", "Path to the config file (default ./ikon.yaml)")
	rootCmd.PersistentFlags().StringVar(&c.logFormat, "log-format", "auto", "Log format: auto, pretty or json")
	rootCmd.PersistentPreRun = func(_ *cobra.Command, _ []string) {
		if c.setJSON != nil {
			format := detector.ResolveFormat(detector.DetectFormat(), c.logFormat)
			c.setJSON(format == detector.FormatJSON)
		}
	}

	rootCmd.AddCommand(c.newSVGCmd())
	rootCmd.AddCommand(c.newServeCmd())
	rootCmd.AddCommand(c.newValidateCmd())
	rootCmd.AddCommand(c.newWarmCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	return c
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

// SetOutput sets the output and error streams for the root command. Used for testing.
func (c *CLI) SetOutput(out, err io.Writer) {
	c.rootCmd.SetOut(out)
	c.rootCmd.SetErr(err)
}
