package cmd

import (
	"context"

	"github.com/spf13/cobra"
)

type rootOptions struct {
	ConfigFile string
}

// Run the main CLI command with the given args. The args should not contain
// the name of the binary (ex: os.Args[1:]).
func Run(ctx context.Context, args ...string) error {
	cli := newCLI(ctx)
	cmd := NewRootCmd(cli)
	cmd.SetArgs(args)
	cmd.SetOut(cli.Stdout)
	cmd.SetErr(cli.Stderr)
	return cmd.ExecuteContext(ctx)
}

// NewRootCmd builds the command tree. Without a subcommand the terminal form runs.
func NewRootCmd(cli *CLI) *cobra.Command {
	opts := &rootOptions{}
	formCmd := newFormCmd(cli, opts)

	rootCmd := &cobra.Command{
		Use:               "labelprint",
		Short:             "Generate and print part labels with Code128 barcodes",
		CompletionOptions: cobra.CompletionOptions{DisableDefaultCmd: true},
		SilenceUsage:      true,
		SilenceErrors:     true,
		Args:              cobra.NoArgs,
		RunE:              formCmd.RunE,
	}

	rootCmd.PersistentFlags().StringVar(&opts.ConfigFile, "config", "", "Path to a TOML config file (default: ./config.toml if present)")

	rootCmd.AddCommand(
		formCmd,
		newServeCmd(cli, opts),
		newPrintCmd(cli, opts),
	)
	return rootCmd
}
