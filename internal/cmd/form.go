package cmd

import (
	"github.com/spf13/cobra"

	"github.com/karolis-jablonskis/label-printer/internal/application/labeling"
	"github.com/karolis-jablonskis/label-printer/internal/infrastructure/logger"
	"github.com/karolis-jablonskis/label-printer/internal/interfaces/tui"
)

func newFormCmd(cli *CLI, opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "form",
		Short: "Fill in labels interactively in the terminal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(cmd.Context(), opts.ConfigFile)
			if err != nil {
				return err
			}
			defer a.close()

			cli.Output("Label Print (Ctrl-C to quit)")
			runner := tui.NewRunner(
				labeling.NewForm(a.service),
				tui.NewSurveyDriver(cli.Stdin, cli.Stdout, cli.Stderr),
				logger.Named(a.log, "tui"),
			)
			return runner.Run(cmd.Context())
		},
	}
}
