package cmd

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/karolis-jablonskis/label-printer/internal/application/labeling"
	"github.com/karolis-jablonskis/label-printer/internal/interfaces/tui"
)

type printOptions struct {
	labeling.SubmitRequest
}

func newPrintCmd(cli *CLI, opts *rootOptions) *cobra.Command {
	var options printOptions

	cmd := &cobra.Command{
		Use:   "print",
		Short: "Generate and print one label",
		Example: `# Print a label for 10 pieces of ABC123
$ labelprint print --part ABC123 --qty 10 --division North --tab TAB-001`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(cmd.Context(), opts.ConfigFile)
			if err != nil {
				return err
			}
			defer a.close()

			return printLabel(cmd, a.service, options.SubmitRequest, cli.Stdout)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&options.PartNumber, "part", "", "Part number")
	flags.StringVar(&options.Quantity, "qty", "", "Quantity")
	flags.StringVar(&options.Division, "division", "", "Division")
	flags.StringVar(&options.TrackingID, "tab", "", "TAB No (tracking id)")
	return cmd
}

func printLabel(cmd *cobra.Command, submitter labeling.Submitter, req labeling.SubmitRequest, out io.Writer) error {
	result := submitter.Submit(cmd.Context(), req)
	if _, err := io.WriteString(out, tui.FormatNotice(result.Notice)); err != nil {
		return err
	}
	if result.Outcome.IsSuccess() {
		return nil
	}
	return Error{Cause: string(result.Outcome), OriginalError: result.Err}
}
