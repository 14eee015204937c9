package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/AlecAivazis/survey/v2/terminal"
)

// CLI holds the streams commands read from and write to
type CLI struct {
	Stdin  terminal.FileReader
	Stdout terminal.FileWriter
	Stderr io.Writer
}

// Output writes a line to CLI.Stdout
func (c *CLI) Output(format string, args ...interface{}) {
	fmt.Fprintf(c.Stdout, format+"\n", args...)
}

type key struct{}

var ctxKey = key{}

// WithCLI stores a CLI in ctx; tests use it to capture output.
func WithCLI(ctx context.Context, cli *CLI) context.Context {
	return context.WithValue(ctx, ctxKey, cli)
}

// newCLI returns the CLI stored in ctx, or one bound to the standard streams
func newCLI(ctx context.Context) *CLI {
	if cli, ok := ctx.Value(ctxKey).(*CLI); ok {
		return cli
	}
	return &CLI{
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
}
