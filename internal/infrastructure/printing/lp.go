package printing

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"regexp"
	"strings"
	"time"

	"go.uber.org/zap"
)

const (
	defaultLPCommand = "lp"
	defaultLPTimeout = 30 * time.Second
)

var lpRequestIDPattern = regexp.MustCompile(`request id is (\S+)`)

// LPConfig contains configuration for the lp dispatcher
type LPConfig struct {
	// Command is the lp binary name or path
	Command string
	// Destination is the printer name; empty means the system default
	Destination string
	// Timeout for the lp process
	Timeout time.Duration
	// Logger for debug output
	Logger *zap.Logger
}

// LPDispatcher prints through the CUPS/System V lp command
type LPDispatcher struct {
	config *LPConfig
	logger *zap.Logger
}

// NewLPDispatcher creates a new lp-based dispatcher.
// The binary is resolved at print time so a missing lp only fails the print.
func NewLPDispatcher(config *LPConfig) *LPDispatcher {
	if config == nil {
		config = &LPConfig{}
	}
	if config.Command == "" {
		config.Command = defaultLPCommand
	}
	if config.Timeout <= 0 {
		config.Timeout = defaultLPTimeout
	}

	logger := config.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &LPDispatcher{
		config: config,
		logger: logger,
	}
}

// Print runs `lp [-d dest] <path>` and waits for it to exit
func (d *LPDispatcher) Print(ctx context.Context, path string) (*DispatchResult, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, NewPrintError(ErrCodeFileMissing, fmt.Sprintf("file to print not found: %s", path), err)
	}

	binary, err := exec.LookPath(d.config.Command)
	if err != nil {
		return nil, NewPrintError(ErrCodeBinaryNotFound,
			fmt.Sprintf("print command not found: %s", d.config.Command), err)
	}

	ctx, cancel := context.WithTimeout(ctx, d.config.Timeout)
	defer cancel()

	args := d.buildArgs(path)
	d.logger.Debug("executing print command",
		zap.String("binary", binary),
		zap.Strings("args", args))

	cmd := exec.CommandContext(ctx, binary, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, NewPrintError(ErrCodePrintTimeout,
				fmt.Sprintf("print command timed out after %v", d.config.Timeout), err)
		}
		if errors.Is(ctx.Err(), context.Canceled) {
			return nil, NewPrintError(ErrCodePrintTimeout, "print command was cancelled", err)
		}

		printErr := NewPrintError(ErrCodePrintFailed, "print command failed", err)
		printErr.Stderr = strings.TrimSpace(stderr.String())
		return nil, printErr
	}

	output := strings.TrimSpace(stdout.String())
	result := &DispatchResult{
		Method: MethodLP,
		Output: output,
	}
	if m := lpRequestIDPattern.FindStringSubmatch(output); m != nil {
		result.RequestID = m[1]
	}

	d.logger.Debug("print command completed",
		zap.String("path", path),
		zap.String("request_id", result.RequestID))

	return result, nil
}

func (d *LPDispatcher) buildArgs(path string) []string {
	args := make([]string, 0, 3)
	if d.config.Destination != "" {
		args = append(args, "-d", d.config.Destination)
	}
	return append(args, path)
}

var _ Dispatcher = (*LPDispatcher)(nil)
