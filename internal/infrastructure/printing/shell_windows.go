//go:build windows

package printing

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"golang.org/x/sys/windows"
)

// ShellDispatcher prints through the shell "print" verb of the file's handler
type ShellDispatcher struct {
	logger *zap.Logger
}

// NewShellDispatcher creates a ShellExecute-based dispatcher
func NewShellDispatcher(logger *zap.Logger) *ShellDispatcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ShellDispatcher{logger: logger}
}

// Print hands the file to the registered PDF handler on the default printer.
// ShellExecute returns once the request is handed off; there is no completion signal.
func (d *ShellDispatcher) Print(ctx context.Context, path string) (*DispatchResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, NewPrintError(ErrCodePrintTimeout, "print was cancelled", err)
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, NewPrintError(ErrCodeFileMissing, fmt.Sprintf("invalid file path: %s", path), err)
	}
	if _, err := os.Stat(absPath); err != nil {
		return nil, NewPrintError(ErrCodeFileMissing, fmt.Sprintf("file to print not found: %s", absPath), err)
	}

	verb, err := windows.UTF16PtrFromString("print")
	if err != nil {
		return nil, NewPrintError(ErrCodePrintFailed, "invalid verb", err)
	}
	file, err := windows.UTF16PtrFromString(absPath)
	if err != nil {
		return nil, NewPrintError(ErrCodePrintFailed, "invalid file path", err)
	}

	if err := windows.ShellExecute(0, verb, file, nil, nil, windows.SW_HIDE); err != nil {
		return nil, NewPrintError(ErrCodePrintFailed, "shell print failed", err)
	}

	d.logger.Debug("print verb invoked", zap.String("path", absPath))

	return &DispatchResult{
		Method: MethodShellExecute,
		Async:  true,
	}, nil
}

var _ Dispatcher = (*ShellDispatcher)(nil)
