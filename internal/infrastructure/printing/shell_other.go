//go:build !windows

package printing

import (
	"context"
	"runtime"

	"go.uber.org/zap"
)

// ShellDispatcher is only functional on Windows
type ShellDispatcher struct {
	logger *zap.Logger
}

// NewShellDispatcher creates a dispatcher that always reports the platform as unsupported
func NewShellDispatcher(logger *zap.Logger) *ShellDispatcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ShellDispatcher{logger: logger}
}

// Print implements Dispatcher
func (d *ShellDispatcher) Print(ctx context.Context, path string) (*DispatchResult, error) {
	return nil, NewPrintError(ErrCodeUnsupported, "shell print is not available on "+runtime.GOOS, nil)
}

var _ Dispatcher = (*ShellDispatcher)(nil)
