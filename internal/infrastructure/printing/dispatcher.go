package printing

import (
	"context"
	"runtime"
	"time"

	"go.uber.org/zap"
)

// Dispatch methods reported in DispatchResult
const (
	MethodLP           = "lp"
	MethodShellExecute = "shellexecute"
	MethodNoop         = "noop"
)

// Dispatcher sends a stored PDF to the operating system print facility
type Dispatcher interface {
	// Print submits the file at path to the default or configured printer
	Print(ctx context.Context, path string) (*DispatchResult, error)
}

// DispatchResult describes a submitted print
type DispatchResult struct {
	// Method is the print facility used
	Method string
	// RequestID is the spooler request id, when the command reports one
	RequestID string
	// Async is true when the OS gives no completion signal
	Async bool
	// Output is the trimmed stdout of the print command
	Output string
}

// PrintError represents an error while handing a file to the printer
type PrintError struct {
	Code    string
	Message string
	Cause   error
	// Stderr is the print command's standard error, if any
	Stderr string
}

func (e *PrintError) Error() string {
	msg := e.Message
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	if e.Stderr != "" {
		msg += " (" + e.Stderr + ")"
	}
	return msg
}

func (e *PrintError) Unwrap() error {
	return e.Cause
}

// Error codes for print failures
const (
	ErrCodeBinaryNotFound = "BINARY_NOT_FOUND"
	ErrCodePrintFailed    = "PRINT_FAILED"
	ErrCodePrintTimeout   = "PRINT_TIMEOUT"
	ErrCodeFileMissing    = "FILE_MISSING"
	ErrCodeUnsupported    = "UNSUPPORTED_PLATFORM"
)

// NewPrintError creates a new PrintError
func NewPrintError(code, message string, cause error) *PrintError {
	return &PrintError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// DispatcherConfig contains configuration for choosing a dispatcher
type DispatcherConfig struct {
	// Enabled turns printing on; when false files are only saved
	Enabled bool
	// Command is the line-printer binary on non-Windows systems
	// Default: lp
	Command string
	// Destination is passed as -d <name> when set
	Destination string
	// Timeout bounds the print command
	Timeout time.Duration
	// GOOS overrides runtime.GOOS
	GOOS string
	// Logger for operations
	Logger *zap.Logger
}

// NewDispatcher returns the dispatcher for the configured OS family
func NewDispatcher(config *DispatcherConfig) Dispatcher {
	if config == nil {
		config = &DispatcherConfig{Enabled: true}
	}
	if !config.Enabled {
		return NoopDispatcher{}
	}

	goos := config.GOOS
	if goos == "" {
		goos = runtime.GOOS
	}
	if goos == "windows" {
		return NewShellDispatcher(config.Logger)
	}

	return NewLPDispatcher(&LPConfig{
		Command:     config.Command,
		Destination: config.Destination,
		Timeout:     config.Timeout,
		Logger:      config.Logger,
	})
}

// NoopDispatcher accepts every file without printing
type NoopDispatcher struct{}

// Print implements Dispatcher
func (NoopDispatcher) Print(ctx context.Context, path string) (*DispatchResult, error) {
	return &DispatchResult{Method: MethodNoop}, nil
}

var _ Dispatcher = NoopDispatcher{}
