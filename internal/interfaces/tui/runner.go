package tui

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/karolis-jablonskis/label-printer/internal/application/labeling"
	"github.com/karolis-jablonskis/label-printer/internal/domain/label"
)

// Runner drives a labeling.Form from the terminal: it prompts for the four
// fields, submits, shows the resulting notice and starts over until the user
// interrupts.
type Runner struct {
	form   *labeling.Form
	driver PromptDriver
	logger *zap.Logger
}

// NewRunner creates a terminal form runner
func NewRunner(form *labeling.Form, driver PromptDriver, logger *zap.Logger) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{
		form:   form,
		driver: driver,
		logger: logger,
	}
}

// Run loops until the user aborts or ctx is cancelled.
// An abort is a normal exit and returns nil.
func (r *Runner) Run(ctx context.Context) error {
	for {
		result, err := r.RunOnce(ctx)
		if errors.Is(err, ErrAborted) || errors.Is(err, context.Canceled) {
			r.logger.Info("Terminal form closed")
			return nil
		}
		if err != nil {
			return err
		}
		r.logger.Debug("Submission finished", zap.String("outcome", string(result.Outcome)))
	}
}

// RunOnce prompts for every field once, submits the form and shows the notice.
// Prompts default to the current form values, so values kept after a
// validation failure are offered again.
func (r *Runner) RunOnce(ctx context.Context) (*labeling.SubmitResult, error) {
	for _, field := range label.AllFields() {
		value, err := r.driver.Input(ctx, InputConfig{
			Message: field.DisplayName() + ":",
			Default: r.form.Value(field),
		})
		if err != nil {
			return nil, err
		}
		if err := r.form.Set(field, value); err != nil {
			return nil, err
		}
	}

	result := r.form.Submit(ctx)
	if err := r.driver.Notify(ctx, result.Notice); err != nil {
		return result, err
	}
	return result, nil
}
