package labeling

import (
	"context"
	"sync"

	"github.com/karolis-jablonskis/label-printer/internal/domain/label"
	"github.com/karolis-jablonskis/label-printer/internal/domain/shared"
)

// Submitter is the action bound to a form's submit button
type Submitter interface {
	Submit(ctx context.Context, req SubmitRequest) *SubmitResult
}

// Form holds the four field values of one input surface and its submit action.
// A validation failure keeps the typed values; any submission that reached the
// renderer clears them, whether or not rendering and printing succeeded.
type Form struct {
	mu        sync.Mutex
	values    map[label.Field]string
	submitter Submitter
}

// NewForm creates an empty form bound to the given submitter
func NewForm(submitter Submitter) *Form {
	return &Form{
		values:    emptyValues(),
		submitter: submitter,
	}
}

func emptyValues() map[label.Field]string {
	values := make(map[label.Field]string, len(label.AllFields()))
	for _, f := range label.AllFields() {
		values[f] = ""
	}
	return values
}

// Set updates one field value
func (f *Form) Set(field label.Field, value string) error {
	if !field.IsValid() {
		return shared.NewDomainError("INVALID_INPUT", "Unknown field: "+field.String())
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.values[field] = value
	return nil
}

// SetAll replaces all four values
func (f *Form) SetAll(req SubmitRequest) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for field, value := range req.Values() {
		f.values[field] = value
	}
}

// Value returns the current value of a field
func (f *Form) Value(field label.Field) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.values[field]
}

// Values returns a copy of the current values
func (f *Form) Values() SubmitRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return SubmitRequestFromValues(f.values)
}

// Clear resets every field to the empty string
func (f *Form) Clear() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.values = emptyValues()
}

// Submit forwards the current values to the submitter
func (f *Form) Submit(ctx context.Context) *SubmitResult {
	result := f.submitter.Submit(ctx, f.Values())
	if result.Outcome != OutcomeValidationFailed {
		f.Clear()
	}
	return result
}
