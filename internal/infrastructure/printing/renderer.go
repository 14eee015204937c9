package printing

import (
	"context"
	"errors"
	"time"

	"github.com/karolis-jablonskis/label-printer/internal/domain/label"
)

// PDFRenderer draws a label and returns the PDF bytes
type PDFRenderer interface {
	Render(ctx context.Context, req *RenderRequest) (*RenderResult, error)
}

// RenderRequest is one label to draw. A zero Date stamps the current time.
type RenderRequest struct {
	Label label.Request
	Date  time.Time
	Title string
}

// RenderResult is a rendered label document
type RenderResult struct {
	PDFData        []byte
	PageCount      int
	RenderDuration time.Duration
}

// Error codes carried by RenderError
const (
	ErrCodeRenderCancelled  = "RENDER_CANCELLED"
	ErrCodeRenderFailed     = "RENDER_FAILED"
	ErrCodeInvalidRequest   = "INVALID_REQUEST"
	ErrCodeBarcodeEncoding  = "BARCODE_ENCODING"
	ErrCodeInvalidPaperSize = "INVALID_PAPER_SIZE"
	ErrCodeStorageFailed    = "STORAGE_FAILED"
)

// RenderError reports a label that could not be drawn or saved
type RenderError struct {
	Code    string
	Message string
	Cause   error
}

// NewRenderError creates a RenderError
func NewRenderError(code, message string, cause error) *RenderError {
	return &RenderError{Code: code, Message: message, Cause: cause}
}

func (e *RenderError) Error() string {
	if e.Cause == nil {
		return e.Message
	}
	return e.Message + ": " + e.Cause.Error()
}

func (e *RenderError) Unwrap() error {
	return e.Cause
}

// ErrorCode returns the code of the first RenderError or PrintError in err's chain,
// or an empty string
func ErrorCode(err error) string {
	var renderErr *RenderError
	if errors.As(err, &renderErr) {
		return renderErr.Code
	}
	var printErr *PrintError
	if errors.As(err, &printErr) {
		return printErr.Code
	}
	return ""
}
