package labeling

import (
	"github.com/karolis-jablonskis/label-printer/internal/domain/label"
)

// Outcome summarises how a submission ended
type Outcome string

const (
	OutcomeValidationFailed Outcome = "validation_failed"
	OutcomeRenderFailed     Outcome = "render_failed"
	OutcomePrintFailed      Outcome = "print_failed"
	OutcomePrinted          Outcome = "printed"
	OutcomeSaved            Outcome = "saved"
)

// IsSuccess returns true if the label was produced
func (o Outcome) IsSuccess() bool {
	return o == OutcomePrinted || o == OutcomeSaved
}

// NoticeLevel distinguishes informational and error dialogs
type NoticeLevel string

const (
	NoticeInfo  NoticeLevel = "info"
	NoticeError NoticeLevel = "error"
)

// Notice is the dialog shown to the user after a submission
type Notice struct {
	Level   NoticeLevel `json:"level"`
	Title   string      `json:"title"`
	Message string      `json:"message"`
}

// IsError returns true for error dialogs
func (n Notice) IsError() bool {
	return n.Level == NoticeError
}

// SubmitRequest carries the raw, untrimmed field values of one submission
type SubmitRequest struct {
	PartNumber string `json:"part_number" form:"part_number"`
	Quantity   string `json:"quantity" form:"quantity"`
	Division   string `json:"division" form:"division"`
	TrackingID string `json:"tracking_id" form:"tracking_id"`
}

// Values returns the request as a field->value map
func (r SubmitRequest) Values() map[label.Field]string {
	return map[label.Field]string{
		label.FieldPartNumber: r.PartNumber,
		label.FieldQuantity:   r.Quantity,
		label.FieldDivision:   r.Division,
		label.FieldTrackingID: r.TrackingID,
	}
}

// SubmitRequestFromValues builds a request from a field->value map
func SubmitRequestFromValues(values map[label.Field]string) SubmitRequest {
	return SubmitRequest{
		PartNumber: values[label.FieldPartNumber],
		Quantity:   values[label.FieldQuantity],
		Division:   values[label.FieldDivision],
		TrackingID: values[label.FieldTrackingID],
	}
}

// SubmitResult is the outcome of one submission.
// Job is nil when validation failed.
type SubmitResult struct {
	Job       *label.Job
	Outcome   Outcome
	Notice    Notice
	Path      string
	FileName  string
	RequestID string
	Err       error
}
