package label

import (
	"time"

	"github.com/google/uuid"

	"github.com/karolis-jablonskis/label-printer/internal/domain/shared"
)

// Job tracks one submission through rendering and printing.
// It lives only for the duration of the submission and is never persisted.
type Job struct {
	ID             uuid.UUID
	Request        Request
	Status         JobStatus
	OutputPath     string     // Path of the generated PDF, set once rendered
	PrintRequestID string     // Spooler request id, when the print command reports one
	ErrorMessage   string     // Error message if job failed
	CreatedAt      time.Time
	UpdatedAt      time.Time
	PrintedAt      *time.Time
}

// NewJob creates a pending job for a validated request
func NewJob(req Request) (*Job, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	now := time.Now()
	return &Job{
		ID:        uuid.New(),
		Request:   req,
		Status:    JobStatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// StartRendering marks the job as rendering
func (j *Job) StartRendering() error {
	return j.transition(JobStatusRendering)
}

// Rendered records the path of the generated PDF
func (j *Job) Rendered(outputPath string) error {
	if outputPath == "" {
		return shared.NewDomainError("INVALID_OUTPUT_PATH", "Output path cannot be empty")
	}
	if err := j.transition(JobStatusRendered); err != nil {
		return err
	}
	j.OutputPath = outputPath
	return nil
}

// StartPrinting marks the job as handed to the print dispatcher
func (j *Job) StartPrinting() error {
	return j.transition(JobStatusPrinting)
}

// Printed marks the job as accepted by the printing facility
func (j *Job) Printed(requestID string) error {
	if err := j.transition(JobStatusPrinted); err != nil {
		return err
	}
	j.PrintRequestID = requestID
	now := time.Now()
	j.PrintedAt = &now
	return nil
}

// Fail marks the job as failed with an error message
func (j *Job) Fail(errorMessage string) error {
	if !j.Status.CanTransitionTo(JobStatusFailed) {
		return shared.NewDomainError("INVALID_STATE",
			"Cannot fail a job in status: "+j.Status.String())
	}
	j.Status = JobStatusFailed
	j.ErrorMessage = errorMessage
	j.UpdatedAt = time.Now()
	return nil
}

func (j *Job) transition(target JobStatus) error {
	if !j.Status.CanTransitionTo(target) {
		return shared.NewDomainError("INVALID_STATE",
			"Cannot move from "+j.Status.String()+" to "+target.String())
	}
	j.Status = target
	j.UpdatedAt = time.Now()
	return nil
}

// HasPDF returns true if a PDF has been generated
func (j *Job) HasPDF() bool {
	return j.OutputPath != ""
}

// IsTerminal returns true if the job is in a terminal state
func (j *Job) IsTerminal() bool {
	return j.Status.IsTerminal()
}
