package labeling

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/karolis-jablonskis/label-printer/internal/domain/label"
	"github.com/karolis-jablonskis/label-printer/internal/infrastructure/logger"
	infra "github.com/karolis-jablonskis/label-printer/internal/infrastructure/printing"
)

// Notice titles and messages shown to the user
const (
	TitleError       = "Error"
	TitleRenderError = "PDF Creation Error"
	TitlePrintError  = "Print Error"
	TitleSuccess     = "Success"

	MessagePrinted = "Label sent to printer."
)

// LabelService renders, stores and prints labels.
// Failures are logged and turned into notices; Submit never returns an error.
type LabelService struct {
	renderer   infra.PDFRenderer
	storage    infra.LabelStorage
	dispatcher infra.Dispatcher
	now        func() time.Time
	logger     *zap.Logger
}

// ServiceOption is a functional option for configuring LabelService
type ServiceOption func(*LabelService)

// WithClock sets the clock used for file names and the date stamp
func WithClock(now func() time.Time) ServiceOption {
	return func(s *LabelService) {
		s.now = now
	}
}

// NewLabelService creates a new LabelService
func NewLabelService(
	renderer infra.PDFRenderer,
	storage infra.LabelStorage,
	dispatcher infra.Dispatcher,
	logger *zap.Logger,
	opts ...ServiceOption,
) *LabelService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if dispatcher == nil {
		dispatcher = infra.NoopDispatcher{}
	}
	s := &LabelService{
		renderer:   renderer,
		storage:    storage,
		dispatcher: dispatcher,
		now:        time.Now,
		logger:     logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// PrintingEnabled returns false when labels are only saved
func (s *LabelService) PrintingEnabled() bool {
	_, noop := s.dispatcher.(infra.NoopDispatcher)
	return !noop
}

// Submit validates the request, renders the label, writes it to the output
// folder and sends it to the printer. Printing is skipped when rendering or
// storing fails.
func (s *LabelService) Submit(ctx context.Context, req SubmitRequest) *SubmitResult {
	labelReq, err := label.NewRequest(req.PartNumber, req.Quantity, req.Division, req.TrackingID)
	if err != nil {
		var verr *label.ValidationError
		fields := []string{}
		if errors.As(err, &verr) {
			fields = verr.FieldNames()
		}
		s.logger.Error("Validation failed: One or more fields were empty.",
			zap.Strings("fields", fields))
		return &SubmitResult{
			Outcome: OutcomeValidationFailed,
			Notice:  Notice{Level: NoticeError, Title: TitleError, Message: label.ErrValidation.Message},
			Err:     err,
		}
	}

	job, err := label.NewJob(labelReq)
	if err != nil {
		return s.renderFailed(s.logger, nil, err)
	}
	ctx, log := logger.WithJobID(ctx, s.logger, job.ID.String())

	if err := job.StartRendering(); err != nil {
		return s.renderFailed(log, job, err)
	}

	now := s.now()
	pdf, err := s.renderer.Render(ctx, &infra.RenderRequest{
		Label: labelReq,
		Date:  now,
		Title: "Label " + labelReq.PartNumber,
	})
	if err != nil {
		return s.renderFailed(log, job, err)
	}

	stored, err := s.storage.Store(ctx, &infra.StoreRequest{
		PartNumber: labelReq.PartNumber,
		Timestamp:  now,
		PDFData:    pdf.PDFData,
	})
	if err != nil {
		return s.renderFailed(log, job, err)
	}

	if err := job.Rendered(stored.Path); err != nil {
		return s.renderFailed(log, job, err)
	}
	log.Info("PDF created successfully",
		zap.String("path", stored.Path),
		zap.String("part_number", labelReq.PartNumber),
		zap.Duration("render_duration", pdf.RenderDuration))

	result := &SubmitResult{
		Job:      job,
		Path:     stored.Path,
		FileName: stored.FileName,
	}

	if !s.PrintingEnabled() {
		log.Info("Printing disabled; label saved", zap.String("path", stored.Path))
		result.Outcome = OutcomeSaved
		result.Notice = Notice{Level: NoticeInfo, Title: TitleSuccess, Message: "Label saved to " + stored.Path + "."}
		return result
	}

	if err := job.StartPrinting(); err != nil {
		return s.printFailed(log, result, err)
	}
	dispatched, err := s.dispatcher.Print(ctx, stored.Path)
	if err != nil {
		return s.printFailed(log, result, err)
	}
	if err := job.Printed(dispatched.RequestID); err != nil {
		return s.printFailed(log, result, err)
	}

	log.Info("PDF sent to printer",
		zap.String("path", stored.Path),
		zap.String("method", dispatched.Method),
		zap.String("request_id", dispatched.RequestID),
		zap.Bool("async", dispatched.Async))

	result.Outcome = OutcomePrinted
	result.RequestID = dispatched.RequestID
	result.Notice = Notice{Level: NoticeInfo, Title: TitleSuccess, Message: MessagePrinted}
	return result
}

func (s *LabelService) renderFailed(log *zap.Logger, job *label.Job, err error) *SubmitResult {
	log.Error("Failed to create PDF", zap.Error(err), zap.String("code", infra.ErrorCode(err)))
	if job != nil {
		_ = job.Fail(err.Error())
	}
	return &SubmitResult{
		Job:     job,
		Outcome: OutcomeRenderFailed,
		Notice:  Notice{Level: NoticeError, Title: TitleRenderError, Message: "An error occurred: " + err.Error()},
		Err:     err,
	}
}

func (s *LabelService) printFailed(log *zap.Logger, result *SubmitResult, err error) *SubmitResult {
	log.Error("Failed to print PDF",
		zap.Error(err),
		zap.String("code", infra.ErrorCode(err)),
		zap.String("path", result.Path),
	)
	_ = result.Job.Fail(err.Error())
	result.Outcome = OutcomePrintFailed
	result.Notice = Notice{Level: NoticeError, Title: TitlePrintError, Message: "An error occurred: " + err.Error()}
	result.Err = err
	return result
}
