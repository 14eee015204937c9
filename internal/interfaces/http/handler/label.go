package handler

import (
	"context"
	"errors"
	"html/template"
	"io"
	"io/fs"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/karolis-jablonskis/label-printer/internal/application/labeling"
	"github.com/karolis-jablonskis/label-printer/internal/domain/label"
	"github.com/karolis-jablonskis/label-printer/internal/infrastructure/logger"
	"github.com/karolis-jablonskis/label-printer/internal/interfaces/http/dto"
	"github.com/karolis-jablonskis/label-printer/internal/interfaces/http/router"
)

// LabelFileOpener gives read access to generated label PDFs
type LabelFileOpener interface {
	Open(ctx context.Context, fileName string) (io.ReadCloser, error)
}

// LabelHandler serves the web form and the label API
type LabelHandler struct {
	BaseHandler
	submitter       labeling.Submitter
	files           LabelFileOpener
	printingEnabled bool
	page            *template.Template
}

// LabelHandlerOption is a functional option for LabelHandler
type LabelHandlerOption func(*LabelHandler)

// WithPrintingEnabled sets whether the form advertises printing or saving
func WithPrintingEnabled(enabled bool) LabelHandlerOption {
	return func(h *LabelHandler) {
		h.printingEnabled = enabled
	}
}

// NewLabelHandler creates a new LabelHandler
func NewLabelHandler(submitter labeling.Submitter, files LabelFileOpener, opts ...LabelHandlerOption) *LabelHandler {
	h := &LabelHandler{
		submitter:       submitter,
		files:           files,
		printingEnabled: true,
		page:            indexTemplate,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// LabelResponse is the API view of one submission
type LabelResponse struct {
	Outcome        labeling.Outcome       `json:"outcome"`
	Notice         labeling.Notice        `json:"notice"`
	JobID          string                 `json:"job_id,omitempty"`
	Status         string                 `json:"status,omitempty"`
	FileName       string                 `json:"file_name,omitempty"`
	DownloadURL    string                 `json:"download_url,omitempty"`
	PrintRequestID string                 `json:"print_request_id,omitempty"`
	Fields         labeling.SubmitRequest `json:"fields"`
}

type fieldView struct {
	Name  string
	Label string
}

type pageView struct {
	Title           string
	Fields          []fieldView
	ButtonText      string
	PrintingEnabled bool
}

// Index godoc
// @Summary      Label form
// @Description  Serves the HTML form with the four label fields
// @Router       / [get]
func (h *LabelHandler) Index(c *gin.Context) {
	view := pageView{
		Title:           "Label Print",
		ButtonText:      "Generate & Print",
		PrintingEnabled: h.printingEnabled,
	}
	if !h.printingEnabled {
		view.ButtonText = "Generate"
	}
	for _, f := range label.AllFields() {
		view.Fields = append(view.Fields, fieldView{Name: f.String(), Label: f.DisplayName()})
	}

	c.Header("Content-Type", "text/html; charset=utf-8")
	c.Status(http.StatusOK)
	if err := h.page.Execute(c.Writer, view); err != nil {
		logger.GetGinLogger(c).Error("failed to render form page", zap.Error(err))
	}
}

// CreateLabel godoc
// @Summary      Generate and print a label
// @Description  Accepts JSON or form-encoded fields; the response carries the dialog to show
// @Accept       json
// @Produce      json
// @Param        request  body      labeling.SubmitRequest  true  "Label fields"
// @Success      200      {object}  dto.Response{data=LabelResponse}
// @Failure      422      {object}  dto.Response{data=LabelResponse}
// @Router       /api/v1/labels [post]
func (h *LabelHandler) CreateLabel(c *gin.Context) {
	var req labeling.SubmitRequest
	if err := c.ShouldBind(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			h.Error(c, dto.ErrCodeRequestTooLarge, dto.MessageRequestTooLarge)
			return
		}
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	// Each request gets its own form so concurrent submissions stay independent.
	form := labeling.NewForm(h.submitter)
	form.SetAll(req)
	result := form.Submit(c.Request.Context())

	resp := LabelResponse{
		Outcome:  result.Outcome,
		Notice:   result.Notice,
		FileName: result.FileName,
		Fields:   form.Values(),
	}
	if result.Job != nil {
		resp.JobID = result.Job.ID.String()
		resp.Status = result.Job.Status.String()
		resp.PrintRequestID = result.Job.PrintRequestID
	}
	if result.FileName != "" {
		resp.DownloadURL = "/api/v1/labels/files/" + url.PathEscape(result.FileName)
	}

	switch result.Outcome {
	case labeling.OutcomeValidationFailed:
		h.ErrorWithData(c, dto.ErrCodeValidationFailed, result.Notice.Message, resp)
	case labeling.OutcomeRenderFailed:
		h.ErrorWithData(c, dto.ErrCodeRenderFailed, result.Notice.Message, resp)
	case labeling.OutcomePrintFailed:
		h.ErrorWithData(c, dto.ErrCodePrintFailed, result.Notice.Message, resp)
	default:
		h.Success(c, resp)
	}
}

// DownloadLabel godoc
// @Summary      Download a generated label
// @Produce      application/pdf
// @Param        name  path  string  true  "File name"
// @Router       /api/v1/labels/files/{name} [get]
func (h *LabelHandler) DownloadLabel(c *gin.Context) {
	name := c.Param("name")

	rc, err := h.files.Open(c.Request.Context(), name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			h.NotFound(c, "Label not found")
			return
		}
		h.BadRequest(c, "Invalid label file name")
		return
	}
	defer rc.Close()

	c.DataFromReader(http.StatusOK, -1, "application/pdf", rc, map[string]string{
		"Content-Disposition": `inline; filename="` + name + `"`,
	})
}

// Health reports that the server is up
func (h *LabelHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// PageRoutes creates the group for the form page and health check
func PageRoutes(h *LabelHandler) *router.DomainGroup {
	return router.NewDomainGroup("pages", "").
		GET("/", h.Index).
		GET("/health", h.Health)
}

// LabelRoutes creates the route group for label endpoints
func LabelRoutes(h *LabelHandler) *router.DomainGroup {
	group := router.NewDomainGroup("labels", "/labels")
	group.POST("", h.CreateLabel)
	group.GET("/files/:name", h.DownloadLabel)
	return group
}
