package handler

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/karolis-jablonskis/label-printer/internal/application/labeling"
	"github.com/karolis-jablonskis/label-printer/internal/domain/label"
	infra "github.com/karolis-jablonskis/label-printer/internal/infrastructure/printing"
	"github.com/karolis-jablonskis/label-printer/internal/interfaces/http/middleware"
	"github.com/karolis-jablonskis/label-printer/internal/interfaces/http/router"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type MockSubmitter struct {
	mock.Mock
}

func (m *MockSubmitter) Submit(ctx context.Context, req labeling.SubmitRequest) *labeling.SubmitResult {
	args := m.Called(ctx, req)
	return args.Get(0).(*labeling.SubmitResult)
}

type MockFileOpener struct {
	mock.Mock
}

func (m *MockFileOpener) Open(ctx context.Context, fileName string) (io.ReadCloser, error) {
	args := m.Called(ctx, fileName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(io.ReadCloser), args.Error(1)
}

type apiResponse struct {
	Success bool          `json:"success"`
	Data    LabelResponse `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func setupEngine(h *LabelHandler) *gin.Engine {
	engine := gin.New()
	engine.Use(middleware.RequestID())
	router.NewRouter(engine).
		Pages(PageRoutes(h)).
		Register(LabelRoutes(h)).
		Setup()
	return engine
}

func filledRequest() labeling.SubmitRequest {
	return labeling.SubmitRequest{
		PartNumber: "ABC123",
		Quantity:   "10",
		Division:   "North",
		TrackingID: "TAB-001",
	}
}

func printedResult(t *testing.T) *labeling.SubmitResult {
	t.Helper()
	req, err := label.NewRequest("ABC123", "10", "North", "TAB-001")
	require.NoError(t, err)
	job, err := label.NewJob(req)
	require.NoError(t, err)
	require.NoError(t, job.StartRendering())
	require.NoError(t, job.Rendered("output_pdfs/label_ABC123-20261019_143005.pdf"))
	require.NoError(t, job.StartPrinting())
	require.NoError(t, job.Printed("Office-42"))

	return &labeling.SubmitResult{
		Job:      job,
		Outcome:  labeling.OutcomePrinted,
		Notice:   labeling.Notice{Level: labeling.NoticeInfo, Title: "Success", Message: "Label sent to printer."},
		Path:     job.OutputPath,
		FileName: "label_ABC123-20261019_143005.pdf",
	}
}

func decode(t *testing.T, w *httptest.ResponseRecorder) apiResponse {
	t.Helper()
	var resp apiResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestLabelHandler_Index(t *testing.T) {
	engine := setupEngine(NewLabelHandler(new(MockSubmitter), new(MockFileOpener)))

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
	body := w.Body.String()
	for _, text := range []string{"Part Number:", "Quantity:", "Division:", "TAB No:", `name="tracking_id"`, "Generate &amp; Print"} {
		assert.Contains(t, body, text)
	}
}

func TestLabelHandler_IndexPrintingDisabled(t *testing.T) {
	engine := setupEngine(NewLabelHandler(new(MockSubmitter), new(MockFileOpener), WithPrintingEnabled(false)))

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.NotContains(t, w.Body.String(), "Generate &amp; Print")
	assert.Contains(t, w.Body.String(), ">Generate<")
}

func TestLabelHandler_Health(t *testing.T) {
	engine := setupEngine(NewLabelHandler(new(MockSubmitter), new(MockFileOpener)))

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestLabelHandler_CreateLabelJSON(t *testing.T) {
	submitter := new(MockSubmitter)
	engine := setupEngine(NewLabelHandler(submitter, new(MockFileOpener)))

	submitter.On("Submit", mock.Anything, filledRequest()).Return(printedResult(t))

	body := `{"part_number":"ABC123","quantity":"10","division":"North","tracking_id":"TAB-001"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/labels", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	resp := decode(t, w)
	assert.True(t, resp.Success)
	assert.Equal(t, labeling.OutcomePrinted, resp.Data.Outcome)
	assert.Equal(t, "Label sent to printer.", resp.Data.Notice.Message)
	assert.Equal(t, "PRINTED", resp.Data.Status)
	assert.Equal(t, "Office-42", resp.Data.PrintRequestID)
	assert.Equal(t, "/api/v1/labels/files/label_ABC123-20261019_143005.pdf", resp.Data.DownloadURL)
	assert.Equal(t, labeling.SubmitRequest{}, resp.Data.Fields, "fields are cleared after submission")

	submitter.AssertExpectations(t)
}

func TestLabelHandler_CreateLabelForm(t *testing.T) {
	submitter := new(MockSubmitter)
	engine := setupEngine(NewLabelHandler(submitter, new(MockFileOpener)))

	submitter.On("Submit", mock.Anything, filledRequest()).Return(printedResult(t))

	form := url.Values{
		"part_number": {"ABC123"},
		"quantity":    {"10"},
		"division":    {"North"},
		"tracking_id": {"TAB-001"},
	}
	req := httptest.NewRequest(http.MethodPost, "/api/v1/labels", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	submitter.AssertExpectations(t)
}

func TestLabelHandler_CreateLabelValidationFailed(t *testing.T) {
	submitter := new(MockSubmitter)
	engine := setupEngine(NewLabelHandler(submitter, new(MockFileOpener)))

	partial := labeling.SubmitRequest{PartNumber: "ABC123", Quantity: "10"}
	submitter.On("Submit", mock.Anything, partial).Return(&labeling.SubmitResult{
		Outcome: labeling.OutcomeValidationFailed,
		Notice:  labeling.Notice{Level: labeling.NoticeError, Title: "Error", Message: "Please fill in all fields."},
	})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/labels", strings.NewReader(`{"part_number":"ABC123","quantity":"10"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	resp := decode(t, w)
	assert.False(t, resp.Success)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "VALIDATION_FAILED", resp.Error.Code)
	assert.Equal(t, "Error", resp.Data.Notice.Title)
	assert.Equal(t, partial, resp.Data.Fields, "typed values are kept")
	assert.Empty(t, resp.Data.JobID)
}

func TestLabelHandler_CreateLabelPrintFailed(t *testing.T) {
	submitter := new(MockSubmitter)
	engine := setupEngine(NewLabelHandler(submitter, new(MockFileOpener)))

	submitter.On("Submit", mock.Anything, filledRequest()).Return(&labeling.SubmitResult{
		Outcome:  labeling.OutcomePrintFailed,
		Notice:   labeling.Notice{Level: labeling.NoticeError, Title: "Print Error", Message: "An error occurred: print command not found: lp"},
		FileName: "label_ABC123-20261019_143005.pdf",
	})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/labels",
		strings.NewReader(`{"part_number":"ABC123","quantity":"10","division":"North","tracking_id":"TAB-001"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadGateway, w.Code)
	resp := decode(t, w)
	assert.Equal(t, "PRINT_FAILED", resp.Error.Code)
	assert.Equal(t, "Print Error", resp.Data.Notice.Title)
	assert.NotEmpty(t, resp.Data.DownloadURL)
	assert.Equal(t, labeling.SubmitRequest{}, resp.Data.Fields)
}

func TestLabelHandler_CreateLabelBadJSON(t *testing.T) {
	submitter := new(MockSubmitter)
	engine := setupEngine(NewLabelHandler(submitter, new(MockFileOpener)))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/labels", strings.NewReader(`{"part_number":`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.NotEmpty(t, decode(t, w).Error)
	submitter.AssertNotCalled(t, "Submit", mock.Anything, mock.Anything)
}

func TestLabelHandler_CreateLabelStreamTooLarge(t *testing.T) {
	submitter := new(MockSubmitter)
	engine := gin.New()
	engine.Use(middleware.RequestID(), middleware.BodyLimit(16))
	router.NewRouter(engine).
		Register(LabelRoutes(NewLabelHandler(submitter, new(MockFileOpener)))).
		Setup()

	body := `{"part_number":"` + strings.Repeat("A", 64) + `"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/labels", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.ContentLength = -1
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	resp := decode(t, w)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "REQUEST_TOO_LARGE", resp.Error.Code)
	submitter.AssertNotCalled(t, "Submit", mock.Anything, mock.Anything)
}

func TestLabelHandler_DownloadLabel(t *testing.T) {
	files := new(MockFileOpener)
	engine := setupEngine(NewLabelHandler(new(MockSubmitter), files))

	name := "label_ABC123-20261019_143005.pdf"
	files.On("Open", mock.Anything, name).Return(io.NopCloser(strings.NewReader("%PDF-1.4")), nil)
	files.On("Open", mock.Anything, "label_missing.pdf").
		Return(nil, infra.NewRenderError(infra.ErrCodeStorageFailed, "PDF not found", os.ErrNotExist))
	files.On("Open", mock.Anything, "secret.txt").
		Return(nil, infra.NewRenderError(infra.ErrCodeStorageFailed, "invalid file name", nil))

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/labels/files/"+name, nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.Equal(t, "%PDF-1.4", w.Body.String())

	w = httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/labels/files/label_missing.pdf", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/labels/files/secret.txt", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
