package printing

import (
	"bytes"
	"context"
	"errors"
	"time"

	"github.com/go-pdf/fpdf"
	"go.uber.org/zap"
	"golang.org/x/text/encoding/charmap"

	"github.com/karolis-jablonskis/label-printer/internal/domain/label"
)

const defaultCreator = "label-printer"

// FPDFConfig contains configuration for the fpdf renderer
type FPDFConfig struct {
	// Layout is the fixed label geometry
	Layout label.Layout
	// Compress enables content stream compression
	Compress bool
	// Creator is written to the PDF metadata
	Creator string
	// Now returns the current time; used for the date stamp
	Now func() time.Time
	// Logger for debug output
	Logger *zap.Logger
}

// FPDFRenderer draws labels directly with PDF vector operations
type FPDFRenderer struct {
	config *FPDFConfig
	logger *zap.Logger
}

// NewFPDFRenderer creates a new fpdf-based label renderer
func NewFPDFRenderer(config *FPDFConfig) *FPDFRenderer {
	if config == nil {
		config = &FPDFConfig{Compress: true}
	}
	if config.Layout == (label.Layout{}) {
		config.Layout = label.DefaultLayout()
	}
	if config.Creator == "" {
		config.Creator = defaultCreator
	}
	if config.Now == nil {
		config.Now = time.Now
	}

	logger := config.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &FPDFRenderer{
		config: config,
		logger: logger,
	}
}

// Render draws the label:
// part number, its barcode, quantity, its barcode, division, then the
// date and tracking id on one line.
func (r *FPDFRenderer) Render(ctx context.Context, req *RenderRequest) (*RenderResult, error) {
	if req == nil {
		return nil, NewRenderError(ErrCodeInvalidRequest, "render request is nil", nil)
	}
	if err := req.Label.Validate(); err != nil {
		return nil, NewRenderError(ErrCodeInvalidRequest, "label request is incomplete", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, NewRenderError(ErrCodeRenderCancelled, "label rendering was cancelled", err)
	}

	startTime := time.Now()
	layout := r.config.Layout

	partBars, err := Code128Bars(req.Label.PartNumber)
	if err != nil {
		return nil, NewRenderError(ErrCodeBarcodeEncoding, "cannot encode part number barcode", err)
	}
	qtyBars, err := Code128Bars(req.Label.Quantity)
	if err != nil {
		return nil, NewRenderError(ErrCodeBarcodeEncoding, "cannot encode quantity barcode", err)
	}

	date := req.Date
	if date.IsZero() {
		date = r.config.Now()
	}

	pdf := fpdf.New("P", "pt", layout.PageSize, "")
	pdf.SetCompression(r.config.Compress)
	pdf.SetCreator(r.config.Creator, true)
	if req.Title != "" {
		pdf.SetTitle(req.Title, true)
	}
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()
	if pdf.Err() {
		return nil, NewRenderError(ErrCodeInvalidPaperSize, "cannot create page "+layout.PageSize, pdf.Error())
	}

	pageWidth, _ := pdf.GetPageSize()
	cursor := layout.TopOffset

	pdf.SetFont(layout.FontFamily, "", layout.TitleFontSize)
	pdf.Text(layout.LeftMargin, cursor, winAnsi(req.Label.PartNumber))
	cursor += layout.LineSpacing

	drawBars(pdf, layout, partBars, layout.LeftMargin, cursor)
	cursor += layout.BarcodeSpacing

	pdf.SetFont(layout.FontFamily, "", layout.BodyFontSize)
	pdf.Text(layout.LeftMargin, cursor, winAnsi(label.QuantityText(req.Label.Quantity)))
	cursor += layout.LineSpacing

	drawBars(pdf, layout, qtyBars, layout.LeftMargin, cursor)
	cursor += layout.BarcodeSpacing

	pdf.Text(layout.LeftMargin, cursor, winAnsi(label.DivisionText(req.Label.Division)))
	cursor += layout.LineSpacing

	pdf.SetFont(layout.FontFamily, "", layout.StampFontSize)
	pdf.Text(layout.StampPadding, cursor, winAnsi(label.DateText(date.Format(label.DateLayout))))
	trackingID := winAnsi(req.Label.TrackingID)
	pdf.Text(rightAlignX(pageWidth, layout.StampPadding, pdf.GetStringWidth(trackingID)), cursor, trackingID)

	if pdf.Err() {
		return nil, NewRenderError(ErrCodeRenderFailed, "failed to draw label", pdf.Error())
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, NewRenderError(ErrCodeRenderFailed, "failed to serialize PDF", err)
	}
	if buf.Len() == 0 {
		return nil, NewRenderError(ErrCodeRenderFailed, "generated PDF is empty", errors.New("no output"))
	}

	renderDuration := time.Since(startTime)
	r.logger.Debug("label rendered",
		zap.String("part_number", req.Label.PartNumber),
		zap.Int("bytes", buf.Len()),
		zap.Duration("duration", renderDuration))

	return &RenderResult{
		PDFData:        buf.Bytes(),
		PageCount:      pdf.PageCount(),
		RenderDuration: renderDuration,
	}, nil
}

// drawBars fills one rectangle per bar; top is the upper edge of the bars
func drawBars(pdf *fpdf.Fpdf, layout label.Layout, sym *Symbol, left, top float64) {
	pdf.SetFillColor(0, 0, 0)
	origin := left + float64(layout.QuietZone)*layout.ModuleWidth
	for _, bar := range sym.Bars {
		pdf.Rect(
			origin+float64(bar.Start)*layout.ModuleWidth,
			top,
			float64(bar.Width)*layout.ModuleWidth,
			layout.BarHeight,
			"F",
		)
	}
}

// rightAlignX returns the x position at which text of the given width ends
// padding points before the right page edge
func rightAlignX(pageWidth, padding, textWidth float64) float64 {
	return pageWidth - padding - textWidth
}

// winAnsi converts text to the Windows-1252 bytes expected by the PDF core
// fonts; runes outside that code page become '?'
func winAnsi(s string) string {
	out := make([]byte, 0, len(s))
	for _, r := range s {
		if b, ok := charmap.Windows1252.EncodeRune(r); ok {
			out = append(out, b)
			continue
		}
		out = append(out, '?')
	}
	return string(out)
}

// Ensure FPDFRenderer implements PDFRenderer
var _ PDFRenderer = (*FPDFRenderer)(nil)
