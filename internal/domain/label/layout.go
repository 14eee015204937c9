package label

// Layout holds the fixed geometry of a label page, in PDF points.
// Vertical positions are measured from the top of the page.
type Layout struct {
	PageSize       string
	TopOffset      float64 // first baseline below the page top
	LeftMargin     float64
	StampPadding   float64 // horizontal inset of the date/id line
	LineSpacing    float64 // cursor advance after a text line
	BarcodeSpacing float64 // cursor advance after a barcode
	BarHeight      float64
	ModuleWidth    float64 // width of one barcode module
	QuietZone      int     // blank modules left of the first bar

	FontFamily    string
	TitleFontSize float64 // part number
	BodyFontSize  float64 // quantity and division
	StampFontSize float64 // date and tracking id
}

// DefaultLayout returns the A4 label layout
func DefaultLayout() Layout {
	return Layout{
		PageSize:       "A4",
		TopOffset:      100,
		LeftMargin:     50,
		StampPadding:   40,
		LineSpacing:    40,
		BarcodeSpacing: 90,
		BarHeight:      40,
		ModuleWidth:    1,
		QuietZone:      10,
		FontFamily:     "Times",
		TitleFontSize:  48,
		BodyFontSize:   40,
		StampFontSize:  24,
	}
}

// QuantityText is the text line printed for the quantity
func QuantityText(quantity string) string {
	return "Quantity: " + quantity
}

// DivisionText is the text line printed for the division
func DivisionText(division string) string {
	return "Division: " + division
}

// DateText is the date stamp printed at the bottom left
func DateText(date string) string {
	return "Date: " + date
}
