package tui

import (
	"strings"
	"unicode/utf8"

	"github.com/karolis-jablonskis/label-printer/internal/application/labeling"
)

const minBoxWidth = 30

// FormatNotice draws a notice as a boxed dialog:
//
//	┌─ Success ──────────────────┐
//	│ Label sent to printer.     │
//	└────────────────────────────┘
func FormatNotice(notice labeling.Notice) string {
	title := notice.Title
	if notice.IsError() {
		title = "! " + title
	}

	width := max(minBoxWidth, utf8.RuneCountInString(notice.Message)+2, utf8.RuneCountInString(title)+4)

	var b strings.Builder
	b.WriteString("\n┌─ " + title + " ")
	b.WriteString(strings.Repeat("─", width-utf8.RuneCountInString(title)-3))
	b.WriteString("┐\n")
	b.WriteString("│ " + notice.Message)
	b.WriteString(strings.Repeat(" ", width-utf8.RuneCountInString(notice.Message)-1))
	b.WriteString("│\n")
	b.WriteString("└" + strings.Repeat("─", width) + "┘\n\n")
	return b.String()
}
