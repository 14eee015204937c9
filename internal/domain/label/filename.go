package label

import (
	"strconv"
	"strings"
	"time"
	"unicode"
)

const (
	// FileTimestampLayout is the second-granularity timestamp in file names
	FileTimestampLayout = "20060102_150405"
	// DateLayout is the date printed on the label
	DateLayout = "2006-01-02"

	fileExt = ".pdf"
)

// FileStem returns label_<partNumber>-<YYYYMMDD_HHMMSS> without extension
func FileStem(partNumber string, at time.Time) string {
	return "label_" + SanitizeFileComponent(partNumber) + "-" + at.Format(FileTimestampLayout)
}

// FileName returns the PDF file name for a label generated at the given time
func FileName(partNumber string, at time.Time) string {
	return FileStem(partNumber, at) + fileExt
}

// FileNameWithSeq returns the file name for the n-th file sharing a stem.
// Sequence numbers below 2 yield the plain name.
func FileNameWithSeq(partNumber string, at time.Time, seq int) string {
	if seq < 2 {
		return FileName(partNumber, at)
	}
	return FileStem(partNumber, at) + "_" + strconv.Itoa(seq) + fileExt
}

// SanitizeFileComponent replaces characters that cannot appear in a file name
// on Windows or Unix with '_'.
func SanitizeFileComponent(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case unicode.IsControl(r):
			b.WriteRune('_')
		case strings.ContainsRune(`/\<>:"|?*`, r):
			b.WriteRune('_')
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
