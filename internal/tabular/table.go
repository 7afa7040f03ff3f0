package tabular

import (
	"errors"
	"path/filepath"
	"strings"

	"quizsorter/internal/textutil"
)

// ErrUnsupportedFormat is returned for file extensions other than .csv, .txt,
// .xlsx and .xlsm.
var ErrUnsupportedFormat = errors.New("unsupported table format")

// Format identifies an on-disk table encoding.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

// FormatFor picks the encoding from path's extension.
func FormatFor(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv", ".txt":
		return FormatCSV, nil
	case ".xlsx", ".xlsm":
		return FormatXLSX, nil
	default:
		return "", ErrUnsupportedFormat
	}
}

// Table is a header row followed by data rows. Rows may be shorter than the
// header; missing trailing cells read as "".
type Table struct {
	Header []string
	Rows   [][]string
}

// Column returns the index of the header matching name after whitespace,
// quote and case folding, or -1.
func (t Table) Column(name string) int {
	want := textutil.NormalizeKey(name)
	for i, h := range t.Header {
		if textutil.NormalizeKey(h) == want {
			return i
		}
	}
	return -1
}

// Cell returns the trimmed value at row, col or "" when out of range.
func (t Table) Cell(row, col int) string {
	if row < 0 || row >= len(t.Rows) || col < 0 {
		return ""
	}
	r := t.Rows[row]
	if col >= len(r) {
		return ""
	}
	return strings.TrimSpace(r[col])
}

func cleanHeader(header []string) []string {
	out := make([]string, len(header))
	for i, h := range header {
		if i == 0 {
			h = strings.TrimPrefix(h, "\ufeff")
		}
		out[i] = strings.TrimSpace(h)
	}
	return out
}

func blankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
