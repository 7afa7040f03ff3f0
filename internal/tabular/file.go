package tabular

import (
	"bytes"
	"fmt"
	"os"

	"quizsorter/internal/fileutil"
)

// ReadFile reads a CSV or XLSX table according to path's extension.
func ReadFile(path string) (Table, error) {
	format, err := FormatFor(path)
	if err != nil {
		return Table{}, fmt.Errorf("%s: %w", path, err)
	}
	f, err := os.Open(path)
	if err != nil {
		return Table{}, fmt.Errorf("open table: %w", err)
	}
	defer f.Close()

	if format == FormatXLSX {
		return ReadXLSX(f)
	}
	return ReadCSV(f)
}

// Encode renders t in the given format.
func Encode(t Table, format Format, sheet string) ([]byte, error) {
	var buf bytes.Buffer
	switch format {
	case FormatCSV:
		if err := WriteCSV(&buf, t); err != nil {
			return nil, err
		}
	case FormatXLSX:
		if err := WriteXLSX(&buf, t, sheet); err != nil {
			return nil, err
		}
	default:
		return nil, ErrUnsupportedFormat
	}
	return buf.Bytes(), nil
}

// WriteFile writes t to path, choosing the format from the extension. The
// file is replaced atomically.
func WriteFile(path string, t Table, sheet string) error {
	format, err := FormatFor(path)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	data, err := Encode(t, format, sheet)
	if err != nil {
		return err
	}
	if err := fileutil.WriteFileAtomic(path, data, 0o644); err != nil {
		return fmt.Errorf("write table: %w", err)
	}
	return nil
}
