package roster

import (
	"errors"
	"fmt"
)

// ErrMalformedLine is matched by every roster parse failure.
var ErrMalformedLine = errors.New("malformed roster line")

// LineError describes a roster line that does not follow the attendance grammar.
type LineError struct {
	// Line is the 1-based line number within the source, or 0 when unknown.
	Line   int
	Text   string
	Reason string
}

func (e *LineError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("roster line %d: %s: %q", e.Line, e.Reason, e.Text)
	}
	return fmt.Sprintf("roster line: %s: %q", e.Reason, e.Text)
}

// Unwrap lets errors.Is match ErrMalformedLine.
func (e *LineError) Unwrap() error {
	return ErrMalformedLine
}
