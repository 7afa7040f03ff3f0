package quiz

import "errors"

var (
	// ErrMissingStudentColumn is returned when a table has no "Student" header.
	ErrMissingStudentColumn = errors.New("quiz table has no Student column")
	// ErrNoQuizColumns is returned when no header maps onto a quiz slot.
	ErrNoQuizColumns = errors.New("quiz table has no quiz columns")
)
