package master

import (
	"bytes"
	"errors"
	"fmt"

	"quizsorter/internal/quiz"
	"quizsorter/internal/tabular"
)

// ErrCorrupt wraps decode failures of a stored master.
var ErrCorrupt = errors.New("corrupt master")

// Tabular renders t as a header row plus one row per student. Absent cells
// are written as X.
func (t *Table) Tabular() tabular.Table {
	header := make([]string, 0, len(t.Slots)+1)
	header = append(header, quiz.StudentHeader)
	for _, slot := range t.Slots {
		header = append(header, quiz.SlotHeader(slot))
	}
	rows := make([][]string, 0, len(t.Rows))
	for _, row := range t.Rows {
		cells := make([]string, 0, len(header))
		cells = append(cells, row.Student)
		for _, slot := range t.Slots {
			cells = append(cells, row.Score(slot).String())
		}
		rows = append(rows, cells)
	}
	return tabular.Table{Header: header, Rows: rows}
}

// Encode returns the CSV form of t.
func (t *Table) Encode() ([]byte, error) {
	return tabular.Encode(t.Tabular(), tabular.FormatCSV, "")
}

// Decode parses a stored master. Legacy quiz headers are folded onto
// canonical slots without curving, duplicate students are retake-merged,
// and a master with no quiz columns yet decodes to zero slots.
func Decode(period string, data []byte) (*Table, error) {
	raw, err := tabular.ReadCSV(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	return FromTabular(period, raw)
}

// FromTabular builds a Table from an already-read master table.
func FromTabular(period string, raw tabular.Table) (*Table, error) {
	sheet, err := quiz.Fold(raw, quiz.FoldOptions{})
	switch {
	case errors.Is(err, quiz.ErrNoQuizColumns):
		return studentsOnly(period, raw), nil
	case err != nil:
		return nil, fmt.Errorf("%w: %w", ErrCorrupt, err)
	}

	t := &Table{Period: period, Slots: sheet.Slots}
	for _, row := range sheet.Rows {
		i, added := t.AddStudent(row.Student)
		if added {
			t.Rows[i].Scores = row.Scores
			continue
		}
		for _, slot := range t.Slots {
			t.Rows[i].Scores[slot] = quiz.RetakeMerge(t.Rows[i].Score(slot), row.Scores[slot])
		}
	}
	t.fill()
	return t, nil
}

func studentsOnly(period string, raw tabular.Table) *Table {
	col := raw.Column(quiz.StudentHeader)
	t := &Table{Period: period}
	for r := range raw.Rows {
		if name := raw.Cell(r, col); name != "" {
			t.AddStudent(name)
		}
	}
	return t
}
