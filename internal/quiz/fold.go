package quiz

import (
	"quizsorter/internal/tabular"
)

// FoldOptions controls per-cell processing during Fold.
type FoldOptions struct {
	// Curve lowers every present score to at most Cap before merging.
	Curve bool
	Cap   int
}

// Row is one student's scores keyed by slot. Every slot of the owning Sheet
// has an entry.
type Row struct {
	Student string
	Scores  map[int]Score
}

// Sheet is a folded quiz table.
type Sheet struct {
	// Slots lists the quiz numbers present, ascending.
	Slots []int
	Rows  []Row
	// Sources maps each slot to the original headers folded into it.
	Sources map[int][]string
	// Ignored lists headers that were dropped, in table order.
	Ignored []string
}

// Fold builds a Sheet from a raw table. Quiz-like columns are grouped by
// canonical slot; within a group cells are normalized, optionally capped and
// merged with RetakeMerge in column order. Rows with a blank Student cell
// are skipped.
func Fold(t tabular.Table, opts FoldOptions) (*Sheet, error) {
	studentCol := t.Column(StudentHeader)
	if studentCol < 0 {
		return nil, ErrMissingStudentColumn
	}

	sheet := &Sheet{Sources: make(map[int][]string)}
	columns := make(map[int][]int)
	for col, header := range t.Header {
		if col == studentCol {
			continue
		}
		if !IsQuizLike(header) {
			sheet.Ignored = append(sheet.Ignored, header)
			continue
		}
		_, slot, ok := CanonicalHeader(header)
		if !ok {
			sheet.Ignored = append(sheet.Ignored, header)
			continue
		}
		if _, seen := columns[slot]; !seen {
			sheet.Slots = append(sheet.Slots, slot)
		}
		columns[slot] = append(columns[slot], col)
		sheet.Sources[slot] = append(sheet.Sources[slot], header)
	}
	if len(sheet.Slots) == 0 {
		return nil, ErrNoQuizColumns
	}
	sheet.Slots = SortSlots(sheet.Slots)

	for r := range t.Rows {
		student := t.Cell(r, studentCol)
		if student == "" {
			continue
		}
		row := Row{Student: student, Scores: make(map[int]Score, len(sheet.Slots))}
		for _, slot := range sheet.Slots {
			merged := Absent()
			for _, col := range columns[slot] {
				cell := NormalizeCell(t.Cell(r, col))
				if opts.Curve {
					cell = ApplyCurveCap(cell, opts.Cap)
				}
				merged = RetakeMerge(merged, cell)
			}
			row.Scores[slot] = merged
		}
		sheet.Rows = append(sheet.Rows, row)
	}
	return sheet, nil
}

// Headers returns the canonical header for each slot in order.
func (s *Sheet) Headers() []string {
	out := make([]string, len(s.Slots))
	for i, slot := range s.Slots {
		out[i] = SlotHeader(slot)
	}
	return out
}
