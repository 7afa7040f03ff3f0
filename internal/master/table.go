package master

import (
	"slices"
	"sort"
	"strings"

	"quizsorter/internal/quiz"
	"quizsorter/internal/textutil"
)

// Row holds one student's cells keyed by quiz slot.
type Row struct {
	Student string
	Scores  map[int]quiz.Score
}

// Score returns the cell for slot, Absent when missing.
func (r Row) Score(slot int) quiz.Score {
	if s, ok := r.Scores[slot]; ok {
		return s
	}
	return quiz.Absent()
}

// Table is the master gradebook for one period.
type Table struct {
	Period string
	// Slots is ascending and duplicate-free.
	Slots []int
	Rows  []Row
}

// New seeds a table with one all-Absent row per student, in the given order.
// Repeated names are kept once.
func New(period string, students []string) *Table {
	t := &Table{Period: period}
	seen := make(map[string]struct{}, len(students))
	for _, name := range students {
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		t.Rows = append(t.Rows, Row{Student: name, Scores: map[int]quiz.Score{}})
	}
	return t
}

// Clone returns a deep copy.
func (t *Table) Clone() *Table {
	out := &Table{
		Period: t.Period,
		Slots:  slices.Clone(t.Slots),
		Rows:   make([]Row, len(t.Rows)),
	}
	for i, row := range t.Rows {
		scores := make(map[int]quiz.Score, len(row.Scores))
		for k, v := range row.Scores {
			scores[k] = v
		}
		out.Rows[i] = Row{Student: row.Student, Scores: scores}
	}
	return out
}

// HasSlot reports whether slot is part of the schema.
func (t *Table) HasSlot(slot int) bool {
	_, found := slices.BinarySearch(t.Slots, slot)
	return found
}

// AddSlot extends the schema with slot, filling Absent for every row. It
// reports whether the slot was new.
func (t *Table) AddSlot(slot int) bool {
	if slot <= 0 || t.HasSlot(slot) {
		return false
	}
	t.Slots = quiz.SortSlots(append(t.Slots, slot))
	for i := range t.Rows {
		if t.Rows[i].Scores == nil {
			t.Rows[i].Scores = map[int]quiz.Score{}
		}
		t.Rows[i].Scores[slot] = quiz.Absent()
	}
	return true
}

// Find returns the row index for student, or -1.
func (t *Table) Find(student string) int {
	for i, row := range t.Rows {
		if row.Student == student {
			return i
		}
	}
	return -1
}

// AddStudent appends an all-Absent row for student unless it exists. It
// returns the row index and whether a row was added.
func (t *Table) AddStudent(student string) (int, bool) {
	if i := t.Find(student); i >= 0 {
		return i, false
	}
	scores := make(map[int]quiz.Score, len(t.Slots))
	for _, slot := range t.Slots {
		scores[slot] = quiz.Absent()
	}
	t.Rows = append(t.Rows, Row{Student: student, Scores: scores})
	return len(t.Rows) - 1, true
}

// fill makes every row carry a cell for every slot.
func (t *Table) fill() {
	for i := range t.Rows {
		if t.Rows[i].Scores == nil {
			t.Rows[i].Scores = make(map[int]quiz.Score, len(t.Slots))
		}
		for _, slot := range t.Slots {
			if _, ok := t.Rows[i].Scores[slot]; !ok {
				t.Rows[i].Scores[slot] = quiz.Absent()
			}
		}
	}
}

// Sort orders rows by folded surname, then by the full folded name.
func (t *Table) Sort() {
	sort.SliceStable(t.Rows, func(i, j int) bool {
		return lessStudent(t.Rows[i].Student, t.Rows[j].Student)
	})
}

func lessStudent(a, b string) bool {
	sa, sb := surnameKey(a), surnameKey(b)
	if sa != sb {
		return sa < sb
	}
	return textutil.Fold(a) < textutil.Fold(b)
}

func surnameKey(name string) string {
	last, _, _ := strings.Cut(name, ",")
	return textutil.Fold(last)
}

// Students lists row names in table order.
func (t *Table) Students() []string {
	out := make([]string, len(t.Rows))
	for i, row := range t.Rows {
		out[i] = row.Student
	}
	return out
}
