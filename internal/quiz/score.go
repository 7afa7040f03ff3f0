package quiz

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// AbsentMarker is the persisted form of an absent score.
const AbsentMarker = "X"

// MaxPoints bounds every score.
const MaxPoints = 100

// Score is either absent or an integer number of points in [0, MaxPoints].
// The zero value is absent.
type Score struct {
	points  int
	present bool
}

// Absent returns the absent score.
func Absent() Score {
	return Score{}
}

// Points returns a present score clamped to [0, MaxPoints].
func Points(v int) Score {
	switch {
	case v < 0:
		v = 0
	case v > MaxPoints:
		v = MaxPoints
	}
	return Score{points: v, present: true}
}

// IsAbsent reports whether no score was recorded.
func (s Score) IsAbsent() bool {
	return !s.present
}

// Value returns the points and whether a score is present.
func (s Score) Value() (int, bool) {
	return s.points, s.present
}

// String renders the stored form: the integer, or "X" when absent.
func (s Score) String() string {
	if !s.present {
		return AbsentMarker
	}
	return strconv.Itoa(s.points)
}

// MarshalJSON encodes absent as null and present scores as numbers.
func (s Score) MarshalJSON() ([]byte, error) {
	if !s.present {
		return []byte("null"), nil
	}
	return json.Marshal(s.points)
}

// NormalizeCell converts a raw spreadsheet cell into a Score. Blank cells and
// the markers "nan", "none" and "x" (any case) are absent. Anything else is
// parsed as a number, truncated toward zero and clamped; cells that are not
// finite numbers are absent.
func NormalizeCell(raw string) Score {
	s := strings.TrimSpace(raw)
	switch strings.ToLower(s) {
	case "", "nan", "none", "x":
		return Absent()
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return Absent()
	}
	f = math.Trunc(f)
	switch {
	case f < 0:
		return Points(0)
	case f > MaxPoints:
		return Points(MaxPoints)
	}
	return Points(int(f))
}

// ApplyCurveCap lowers a present score to at most limit. Absent passes
// through.
func ApplyCurveCap(s Score, limit int) Score {
	if !s.present {
		return s
	}
	if s.points > limit {
		return Points(limit)
	}
	return s
}

// RetakeMerge combines an existing score with a retake: an absent side yields
// the other, two present scores yield the higher. The result is never worse
// than existing.
func RetakeMerge(existing, incoming Score) Score {
	switch {
	case !incoming.present:
		return existing
	case !existing.present:
		return incoming
	case incoming.points > existing.points:
		return incoming
	default:
		return existing
	}
}
