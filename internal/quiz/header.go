package quiz

import (
	"fmt"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"quizsorter/internal/textutil"
)

// StudentHeader is the required identity column of quiz tables and masters.
const StudentHeader = "Student"

const pointsMarker = "(/10)"

var (
	pointsMarkerPattern = regexp.MustCompile(`\(\s*/\s*\d+\s*\)`)
	quizNumberPattern   = regexp.MustCompile(`\bquiz\s*0*([1-9]\d*)\b`)
	parenNumberPattern  = regexp.MustCompile(`(?:sheet\s*0*\d*\s*)?\(\s*0*([1-9]\d*)\s*\)`)
	bareNumberPattern   = regexp.MustCompile(`\b([1-9]\d*)\b`)
	canonicalPattern    = regexp.MustCompile(`^\s*quiz\s+[1-9]\d*\s*\(/10\)\s*$`)
)

// SlotHeader renders the canonical column header for slot n.
func SlotHeader(n int) string {
	return fmt.Sprintf("Quiz %d %s", n, pointsMarker)
}

// DetectNumber extracts the quiz number from a header. A trailing points
// marker such as "(/10)" is ignored. In priority order it looks for
// "quiz N", then a parenthesized integer optionally preceded by "sheetN",
// then the last standalone positive integer.
func DetectNumber(header string) (int, bool) {
	low := strings.ToLower(pointsMarkerPattern.ReplaceAllString(header, " "))

	if m := quizNumberPattern.FindStringSubmatch(low); m != nil {
		return atoiSlot(m[1])
	}
	if m := parenNumberPattern.FindStringSubmatch(low); m != nil {
		return atoiSlot(m[1])
	}
	if all := bareNumberPattern.FindAllStringSubmatch(low, -1); len(all) > 0 {
		return atoiSlot(all[len(all)-1][1])
	}
	return 0, false
}

func atoiSlot(digits string) (int, bool) {
	n, err := strconv.Atoi(digits)
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}

// isGenericScoreHeader matches exports that carry no quiz number at all, such
// as "Quiz Values - Sheet1" or "Values".
func isGenericScoreHeader(header string) bool {
	low := strings.ToLower(strings.TrimSpace(header))
	return strings.HasPrefix(low, "quiz") || strings.HasPrefix(low, "values") || strings.Contains(low, "sheet")
}

// CanonicalHeader maps header onto "Quiz N (/10)". Generic score headers
// without a number map to quiz 1. Any other header is returned with its
// whitespace collapsed and ok=false.
func CanonicalHeader(header string) (canonical string, slot int, ok bool) {
	if n, found := DetectNumber(header); found {
		return SlotHeader(n), n, true
	}
	if isGenericScoreHeader(header) {
		return SlotHeader(1), 1, true
	}
	return textutil.CollapseSpace(header), 0, false
}

// IsCanonical reports whether header is already in "Quiz N (/10)" form.
func IsCanonical(header string) bool {
	return canonicalPattern.MatchString(strings.ToLower(header))
}

// IsQuizLike reports whether a column holds quiz scores: a canonical header,
// a generic score header, or any header mentioning "quiz" or "(/10)". The
// Student column is never quiz-like.
func IsQuizLike(header string) bool {
	if textutil.NormalizeKey(header) == strings.ToLower(StudentHeader) {
		return false
	}
	low := strings.ToLower(header)
	return IsCanonical(header) ||
		isGenericScoreHeader(header) ||
		strings.Contains(low, "quiz") ||
		strings.Contains(low, pointsMarker)
}

// SortSlots sorts slot numbers ascending and removes duplicates.
func SortSlots(slots []int) []int {
	slices.Sort(slots)
	return slices.Compact(slots)
}
