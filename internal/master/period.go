package master

import (
	"path/filepath"
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"quizsorter/internal/textutil"
)

// DefaultPeriod is used when no period can be inferred.
const DefaultPeriod = "Period"

const keySuffix = "_MASTER"

var periodPattern = regexp.MustCompile(`(?i)period\s*(\d+)`)

var titleCaser = cases.Title(language.English)

// PeriodFromPath infers "Period N" from the file name, then from the parent
// directory name. It falls back to DefaultPeriod.
func PeriodFromPath(path string) string {
	for _, part := range []string{filepath.Base(path), filepath.Base(filepath.Dir(path))} {
		if m := periodPattern.FindStringSubmatch(part); m != nil {
			return "Period " + trimZeros(m[1])
		}
	}
	return DefaultPeriod
}

// NormalizePeriod canonicalizes a user-supplied period label. Variants of
// "period 3" become "Period 3"; a bare number n becomes "Period n"; anything
// else is title-cased with whitespace collapsed.
func NormalizePeriod(label string) string {
	label = textutil.CollapseSpace(label)
	if label == "" {
		return DefaultPeriod
	}
	if m := periodPattern.FindStringSubmatch(label); m != nil && len(m[0]) == len(label) {
		return "Period " + trimZeros(m[1])
	}
	if isDigits(label) {
		return "Period " + trimZeros(label)
	}
	return titleCaser.String(strings.ToLower(label))
}

// Key returns the storage key for period, e.g. "Period_2_MASTER".
func Key(period string) string {
	safe := textutil.SanitizeFileName(NormalizePeriod(period))
	safe = strings.ReplaceAll(safe, " ", "_")
	safe = strings.TrimLeft(safe, ".")
	if safe == "" {
		safe = DefaultPeriod
	}
	return safe + keySuffix
}

// PeriodFromKey reverses Key for display.
func PeriodFromKey(key string) string {
	return strings.ReplaceAll(strings.TrimSuffix(key, keySuffix), "_", " ")
}

func trimZeros(digits string) string {
	trimmed := strings.TrimLeft(digits, "0")
	if trimmed == "" {
		return "0"
	}
	return trimmed
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}
