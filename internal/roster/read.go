package roster

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"quizsorter/internal/textutil"
)

// Roster is a parsed attendance list with its lookup index.
type Roster struct {
	Identities []Identity
	Index      *Index
}

// Build parses lines in order, skipping blank ones. The first malformed line
// aborts the build; its LineError carries the 1-based position within lines.
func Build(lines []string) (*Roster, error) {
	identities := make([]Identity, 0, len(lines))
	for i, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		id, err := Parse(line)
		if err != nil {
			var lineErr *LineError
			if errors.As(err, &lineErr) {
				lineErr.Line = i + 1
			}
			return nil, err
		}
		identities = append(identities, id)
	}
	return &Roster{Identities: identities, Index: BuildIndex(identities)}, nil
}

// Read parses a newline-delimited attendance list. A header line such as
// "Student" or "Period 1 Attendance" is skipped when it is the first non-blank
// line and does not parse as an entry.
func Read(r io.Reader) (*Roster, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var lines []string
	headerChecked := false
	for scanner.Scan() {
		line := scanner.Text()
		if len(lines) == 0 && !headerChecked {
			line = strings.TrimPrefix(line, "\ufeff")
		}
		if !headerChecked && strings.TrimSpace(line) != "" {
			headerChecked = true
			if _, err := Parse(line); err != nil && IsHeaderLine(line) {
				// Keep numbering aligned with the file.
				lines = append(lines, "")
				continue
			}
		}
		lines = append(lines, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read attendance: %w", err)
	}
	return Build(lines)
}

// Load reads the attendance file at path.
func Load(path string) (*Roster, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open attendance: %w", err)
	}
	defer f.Close()
	return Read(f)
}

// IsHeaderLine reports whether line looks like an attendance header rather
// than a student entry.
func IsHeaderLine(line string) bool {
	key := textutil.NormalizeKey(line)
	switch key {
	case "student", "students", "name", "student name":
		return true
	}
	if strings.ContainsRune(key, '#') {
		return false
	}
	return strings.HasPrefix(key, "period") || strings.Contains(key, "attendance") || strings.Contains(key, "roster")
}

// CanonicalNames lists each distinct canonical name in roster order.
func (r *Roster) CanonicalNames() []string {
	if r == nil {
		return nil
	}
	seen := make(map[string]struct{}, len(r.Identities))
	names := make([]string, 0, len(r.Identities))
	for _, id := range r.Identities {
		name := id.Canonical()
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		names = append(names, name)
	}
	return names
}
