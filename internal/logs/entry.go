package logs

import (
	"encoding/json"
	"strings"
	"time"
)

// Entry is one line of the log file. Lines that are not JSON objects keep
// only Raw and Message.
type Entry struct {
	Time       time.Time `json:"ts"`
	Level      string    `json:"level"`
	Message    string    `json:"msg"`
	Component  string    `json:"component,omitempty"`
	RunID      string    `json:"run_id,omitempty"`
	Period     string    `json:"period,omitempty"`
	Raw        string    `json:"-"`
	Structured bool      `json:"-"`
}

// ParseEntry decodes one log line.
func ParseEntry(line string) Entry {
	entry := Entry{Raw: line}
	trimmed := strings.TrimSpace(line)
	if !strings.HasPrefix(trimmed, "{") {
		entry.Message = trimmed
		return entry
	}
	if err := json.Unmarshal([]byte(trimmed), &entry); err != nil {
		return Entry{Raw: line, Message: trimmed}
	}
	entry.Level = strings.ToLower(entry.Level)
	entry.Structured = true
	return entry
}

var levelRank = map[string]int{
	"debug": 0,
	"info":  1,
	"warn":  2,
	"error": 3,
}

// Filter narrows entries. Zero fields match everything.
type Filter struct {
	// RunID matches a full run ID or any prefix of one.
	RunID    string
	Period   string
	MinLevel string
}

// Empty reports whether the filter accepts every entry.
func (f Filter) Empty() bool {
	return strings.TrimSpace(f.RunID) == "" && strings.TrimSpace(f.Period) == "" && strings.TrimSpace(f.MinLevel) == ""
}

// Match reports whether entry passes the filter. Unstructured lines only pass
// an empty filter.
func (f Filter) Match(entry Entry) bool {
	if f.Empty() {
		return true
	}
	if !entry.Structured {
		return false
	}
	if run := strings.TrimSpace(f.RunID); run != "" && !strings.HasPrefix(entry.RunID, run) {
		return false
	}
	if period := strings.TrimSpace(f.Period); period != "" && !strings.EqualFold(entry.Period, period) {
		return false
	}
	if min := strings.ToLower(strings.TrimSpace(f.MinLevel)); min != "" {
		want, known := levelRank[min]
		got, ok := levelRank[entry.Level]
		if known && ok && got < want {
			return false
		}
	}
	return true
}
