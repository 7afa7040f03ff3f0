package history

import (
	"time"

	"github.com/google/uuid"
)

// Status is the outcome of an import run.
type Status string

const (
	StatusSucceeded Status = "succeeded"
	StatusFailed    Status = "failed"
	StatusDryRun    Status = "dry_run"
)

// Record is one import run.
type Record struct {
	RunID          string     `json:"run_id"`
	Period         string     `json:"period"`
	MasterKey      string     `json:"master_key"`
	AttendancePath string     `json:"attendance_path,omitempty"`
	QuizPath       string     `json:"quiz_path,omitempty"`
	Status         Status     `json:"status"`
	StartedAt      time.Time  `json:"started_at"`
	FinishedAt     *time.Time `json:"finished_at,omitempty"`
	Rows           int        `json:"rows"`
	Matched        int        `json:"matched"`
	Unmatched      int        `json:"unmatched"`
	Slots          []int      `json:"slots,omitempty"`
	NewSlots       []int      `json:"new_slots,omitempty"`
	ErrorMessage   string     `json:"error,omitempty"`
	// UnmatchedNames is only populated by Get.
	UnmatchedNames []string `json:"unmatched_names,omitempty"`
}

// NewRunID returns a fresh run identifier.
func NewRunID() string {
	return uuid.NewString()
}

// Duration reports how long the run took, or zero when unfinished.
func (r Record) Duration() time.Duration {
	if r.FinishedAt == nil {
		return 0
	}
	return r.FinishedAt.Sub(r.StartedAt)
}
