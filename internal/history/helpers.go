package history

import (
	"database/sql"
	"errors"
	"strconv"
	"strings"
	"time"
)

const recordColumns = "run_id, period, master_key, attendance_path, quiz_path, status, started_at, finished_at, rows_total, matched, unmatched, slots, new_slots, error_message"

func scanRecord(scanner interface{ Scan(dest ...any) error }) (*Record, error) {
	var (
		runID          string
		period         string
		masterKey      string
		attendancePath sql.NullString
		quizPath       sql.NullString
		statusStr      string
		startedRaw     string
		finishedRaw    sql.NullString
		rows           int
		matched        int
		unmatched      int
		slotsRaw       sql.NullString
		newSlotsRaw    sql.NullString
		errorMessage   sql.NullString
	)
	if err := scanner.Scan(
		&runID,
		&period,
		&masterKey,
		&attendancePath,
		&quizPath,
		&statusStr,
		&startedRaw,
		&finishedRaw,
		&rows,
		&matched,
		&unmatched,
		&slotsRaw,
		&newSlotsRaw,
		&errorMessage,
	); err != nil {
		return nil, err
	}

	rec := &Record{
		RunID:          runID,
		Period:         period,
		MasterKey:      masterKey,
		AttendancePath: attendancePath.String,
		QuizPath:       quizPath.String,
		Status:         Status(statusStr),
		Rows:           rows,
		Matched:        matched,
		Unmatched:      unmatched,
		Slots:          parseSlots(slotsRaw.String),
		NewSlots:       parseSlots(newSlotsRaw.String),
		ErrorMessage:   errorMessage.String,
	}
	if started, err := parseTimeString(startedRaw); err == nil {
		rec.StartedAt = started
	}
	if finishedRaw.Valid {
		if finished, err := parseTimeString(finishedRaw.String); err == nil {
			rec.FinishedAt = &finished
		}
	}
	return rec, nil
}

func formatSlots(slots []int) any {
	if len(slots) == 0 {
		return nil
	}
	parts := make([]string, len(slots))
	for i, s := range slots {
		parts[i] = strconv.Itoa(s)
	}
	return strings.Join(parts, ",")
}

func parseSlots(raw string) []int {
	if raw == "" {
		return nil
	}
	var out []int
	for _, part := range strings.Split(raw, ",") {
		if n, err := strconv.Atoi(strings.TrimSpace(part)); err == nil {
			out = append(out, n)
		}
	}
	return out
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}

func nullableTime(value *time.Time) any {
	if value == nil {
		return nil
	}
	return value.UTC().Format(time.RFC3339Nano)
}

func parseTimeString(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, errors.New("empty")
	}
	if t, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02 15:04:05", value)
}
