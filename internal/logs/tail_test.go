package logs_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"quizsorter/internal/logs"
)

const sampleLog = `{"ts":"2026-10-19T08:00:00Z","level":"info","msg":"import started","component":"merger","run_id":"aaaa1111-0000","period":"Period 2"}
{"ts":"2026-10-19T08:00:01Z","level":"debug","msg":"attendance loaded","run_id":"aaaa1111-0000","period":"Period 2"}
plain text line
{"ts":"2026-10-19T08:05:00Z","level":"warn","msg":"roster collision","component":"merger","run_id":"bbbb2222-0000","period":"Period 3"}
{"ts":"2026-10-19T08:05:01Z","level":"info","msg":"master saved","component":"merger","run_id":"bbbb2222-0000","period":"Period 3"}
`

func writeLog(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "quizsorter.log")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write log: %v", err)
	}
	return path
}

func TestTailLastEntries(t *testing.T) {
	path := writeLog(t, sampleLog)

	res, err := logs.Tail(path, logs.TailOptions{Offset: -1, Limit: 2})
	if err != nil {
		t.Fatalf("tail: %v", err)
	}
	if len(res.Entries) != 2 || res.Entries[0].Message != "roster collision" || res.Entries[1].Message != "master saved" {
		t.Fatalf("unexpected entries: %+v", res.Entries)
	}
	if res.Offset != int64(len(sampleLog)) {
		t.Fatalf("offset = %d, want %d", res.Offset, len(sampleLog))
	}
	if res.Entries[1].Time.IsZero() || res.Entries[1].Component != "merger" {
		t.Fatalf("expected decoded fields, got %+v", res.Entries[1])
	}
}

func TestTailFilters(t *testing.T) {
	path := writeLog(t, sampleLog)

	res, err := logs.Tail(path, logs.TailOptions{Offset: -1, Limit: 10, Filter: logs.Filter{RunID: "aaaa1111"}})
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Entries) != 2 {
		t.Fatalf("run filter returned %d entries", len(res.Entries))
	}

	res, err = logs.Tail(path, logs.TailOptions{Offset: -1, Limit: 10, Filter: logs.Filter{MinLevel: "info"}})
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Entries) != 3 {
		t.Fatalf("level filter returned %d entries", len(res.Entries))
	}

	res, err = logs.Tail(path, logs.TailOptions{Offset: -1, Limit: 10, Filter: logs.Filter{Period: "period 3"}})
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Entries) != 2 || res.Entries[0].RunID != "bbbb2222-0000" {
		t.Fatalf("period filter returned %+v", res.Entries)
	}

	res, err = logs.Tail(path, logs.TailOptions{Offset: -1, Limit: 10})
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Entries) != 5 || res.Entries[2].Structured || res.Entries[2].Message != "plain text line" {
		t.Fatalf("unfiltered tail returned %+v", res.Entries)
	}
}

func TestTailMissingFileAndPartialLine(t *testing.T) {
	res, err := logs.Tail(filepath.Join(t.TempDir(), "absent.log"), logs.TailOptions{Offset: -1, Limit: 5})
	if err != nil || len(res.Entries) != 0 || res.Offset != 0 {
		t.Fatalf("missing file = %+v, %v", res, err)
	}

	complete := `{"level":"info","msg":"one"}` + "\n"
	path := writeLog(t, complete+`{"level":"info","msg":"tw`)
	res, err = logs.Tail(path, logs.TailOptions{Offset: 0})
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Entries) != 1 || res.Offset != int64(len(complete)) {
		t.Fatalf("partial line should wait: %+v", res)
	}

	// A shrunken file restarts from the beginning.
	res, err = logs.Tail(path, logs.TailOptions{Offset: 1 << 20})
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Entries) != 1 {
		t.Fatalf("expected restart after truncation, got %+v", res)
	}
}

func TestFollowEmitsNewEntries(t *testing.T) {
	path := writeLog(t, sampleLog)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var mu sync.Mutex
	var seen []string
	done := make(chan error, 1)
	go func() {
		done <- logs.Follow(ctx, path, int64(len(sampleLog)), 20*time.Millisecond, logs.Filter{RunID: "cccc"}, func(e logs.Entry) {
			mu.Lock()
			seen = append(seen, e.Message)
			mu.Unlock()
			cancel()
		})
	}()

	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		t.Fatal(err)
	}
	_, _ = f.WriteString(`{"level":"info","msg":"other run","run_id":"dddd"}` + "\n")
	_, _ = f.WriteString(`{"level":"info","msg":"later","run_id":"cccc3333"}` + "\n")
	_ = f.Close()

	if err := <-done; !errors.Is(err, context.Canceled) {
		t.Fatalf("follow returned %v", err)
	}
	mu.Lock()
	defer mu.Unlock()
	if len(seen) != 1 || seen[0] != "later" {
		t.Fatalf("seen = %v", seen)
	}
}
