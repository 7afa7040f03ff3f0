package logs

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"
)

const maxLineBytes = 1024 * 1024

// TailOptions controls Tail.
type TailOptions struct {
	// Offset is a byte position to resume from. A negative offset reads the
	// last Limit matching entries instead.
	Offset int64
	Limit  int
	Filter Filter
}

// TailResult holds matching entries and the offset just past them.
type TailResult struct {
	Entries []Entry
	Offset  int64
}

// Tail reads entries from path. A missing file yields no entries and a zero
// offset so callers can wait for logging to start.
func Tail(path string, opts TailOptions) (TailResult, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return TailResult{}, nil
		}
		return TailResult{Offset: opts.Offset}, fmt.Errorf("stat log file: %w", err)
	}
	if info.IsDir() {
		return TailResult{Offset: opts.Offset}, fmt.Errorf("log path %q is a directory", path)
	}

	if opts.Offset < 0 {
		return readLast(path, opts.Limit, opts.Filter)
	}
	offset := opts.Offset
	if offset > info.Size() {
		// Truncated or rotated; start over.
		offset = 0
	}
	return readForward(path, offset, opts.Filter)
}

// Follow calls emit for every new matching entry after offset, polling every
// interval until ctx ends. It returns ctx's error.
func Follow(ctx context.Context, path string, offset int64, interval time.Duration, filter Filter, emit func(Entry)) error {
	if interval <= 0 {
		interval = 500 * time.Millisecond
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		res, err := Tail(path, TailOptions{Offset: offset, Filter: filter})
		if err != nil {
			return err
		}
		for _, entry := range res.Entries {
			emit(entry)
		}
		offset = res.Offset

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

func readLast(path string, limit int, filter Filter) (TailResult, error) {
	file, err := os.Open(path)
	if err != nil {
		return TailResult{}, fmt.Errorf("open log file: %w", err)
	}
	defer file.Close()

	if limit <= 0 {
		end, err := file.Seek(0, io.SeekEnd)
		if err != nil {
			return TailResult{}, fmt.Errorf("seek log file: %w", err)
		}
		return TailResult{Offset: end}, nil
	}

	ring := make([]Entry, limit)
	count, idx := 0, 0
	offset, err := scanEntries(file, 0, filter, func(entry Entry) {
		ring[idx] = entry
		idx = (idx + 1) % limit
		if count < limit {
			count++
		}
	})
	if err != nil {
		return TailResult{}, err
	}

	entries := make([]Entry, count)
	if count == limit {
		for i := range count {
			entries[i] = ring[(idx+i)%limit]
		}
	} else {
		copy(entries, ring[:count])
	}
	return TailResult{Entries: entries, Offset: offset}, nil
}

func readForward(path string, offset int64, filter Filter) (TailResult, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return TailResult{}, nil
		}
		return TailResult{Offset: offset}, fmt.Errorf("open log file: %w", err)
	}
	defer file.Close()

	if _, err := file.Seek(offset, io.SeekStart); err != nil {
		return TailResult{Offset: offset}, fmt.Errorf("seek log file: %w", err)
	}
	var entries []Entry
	next, err := scanEntries(file, offset, filter, func(entry Entry) {
		entries = append(entries, entry)
	})
	if err != nil {
		return TailResult{Offset: offset}, err
	}
	return TailResult{Entries: entries, Offset: next}, nil
}

// scanEntries reads complete lines from r, which is positioned at start, and
// returns the offset just past the last complete line. A trailing partial
// line is left for the next read.
func scanEntries(r io.Reader, start int64, filter Filter, emit func(Entry)) (int64, error) {
	reader := bufio.NewReaderSize(r, 64*1024)
	offset := start
	for {
		line, err := reader.ReadString('\n')
		if err != nil {
			if errors.Is(err, io.EOF) {
				return offset, nil
			}
			return offset, fmt.Errorf("read log file: %w", err)
		}
		offset += int64(len(line))
		if len(line) > maxLineBytes {
			continue
		}
		text := trimNewline(line)
		if text == "" {
			continue
		}
		if entry := ParseEntry(text); filter.Match(entry) {
			emit(entry)
		}
	}
}

func trimNewline(line string) string {
	n := len(line)
	if n > 0 && line[n-1] == '\n' {
		n--
	}
	if n > 0 && line[n-1] == '\r' {
		n--
	}
	return line[:n]
}
