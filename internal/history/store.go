package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"quizsorter/internal/config"
)

// ErrNotFound is returned by Get for unknown run IDs.
var ErrNotFound = errors.New("import run not found")

// Store manages the import ledger backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
}

// Open connects to the ledger configured by cfg.
func Open(cfg *config.Config) (*Store, error) {
	if cfg == nil {
		return nil, errors.New("config required")
	}
	return OpenPath(cfg.Paths.HistoryDB)
}

// OpenPath initializes or connects to the database at path.
func OpenPath(dbPath string) (*Store, error) {
	if dbPath == "" {
		return nil, errors.New("history database path required")
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("ensure history directory: %w", err)
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: dbPath}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Path returns the database file location.
func (s *Store) Path() string { return s.path }

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Record inserts rec and its unmatched names in one transaction. A missing
// RunID is generated and StartedAt defaults to now.
func (s *Store) Record(ctx context.Context, rec *Record, unmatched []string) error {
	if rec == nil {
		return errors.New("record is nil")
	}
	if rec.RunID == "" {
		rec.RunID = NewRunID()
	}
	if rec.StartedAt.IsZero() {
		rec.StartedAt = time.Now().UTC()
	}
	if rec.Status == "" {
		rec.Status = StatusSucceeded
	}
	rec.Unmatched = len(unmatched)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin record tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO imports (`+recordColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.RunID,
		rec.Period,
		rec.MasterKey,
		nullableString(rec.AttendancePath),
		nullableString(rec.QuizPath),
		rec.Status,
		rec.StartedAt.UTC().Format(time.RFC3339Nano),
		nullableTime(rec.FinishedAt),
		rec.Rows,
		rec.Matched,
		rec.Unmatched,
		formatSlots(rec.Slots),
		formatSlots(rec.NewSlots),
		nullableString(rec.ErrorMessage),
	)
	if err != nil {
		return fmt.Errorf("insert import: %w", err)
	}
	for i, name := range unmatched {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO unmatched_names (run_id, position, raw_name) VALUES (?, ?, ?)`,
			rec.RunID, i, name,
		); err != nil {
			return fmt.Errorf("insert unmatched name: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit record: %w", err)
	}
	return nil
}

// Filter narrows List results.
type Filter struct {
	Period string
	// Limit caps the number of rows; zero means no limit.
	Limit int
}

// List returns runs newest first.
func (s *Store) List(ctx context.Context, filter Filter) ([]*Record, error) {
	var (
		clauses []string
		args    []any
	)
	if filter.Period != "" {
		clauses = append(clauses, "period = ?")
		args = append(args, filter.Period)
	}
	query := `SELECT ` + recordColumns + ` FROM imports`
	if len(clauses) > 0 {
		query += ` WHERE ` + strings.Join(clauses, " AND ")
	}
	query += ` ORDER BY started_at DESC, run_id`
	if filter.Limit > 0 {
		query += ` LIMIT ?`
		args = append(args, filter.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query imports: %w", err)
	}
	defer rows.Close()

	var records []*Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scan import: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// Get returns the run with its unmatched names, or ErrNotFound. A unique run
// ID prefix of at least eight characters is accepted.
func (s *Store) Get(ctx context.Context, runID string) (*Record, error) {
	runID = strings.TrimSpace(runID)
	if runID == "" {
		return nil, ErrNotFound
	}
	row := s.db.QueryRowContext(ctx, `SELECT `+recordColumns+` FROM imports WHERE run_id = ?`, runID)
	rec, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) && len(runID) >= 8 {
		rec, err = s.getByPrefix(ctx, runID)
	}
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", runID, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get import: %w", err)
	}
	names, err := s.Unmatched(ctx, rec.RunID)
	if err != nil {
		return nil, err
	}
	rec.UnmatchedNames = names
	return rec, nil
}

func (s *Store) getByPrefix(ctx context.Context, prefix string) (*Record, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+recordColumns+` FROM imports WHERE run_id LIKE ? ESCAPE '\' LIMIT 2`,
		escapeLike(prefix)+"%",
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var found *Record
	for rows.Next() {
		if found != nil {
			return nil, fmt.Errorf("run id prefix %q is ambiguous", prefix)
		}
		if found, err = scanRecord(rows); err != nil {
			return nil, err
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if found == nil {
		return nil, sql.ErrNoRows
	}
	return found, nil
}

// Unmatched returns the raw names recorded for runID in import order.
func (s *Store) Unmatched(ctx context.Context, runID string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT raw_name FROM unmatched_names WHERE run_id = ? ORDER BY position`, runID)
	if err != nil {
		return nil, fmt.Errorf("query unmatched names: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan unmatched name: %w", err)
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

func escapeLike(value string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(value)
}
