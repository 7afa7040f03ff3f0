package master

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"quizsorter/internal/logging"
	"quizsorter/internal/masterstore"
	"quizsorter/internal/quiz"
	"quizsorter/internal/resolve"
	"quizsorter/internal/roster"
	"quizsorter/internal/tabular"
)

// Phase names a step of the import cycle.
type Phase string

const (
	PhaseNew       Phase = "new"
	PhaseLoaded    Phase = "loaded"
	PhaseMerged    Phase = "merged"
	PhasePersisted Phase = "persisted"
)

// Store is the subset of masterstore.Store the merger needs.
type Store interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, data []byte) error
}

// Request describes one import.
type Request struct {
	Period string
	Roster *roster.Roster
	Quiz   tabular.Table
	Fold   quiz.FoldOptions
	// DryRun computes the merged table without saving it.
	DryRun bool
}

// Result summarizes a completed import.
type Result struct {
	Period string
	Key    string
	Table  *Table
	// Slots are the folded import slots; NewSlots the subset added to the master.
	Slots    []int
	NewSlots []int
	Matches  []resolve.Match
	// Unmatched lists raw import names in first-seen order.
	Unmatched     []string
	Created       bool
	AddedStudents []string
	Collisions    []roster.Collision
	// Ignored lists import headers that were not quiz columns.
	Ignored   []string
	Rows      int
	DryRun    bool
	Persisted bool
}

// Option configures a Merger.
type Option func(*Merger)

// WithResolveOptions passes options to the per-import resolver.
func WithResolveOptions(opts ...resolve.Option) Option {
	return func(m *Merger) {
		m.resolveOpts = append(m.resolveOpts, opts...)
	}
}

// Merger runs imports against a Store.
type Merger struct {
	store       Store
	logger      *slog.Logger
	resolveOpts []resolve.Option
}

// NewMerger constructs a merger.
func NewMerger(store Store, logger *slog.Logger, opts ...Option) *Merger {
	m := &Merger{
		store:  store,
		logger: logging.NewComponentLogger(logger, "merger"),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Import folds req.Quiz, resolves its students against req.Roster, merges
// the scores into the period master and saves it. Nothing is written when an
// error is returned.
func (m *Merger) Import(ctx context.Context, req Request) (*Result, error) {
	if m.store == nil {
		return nil, errors.New("master store required")
	}
	if req.Roster == nil || req.Roster.Index == nil {
		return nil, errors.New("roster required")
	}
	period := NormalizePeriod(req.Period)
	key := Key(period)
	logger := logging.WithContext(ctx, m.logger).With(
		logging.String(logging.FieldPeriod, period),
		logging.String(logging.FieldKey, key),
	)
	res := &Result{Period: period, Key: key, DryRun: req.DryRun}

	for _, c := range req.Roster.Index.Collisions() {
		res.Collisions = append(res.Collisions, c)
		logging.WarnWithContext(logger, "roster key collision", "roster_collision",
			logging.String("lookup_key", c.Key),
			logging.String("previous", c.Previous),
			logging.String(logging.FieldStudent, c.Current),
			logging.String(logging.FieldErrorHint, "two attendance lines share a name form; the later line wins"),
			logging.String(logging.FieldImpact, "names typed in this form resolve to the later student"),
		)
	}

	sheet, err := quiz.Fold(req.Quiz, req.Fold)
	if err != nil {
		return nil, fmt.Errorf("fold quiz export: %w", err)
	}
	res.Slots = sheet.Slots
	res.Ignored = sheet.Ignored
	res.Rows = len(sheet.Rows)

	incoming := m.resolveRows(req.Roster, sheet, res)
	logger.Info("import folded",
		logging.String(logging.FieldPhase, string(PhaseNew)),
		logging.Int("rows", res.Rows),
		logging.Int("matched", len(res.Matches)),
		logging.Int("unmatched", len(res.Unmatched)),
		logging.Any("slots", sheet.Slots),
	)
	if len(sheet.Ignored) > 0 {
		logger.Debug("non-quiz columns ignored", logging.Any("headers", sheet.Ignored))
	}

	loaded, created, err := m.load(ctx, period, key, req.Roster)
	if err != nil {
		return nil, err
	}
	res.Created = created
	logger.Info("master loaded",
		logging.String(logging.FieldPhase, string(PhaseLoaded)),
		logging.Bool("created", created),
		logging.Int("students", len(loaded.Rows)),
		logging.Int("slots", len(loaded.Slots)),
	)

	work := loaded.Clone()
	for _, name := range req.Roster.CanonicalNames() {
		if _, added := work.AddStudent(name); added && !created {
			res.AddedStudents = append(res.AddedStudents, name)
		}
	}
	for _, slot := range sheet.Slots {
		if work.AddSlot(slot) {
			res.NewSlots = append(res.NewSlots, slot)
		}
	}
	for _, in := range incoming {
		i, _ := work.AddStudent(in.student)
		row := work.Rows[i]
		for _, slot := range sheet.Slots {
			row.Scores[slot] = quiz.RetakeMerge(row.Score(slot), in.scores[slot])
		}
	}
	work.fill()
	work.Sort()
	res.Table = work
	logger.Info("master merged",
		logging.String(logging.FieldPhase, string(PhaseMerged)),
		logging.Any("new_slots", res.NewSlots),
		logging.Int("added_students", len(res.AddedStudents)),
	)

	if req.DryRun {
		logger.Info("dry run, master not saved")
		return res, nil
	}

	data, err := work.Encode()
	if err != nil {
		return nil, fmt.Errorf("encode master: %w", err)
	}
	if err := m.store.Save(ctx, key, data); err != nil {
		return nil, fmt.Errorf("persist master: %w", err)
	}
	res.Persisted = true
	logger.Info("master persisted",
		logging.String(logging.FieldPhase, string(PhasePersisted)),
		logging.Int("students", len(work.Rows)),
		logging.Int("slots", len(work.Slots)),
	)
	return res, nil
}

type incomingRow struct {
	student string
	scores  map[int]quiz.Score
}

// resolveRows maps folded rows to canonical students. Rows resolving to the
// same student are retake-merged in import order.
func (m *Merger) resolveRows(r *roster.Roster, sheet *quiz.Sheet, res *Result) []incomingRow {
	resolver := resolve.New(r.Index, m.resolveOpts...)
	var out []incomingRow
	byStudent := make(map[string]int)
	seenUnmatched := make(map[string]struct{})

	for _, row := range sheet.Rows {
		match, ok := resolver.Resolve(row.Student)
		if !ok {
			if _, dup := seenUnmatched[row.Student]; !dup {
				seenUnmatched[row.Student] = struct{}{}
				res.Unmatched = append(res.Unmatched, row.Student)
			}
			continue
		}
		res.Matches = append(res.Matches, match)
		i, exists := byStudent[match.Canonical]
		if !exists {
			byStudent[match.Canonical] = len(out)
			scores := make(map[int]quiz.Score, len(row.Scores))
			for k, v := range row.Scores {
				scores[k] = v
			}
			out = append(out, incomingRow{student: match.Canonical, scores: scores})
			continue
		}
		for slot, score := range row.Scores {
			out[i].scores[slot] = quiz.RetakeMerge(out[i].scores[slot], score)
		}
	}
	return out
}

func (m *Merger) load(ctx context.Context, period, key string, r *roster.Roster) (*Table, bool, error) {
	data, err := m.store.Load(ctx, key)
	if errors.Is(err, masterstore.ErrNotFound) {
		return New(period, r.CanonicalNames()), true, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("load master: %w", err)
	}
	t, err := Decode(period, data)
	if err != nil {
		return nil, false, fmt.Errorf("load master %s: %w", key, err)
	}
	return t, false, nil
}
