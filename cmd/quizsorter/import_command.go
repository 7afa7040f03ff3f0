package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"quizsorter/internal/config"
	"quizsorter/internal/history"
	"quizsorter/internal/logging"
	"quizsorter/internal/master"
	"quizsorter/internal/masterstore"
	"quizsorter/internal/quiz"
	"quizsorter/internal/resolve"
	"quizsorter/internal/roster"
	"quizsorter/internal/tabular"
)

type importOptions struct {
	attendance string
	quiz       string
	period     string
	output     string
	curveCap   int
	noCurve    bool
	threshold  int
	dryRun     bool
	json       bool
}

// importSummary is the --json payload of the import command.
type importSummary struct {
	RunID         string             `json:"run_id"`
	Period        string             `json:"period"`
	MasterKey     string             `json:"master_key"`
	Created       bool               `json:"created"`
	DryRun        bool               `json:"dry_run"`
	Persisted     bool               `json:"persisted"`
	Rows          int                `json:"rows"`
	Students      int                `json:"students"`
	Slots         []int              `json:"slots"`
	NewSlots      []int              `json:"new_slots"`
	AddedStudents []string           `json:"added_students"`
	Ignored       []string           `json:"ignored_columns"`
	Collisions    []roster.Collision `json:"collisions"`
	Matches       []resolve.Match    `json:"matches"`
	Unmatched     []string           `json:"unmatched"`
	Output        string             `json:"output,omitempty"`
}

func newImportCommand(ctx *commandContext) *cobra.Command {
	opts := &importOptions{}

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Merge a quiz export into the period master",
		Long: `Merge a quiz export into the period master.

The period is taken from --period, otherwise inferred from the attendance
file name or its directory (for example "Period 2.txt"). Scores are capped by
the configured curve unless --no-curve is given; each student keeps their
best score per quiz.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(cmd, ctx, opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.attendance, "attendance", "a", "", "Attendance list (one \"Last, First #ID\" per line)")
	flags.StringVarP(&opts.quiz, "quiz", "q", "", "Quiz export (CSV or XLSX)")
	flags.StringVarP(&opts.period, "period", "p", "", "Period label (default: inferred from the attendance path)")
	flags.StringVarP(&opts.output, "output", "o", "", "Also write the merged master to this CSV or XLSX file")
	flags.IntVar(&opts.curveCap, "curve-cap", -1, "Cap every score at this value (overrides config)")
	flags.BoolVar(&opts.noCurve, "no-curve", false, "Do not cap scores")
	flags.IntVar(&opts.threshold, "threshold", -1, "Fuzzy match threshold 0-99 (overrides config)")
	flags.BoolVar(&opts.dryRun, "dry-run", false, "Compute the merge without saving the master")
	flags.BoolVar(&opts.json, "json", false, "Output the import summary as JSON")
	_ = cmd.MarkFlagRequired("attendance")
	_ = cmd.MarkFlagRequired("quiz")
	return cmd
}

func runImport(cmd *cobra.Command, ctx *commandContext, opts *importOptions) error {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return err
	}
	logger, err := ctx.logger(cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	attendancePath, err := config.ExpandPath(strings.TrimSpace(opts.attendance))
	if err != nil {
		return fmt.Errorf("resolve attendance path: %w", err)
	}
	quizPath, err := config.ExpandPath(strings.TrimSpace(opts.quiz))
	if err != nil {
		return fmt.Errorf("resolve quiz path: %w", err)
	}

	fold, err := foldOptions(cfg, opts)
	if err != nil {
		return err
	}
	threshold := cfg.Matching.FuzzyThreshold
	if opts.threshold >= 0 {
		if opts.threshold > 99 {
			return fmt.Errorf("--threshold must be between 0 and 99, got %d", opts.threshold)
		}
		threshold = opts.threshold
	}

	period := inferPeriod(opts.period, attendancePath, quizPath)
	key := master.Key(period)
	runID := history.NewRunID()
	runCtx := logging.WithRun(cmd.Context(), runID, period)
	logger = logging.WithContext(runCtx, logger)

	rec := &history.Record{
		RunID:          runID,
		Period:         period,
		MasterKey:      key,
		AttendancePath: attendancePath,
		QuizPath:       quizPath,
		StartedAt:      time.Now().UTC(),
	}

	res, err := executeImport(runCtx, ctx, logger, importPlan{
		period:     period,
		key:        key,
		attendance: attendancePath,
		quiz:       quizPath,
		output:     strings.TrimSpace(opts.output),
		fold:       fold,
		threshold:  threshold,
		dryRun:     opts.dryRun,
	})
	recordHistory(runCtx, ctx, logger, rec, res, err)
	if err != nil {
		return err
	}

	summary := summarize(runID, res)
	if opts.json {
		return writeJSON(cmd, summary)
	}
	printImportSummary(cmd.OutOrStdout(), summary, res.Table, shouldColorize(cmd.OutOrStdout()))
	return nil
}

type importPlan struct {
	period     string
	key        string
	attendance string
	quiz       string
	output     string
	fold       quiz.FoldOptions
	threshold  int
	dryRun     bool
}

type importOutcome struct {
	*master.Result
	output string
}

func executeImport(ctx context.Context, cmdCtx *commandContext, logger *slog.Logger, plan importPlan) (*importOutcome, error) {
	cfg, err := cmdCtx.ensureConfig()
	if err != nil {
		return nil, err
	}
	lock, err := masterstore.Acquire(cfg.Paths.LockDir, plan.key)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := lock.Release(); err != nil {
			logger.Warn("failed to release master lock", logging.Error(err))
		}
	}()

	members, err := roster.Load(plan.attendance)
	if err != nil {
		return nil, fmt.Errorf("load attendance %s: %w", filepath.Base(plan.attendance), err)
	}
	logger.Debug("attendance loaded",
		logging.String(logging.FieldPath, plan.attendance),
		logging.Int("students", len(members.Identities)),
		logging.Int("lookup_keys", members.Index.Len()),
	)
	table, err := tabular.ReadFile(plan.quiz)
	if err != nil {
		return nil, fmt.Errorf("read quiz export %s: %w", filepath.Base(plan.quiz), err)
	}

	store, err := cmdCtx.openStore(ctx, logger)
	if err != nil {
		return nil, err
	}
	merger := master.NewMerger(store, logger, master.WithResolveOptions(resolve.WithThreshold(plan.threshold)))
	res, err := merger.Import(ctx, master.Request{
		Period: plan.period,
		Roster: members,
		Quiz:   table,
		Fold:   plan.fold,
		DryRun: plan.dryRun,
	})
	if err != nil {
		return nil, err
	}

	out := &importOutcome{Result: res}
	if plan.output != "" {
		target, err := config.ExpandPath(plan.output)
		if err != nil {
			return nil, fmt.Errorf("resolve output path: %w", err)
		}
		if err := tabular.WriteFile(target, res.Table.Tabular(), sheetName(res.Period)); err != nil {
			return nil, fmt.Errorf("write output: %w", err)
		}
		out.output = target
		logger.Info("master exported", logging.String(logging.FieldPath, target))
	}
	return out, nil
}

func recordHistory(ctx context.Context, cmdCtx *commandContext, logger *slog.Logger, rec *history.Record, res *importOutcome, runErr error) {
	finished := time.Now().UTC()
	rec.FinishedAt = &finished
	var unmatched []string
	switch {
	case runErr != nil:
		rec.Status = history.StatusFailed
		rec.ErrorMessage = runErr.Error()
	case res.DryRun:
		rec.Status = history.StatusDryRun
	default:
		rec.Status = history.StatusSucceeded
	}
	if res != nil && res.Result != nil {
		rec.Rows = res.Rows
		rec.Matched = len(res.Matches)
		rec.Slots = res.Slots
		rec.NewSlots = res.NewSlots
		unmatched = res.Unmatched
	}

	store, err := cmdCtx.openHistory()
	if err != nil {
		logging.WarnWithContext(logger, "import history unavailable", "history_open_failed",
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "run quizsorter doctor to check the history database"),
			logging.String(logging.FieldImpact, "this run is not recorded in history"),
		)
		return
	}
	defer store.Close()
	if err := store.Record(ctx, rec, unmatched); err != nil {
		logging.WarnWithContext(logger, "failed to record import history", "history_record_failed",
			logging.Error(err),
			logging.String(logging.FieldImpact, "this run is not recorded in history"),
		)
	}
}

func foldOptions(cfg *config.Config, opts *importOptions) (quiz.FoldOptions, error) {
	fold := quiz.FoldOptions{Curve: cfg.Curve.Enabled, Cap: cfg.Curve.Cap}
	if opts.curveCap >= 0 {
		if opts.curveCap > quiz.MaxPoints {
			return fold, fmt.Errorf("--curve-cap must be between 0 and %d, got %d", quiz.MaxPoints, opts.curveCap)
		}
		fold.Curve = true
		fold.Cap = opts.curveCap
	}
	if opts.noCurve {
		fold.Curve = false
	}
	return fold, nil
}

// inferPeriod prefers an explicit label, then the attendance path, then the
// quiz path.
func inferPeriod(explicit, attendancePath, quizPath string) string {
	if strings.TrimSpace(explicit) != "" {
		return master.NormalizePeriod(explicit)
	}
	if p := master.PeriodFromPath(attendancePath); p != master.DefaultPeriod {
		return p
	}
	return master.PeriodFromPath(quizPath)
}

func sheetName(period string) string {
	name := strings.TrimSpace(period)
	if name == "" || len(name) > 31 {
		return tabular.DefaultSheet
	}
	return name
}

func summarize(runID string, res *importOutcome) importSummary {
	return importSummary{
		RunID:         runID,
		Period:        res.Period,
		MasterKey:     res.Key,
		Created:       res.Created,
		DryRun:        res.DryRun,
		Persisted:     res.Persisted,
		Rows:          res.Rows,
		Students:      len(res.Table.Rows),
		Slots:         nonNilInts(res.Slots),
		NewSlots:      nonNilInts(res.NewSlots),
		AddedStudents: nonNilStrings(res.AddedStudents),
		Ignored:       nonNilStrings(res.Ignored),
		Collisions:    res.Collisions,
		Matches:       res.Matches,
		Unmatched:     nonNilStrings(res.Unmatched),
		Output:        res.output,
	}
}

func printImportSummary(w io.Writer, s importSummary, table *master.Table, colorize bool) {
	state := "updated"
	switch {
	case s.DryRun:
		state = "dry run (not saved)"
	case s.Created:
		state = "created"
	}
	lines := []string{
		renderStatusLine("Master", warnIf(s.DryRun), fmt.Sprintf("%s %s", s.MasterKey, state), colorize),
		renderStatusLine("Run", statusInfo, s.RunID, colorize),
		renderStatusLine("Rows", statusInfo, fmt.Sprintf("%d read, %d matched", s.Rows, len(s.Matches)), colorize),
		renderStatusLine("Quizzes", statusInfo, formatSlots(s.Slots), colorize),
	}
	if len(s.NewSlots) > 0 {
		lines = append(lines, renderStatusLine("New quizzes", statusInfo, formatSlots(s.NewSlots), colorize))
	}
	if len(s.AddedStudents) > 0 {
		lines = append(lines, renderStatusLine("Added students", statusInfo, strconv.Itoa(len(s.AddedStudents)), colorize))
	}
	if len(s.Ignored) > 0 {
		lines = append(lines, renderStatusLine("Ignored columns", statusWarn, strings.Join(s.Ignored, ", "), colorize))
	}
	if len(s.Collisions) > 0 {
		lines = append(lines, renderStatusLine("Roster collisions", statusWarn, strconv.Itoa(len(s.Collisions)), colorize))
	}
	lines = append(lines, renderStatusLine("Unmatched", warnIf(len(s.Unmatched) > 0), strconv.Itoa(len(s.Unmatched)), colorize))
	if s.Output != "" {
		lines = append(lines, renderStatusLine("Output", statusOK, s.Output, colorize))
	}
	writeSection(w, s.Period, colorize, lines...)

	if len(s.Unmatched) > 0 {
		rows := make([][]string, len(s.Unmatched))
		for i, name := range s.Unmatched {
			rows[i] = []string{strconv.Itoa(i + 1), name}
		}
		fmt.Fprintln(w)
		fmt.Fprintln(w, renderTable("Unmatched names", []string{"#", "Submitted name"}, rows, []columnAlignment{alignRight, alignLeft}))
	}
	if table != nil && len(table.Rows) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, renderMasterTable(table))
	}
}

func formatSlots(slots []int) string {
	if len(slots) == 0 {
		return "none"
	}
	parts := make([]string, len(slots))
	for i, s := range slots {
		parts[i] = strconv.Itoa(s)
	}
	return strings.Join(parts, ", ")
}

func nonNilInts(v []int) []int {
	if v == nil {
		return []int{}
	}
	return v
}

func nonNilStrings(v []string) []string {
	if v == nil {
		return []string{}
	}
	return v
}
