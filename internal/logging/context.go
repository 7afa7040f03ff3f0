package logging

import (
	"context"
	"log/slog"
)

type contextKey int

const (
	runIDKey contextKey = iota
	periodKey
)

// WithRun tags ctx with the import run being processed.
func WithRun(ctx context.Context, runID, period string) context.Context {
	if runID != "" {
		ctx = context.WithValue(ctx, runIDKey, runID)
	}
	if period != "" {
		ctx = context.WithValue(ctx, periodKey, period)
	}
	return ctx
}

// RunIDFromContext returns the run ID stored by WithRun.
func RunIDFromContext(ctx context.Context) (string, bool) {
	if ctx == nil {
		return "", false
	}
	id, ok := ctx.Value(runIDKey).(string)
	return id, ok && id != ""
}

// PeriodFromContext returns the period stored by WithRun.
func PeriodFromContext(ctx context.Context) (string, bool) {
	if ctx == nil {
		return "", false
	}
	period, ok := ctx.Value(periodKey).(string)
	return period, ok && period != ""
}

// ContextFields extracts standardized slog attributes from ctx.
func ContextFields(ctx context.Context) []slog.Attr {
	fields := make([]slog.Attr, 0, 2)
	if id, ok := RunIDFromContext(ctx); ok {
		fields = append(fields, slog.String(FieldRunID, id))
	}
	if period, ok := PeriodFromContext(ctx); ok {
		fields = append(fields, slog.String(FieldPeriod, period))
	}
	return fields
}

// WithContext returns a logger augmented with the fields carried by ctx.
func WithContext(ctx context.Context, logger *slog.Logger) *slog.Logger {
	if logger == nil {
		logger = NewNop()
	}
	fields := ContextFields(ctx)
	if len(fields) == 0 {
		return logger
	}
	return logger.With(Args(fields...)...)
}
