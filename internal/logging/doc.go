// Package logging assembles the structured slog loggers used by quizsorter.
//
// It owns the console and JSON handlers, level parsing, optional teeing of
// records into a JSON log file, and the standardized field keys (component,
// period, run_id, event_type). Context helpers attach the current import run
// to every log line without threading attributes by hand. A no-op logger is
// provided for tests and for wiring code that cannot fail.
package logging
