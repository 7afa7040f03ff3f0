// Package logs reads the JSON log file written when logging.file is set.
//
// Tail returns the last N matching entries with bounded memory and an offset
// that a later call can resume from; Follow polls that offset until the
// context ends. Entries can be narrowed to one import run, one period or a
// minimum level, which is how `quizsorter logs --run` isolates a single
// import in a shared log.
package logs
