// Command quizsorter merges quiz exports into per-period master gradebooks.
//
// The import command reads an attendance list and a CSV or XLSX quiz export,
// resolves each submitted name to a roster member, and folds the scores into
// the stored master for the period, keeping each student's best attempt.
// Other commands inspect stored masters, check rosters, explain name
// resolution, browse the import history, and read the import log file.
//
// Logs go to stderr; command output goes to stdout.
package main
