// Package history records import runs in SQLite.
//
// Every import attempt, including failed and dry runs, becomes one imports
// row keyed by a UUID run ID, with the raw names that could not be resolved
// stored alongside in unmatched_names. The ledger is informational: masters
// never depend on it, and a missing or cleared database only loses history.
//
// Schema changes bump schemaVersion in schema.go; users delete the database
// to adopt the new schema.
package history
