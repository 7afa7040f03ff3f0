// Package master owns the per-period master gradebook and the import cycle
// that merges a quiz export into it.
//
// A Table has one row per known student and one cell for every quiz slot ever
// observed for the period. Merger.Import runs the cycle:
//
//	new       fold the export, resolve names against the roster
//	loaded    read the stored master, or seed one from the roster
//	merged    add new slots, retake-merge cells, sort rows
//	persisted replace the stored master in one write
//
// Every step before persisted works on a clone, so a failed import never
// changes what is stored.
package master
