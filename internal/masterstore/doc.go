// Package masterstore persists encoded master tables.
//
// A Store maps a master key such as "Period_2_MASTER" to the bytes of its CSV
// encoding. Three backends exist: a local directory (the default), an
// S3-compatible bucket, and an in-memory map for tests. Save replaces the
// whole object so a reader never observes a partially merged master.
//
// Lock serializes imports into the same period across processes using an
// advisory file lock.
package masterstore
