// Package preflight provides readiness checks for the paths and backends an
// import depends on.
//
// The "quizsorter doctor" command runs RunAll and prints each Result; import
// itself relies on the same directory checks failing fast through the store
// constructors. S3 checks list the bucket with a short timeout and are only
// run when the s3 backend is selected.
package preflight
