// Package config loads, normalizes, and validates quizsorter configuration.
//
// It supplies repository defaults, reads TOML files, applies QUIZSORTER_*
// environment overrides, and expands user paths (including tilde shortcuts).
// Master, history and lock locations default to subdirectories of the data
// directory so a single setting relocates everything.
//
// Always obtain settings through this package so downstream code receives
// absolute paths, canonical backend names, and clear validation errors.
package config
