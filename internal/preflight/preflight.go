package preflight

import (
	"context"

	"quizsorter/internal/config"
	"quizsorter/internal/masterstore"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string `json:"name"`
	Passed bool   `json:"passed"`
	Detail string `json:"detail"`
}

// RunAll executes all applicable preflight checks for the given config.
// store may be nil when it could not be opened; openErr then explains why.
func RunAll(ctx context.Context, cfg *config.Config, store masterstore.Store, openErr error) []Result {
	if cfg == nil {
		return nil
	}

	var results []Result
	results = append(results, CheckConfig(cfg))
	results = append(results, CheckDirectoryAccess("Data directory", cfg.Paths.DataDir))
	results = append(results, CheckDirectoryAccess("Lock directory", cfg.Paths.LockDir))
	if cfg.Storage.Backend == config.BackendFS {
		results = append(results, CheckDirectoryAccess("Master directory", cfg.Paths.MasterDir))
	}
	results = append(results, CheckHistory(cfg.Paths.HistoryDB))
	results = append(results, CheckStore(ctx, store, openErr))
	return results
}

// Passed reports whether every result passed.
func Passed(results []Result) bool {
	for _, r := range results {
		if !r.Passed {
			return false
		}
	}
	return true
}
