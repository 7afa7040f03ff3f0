package testsupport

import (
	"path/filepath"
	"testing"

	"quizsorter/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.DataDir = filepath.Join(base, "data")
	cfgVal.Paths.MasterDir = filepath.Join(base, "data", "masters")
	cfgVal.Paths.HistoryDB = filepath.Join(base, "data", "history.db")
	cfgVal.Paths.LockDir = filepath.Join(base, "data", "locks")
	cfgVal.Logging.Level = "error"

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	return builder.cfg
}

// WithCurve overrides the default curve settings.
func WithCurve(enabled bool, limit int) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Curve.Enabled = enabled
		b.cfg.Curve.Cap = limit
	}
}

// WithThreshold overrides the fuzzy matching threshold.
func WithThreshold(threshold int) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Matching.FuzzyThreshold = threshold
	}
}

// WithoutBackups disables .bak files for the fs store.
func WithoutBackups() ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Storage.KeepBackup = false
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.DataDir)
}
