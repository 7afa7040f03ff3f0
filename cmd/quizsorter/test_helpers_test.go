package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"quizsorter/internal/config"
	"quizsorter/internal/testsupport"
)

type cliTestEnv struct {
	cfg        *config.Config
	configPath string
	baseDir    string
}

func setupCLITestEnv(t *testing.T, opts ...testsupport.ConfigOption) *cliTestEnv {
	t.Helper()

	cfg := testsupport.NewConfig(t, opts...)
	base := testsupport.BaseDir(cfg)
	homeDir := filepath.Join(base, "home")
	if err := os.MkdirAll(homeDir, 0o755); err != nil {
		t.Fatalf("mkdir home: %v", err)
	}
	t.Setenv("HOME", homeDir)

	configPath := filepath.Join(homeDir, ".config", "quizsorter", "config.toml")
	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		t.Fatalf("mkdir config dir: %v", err)
	}
	writeTestConfig(t, configPath, cfg)

	return &cliTestEnv{cfg: cfg, configPath: configPath, baseDir: base}
}

func runCLI(t *testing.T, args []string, configPath string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	var flags []string
	if configPath != "" {
		flags = append(flags, "--config", configPath)
	}
	cmd.SetArgs(append(flags, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func writeTestConfig(t *testing.T, path string, cfg *config.Config) {
	t.Helper()
	content := fmt.Sprintf(`[paths]
data_dir = %q
master_dir = %q
history_db = %q
lock_dir = %q

[matching]
fuzzy_threshold = %d

[curve]
enabled = %t
cap = %d

[storage]
keep_backup = %t

[logging]
level = %q
`,
		cfg.Paths.DataDir,
		cfg.Paths.MasterDir,
		cfg.Paths.HistoryDB,
		cfg.Paths.LockDir,
		cfg.Matching.FuzzyThreshold,
		cfg.Curve.Enabled,
		cfg.Curve.Cap,
		cfg.Storage.KeepBackup,
		cfg.Logging.Level,
	)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

// writeFixtures creates an attendance list named for Period 2 and a quiz export.
func (e *cliTestEnv) writeFixtures(t *testing.T) (attendance, quizCSV string) {
	t.Helper()
	attendance = testsupport.WriteLines(t, filepath.Join(e.baseDir, "input", "Period 2.txt"),
		"Student",
		"Smith, John, Jane (Janie) #123",
		"Abe, Bob #2",
		"Nguyễn, Bao #7",
	)
	quizCSV = testsupport.WriteLines(t, filepath.Join(e.baseDir, "input", "quiz.csv"),
		"Student,Quiz Values - Sheet1(1) (/10),Quiz 1 Retake,Notes",
		"Janie S.,6,8,",
		"Bob Abe,10,,late",
		"Unknown Kid,5,,",
	)
	return attendance, quizCSV
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}
