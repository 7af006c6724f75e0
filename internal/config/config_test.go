package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.Niceness != 19 {
		t.Errorf("Niceness = %d, want 19", cfg.Niceness)
	}
	if !cfg.SkipSolved {
		t.Error("SkipSolved should default to true")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "solvebatch.yaml")
	content := `
job_dir: /srv/quiz/solver
solver_path: /opt/solver/console_solver
niceness: 10
skip_solved: false
log_level: debug
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.JobDir != "/srv/quiz/solver" {
		t.Errorf("JobDir = %q", cfg.JobDir)
	}
	if cfg.SolverPath != "/opt/solver/console_solver" {
		t.Errorf("SolverPath = %q", cfg.SolverPath)
	}
	if cfg.Niceness != 10 {
		t.Errorf("Niceness = %d, want 10", cfg.Niceness)
	}
	if cfg.SkipSolved {
		t.Error("SkipSolved should be false")
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want debug", cfg.LogLevel)
	}
	// Keys absent from the file keep their defaults.
	if cfg.LogFormat != "text" {
		t.Errorf("LogFormat = %q, want default text", cfg.LogFormat)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for missing config file")
	}
}

func TestNormalize(t *testing.T) {
	cfg := Default()
	cfg.JobDir = "/data/solver"
	cfg.RetryLog = "/var/log/retry.log" // explicit values survive
	cfg.Normalize()

	if cfg.RunLog != filepath.Join("/data/solver", "solver_run.log") {
		t.Errorf("RunLog = %q", cfg.RunLog)
	}
	if cfg.RunSentinel != filepath.Join("/data/solver", "solver_batch.done") {
		t.Errorf("RunSentinel = %q", cfg.RunSentinel)
	}
	if cfg.RetrySentinel != filepath.Join("/data/solver", "solver_retry.done") {
		t.Errorf("RetrySentinel = %q", cfg.RetrySentinel)
	}
	if cfg.DBPath != filepath.Join("/data/solver", "solvebatch.db") {
		t.Errorf("DBPath = %q", cfg.DBPath)
	}
	if cfg.RetryLog != "/var/log/retry.log" {
		t.Errorf("RetryLog overwritten: %q", cfg.RetryLog)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		ok     bool
	}{
		{"defaults", func(c *Config) {}, true},
		{"empty job dir", func(c *Config) { c.JobDir = "" }, false},
		{"empty solver", func(c *Config) { c.SolverPath = "" }, false},
		{"negative niceness", func(c *Config) { c.Niceness = -1 }, false},
		{"niceness too high", func(c *Config) { c.Niceness = 20 }, false},
		{"zero niceness", func(c *Config) { c.Niceness = 0 }, true},
	}
	for _, tt := range tests {
		cfg := Default()
		tt.mutate(&cfg)
		err := cfg.Validate()
		if tt.ok && err != nil {
			t.Errorf("%s: unexpected error: %v", tt.name, err)
		}
		if !tt.ok && err == nil {
			t.Errorf("%s: expected error", tt.name)
		}
	}
}
