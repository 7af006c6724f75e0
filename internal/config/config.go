// Package config holds the orchestrator configuration. Every path and
// knob the reference workflow hardcoded (job directory, solver binary,
// niceness, log and sentinel locations) is an explicit field here,
// loadable from YAML and overridable by CLI flags.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config is the full set of orchestrator settings.
type Config struct {
	// JobDir holds the q<id>_input.txt files and receives the
	// q<id>_result.json artifacts, run logs and sentinels.
	JobDir string `yaml:"job_dir"`

	// SolverPath is the external solver binary. Looked up on PATH when
	// not absolute.
	SolverPath string `yaml:"solver_path"`

	// Niceness is the nice(1) level the solver runs at. 0 disables the
	// wrapper and runs the solver at normal priority.
	Niceness int `yaml:"niceness"`

	// SkipSolved makes a full run skip jobs whose result artifact is
	// already present.
	SkipSolved bool `yaml:"skip_solved"`

	// Per-mode run log and sentinel paths. Empty values are derived from
	// JobDir by Normalize.
	RunLog        string `yaml:"run_log"`
	RetryLog      string `yaml:"retry_log"`
	RunSentinel   string `yaml:"run_sentinel"`
	RetrySentinel string `yaml:"retry_sentinel"`

	// DBPath is the SQLite outcome journal. ":memory:" for tests, empty
	// derives <job_dir>/solvebatch.db.
	DBPath string `yaml:"db_path"`

	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`

	// Addr is the status API listen address (serve mode only).
	Addr string `yaml:"addr"`
}

// Default returns sensible defaults.
func Default() Config {
	return Config{
		JobDir:     "data/solver_results",
		SolverPath: "console_solver",
		Niceness:   19,
		SkipSolved: true,
		LogLevel:   "info",
		LogFormat:  "text",
		Addr:       ":8080",
	}
}

// Load reads a YAML config file on top of the defaults. Keys absent from
// the file keep their default value.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Normalize derives any path left empty from JobDir. Call after flag
// overrides are applied.
func (c *Config) Normalize() {
	if c.RunLog == "" {
		c.RunLog = filepath.Join(c.JobDir, "solver_run.log")
	}
	if c.RetryLog == "" {
		c.RetryLog = filepath.Join(c.JobDir, "solver_retry.log")
	}
	if c.RunSentinel == "" {
		c.RunSentinel = filepath.Join(c.JobDir, "solver_batch.done")
	}
	if c.RetrySentinel == "" {
		c.RetrySentinel = filepath.Join(c.JobDir, "solver_retry.done")
	}
	if c.DBPath == "" {
		c.DBPath = filepath.Join(c.JobDir, "solvebatch.db")
	}
}

// Validate checks the fields every mode depends on.
func (c *Config) Validate() error {
	if c.JobDir == "" {
		return fmt.Errorf("job_dir must not be empty")
	}
	if c.SolverPath == "" {
		return fmt.Errorf("solver_path must not be empty")
	}
	if c.Niceness < 0 || c.Niceness > 19 {
		return fmt.Errorf("niceness %d out of range 0..19", c.Niceness)
	}
	return nil
}
