package core

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// ---------------------------------------------------------------------------
// Config — resolved through a four-level hierarchy where each layer
// overrides values set by the layer beneath it:
//
//	Priority (highest → lowest):
//	  1. Explicit CLI flags (applied after loading, via ApplyCLIOverrides)
//	  2. Environment variables (GNATFINDER_* prefix)
//	  3. YAML configuration file
//	  4. Built-in defaults
//
// Adapted from qubicDB's pkg/core.Config hierarchy, trimmed to the handful
// of tunables this pipeline actually has: positional CLI arguments
// (n_cells, tau, thresh, c_radius, file paths) are not part of Config —
// they are parsed directly by cmd/gnatfinder. Config only covers the
// ambient knobs layered on top (worker count, buffer size, progress
// cadence, output path, log level).
// ---------------------------------------------------------------------------

// PipelineConfig groups tunables for the Phase-2 enumeration.
type PipelineConfig struct {
	// Workers is the size of the Phase-2 worker pool. 1 means sequential,
	// the reference single-threaded design; cmd/gnatfinder replaces 0 with
	// the machine's physical core count.
	Workers int `yaml:"workers"`

	// BufferSize is the edge emitter's pending-edge buffer capacity,
	// corresponding to N_EDGBUF in the original GNATFinder.
	BufferSize int `yaml:"bufferSize"`

	// ProgressEvery controls how many postsynaptic neurons are processed
	// between progress log lines.
	ProgressEvery int `yaml:"progressEvery"`
}

// OutputConfig groups output-file settings.
type OutputConfig struct {
	// Path is the edge-emitter output file. Defaults to "./gnat2_out.txt".
	Path string `yaml:"path"`
}

// LogConfig groups logging settings.
type LogConfig struct {
	// Level is one of "debug", "info", "warn", "error".
	Level string `yaml:"level"`
}

// Config is the root configuration object for a gnatfinder run.
type Config struct {
	Pipeline PipelineConfig `yaml:"pipeline"`
	Output   OutputConfig   `yaml:"output"`
	Log      LogConfig      `yaml:"log"`
}

// DefaultConfig returns a Config populated with the reference
// single-threaded defaults.
func DefaultConfig() *Config {
	return &Config{
		Pipeline: PipelineConfig{
			Workers:       1,
			BufferSize:    8192,
			ProgressEvery: 10,
		},
		Output: OutputConfig{
			Path: "./gnat2_out.txt",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// ConfigFromFile reads a YAML configuration file and merges it on top of
// the built-in defaults. Fields absent from the file retain their defaults.
func ConfigFromFile(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file %s: %w", path, err)
	}

	return cfg, nil
}

// ConfigFromEnv applies environment variable overrides to the given Config.
// If cfg is nil a new default Config is created first.
//
// Environment variable mapping (all optional, prefix GNATFINDER_):
//
//	GNATFINDER_WORKERS         → Pipeline.Workers
//	GNATFINDER_BUFFER_SIZE     → Pipeline.BufferSize
//	GNATFINDER_PROGRESS_EVERY  → Pipeline.ProgressEvery
//	GNATFINDER_OUT             → Output.Path
//	GNATFINDER_LOG_LEVEL       → Log.Level
func ConfigFromEnv(cfg *Config) *Config {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	setEnvInt("GNATFINDER_WORKERS", &cfg.Pipeline.Workers)
	setEnvInt("GNATFINDER_BUFFER_SIZE", &cfg.Pipeline.BufferSize)
	setEnvInt("GNATFINDER_PROGRESS_EVERY", &cfg.Pipeline.ProgressEvery)
	setEnvStr("GNATFINDER_OUT", &cfg.Output.Path)
	setEnvStr("GNATFINDER_LOG_LEVEL", &cfg.Log.Level)

	return cfg
}

// LoadConfig implements the full configuration hierarchy:
//
//  1. Start with built-in defaults.
//  2. If configPath is non-empty, overlay the YAML file.
//  3. Apply environment variable overrides.
//  4. The caller may then apply programmatic overrides (e.g. CLI flags).
func LoadConfig(configPath string) (*Config, error) {
	var cfg *Config

	if configPath != "" {
		var err error
		cfg, err = ConfigFromFile(configPath)
		if err != nil {
			return nil, err
		}
	} else {
		cfg = DefaultConfig()
	}

	cfg = ConfigFromEnv(cfg)
	return cfg, nil
}

// Validate performs structural validation of the configuration.
func (c *Config) Validate() error {
	if c.Pipeline.Workers < 0 {
		return fmt.Errorf("pipeline.workers must be >= 0, got %d", c.Pipeline.Workers)
	}
	if c.Pipeline.BufferSize <= 0 {
		return fmt.Errorf("pipeline.bufferSize must be > 0, got %d", c.Pipeline.BufferSize)
	}
	if c.Pipeline.ProgressEvery <= 0 {
		return fmt.Errorf("pipeline.progressEvery must be > 0, got %d", c.Pipeline.ProgressEvery)
	}
	if strings.TrimSpace(c.Output.Path) == "" {
		return fmt.Errorf("output.path must not be empty")
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level must be one of debug|info|warn|error, got %q", c.Log.Level)
	}
	return nil
}

// ---------------------------------------------------------------------------
// CLI flag overrides — final layer of the configuration hierarchy.
// ---------------------------------------------------------------------------

// CLIOverrides carries optional values set via command-line flags.
// Pointer fields are nil when the flag was not explicitly provided,
// allowing the caller to distinguish "not set" from the zero value.
type CLIOverrides struct {
	ConfigPath    *string
	Workers       *int
	BufferSize    *int
	ProgressEvery *int
	OutPath       *string
	LogLevel      *string
}

// ApplyCLIOverrides patches the Config with any explicitly-set CLI flags.
// Only non-nil fields in the CLIOverrides are applied, preserving all
// values resolved from earlier hierarchy layers.
func (c *Config) ApplyCLIOverrides(o *CLIOverrides) {
	if o == nil {
		return
	}
	if o.Workers != nil {
		c.Pipeline.Workers = *o.Workers
	}
	if o.BufferSize != nil {
		c.Pipeline.BufferSize = *o.BufferSize
	}
	if o.ProgressEvery != nil {
		c.Pipeline.ProgressEvery = *o.ProgressEvery
	}
	if o.OutPath != nil {
		c.Output.Path = *o.OutPath
	}
	if o.LogLevel != nil {
		c.Log.Level = *o.LogLevel
	}
}

// ---------------------------------------------------------------------------
// Environment variable helpers
// ---------------------------------------------------------------------------

func setEnvStr(key string, target *string) {
	if v, ok := os.LookupEnv(key); ok {
		*target = v
	}
}

func setEnvInt(key string, target *int) {
	if v, ok := os.LookupEnv(key); ok {
		if n, err := strconv.Atoi(v); err == nil {
			*target = n
		}
	}
}
