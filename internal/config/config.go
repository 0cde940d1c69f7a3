// Package config provides unified configuration loading for genograph.
// It supports loading from YAML files and environment variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/driftlab/genograph/internal/constants"
	"github.com/driftlab/genograph/internal/store"
)

// Config contains all genograph configuration settings.
type Config struct {
	// Governor contains settings for the governance observer.
	Governor GovernorConfig `json:"governor" yaml:"governor"`

	// Simulation contains settings for the evolution loop.
	Simulation SimulationConfig `json:"simulation" yaml:"simulation"`

	// Logging contains settings for operational and governance logging.
	Logging LoggingConfig `json:"logging" yaml:"logging"`
}

// GovernorConfig configures the governance observer.
type GovernorConfig struct {
	// AlertThreshold is the resistance score the governor treats as alerting.
	AlertThreshold float64 `json:"alert_threshold" yaml:"alert_threshold"`

	// PandemicStrainCount is the number of distinct critical strains after
	// which further criticals escalate to PANDEMIC.
	PandemicStrainCount int `json:"pandemic_strain_count" yaml:"pandemic_strain_count"`
}

// SimulationConfig configures the evolution loop.
type SimulationConfig struct {
	// StepInterval is the delay between evolution steps as a duration string
	// (e.g. "1s", "250ms").
	StepInterval string `json:"step_interval" yaml:"step_interval"`
}

// Interval parses the step interval. An empty value yields the default.
func (c SimulationConfig) Interval() (time.Duration, error) {
	if c.StepInterval == "" {
		return constants.DefaultStepInterval, nil
	}
	return time.ParseDuration(c.StepInterval)
}

// LoggingConfig configures genograph's logging behavior.
type LoggingConfig struct {
	// Level sets the log verbosity: "info" (default), "debug", or "trace".
	Level string `json:"level" yaml:"level"`
}

// Default returns a Config with sensible defaults.
func Default() *Config {
	return &Config{
		Governor: GovernorConfig{
			AlertThreshold:      constants.DefaultAlertThreshold,
			PandemicStrainCount: constants.PandemicStrainCount,
		},
		Simulation: SimulationConfig{
			StepInterval: constants.DefaultStepInterval.String(),
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load loads configuration for a project root.
// Order: defaults -> root/.genograph/config.yaml -> environment variables.
func Load(root string) (*Config, error) {
	cfg := Default()

	configPath := filepath.Join(root, store.DirName, "config.yaml")
	if _, statErr := os.Stat(configPath); statErr == nil {
		fileCfg, loadErr := LoadFromFile(configPath)
		if loadErr != nil {
			return nil, fmt.Errorf("loading config file: %w", loadErr)
		}
		cfg = fileCfg
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFromFile loads configuration from a specific YAML file.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}
	return cfg, nil
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	if c.Governor.AlertThreshold < 0 || c.Governor.AlertThreshold > 1 {
		return fmt.Errorf("alert_threshold must be between 0 and 1, got %f", c.Governor.AlertThreshold)
	}

	if c.Governor.PandemicStrainCount < 1 {
		return fmt.Errorf("pandemic_strain_count must be at least 1, got %d", c.Governor.PandemicStrainCount)
	}

	if _, err := c.Simulation.Interval(); err != nil {
		return fmt.Errorf("invalid step_interval: %w", err)
	}

	validLevels := map[string]bool{"info": true, "debug": true, "trace": true}
	if c.Logging.Level != "" && !validLevels[c.Logging.Level] {
		return fmt.Errorf("invalid log level: %s (valid: info, debug, trace, or empty for default)", c.Logging.Level)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides to the config.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("GENOGRAPH_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}

	if v := os.Getenv("GENOGRAPH_ALERT_THRESHOLD"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Governor.AlertThreshold = f
		}
	}

	if v := os.Getenv("GENOGRAPH_PANDEMIC_STRAINS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Governor.PandemicStrainCount = n
		}
	}

	if v := os.Getenv("GENOGRAPH_STEP_INTERVAL"); v != "" {
		cfg.Simulation.StepInterval = v
	}
}
