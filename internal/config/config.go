// Package config provides configuration management for the fuzzy CLI.
// Configuration is loaded from (highest to lowest priority):
// 1. Command-line flags
// 2. Environment variables (FUZZY_*)
// 3. Project config (.fuzzy/config.yaml in cwd)
// 4. Home config (~/.fuzzy/config.yaml)
// 5. Defaults
package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/boshu2/fuzzy/internal/set"
)

// Config holds all fuzzy CLI configuration.
type Config struct {
	// Output controls the default output format (table, json, jsonl).
	Output string `yaml:"output" json:"output"`

	// Strict turns validation diagnostics into failures instead of warnings.
	Strict bool `yaml:"strict" json:"strict"`

	// Workers enables parallel rule evaluation when > 1 (0 = sequential).
	Workers int `yaml:"workers" json:"workers"`

	// OutputMarker is the name substring that classifies a fuzzy set as an
	// output set at load time. A naming convention, not business logic.
	OutputMarker string `yaml:"output_marker" json:"output_marker"`

	// Log holds logging settings.
	Log LogConfig `yaml:"log" json:"log"`

	// Channels maps crisp-input channel names to the set-name substrings
	// they fuzzify.
	Channels map[string][]string `yaml:"channels" json:"channels"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	// Level is debug, info, warn, or error.
	Level string `yaml:"level" json:"level"`

	// Format is text or json.
	Format string `yaml:"format" json:"format"`
}

// Default config values (used in resolution and validation).
const (
	defaultOutput    = "table"
	defaultLogLevel  = "info"
	defaultLogFormat = "text"
)

// Default returns the default configuration. The channel bindings and output
// marker default to the classic tipping scenario's naming convention.
func Default() *Config {
	return &Config{
		Output:       defaultOutput,
		Strict:       false,
		Workers:      0,
		OutputMarker: set.DefaultOutputMarker,
		Log: LogConfig{
			Level:  defaultLogLevel,
			Format: defaultLogFormat,
		},
		Channels: set.DefaultChannelBindings(),
	}
}

// Load loads configuration with proper precedence.
// Priority: flags > env > project > home > defaults
func Load(flagOverrides *Config) (*Config, error) {
	cfg := Default()

	// Load home config
	homeConfig, _ := loadFromPath(homeConfigPath())
	if homeConfig != nil {
		cfg = merge(cfg, homeConfig)
	}

	// Load project config
	projectConfig, _ := loadFromPath(projectConfigPath())
	if projectConfig != nil {
		cfg = merge(cfg, projectConfig)
	}

	// Apply environment variables
	cfg = applyEnv(cfg)

	// Apply flag overrides
	if flagOverrides != nil {
		cfg = merge(cfg, flagOverrides)
	}

	return cfg, nil
}

// homeConfigPath returns the home config path.
func homeConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".fuzzy", "config.yaml")
}

// projectConfigPath returns the project config path.
func projectConfigPath() string {
	if override := strings.TrimSpace(os.Getenv("FUZZY_CONFIG")); override != "" {
		return override
	}
	cwd, err := os.Getwd()
	if err != nil {
		return ""
	}
	return filepath.Join(cwd, ".fuzzy", "config.yaml")
}

// loadFromPath loads config from a YAML file.
func loadFromPath(path string) (*Config, error) {
	if path == "" {
		return nil, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// applyEnv applies environment variable overrides.
func applyEnv(cfg *Config) *Config {
	if v := os.Getenv("FUZZY_OUTPUT"); v != "" {
		cfg.Output = v
	}
	if v := os.Getenv("FUZZY_STRICT"); v == "true" || v == "1" {
		cfg.Strict = true
	}
	if v := os.Getenv("FUZZY_WORKERS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Workers = n
		}
	}
	if v := os.Getenv("FUZZY_OUTPUT_MARKER"); v != "" {
		cfg.OutputMarker = v
	}
	if v := os.Getenv("FUZZY_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("FUZZY_LOG_FORMAT"); v != "" {
		cfg.Log.Format = v
	}
	return cfg
}

// mergeStr overwrites dst with src when src is non-empty.
func mergeStr(dst *string, src string) {
	if src != "" {
		*dst = src
	}
}

// mergeInt overwrites dst with src when src is non-zero.
func mergeInt(dst *int, src int) {
	if src != 0 {
		*dst = src
	}
}

// merge merges src into dst, with src values taking precedence.
// Strict uses OR semantics: once enabled at any level it stays enabled.
func merge(dst, src *Config) *Config {
	mergeStr(&dst.Output, src.Output)
	mergeStr(&dst.OutputMarker, src.OutputMarker)
	mergeInt(&dst.Workers, src.Workers)
	if src.Strict {
		dst.Strict = true
	}

	mergeStr(&dst.Log.Level, src.Log.Level)
	mergeStr(&dst.Log.Format, src.Log.Format)

	if len(src.Channels) > 0 {
		dst.Channels = src.Channels
	}

	return dst
}

// Bindings returns the channel bindings as the set package's type.
func (c *Config) Bindings() set.ChannelBindings {
	return set.ChannelBindings(c.Channels)
}

// Classifier returns the load-time input/output classifier.
func (c *Config) Classifier() set.Classifier {
	return set.NewClassifier(c.OutputMarker)
}
