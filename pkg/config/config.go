// Package config loads the optional YAML settings file shared by both
// command-line tools and applies environment overrides.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/dd0wney/strongties/pkg/logging"
	"github.com/dd0wney/strongties/pkg/validation"
)

// Environment overrides
const (
	EnvLogLevel    = "STRONGTIES_LOG_LEVEL"
	EnvLogFormat   = "STRONGTIES_LOG_FORMAT"
	EnvWorkers     = "STRONGTIES_WORKERS"
	EnvMetricsFile = "STRONGTIES_METRICS_FILE"
)

// Default configuration values
const (
	DefaultLogLevel              = "info"
	DefaultLogFormat             = "json"
	DefaultLargeDatasetThreshold = 5000
	DefaultWorkers               = 4
	DefaultSourceColumn          = "owner_user_id"
	DefaultTargetColumn          = "name"
	DefaultTopN                  = 20
	DefaultSummaryTop            = 10

	// MaxWorkers bounds the file normalization pool.
	MaxWorkers = 64
)

var validLogLevels = []string{"debug", "info", "warn", "warning", "error"}

// Config holds the tunables of a StrongTies run
type Config struct {
	// LogLevel is one of debug, info, warn, error
	LogLevel string `yaml:"log_level"`

	// LogFormat is json or text
	LogFormat string `yaml:"log_format"`

	// LargeDatasetThreshold triggers a warning when a file has more rows
	LargeDatasetThreshold int `yaml:"large_dataset_threshold"`

	// Standardize lowercases and strips punctuation from company and position
	Standardize bool `yaml:"standardize"`

	// Sanitized restricts input columns to First Name, Last Name, Company, Position
	Sanitized bool `yaml:"sanitized"`

	// HashIDs adds a hash_id column in sanitized mode
	HashIDs bool `yaml:"hash_ids"`

	// ObfuscateNames replaces names with placeholders in sanitized mode
	ObfuscateNames bool `yaml:"obfuscate_names"`

	Workers int `yaml:"workers"`

	SourceColumn string `yaml:"source_column"`
	TargetColumn string `yaml:"target_column"`

	// TopN is the number of rows written to top_connectors.csv
	TopN int `yaml:"top_n"`

	// SummaryTop is the number of connectors printed in the summary
	SummaryTop int `yaml:"summary_top"`

	// MetricsFile enables a Prometheus textfile export when set
	MetricsFile string `yaml:"metrics_file"`
}

// Default returns a Config populated with default values
func Default() *Config {
	return &Config{
		LogLevel:              DefaultLogLevel,
		LogFormat:             DefaultLogFormat,
		LargeDatasetThreshold: DefaultLargeDatasetThreshold,
		Workers:               DefaultWorkers,
		SourceColumn:          DefaultSourceColumn,
		TargetColumn:          DefaultTargetColumn,
		TopN:                  DefaultTopN,
		SummaryTop:            DefaultSummaryTop,
	}
}

// Load reads path (if non-empty) over the defaults, applies environment
// overrides and validates the result.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if err := cfg.applyEnv(os.Getenv); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv(getenv func(string) string) error {
	if v := getenv(EnvLogLevel); v != "" {
		c.LogLevel = strings.ToLower(strings.TrimSpace(v))
	}
	if v := getenv(EnvLogFormat); v != "" {
		c.LogFormat = strings.ToLower(strings.TrimSpace(v))
	}
	if v := getenv(EnvWorkers); v != "" {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", EnvWorkers, v, err)
		}
		c.Workers = n
	}
	if v := getenv(EnvMetricsFile); v != "" {
		c.MetricsFile = v
	}
	return nil
}

// Validate checks every field and reports all problems at once. Empty
// source or target columns are allowed and mean "infer from the table".
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config cannot be nil")
	}
	return validation.NewChecker("config").
		OneOf("log_level", strings.ToLower(c.LogLevel), validLogLevels).
		OneOf("log_format", strings.ToLower(c.LogFormat), logging.Formats).
		Positive("large_dataset_threshold", c.LargeDatasetThreshold).
		Between("workers", c.Workers, 1, MaxWorkers).
		NonNegative("top_n", c.TopN).
		NonNegative("summary_top", c.SummaryTop).
		Distinct("target_column", c.TargetColumn, "source_column", c.SourceColumn).
		Implies("hash_ids", c.HashIDs, "sanitized", c.Sanitized).
		Implies("obfuscate_names", c.ObfuscateNames, "sanitized", c.Sanitized).
		Err()
}

// Level returns the parsed log level
func (c *Config) Level() logging.Level {
	return logging.ParseLevel(c.LogLevel)
}

// NewLogger builds the stderr-style logger described by the config.
func (c *Config) NewLogger(w io.Writer) logging.Logger {
	return logging.New(w, c.Level(), logging.ParseFormat(c.LogFormat))
}
