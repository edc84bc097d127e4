package deduplication

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the tunable thresholds for the duplicate detector
type Config struct {
	// SimilarityThreshold is the minimum description similarity (0.0-1.0)
	// for a pair to be flagged on text alone, regardless of type or timing.
	// The rule is strict greater-than. Default: 0.80
	SimilarityThreshold float64

	// MergeThreshold is the similarity above which a flagged pair is
	// suggested for merging. Strict greater-than. Default: 0.85
	MergeThreshold float64

	// DeleteThreshold is the similarity above which a flagged pair is
	// suggested for outright deletion. Strict greater-than. Default: 0.90
	DeleteThreshold float64

	// DuplicateWindow is how close together two same-type tasks for the
	// same customer must be created to be flagged on timing alone.
	// Default: 24 hours
	DuplicateWindow time.Duration

	// JitterFraction is the width of the random variation applied to the
	// time-saved estimate, as a fraction of the SLA base. The jitter is
	// centered on zero, so the estimate stays within ±JitterFraction/2 of
	// the base. Default: 0.20
	JitterFraction float64
}

// DefaultConfig returns the thresholds used by the production dashboard
func DefaultConfig() Config {
	return Config{
		SimilarityThreshold: 0.80,
		MergeThreshold:      0.85,
		DeleteThreshold:     0.90,
		DuplicateWindow:     24 * time.Hour,
		JitterFraction:      0.20,
	}
}

// Validate checks if the configuration has valid values
func (c Config) Validate() error {
	if c.SimilarityThreshold < 0.0 || c.SimilarityThreshold > 1.0 {
		return fmt.Errorf("similarity_threshold must be between 0.0 and 1.0 (got %.2f)", c.SimilarityThreshold)
	}
	if c.MergeThreshold < c.SimilarityThreshold || c.MergeThreshold > 1.0 {
		return fmt.Errorf("merge_threshold must be between similarity_threshold and 1.0 (got %.2f)", c.MergeThreshold)
	}
	if c.DeleteThreshold < c.MergeThreshold || c.DeleteThreshold > 1.0 {
		return fmt.Errorf("delete_threshold must be between merge_threshold and 1.0 (got %.2f)", c.DeleteThreshold)
	}
	if c.DuplicateWindow <= 0 {
		return fmt.Errorf("duplicate_window must be positive (got %v)", c.DuplicateWindow)
	}
	if c.DuplicateWindow > 30*24*time.Hour {
		return fmt.Errorf("duplicate_window too large (got %v, max 30 days)", c.DuplicateWindow)
	}
	if c.JitterFraction < 0.0 || c.JitterFraction > 1.0 {
		return fmt.Errorf("jitter_fraction must be between 0.0 and 1.0 (got %.2f)", c.JitterFraction)
	}
	return nil
}

// String returns a human-readable representation of the config
func (c Config) String() string {
	return fmt.Sprintf(
		"Config{Similarity: %.2f, Merge: %.2f, Delete: %.2f, Window: %v, Jitter: %.2f}",
		c.SimilarityThreshold, c.MergeThreshold, c.DeleteThreshold,
		c.DuplicateWindow, c.JitterFraction,
	)
}

// ConfigFromEnv creates a Config from environment variables, falling back
// to defaults.
//
// Environment variables:
//   - BANKFLOW_DEDUP_SIMILARITY_THRESHOLD: Minimum similarity (0.0-1.0) to flag on text alone (default: 0.80)
//   - BANKFLOW_DEDUP_MERGE_THRESHOLD: Similarity above which merge is suggested (default: 0.85)
//   - BANKFLOW_DEDUP_DELETE_THRESHOLD: Similarity above which delete is suggested (default: 0.90)
//   - BANKFLOW_DEDUP_WINDOW_HOURS: Duplicate window in hours (default: 24)
//   - BANKFLOW_DEDUP_JITTER_FRACTION: Jitter width as a fraction of the SLA base (default: 0.20)
//
// Returns an error if any environment variable has an invalid value.
func ConfigFromEnv() (Config, error) {
	cfg := DefaultConfig()

	if err := parseEnvFloat("BANKFLOW_DEDUP_SIMILARITY_THRESHOLD", &cfg.SimilarityThreshold); err != nil {
		return cfg, err
	}
	if err := parseEnvFloat("BANKFLOW_DEDUP_MERGE_THRESHOLD", &cfg.MergeThreshold); err != nil {
		return cfg, err
	}
	if err := parseEnvFloat("BANKFLOW_DEDUP_DELETE_THRESHOLD", &cfg.DeleteThreshold); err != nil {
		return cfg, err
	}
	if err := parseEnvDuration("BANKFLOW_DEDUP_WINDOW_HOURS", &cfg.DuplicateWindow, time.Hour); err != nil {
		return cfg, err
	}
	if err := parseEnvFloat("BANKFLOW_DEDUP_JITTER_FRACTION", &cfg.JitterFraction); err != nil {
		return cfg, err
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid configuration from environment: %w", err)
	}
	return cfg, nil
}

// fileConfig is the YAML shape of a detector config file. Pointer fields
// distinguish "absent" from "zero"; the window is a Go duration string.
type fileConfig struct {
	SimilarityThreshold *float64 `yaml:"similarity_threshold"`
	MergeThreshold      *float64 `yaml:"merge_threshold"`
	DeleteThreshold     *float64 `yaml:"delete_threshold"`
	DuplicateWindow     string   `yaml:"duplicate_window"`
	JitterFraction      *float64 `yaml:"jitter_fraction"`
}

// ConfigFromFile loads a Config from a YAML file. Fields absent from the
// file keep their default values. The duplicate window is a duration
// string, e.g. "24h".
func ConfigFromFile(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config file: %w", err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return cfg, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	if fc.SimilarityThreshold != nil {
		cfg.SimilarityThreshold = *fc.SimilarityThreshold
	}
	if fc.MergeThreshold != nil {
		cfg.MergeThreshold = *fc.MergeThreshold
	}
	if fc.DeleteThreshold != nil {
		cfg.DeleteThreshold = *fc.DeleteThreshold
	}
	if fc.DuplicateWindow != "" {
		window, err := time.ParseDuration(fc.DuplicateWindow)
		if err != nil {
			return cfg, fmt.Errorf("invalid duplicate_window in %s: %w", path, err)
		}
		cfg.DuplicateWindow = window
	}
	if fc.JitterFraction != nil {
		cfg.JitterFraction = *fc.JitterFraction
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid configuration in %s: %w", path, err)
	}
	return cfg, nil
}

// parseEnvFloat parses a float64 from an environment variable
func parseEnvFloat(key string, dest *float64) error {
	value := os.Getenv(key)
	if value == "" {
		return nil // Use default
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return fmt.Errorf("invalid value for %s: %w", key, err)
	}
	*dest = parsed
	return nil
}

// parseEnvDuration parses a duration from an environment variable. The
// multiplier converts the numeric value to a duration (e.g. time.Hour for
// values expressed in hours).
func parseEnvDuration(key string, dest *time.Duration, multiplier time.Duration) error {
	value := os.Getenv(key)
	if value == "" {
		return nil // Use default
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fmt.Errorf("invalid value for %s: %w", key, err)
	}
	*dest = time.Duration(parsed) * multiplier
	return nil
}
