// Package config loads the cleaning rules: vocabularies, placeholder tokens,
// the accepted date layout and the reconciliation tolerance.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/dvloznov/sales-cleaner/internal/domain"
)

// Environment variables that override file values.
const (
	EnvDateLayout = "SALES_CLEAN_DATE_LAYOUT"
	EnvWorkers    = "SALES_CLEAN_WORKERS"
	EnvLogLevel   = "SALES_CLEAN_LOG_LEVEL"
	EnvTolerance  = "SALES_CLEAN_TOLERANCE"
)

// DefaultDateLayout is the only transaction date format accepted.
const DefaultDateLayout = "2006-01-02"

// Config holds the cleaning rules for one run.
type Config struct {
	Vocabularies VocabulariesConfig `yaml:"vocabularies"`

	// Placeholders are literal field values treated as unknown. An explicit
	// empty list in a file still keeps the empty string, see Merge.
	Placeholders []string `yaml:"placeholders"`

	// DateLayout is a Go time layout; values not matching it exactly become unknown.
	DateLayout string `yaml:"date_layout"`

	// TotalTolerance is the absolute difference under which a stored total
	// is considered equal to quantity * unit price. "0" means exact.
	TotalTolerance string `yaml:"total_tolerance"`

	// Workers bounds the per-record fan-out (0 = GOMAXPROCS).
	Workers int `yaml:"workers"`

	LogLevel string `yaml:"log_level"`
}

// VocabulariesConfig lists the closed vocabularies of the categorical columns.
type VocabulariesConfig struct {
	Items          []string `yaml:"items"`
	PaymentMethods []string `yaml:"payment_methods"`
	Locations      []string `yaml:"locations"`
}

// DefaultConfig returns the rules of the cafe export.
func DefaultConfig() *Config {
	return &Config{
		Vocabularies: VocabulariesConfig{
			Items:          append([]string(nil), domain.DefaultItems...),
			PaymentMethods: append([]string(nil), domain.DefaultPaymentMethods...),
			Locations:      append([]string(nil), domain.DefaultLocations...),
		},
		Placeholders:   append([]string(nil), domain.DefaultPlaceholders...),
		DateLayout:     DefaultDateLayout,
		TotalTolerance: "0.005",
		Workers:        0,
		LogLevel:       "info",
	}
}

// LoadFromFile reads a YAML file on top of the defaults.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("LoadFromFile: read %q: %w", path, err)
	}

	var fileCfg Config
	if err := yaml.Unmarshal(data, &fileCfg); err != nil {
		return nil, fmt.Errorf("LoadFromFile: parse %q: %w", path, err)
	}

	cfg := DefaultConfig()
	cfg.Merge(&fileCfg)
	return cfg, nil
}

// Merge overlays non-zero values of other onto c.
func (c *Config) Merge(other *Config) {
	if other == nil {
		return
	}
	if len(other.Vocabularies.Items) > 0 {
		c.Vocabularies.Items = other.Vocabularies.Items
	}
	if len(other.Vocabularies.PaymentMethods) > 0 {
		c.Vocabularies.PaymentMethods = other.Vocabularies.PaymentMethods
	}
	if len(other.Vocabularies.Locations) > 0 {
		c.Vocabularies.Locations = other.Vocabularies.Locations
	}
	if len(other.Placeholders) > 0 {
		c.Placeholders = withEmpty(other.Placeholders)
	}
	if other.DateLayout != "" {
		c.DateLayout = other.DateLayout
	}
	if other.TotalTolerance != "" {
		c.TotalTolerance = other.TotalTolerance
	}
	if other.Workers != 0 {
		c.Workers = other.Workers
	}
	if other.LogLevel != "" {
		c.LogLevel = other.LogLevel
	}
}

// ApplyEnv overrides values from SALES_CLEAN_* environment variables.
func (c *Config) ApplyEnv() error {
	if v := os.Getenv(EnvDateLayout); v != "" {
		c.DateLayout = v
	}
	if v := os.Getenv(EnvTolerance); v != "" {
		c.TotalTolerance = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv(EnvWorkers); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("ApplyEnv: %s=%q: %w", EnvWorkers, v, err)
		}
		c.Workers = n
	}
	return nil
}

// Validate checks that the rules can drive a run.
func (c *Config) Validate() error {
	if len(c.Vocabularies.Items) == 0 {
		return fmt.Errorf("vocabularies.items is required")
	}
	if len(c.Vocabularies.PaymentMethods) == 0 {
		return fmt.Errorf("vocabularies.payment_methods is required")
	}
	if len(c.Vocabularies.Locations) == 0 {
		return fmt.Errorf("vocabularies.locations is required")
	}
	if c.DateLayout == "" {
		return fmt.Errorf("date_layout is required")
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers must be >= 0, got %d", c.Workers)
	}
	tol, err := decimal.NewFromString(c.TotalTolerance)
	if err != nil {
		return fmt.Errorf("total_tolerance %q: %w", c.TotalTolerance, err)
	}
	if tol.IsNegative() {
		return fmt.Errorf("total_tolerance must be >= 0, got %s", c.TotalTolerance)
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("log_level %q: %w", c.LogLevel, err)
	}
	return nil
}

// Tolerance returns the parsed reconciliation tolerance. Call Validate first.
func (c *Config) Tolerance() decimal.Decimal {
	tol, err := decimal.NewFromString(c.TotalTolerance)
	if err != nil {
		return decimal.Zero
	}
	return tol
}

// Level returns the parsed log level, info when unset or invalid.
func (c *Config) Level() zerolog.Level {
	lvl, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil || c.LogLevel == "" {
		return zerolog.InfoLevel
	}
	return lvl
}

// Load builds the effective config: defaults, optional file, environment.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path != "" {
		fileCfg, err := LoadFromFile(path)
		if err != nil {
			return nil, err
		}
		cfg = fileCfg
	}
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// withEmpty ensures the empty string is always treated as a placeholder.
func withEmpty(tokens []string) []string {
	for _, t := range tokens {
		if t == "" {
			return tokens
		}
	}
	return append(append([]string(nil), tokens...), "")
}
