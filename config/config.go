// SPDX-License-Identifier: MIT

// Package config loads the YAML configuration of the moment engine and
// turns it into engine options, a zap logger and a reference algebra.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/katalvlaran/lvlmoment/engine"
	"github.com/katalvlaran/lvlmoment/metrics"
	"github.com/katalvlaran/lvlmoment/parallel"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// ErrInvalid indicates a configuration value outside its domain.
var ErrInvalid = errors.New("config: invalid configuration")

// Config is the root of the YAML document.
type Config struct {
	Threading ThreadingConfig `yaml:"threading"`
	Logging   LoggingConfig   `yaml:"logging"`
	Metrics   MetricsConfig   `yaml:"metrics"`
	Algebra   AlgebraConfig   `yaml:"algebra,omitempty"`
}

// ThreadingConfig selects the build strategy.
type ThreadingConfig struct {
	Policy     parallel.Policy `yaml:"policy"`      // never, optional, always
	Threshold  int             `yaml:"threshold"`   // element count where optional goes parallel
	MaxWorkers int             `yaml:"max_workers"` // 0 = no cap
}

// LoggingConfig configures the zap logger.
type LoggingConfig struct {
	Level       string `yaml:"level"`       // debug, info, warn, error
	Development bool   `yaml:"development"` // console encoder, stack traces on warn
}

// MetricsConfig toggles Prometheus collectors.
type MetricsConfig struct {
	Enabled   bool   `yaml:"enabled"`
	Namespace string `yaml:"namespace"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Threading: ThreadingConfig{
			Policy:    parallel.PolicyOptional,
			Threshold: parallel.DefaultThreshold,
		},
		Logging: LoggingConfig{Level: "info"},
		Metrics: MetricsConfig{Namespace: metrics.DefaultNamespace},
	}
}

// Parse decodes YAML on top of Default and validates the result.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Load reads path. An empty path or a missing file yields Default.
func Load(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	return Parse(data)
}

// Save writes the configuration as YAML, creating parent directories.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := c.Marshal()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// Marshal encodes the configuration as YAML.
func (c *Config) Marshal() ([]byte, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config: %w", err)
	}
	return data, nil
}

// Validate checks every section.
func (c *Config) Validate() error {
	switch {
	case c.Threading.Threshold < 0:
		return fmt.Errorf("threading.threshold %d < 0: %w", c.Threading.Threshold, ErrInvalid)
	case c.Threading.MaxWorkers < 0:
		return fmt.Errorf("threading.max_workers %d < 0: %w", c.Threading.MaxWorkers, ErrInvalid)
	case c.Metrics.Enabled && c.Metrics.Namespace == "":
		return fmt.Errorf("metrics.namespace is empty: %w", ErrInvalid)
	}
	if _, err := zap.ParseAtomicLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("logging.level %q: %w", c.Logging.Level, ErrInvalid)
	}
	if len(c.Algebra.Operators) > 0 {
		if _, err := c.Algebra.Build(); err != nil {
			return fmt.Errorf("algebra: %w: %w", ErrInvalid, err)
		}
	}
	return nil
}

// EngineOptions maps the threading section and the given logger and
// collector (either may be nil) to engine options.
func (c *Config) EngineOptions(log *zap.Logger, collector *metrics.Collector) []engine.Option {
	return []engine.Option{
		engine.WithPolicy(c.Threading.Policy),
		engine.WithThreshold(c.Threading.Threshold),
		engine.WithMaxWorkers(c.Threading.MaxWorkers),
		engine.WithLogger(log),
		engine.WithMetrics(collector),
	}
}

// NewLogger builds a zap logger from the logging section.
func NewLogger(lc LoggingConfig) (*zap.Logger, error) {
	level, err := zap.ParseAtomicLevel(lc.Level)
	if err != nil {
		return nil, fmt.Errorf("logging.level %q: %w", lc.Level, ErrInvalid)
	}
	zc := zap.NewProductionConfig()
	if lc.Development {
		zc = zap.NewDevelopmentConfig()
	}
	zc.Level = level
	return zc.Build()
}
