// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ChainSafe/candidate-agreement/internal/log"
	"github.com/go-playground/validator/v10"
	"github.com/naoina/toml"
)

const (
	// DefaultLogLevel is the default log level
	DefaultLogLevel = "info"
	// DefaultMetricsAddress is the default address of the metrics server
	DefaultMetricsAddress = "localhost:9876"
	// DefaultValidityThreshold is the default number of positive validity votes
	// a candidate needs to be included
	DefaultValidityThreshold = 2
	// DefaultAvailabilityThreshold is the default number of availability votes
	// a candidate needs to be included
	DefaultAvailabilityThreshold = 1
)

// ErrInvalidConfig is returned when a configuration fails validation.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config is the configuration of the statement table tooling.
type Config struct {
	Log     LogConfig     `toml:"log"`
	Metrics MetricsConfig `toml:"metrics"`
	Table   TableConfig   `toml:"table"`
}

// LogConfig is the logging configuration.
type LogConfig struct {
	Level string `toml:"level" validate:"loglevel"`
}

// MetricsConfig is the prometheus metrics configuration.
type MetricsConfig struct {
	Enabled bool   `toml:"enabled"`
	Address string `toml:"address" validate:"hostname_port"`
}

// TableConfig holds the inclusion thresholds of the statement table.
type TableConfig struct {
	ValidityThreshold     int `toml:"validity-threshold" validate:"gte=1"`
	AvailabilityThreshold int `toml:"availability-threshold" validate:"gte=0"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Log: LogConfig{
			Level: DefaultLogLevel,
		},
		Metrics: MetricsConfig{
			Address: DefaultMetricsAddress,
		},
		Table: TableConfig{
			ValidityThreshold:     DefaultValidityThreshold,
			AvailabilityThreshold: DefaultAvailabilityThreshold,
		},
	}
}

// Load reads the TOML configuration file at path on top of the default
// configuration and validates the result.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("reading configuration file: %w", err)
	}

	if err = toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("decoding configuration file %s: %w", path, err)
	}

	if err = cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks every field of the configuration.
func (c *Config) Validate() error {
	validate := validator.New()
	err := validate.RegisterValidation("loglevel", func(fl validator.FieldLevel) bool {
		_, err := log.ParseLevel(fl.Field().String())
		return err == nil
	})
	if err != nil {
		return fmt.Errorf("registering log level validation: %w", err)
	}

	err = validate.Struct(c)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, err)
	}
	return nil
}

// LogLevel returns the parsed log level.
func (c *Config) LogLevel() log.Level {
	level, err := log.ParseLevel(c.Log.Level)
	if err != nil {
		return log.Info
	}
	return level
}
