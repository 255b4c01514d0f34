// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package config provides configuration loading for smith tools.
//
// Configuration is loaded from a single file specified by:
//   - SMITH_CONFIG environment variable, or
//   - --config flag passed to the command
//
// There is no automatic discovery. Files ending in .jsonc may contain
// comments and trailing commas; everything else is parsed as YAML
// (which includes plain JSON).
//
// The file may contain environment-specific sections (development,
// production) that override base values when the environment matches.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	"github.com/bureau-foundation/smith/lib/valuestore"
)

// EnvironmentVariable names the variable Load reads the path from.
const EnvironmentVariable = "SMITH_CONFIG"

// Environment represents the deployment environment.
type Environment string

const (
	// Development is for local use; the default.
	Development Environment = "development"
	// Production is for deployed services.
	Production Environment = "production"
)

// Config is the configuration for smith tools.
type Config struct {
	// Environment selects which override section applies.
	Environment Environment `yaml:"environment" json:"environment"`

	// LogLevel is a slog level name: debug, info, warn, or error.
	LogLevel string `yaml:"log_level" json:"log_level"`

	// Store configures lib/valuestore.
	Store StoreConfig `yaml:"store" json:"store"`

	// Per-environment overrides, applied after the base config.
	Development *ConfigOverrides `yaml:"development,omitempty" json:"development,omitempty"`
	Production  *ConfigOverrides `yaml:"production,omitempty" json:"production,omitempty"`
}

// ConfigOverrides contains fields that can be overridden per environment.
type ConfigOverrides struct {
	LogLevel *string      `yaml:"log_level,omitempty" json:"log_level,omitempty"`
	Store    *StoreConfig `yaml:"store,omitempty" json:"store,omitempty"`
}

// StoreConfig configures the value store.
type StoreConfig struct {
	// Compression is auto, none, lz4, or zstd.
	Compression string `yaml:"compression" json:"compression"`

	// CompressionThreshold is the encoded record size, in bytes, below
	// which records are stored uncompressed.
	CompressionThreshold int `yaml:"compression_threshold" json:"compression_threshold"`
}

// Default returns the configuration used as the base before a file is
// loaded, and by commands run without any config file.
func Default() *Config {
	return &Config{
		Environment: Development,
		LogLevel:    "warn",
		Store: StoreConfig{
			Compression:          "auto",
			CompressionThreshold: valuestore.DefaultCompressionThreshold,
		},
	}
}

// Load loads configuration from the file named by SMITH_CONFIG. It
// fails if the variable is not set.
func Load() (*Config, error) {
	configPath := os.Getenv(EnvironmentVariable)
	if configPath == "" {
		return nil, fmt.Errorf("%s environment variable not set; "+
			"set it to the path of your smith.yaml config file, or use --config flag", EnvironmentVariable)
	}
	return LoadFile(configPath)
}

// LoadFile loads configuration from a specific file path, on top of
// Default, and applies the overrides for the configured environment.
func LoadFile(path string) (*Config, error) {
	cfg := Default()
	if err := cfg.loadFile(path); err != nil {
		return nil, err
	}
	cfg.applyEnvironmentOverrides()
	return cfg, nil
}

// loadFile merges a single configuration file into c.
func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config: %w", err)
	}
	if filepath.Ext(path) == ".jsonc" {
		data = jsonc.ToJSON(data)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parsing config %s: %w", path, err)
	}
	return nil
}

// applyEnvironmentOverrides applies the section for c.Environment.
func (c *Config) applyEnvironmentOverrides() {
	var overrides *ConfigOverrides
	switch c.Environment {
	case Development:
		overrides = c.Development
	case Production:
		overrides = c.Production
	}
	if overrides == nil {
		return
	}
	if overrides.LogLevel != nil {
		c.LogLevel = *overrides.LogLevel
	}
	if overrides.Store != nil {
		if overrides.Store.Compression != "" {
			c.Store.Compression = overrides.Store.Compression
		}
		if overrides.Store.CompressionThreshold != 0 {
			c.Store.CompressionThreshold = overrides.Store.CompressionThreshold
		}
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	var errs []error

	if c.Environment != Development && c.Environment != Production {
		errs = append(errs, fmt.Errorf("invalid environment: %s", c.Environment))
	}
	if _, err := c.Level(); err != nil {
		errs = append(errs, err)
	}
	if _, err := valuestore.ParseCompression(c.Store.Compression); err != nil {
		errs = append(errs, fmt.Errorf("store.compression: %w", err))
	}
	if c.Store.CompressionThreshold < 0 {
		errs = append(errs, fmt.Errorf("store.compression_threshold must not be negative, got %d", c.Store.CompressionThreshold))
	}

	return errors.Join(errs...)
}

// Level returns LogLevel as a slog.Level.
func (c *Config) Level() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("log_level: %w", err)
	}
	return level, nil
}

// StoreOptions converts the store section into valuestore.Options.
// Call Validate first; an invalid compression name yields
// CompressionAuto.
func (c *Config) StoreOptions(logger *slog.Logger) valuestore.Options {
	compression, _ := valuestore.ParseCompression(c.Store.Compression)
	return valuestore.Options{
		Compression:          compression,
		CompressionThreshold: c.Store.CompressionThreshold,
		Logger:               logger,
	}
}
