// Copyright (c) 2025 Nishisan. All rights reserved.
// Use of this source code is governed by a license that can be found in
// the LICENSE file.

// Package config loads and validates the forwarder's on-disk YAML
// configuration.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/nishisan-dev/fluent-forward/internal/retry"
)

// defaultAddress is the Fluentd aggregator's default listen address.
const defaultAddress = "127.0.0.1:24224"

// Config is the forwarder client's full configuration surface.
type Config struct {
	Address        string      `yaml:"address"`
	ConnectTimeout time.Duration `yaml:"connect_timeout"`
	Retry          RetryConfig `yaml:"retry"`
	Logging        LoggingInfo `yaml:"logging"`
}

// RetryConfig is the on-disk form of the retry schedule.
type RetryConfig struct {
	InitialWaitMS uint `yaml:"initial_wait_ms"`
	MaxAttempts   uint `yaml:"max_attempts"`
	MaxWaitMS     uint `yaml:"max_wait_ms"`
}

// LoggingInfo configures the ambient logging stack.
type LoggingInfo struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	File   string `yaml:"file"`
}

// Default returns the configuration with every field at its documented
// default: 127.0.0.1:24224, 3s connect timeout, and the default retry
// schedule (500ms/10 attempts/60s cap).
func Default() Config {
	return Config{
		Address:        defaultAddress,
		ConnectTimeout: 3 * time.Second,
		Retry: RetryConfig{
			InitialWaitMS: 500,
			MaxAttempts:   10,
			MaxWaitMS:     60000,
		},
		Logging: LoggingInfo{Level: "info", Format: "json"},
	}
}

// Load reads and validates the YAML configuration file at path, filling
// in any field left unset with its default.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: reading %s: %w", path, err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parsing %s: %w", path, err)
	}

	if err := cfg.applyDefaultsAndValidate(); err != nil {
		return Config{}, fmt.Errorf("config: validating %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) applyDefaultsAndValidate() error {
	if c.Address == "" {
		c.Address = defaultAddress
	}
	if c.ConnectTimeout <= 0 {
		c.ConnectTimeout = 3 * time.Second
	}
	if c.Retry.InitialWaitMS == 0 {
		c.Retry.InitialWaitMS = 500
	}
	if c.Retry.MaxAttempts == 0 {
		c.Retry.MaxAttempts = 10
	}
	if c.Retry.MaxWaitMS == 0 {
		c.Retry.MaxWaitMS = 60000
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "json"
	}

	if err := c.Retry.ToRetry().Validate(); err != nil {
		return err
	}
	return nil
}

// ToRetry converts the on-disk retry settings to the millisecond-free
// runtime form the retry package operates on.
func (r RetryConfig) ToRetry() retry.Config {
	return retry.Config{
		InitialWait: time.Duration(r.InitialWaitMS) * time.Millisecond,
		MaxAttempts: int(r.MaxAttempts),
		MaxWait:     time.Duration(r.MaxWaitMS) * time.Millisecond,
	}
}
