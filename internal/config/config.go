// GameScout - Steam Library Game Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gamescout

// Package config loads GameScout configuration with Koanf v2 from three
// layered sources, in rising precedence: struct defaults, an optional
// YAML file, and GAMESCOUT_-prefixed environment variables.
//
//	GAMESCOUT_LOGGING_LEVEL=debug        -> logging.level
//	GAMESCOUT_ENGINE_DEFAULT_LIMIT=50    -> engine.default_limit
//	GAMESCOUT_STORE_PATH=/data/models    -> store.path
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/tomtom215/gamescout/internal/logging"
	"github.com/tomtom215/gamescout/internal/recommend"
	"github.com/tomtom215/gamescout/internal/recommend/storage"
	"github.com/tomtom215/gamescout/internal/supervisor"
)

// DefaultConfigPaths lists where config files are searched, first hit wins.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/gamescout/config.yaml",
	"/etc/gamescout/config.yml",
}

// ConfigPathEnvVar overrides the config file path.
const ConfigPathEnvVar = "GAMESCOUT_CONFIG"

// envPrefix is stripped from environment variables before mapping them
// onto config paths.
const envPrefix = "GAMESCOUT_"

// Config is the complete application configuration.
type Config struct {
	Logging logging.Config           `json:"logging" koanf:"logging"`
	Store   storage.Config           `json:"store" koanf:"store"`
	Engine  *recommend.Config        `json:"engine" koanf:"engine"`
	Trainer supervisor.TrainerConfig `json:"trainer" koanf:"trainer"`
	Tree    supervisor.TreeConfig    `json:"tree" koanf:"tree"`
}

// defaultConfig returns the full default configuration. Defaults are
// applied first, then overridden by file and environment.
func defaultConfig() *Config {
	return &Config{
		Logging: logging.DefaultConfig(),
		Store: storage.Config{
			Path: "/data/gamescout/models",
		},
		Engine:  recommend.DefaultConfig(),
		Trainer: supervisor.DefaultTrainerConfig(),
		Tree:    supervisor.DefaultTreeConfig(),
	}
}

// Validate checks the merged configuration.
func (c *Config) Validate() error {
	if c.Engine == nil {
		return fmt.Errorf("engine configuration missing")
	}
	if err := c.Engine.Validate(); err != nil {
		return fmt.Errorf("engine: %w", err)
	}
	if !c.Store.InMemory && c.Store.Path == "" {
		return fmt.Errorf("store.path required unless store.in_memory is set")
	}
	if c.Trainer.Enabled && c.Trainer.Interval <= 0 {
		return fmt.Errorf("trainer.interval must be positive when the trainer is enabled")
	}
	return nil
}

// findConfigFile returns the first existing config file path, or "".
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}
	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// envTransform maps an environment variable name onto a koanf path. The
// first underscore after the prefix separates the section; nested engine
// sections get their separator restored explicitly since field names
// themselves contain underscores.
func envTransform(key string) string {
	key = strings.ToLower(strings.TrimPrefix(key, envPrefix))

	parts := strings.SplitN(key, "_", 2)
	if len(parts) != 2 {
		return key
	}
	section, rest := parts[0], parts[1]

	if section == "engine" {
		for _, sub := range []string{"predictor", "engagement", "content"} {
			if strings.HasPrefix(rest, sub+"_") {
				rest = sub + "." + strings.TrimPrefix(rest, sub+"_")
				break
			}
		}
	}
	return section + "." + rest
}
