// Copyright (c) 2026 The Veil developers
// Use of this source code is governed by the ISC license
// that can be found in the LICENSE file.

// Package config holds client configuration shared by tools built on the
// library: where request data lives, which network ids refer to, and how
// chatty logging should be.
package config

import (
	"path/filepath"
	"strings"
)

// Config is the client configuration.
type Config struct {
	// DataDir is the directory holding the request store database.
	DataDir string

	// Network names the ledger instance ids belong to.
	Network string

	// LogLevel selects the logging verbosity.
	LogLevel string
}

// DefaultConfig returns a configuration with sensible defaults rooted at
// dataDir.
func DefaultConfig(dataDir string) Config {
	return Config{
		DataDir:  dataDir,
		Network:  "mainnet",
		LogLevel: "info",
	}
}

// StorePath returns the request store database path under the data
// directory.
func (c Config) StorePath() string {
	return filepath.Join(c.DataDir, c.Network, "requests.db")
}

// validLogLevels lists the accepted log level strings.
var validLogLevels = map[string]bool{
	"trace": true,
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// ValidateConfig checks that all configuration values are within acceptable
// ranges and returns the first error encountered, or nil if valid.
func ValidateConfig(cfg Config) error {
	if cfg.DataDir == "" {
		return ErrEmptyDataDir
	}

	if cfg.Network != "mainnet" && cfg.Network != "testnet" && cfg.Network != "localnet" {
		return ErrInvalidNetwork
	}

	if !validLogLevels[strings.ToLower(cfg.LogLevel)] {
		return ErrInvalidLogLevel
	}

	return nil
}
