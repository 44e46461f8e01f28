// Package config provides configuration management for codemint.
package config

import (
	"fmt"
)

// Config holds configuration for the generation service and CLI.
type Config struct {
	DatabaseURL         string // sqlite:// or postgres:// URL
	LogLevel            string // debug, info, warn, error
	MaxExpressionLength int    // upper bound on flat expression length
	MaxComponents       int    // upper bound on components per rule
}

// Default returns configuration with default values.
// MaxExpressionLength mirrors the expression column width; a rule that
// would not fit the column is rejected before it reaches the database.
func Default() *Config {
	return &Config{
		LogLevel:            "info",
		MaxExpressionLength: 200,
		MaxComponents:       32,
	}
}

// Validate checks limits are positive and the log level is known.
func (c *Config) Validate() error {
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log_level must be one of debug, info, warn, error, got %q", c.LogLevel)
	}
	if c.MaxExpressionLength <= 0 {
		return fmt.Errorf("max_expression_length must be positive, got %d", c.MaxExpressionLength)
	}
	if c.MaxComponents <= 0 {
		return fmt.Errorf("max_components must be positive, got %d", c.MaxComponents)
	}
	return nil
}
