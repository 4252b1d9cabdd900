// ============================================================================
// pl2 - Embeddable Command Language Engine
// ============================================================================
//
// Package:     logging
// Description: Factory functions for creating foundation loggers from
//              string-typed configuration
// Author:      Mike Stoffels
// Created:     2025-12-06
// License:     MIT
// ============================================================================

package logging

import (
	"io"
	"os"

	mdwlog "github.com/msto63/pl2/foundation/core/log"
	mdwstringx "github.com/msto63/pl2/foundation/utils/stringx"
)

// LoggerConfig holds configuration for creating loggers
type LoggerConfig struct {
	// Service name
	ServiceName string

	// Log level (trace, debug, info, warn, error, audit)
	Level string

	// Output format: "json", "text" or "console" (default: console)
	Format string

	// Output writer (default: stderr)
	Output io.Writer

	// Additional outputs (besides Output)
	AdditionalOutputs []io.Writer
}

// DefaultLoggerConfig returns a default configuration
func DefaultLoggerConfig(serviceName string) LoggerConfig {
	return LoggerConfig{
		ServiceName: serviceName,
		Level:       "warn",
		Format:      "console",
	}
}

// NewLogger creates a new foundation logger. Unknown levels fall back to
// info and unknown formats to console.
func NewLogger(cfg LoggerConfig) *mdwlog.Logger {
	level := parseLevel(cfg.Level)

	var output io.Writer = os.Stderr
	if cfg.Output != nil {
		output = cfg.Output
	}
	if len(cfg.AdditionalOutputs) > 0 {
		writers := append([]io.Writer{output}, cfg.AdditionalOutputs...)
		output = io.MultiWriter(writers...)
	}

	format, err := mdwlog.ParseFormat(cfg.Format)
	if err != nil {
		format = mdwlog.FormatConsole
	}

	return mdwlog.NewWithConfig(mdwlog.Config{
		Level:  level,
		Format: format,
		Output: output,
		Name:   cfg.ServiceName,
	})
}

// NewCLILogger creates the logger of a command line tool writing to out.
// Blank level and format keep the defaults; verbose forces debug.
func NewCLILogger(name, level, format string, out io.Writer, verbose bool) *mdwlog.Logger {
	cfg := DefaultLoggerConfig(name)
	cfg.Level = mdwstringx.FirstNonBlank(level, cfg.Level)
	cfg.Format = mdwstringx.FirstNonBlank(format, cfg.Format)
	cfg.Output = out
	if verbose {
		cfg.Level = "debug"
	}
	return NewLogger(cfg)
}

// parseLevel converts a string level to mdwlog.Level
func parseLevel(level string) mdwlog.Level {
	parsed, err := mdwlog.ParseLevel(level)
	if err != nil {
		return mdwlog.LevelInfo
	}
	return parsed
}

// KV converts key-value pairs to mdwlog.Fields. A trailing key without
// value and non-string keys are dropped.
func KV(keysAndValues ...interface{}) mdwlog.Fields {
	if len(keysAndValues) == 0 {
		return nil
	}

	fields := make(mdwlog.Fields)
	for i := 0; i < len(keysAndValues)-1; i += 2 {
		key, ok := keysAndValues[i].(string)
		if !ok {
			continue
		}
		fields[key] = keysAndValues[i+1]
	}
	return fields
}
