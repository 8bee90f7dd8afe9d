// ============================================================================
// mcalc - Integer Expression Calculator
// ============================================================================
//
// Package:     logging
// Description: Factory functions for creating loggers from configuration
// Author:      msto63
// Created:     2026-10-19
// License:     MIT
// ============================================================================

package logging

import (
	"io"
	"os"
	"path/filepath"

	mdwerror "github.com/msto63/mcalc/foundation/core/error"
	mdwlog "github.com/msto63/mcalc/foundation/core/log"
	"github.com/msto63/mcalc/pkg/core/config"
)

// LoggerConfig holds configuration for creating loggers
type LoggerConfig struct {
	// Application name
	Name string

	// Log level (trace, debug, info, warn, error, fatal)
	Level string

	// Output format (json, text, console, logfmt)
	Format string

	// Verbose forces debug level and adds caller information
	Verbose bool

	// Output receives log entries when File is empty (default: stderr)
	Output io.Writer

	// File receives log entries instead of Output when set (appended)
	File string

	// Additional outputs besides Output or File
	AdditionalOutputs []io.Writer
}

// DefaultLoggerConfig returns a default configuration
func DefaultLoggerConfig(name string) LoggerConfig {
	return LoggerConfig{
		Name:   name,
		Level:  "warn",
		Format: "console",
	}
}

// FromConfig builds a LoggerConfig from the general configuration section
func FromConfig(general config.GeneralConfig, verbose bool, output io.Writer) LoggerConfig {
	return LoggerConfig{
		Name:    general.Name,
		Level:   general.LogLevel,
		Format:  general.LogFormat,
		Verbose: verbose,
		Output:  output,
		File:    general.LogFile,
	}
}

// NewLogger creates a logger. The returned closer releases the log file and
// must be called when the logger is no longer used.
func NewLogger(cfg LoggerConfig) (*mdwlog.Logger, io.Closer, error) {
	level, err := mdwlog.ParseLevel(cfg.Level)
	if err != nil && cfg.Level != "" {
		return nil, nil, mdwerror.Wrap(err, "invalid log level").
			WithCode(mdwerror.CodeInvalidConfig).
			WithOperation("logging.NewLogger")
	}
	if cfg.Verbose && level > mdwlog.LevelDebug {
		level = mdwlog.LevelDebug
	}

	format, err := mdwlog.ParseFormat(cfg.Format)
	if err != nil && cfg.Format != "" {
		return nil, nil, mdwerror.Wrap(err, "invalid log format").
			WithCode(mdwerror.CodeInvalidConfig).
			WithOperation("logging.NewLogger")
	}

	// Build output writer
	var output io.Writer = os.Stderr
	if cfg.Output != nil {
		output = cfg.Output
	}

	var closer io.Closer = nopCloser{}
	if cfg.File != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.File), 0755); err != nil {
			return nil, nil, mdwerror.Wrap(err, "failed to create log directory").
				WithCode(mdwerror.CodeConfigError).
				WithOperation("logging.NewLogger").
				WithDetail("path", cfg.File)
		}
		f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, nil, mdwerror.Wrap(err, "failed to open log file").
				WithCode(mdwerror.CodeConfigError).
				WithOperation("logging.NewLogger").
				WithDetail("path", cfg.File)
		}
		output = f
		closer = f
	}

	// Add additional outputs if specified
	if len(cfg.AdditionalOutputs) > 0 {
		writers := append([]io.Writer{output}, cfg.AdditionalOutputs...)
		output = io.MultiWriter(writers...)
	}

	logger := mdwlog.NewWithConfig(mdwlog.Config{
		Level:  level,
		Format: format,
		Output: output,
		Name:   cfg.Name,
	})
	if cfg.Verbose {
		logger = logger.WithCaller(0)
	}

	return logger, closer, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
