// SPDX-License-Identifier: MPL-2.0

// Package logging builds the slog logger used across vslice, rendered by
// charmbracelet/log on the terminal.
package logging

import (
	"io"
	"log/slog"

	"github.com/charmbracelet/log"
)

// Options configures New.
type Options struct {
	// Verbose lowers the level to debug and adds caller information.
	Verbose bool
	// Prefix is printed before every line. Empty means none.
	Prefix string
}

// New returns a slog.Logger writing styled lines to w.
func New(w io.Writer, opts Options) *slog.Logger {
	level := log.InfoLevel
	if opts.Verbose {
		level = log.DebugLevel
	}

	handler := log.NewWithOptions(w, log.Options{
		Level:        level,
		Prefix:       opts.Prefix,
		ReportCaller: opts.Verbose,
	})
	return slog.New(handler)
}

// Setup builds a logger with New and installs it as the slog default.
func Setup(w io.Writer, opts Options) *slog.Logger {
	logger := New(w, opts)
	slog.SetDefault(logger)
	return logger
}
