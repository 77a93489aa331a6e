// SPDX-License-Identifier: MPL-2.0

// Package progress defines how long-running vslice tasks report progress.
//
// A task reports a completion fraction in [0, 1] and a one-line status text.
// The CLI renders these to the terminal; library code only sees the Reporter
// interface so it can be driven silently in tests.
package progress

import (
	"fmt"
	"io"
	"sync"
)

type (
	// Reporter receives progress updates from a running task.
	Reporter interface {
		// SetFraction records the completed share of the task, clamped to [0, 1].
		SetFraction(f float64)
		// SetText replaces the status line.
		SetText(text string)
	}

	nopReporter struct{}

	// Recorder is a Reporter that keeps every update in memory.
	Recorder struct {
		mu        sync.Mutex
		fractions []float64
		texts     []string
	}

	// LineReporter writes each status text as a line prefixed with the
	// current percentage.
	LineReporter struct {
		mu       sync.Mutex
		w        io.Writer
		fraction float64
		format   func(string) string
	}
)

// Nop returns a Reporter that discards all updates.
func Nop() Reporter { return nopReporter{} }

func (nopReporter) SetFraction(float64) {}

func (nopReporter) SetText(string) {}

// Clamp limits f to the [0, 1] range.
func Clamp(f float64) float64 {
	switch {
	case f < 0:
		return 0
	case f > 1:
		return 1
	default:
		return f
	}
}

// SetFraction implements Reporter.
func (r *Recorder) SetFraction(f float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.fractions = append(r.fractions, Clamp(f))
}

// SetText implements Reporter.
func (r *Recorder) SetText(text string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.texts = append(r.texts, text)
}

// Fractions returns a copy of the recorded fractions in order.
func (r *Recorder) Fractions() []float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]float64(nil), r.fractions...)
}

// Texts returns a copy of the recorded status texts in order.
func (r *Recorder) Texts() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.texts...)
}

// NewLineReporter creates a LineReporter. format styles the status text and
// may be nil.
func NewLineReporter(w io.Writer, format func(string) string) *LineReporter {
	if format == nil {
		format = func(s string) string { return s }
	}
	return &LineReporter{w: w, format: format}
}

// SetFraction implements Reporter.
func (l *LineReporter) SetFraction(f float64) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.fraction = Clamp(f)
}

// SetText implements Reporter.
func (l *LineReporter) SetText(text string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.w, "[%3.0f%%] %s\n", l.fraction*100, l.format(text))
}
