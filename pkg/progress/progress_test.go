// SPDX-License-Identifier: MPL-2.0

package progress

import (
	"bytes"
	"slices"
	"testing"
)

func TestClamp(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in, want float64
	}{
		{-0.5, 0},
		{0, 0},
		{0.3, 0.3},
		{1, 1},
		{1.7, 1},
	}
	for _, tt := range tests {
		if got := Clamp(tt.in); got != tt.want {
			t.Errorf("Clamp(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestRecorder(t *testing.T) {
	t.Parallel()

	var r Recorder
	r.SetFraction(0.1)
	r.SetText("Preparing...")
	r.SetFraction(2)

	if got, want := r.Fractions(), []float64{0.1, 1}; !slices.Equal(got, want) {
		t.Errorf("Fractions() = %v, want %v", got, want)
	}
	if got, want := r.Texts(), []string{"Preparing..."}; !slices.Equal(got, want) {
		t.Errorf("Texts() = %v, want %v", got, want)
	}
}

func TestLineReporter(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	l := NewLineReporter(&buf, nil)
	l.SetFraction(0.5)
	l.SetText("Processing flixel-addons...")

	if got, want := buf.String(), "[ 50%] Processing flixel-addons...\n"; got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestNop(t *testing.T) {
	t.Parallel()

	r := Nop()
	r.SetFraction(0.5)
	r.SetText("ignored")
}
