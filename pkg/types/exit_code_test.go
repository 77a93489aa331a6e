// SPDX-License-Identifier: MPL-2.0

package types

import "testing"

func TestExitCode_Status(t *testing.T) {
	t.Parallel()

	tests := []struct {
		code ExitCode
		want int
	}{
		{ExitSuccess, 0},
		{ExitFailure, 1},
		{ExitFindings, 2},
		{255, 255},
		{256, 1},
		{-3, 1},
	}

	for _, tt := range tests {
		if got := tt.code.Status(); got != tt.want {
			t.Errorf("ExitCode(%d).Status() = %d, want %d", tt.code, got, tt.want)
		}
	}

	if got := ExitFindings.String(); got != "2" {
		t.Errorf("ExitFindings.String() = %q, want %q", got, "2")
	}
}
