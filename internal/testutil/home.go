// SPDX-License-Identifier: MPL-2.0

package testutil

import (
	"runtime"
	"testing"
)

// SetHomeDir makes os.UserHomeDir return dir for the rest of the test by
// setting HOME, or USERPROFILE on Windows. It uses t.Setenv, so the test
// must not call t.Parallel.
func SetHomeDir(t *testing.T, dir string) {
	t.Helper()

	key := "HOME"
	if runtime.GOOS == "windows" {
		key = "USERPROFILE"
	}
	t.Setenv(key, dir)
}
