// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"path/filepath"
	"testing"

	"github.com/rogpeppe/go-internal/testscript"
)

// TestMain lets the testscript files run the vslice command in-process.
func TestMain(m *testing.M) {
	testscript.Main(m, map[string]func(){
		"vslice": Execute,
	})
}

// TestCLI runs all testscript tests in the testdata directory.
func TestCLI(t *testing.T) {
	t.Parallel()

	testscript.Run(t, testscript.Params{
		Dir: "testdata",
		Setup: func(env *testscript.Env) error {
			// Keep the cache and user config inside the script's work dir.
			env.Setenv("HOME", filepath.Join(env.WorkDir, "home"))
			env.Setenv("XDG_CONFIG_HOME", filepath.Join(env.WorkDir, "xdg"))
			env.Setenv("VSLICE_CACHE_DIR", filepath.Join(env.WorkDir, "cache"))
			return nil
		},
		// Continue running all tests even if one fails
		ContinueOnError: true,
	})
}
