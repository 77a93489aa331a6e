// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"bytes"
	"errors"
	"io"
	"path/filepath"
	"strings"
	"testing"

	"github.com/funkindev/vslice/internal/issue"
	"github.com/funkindev/vslice/pkg/types"
)

func TestGetVersionString(t *testing.T) {
	// Not parallel: subtests mutate package-level Version/Commit/BuildDate vars.

	t.Run("ldflags version takes priority", func(t *testing.T) {
		// Save and restore package-level vars.
		origVersion, origCommit, origBuildDate := Version, Commit, BuildDate
		t.Cleanup(func() {
			Version, Commit, BuildDate = origVersion, origCommit, origBuildDate
		})

		Version = "v1.2.3"
		Commit = "abc1234"
		BuildDate = "2025-06-15T10:00:00Z"

		got := getVersionString()
		want := "v1.2.3 (commit: abc1234, built: 2025-06-15T10:00:00Z)"
		if got != want {
			t.Errorf("getVersionString() = %q, want %q", got, want)
		}
	})

	t.Run("fallback to dev when no build info", func(t *testing.T) {
		origVersion, origCommit, origBuildDate := Version, Commit, BuildDate
		t.Cleanup(func() {
			Version, Commit, BuildDate = origVersion, origCommit, origBuildDate
		})

		// In test binaries, debug.ReadBuildInfo() returns Main.Version == "(devel)",
		// so the function should fall through to the final fallback.
		Version = "dev"
		Commit = "unknown"
		BuildDate = "unknown"

		got := getVersionString()
		want := "dev (built from source)"
		if got != want {
			t.Errorf("getVersionString() = %q, want %q", got, want)
		}
	})

	// Note: The middle path (debug.ReadBuildInfo with a real module version) is
	// exercised by go-install binaries. It cannot be unit-tested because test
	// binaries always report Main.Version == "(devel)". The path is verified
	// manually via: go install ./... && $(go env GOBIN)/vslice --version
}

func TestNewRootCommand_Subcommands(t *testing.T) {
	t.Parallel()

	app, err := NewApp(Dependencies{Stdout: io.Discard, Stderr: io.Discard})
	if err != nil {
		t.Fatalf("NewApp() error = %v", err)
	}
	root := NewRootCommand(app)

	for _, path := range [][]string{
		{"libs", "update"},
		{"libs", "clear"},
		{"libs", "prune"},
		{"libs", "list"},
		{"libs", "roots"},
		{"build"},
		{"init"},
		{"new"},
		{"check"},
		{"schema", "match"},
		{"schema", "associations"},
		{"assets"},
		{"config", "show"},
		{"config", "init"},
		{"config", "path"},
	} {
		found, _, err := root.Find(path)
		if err != nil {
			t.Errorf("Find(%v) error = %v", path, err)
			continue
		}
		if found.Name() != path[len(path)-1] {
			t.Errorf("Find(%v) = %q", path, found.Name())
		}
		if found.RunE == nil {
			t.Errorf("%v has no RunE", path)
		}
	}

	for _, name := range []string{"verbose", "config", "project"} {
		if root.PersistentFlags().Lookup(name) == nil {
			t.Errorf("missing persistent flag --%s", name)
		}
	}
}

func TestDisplayPath(t *testing.T) {
	t.Parallel()

	project := t.TempDir()
	outside := filepath.Join(filepath.Dir(project), "other.hxc")

	tests := []struct {
		path string
		want string
	}{
		{filepath.Join(project, "scripts", "A.hxc"), "scripts/A.hxc"},
		{outside, outside},
	}
	for _, tt := range tests {
		if got := displayPath(project, tt.path); got != tt.want {
			t.Errorf("displayPath(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

func TestResolveProjectDir(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	got, err := resolveProjectDir(dir)
	if err != nil {
		t.Fatalf("resolveProjectDir() error = %v", err)
	}
	if got != dir {
		t.Errorf("resolveProjectDir() = %q, want %q", got, dir)
	}

	_, err = resolveProjectDir(filepath.Join(dir, "missing"))
	var ae *issue.ActionableError
	if !errors.As(err, &ae) {
		t.Fatalf("resolveProjectDir(missing) error = %v, want ActionableError", err)
	}
	if ae.Issue != issue.ProjectNotFoundId {
		t.Errorf("Issue = %d, want %d", ae.Issue, issue.ProjectNotFoundId)
	}
}

func TestReportError(t *testing.T) {
	t.Parallel()

	var stderr bytes.Buffer
	app, err := NewApp(Dependencies{Stdout: io.Discard, Stderr: &stderr})
	if err != nil {
		t.Fatalf("NewApp() error = %v", err)
	}

	if got := app.reportError(nil, false); got != nil {
		t.Errorf("reportError(nil) = %v, want nil", got)
	}

	findings := &ExitError{Code: types.ExitFindings, Err: errors.New("2 problem(s) found")}
	if got := app.reportError(findings, false); got != findings {
		t.Errorf("reportError(ExitError) = %v, want it unchanged", got)
	}

	actionable := issue.NewErrorContext().
		WithOperation("package mod").
		WithSuggestion("Check the output directory").
		Wrap(errors.New("disk full")).
		BuildError()
	got := app.reportError(actionable, false)

	var exitErr *ExitError
	if !errors.As(got, &exitErr) {
		t.Fatalf("reportError() = %T, want *ExitError", got)
	}
	if exitErr.Code != types.ExitFailure {
		t.Errorf("Code = %d, want %d", exitErr.Code, types.ExitFailure)
	}
	if !strings.Contains(stderr.String(), "Check the output directory") {
		t.Errorf("stderr = %q, want the suggestion", stderr.String())
	}
}

func TestExitError(t *testing.T) {
	t.Parallel()

	bare := &ExitError{Code: types.ExitFindings}
	if bare.Error() != "exit status 2" {
		t.Errorf("Error() = %q, want %q", bare.Error(), "exit status 2")
	}

	inner := errors.New("boom")
	wrapped := &ExitError{Code: types.ExitFailure, Err: inner}
	if wrapped.Error() != "boom" {
		t.Errorf("Error() = %q, want %q", wrapped.Error(), "boom")
	}
	if !errors.Is(wrapped, inner) {
		t.Error("errors.Is should find the wrapped error")
	}
}
