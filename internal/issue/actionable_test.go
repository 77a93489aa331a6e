// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"testing"
)

func TestActionableError_Error(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  *ActionableError
		want string
	}{
		{
			name: "operation only",
			err:  &ActionableError{Operation: "package mod"},
			want: "failed to package mod",
		},
		{
			name: "with resource",
			err:  &ActionableError{Operation: "load library configuration", Resource: "vslice-libraries.json"},
			want: "failed to load library configuration: vslice-libraries.json",
		},
		{
			name: "with cause",
			err:  &ActionableError{Operation: "download library", Cause: errors.New("HTTP 404")},
			want: "failed to download library: HTTP 404",
		},
		{
			name: "full",
			err: &ActionableError{
				Operation: "download library",
				Resource:  "flixel",
				Cause:     errors.New("HTTP 404"),
			},
			want: "failed to download library: flixel: HTTP 404",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestActionableError_Unwrap(t *testing.T) {
	t.Parallel()

	cause := fmt.Errorf("open vslice-libraries.json: %w", fs.ErrNotExist)
	err := NewErrorContext().WithOperation("load library configuration").Wrap(cause).BuildError()

	if !errors.Is(err, fs.ErrNotExist) {
		t.Error("errors.Is(err, fs.ErrNotExist) = false, want true")
	}
	var ae *ActionableError
	if !errors.As(err, &ae) {
		t.Fatal("errors.As(err, *ActionableError) = false, want true")
	}
	if ae.Unwrap() != cause {
		t.Errorf("Unwrap() = %v, want %v", ae.Unwrap(), cause)
	}
}

func TestActionableError_Format(t *testing.T) {
	t.Parallel()

	root := errors.New("permission denied")
	err := &ActionableError{
		Operation:   "write archive",
		Resource:    "build/My-Mod-1.0.0.zip",
		Suggestions: []string{"Check that build/ is writable", "Close the archive in other programs"},
		Cause:       fmt.Errorf("create zip: %w", root),
	}

	plain := err.Format(false)
	wantPlain := "failed to write archive: build/My-Mod-1.0.0.zip: create zip: permission denied\n" +
		"\n  • Check that build/ is writable" +
		"\n  • Close the archive in other programs"
	if plain != wantPlain {
		t.Errorf("Format(false) = %q, want %q", plain, wantPlain)
	}

	verbose := err.Format(true)
	if !strings.HasPrefix(verbose, wantPlain) {
		t.Errorf("Format(true) = %q, want prefix %q", verbose, wantPlain)
	}
	for _, want := range []string{"Error chain:", "1. create zip: permission denied", "2. permission denied"} {
		if !strings.Contains(verbose, want) {
			t.Errorf("Format(true) = %q, missing %q", verbose, want)
		}
	}

	bare := &ActionableError{Operation: "package mod"}
	if got := bare.Format(true); got != "failed to package mod" {
		t.Errorf("Format(true) without cause = %q, want %q", got, "failed to package mod")
	}
}

func TestActionableError_HasSuggestions(t *testing.T) {
	t.Parallel()

	if (&ActionableError{Operation: "x"}).HasSuggestions() {
		t.Error("HasSuggestions() = true, want false")
	}
	if !(&ActionableError{Operation: "x", Suggestions: []string{"y"}}).HasSuggestions() {
		t.Error("HasSuggestions() = false, want true")
	}
}

func TestErrorContext_Build(t *testing.T) {
	t.Parallel()

	cause := errors.New("boom")
	ae := NewErrorContext().
		WithOperation("merge library").
		WithResource("flixel-addons").
		WithSuggestion("Run 'vslice libs update' first").
		WithSuggestion("Check the mergeInto section").
		WithIssue(LibraryMergeFailedId).
		Wrap(cause).
		Build()

	if ae == nil {
		t.Fatal("Build() = nil")
	}
	if ae.Operation != "merge library" || ae.Resource != "flixel-addons" {
		t.Errorf("Build() = %+v", ae)
	}
	if len(ae.Suggestions) != 2 {
		t.Errorf("Suggestions = %v, want 2 entries", ae.Suggestions)
	}
	if ae.Issue != LibraryMergeFailedId {
		t.Errorf("Issue = %d, want %d", ae.Issue, LibraryMergeFailedId)
	}
	if ae.Cause != cause {
		t.Errorf("Cause = %v, want %v", ae.Cause, cause)
	}
}

func TestErrorContext_BuildWithoutOperation(t *testing.T) {
	t.Parallel()

	ctx := NewErrorContext().WithResource("x").Wrap(errors.New("y"))
	if ae := ctx.Build(); ae != nil {
		t.Errorf("Build() = %v, want nil", ae)
	}
	if err := ctx.BuildError(); err != nil {
		t.Errorf("BuildError() = %v, want nil interface", err)
	}
}

func TestErrorContext_BuildCopiesSuggestions(t *testing.T) {
	t.Parallel()

	ctx := NewErrorContext().WithOperation("package mod").WithSuggestion("first")
	first := ctx.Build()
	ctx.WithSuggestion("second")
	second := ctx.Build()

	if len(first.Suggestions) != 1 {
		t.Errorf("first Suggestions = %v, want 1 entry", first.Suggestions)
	}
	if len(second.Suggestions) != 2 {
		t.Errorf("second Suggestions = %v, want 2 entries", second.Suggestions)
	}
}
