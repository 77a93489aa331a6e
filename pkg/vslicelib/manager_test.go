// SPDX-License-Identifier: MPL-2.0

package vslicelib

import (
	"context"
	"errors"
	"log/slog"
	"path/filepath"
	"slices"
	"testing"

	"github.com/funkindev/vslice/internal/testutil"
	"github.com/funkindev/vslice/pkg/progress"
)

func newQuietManager(t *testing.T, rec progress.Reporter) *Manager {
	t.Helper()
	logger := slog.New(slog.DiscardHandler)
	return NewManager(NewCache(filepath.Join(t.TempDir(), "cache")),
		WithManagerLogger(logger),
		WithFetcher(NewFetcher(WithLogger(logger))),
		WithProgress(rec),
	)
}

func TestManagerUpdate_DownloadsThenSkips(t *testing.T) {
	t.Parallel()

	srv := newLibServer(t, map[string][]byte{
		"one":   testutil.ZipBytes(t, testutil.ZipEntry{Name: "one-1.0/source/One.hxc", Body: "class One {}"}),
		"two":   testutil.ZipBytes(t, testutil.ZipEntry{Name: "two-1.0/src/Two.hx", Body: "class Two {}"}),
		"three": testutil.ZipBytes(t, testutil.ZipEntry{Name: "three/Three.hx", Body: "class Three {}"}),
	})
	cfg := &LibraryConfig{Libraries: []Library{
		{Name: "one", URL: srv.url("one")},
		{Name: "two", URL: srv.url("two")},
		{Name: "three", URL: srv.url("three")},
	}}

	rec := &progress.Recorder{}
	m := newQuietManager(t, rec)

	first, err := m.Update(context.Background(), cfg, UpdateOptions{})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if first.Downloaded != 3 || first.Skipped != 0 || first.Failed != 0 || first.Total != 3 {
		t.Errorf("first run = %+v, want 3 downloaded", first)
	}
	if got, want := first.Message(), "Downloaded 3 new libraries."; got != want {
		t.Errorf("Message() = %q, want %q", got, want)
	}
	if !first.NeedsSetup() {
		t.Error("NeedsSetup() = false after downloads")
	}

	wantTexts := []string{
		"Processing one...", "Downloaded one",
		"Processing two...", "Downloaded two",
		"Processing three...", "Downloaded three",
		"Merging libraries...",
	}
	if got := rec.Texts(); !slices.Equal(got, wantTexts) {
		t.Errorf("progress texts = %v, want %v", got, wantTexts)
	}
	wantFractions := []float64{0, 1.0 / 3, 2.0 / 3, 1}
	if got := rec.Fractions(); !slices.Equal(got, wantFractions) {
		t.Errorf("progress fractions = %v, want %v", got, wantFractions)
	}

	requests := srv.requests.Load()
	second, err := m.Update(context.Background(), cfg, UpdateOptions{})
	if err != nil {
		t.Fatalf("second Update() error = %v", err)
	}
	if second.Downloaded != 0 || second.Skipped != 3 {
		t.Errorf("second run = %+v, want 3 skipped", second)
	}
	if n := srv.requests.Load() - requests; n != 0 {
		t.Errorf("second run made %d requests, want 0", n)
	}
	if got := rec.Texts(); !slices.Contains(got, "one already exists") {
		t.Errorf("progress texts %v lack the skip message", got)
	}
	if got, want := second.Message(), "Skipped 3 existing. All 3 libraries are up to date."; got != want {
		t.Errorf("Message() = %q, want %q", got, want)
	}
	if second.NeedsSetup() {
		t.Error("NeedsSetup() = true with nothing downloaded")
	}
}

func TestManagerUpdate_FailureDoesNotStopSiblings(t *testing.T) {
	t.Parallel()

	srv := newLibServer(t, map[string][]byte{
		"good": testutil.ZipBytes(t, testutil.ZipEntry{Name: "good/src/Good.hx", Body: "class Good {}"}),
	})
	cfg := &LibraryConfig{Libraries: []Library{
		{Name: "broken", URL: srv.url("broken")},
		{Name: "good", URL: srv.url("good")},
	}}

	rec := &progress.Recorder{}
	m := newQuietManager(t, rec)
	summary, err := m.Update(context.Background(), cfg, UpdateOptions{})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if summary.Downloaded != 1 || summary.Failed != 1 {
		t.Errorf("summary = %+v, want 1 downloaded and 1 failed", summary)
	}
	if !summary.HasFailures() {
		t.Error("HasFailures() = false")
	}
	if !slices.Contains(rec.Texts(), "Failed to download broken") {
		t.Errorf("progress texts %v lack the failure message", rec.Texts())
	}
	if summary.Libraries[0].Status != StatusFailed || summary.Libraries[0].Err == nil {
		t.Errorf("Libraries[0] = %+v, want FAILED with error", summary.Libraries[0])
	}
	if m.Cache().Has("broken") {
		t.Error("failed library left a cache directory")
	}
}

func TestManagerUpdate_MergesAndClears(t *testing.T) {
	t.Parallel()

	srv := newLibServer(t, map[string][]byte{
		"core":   testutil.ZipBytes(t, testutil.ZipEntry{Name: "core-1.0/source/flixel/FlxG.hx", Body: "core"}),
		"addons": testutil.ZipBytes(t, testutil.ZipEntry{Name: "addons-1.0/flixel/addons/Extra.hx", Body: "extra"}),
	})
	cfg := &LibraryConfig{
		Libraries: []Library{
			{Name: "core", URL: srv.url("core")},
			{Name: "addons", URL: srv.url("addons")},
		},
		MergeInto: []MergeRule{
			{Source: "addons", Target: "core"},
			{Source: "ghost", Target: "core"},
		},
	}

	rec := &progress.Recorder{}
	m := newQuietManager(t, rec)

	summary, err := m.Update(context.Background(), cfg, UpdateOptions{})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if summary.Merged != 1 || summary.MergeFailed != 1 {
		t.Errorf("summary = %+v, want 1 merged and 1 merge failure", summary)
	}
	if !errors.Is(summary.Merges[1].Err, ErrMergeMissing) {
		t.Errorf("Merges[1].Err = %v, want ErrMergeMissing", summary.Merges[1].Err)
	}
	if !slices.Contains(rec.Texts(), "Merging libraries...") {
		t.Errorf("progress texts %v lack the merge step", rec.Texts())
	}

	// addons extracts to addons/flixel/addons/Extra.hx, so its source root is
	// addons/flixel and the file lands in core's flixel folder.
	merged := filepath.Join(m.Cache().Dir(), "core", "flixel", "addons", "Extra.hx")
	if got := testutil.MustReadFile(t, merged); got != "extra" {
		t.Errorf("merged file = %q, want %q", got, "extra")
	}

	roots := m.SourceRoots(cfg)
	if want := []string{filepath.Join(m.Cache().Dir(), "core", "flixel")}; !slices.Equal(roots, want) {
		t.Errorf("SourceRoots() = %v, want %v", roots, want)
	}

	requests := srv.requests.Load()
	cleared, err := m.Update(context.Background(), cfg, UpdateOptions{ClearCache: true})
	if err != nil {
		t.Fatalf("Update(ClearCache) error = %v", err)
	}
	if !cleared.Cleared || cleared.Downloaded != 2 || !cleared.NeedsSetup() {
		t.Errorf("cleared run = %+v, want cache cleared and 2 downloads", cleared)
	}
	if n := srv.requests.Load() - requests; n != 2 {
		t.Errorf("cleared run made %d requests, want 2", n)
	}
}

func TestManagerUpdate_Canceled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	cfg := &LibraryConfig{Libraries: []Library{{Name: "a", URL: "https://example.com/a.zip"}}}
	_, err := newQuietManager(t, progress.Nop()).Update(ctx, cfg, UpdateOptions{})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Update() error = %v, want context.Canceled", err)
	}
}

func TestSummaryMessage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		summary Summary
		want    string
	}{
		{Summary{Downloaded: 2, Total: 2}, "Downloaded 2 new libraries."},
		{Summary{Downloaded: 1, Skipped: 2, Total: 3}, "Downloaded 1 new libraries. Skipped 2 existing."},
		{Summary{Skipped: 1, Failed: 1, Total: 2}, "Skipped 1 existing. Failed 1 libraries."},
		{Summary{Failed: 2, Total: 2}, "Failed 2 libraries."},
		{Summary{Skipped: 4, Total: 4}, "Skipped 4 existing. All 4 libraries are up to date."},
		{Summary{}, "All 0 libraries are up to date."},
	}

	for _, tt := range tests {
		if got := tt.summary.Message(); got != tt.want {
			t.Errorf("%+v.Message() = %q, want %q", tt.summary, got, tt.want)
		}
	}
}
