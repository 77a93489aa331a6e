// SPDX-License-Identifier: MPL-2.0

package vslicelib

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/funkindev/vslice/internal/testutil"
)

func TestDefaultCacheDir(t *testing.T) {
	t.Parallel()

	home := func() (string, error) { return "/home/dj", nil }

	got, err := DefaultCacheDir(func(string) string { return "" }, home)
	if err != nil {
		t.Fatalf("DefaultCacheDir() error = %v", err)
	}
	if want := filepath.Join("/home/dj", DefaultCacheDirName); got != want {
		t.Errorf("DefaultCacheDir() = %q, want %q", got, want)
	}

	env := func(key string) string {
		if key == CacheDirEnv {
			return "/tmp/libs"
		}
		return ""
	}
	if got, _ := DefaultCacheDir(env, home); got != "/tmp/libs" {
		t.Errorf("DefaultCacheDir() with env = %q, want %q", got, "/tmp/libs")
	}

	noHome := func() (string, error) { return "", errors.New("no home") }
	if _, err := DefaultCacheDir(func(string) string { return "" }, noHome); err == nil {
		t.Error("DefaultCacheDir() without home should fail")
	}
}

func TestCache_ListClearPrune(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "cache")
	cache := NewCache(dir)

	names, err := cache.List()
	if err != nil || len(names) != 0 {
		t.Fatalf("List() on missing cache = (%v, %v), want empty", names, err)
	}

	if err := cache.Ensure(); err != nil {
		t.Fatalf("Ensure() error = %v", err)
	}
	testutil.WriteFiles(t, dir, map[string]string{
		"zeta/A.hx":  "",
		"alpha/B.hx": "",
		"stale/C.hx": "",
		"file.txt":   "",
	})

	names, err = cache.List()
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if want := []string{"alpha", "stale", "zeta"}; !slices.Equal(names, want) {
		t.Errorf("List() = %v, want %v", names, want)
	}
	if !cache.Has("alpha") || cache.Has("file.txt") {
		t.Error("Has() reports the wrong entries")
	}

	cfg := &LibraryConfig{Libraries: []Library{{Name: "alpha"}, {Name: "zeta"}}}
	removed, err := cache.Prune(cfg)
	if err != nil {
		t.Fatalf("Prune() error = %v", err)
	}
	if want := []string{"stale"}; !slices.Equal(removed, want) {
		t.Errorf("Prune() = %v, want %v", removed, want)
	}
	if cache.Has("stale") {
		t.Error("stale library still cached after Prune()")
	}

	if err := cache.Clear(); err != nil {
		t.Fatalf("Clear() error = %v", err)
	}
	if _, err := os.Stat(dir); !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("cache dir still present after Clear() (stat error = %v)", err)
	}
}
