// SPDX-License-Identifier: MPL-2.0

package vslicelib

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
)

const (
	// CacheDirEnv overrides the cache location.
	CacheDirEnv = "VSLICE_CACHE_DIR"
	// DefaultCacheDirName is the cache directory created under the home directory.
	DefaultCacheDirName = ".vslice_libs_cache"
)

// Cache is the shared on-disk library cache. It has no locking; concurrent
// invocations against the same directory are not coordinated.
type Cache struct {
	dir string
}

// DefaultCacheDir resolves the cache directory from getenv(CacheDirEnv),
// falling back to DefaultCacheDirName under the home directory.
func DefaultCacheDir(getenv func(string) string, userHomeDir func() (string, error)) (string, error) {
	if dir := getenv(CacheDirEnv); dir != "" {
		return dir, nil
	}
	home, err := userHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, DefaultCacheDirName), nil
}

// NewCache returns a Cache rooted at dir.
func NewCache(dir string) *Cache {
	return &Cache{dir: dir}
}

// Dir returns the cache root.
func (c *Cache) Dir() string { return c.dir }

// LibraryDir returns the directory a library is extracted to.
func (c *Cache) LibraryDir(name string) string {
	return filepath.Join(c.dir, name)
}

// Has reports whether the library directory exists.
func (c *Cache) Has(name string) bool {
	info, err := os.Stat(c.LibraryDir(name))
	return err == nil && info.IsDir()
}

// Ensure creates the cache root if needed.
func (c *Cache) Ensure() error {
	if err := os.MkdirAll(c.dir, 0o755); err != nil {
		return fmt.Errorf("create cache directory: %w", err)
	}
	return nil
}

// Clear deletes the whole cache directory.
func (c *Cache) Clear() error {
	if err := os.RemoveAll(c.dir); err != nil {
		return fmt.Errorf("clear cache: %w", err)
	}
	return nil
}

// List returns the sorted names of cached libraries. A missing cache is empty.
func (c *Cache) List() ([]string, error) {
	entries, err := os.ReadDir(c.dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("list cache: %w", err)
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() {
			names = append(names, e.Name())
		}
	}
	slices.Sort(names)
	return names, nil
}

// Prune removes cached libraries that cfg does not declare and returns
// their names.
func (c *Cache) Prune(cfg *LibraryConfig) ([]string, error) {
	names, err := c.List()
	if err != nil {
		return nil, err
	}

	var removed []string
	for _, name := range names {
		if _, declared := cfg.Library(name); declared {
			continue
		}
		if err := os.RemoveAll(c.LibraryDir(name)); err != nil {
			return removed, fmt.Errorf("remove %s: %w", name, err)
		}
		removed = append(removed, name)
	}
	return removed, nil
}
