// SPDX-License-Identifier: MPL-2.0

package vslicelib

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// ErrMergeMissing is returned when a merge source or target is not in the cache.
var ErrMergeMissing = errors.New("merge source or target missing")

// Merge copies every script file under the source root of the source
// library into the same relative path under the source root of the target
// library, overwriting existing files. Files that exist only in the target
// are left alone. A destination that is the source file itself is skipped.
// The first copy failure aborts the merge; files already copied stay in
// place. It returns the number of files copied.
func Merge(cacheDir string, rule MergeRule) (int, error) {
	sourceDir := filepath.Join(cacheDir, rule.Source)
	targetDir := filepath.Join(cacheDir, rule.Target)

	for _, dir := range []string{sourceDir, targetDir} {
		info, err := os.Stat(dir)
		if err != nil || !info.IsDir() {
			return 0, fmt.Errorf("%w: %s into %s: %s is not in the cache", ErrMergeMissing, rule.Source, rule.Target, filepath.Base(dir))
		}
	}

	sourceRoot := FindSourceRoot(sourceDir)
	targetRoot := FindSourceRoot(targetDir)

	copied := 0
	err := filepath.WalkDir(sourceRoot, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() || !IsScriptSource(d.Name()) {
			return nil
		}

		rel, err := filepath.Rel(sourceRoot, path)
		if err != nil {
			return err
		}
		dest := filepath.Join(targetRoot, rel)
		if sameFile(path, dest) {
			return nil
		}
		if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
			return err
		}
		if err := copyFile(path, dest); err != nil {
			return fmt.Errorf("copy %s: %w", rel, err)
		}
		copied++
		return nil
	})
	if err != nil {
		return copied, fmt.Errorf("merge %s into %s: %w", rule.Source, rule.Target, err)
	}
	return copied, nil
}

func sameFile(a, b string) bool {
	ai, err := os.Stat(a)
	if err != nil {
		return false
	}
	bi, err := os.Stat(b)
	if err != nil {
		return false
	}
	return os.SameFile(ai, bi)
}

func copyFile(src, dst string) (err error) {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := in.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := out.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	_, err = io.Copy(out, in)
	return err
}
