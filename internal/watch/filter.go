// SPDX-License-Identifier: MPL-2.0

package watch

import (
	"fmt"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// builtinIgnores never trigger a rebuild: VCS and IDE metadata, editor
// swap files and Finder droppings.
var builtinIgnores = []string{
	"**/.git/**",
	"**/.idea/**",
	"**/.vscode/**",
	"**/*.swp",
	"**/*.swo",
	"**/*~",
	"**/*.tmp",
	"**/.DS_Store",
}

// DefaultIgnores returns a copy of the patterns every Watcher ignores.
func DefaultIgnores() []string {
	return slices.Clone(builtinIgnores)
}

// filter decides which slash-separated, BaseDir-relative paths matter.
type filter struct {
	ignores  []string
	patterns []string
	skip     func(rel string, isDir bool) bool
}

func newFilter(cfg Config) filter {
	return filter{
		ignores:  slices.Concat(builtinIgnores, cfg.Ignore),
		patterns: cfg.Patterns,
		skip:     cfg.Skip,
	}
}

// excluded is true for ignored paths. Directories are also tested with a
// trailing slash so "build/**" prunes the build directory itself.
func (f filter) excluded(rel string, isDir bool) bool {
	if matchesAny(f.ignores, rel) {
		return true
	}
	if isDir && matchesAny(f.ignores, rel+"/") {
		return true
	}
	return f.skip != nil && f.skip(rel, isDir)
}

// selects is true when rel matches a watch pattern, or when there are none.
func (f filter) selects(rel string) bool {
	return len(f.patterns) == 0 || matchesAny(f.patterns, rel)
}

func matchesAny(patterns []string, rel string) bool {
	return slices.ContainsFunc(patterns, func(pat string) bool {
		ok, err := doublestar.Match(pat, rel)
		return err == nil && ok
	})
}

func checkPatterns(kind string, patterns []string) []error {
	var errs []error
	for _, pat := range patterns {
		switch {
		case strings.TrimSpace(pat) == "":
			errs = append(errs, fmt.Errorf("invalid %s pattern %q: must not be empty", kind, pat))
		case !doublestar.ValidatePattern(pat):
			errs = append(errs, fmt.Errorf("invalid %s pattern %q: %w", kind, pat, doublestar.ErrBadPattern))
		}
	}
	return errs
}
