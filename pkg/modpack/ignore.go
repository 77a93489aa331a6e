// SPDX-License-Identifier: MPL-2.0

package modpack

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strings"
)

// GitignoreFileName is read for additional ignore patterns.
const GitignoreFileName = ".gitignore"

// DefaultPatterns are always excluded from a packaged mod.
var DefaultPatterns = []string{
	".git/",
	".gitattributes",
	".gitignore",
	".idea/",
	"build/",
	"*.iml",
	".DS_Store",
	"*.log",
	"vslice-libraries.json",
}

type (
	// Matcher decides whether a project-relative path is excluded.
	//
	// Patterns come in three classes:
	//   - directory ("x/"): the path starts with "x/" or contains "/x/"
	//   - wildcard (contains '*'): '*' matches any run of characters,
	//     including '/', and the whole path or the base name must match
	//   - exact: the path or base name equals the pattern, or the path
	//     starts with "pattern/"
	Matcher struct {
		patterns []pattern
	}

	patternKind int

	pattern struct {
		kind  patternKind
		value string
		re    *regexp.Regexp
	}
)

const (
	patternExact patternKind = iota
	patternDir
	patternWildcard
)

// LoadIgnorePatterns returns DefaultPatterns, then extra, then the non-blank,
// non-comment lines of the project's .gitignore, in that order. A missing
// .gitignore is not an error.
func LoadIgnorePatterns(projectDir string, extra []string) ([]string, error) {
	patterns := make([]string, 0, len(DefaultPatterns)+len(extra))
	patterns = append(patterns, DefaultPatterns...)
	for _, p := range extra {
		if p = strings.TrimSpace(p); p != "" {
			patterns = append(patterns, p)
		}
	}

	f, err := os.Open(filepath.Join(projectDir, GitignoreFileName))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return patterns, nil
		}
		return nil, fmt.Errorf("read %s: %w", GitignoreFileName, err)
	}
	defer func() { _ = f.Close() }() // Read-only file; close error is non-critical

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		patterns = append(patterns, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", GitignoreFileName, err)
	}
	return patterns, nil
}

// NewMatcher compiles patterns. A leading '/' is dropped, so "/dist" and
// "dist" are equivalent.
func NewMatcher(patterns []string) *Matcher {
	m := &Matcher{patterns: make([]pattern, 0, len(patterns))}
	for _, raw := range patterns {
		value := strings.TrimPrefix(raw, "/")
		if value == "" {
			continue
		}
		switch {
		case strings.HasSuffix(value, "/"):
			m.patterns = append(m.patterns, pattern{kind: patternDir, value: strings.TrimSuffix(value, "/")})
		case strings.Contains(value, "*"):
			re, err := wildcardRegexp(value)
			if err != nil {
				m.patterns = append(m.patterns, pattern{kind: patternExact, value: value})
				continue
			}
			m.patterns = append(m.patterns, pattern{kind: patternWildcard, value: value, re: re})
		default:
			m.patterns = append(m.patterns, pattern{kind: patternExact, value: value})
		}
	}
	return m
}

// wildcardRegexp turns a wildcard pattern into an anchored expression. Only
// '.' is escaped and '*' becomes ".*"; other characters keep their regexp
// meaning, so classes such as "*.py[cod]" work.
func wildcardRegexp(value string) (*regexp.Regexp, error) {
	expr := strings.ReplaceAll(value, ".", `\.`)
	expr = strings.ReplaceAll(expr, "*", ".*")
	return regexp.Compile("^" + expr + "$")
}

// Match reports whether the file at relPath is excluded. relPath is
// project-relative; backslashes are treated as separators.
func (m *Matcher) Match(relPath string) bool {
	rel := strings.ReplaceAll(relPath, `\`, "/")
	base := path.Base(rel)

	for _, p := range m.patterns {
		switch p.kind {
		case patternDir:
			if strings.HasPrefix(rel, p.value+"/") || strings.Contains(rel, "/"+p.value+"/") {
				return true
			}
		case patternWildcard:
			if p.re.MatchString(rel) || p.re.MatchString(base) {
				return true
			}
		case patternExact:
			if rel == p.value || base == p.value || strings.HasPrefix(rel, p.value+"/") {
				return true
			}
		}
	}
	return false
}

// MatchDir reports whether every file below the directory relDir is
// excluded, so the directory can be skipped without being walked.
func (m *Matcher) MatchDir(relDir string) bool {
	rel := strings.ReplaceAll(relDir, `\`, "/")
	withSlash := rel + "/"

	for _, p := range m.patterns {
		switch p.kind {
		case patternDir:
			if strings.HasPrefix(withSlash, p.value+"/") || strings.Contains(withSlash, "/"+p.value+"/") {
				return true
			}
		case patternExact:
			if rel == p.value || strings.HasPrefix(rel, p.value+"/") {
				return true
			}
		case patternWildcard:
			// A wildcard can stop matching once more path follows, so it never
			// excludes a whole directory.
		}
	}
	return false
}
