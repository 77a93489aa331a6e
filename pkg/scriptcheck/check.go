// SPDX-License-Identifier: MPL-2.0

package scriptcheck

import (
	"bytes"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// ScriptExt is the extension of scripted classes. Matching is case-insensitive.
const ScriptExt = ".hxc"

type (
	// Finding is one blacklisted reference in a script.
	Finding struct {
		File   string
		Line   int
		Col    int
		Import bool
		Violation
	}

	// Checker finds blacklisted references in scripts.
	Checker struct {
		blacklist *Blacklist
	}
)

// String formats f as "file:line:col: message".
func (f Finding) String() string {
	return fmt.Sprintf("%s:%d:%d: %s", f.File, f.Line, f.Col, f.Message())
}

// NewChecker creates a Checker. A nil blacklist selects DefaultBlacklist.
func NewChecker(blacklist *Blacklist) *Checker {
	if blacklist == nil {
		blacklist = DefaultBlacklist()
	}
	return &Checker{blacklist: blacklist}
}

// IsScript reports whether name is a scripted class file.
func IsScript(name string) bool {
	return strings.HasSuffix(strings.ToLower(name), ScriptExt)
}

// CheckSource returns the findings for src in source order. file is only
// used to label the findings.
func (c *Checker) CheckSource(file string, src []byte) []Finding {
	var findings []Finding
	for _, ref := range scanReferences(src) {
		v, ok := c.blacklist.CheckChain(ref.chain)
		if !ok {
			continue
		}
		findings = append(findings, Finding{
			File:      file,
			Line:      ref.line,
			Col:       ref.col,
			Import:    ref.isImport,
			Violation: v,
		})
	}
	return findings
}

// CheckFile reads and checks the script at path.
func (c *Checker) CheckFile(path string) ([]Finding, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read script: %w", err)
	}
	return c.CheckSource(path, src), nil
}

// Fix removes every import or using statement of a blacklisted path from
// src. Lines left blank by a removal are dropped. It returns the new source
// and the number of statements removed. References in code are left alone.
func (c *Checker) Fix(src []byte) ([]byte, int) {
	var spans [][2]int
	for _, ref := range scanReferences(src) {
		if !ref.isImport {
			continue
		}
		if _, ok := c.blacklist.CheckChain(ref.chain); ok {
			spans = append(spans, [2]int{ref.stmtStart, ref.stmtEnd})
		}
	}
	if len(spans) == 0 {
		return src, 0
	}

	out := slices.Clone(src)
	for i := len(spans) - 1; i >= 0; i-- {
		start, end := spans[i][0], spans[i][1]

		lineStart := bytes.LastIndexByte(out[:start], '\n') + 1
		lineEnd := len(out)
		if j := bytes.IndexByte(out[end:], '\n'); j >= 0 {
			lineEnd = end + j
		}
		if len(bytes.TrimSpace(out[lineStart:start])) == 0 && len(bytes.TrimSpace(out[end:lineEnd])) == 0 {
			start = lineStart
			end = min(lineEnd+1, len(out))
		}
		out = append(out[:start], out[end:]...)
	}
	return out, len(spans)
}

// FixFile applies Fix to the script at path, rewriting it only when
// something was removed.
func (c *Checker) FixFile(path string) (int, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("read script: %w", err)
	}
	fixed, n := c.Fix(src)
	if n == 0 {
		return 0, nil
	}
	info, err := os.Stat(path)
	if err != nil {
		return 0, err
	}
	if err := os.WriteFile(path, fixed, info.Mode().Perm()); err != nil {
		return 0, fmt.Errorf("write script: %w", err)
	}
	return n, nil
}

// CollectScripts expands paths into the sorted list of script files they
// name. Directories are walked recursively, skipping hidden directories;
// files are kept when IsScript accepts them.
func CollectScripts(paths []string) ([]string, error) {
	seen := make(map[string]bool)
	var scripts []string
	add := func(p string) {
		if !seen[p] {
			seen[p] = true
			scripts = append(scripts, p)
		}
	}

	for _, root := range paths {
		info, err := os.Stat(root)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			if IsScript(root) {
				add(root)
			}
			continue
		}
		err = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
			if walkErr != nil {
				return walkErr
			}
			if d.IsDir() {
				if path != root && strings.HasPrefix(d.Name(), ".") {
					return filepath.SkipDir
				}
				return nil
			}
			if IsScript(d.Name()) {
				add(path)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walk %s: %w", root, err)
		}
	}
	slices.Sort(scripts)
	return scripts, nil
}
