// SPDX-License-Identifier: MPL-2.0

package vslicelib

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

const (
	// ScriptExt is the standard Haxe source extension.
	ScriptExt = ".hx"
	// LegacyScriptExt is the V-Slice scripted-class extension; it is
	// rewritten to ScriptExt when libraries are extracted.
	LegacyScriptExt = ".hxc"

	sourceRootDepth = 3
)

// knownSourceFolders are folder names stripped from archive entries after
// the archive's top-level directory.
var knownSourceFolders = []string{"source", "src", "Source", "Src"}

// IsScriptSource reports whether name has a Haxe script extension.
func IsScriptSource(name string) bool {
	return strings.HasSuffix(name, ScriptExt) || strings.HasSuffix(name, LegacyScriptExt)
}

// ScriptEntryPath maps a zip entry name to the slash-separated path it is
// extracted to inside the library directory. The archive's first path
// segment is dropped (names without a slash are kept whole), then one
// leading known source folder. Only script sources are kept and .hxc is
// rewritten to .hx. ok is false when the entry must be skipped.
//
//	mylib-1.0/source/Foo.hxc      -> Foo.hx
//	mylib-1.0/flixel/FlxG.hx      -> flixel/FlxG.hx
//	mylib-1.0/README.md           -> skipped
func ScriptEntryPath(entryName string) (rel string, ok bool) {
	name := strings.ReplaceAll(entryName, `\`, "/")
	if strings.HasSuffix(name, "/") {
		return "", false
	}

	if _, after, found := strings.Cut(name, "/"); found {
		name = after
	}
	for _, folder := range knownSourceFolders {
		if after, found := strings.CutPrefix(name, folder+"/"); found {
			name = after
			break
		}
	}

	if name == "" || !IsScriptSource(name) {
		return "", false
	}
	if strings.HasSuffix(name, LegacyScriptExt) {
		name = strings.TrimSuffix(name, LegacyScriptExt) + ScriptExt
	}
	return name, true
}

// FindSourceRoot returns the directory inside libDir that holds the
// library's script sources. Candidates are checked in order: a folder named
// like the library itself, then source, src, Source, Src and flixel; the first
// that is a directory with a .hx file at most three levels down wins.
// libDir itself is returned when no candidate matches.
func FindSourceRoot(libDir string) string {
	candidates := append([]string{filepath.Base(libDir)}, knownSourceFolders...)
	candidates = append(candidates, "flixel")

	for _, candidate := range candidates {
		dir := filepath.Join(libDir, candidate)
		info, err := os.Stat(dir)
		if err != nil || !info.IsDir() {
			continue
		}
		if containsScript(dir, sourceRootDepth) {
			return dir
		}
	}
	return libDir
}

// containsScript reports whether root has a .hx file within maxDepth
// levels (files directly in root are at depth 1). Legacy .hxc files do not
// mark a source root.
func containsScript(root string, maxDepth int) bool {
	found := false
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil //nolint:nilerr // unreadable entries are skipped
		}
		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			return nil //nolint:nilerr // unrelatable paths are skipped
		}
		depth := 0
		if rel != "." {
			depth = strings.Count(filepath.ToSlash(rel), "/") + 1
		}
		if d.IsDir() {
			if depth >= maxDepth {
				return filepath.SkipDir
			}
			return nil
		}
		if filepath.Ext(d.Name()) == ScriptExt {
			found = true
			return filepath.SkipAll
		}
		return nil
	})
	return found
}
