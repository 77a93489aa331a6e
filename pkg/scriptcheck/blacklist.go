// SPDX-License-Identifier: MPL-2.0

package scriptcheck

import (
	"fmt"
	"slices"
	"strings"
)

// DefaultBlacklistedClasses are classes scripts may not reference.
var DefaultBlacklistedClasses = []string{
	"Sys",
	"cpp.Lib",
	"haxe.Unserializer",
	"flixel.util.FlxSave",
	"funkin.mobile.util.AdMobUtil",
	"funkin.mobile.util.InAppPurchasesUtil",
	"funkin.mobile.util.InAppReviewUtil",
	"lime.system.CFFI",
	"lime.system.JNI",
	"lime.system.System",
	"openfl.Lib",
	"openfl.system.ApplicationDomain",
	"openfl.net.SharedObject",
	"openfl.desktop.NativeProcess",
}

// DefaultBlacklistedPackages are package prefixes scripts may not reference.
var DefaultBlacklistedPackages = []string{
	"extension.androidtools",
	"extension.haptics",
	"extension.admob",
	"extension.iapcore",
	"extension.iarcore",
	"extension.webviewcore",
	"funkin.api",
	"polymod",
	"hscript",
	"io.newgrounds",
	"sys",
	"funkin.util.macro",
	"funkin.external.android.CallbackUtil",
	"funkin.external.android.DataFolderUtil",
	"funkin.external.android.JNIUtil",
}

type (
	// Blacklist classifies dotted paths.
	Blacklist struct {
		classes  map[string]bool
		packages []string
	}

	// Violation describes why a path is refused.
	Violation struct {
		// Path is the dotted path that matched.
		Path string
		// Package is the matching package prefix, empty for a class match.
		Package string
	}
)

// NewBlacklist builds a Blacklist from exact class names and package prefixes.
func NewBlacklist(classes, packages []string) *Blacklist {
	b := &Blacklist{classes: make(map[string]bool, len(classes)), packages: slices.Clone(packages)}
	for _, c := range classes {
		b.classes[c] = true
	}
	return b
}

// DefaultBlacklist returns the sandbox's built-in blacklist.
func DefaultBlacklist() *Blacklist {
	return NewBlacklist(DefaultBlacklistedClasses, DefaultBlacklistedPackages)
}

// Check reports whether path is a blacklisted class, or equals or lies
// under a blacklisted package.
func (b *Blacklist) Check(path string) (Violation, bool) {
	if b.classes[path] {
		return Violation{Path: path}, true
	}
	for _, p := range b.packages {
		if path == p || strings.HasPrefix(path, p+".") {
			return Violation{Path: path, Package: p}, true
		}
	}
	return Violation{}, false
}

// CheckChain checks every prefix of a dotted chain, longest first, and
// returns the first violation. "Sys.command" is refused because of "Sys".
func (b *Blacklist) CheckChain(chain string) (Violation, bool) {
	for prefix := chain; prefix != ""; {
		if v, ok := b.Check(prefix); ok {
			return v, true
		}
		i := strings.LastIndexByte(prefix, '.')
		if i < 0 {
			break
		}
		prefix = prefix[:i]
	}
	return Violation{}, false
}

// Message returns the diagnostic text for v.
func (v Violation) Message() string {
	if v.Package == "" {
		return fmt.Sprintf("Usage of '%s' is blacklisted and is not allowed in scripts.", v.Path)
	}
	return fmt.Sprintf("Usage of '%s' belongs to blacklisted package '%s' and is not allowed in scripts.", v.Path, v.Package)
}
