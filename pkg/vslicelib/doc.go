// SPDX-License-Identifier: MPL-2.0

// Package vslicelib manages the script libraries a V-Slice mod depends on.
//
// Libraries are declared in vslice-libraries.json at the project root as an
// ordered name to URL map, plus an optional mergeInto map naming libraries
// whose sources are copied into another library's tree. Each library is
// downloaded once as a zip archive into a per-user cache directory (one
// subdirectory per library name); only Haxe script sources are kept and the
// legacy .hxc extension is rewritten to .hx.
//
// Presence of the library directory is the only freshness check: a library
// whose directory exists is never downloaded again until the cache entry is
// removed (Cache.Clear, Cache.Prune).
package vslicelib
