// SPDX-License-Identifier: MPL-2.0

// Package testutil has the fixtures shared by vslice tests: project trees
// written from a map (WriteFiles), library archives built in memory
// (ZipBytes, ZipEntry, ReadZipNames) and a home directory override for the
// cache and config lookups (SetHomeDir).
package testutil
