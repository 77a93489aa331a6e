// SPDX-License-Identifier: MPL-2.0

// Package platform provides cross-platform compatibility utilities.
//
// It centralizes GOOS name constants and the file-name rules that keep
// generated mod files (project folders, script classes) portable to Windows.
package platform
