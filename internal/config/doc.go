// SPDX-License-Identifier: MPL-2.0

// Package config loads the vslice user configuration.
//
// Values come from three layers, later ones winning: built-in defaults, a
// config.cue file checked against the embedded config_schema.cue, and
// VSLICE_ environment variables such as VSLICE_CACHE_DIR or
// VSLICE_HTTP_TIMEOUT. The file is looked up in the platform config
// directory first (XDG on Linux, Application Support on macOS, %APPDATA%
// on Windows) and then in the project directory.
package config
