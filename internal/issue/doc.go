// SPDX-License-Identifier: MPL-2.0

// Package issue holds the errors vslice shows to users: ActionableError for
// a single failure with hints, and a catalog of markdown help pages for the
// failure classes that come up again and again (missing library config,
// failed downloads, blacklisted imports).
package issue
