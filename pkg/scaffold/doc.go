// SPDX-License-Identifier: MPL-2.0

// Package scaffold creates new V-Slice mod projects and scripted classes
// from embedded templates.
package scaffold
