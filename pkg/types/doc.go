// SPDX-License-Identifier: MPL-2.0

// Package types holds small value types shared by the vslice packages and CLI.
package types
