// SPDX-License-Identifier: MPL-2.0

// Package scriptcheck lints V-Slice mod projects.
//
// Scripted classes (.hxc files) run in a sandbox that refuses a fixed set of
// classes and packages. Checker finds references to them in imports and in
// code, and Fix removes the offending import lines. CheckMeta validates
// _polymod_meta.json against a CUE schema and checks that its versions are
// semantic versions.
package scriptcheck
