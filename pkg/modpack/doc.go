// SPDX-License-Identifier: MPL-2.0

// Package modpack packages a V-Slice mod project into a distributable zip.
//
// The archive is named after the project's _polymod_meta.json and holds every
// project file that is not excluded by the default ignore patterns, the
// configured extra patterns or the project's .gitignore.
package modpack
