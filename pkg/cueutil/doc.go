// SPDX-License-Identifier: MPL-2.0

// Package cueutil provides shared CUE parsing utilities.
//
// It wraps the compile, unify, validate and decode flow used by the user
// configuration loader and the Polymod metadata linter:
//
//  1. Compile the embedded schema
//  2. Compile user data and unify it with a schema definition
//  3. Validate and decode to a Go struct
//
// JSON is a subset of CUE, so the same flow validates JSON documents such
// as _polymod_meta.json.
//
// # Usage
//
//	//go:embed polymod_meta_schema.cue
//	var schemaBytes []byte
//
//	result, err := cueutil.ParseAndDecode[Meta](
//	    schemaBytes,
//	    data,
//	    "#PolymodMeta",
//	    cueutil.WithFilename("_polymod_meta.json"),
//	)
//	if err != nil {
//	    return nil, err // error text carries the JSON path of the bad field
//	}
//	return result.Value, nil
package cueutil
