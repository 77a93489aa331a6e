// SPDX-License-Identifier: MPL-2.0

package cueutil

import (
	"fmt"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
)

// ParseResult contains the result of a successful CUE parse operation.
type ParseResult[T any] struct {
	// Value is the decoded Go struct.
	Value *T

	// Unified is the unified CUE value, for callers that need to inspect
	// fields the Go struct does not carry.
	Unified cue.Value
}

// ParseAndDecode compiles schema, unifies data with the definition at
// schemaPath (e.g. "#Config"), validates the result and decodes it into T.
// Errors are formatted with JSON-path prefixes by FormatError.
func ParseAndDecode[T any](schema, data []byte, schemaPath string, opts ...Option) (*ParseResult[T], error) {
	settings := newDecodeSettings(opts)
	filename := settings.source

	if err := CheckFileSize(data, settings.sizeLimit, filename); err != nil {
		return nil, err
	}

	unified, err := Unify(schema, data, schemaPath, filename)
	if err != nil {
		return nil, err
	}

	if settings.allConcrete {
		err = unified.Validate(cue.Concrete(true))
	} else {
		err = unified.Validate()
	}
	if err != nil {
		return nil, FormatError(err, filename)
	}

	var result T
	if err := unified.Decode(&result); err != nil {
		return nil, FormatError(err, filename)
	}

	return &ParseResult[T]{
		Value:   &result,
		Unified: unified,
	}, nil
}

// ParseAndDecodeString is ParseAndDecode for schemas embedded as strings.
func ParseAndDecodeString[T any](schema string, data []byte, schemaPath string, opts ...Option) (*ParseResult[T], error) {
	return ParseAndDecode[T]([]byte(schema), data, schemaPath, opts...)
}

// Unify compiles schema and data in a fresh context and returns data unified
// with the schema definition at schemaPath. The result is not validated.
func Unify(schema, data []byte, schemaPath, filename string) (cue.Value, error) {
	ctx := cuecontext.New()

	schemaValue := ctx.CompileBytes(schema)
	if schemaValue.Err() != nil {
		return cue.Value{}, fmt.Errorf("internal error: failed to compile schema: %w", schemaValue.Err())
	}

	userValue := ctx.CompileBytes(data, cue.Filename(filename))
	if userValue.Err() != nil {
		return cue.Value{}, FormatError(userValue.Err(), filename)
	}

	schemaRoot := schemaValue.LookupPath(cue.ParsePath(schemaPath))
	if schemaRoot.Err() != nil {
		return cue.Value{}, fmt.Errorf("internal error: schema definition %s not found: %w", schemaPath, schemaRoot.Err())
	}

	return schemaRoot.Unify(userValue), nil
}
