// SPDX-License-Identifier: MPL-2.0

package cueutil

import (
	"fmt"
	"strings"

	"cuelang.org/go/cue/errors"
)

// ValidationError is a single CUE problem tied to a field.
type ValidationError struct {
	// FilePath is the file being validated.
	FilePath string

	// CUEPath is the JSON path to the invalid value (e.g., "contributors[0].name").
	CUEPath string

	// Message is the validation error message.
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.CUEPath != "" {
		return fmt.Sprintf("%s: %s: %s", e.FilePath, e.CUEPath, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.FilePath, e.Message)
}

// Problems splits a CUE error into one ValidationError per reported issue.
// Errors that did not come from CUE yield a single entry without a path.
func Problems(err error, filePath string) []ValidationError {
	if err == nil {
		return nil
	}

	cueErrors := errors.Errors(err)
	if len(cueErrors) == 0 {
		return []ValidationError{{FilePath: filePath, Message: err.Error()}}
	}

	problems := make([]ValidationError, 0, len(cueErrors))
	for _, e := range cueErrors {
		pathStr := formatPath(errors.Path(e))
		msg := e.Error()

		// CUE sometimes repeats the path at the start of the message.
		if pathStr != "" && strings.HasPrefix(msg, pathStr) {
			msg = strings.TrimPrefix(msg, pathStr)
			msg = strings.TrimPrefix(msg, ":")
			msg = strings.TrimSpace(msg)
		}

		problems = append(problems, ValidationError{FilePath: filePath, CUEPath: pathStr, Message: msg})
	}
	return problems
}

// FormatError formats a CUE error with JSON path prefixes:
//
//	<file-path>: <json-path>: <message>
//
// e.g. "config.cue: http.timeout: conflicting values 10 and string".
func FormatError(err error, filePath string) error {
	if err == nil {
		return nil
	}

	if len(errors.Errors(err)) == 0 {
		return fmt.Errorf("%s: %w", filePath, err)
	}

	problems := Problems(err, filePath)
	lines := make([]string, 0, len(problems))
	for _, p := range problems {
		if p.CUEPath != "" {
			lines = append(lines, p.CUEPath+": "+p.Message)
		} else {
			lines = append(lines, p.Message)
		}
	}

	if len(lines) == 1 {
		return fmt.Errorf("%s: %s", filePath, lines[0])
	}
	return fmt.Errorf("%s: validation failed:\n  %s", filePath, strings.Join(lines, "\n  "))
}

// formatPath converts a CUE error path (["contributors", "0", "name"]) to
// JSON-path notation ("contributors[0].name"). Leading schema definition
// selectors such as "#PolymodMeta" are dropped.
func formatPath(path []string) string {
	for len(path) > 0 && strings.HasPrefix(path[0], "#") {
		path = path[1:]
	}

	var result strings.Builder
	for i, part := range path {
		if i > 0 && isIndex(part) {
			result.WriteString("[" + part + "]")
			continue
		}
		if i > 0 {
			result.WriteString(".")
		}
		result.WriteString(part)
	}
	return result.String()
}

func isIndex(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

// CheckFileSize returns an error when data is larger than maxSize bytes.
func CheckFileSize(data []byte, maxSize int64, filename string) error {
	if int64(len(data)) > maxSize {
		return fmt.Errorf("%s: file size %d bytes exceeds maximum %d bytes",
			filename, len(data), maxSize)
	}
	return nil
}
