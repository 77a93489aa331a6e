// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"errors"
	"fmt"
	"strings"
)

type (
	// ActionableError is a failure the user can do something about. It names
	// the step that failed, the file or directory involved, and what to try
	// next. Issue, when set, points at the catalog entry explaining the
	// failure class in more depth.
	//
	// Build one with NewErrorContext:
	//
	//	return issue.NewErrorContext().
	//		WithOperation("load library configuration").
	//		WithResource(path).
	//		WithSuggestion("Run 'vslice init .' to create one").
	//		WithIssue(issue.LibrariesConfigNotFoundId).
	//		Wrap(err).
	//		BuildError()
	ActionableError struct {
		// Operation is a verb phrase such as "package mod".
		Operation string
		// Resource is the path or library name involved. Optional.
		Resource string
		// Suggestions are printed as a bullet list under the message.
		Suggestions []string
		// Issue is the catalog entry for this failure class. Zero means none.
		Issue Id
		// Cause is the underlying error.
		Cause error
	}

	// ErrorContext accumulates the fields of an ActionableError.
	ErrorContext struct {
		err ActionableError
	}
)

// NewErrorContext starts an empty ErrorContext.
func NewErrorContext() *ErrorContext {
	return &ErrorContext{}
}

// Error returns "failed to <operation>[: <resource>][: <cause>]".
func (e *ActionableError) Error() string {
	parts := []string{"failed to " + e.Operation}
	if e.Resource != "" {
		parts = append(parts, e.Resource)
	}
	if e.Cause != nil {
		parts = append(parts, e.Cause.Error())
	}
	return strings.Join(parts, ": ")
}

// Unwrap returns the cause.
func (e *ActionableError) Unwrap() error {
	return e.Cause
}

// Format renders the message followed by one "  • " line per suggestion.
// With verbose set, the numbered cause chain is appended.
func (e *ActionableError) Format(verbose bool) string {
	var sb strings.Builder
	sb.WriteString(e.Error())

	if len(e.Suggestions) > 0 {
		sb.WriteString("\n")
		for _, s := range e.Suggestions {
			sb.WriteString("\n  • ")
			sb.WriteString(s)
		}
	}

	if verbose && e.Cause != nil {
		sb.WriteString("\n\nError chain:")
		for depth, err := 1, e.Cause; err != nil; depth, err = depth+1, errors.Unwrap(err) {
			fmt.Fprintf(&sb, "\n  %d. %s", depth, err)
		}
	}

	return sb.String()
}

// HasSuggestions reports whether any suggestion is attached.
func (e *ActionableError) HasSuggestions() bool {
	return len(e.Suggestions) > 0
}

// WithOperation sets the failed step, e.g. "download library".
func (c *ErrorContext) WithOperation(op string) *ErrorContext {
	c.err.Operation = op
	return c
}

// WithResource sets the path or name the step worked on.
func (c *ErrorContext) WithResource(res string) *ErrorContext {
	c.err.Resource = res
	return c
}

// WithSuggestion appends a hint. Call it once per hint.
func (c *ErrorContext) WithSuggestion(s string) *ErrorContext {
	c.err.Suggestions = append(c.err.Suggestions, s)
	return c
}

// WithIssue links the error to a catalog entry.
func (c *ErrorContext) WithIssue(id Id) *ErrorContext {
	c.err.Issue = id
	return c
}

// Wrap sets the cause.
func (c *ErrorContext) Wrap(err error) *ErrorContext {
	c.err.Cause = err
	return c
}

// Build returns the ActionableError, or nil when no operation was set.
func (c *ErrorContext) Build() *ActionableError {
	if c.err.Operation == "" {
		return nil
	}
	ae := c.err
	ae.Suggestions = append([]string(nil), c.err.Suggestions...)
	return &ae
}

// BuildError is Build typed as error, so that a missing operation yields
// a true nil interface.
func (c *ErrorContext) BuildError() error {
	if ae := c.Build(); ae != nil {
		return ae
	}
	return nil
}
