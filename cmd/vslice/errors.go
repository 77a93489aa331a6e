// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/funkindev/vslice/internal/issue"
	"github.com/funkindev/vslice/pkg/types"
)

type (
	// ExitError carries the process exit code out of a RunE handler.
	// fang prints Err; Execute turns Code into the exit status.
	ExitError struct {
		Code types.ExitCode
		Err  error
	}

	// catalogError tags err with the issue catalog entry that explains it.
	catalogError struct {
		err error
		id  issue.Id
	}
)

func (e *ExitError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("exit status %d", e.Code)
	}
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error { return e.Err }

func (e *catalogError) Error() string { return e.err.Error() }

func (e *catalogError) Unwrap() error { return e.err }

// withIssue returns err tagged with id. A nil err stays nil.
func withIssue(err error, id issue.Id) error {
	if err == nil {
		return nil
	}
	return &catalogError{err: err, id: id}
}

// issueOf finds the catalog entry attached anywhere in err's chain, or 0.
func issueOf(err error) issue.Id {
	var ce *catalogError
	if errors.As(err, &ce) {
		return ce.id
	}
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return ae.Issue
	}
	return 0
}

// renderIssue writes the markdown catalog entry for id to w.
func renderIssue(w io.Writer, id issue.Id) {
	entry := issue.Get(id)
	if entry == nil {
		return
	}
	rendered, err := entry.Render("dark")
	if err != nil {
		slog.Warn("failed to render issue catalog entry", "issue", id, "error", err)
		return
	}
	fmt.Fprint(w, rendered)
}

// describeError renders err for the terminal. Actionable errors list their
// suggestions, and the full cause chain when verbose.
func describeError(err error, verbose bool) string {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return ae.Format(verbose)
	}
	return err.Error()
}
