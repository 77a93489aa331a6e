// SPDX-License-Identifier: MPL-2.0

package types

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// ErrInvalidFilesystemPath is wrapped by FilesystemPath.Validate.
var ErrInvalidFilesystemPath = errors.New("invalid filesystem path")

// FilesystemPath is a path taken from flags or config files. It may be
// relative and may start with "~".
type FilesystemPath string

func (p FilesystemPath) String() string { return string(p) }

// Validate rejects blank paths.
func (p FilesystemPath) Validate() error {
	if strings.TrimSpace(string(p)) != "" {
		return nil
	}
	return fmt.Errorf("%w %q: must be non-empty", ErrInvalidFilesystemPath, string(p))
}

// ExpandHome resolves a leading "~" element against home. "~user" forms
// are left alone.
func (p FilesystemPath) ExpandHome(home string) FilesystemPath {
	s := string(p)
	if s == "~" {
		return FilesystemPath(home)
	}
	if rest, ok := strings.CutPrefix(s, "~/"); ok {
		return FilesystemPath(filepath.Join(home, rest))
	}
	if rest, ok := strings.CutPrefix(s, `~\`); ok {
		return FilesystemPath(filepath.Join(home, rest))
	}
	return p
}
