// SPDX-License-Identifier: MPL-2.0

package scriptcheck

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/mod/semver"

	"github.com/funkindev/vslice/pkg/cueutil"
)

// MetaFileName is the Polymod metadata file at the project root.
const MetaFileName = "_polymod_meta.json"

// ErrMetaNotFound is returned when the project has no _polymod_meta.json.
var ErrMetaNotFound = errors.New("polymod metadata not found")

//go:embed polymod_meta_schema.cue
var metaSchema []byte

type (
	// MetaIssue is one problem found in _polymod_meta.json.
	MetaIssue struct {
		File    string
		Field   string
		Message string
	}

	polymodMeta struct {
		Title      string `json:"title"`
		APIVersion string `json:"api_version"`
		ModVersion string `json:"mod_version"`
	}
)

// String formats the issue as "file: field: message".
func (i MetaIssue) String() string {
	if i.Field == "" {
		return fmt.Sprintf("%s: %s", i.File, i.Message)
	}
	return fmt.Sprintf("%s: %s: %s", i.File, i.Field, i.Message)
}

// CheckMeta validates the project's _polymod_meta.json. Schema violations
// and non-semantic versions are returned as issues; the error is reserved
// for a missing or unreadable file.
func CheckMeta(projectDir string) ([]MetaIssue, error) {
	path := filepath.Join(projectDir, MetaFileName)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrMetaNotFound, path)
		}
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return CheckMetaData(path, data), nil
}

// CheckMetaData validates metadata content. file labels the issues.
func CheckMetaData(file string, data []byte) []MetaIssue {
	result, err := cueutil.ParseAndDecode[polymodMeta](metaSchema, data, "#PolymodMeta", cueutil.WithFilename(file))
	if err != nil {
		var issues []MetaIssue
		for _, p := range cueutil.Problems(err, file) {
			issues = append(issues, MetaIssue{File: file, Field: p.CUEPath, Message: p.Message})
		}
		return issues
	}

	var issues []MetaIssue
	for _, field := range []struct {
		name  string
		value string
	}{
		{"api_version", result.Value.APIVersion},
		{"mod_version", result.Value.ModVersion},
	} {
		if !IsSemver(field.value) {
			issues = append(issues, MetaIssue{
				File:    file,
				Field:   field.name,
				Message: fmt.Sprintf("%q is not a semantic version (expected MAJOR.MINOR.PATCH)", field.value),
			})
		}
	}
	return issues
}

// IsSemver reports whether v is a full MAJOR.MINOR.PATCH version, with
// optional pre-release and build suffixes. A leading "v" is not allowed.
func IsSemver(v string) bool {
	if v == "" || strings.HasPrefix(v, "v") {
		return false
	}
	canonical := "v" + v
	if !semver.IsValid(canonical) {
		return false
	}
	// semver accepts "v1" and "v1.2" as shorthands; Polymod does not.
	core, _, _ := strings.Cut(strings.SplitN(v, "+", 2)[0], "-")
	return strings.Count(core, ".") == 2
}
