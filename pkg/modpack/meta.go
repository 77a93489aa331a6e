// SPDX-License-Identifier: MPL-2.0

package modpack

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// MetaFileName is the Polymod metadata file at the project root.
const MetaFileName = "_polymod_meta.json"

// ErrMalformedMeta is returned when _polymod_meta.json cannot be decoded.
var ErrMalformedMeta = errors.New("malformed polymod metadata")

type (
	// PolymodMeta is the subset of _polymod_meta.json vslice reads. Only Title
	// and ModVersion affect packaging.
	PolymodMeta struct {
		Title        string            `json:"title,omitempty"`
		Description  string            `json:"description,omitempty"`
		APIVersion   string            `json:"api_version,omitempty"`
		ModVersion   string            `json:"mod_version,omitempty"`
		License      string            `json:"license,omitempty"`
		Contributors []Contributor     `json:"contributors,omitempty"`
		Dependencies map[string]string `json:"dependencies,omitempty"`
	}

	// Contributor is one entry of the contributors list.
	Contributor struct {
		Name  string `json:"name"`
		Role  string `json:"role,omitempty"`
		Email string `json:"email,omitempty"`
		URL   string `json:"url,omitempty"`
	}
)

// ParseMeta reads MetaFileName from projectDir. A missing file returns
// (nil, nil); a file that cannot be decoded returns an error wrapping
// ErrMalformedMeta.
func ParseMeta(projectDir string) (*PolymodMeta, error) {
	path := filepath.Join(projectDir, MetaFileName)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	var meta PolymodMeta
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrMalformedMeta, path, err)
	}
	return &meta, nil
}

// ArchiveName returns "<title>-<mod_version>.zip". Spaces and characters
// that cannot appear in a file name, path separators included, are replaced
// by '-'. An absent meta or empty title falls back to projectName; an absent
// version leaves the part after the dash empty.
//
//	{title: "My Mod", mod_version: "1.2"} -> My-Mod-1.2.zip
//	nil                                   -> <projectName>-.zip
func ArchiveName(meta *PolymodMeta, projectName string) string {
	name := projectName
	version := ""
	if meta != nil {
		if meta.Title != "" {
			name = meta.Title
		}
		version = meta.ModVersion
	}
	return archiveNameReplacer.Replace(name + "-" + version + ".zip")
}

var archiveNameReplacer = strings.NewReplacer(
	" ", "-", "/", "-", `\`, "-", ":", "-", "*", "-",
	"?", "-", `"`, "-", "<", "-", ">", "-", "|", "-",
)
