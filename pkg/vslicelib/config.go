// SPDX-License-Identifier: MPL-2.0

package vslicelib

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/funkindev/vslice/pkg/platform"
)

// ConfigFileName is the library configuration file at the project root.
const ConfigFileName = "vslice-libraries.json"

var (
	// ErrConfigNotFound is returned when the project has no library configuration.
	ErrConfigNotFound = errors.New("library configuration not found")
	// ErrMalformedConfig is returned when the library configuration cannot be parsed.
	ErrMalformedConfig = errors.New("malformed library configuration")
	// ErrInvalidLibraryName is returned for names that cannot be used as a cache directory.
	ErrInvalidLibraryName = errors.New("invalid library name")
)

type (
	// Library is a named library archive.
	Library struct {
		Name string
		URL  string
	}

	// MergeRule copies the script sources of Source into Target.
	MergeRule struct {
		Source string
		Target string
	}

	// LibraryConfig is the parsed vslice-libraries.json. Libraries and
	// MergeInto keep the key order of the file, which is also the order
	// they are processed in.
	LibraryConfig struct {
		Libraries []Library
		MergeInto []MergeRule
	}

	rawConfig struct {
		Libraries json.RawMessage `json:"libraries"`
		MergeInto json.RawMessage `json:"mergeInto"`
	}
)

// LoadConfig reads ConfigFileName from projectDir. A missing file yields an
// error wrapping ErrConfigNotFound; unparsable content yields an error
// wrapping ErrMalformedConfig.
func LoadConfig(projectDir string) (*LibraryConfig, error) {
	path := filepath.Join(projectDir, ConfigFileName)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
		}
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return ParseConfig(data)
}

// ParseConfig parses library configuration JSON.
func ParseConfig(data []byte) (*LibraryConfig, error) {
	var raw rawConfig
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedConfig, err)
	}

	libs, err := decodeOrderedStrings(raw.Libraries)
	if err != nil {
		return nil, fmt.Errorf("%w: libraries: %w", ErrMalformedConfig, err)
	}
	merges, err := decodeOrderedStrings(raw.MergeInto)
	if err != nil {
		return nil, fmt.Errorf("%w: mergeInto: %w", ErrMalformedConfig, err)
	}

	cfg := &LibraryConfig{}
	for _, kv := range libs {
		if err := ValidateLibraryName(kv[0]); err != nil {
			return nil, fmt.Errorf("%w: libraries: %w", ErrMalformedConfig, err)
		}
		cfg.Libraries = append(cfg.Libraries, Library{Name: kv[0], URL: kv[1]})
	}
	for _, kv := range merges {
		for _, name := range kv {
			if err := ValidateLibraryName(name); err != nil {
				return nil, fmt.Errorf("%w: mergeInto: %w", ErrMalformedConfig, err)
			}
		}
		if kv[0] == kv[1] {
			return nil, fmt.Errorf("%w: mergeInto: %q cannot be merged into itself", ErrMalformedConfig, kv[0])
		}
		cfg.MergeInto = append(cfg.MergeInto, MergeRule{Source: kv[0], Target: kv[1]})
	}
	return cfg, nil
}

// ValidateLibraryName checks that name can be used as a cache subdirectory.
func ValidateLibraryName(name string) error {
	if name == "." || name == ".." {
		return fmt.Errorf("%w: %q", ErrInvalidLibraryName, name)
	}
	if err := platform.ValidateFileName(name); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidLibraryName, err)
	}
	return nil
}

// Library returns the library with the given name.
func (c *LibraryConfig) Library(name string) (Library, bool) {
	for _, lib := range c.Libraries {
		if lib.Name == name {
			return lib, true
		}
	}
	return Library{}, false
}

// IsMergeSource reports whether name is merged into another library.
func (c *LibraryConfig) IsMergeSource(name string) bool {
	for _, m := range c.MergeInto {
		if m.Source == name {
			return true
		}
	}
	return false
}

// decodeOrderedStrings decodes a JSON object of string values into key/value
// pairs in document order. A missing or null object yields no pairs.
// Duplicate keys are rejected.
func decodeOrderedStrings(raw json.RawMessage) ([][2]string, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, nil
	}

	dec := json.NewDecoder(bytes.NewReader(trimmed))
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("expected an object, got %v", tok)
	}

	var pairs [][2]string
	seen := make(map[string]bool)
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, _ := keyTok.(string)
		if seen[key] {
			return nil, fmt.Errorf("duplicate key %q", key)
		}
		seen[key] = true

		var value string
		if err := dec.Decode(&value); err != nil {
			return nil, fmt.Errorf("%q: %w", key, err)
		}
		pairs = append(pairs, [2]string{key, value})
	}
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return pairs, nil
}
