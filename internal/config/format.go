// SPDX-License-Identifier: MPL-2.0

package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// Output formats accepted by Marshal.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatTOML = "toml"
)

// ErrUnknownFormat is returned by Marshal for unsupported formats.
var ErrUnknownFormat = errors.New("unknown config format")

// Marshal renders cfg as "text" (CUE, as written by GenerateCUE), "json" or "toml".
func Marshal(cfg *Config, format string) ([]byte, error) {
	switch strings.ToLower(format) {
	case "", FormatText:
		return []byte(GenerateCUE(cfg)), nil
	case FormatJSON:
		data, err := json.MarshalIndent(cfg, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("encode config as json: %w", err)
		}
		return append(data, '\n'), nil
	case FormatTOML:
		data, err := toml.Marshal(cfg)
		if err != nil {
			return nil, fmt.Errorf("encode config as toml: %w", err)
		}
		return data, nil
	default:
		return nil, fmt.Errorf("%w %q (valid: text, json, toml)", ErrUnknownFormat, format)
	}
}
