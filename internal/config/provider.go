// SPDX-License-Identifier: MPL-2.0

package config

import (
	"context"
	"errors"
	"fmt"

	"github.com/funkindev/vslice/pkg/types"
)

// ErrInvalidLoadOptions is wrapped by LoadOptions.Validate failures.
var ErrInvalidLoadOptions = errors.New("invalid load options")

type (
	// LoadOptions points Load at a config file. Empty fields use the
	// defaults.
	LoadOptions struct {
		// ConfigFilePath is the --config flag. A missing file is an error.
		ConfigFilePath types.FilesystemPath
		// ConfigDirPath replaces ConfigDir.
		ConfigDirPath types.FilesystemPath
		// BaseDir is the project directory, searched for config.cue when
		// the user config directory has none.
		BaseDir types.FilesystemPath
	}

	// Provider loads the effective configuration for one command run.
	Provider interface {
		Load(ctx context.Context, opts LoadOptions) (*Config, error)
	}

	fileProvider struct{}
)

// Validate rejects set fields that are only whitespace.
func (o LoadOptions) Validate() error {
	var errs []error
	for name, p := range map[string]types.FilesystemPath{
		"config file": o.ConfigFilePath,
		"config dir":  o.ConfigDirPath,
		"base dir":    o.BaseDir,
	} {
		if p == "" {
			continue
		}
		if err := p.Validate(); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", name, err))
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrInvalidLoadOptions, errors.Join(errs...))
}

// NewProvider returns the Provider backed by config.cue files, viper
// defaults and VSLICE_ environment variables.
func NewProvider() Provider {
	return fileProvider{}
}

func (fileProvider) Load(ctx context.Context, opts LoadOptions) (*Config, error) {
	cfg, _, err := loadWithOptions(ctx, opts)
	return cfg, err
}
