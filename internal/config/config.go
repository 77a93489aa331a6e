// SPDX-License-Identifier: MPL-2.0

package config

import (
	"context"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/funkindev/vslice/internal/issue"
	"github.com/funkindev/vslice/pkg/cueutil"
	"github.com/funkindev/vslice/pkg/platform"

	"cuelang.org/go/cue"
	"github.com/spf13/viper"
)

const (
	// AppName is the application name.
	AppName = "vslice"
	// ConfigFileName is the name of the config file (without extension).
	ConfigFileName = "config"
	// ConfigFileExt is the config file extension.
	ConfigFileExt = "cue"
	// EnvPrefix prefixes environment overrides, e.g. VSLICE_HTTP_TIMEOUT.
	EnvPrefix = "VSLICE"
)

//go:embed config_schema.cue
var configSchema string

// ConfigDir returns the vslice configuration directory using platform-specific
// conventions: Windows uses %APPDATA%, macOS uses ~/Library/Application Support,
// and Linux/others use $XDG_CONFIG_HOME (defaulting to ~/.config).
//
//nolint:revive // ConfigDir is more descriptive than Dir for external callers
func ConfigDir() (string, error) {
	return userConfigDir()
}

// userConfigDir is swapped out by tests; os.UserHomeDir ignores HOME on some
// CI runners.
var userConfigDir = platformConfigDir

func platformConfigDir() (string, error) {
	var configDir string

	switch runtime.GOOS {
	case platform.Windows:
		configDir = os.Getenv("APPDATA")
		if configDir == "" {
			configDir = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
	case platform.Darwin:
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		configDir = filepath.Join(home, "Library", "Application Support")
	default: // Linux and others
		configDir = os.Getenv("XDG_CONFIG_HOME")
		if configDir == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return "", fmt.Errorf("failed to get home directory: %w", err)
			}
			configDir = filepath.Join(home, ".config")
		}
	}

	return filepath.Join(configDir, AppName), nil
}

// ResolvePath returns the config file Load would read and whether it exists.
// When no file exists the user config path is returned, which is where
// CreateDefaultConfig writes.
func ResolvePath(opts LoadOptions) (string, bool, error) {
	if opts.ConfigFilePath != "" {
		path := string(opts.ConfigFilePath)
		return path, fileExists(path), nil
	}

	cfgDir, err := configDirWithOverride(string(opts.ConfigDirPath))
	if err != nil {
		return "", false, err
	}
	userPath := filepath.Join(cfgDir, ConfigFileName+"."+ConfigFileExt)
	if fileExists(userPath) {
		return userPath, true, nil
	}

	localPath := filepath.Join(string(opts.BaseDir), ConfigFileName+"."+ConfigFileExt)
	if fileExists(localPath) {
		return localPath, true, nil
	}
	return userPath, false, nil
}

// loadWithOptions performs option-driven config loading without mutating
// package-level state.
func loadWithOptions(ctx context.Context, opts LoadOptions) (*Config, string, error) {
	select {
	case <-ctx.Done():
		return nil, "", fmt.Errorf("load config canceled: %w", ctx.Err())
	default:
	}

	if err := opts.Validate(); err != nil {
		return nil, "", err
	}

	v := viper.New()

	defaults := DefaultConfig()
	v.SetDefault("cache_dir", defaults.CacheDir)
	v.SetDefault("http.timeout", defaults.HTTP.Timeout)
	v.SetDefault("http.user_agent", defaults.HTTP.UserAgent)
	v.SetDefault("build.output_dir", defaults.Build.OutputDir)
	v.SetDefault("build.extra_ignores", defaults.Build.ExtraIgnores)
	v.SetDefault("ui.color_scheme", defaults.UI.ColorScheme)
	v.SetDefault("ui.verbose", defaults.UI.Verbose)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	path, exists, err := ResolvePath(opts)
	if err != nil {
		return nil, "", err
	}

	switch {
	case exists:
		if err := mergeCUEFile(v, path); err != nil {
			return nil, "", issue.NewErrorContext().
				WithOperation("load configuration").
				WithResource(path).
				WithSuggestion("Check that the file contains valid CUE syntax").
				WithSuggestion("Verify the configuration values match the expected schema").
				WithSuggestion("Use 'vslice config init' to see a default configuration").
				Wrap(err).
				BuildError()
		}
	case opts.ConfigFilePath != "":
		return nil, "", issue.NewErrorContext().
			WithOperation("load configuration").
			WithResource(path).
			WithSuggestion("Verify the file path is correct").
			WithSuggestion("Check that the file exists and is readable").
			Wrap(fmt.Errorf("config file not found: %s", path)).
			BuildError()
	default:
		// No config file: defaults plus environment.
		path = ""
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, "", fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", issue.NewErrorContext().
			WithOperation("validate configuration").
			WithResource(path).
			WithSuggestion("Check VSLICE_* environment variables for malformed values").
			WithSuggestion("Durations use Go syntax, e.g. \"60s\" or \"2m\"").
			Wrap(err).
			BuildError()
	}

	return &cfg, path, nil
}

// configDirWithOverride resolves the configuration directory, honoring
// explicit provider options before platform defaults.
func configDirWithOverride(configDirPath string) (string, error) {
	if configDirPath != "" {
		return configDirPath, nil
	}

	return ConfigDir()
}

// mergeCUEFile validates the file at path against #Config and layers its
// values over the viper defaults. Environment variables still win.
func mergeCUEFile(v *viper.Viper, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if err := cueutil.CheckFileSize(data, cueutil.DefaultMaxFileSize, path); err != nil {
		return err
	}

	unified, err := cueutil.Unify([]byte(configSchema), data, "#Config", path)
	if err != nil {
		return err
	}
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return cueutil.FormatError(err, path)
	}

	var values map[string]any
	if err := unified.Decode(&values); err != nil {
		return cueutil.FormatError(err, path)
	}
	if err := v.MergeConfigMap(values); err != nil {
		return fmt.Errorf("failed to merge config: %w", err)
	}
	return nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// CreateDefaultConfig writes a default config file into the user config
// directory unless one already exists. It returns the path and whether the
// file was created.
func CreateDefaultConfig() (string, bool, error) {
	cfgDir, err := ConfigDir()
	if err != nil {
		return "", false, err
	}

	if err := os.MkdirAll(cfgDir, 0o755); err != nil {
		return "", false, fmt.Errorf("failed to create config directory: %w", err)
	}

	cfgPath := filepath.Join(cfgDir, ConfigFileName+"."+ConfigFileExt)
	if _, err := os.Stat(cfgPath); err == nil {
		return cfgPath, false, nil
	}

	if err := os.WriteFile(cfgPath, []byte(GenerateCUE(DefaultConfig())), 0o644); err != nil {
		return "", false, fmt.Errorf("failed to write config file: %w", err)
	}

	return cfgPath, true, nil
}

// GenerateCUE generates a CUE representation of the configuration
func GenerateCUE(cfg *Config) string {
	var sb strings.Builder

	sb.WriteString("// vslice configuration file\n")
	sb.WriteString("// Every key may also be set with a VSLICE_ environment variable,\n")
	sb.WriteString("// e.g. VSLICE_CACHE_DIR or VSLICE_HTTP_TIMEOUT.\n\n")

	if cfg.CacheDir != "" {
		fmt.Fprintf(&sb, "cache_dir: %q\n\n", cfg.CacheDir)
	}

	sb.WriteString("http: {\n")
	fmt.Fprintf(&sb, "\ttimeout:    %q\n", cfg.HTTP.Timeout)
	fmt.Fprintf(&sb, "\tuser_agent: %q\n", cfg.HTTP.UserAgent)
	sb.WriteString("}\n")

	sb.WriteString("\nbuild: {\n")
	fmt.Fprintf(&sb, "\toutput_dir: %q\n", cfg.Build.OutputDir)
	if len(cfg.Build.ExtraIgnores) > 0 {
		sb.WriteString("\textra_ignores: [\n")
		for _, pattern := range cfg.Build.ExtraIgnores {
			fmt.Fprintf(&sb, "\t\t%q,\n", pattern)
		}
		sb.WriteString("\t]\n")
	}
	sb.WriteString("}\n")

	sb.WriteString("\nui: {\n")
	fmt.Fprintf(&sb, "\tcolor_scheme: %q\n", cfg.UI.ColorScheme)
	fmt.Fprintf(&sb, "\tverbose:      %v\n", cfg.UI.Verbose)
	sb.WriteString("}\n")

	return sb.String()
}
