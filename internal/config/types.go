// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

const (
	ColorSchemeAuto  ColorScheme = "auto"
	ColorSchemeDark  ColorScheme = "dark"
	ColorSchemeLight ColorScheme = "light"

	// DefaultHTTPTimeout bounds one library download.
	DefaultHTTPTimeout Duration = "60s"
	DefaultUserAgent            = "vslice"
	// DefaultOutputDir is relative to the project directory.
	DefaultOutputDir = "build"
)

var (
	// ErrInvalidConfig is wrapped by every Config.Validate failure.
	ErrInvalidConfig = errors.New("invalid config")
	// ErrInvalidDuration is returned by Duration.Parse.
	ErrInvalidDuration = errors.New("invalid duration")
)

type (
	// ColorScheme selects the palette used for rendered markdown.
	ColorScheme string

	// CacheDirPath overrides the library cache. Empty means the default
	// location.
	CacheDirPath string

	// Duration holds a Go duration string such as "60s" or "2m30s".
	Duration string

	// InvalidConfigError lists every field that failed validation.
	InvalidConfigError struct {
		FieldErrors []error
	}

	// Config is the user configuration after defaults, file and environment
	// have been merged.
	Config struct {
		CacheDir CacheDirPath `json:"cache_dir,omitempty" mapstructure:"cache_dir" toml:"cache_dir,omitempty" validate:"omitempty,nonblank"`
		HTTP     HTTPConfig   `json:"http" mapstructure:"http" toml:"http"`
		Build    BuildConfig  `json:"build" mapstructure:"build" toml:"build"`
		UI       UIConfig     `json:"ui" mapstructure:"ui" toml:"ui"`
	}

	// HTTPConfig tunes library downloads.
	HTTPConfig struct {
		Timeout   Duration `json:"timeout" mapstructure:"timeout" toml:"timeout" validate:"duration"`
		UserAgent string   `json:"user_agent" mapstructure:"user_agent" toml:"user_agent" validate:"nonblank"`
	}

	// BuildConfig tunes `vslice build`.
	BuildConfig struct {
		// OutputDir is relative to the project unless absolute.
		OutputDir string `json:"output_dir" mapstructure:"output_dir" toml:"output_dir" validate:"nonblank"`
		// ExtraIgnores are appended after the built-in and .gitignore patterns.
		ExtraIgnores []string `json:"extra_ignores" mapstructure:"extra_ignores" toml:"extra_ignores" validate:"dive,nonblank"`
	}

	UIConfig struct {
		ColorScheme ColorScheme `json:"color_scheme" mapstructure:"color_scheme" toml:"color_scheme" validate:"oneof=auto dark light"`
		Verbose     bool        `json:"verbose" mapstructure:"verbose" toml:"verbose"`
	}
)

var configValidate = newConfigValidator()

func newConfigValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		return name
	})
	_ = v.RegisterValidation("nonblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	_ = v.RegisterValidation("duration", func(fl validator.FieldLevel) bool {
		_, err := Duration(fl.Field().String()).Parse()
		return err == nil
	})
	return v
}

// Validate checks every field and reports all failures at once.
func (c *Config) Validate() error {
	err := configValidate.Struct(c)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	errs := make([]error, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		errs = append(errs, describeFieldError(fe))
	}
	return &InvalidConfigError{FieldErrors: errs}
}

// describeFieldError names the field by its config key, e.g. "http.timeout".
func describeFieldError(fe validator.FieldError) error {
	key := fe.Namespace()
	if _, rest, ok := strings.Cut(key, "."); ok {
		key = rest
	}

	switch fe.Tag() {
	case "nonblank":
		return fmt.Errorf("%s must not be empty", key)
	case "duration":
		return fmt.Errorf("%s: %q is not a positive duration such as \"60s\"", key, fe.Value())
	case "oneof":
		return fmt.Errorf("%s: %q is not one of %s", key, fe.Value(), strings.ReplaceAll(fe.Param(), " ", ", "))
	default:
		return fmt.Errorf("%s failed %q validation", key, fe.Tag())
	}
}

func (e *InvalidConfigError) Error() string {
	if len(e.FieldErrors) == 1 {
		return "invalid config: " + e.FieldErrors[0].Error()
	}
	msgs := make([]string, len(e.FieldErrors))
	for i, fe := range e.FieldErrors {
		msgs[i] = fe.Error()
	}
	return fmt.Sprintf("invalid config: %d problems: %s", len(msgs), strings.Join(msgs, "; "))
}

func (e *InvalidConfigError) Unwrap() error { return ErrInvalidConfig }

func (p CacheDirPath) String() string { return string(p) }

func (d Duration) String() string { return string(d) }

// Parse returns d as a time.Duration. Zero and negative durations are
// rejected.
func (d Duration) Parse() (time.Duration, error) {
	parsed, err := time.ParseDuration(string(d))
	if err != nil {
		return 0, fmt.Errorf("%w %q: %w", ErrInvalidDuration, string(d), err)
	}
	if parsed <= 0 {
		return 0, fmt.Errorf("%w %q: must be positive", ErrInvalidDuration, string(d))
	}
	return parsed, nil
}

func (cs ColorScheme) String() string { return string(cs) }

// DefaultConfig returns the configuration used when nothing is set.
func DefaultConfig() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Timeout:   DefaultHTTPTimeout,
			UserAgent: DefaultUserAgent,
		},
		Build: BuildConfig{
			OutputDir:    DefaultOutputDir,
			ExtraIgnores: []string{},
		},
		UI: UIConfig{ColorScheme: ColorSchemeAuto},
	}
}
