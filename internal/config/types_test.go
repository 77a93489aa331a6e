// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestDuration_Parse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		value   Duration
		want    time.Duration
		wantErr bool
	}{
		{"60s", time.Minute, false},
		{"1m30s", 90 * time.Second, false},
		{"0s", 0, true},
		{"-5s", 0, true},
		{"soon", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		got, err := tt.value.Parse()
		if tt.wantErr {
			if !errors.Is(err, ErrInvalidDuration) {
				t.Errorf("Duration(%q).Parse() error = %v, want ErrInvalidDuration", tt.value, err)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Errorf("Duration(%q).Parse() = %v, %v; want %v", tt.value, got, err, tt.want)
		}
	}
}

func TestDefaultConfig_Validate(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("DefaultConfig().Validate() = %v", err)
	}
	if cfg.HTTP.Timeout != "60s" || cfg.Build.OutputDir != "build" || cfg.UI.ColorScheme != ColorSchemeAuto {
		t.Errorf("DefaultConfig() = %+v", cfg)
	}
}

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantKey string
	}{
		{"blank cache dir", func(c *Config) { c.CacheDir = "  " }, "cache_dir"},
		{"bad timeout", func(c *Config) { c.HTTP.Timeout = "never" }, "http.timeout"},
		{"zero timeout", func(c *Config) { c.HTTP.Timeout = "0s" }, "http.timeout"},
		{"blank user agent", func(c *Config) { c.HTTP.UserAgent = "" }, "http.user_agent"},
		{"blank output dir", func(c *Config) { c.Build.OutputDir = " " }, "build.output_dir"},
		{"blank ignore", func(c *Config) { c.Build.ExtraIgnores = []string{"*.psd", ""} }, "build.extra_ignores[1]"},
		{"unknown scheme", func(c *Config) { c.UI.ColorScheme = "neon" }, "ui.color_scheme"},
		{"uppercase scheme", func(c *Config) { c.UI.ColorScheme = "DARK" }, "ui.color_scheme"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if !errors.Is(err, ErrInvalidConfig) {
				t.Fatalf("Validate() = %v, want ErrInvalidConfig", err)
			}
			if !strings.Contains(err.Error(), tt.wantKey) {
				t.Errorf("Validate() = %q, want it to name %s", err, tt.wantKey)
			}
		})
	}
}

func TestConfig_Validate_CollectsAllFields(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	cfg.CacheDir = "  "
	cfg.HTTP.Timeout = "never"
	cfg.Build.OutputDir = ""
	cfg.UI.ColorScheme = "neon"

	var cfgErr *InvalidConfigError
	if err := cfg.Validate(); !errors.As(err, &cfgErr) {
		t.Fatalf("Validate() = %T, want *InvalidConfigError", err)
	}
	if len(cfgErr.FieldErrors) != 4 {
		t.Errorf("len(FieldErrors) = %d, want 4: %v", len(cfgErr.FieldErrors), cfgErr.FieldErrors)
	}
	if !strings.HasPrefix(cfgErr.Error(), "invalid config: 4 problems") {
		t.Errorf("Error() = %q", cfgErr.Error())
	}
}
