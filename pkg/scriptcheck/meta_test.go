// SPDX-License-Identifier: MPL-2.0

package scriptcheck

import (
	"errors"
	"strings"
	"testing"

	"github.com/funkindev/vslice/internal/testutil"
)

func TestCheckMetaData(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		data       string
		wantFields []string
	}{
		{
			name: "valid",
			data: `{"title": "My Mod", "api_version": "0.6.3", "mod_version": "1.0.0", "contributors": [{"name": "Nova"}]}`,
		},
		{
			name: "prerelease and build",
			data: `{"title": "My Mod", "api_version": "0.7.0-rc.1", "mod_version": "1.0.0+build.5"}`,
		},
		{
			name:       "short versions",
			data:       `{"title": "My Mod", "api_version": "0.6", "mod_version": "v1.0.0"}`,
			wantFields: []string{"api_version", "mod_version"},
		},
		{
			name:       "wrong type",
			data:       `{"title": 3, "api_version": "0.6.3", "mod_version": "1.0.0"}`,
			wantFields: []string{"title"},
		},
		{
			name:       "missing title",
			data:       `{"api_version": "0.6.3", "mod_version": "1.0.0"}`,
			wantFields: []string{"title"},
		},
		{
			name:       "contributor without name",
			data:       `{"title": "x", "api_version": "0.6.3", "mod_version": "1.0.0", "contributors": [{"role": "Artist"}]}`,
			wantFields: []string{"contributors[0].name"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			issues := CheckMetaData(MetaFileName, []byte(tt.data))
			if len(tt.wantFields) == 0 {
				if len(issues) != 0 {
					t.Errorf("CheckMetaData() = %v, want no issues", issues)
				}
				return
			}
			for _, field := range tt.wantFields {
				found := false
				for _, issue := range issues {
					if strings.HasSuffix(issue.Field, field) {
						found = true
					}
				}
				if !found {
					t.Errorf("CheckMetaData() = %v, want an issue for %s", issues, field)
				}
			}
		})
	}
}

func TestCheckMeta_Missing(t *testing.T) {
	t.Parallel()

	if _, err := CheckMeta(t.TempDir()); !errors.Is(err, ErrMetaNotFound) {
		t.Errorf("CheckMeta() error = %v, want ErrMetaNotFound", err)
	}
}

func TestCheckMeta_File(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	testutil.WriteFiles(t, dir, map[string]string{
		MetaFileName: `{"title": "My Mod", "api_version": "0.6.3", "mod_version": "one"}`,
	})

	issues, err := CheckMeta(dir)
	if err != nil {
		t.Fatalf("CheckMeta() error = %v", err)
	}
	if len(issues) != 1 || issues[0].Field != "mod_version" {
		t.Fatalf("CheckMeta() = %v, want one mod_version issue", issues)
	}
	if !strings.Contains(issues[0].String(), `mod_version: "one" is not a semantic version`) {
		t.Errorf("String() = %q", issues[0].String())
	}
}

func TestIsSemver(t *testing.T) {
	t.Parallel()

	for v, want := range map[string]bool{
		"1.0.0":         true,
		"0.6.3":         true,
		"1.0.0-alpha":   true,
		"1.0.0+sha.abc": true,
		"1.0":           false,
		"1":             false,
		"v1.0.0":        false,
		"":              false,
		"one":           false,
		"1.0.0.0":       false,
	} {
		if got := IsSemver(v); got != want {
			t.Errorf("IsSemver(%q) = %v, want %v", v, got, want)
		}
	}
}
