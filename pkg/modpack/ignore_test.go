// SPDX-License-Identifier: MPL-2.0

package modpack

import (
	"slices"
	"testing"

	"github.com/funkindev/vslice/internal/testutil"
)

func TestMatcher_SpecExample(t *testing.T) {
	t.Parallel()

	m := NewMatcher([]string{"build/", "*.log", ".gitignore"})

	var kept []string
	for _, rel := range []string{"build/out.zip", "debug.log", ".gitignore", "src/Main.hxc"} {
		if !m.Match(rel) {
			kept = append(kept, rel)
		}
	}
	if want := []string{"src/Main.hxc"}; !slices.Equal(kept, want) {
		t.Errorf("kept = %v, want %v", kept, want)
	}
}

func TestMatcher_Match(t *testing.T) {
	t.Parallel()

	tests := []struct {
		pattern string
		path    string
		want    bool
	}{
		// directory patterns
		{"build/", "build/a.zip", true},
		{"build/", "mods/build/a.zip", true},
		{"build/", "build", false},
		{"build/", "builds/a.zip", false},
		{"/out/", "out/a.txt", true},

		// wildcard patterns
		{"*.log", "debug.log", true},
		{"*.log", "logs/nested/app.log", true},
		{"*.log", "debug.log.txt", false},
		{"*.iml", "project.iml", true},
		{"data/*.json", "data/x.json", true},
		{"data/*.json", "data/sub/x.json", true},
		{"*.py[cod]", "x.pyc", true},
		{"*.py[cod]", "x.py", false},
		{"*.[oa]", "lib/foo.o", true},
		{"*.[oa]", "lib/foo.so", false},
		{"[x]*", "x1", true},
		{"[x]*", "y1", false},
		{"*(", "*(", true},
		{"*(", "a(", false},

		// exact patterns
		{".DS_Store", "images/.DS_Store", true},
		{".gitignore", ".gitignore", true},
		{"secret", "secret/key.txt", true},
		{"secret", "nested/secret/key.txt", false},
		{"notes.txt", "docs/notes.txt", true},
		{"/dist", "dist/app.js", true},
		{"readme", "readme.md", false},
	}

	for _, tt := range tests {
		t.Run(tt.pattern+" "+tt.path, func(t *testing.T) {
			t.Parallel()

			if got := NewMatcher([]string{tt.pattern}).Match(tt.path); got != tt.want {
				t.Errorf("Match(%q) with %q = %v, want %v", tt.path, tt.pattern, got, tt.want)
			}
		})
	}
}

func TestMatcher_MatchDir(t *testing.T) {
	t.Parallel()

	m := NewMatcher([]string{".git/", "secret", "*.log"})

	for dir, want := range map[string]bool{
		".git":          true,
		"sub/.git":      true,
		"secret":        true,
		"secret/inner":  true,
		"nested/secret": false,
		"logs.log":      false,
		"scripts":       false,
	} {
		if got := m.MatchDir(dir); got != want {
			t.Errorf("MatchDir(%q) = %v, want %v", dir, got, want)
		}
	}
}

func TestLoadIgnorePatterns(t *testing.T) {
	t.Parallel()

	t.Run("defaults only", func(t *testing.T) {
		t.Parallel()

		got, err := LoadIgnorePatterns(t.TempDir(), nil)
		if err != nil {
			t.Fatalf("LoadIgnorePatterns() error = %v", err)
		}
		if !slices.Equal(got, DefaultPatterns) {
			t.Errorf("LoadIgnorePatterns() = %v, want %v", got, DefaultPatterns)
		}
	})

	t.Run("extra then gitignore", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		testutil.WriteFiles(t, dir, map[string]string{
			GitignoreFileName: "# comment\n\n  node_modules/  \n*.tmp\n   \n#another\nsecrets.json\n",
		})

		got, err := LoadIgnorePatterns(dir, []string{"art-src/", " "})
		if err != nil {
			t.Fatalf("LoadIgnorePatterns() error = %v", err)
		}
		want := append(slices.Clone(DefaultPatterns), "art-src/", "node_modules/", "*.tmp", "secrets.json")
		if !slices.Equal(got, want) {
			t.Errorf("LoadIgnorePatterns() = %v, want %v", got, want)
		}
	})
}
