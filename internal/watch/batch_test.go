// SPDX-License-Identifier: MPL-2.0

package watch

import (
	"slices"
	"testing"
	"time"
)

func TestBatch_CoalescesAndSorts(t *testing.T) {
	t.Parallel()

	got := make(chan []string, 4)
	b := newBatch(30*time.Millisecond, func(changed []string) { got <- changed })
	defer b.stop()

	for _, p := range []string{"scripts/b.hxc", "scripts/a.hxc", "scripts/b.hxc"} {
		b.add(p)
	}

	select {
	case changed := <-got:
		if want := []string{"scripts/a.hxc", "scripts/b.hxc"}; !slices.Equal(changed, want) {
			t.Errorf("flush got %v, want %v", changed, want)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("batch never flushed")
	}

	select {
	case extra := <-got:
		t.Errorf("unexpected second flush: %v", extra)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestFilter(t *testing.T) {
	t.Parallel()

	f := newFilter(Config{
		Patterns: []string{"**/*.hxc", "**/*.json"},
		Ignore:   []string{"build/**"},
		Skip:     func(rel string, _ bool) bool { return rel == "secret.json" },
	})

	tests := []struct {
		rel      string
		isDir    bool
		excluded bool
		selected bool
	}{
		{"scripts/Main.hxc", false, false, true},
		{"build", true, true, false},
		{"build/out.zip", false, true, false},
		{"secret.json", false, true, true},
		{"images/icon.png", false, false, false},
		{".git/HEAD", false, true, false},
	}

	for _, tt := range tests {
		if got := f.excluded(tt.rel, tt.isDir); got != tt.excluded {
			t.Errorf("excluded(%q, %v) = %v, want %v", tt.rel, tt.isDir, got, tt.excluded)
		}
		if got := f.selects(tt.rel); got != tt.selected {
			t.Errorf("selects(%q) = %v, want %v", tt.rel, got, tt.selected)
		}
	}
}
