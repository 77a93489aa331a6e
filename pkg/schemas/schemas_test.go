// SPDX-License-Identifier: MPL-2.0

package schemas

import (
	"encoding/json"
	"testing"
)

func TestMatch(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path       string
		wantSchema string
	}{
		{"data/characters/bf.json", "character.json"},
		{"data/characters/variants/bf-pixel.json", "character.json"},
		{`data\stages\mainStage.json`, "stage.json"},
		{"./data/levels/week1.json", "level.json"},
		{"data/ui/freeplay/styles/bf.json", "freeplayStyle.json"},
		{"data/songs/bopeebo/bopeebo-metadata.json", "song/metadata.json"},
		{"data/songs/bopeebo/bopeebo-metadata-erect.json", "song/metadata.json"},
		{"data/songs/bopeebo/bopeebo-chart.json", "song/chart.json"},
		{"music/freakyMenu/freakyMenu-metadata.json", "music-metadata.json"},
		{"_polymod_meta.json", "_polymod_meta.json"},
		{"mods/sub/_polymod_meta.json", "_polymod_meta.json"},
		{"data/songs/bopeebo/notes.json", ""},
		{"data/characters/bf.xml", ""},
		{"data/characters.json", ""},
		{"images/characters/bf.json", ""},
		{"data/characters/bf.JSON", ""},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			t.Parallel()

			rule, ok := Match(tt.path)
			if tt.wantSchema == "" {
				if ok {
					t.Errorf("Match(%q) = %q, want no match", tt.path, rule.Schema)
				}
				return
			}
			if !ok || rule.Schema != tt.wantSchema {
				t.Errorf("Match(%q) = (%q, %v), want %q", tt.path, rule.Schema, ok, tt.wantSchema)
			}
		})
	}
}

func TestAssociations(t *testing.T) {
	t.Parallel()

	assocs := Associations("https://example.com/schemas/")
	if len(assocs) != len(Rules) {
		t.Fatalf("len(Associations()) = %d, want %d", len(assocs), len(Rules))
	}
	if got := assocs[0].URL; got != "https://example.com/schemas/character.json" {
		t.Errorf("URL = %q", got)
	}

	data, err := json.Marshal(assocs[len(assocs)-1])
	if err != nil {
		t.Fatal(err)
	}
	want := `{"name":"Polymod Metadata","fileMatch":["**/_polymod_meta.json"],"url":"https://example.com/schemas/_polymod_meta.json"}`
	if string(data) != want {
		t.Errorf("json = %s, want %s", data, want)
	}

	if got := Associations("")[1].URL; got != "dialogue_box.json" {
		t.Errorf("URL without base = %q, want dialogue_box.json", got)
	}

	assocs[0].FileMatch[0] = "mutated"
	if Rules[0].FileMatch[0] == "mutated" {
		t.Error("Associations() should copy FileMatch")
	}
}
