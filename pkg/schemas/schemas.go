// SPDX-License-Identifier: MPL-2.0

// Package schemas maps V-Slice data files to the JSON schemas that describe them.
package schemas

import (
	"path"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

type (
	// Rule associates project files with a JSON schema.
	Rule struct {
		// Name is the human-readable schema name.
		Name string `json:"name"`
		// Schema is the schema file name, e.g. "character.json".
		Schema string `json:"schema"`
		// FileMatch holds project-relative doublestar globs.
		FileMatch []string `json:"fileMatch"`
	}

	// Association is an editor schema mapping in the shape used by
	// "json.schemas" settings.
	Association struct {
		Name      string   `json:"name"`
		FileMatch []string `json:"fileMatch"`
		URL       string   `json:"url"`
	}
)

// Rules lists every schema association in match priority order: directory
// schemas, then keyword schemas, then Polymod metadata.
var Rules = []Rule{
	dataRule("Character Data", "data/characters/", "character.json"),
	dataRule("Dialogue Box Schema", "data/dialogue/boxes/", "dialogue_box.json"),
	dataRule("Conversation Schema", "data/dialogue/conversations/", "conversation.json"),
	dataRule("Speaker Schema", "data/dialogue/speakers/", "speaker.json"),
	dataRule("Story Level Schema", "data/levels/", "level.json"),
	dataRule("Note Style Schema", "data/notestyles/", "notestyle.json"),
	dataRule("Player Schema", "data/players/", "player.json"),
	dataRule("Stage Schema", "data/stages/", "stage.json"),
	dataRule("Sticker Pack Schema", "data/stickerpacks/", "stickerpack.json"),
	dataRule("Album Schema", "data/ui/freeplay/albums/", "album.json"),
	dataRule("Freeplay Style Schema", "data/ui/freeplay/styles/", "freeplayStyle.json"),

	keywordRule("Song Metadata", "data/songs/", "-metadata", "song/metadata.json"),
	keywordRule("Song Chart", "data/songs/", "-chart", "song/chart.json"),
	keywordRule("Music Metadata", "music/", "-metadata", "music-metadata.json"),

	{Name: "Polymod Metadata", Schema: "_polymod_meta.json", FileMatch: []string{"**/_polymod_meta.json"}},
}

func dataRule(name, dir, schema string) Rule {
	return Rule{Name: name, Schema: schema, FileMatch: []string{dir + "**/*.json"}}
}

func keywordRule(name, dir, keyword, schema string) Rule {
	return Rule{Name: name, Schema: schema, FileMatch: []string{dir + "**/*" + keyword + "*.json"}}
}

// Match returns the first rule whose globs match relPath. relPath is
// project-relative; backslashes are treated as separators. Only files with
// a ".json" extension can match.
func Match(relPath string) (Rule, bool) {
	rel := strings.TrimPrefix(strings.ReplaceAll(relPath, `\`, "/"), "./")
	if path.Ext(rel) != ".json" {
		return Rule{}, false
	}
	for _, r := range Rules {
		if r.Matches(rel) {
			return r, true
		}
	}
	return Rule{}, false
}

// Matches reports whether rel matches any of the rule's globs.
func (r Rule) Matches(rel string) bool {
	for _, pattern := range r.FileMatch {
		if ok, err := doublestar.Match(pattern, rel); err == nil && ok {
			return true
		}
	}
	return false
}

// URL returns the schema location under baseURL, or the bare schema file
// name when baseURL is empty.
func (r Rule) URL(baseURL string) string {
	if baseURL == "" {
		return r.Schema
	}
	return strings.TrimSuffix(baseURL, "/") + "/" + r.Schema
}

// Associations returns editor schema mappings for every rule.
func Associations(baseURL string) []Association {
	out := make([]Association, 0, len(Rules))
	for _, r := range Rules {
		out = append(out, Association{
			Name:      r.Name,
			FileMatch: append([]string(nil), r.FileMatch...),
			URL:       r.URL(baseURL),
		})
	}
	return out
}
