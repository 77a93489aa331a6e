// SPDX-License-Identifier: MPL-2.0

package cueutil

import (
	"strings"
	"testing"

	"cuelang.org/go/cue"
)

const testSchema = `
#Meta: {
	title?:       string
	mod_version?: string
	tags?: [...string]
	...
}

#Strict: {
	name: string
}
`

type testMeta struct {
	Title      string   `json:"title"`
	ModVersion string   `json:"mod_version"`
	Tags       []string `json:"tags"`
}

func TestParseAndDecode_JSON(t *testing.T) {
	t.Parallel()

	data := []byte(`{"title": "My Mod", "mod_version": "1.2.0", "tags": ["a", "b"], "extra": true}`)
	result, err := ParseAndDecodeString[testMeta](testSchema, data, "#Meta", WithFilename("_polymod_meta.json"))
	if err != nil {
		t.Fatalf("ParseAndDecode() error = %v", err)
	}
	if result.Value.Title != "My Mod" || result.Value.ModVersion != "1.2.0" {
		t.Errorf("decoded = %+v", result.Value)
	}
	if len(result.Value.Tags) != 2 {
		t.Errorf("tags = %v, want 2 entries", result.Value.Tags)
	}
	if !result.Unified.LookupPath(cue.ParsePath("extra")).Exists() {
		t.Error("unified value should keep open fields")
	}
}

func TestParseAndDecode_TypeMismatch(t *testing.T) {
	t.Parallel()

	data := []byte(`{"title": 5}`)
	_, err := ParseAndDecodeString[testMeta](testSchema, data, "#Meta", WithFilename("_polymod_meta.json"))
	if err == nil {
		t.Fatal("expected error for non-string title")
	}
	if !strings.Contains(err.Error(), "_polymod_meta.json") || !strings.Contains(err.Error(), "title") {
		t.Errorf("error should name file and field, got: %v", err)
	}
}

func TestParseAndDecode_SyntaxError(t *testing.T) {
	t.Parallel()

	_, err := ParseAndDecodeString[testMeta](testSchema, []byte(`{"title": `), "#Meta", WithFilename("bad.json"))
	if err == nil {
		t.Fatal("expected syntax error")
	}
	if !strings.Contains(err.Error(), "bad.json") {
		t.Errorf("error should name file, got: %v", err)
	}
}

func TestParseAndDecode_Concrete(t *testing.T) {
	t.Parallel()

	data := []byte(`{}`)
	if _, err := ParseAndDecodeString[struct{ Name string }](testSchema, data, "#Strict"); err == nil {
		t.Error("expected error for missing required field in concrete mode")
	}
}

func TestParseAndDecode_FileTooLarge(t *testing.T) {
	t.Parallel()

	data := []byte(`{"title": "long enough"}`)
	_, err := ParseAndDecodeString[testMeta](testSchema, data, "#Meta", WithMaxFileSize(4), WithFilename("big.json"))
	if err == nil || !strings.Contains(err.Error(), "exceeds maximum") {
		t.Errorf("expected size error, got: %v", err)
	}
}

func TestParseAndDecode_UnknownDefinition(t *testing.T) {
	t.Parallel()

	_, err := ParseAndDecodeString[testMeta](testSchema, []byte(`{}`), "#Missing")
	if err == nil || !strings.Contains(err.Error(), "#Missing") {
		t.Errorf("expected missing definition error, got: %v", err)
	}
}
