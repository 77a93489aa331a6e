// SPDX-License-Identifier: MPL-2.0

// Package assets discovers image assets in a mod project and suggests
// values for the asset-path properties of V-Slice data files.
package assets

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"
)

// ErrUnknownProperty is returned by Suggest for properties it has no rule for.
var ErrUnknownProperty = errors.New("no asset suggestions for property")

// Suggestion kinds.
const (
	KindImage      = "Image"
	KindSparrow    = "Sparrow Sprite"
	KindHealthIcon = "Health Icon"
)

type (
	// Asset is a PNG found under an asset folder.
	Asset struct {
		// Path is the asset key as written in data files, e.g.
		// "freeplay/albumRoll/volume1".
		Path string
		// Sparrow is true when an XML atlas with the same name sits next to the PNG.
		Sparrow bool
	}

	// Suggestion is one candidate value for a property.
	Suggestion struct {
		Value string
		Kind  string
	}

	// sheetFilter restricts assets by whether they are sprite sheets.
	sheetFilter int
)

const (
	anySheet sheetFilter = iota
	sparrowOnly
	imagesOnly
)

// Properties lists the property names Suggest understands.
func Properties() []string {
	return []string{"albumArtAsset", "titleAsset", "background", "albumTitleAsset", "assetPath", "healthIcon.id"}
}

// Find scans base (a slash-separated folder relative to projectDir)
// recursively for PNG files. Asset paths drop a leading "shared/" and then
// "images/" from base. A missing folder yields no assets.
func Find(projectDir, base string) ([]Asset, error) {
	dir := filepath.Join(projectDir, filepath.FromSlash(base))
	relBase := strings.TrimPrefix(strings.TrimPrefix(base, "shared/"), "images/")

	var assets []Asset
	if err := scanDir(dir, relBase, &assets); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	return assets, nil
}

func scanDir(dir, prefix string, out *[]Asset) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return err
	}

	xmls := make(map[string]bool)
	var pngs, subdirs []string
	for _, e := range entries {
		if e.IsDir() {
			subdirs = append(subdirs, e.Name())
			continue
		}
		name, ext := splitExt(e.Name())
		switch ext {
		case ".xml":
			xmls[name] = true
		case ".png":
			pngs = append(pngs, name)
		}
	}

	slices.Sort(pngs)
	for _, name := range slices.Compact(pngs) {
		*out = append(*out, Asset{Path: prefix + name, Sparrow: xmls[name]})
	}
	for _, sub := range subdirs {
		if err := scanDir(filepath.Join(dir, sub), prefix+sub+"/", out); err != nil {
			return fmt.Errorf("scan %s: %w", sub, err)
		}
	}
	return nil
}

// Icons returns the health icon ids found as images/icons/*.png, with the
// "icon-" prefix removed.
func Icons(projectDir string) ([]string, error) {
	entries, err := os.ReadDir(filepath.Join(projectDir, "images", "icons"))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	var icons []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if name, ext := splitExt(e.Name()); ext == ".png" {
			icons = append(icons, strings.TrimPrefix(name, "icon-"))
		}
	}
	return icons, nil
}

// Suggest returns candidate values for property in the data file at
// currentFile (used only by "assetPath" to tell character and level files
// apart). Nested properties use dotted names, e.g. "healthIcon.id".
func Suggest(projectDir, property, currentFile string) ([]Suggestion, error) {
	file := filepath.ToSlash(currentFile)

	switch property {
	case "albumArtAsset":
		return suggest(projectDir, "images/freeplay/albumRoll/", imagesOnly, "")
	case "titleAsset":
		return suggest(projectDir, "images/storymenu/titles/", imagesOnly, "")
	case "background":
		return suggest(projectDir, "images/", imagesOnly, "")
	case "albumTitleAsset":
		return suggest(projectDir, "images/freeplay/albumRoll/", sparrowOnly, "")
	case "healthIcon.id":
		icons, err := Icons(projectDir)
		if err != nil {
			return nil, err
		}
		out := make([]Suggestion, 0, len(icons))
		for _, icon := range icons {
			out = append(out, Suggestion{Value: icon, Kind: KindHealthIcon})
		}
		return out, nil
	case "assetPath":
		switch {
		case strings.Contains(file, "characters/"):
			return suggest(projectDir, "shared/images/characters/", sparrowOnly, "")
		case strings.Contains(file, "levels/"):
			return suggest(projectDir, "images/storymenu/props/", sparrowOnly, "")
		default:
			local, err := suggest(projectDir, "images/", anySheet, "")
			if err != nil {
				return nil, err
			}
			shared, err := suggest(projectDir, "shared/images/", anySheet, "shared:")
			if err != nil {
				return nil, err
			}
			return append(local, shared...), nil
		}
	default:
		return nil, fmt.Errorf("%w %q (known: %s)", ErrUnknownProperty, property, strings.Join(Properties(), ", "))
	}
}

func suggest(projectDir, base string, filter sheetFilter, prefix string) ([]Suggestion, error) {
	found, err := Find(projectDir, base)
	if err != nil {
		return nil, err
	}
	var out []Suggestion
	for _, a := range found {
		if (filter == sparrowOnly && !a.Sparrow) || (filter == imagesOnly && a.Sparrow) {
			continue
		}
		kind := KindImage
		if a.Sparrow {
			kind = KindSparrow
		}
		out = append(out, Suggestion{Value: prefix + a.Path, Kind: kind})
	}
	return out, nil
}

// splitExt splits name into its base and lower-cased extension.
func splitExt(name string) (string, string) {
	ext := path.Ext(name)
	return strings.TrimSuffix(name, ext), strings.ToLower(ext)
}
