// SPDX-License-Identifier: MPL-2.0

package scaffold

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/funkindev/vslice/pkg/types"
)

const (
	// MetaFileName is the Polymod metadata file.
	MetaFileName = "_polymod_meta.json"
	// IconFileName is the Polymod mod icon.
	IconFileName = "_polymod_icon.png"
	// LibrariesFileName is the library configuration file.
	LibrariesFileName = "vslice-libraries.json"
	// ScriptsDir holds the project's scripted classes.
	ScriptsDir = "scripts"
	// ImportFileName is the default import file placed in ScriptsDir.
	ImportFileName = "import.hx"
	// SampleScriptName is the sample module placed in ScriptsDir.
	SampleScriptName = "MainModule.hxc"

	// DefaultAPIVersion is written to new metadata files.
	DefaultAPIVersion = "0.7.0"

	defaultIconSize = 150
)

// BaseFolders are the asset folders created when ProjectOptions.AddBaseFolders is set.
var BaseFolders = []string{
	"data/characters",
	"data/dialogue/boxes",
	"data/dialogue/conversations",
	"data/dialogue/speakers",
	"data/levels",
	"data/notestyles",
	"data/players",
	"data/songs",
	"data/stages",
	"data/stickerpacks",
	"data/ui/freeplay/albums",
	"data/ui/freeplay/styles",
	"images",
	"music",
	"shaders",
	"sounds",
	"shared/images",
	"shared/music",
	"shared/sounds",
	"fonts",
	"songs",
	"videos/videos",
}

// ErrInvalidProjectName is returned when a project name is blank.
var ErrInvalidProjectName = errors.New("invalid project name")

type (
	// ProjectOptions describes a new mod project.
	ProjectOptions struct {
		// Dir is the project root. It is created if missing.
		Dir types.FilesystemPath
		// Name is the mod title written to the metadata. Defaults to the
		// base name of Dir.
		Name string
		// IconPath is an optional PNG copied to _polymod_icon.png. A generated
		// icon is used when empty or missing.
		IconPath types.FilesystemPath
		// APIVersion is written to the metadata. Defaults to DefaultAPIVersion.
		APIVersion string
		// AddSampleScript adds scripts/MainModule.hxc.
		AddSampleScript bool
		// AddBaseFolders creates BaseFolders.
		AddBaseFolders bool
		// WithLibraries writes a starter vslice-libraries.json.
		WithLibraries bool
	}

	// ProjectResult lists what CreateProject did, as project-relative
	// slash-separated paths.
	ProjectResult struct {
		Created []string
		Skipped []string
	}

	metaData struct {
		Name       string
		APIVersion string
	}
)

// CreateProject lays out a new mod project. Files that already exist are
// left untouched and reported in ProjectResult.Skipped, so running it on an
// existing project only fills in what is missing.
func CreateProject(opts ProjectOptions) (*ProjectResult, error) {
	if err := opts.Dir.Validate(); err != nil {
		return nil, err
	}
	root := string(opts.Dir)
	name := strings.TrimSpace(opts.Name)
	if name == "" {
		abs, err := filepath.Abs(root)
		if err != nil {
			return nil, fmt.Errorf("resolve project directory: %w", err)
		}
		name = filepath.Base(abs)
	}
	if name == "" || name == string(filepath.Separator) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidProjectName, opts.Name)
	}
	apiVersion := opts.APIVersion
	if apiVersion == "" {
		apiVersion = DefaultAPIVersion
	}

	res := &ProjectResult{}

	dirs := []string{ScriptsDir}
	if opts.AddBaseFolders {
		dirs = append(dirs, BaseFolders...)
	}
	for _, dir := range dirs {
		if err := os.MkdirAll(filepath.Join(root, filepath.FromSlash(dir)), 0o755); err != nil {
			return res, fmt.Errorf("create %s: %w", dir, err)
		}
	}

	meta, err := render("project/polymod_meta.json.tmpl", metaData{Name: name, APIVersion: apiVersion})
	if err != nil {
		return res, err
	}
	if err := res.write(root, MetaFileName, meta); err != nil {
		return res, err
	}

	icon, err := loadIcon(opts.IconPath)
	if err != nil {
		return res, err
	}
	if err := res.write(root, IconFileName, icon); err != nil {
		return res, err
	}

	imports, err := render("project/import.hx.tmpl", nil)
	if err != nil {
		return res, err
	}
	if err := res.write(root, ScriptsDir+"/"+ImportFileName, imports); err != nil {
		return res, err
	}

	if opts.AddSampleScript {
		sample, err := render("project/MainModule.hxc.tmpl", nil)
		if err != nil {
			return res, err
		}
		if err := res.write(root, ScriptsDir+"/"+SampleScriptName, sample); err != nil {
			return res, err
		}
	}

	if opts.WithLibraries {
		libs, err := render("project/vslice-libraries.json.tmpl", nil)
		if err != nil {
			return res, err
		}
		if err := res.write(root, LibrariesFileName, libs); err != nil {
			return res, err
		}
	}

	return res, nil
}

func (r *ProjectResult) write(root, rel string, data []byte) error {
	err := writeNew(filepath.Join(root, filepath.FromSlash(rel)), data)
	switch {
	case err == nil:
		r.Created = append(r.Created, rel)
		return nil
	case errors.Is(err, ErrFileExists):
		r.Skipped = append(r.Skipped, rel)
		return nil
	default:
		return fmt.Errorf("write %s: %w", rel, err)
	}
}

// loadIcon returns the bytes of iconPath, or DefaultIcon when iconPath is
// empty or does not exist.
func loadIcon(iconPath types.FilesystemPath) ([]byte, error) {
	if iconPath.Validate() == nil {
		data, err := os.ReadFile(string(iconPath))
		if err == nil {
			return data, nil
		}
		if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("read icon: %w", err)
		}
	}
	return DefaultIcon()
}

// DefaultIcon renders the placeholder mod icon: a 150x150 PNG with a
// diagonal gradient.
func DefaultIcon() ([]byte, error) {
	img := image.NewNRGBA(image.Rect(0, 0, defaultIconSize, defaultIconSize))
	from := color.NRGBA{R: 0x31, G: 0xA2, B: 0xFD, A: 0xFF}
	to := color.NRGBA{R: 0xF9, G: 0x39, B: 0x3F, A: 0xFF}
	for y := range defaultIconSize {
		for x := range defaultIconSize {
			t := float64(x+y) / float64(2*(defaultIconSize-1))
			img.SetNRGBA(x, y, color.NRGBA{
				R: lerp(from.R, to.R, t),
				G: lerp(from.G, to.G, t),
				B: lerp(from.B, to.B, t),
				A: 0xFF,
			})
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode icon: %w", err)
	}
	return buf.Bytes(), nil
}

func lerp(a, b uint8, t float64) uint8 {
	return uint8(float64(a) + (float64(b)-float64(a))*t)
}
