// SPDX-License-Identifier: MPL-2.0

package modpack

import (
	"archive/zip"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/funkindev/vslice/pkg/platform"
	"github.com/funkindev/vslice/pkg/progress"
)

// DefaultOutputDir is the project-relative directory archives are written to.
const DefaultOutputDir = "build"

// ErrInvalidArchiveName is returned when the archive name derived from the
// metadata cannot be written inside the output directory.
var ErrInvalidArchiveName = errors.New("invalid archive name")

type (
	// Options configures Build.
	Options struct {
		// OutputDir is the archive directory, relative to the project unless
		// absolute. Defaults to DefaultOutputDir.
		OutputDir string
		// ExtraIgnores are appended to DefaultPatterns before the .gitignore lines.
		ExtraIgnores []string
		// ProjectName names the archive when the metadata has no title.
		// Defaults to the base name of the project directory.
		ProjectName string
		Progress    progress.Reporter
		Logger      *slog.Logger
	}

	// Result describes a finished build.
	Result struct {
		ArchivePath string
		Files       int
		Meta        *PolymodMeta
	}
)

// Message returns the completion message for r.
func (r *Result) Message() string {
	return fmt.Sprintf("Mod exported: %d files packed into %s", r.Files, filepath.Base(r.ArchivePath))
}

// ResolveOutputDir returns the archive directory for projectDir. An empty
// outputDir means DefaultOutputDir; relative paths are joined to projectDir.
func ResolveOutputDir(projectDir, outputDir string) string {
	if outputDir == "" {
		outputDir = DefaultOutputDir
	}
	if !filepath.IsAbs(outputDir) {
		outputDir = filepath.Join(projectDir, outputDir)
	}
	return outputDir
}

// OutputDirPattern returns the directory ignore pattern that keeps the
// output directory out of the archive, or "" when it lies outside
// projectDir.
func OutputDirPattern(projectDir, outputDir string) string {
	if abs, err := filepath.Abs(projectDir); err == nil {
		projectDir = abs
	}
	rel, err := filepath.Rel(projectDir, ResolveOutputDir(projectDir, outputDir))
	if err != nil || rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return ""
	}
	return filepath.ToSlash(rel) + "/"
}

// Build packages projectDir into a zip archive.
//
// The output directory is created if needed and an existing archive with the
// same name is replaced. Entries use forward-slash project-relative paths
// and are deflated. Malformed metadata is logged and treated as absent. A
// failure while writing leaves the partial archive in place.
func Build(ctx context.Context, projectDir string, opts Options) (*Result, error) {
	rep := opts.Progress
	if rep == nil {
		rep = progress.Nop()
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	absProject, err := filepath.Abs(projectDir)
	if err != nil {
		return nil, fmt.Errorf("resolve project directory: %w", err)
	}
	projectName := opts.ProjectName
	if projectName == "" {
		projectName = filepath.Base(absProject)
	}

	meta, err := ParseMeta(absProject)
	if err != nil {
		logger.Warn("ignoring polymod metadata", "error", err)
		meta = nil
	}

	outputDir := ResolveOutputDir(absProject, opts.OutputDir)
	archiveName := ArchiveName(meta, projectName)
	if err := platform.ValidateFileName(archiveName); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidArchiveName, err)
	}
	archivePath := filepath.Join(outputDir, archiveName)
	if filepath.Dir(archivePath) != filepath.Clean(outputDir) {
		return nil, fmt.Errorf("%w: %q leaves %s", ErrInvalidArchiveName, archiveName, outputDir)
	}

	rep.SetText("Preparing build directory...")
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return nil, fmt.Errorf("create output directory: %w", err)
	}
	if err := os.Remove(archivePath); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("remove previous archive: %w", err)
	}

	rep.SetFraction(0.1)
	rep.SetText("Reading ignore patterns...")
	patterns, err := LoadIgnorePatterns(absProject, opts.ExtraIgnores)
	if err != nil {
		return nil, err
	}
	if p := OutputDirPattern(absProject, opts.OutputDir); p != "" {
		patterns = append(patterns, p)
	}
	matcher := NewMatcher(patterns)

	rep.SetFraction(0.2)
	rep.SetText("Scanning files...")
	files, err := scanFiles(ctx, absProject, matcher)
	if err != nil {
		return nil, err
	}

	rep.SetFraction(0.3)
	rep.SetText("Creating zip file...")
	logger.Debug("packaging mod", "archive", archivePath, "files", len(files))
	if err := writeArchive(ctx, archivePath, absProject, files, rep); err != nil {
		return nil, err
	}

	rep.SetFraction(1)
	return &Result{ArchivePath: archivePath, Files: len(files), Meta: meta}, nil
}

// scanFiles returns the slash-separated relative paths of all regular files
// under root that matcher does not exclude, in lexical walk order.
func scanFiles(ctx context.Context, root string, matcher *Matcher) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return fmt.Errorf("failed to get relative path: %w", err)
		}
		if rel == "." {
			return nil
		}
		rel = filepath.ToSlash(rel)

		if d.IsDir() {
			if matcher.MatchDir(rel) {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() || matcher.Match(rel) {
			return nil
		}
		files = append(files, rel)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan project: %w", err)
	}
	return files, nil
}

func writeArchive(ctx context.Context, archivePath, root string, files []string, rep progress.Reporter) (err error) {
	out, err := os.Create(archivePath)
	if err != nil {
		return fmt.Errorf("failed to create ZIP file: %w", err)
	}
	defer func() {
		if closeErr := out.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	zw := zip.NewWriter(out)
	defer func() {
		if closeErr := zw.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	for i, rel := range files {
		if err := ctx.Err(); err != nil {
			return err
		}
		rep.SetFraction(0.3 + 0.7*float64(i)/float64(len(files)))
		rep.SetText(fmt.Sprintf("Adding %s...", filepath.Base(rel)))

		if err := addFile(zw, filepath.Join(root, filepath.FromSlash(rel)), rel); err != nil {
			return fmt.Errorf("failed to add %s: %w", rel, err)
		}
	}
	return nil
}

func addFile(zw *zip.Writer, path, name string) (err error) {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	info, err := f.Stat()
	if err != nil {
		return err
	}
	header, err := zip.FileInfoHeader(info)
	if err != nil {
		return err
	}
	header.Name = name
	header.Method = zip.Deflate

	w, err := zw.CreateHeader(header)
	if err != nil {
		return err
	}
	_, err = io.Copy(w, f)
	return err
}
