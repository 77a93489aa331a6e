// SPDX-License-Identifier: MPL-2.0

// Package watch rebuilds on file changes.
//
// A Watcher follows a project tree with fsnotify and calls OnChange once
// events stop arriving for the debounce period, passing every path that
// changed in the meantime.
package watch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
)

// defaultDebounce covers editors that save through a temp file and rename.
const defaultDebounce = 500 * time.Millisecond

// ErrInvalidWatchConfig is wrapped by every Config.Validate failure.
var ErrInvalidWatchConfig = errors.New("invalid watch config")

type (
	// Config describes what to watch and what to do about it.
	Config struct {
		// Patterns select files that trigger OnChange, as doublestar globs
		// over slash paths relative to BaseDir. Empty selects everything.
		Patterns []string
		// Ignore adds globs to DefaultIgnores.
		Ignore []string
		// Skip is asked after the globs. Directories it skips are not watched.
		Skip func(rel string, isDir bool) bool
		// Debounce defaults to 500ms.
		Debounce time.Duration
		// ClearScreen clears Stdout before each OnChange call.
		ClearScreen bool
		// BaseDir defaults to the working directory.
		BaseDir string
		// OnChange receives the sorted changed paths. Its errors are logged
		// and do not stop the watcher.
		OnChange func(ctx context.Context, changed []string) error
		Stdout   io.Writer
		Logger   *slog.Logger
	}

	// InvalidWatchConfigError lists every problem Config.Validate found.
	InvalidWatchConfigError struct {
		FieldErrors []error
	}

	// Watcher runs OnChange for changes under BaseDir. Run may be called once.
	Watcher struct {
		cfg     Config
		fsw     *fsnotify.Watcher
		filter  filter
		baseDir string
		stdout  io.Writer
		logger  *slog.Logger
		started atomic.Bool
	}
)

// Validate checks the globs and rejects a whitespace-only BaseDir.
func (c Config) Validate() error {
	errs := slices.Concat(checkPatterns("watch", c.Patterns), checkPatterns("ignore", c.Ignore))
	if c.BaseDir != "" && strings.TrimSpace(c.BaseDir) == "" {
		errs = append(errs, fmt.Errorf("base directory %q must not be whitespace-only", c.BaseDir))
	}
	if len(errs) == 0 {
		return nil
	}
	return &InvalidWatchConfigError{FieldErrors: errs}
}

func (e *InvalidWatchConfigError) Error() string {
	if len(e.FieldErrors) == 1 {
		return "watch: " + e.FieldErrors[0].Error()
	}
	return fmt.Sprintf("watch: invalid config: %d field errors", len(e.FieldErrors))
}

func (e *InvalidWatchConfigError) Unwrap() error { return ErrInvalidWatchConfig }

// New validates cfg and starts watching every directory under BaseDir that
// the filter does not exclude.
func New(cfg Config) (*Watcher, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	base := cfg.BaseDir
	if base == "" {
		base = "."
	}
	absBase, err := filepath.Abs(base)
	if err != nil {
		return nil, fmt.Errorf("watch: resolve base directory: %w", err)
	}

	if cfg.Debounce <= 0 {
		cfg.Debounce = defaultDebounce
	}
	w := &Watcher{
		cfg:     cfg,
		filter:  newFilter(cfg),
		baseDir: absBase,
		stdout:  cfg.Stdout,
		logger:  cfg.Logger,
	}
	if w.stdout == nil {
		w.stdout = os.Stdout
	}
	if w.logger == nil {
		w.logger = slog.Default()
	}

	if w.fsw, err = fsnotify.NewWatcher(); err != nil {
		return nil, fmt.Errorf("watch: create fsnotify watcher: %w", err)
	}
	if err := w.watchTree(); err != nil {
		if closeErr := w.fsw.Close(); closeErr != nil {
			w.logger.Warn("watch: close after init failure", "error", closeErr)
		}
		return nil, err
	}
	return w, nil
}

// Run handles events until ctx is done. It returns nil on cancellation and
// an error when fsnotify can no longer deliver events.
func (w *Watcher) Run(ctx context.Context) error {
	if !w.started.CompareAndSwap(false, true) {
		return errors.New("watch: Run called more than once")
	}

	pending := newBatch(w.cfg.Debounce, func(changed []string) { w.dispatch(ctx, changed) })
	defer func() {
		pending.stop()
		if err := w.fsw.Close(); err != nil {
			w.logger.Warn("watch: close fsnotify", "error", err)
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case evt, ok := <-w.fsw.Events:
			if !ok {
				return errors.New("watch: fsnotify event channel closed unexpectedly")
			}
			if rel, ok := w.accept(evt); ok {
				w.logger.Debug("watch: change detected", "path", rel, "op", evt.Op.String())
				pending.add(rel)
			}

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return errors.New("watch: fsnotify error channel closed unexpectedly")
			}
			if watcherBroken(err) {
				return fmt.Errorf("watch: fatal fsnotify error: %w", err)
			}
			w.logger.Warn("watch: fsnotify error", "error", err)
		}
	}
}

// accept returns the relative path of evt when it should trigger OnChange.
// New directories are added to the watch list on the way.
func (w *Watcher) accept(evt fsnotify.Event) (string, bool) {
	rel, err := filepath.Rel(w.baseDir, evt.Name)
	if err != nil {
		rel = evt.Name
	}
	rel = filepath.ToSlash(rel)

	info, statErr := os.Stat(evt.Name)
	isDir := statErr == nil && info.IsDir()
	if w.filter.excluded(rel, isDir) {
		return "", false
	}

	if isDir {
		if evt.Has(fsnotify.Create) {
			if err := w.fsw.Add(evt.Name); err != nil {
				w.logger.Warn("watch: add new directory", "path", evt.Name, "error", err)
			}
		}
		return "", false
	}
	return rel, w.filter.selects(rel)
}

func (w *Watcher) dispatch(ctx context.Context, changed []string) {
	if ctx.Err() != nil {
		return
	}
	if w.cfg.ClearScreen {
		fmt.Fprint(w.stdout, "\033[2J\033[H")
	}
	if w.cfg.OnChange == nil {
		return
	}
	if err := w.cfg.OnChange(ctx, changed); err != nil {
		w.logger.Error("watch: callback failed", "error", err)
	}
}

// watchTree adds BaseDir and its non-excluded subdirectories. Unreadable
// entries are logged and skipped.
func (w *Watcher) watchTree() error {
	err := filepath.WalkDir(w.baseDir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			w.logger.Warn("watch: skipping inaccessible path", "path", path, "error", err)
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if rel, relErr := filepath.Rel(w.baseDir, path); relErr == nil && rel != "." {
			if w.filter.excluded(filepath.ToSlash(rel), true) {
				return filepath.SkipDir
			}
		}
		if err := w.fsw.Add(path); err != nil {
			return fmt.Errorf("watch: add directory %q: %w", path, err)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("watch: walk directory tree: %w", err)
	}
	return nil
}

// watcherBroken reports whether err is one of brokenWatcherErrnos.
func watcherBroken(err error) bool {
	return err != nil && slices.ContainsFunc(brokenWatcherErrnos, func(errno syscall.Errno) bool {
		return errors.Is(err, errno)
	})
}
