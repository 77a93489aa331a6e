// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"

	"github.com/funkindev/vslice/internal/config"
	"github.com/funkindev/vslice/internal/issue"
	"github.com/funkindev/vslice/internal/logging"
	"github.com/funkindev/vslice/pkg/types"
	"github.com/funkindev/vslice/pkg/vslicelib"
)

type (
	// App wires CLI services and shared dependencies. It is the composition root for
	// the CLI layer: all Cobra command handlers receive an App reference and resolve
	// their per-invocation session through it.
	App struct {
		Config     config.Provider
		HTTPClient *http.Client
		Getenv     func(string) string
		stdout     io.Writer
		stderr     io.Writer
	}

	// Dependencies defines the injection points for building an App. Nil fields are
	// replaced with production defaults by NewApp.
	Dependencies struct {
		Config     config.Provider
		HTTPClient *http.Client
		Getenv     func(string) string
		Stdout     io.Writer
		Stderr     io.Writer
	}

	// rootFlagValues holds the persistent flags shared by every command.
	rootFlagValues struct {
		verbose    bool
		configPath string
		projectDir string
	}

	// session is the state resolved once per command invocation.
	session struct {
		cfg        *config.Config
		projectDir string
		verbose    bool
		logger     *slog.Logger
	}
)

// NewApp creates an App with defaults for omitted dependencies.
func NewApp(deps Dependencies) (*App, error) {
	if deps.Stdout == nil {
		deps.Stdout = os.Stdout
	}
	if deps.Stderr == nil {
		deps.Stderr = os.Stderr
	}
	if deps.Config == nil {
		deps.Config = config.NewProvider()
	}
	if deps.Getenv == nil {
		deps.Getenv = os.Getenv
	}

	return &App{
		Config:     deps.Config,
		HTTPClient: deps.HTTPClient,
		Getenv:     deps.Getenv,
		stdout:     deps.Stdout,
		stderr:     deps.Stderr,
	}, nil
}

// newSession resolves the project directory, loads the configuration and
// builds the logger for one command invocation.
func (a *App) newSession(ctx context.Context, flags *rootFlagValues) (*session, error) {
	projectDir, err := resolveProjectDir(flags.projectDir)
	if err != nil {
		return nil, err
	}

	cfg, err := a.Config.Load(ctx, loadOptions(flags, projectDir))
	if err != nil {
		return nil, withIssue(err, issue.ConfigLoadFailedId)
	}

	verbose := flags.verbose || cfg.UI.Verbose
	logger := logging.Setup(a.stderr, logging.Options{Verbose: verbose, Prefix: config.AppName})

	return &session{
		cfg:        cfg,
		projectDir: projectDir,
		verbose:    verbose,
		logger:     logger,
	}, nil
}

// resolveProjectDir returns the absolute project directory, defaulting to the
// working directory.
func resolveProjectDir(dir string) (string, error) {
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("failed to get working directory: %w", err)
		}
		return wd, nil
	}

	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("failed to resolve project directory: %w", err)
	}
	info, err := os.Stat(abs)
	if err != nil || !info.IsDir() {
		return "", issue.NewErrorContext().
			WithOperation("open project").
			WithResource(abs).
			WithSuggestion("Pass an existing mod folder with --project").
			WithSuggestion("Run 'vslice init <dir>' to create one").
			WithIssue(issue.ProjectNotFoundId).
			Wrap(errors.New("project directory does not exist")).
			BuildError()
	}
	return abs, nil
}

// cacheDir returns the library cache directory: the configured one, else
// VSLICE_CACHE_DIR, else the default under the home directory.
func (a *App) cacheDir(s *session) (string, error) {
	if dir := s.cfg.CacheDir.String(); dir != "" {
		home, _ := os.UserHomeDir()
		return string(types.FilesystemPath(dir).ExpandHome(home)), nil
	}
	dir, err := vslicelib.DefaultCacheDir(a.Getenv, os.UserHomeDir)
	if err != nil {
		return "", withIssue(err, issue.CacheDirUnavailableId)
	}
	return dir, nil
}

// newFetcher builds a Fetcher from the HTTP settings of the configuration.
func (a *App) newFetcher(s *session) (*vslicelib.Fetcher, error) {
	timeout, err := s.cfg.HTTP.Timeout.Parse()
	if err != nil {
		return nil, err
	}

	opts := []vslicelib.FetcherOption{
		vslicelib.WithTimeout(timeout),
		vslicelib.WithUserAgent(s.cfg.HTTP.UserAgent),
		vslicelib.WithLogger(s.logger),
	}
	if a.HTTPClient != nil {
		opts = append(opts, vslicelib.WithHTTPClient(a.HTTPClient))
	}
	return vslicelib.NewFetcher(opts...), nil
}

// reportError renders the help attached to err and converts it into an
// ExitError. Errors that already are ExitErrors pass through untouched.
func (a *App) reportError(err error, verbose bool) error {
	if err == nil {
		return nil
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return err
	}

	if id := issueOf(err); id != 0 {
		renderIssue(a.stderr, id)
	}

	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		fmt.Fprintf(a.stderr, "%s %s\n", errorIcon, describeError(err, verbose))
	}

	return &ExitError{Code: types.ExitFailure, Err: err}
}
