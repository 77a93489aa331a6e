// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/funkindev/vslice/internal/issue"
	"github.com/funkindev/vslice/pkg/progress"
	"github.com/funkindev/vslice/pkg/types"
	"github.com/funkindev/vslice/pkg/vslicelib"

	"github.com/spf13/cobra"
)

// newLibsCommand creates the `vslice libs` command tree.
func newLibsCommand(app *App, flags *rootFlagValues) *cobra.Command {
	libsCmd := &cobra.Command{
		Use:   "libs",
		Short: "Manage the HScript libraries of a mod",
		Long: `Manage the HScript libraries declared in vslice-libraries.json.

Each library is a zip archive whose .hx sources are extracted into the
shared cache. Libraries listed under "mergeInto" are copied into their
target library instead of being used on their own.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	var clearCache bool
	updateCmd := &cobra.Command{
		Use:   "update",
		Short: "Download missing libraries and apply merge rules",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLibsUpdate(cmd, app, flags, clearCache)
		},
	}
	updateCmd.Flags().BoolVar(&clearCache, "clear", false, "delete the whole cache before downloading")

	var hxml bool
	rootsCmd := &cobra.Command{
		Use:   "roots",
		Short: "Print the source roots of the cached libraries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLibsRoots(cmd, app, flags, hxml)
		},
	}
	rootsCmd.Flags().BoolVar(&hxml, "hxml", false, "print the roots as Haxe '-cp' lines")

	libsCmd.AddCommand(
		updateCmd,
		&cobra.Command{
			Use:   "clear",
			Short: "Delete every cached library",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return runLibsClear(cmd, app, flags)
			},
		},
		&cobra.Command{
			Use:   "prune",
			Short: "Delete cached libraries the project no longer declares",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return runLibsPrune(cmd, app, flags)
			},
		},
		&cobra.Command{
			Use:   "list",
			Short: "List cached libraries",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return runLibsList(cmd, app, flags)
			},
		},
		rootsCmd,
	)

	return libsCmd
}

func runLibsUpdate(cmd *cobra.Command, app *App, flags *rootFlagValues, clearCache bool) error {
	s, err := app.newSession(cmd.Context(), flags)
	if err != nil {
		return err
	}
	libCfg, err := loadLibraryConfig(s.projectDir)
	if err != nil {
		return err
	}
	cache, err := app.openCache(s)
	if err != nil {
		return err
	}
	fetcher, err := app.newFetcher(s)
	if err != nil {
		return err
	}

	manager := vslicelib.NewManager(cache,
		vslicelib.WithFetcher(fetcher),
		vslicelib.WithProgress(progress.NewLineReporter(app.stdout, renderProgressText)),
		vslicelib.WithManagerLogger(s.logger),
	)

	summary, err := manager.Update(cmd.Context(), libCfg, vslicelib.UpdateOptions{ClearCache: clearCache})
	if err != nil {
		return err
	}

	for _, lib := range summary.Libraries {
		switch lib.Status {
		case vslicelib.StatusDownloaded:
			fmt.Fprintf(app.stdout, "  %s %s\n", successIcon, lib.Name)
		case vslicelib.StatusAlreadyExists:
			fmt.Fprintf(app.stdout, "  %s %s %s\n", successIcon, lib.Name, SubtitleStyle.Render("(cached)"))
		default:
			fmt.Fprintf(app.stdout, "  %s %s: %v\n", warningIcon, lib.Name, lib.Err)
		}
	}
	for _, m := range summary.Merges {
		if m.Err != nil {
			fmt.Fprintf(app.stdout, "  %s merge %s into %s: %v\n", warningIcon, m.Rule.Source, m.Rule.Target, m.Err)
			continue
		}
		s.logger.Debug("merged library", "source", m.Rule.Source, "target", m.Rule.Target, "files", m.Copied)
	}

	if summary.HasFailures() {
		fmt.Fprintln(app.stdout, WarningStyle.Render(summary.Message()))
		err := fmt.Errorf("%d of %d libraries failed, %d merges failed", summary.Failed, summary.Total, summary.MergeFailed)
		renderIssue(app.stderr, issue.LibraryDownloadFailedId)
		return &ExitError{Code: types.ExitFindings, Err: err}
	}

	fmt.Fprintln(app.stdout, SuccessStyle.Render(summary.Message()))
	if summary.NeedsSetup() {
		fmt.Fprintf(app.stdout, "%s Library roots changed; run %s to refresh your class paths\n",
			arrowIcon, CmdStyle.Render("vslice libs roots --hxml"))
	}
	return nil
}

func runLibsClear(cmd *cobra.Command, app *App, flags *rootFlagValues) error {
	s, err := app.newSession(cmd.Context(), flags)
	if err != nil {
		return err
	}
	cache, err := app.openCache(s)
	if err != nil {
		return err
	}
	if err := cache.Clear(); err != nil {
		return err
	}
	fmt.Fprintf(app.stdout, "%s Cleared library cache %s\n", successIcon, CmdStyle.Render(cache.Dir()))
	return nil
}

func runLibsPrune(cmd *cobra.Command, app *App, flags *rootFlagValues) error {
	s, err := app.newSession(cmd.Context(), flags)
	if err != nil {
		return err
	}
	libCfg, err := loadLibraryConfig(s.projectDir)
	if err != nil {
		return err
	}
	cache, err := app.openCache(s)
	if err != nil {
		return err
	}

	removed, err := cache.Prune(libCfg)
	if err != nil {
		return err
	}
	if len(removed) == 0 {
		fmt.Fprintln(app.stdout, SubtitleStyle.Render("Nothing to prune."))
		return nil
	}
	for _, name := range removed {
		fmt.Fprintf(app.stdout, "  %s removed %s\n", successIcon, name)
	}
	fmt.Fprintf(app.stdout, "%s Pruned %d libraries\n", successIcon, len(removed))
	return nil
}

func runLibsList(cmd *cobra.Command, app *App, flags *rootFlagValues) error {
	s, err := app.newSession(cmd.Context(), flags)
	if err != nil {
		return err
	}
	cache, err := app.openCache(s)
	if err != nil {
		return err
	}

	names, err := cache.List()
	if err != nil {
		return err
	}
	if len(names) == 0 {
		fmt.Fprintln(app.stdout, SubtitleStyle.Render("(no cached libraries)"))
		return nil
	}

	// Annotating is best effort: listing works outside a project too.
	libCfg, cfgErr := vslicelib.LoadConfig(s.projectDir)
	for _, name := range names {
		if cfgErr == nil {
			if _, ok := libCfg.Library(name); !ok {
				fmt.Fprintf(app.stdout, "%s %s\n", name, SubtitleStyle.Render("(not declared)"))
				continue
			}
		}
		fmt.Fprintln(app.stdout, name)
	}
	return nil
}

func runLibsRoots(cmd *cobra.Command, app *App, flags *rootFlagValues, hxml bool) error {
	s, err := app.newSession(cmd.Context(), flags)
	if err != nil {
		return err
	}
	libCfg, err := loadLibraryConfig(s.projectDir)
	if err != nil {
		return err
	}
	cache, err := app.openCache(s)
	if err != nil {
		return err
	}

	for _, root := range vslicelib.NewManager(cache).SourceRoots(libCfg) {
		if hxml {
			fmt.Fprintf(app.stdout, "-cp %s\n", filepath.ToSlash(root))
			continue
		}
		fmt.Fprintln(app.stdout, root)
	}
	return nil
}

// openCache returns the library cache for the session.
func (a *App) openCache(s *session) (*vslicelib.Cache, error) {
	dir, err := a.cacheDir(s)
	if err != nil {
		return nil, err
	}
	s.logger.Debug("using library cache", "dir", dir)
	return vslicelib.NewCache(dir), nil
}

// loadLibraryConfig reads vslice-libraries.json and turns its failures into
// a single actionable error.
func loadLibraryConfig(projectDir string) (*vslicelib.LibraryConfig, error) {
	libCfg, err := vslicelib.LoadConfig(projectDir)
	if err == nil {
		return libCfg, nil
	}

	path := filepath.Join(projectDir, vslicelib.ConfigFileName)
	if errors.Is(err, vslicelib.ErrConfigNotFound) {
		return nil, issue.NewErrorContext().
			WithOperation("load library configuration").
			WithResource(path).
			WithSuggestion("Run 'vslice init --no-sample --no-folders .' to add a starter file").
			WithSuggestion("Use --project to point at the mod folder").
			WithIssue(issue.LibrariesConfigNotFoundId).
			Wrap(err).
			BuildError()
	}
	return nil, issue.NewErrorContext().
		WithOperation("load library configuration").
		WithResource(path).
		WithSuggestion("Check the JSON syntax of the file").
		WithSuggestion("\"libraries\" maps names to zip URLs and \"mergeInto\" maps a library to its target").
		WithIssue(issue.LibrariesConfigInvalidId).
		Wrap(err).
		BuildError()
}
