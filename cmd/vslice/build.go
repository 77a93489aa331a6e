// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"

	"github.com/funkindev/vslice/internal/issue"
	"github.com/funkindev/vslice/internal/watch"
	"github.com/funkindev/vslice/pkg/modpack"
	"github.com/funkindev/vslice/pkg/progress"

	"github.com/spf13/cobra"
)

type buildFlagValues struct {
	outputDir   string
	watch       bool
	clearScreen bool
}

// newBuildCommand creates the `vslice build` command.
func newBuildCommand(app *App, flags *rootFlagValues) *cobra.Command {
	buildFlags := &buildFlagValues{}

	buildCmd := &cobra.Command{
		Use:   "build",
		Short: "Package the mod into a zip archive",
		Long: `Package the mod folder into <output-dir>/<title>-<mod_version>.zip.

The title and version come from _polymod_meta.json. Version control and
editor files, the output directory, vslice-libraries.json and everything
listed in .gitignore are left out of the archive.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBuild(cmd, app, flags, buildFlags)
		},
	}

	buildCmd.Flags().StringVarP(&buildFlags.outputDir, "output-dir", "o", "", "archive directory, relative to the project (default from config, \"build\")")
	buildCmd.Flags().BoolVarP(&buildFlags.watch, "watch", "w", false, "rebuild whenever a packaged file changes")
	buildCmd.Flags().BoolVar(&buildFlags.clearScreen, "clear-screen", false, "clear the terminal before each rebuild in watch mode")

	return buildCmd
}

func runBuild(cmd *cobra.Command, app *App, flags *rootFlagValues, buildFlags *buildFlagValues) error {
	s, err := app.newSession(cmd.Context(), flags)
	if err != nil {
		return err
	}

	outputDir := buildFlags.outputDir
	if outputDir == "" {
		outputDir = s.cfg.Build.OutputDir
	}
	opts := modpack.Options{
		OutputDir:    outputDir,
		ExtraIgnores: s.cfg.Build.ExtraIgnores,
		Progress:     progress.NewLineReporter(app.stdout, renderProgressText),
		Logger:       s.logger,
	}

	if !buildFlags.watch {
		return app.buildOnce(cmd.Context(), s, opts)
	}
	return app.watchBuild(cmd.Context(), s, opts, buildFlags.clearScreen)
}

func (a *App) buildOnce(ctx context.Context, s *session, opts modpack.Options) error {
	result, err := modpack.Build(ctx, s.projectDir, opts)
	if err != nil {
		return issue.NewErrorContext().
			WithOperation("package mod").
			WithResource(s.projectDir).
			WithSuggestion("Check that the output directory is writable").
			WithSuggestion("Close programs that may hold the previous archive open").
			WithIssue(issue.BuildFailedId).
			Wrap(err).
			BuildError()
	}
	fmt.Fprintf(a.stdout, "%s %s\n", successIcon, SuccessStyle.Render(result.Message()))
	s.logger.Debug("archive written", "path", result.ArchivePath)
	return nil
}

// watchBuild builds once, then rebuilds whenever a file that would be
// packaged changes. It blocks until ctx is canceled.
func (a *App) watchBuild(ctx context.Context, s *session, opts modpack.Options, clearScreen bool) error {
	if err := a.buildOnce(ctx, s, opts); err != nil {
		// Keep watching: the next save may fix it.
		fmt.Fprintf(a.stderr, "%s Initial build failed: %v\n", warningIcon, err)
	}

	patterns, err := modpack.LoadIgnorePatterns(s.projectDir, opts.ExtraIgnores)
	if err != nil {
		return err
	}
	if rel := modpack.OutputDirPattern(s.projectDir, opts.OutputDir); rel != "" {
		patterns = append(patterns, rel)
	}
	matcher := modpack.NewMatcher(patterns)

	fmt.Fprintf(a.stdout, "\n%s Watching for changes (Ctrl+C to stop)...\n\n", arrowIcon)

	w, err := watch.New(watch.Config{
		Patterns:    []string{"**/*"},
		BaseDir:     s.projectDir,
		ClearScreen: clearScreen,
		Skip: func(rel string, isDir bool) bool {
			if isDir {
				return matcher.MatchDir(rel)
			}
			return matcher.Match(rel)
		},
		OnChange: func(ctx context.Context, changed []string) error {
			fmt.Fprintf(a.stdout, "%s Detected %d change(s). Rebuilding...\n", arrowIcon, len(changed))
			s.logger.Debug("changed files", "paths", changed)
			if buildErr := a.buildOnce(ctx, s, opts); buildErr != nil {
				fmt.Fprintf(a.stderr, "%s Build failed: %v\n", warningIcon, buildErr)
			}
			fmt.Fprintf(a.stdout, "\n%s Watching for changes...\n\n", arrowIcon)
			return nil
		},
		Stdout: a.stdout,
		Logger: s.logger,
	})
	if err != nil {
		return fmt.Errorf("failed to start watcher: %w", err)
	}
	return w.Run(ctx)
}
