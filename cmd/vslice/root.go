// SPDX-License-Identifier: MPL-2.0

// Package cmd contains all CLI commands for vslice.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"runtime/debug"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"
)

// NewRootCommand builds the vslice command tree around app.
func NewRootCommand(app *App) *cobra.Command {
	flags := &rootFlagValues{}

	rootCmd := &cobra.Command{
		Use:   "vslice",
		Short: "Library manager and mod packager for Friday Night Funkin' V-Slice mods",
		Long: TitleStyle.Render("vslice") + SubtitleStyle.Render(" - V-Slice mod tooling") + `

vslice keeps the HScript libraries of a Friday Night Funkin' V-Slice mod
up to date and packages the mod folder into a distributable archive.

Libraries are declared in 'vslice-libraries.json' at the project root and
cached in ~/.vslice_libs_cache (override with VSLICE_CACHE_DIR).

` + SubtitleStyle.Render("Examples:") + `
  vslice init my-mod            Create a new mod project
  vslice libs update            Download the configured libraries
  vslice build                  Package the mod into build/<title>-<version>.zip
  vslice build --watch          Rebuild whenever the mod changes
  vslice check                  Look for blacklisted classes in scripts
  vslice new Song MySong        Create scripts/MySong.hxc from a template`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVar(&flags.configPath, "config", "", "config file (default is $HOME/.config/vslice/config.cue)")
	rootCmd.PersistentFlags().StringVarP(&flags.projectDir, "project", "C", "", "mod project directory (default is the working directory)")

	rootCmd.AddCommand(
		newLibsCommand(app, flags),
		newBuildCommand(app, flags),
		newInitCommand(app, flags),
		newNewCommand(app, flags),
		newCheckCommand(app, flags),
		newSchemaCommand(app),
		newAssetsCommand(app, flags),
		newConfigCommand(app, flags),
	)

	wrapErrors(app, flags, rootCmd)
	return rootCmd
}

// wrapErrors routes the errors of every RunE in the tree through
// App.reportError.
func wrapErrors(app *App, flags *rootFlagValues, c *cobra.Command) {
	if run := c.RunE; run != nil {
		c.RunE = func(cmd *cobra.Command, args []string) error {
			return app.reportError(run(cmd, args), flags.verbose)
		}
	}
	for _, child := range c.Commands() {
		wrapErrors(app, flags, child)
	}
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version != "dev" {
		return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
	}
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
		return info.Main.Version
	}
	return "dev (built from source)"
}

// Execute builds the command tree and runs it. This is called by main.main().
func Execute() {
	app, err := NewApp(Dependencies{})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	// Pass version via fang.WithVersion() since fang overrides rootCmd.Version
	if err := fang.Execute(
		context.Background(),
		NewRootCommand(app),
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.Code.Status())
		}
		os.Exit(1)
	}
}
