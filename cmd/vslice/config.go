// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/funkindev/vslice/internal/config"
	"github.com/funkindev/vslice/pkg/types"

	"github.com/spf13/cobra"
)

// newConfigCommand creates the `vslice config` command tree.
// Subcommands that read configuration use the App's config provider.
func newConfigCommand(app *App, flags *rootFlagValues) *cobra.Command {
	cfgCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage vslice configuration",
		Long: `Manage vslice configuration.

Configuration is stored in:
  - Linux: ~/.config/vslice/config.cue
  - macOS: ~/Library/Application Support/vslice/config.cue
  - Windows: %APPDATA%\vslice\config.cue

A config.cue at the project root is used when the user file is absent.
VSLICE_* environment variables override file values, e.g.
VSLICE_HTTP_TIMEOUT=2m.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	var format string
	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfig(cmd, app, flags, format)
		},
	}
	showCmd.Flags().StringVarP(&format, "format", "f", config.FormatText, "output format: text, json or toml")

	cfgCmd.AddCommand(
		showCmd,
		&cobra.Command{
			Use:   "init",
			Short: "Create the default configuration file",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return initConfig(app)
			},
		},
		&cobra.Command{
			Use:   "path",
			Short: "Show the configuration file path",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return showConfigPath(app, flags)
			},
		},
	)

	return cfgCmd
}

func showConfig(cmd *cobra.Command, app *App, flags *rootFlagValues, format string) error {
	s, err := app.newSession(cmd.Context(), flags)
	if err != nil {
		return err
	}

	data, err := config.Marshal(s.cfg, format)
	if err != nil {
		return err
	}

	if format == "" || format == config.FormatText {
		path, exists, err := config.ResolvePath(loadOptions(flags, s.projectDir))
		if err != nil {
			return err
		}
		source := SubtitleStyle.Render("(using defaults)")
		if exists {
			source = path
		}
		fmt.Fprintln(app.stdout, TitleStyle.Render("Current Configuration"))
		fmt.Fprintf(app.stdout, "%s: %s\n\n", CmdStyle.Render("Config file"), source)
	}

	fmt.Fprint(app.stdout, string(data))
	return nil
}

func initConfig(app *App) error {
	path, created, err := config.CreateDefaultConfig()
	if err != nil {
		return fmt.Errorf("failed to create config: %w", err)
	}
	if !created {
		fmt.Fprintf(app.stdout, "%s Configuration already exists at %s\n", warningIcon, path)
		return nil
	}
	fmt.Fprintf(app.stdout, "%s Created default configuration at %s\n", successIcon, path)
	return nil
}

func showConfigPath(app *App, flags *rootFlagValues) error {
	projectDir, err := resolveProjectDir(flags.projectDir)
	if err != nil {
		return err
	}
	path, exists, err := config.ResolvePath(loadOptions(flags, projectDir))
	if err != nil {
		return err
	}

	fmt.Fprintf(app.stdout, "Config directory: %s\n", filepath.Dir(path))
	if exists {
		fmt.Fprintf(app.stdout, "Config file: %s\n", path)
	} else {
		fmt.Fprintf(app.stdout, "Config file: %s %s\n", path, SubtitleStyle.Render("(not created)"))
	}
	return nil
}

func loadOptions(flags *rootFlagValues, projectDir string) config.LoadOptions {
	return config.LoadOptions{
		ConfigFilePath: types.FilesystemPath(flags.configPath),
		BaseDir:        types.FilesystemPath(projectDir),
	}
}
