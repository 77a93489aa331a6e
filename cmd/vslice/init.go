// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"github.com/funkindev/vslice/pkg/scaffold"
	"github.com/funkindev/vslice/pkg/types"

	"github.com/spf13/cobra"
)

type initFlagValues struct {
	name        string
	apiVersion  string
	icon        string
	noSample    bool
	noFolders   bool
	noLibraries bool
}

// newInitCommand creates the `vslice init` command.
func newInitCommand(app *App, flags *rootFlagValues) *cobra.Command {
	initFlags := &initFlagValues{}

	initCmd := &cobra.Command{
		Use:   "init [dir]",
		Short: "Create a new mod project",
		Long: `Create a new V-Slice mod project.

The directory is created if needed. Files that already exist are kept, so
init can also fill in what an existing project is missing.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := flags.projectDir
			if len(args) == 1 {
				dir = args[0]
			}
			if dir == "" {
				dir = "."
			}
			return runInit(cmd, app, dir, initFlags)
		},
	}

	initCmd.Flags().StringVar(&initFlags.name, "name", "", "mod title (default is the directory name)")
	initCmd.Flags().StringVar(&initFlags.apiVersion, "api-version", scaffold.DefaultAPIVersion, "V-Slice API version written to the metadata")
	initCmd.Flags().StringVar(&initFlags.icon, "icon", "", "PNG copied to _polymod_icon.png")
	initCmd.Flags().BoolVar(&initFlags.noSample, "no-sample", false, "skip scripts/MainModule.hxc")
	initCmd.Flags().BoolVar(&initFlags.noFolders, "no-folders", false, "skip the base asset folders")
	initCmd.Flags().BoolVar(&initFlags.noLibraries, "no-libraries", false, "skip vslice-libraries.json")

	return initCmd
}

func runInit(cmd *cobra.Command, app *App, dir string, initFlags *initFlagValues) error {
	result, err := scaffold.CreateProject(scaffold.ProjectOptions{
		Dir:             types.FilesystemPath(dir),
		Name:            initFlags.name,
		IconPath:        types.FilesystemPath(initFlags.icon),
		APIVersion:      initFlags.apiVersion,
		AddSampleScript: !initFlags.noSample,
		AddBaseFolders:  !initFlags.noFolders,
		WithLibraries:   !initFlags.noLibraries,
	})
	if err != nil {
		return err
	}

	for _, p := range result.Created {
		fmt.Fprintf(app.stdout, "  %s %s\n", successIcon, p)
	}
	for _, p := range result.Skipped {
		fmt.Fprintf(app.stdout, "  %s %s %s\n", SubtitleStyle.Render("-"), p, SubtitleStyle.Render("(exists)"))
	}
	fmt.Fprintf(app.stdout, "%s Mod project ready in %s\n", successIcon, CmdStyle.Render(dir))
	return nil
}
