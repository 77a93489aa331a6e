// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/funkindev/vslice/pkg/assets"
	"github.com/funkindev/vslice/pkg/types"

	"github.com/spf13/cobra"
)

// newAssetsCommand creates the `vslice assets` command.
func newAssetsCommand(app *App, flags *rootFlagValues) *cobra.Command {
	var file string

	assetsCmd := &cobra.Command{
		Use:   "assets <property>",
		Short: "Suggest asset names for a data file property",
		Long: `Suggest asset names for a property of a mod data file.

Properties: ` + strings.Join(assets.Properties(), ", ") + `

assetPath suggestions depend on the data file being edited; pass it with
--file.`,
		Args:      cobra.ExactArgs(1),
		ValidArgs: assets.Properties(),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAssets(app, flags, args[0], file)
		},
	}
	assetsCmd.Flags().StringVar(&file, "file", "", "data file the property belongs to")

	return assetsCmd
}

func runAssets(app *App, flags *rootFlagValues, property, file string) error {
	projectDir, err := resolveProjectDir(flags.projectDir)
	if err != nil {
		return err
	}

	suggestions, err := assets.Suggest(projectDir, property, filepath.ToSlash(file))
	if err != nil {
		if errors.Is(err, assets.ErrUnknownProperty) {
			return &ExitError{Code: types.ExitFailure, Err: err}
		}
		return err
	}

	if len(suggestions) == 0 {
		fmt.Fprintln(app.stdout, SubtitleStyle.Render("(no matching assets)"))
		return nil
	}
	for _, sg := range suggestions {
		fmt.Fprintf(app.stdout, "%s\t%s\n", sg.Value, SubtitleStyle.Render(sg.Kind))
	}
	return nil
}
