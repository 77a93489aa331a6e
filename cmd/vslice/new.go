// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/funkindev/vslice/internal/issue"
	"github.com/funkindev/vslice/pkg/scaffold"

	"github.com/spf13/cobra"
)

// newNewCommand creates the `vslice new` command.
func newNewCommand(app *App, flags *rootFlagValues) *cobra.Command {
	var dir string

	kinds := make([]string, 0, len(scaffold.Kinds()))
	for _, k := range scaffold.Kinds() {
		kinds = append(kinds, k.String())
	}

	newCmd := &cobra.Command{
		Use:   "new <kind> <ClassName>",
		Short: "Create a scripted class from a template",
		Long: `Create a scripted class from a template.

Kinds: ` + strings.Join(kinds, ", "),
		Args:      cobra.ExactArgs(2),
		ValidArgs: kinds,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runNew(cmd, app, flags, dir, args[0], args[1])
		},
	}
	newCmd.Flags().StringVar(&dir, "dir", "", "target directory, relative to the project (default \"scripts\")")

	return newCmd
}

func runNew(cmd *cobra.Command, app *App, flags *rootFlagValues, dir, kindName, className string) error {
	kind, err := scaffold.ParseScriptKind(kindName)
	if err != nil {
		return withIssue(err, issue.UnknownScriptKindId)
	}

	projectDir, err := resolveProjectDir(flags.projectDir)
	if err != nil {
		return err
	}
	if dir == "" {
		dir = scaffold.ScriptsDir
	}
	if !filepath.IsAbs(dir) {
		dir = filepath.Join(projectDir, dir)
	}

	path, err := scaffold.NewScript(dir, kind, className)
	if err != nil {
		return err
	}

	display := path
	if rel, relErr := filepath.Rel(projectDir, path); relErr == nil {
		display = filepath.ToSlash(rel)
	}
	fmt.Fprintf(app.stdout, "%s Created %s %s\n", successIcon, kind, CmdStyle.Render(display))
	return nil
}
