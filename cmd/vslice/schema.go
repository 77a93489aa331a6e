// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/funkindev/vslice/pkg/schemas"

	"github.com/spf13/cobra"
)

// newSchemaCommand creates the `vslice schema` command tree.
func newSchemaCommand(app *App) *cobra.Command {
	schemaCmd := &cobra.Command{
		Use:   "schema",
		Short: "Map mod data files to their JSON schemas",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	var baseURL string
	matchCmd := &cobra.Command{
		Use:   "match <file>...",
		Short: "Print the schema of project-relative data files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, file := range args {
				rule, ok := schemas.Match(file)
				if !ok {
					fmt.Fprintf(app.stdout, "%s: %s\n", file, SubtitleStyle.Render("no schema"))
					continue
				}
				fmt.Fprintf(app.stdout, "%s: %s (%s)\n", file, rule.Name, CmdStyle.Render(rule.URL(baseURL)))
			}
			return nil
		},
	}
	matchCmd.Flags().StringVar(&baseURL, "base-url", "", "prefix for schema file names")

	var assocBaseURL string
	assocCmd := &cobra.Command{
		Use:   "associations",
		Short: "Print editor json.schemas associations as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := json.MarshalIndent(schemas.Associations(assocBaseURL), "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(app.stdout, string(data))
			return nil
		},
	}
	assocCmd.Flags().StringVar(&assocBaseURL, "base-url", "", "prefix for schema file names")

	schemaCmd.AddCommand(matchCmd, assocCmd)
	return schemaCmd
}
