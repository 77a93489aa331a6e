// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/funkindev/vslice/internal/issue"
	"github.com/funkindev/vslice/pkg/scaffold"
	"github.com/funkindev/vslice/pkg/scriptcheck"
	"github.com/funkindev/vslice/pkg/types"

	"github.com/spf13/cobra"
)

// newCheckCommand creates the `vslice check` command.
func newCheckCommand(app *App, flags *rootFlagValues) *cobra.Command {
	var fix bool

	checkCmd := &cobra.Command{
		Use:   "check [paths...]",
		Short: "Check scripts for blacklisted classes and lint the mod metadata",
		Long: `Check scripts for usages of classes the game blocks in HScript.

Without paths, every .hxc file under the project's scripts folder is
checked and _polymod_meta.json is linted as well. With --fix, import
statements of blacklisted classes are removed.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, app, flags, args, fix)
		},
	}
	checkCmd.Flags().BoolVar(&fix, "fix", false, "remove blacklisted import statements")

	return checkCmd
}

func runCheck(cmd *cobra.Command, app *App, flags *rootFlagValues, paths []string, fix bool) error {
	projectDir, err := resolveProjectDir(flags.projectDir)
	if err != nil {
		return err
	}

	lintMeta := len(paths) == 0
	if lintMeta {
		scriptsDir := filepath.Join(projectDir, scaffold.ScriptsDir)
		if info, statErr := os.Stat(scriptsDir); statErr == nil && info.IsDir() {
			paths = []string{scriptsDir}
		}
	}
	scripts, err := scriptcheck.CollectScripts(paths)
	if err != nil {
		return err
	}

	checker := scriptcheck.NewChecker(nil)
	scriptProblems, metaProblems := 0, 0

	if fix {
		for _, script := range scripts {
			n, err := checker.FixFile(script)
			if err != nil {
				return err
			}
			if n > 0 {
				fmt.Fprintf(app.stdout, "%s Removed %d blacklisted import(s) from %s\n", successIcon, n, displayPath(projectDir, script))
			}
		}
	}

	for _, script := range scripts {
		findings, err := checker.CheckFile(script)
		if err != nil {
			return err
		}
		for _, f := range findings {
			f.File = displayPath(projectDir, f.File)
			fmt.Fprintf(app.stdout, "%s %s\n", errorIcon, f)
		}
		scriptProblems += len(findings)
	}

	if lintMeta {
		metaIssues, err := scriptcheck.CheckMeta(projectDir)
		switch {
		case errors.Is(err, scriptcheck.ErrMetaNotFound):
			fmt.Fprintf(app.stdout, "%s %s not found\n", warningIcon, scriptcheck.MetaFileName)
			metaProblems++
		case err != nil:
			return err
		}
		for _, mi := range metaIssues {
			mi.File = displayPath(projectDir, mi.File)
			fmt.Fprintf(app.stdout, "%s %s\n", warningIcon, mi)
		}
		metaProblems += len(metaIssues)
	}

	if scriptProblems+metaProblems > 0 {
		err := fmt.Errorf("%d problem(s) found", scriptProblems+metaProblems)
		issueID := issue.BlacklistedImportId
		if scriptProblems == 0 {
			issueID = issue.InvalidMetaId
		}
		renderIssue(app.stderr, issueID)
		return &ExitError{Code: types.ExitFindings, Err: err}
	}

	fmt.Fprintf(app.stdout, "%s %d script(s) checked, no problems found\n", successIcon, len(scripts))
	return nil
}

// displayPath shortens path to a slash-separated project-relative path when
// it lies inside projectDir.
func displayPath(projectDir, path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	rel, err := filepath.Rel(projectDir, abs)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return path
	}
	return filepath.ToSlash(rel)
}
