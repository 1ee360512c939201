// Copyright © 2018 One Concern

package cmd

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/oneconcern/wit/pkg/core"
	"github.com/spf13/cobra"
)

var diffCmd = &cobra.Command{
	Use:   "diff [path]...",
	Short: "Show changes as unified diffs",
	Long: `Show the changes not staged for commit, between the staging area and the working tree.

With --staged, show the changes to be committed, between the HEAD commit and the staging area.
Paths restrict the output to the files at or below them.
`,
	Run: func(cmd *cobra.Command, args []string) {
		repo, cwd, err := openRepo()
		if err != nil {
			wrapFatalln("failed to open repository", err)
			return
		}

		paths := make([]string, 0, len(args))
		for _, arg := range args {
			rel, ok := repo.Layout().Rel(absPath(cwd, arg))
			if !ok {
				wrapFatalln(fmt.Sprintf("path %s is outside of the repository", arg), nil)
				return
			}
			paths = append(paths, rel)
		}

		diffs, err := repo.Diff(context.Background(), witFlags.diff.staged, paths...)
		if err != nil {
			wrapFatalln("failed to compute diff", err)
			return
		}
		print(cmd, diffs)
	},
}

func init() {
	rootCmd.AddCommand(diffCmd)
	addStagedFlag(diffCmd)
	addFormatters(diffCmd, "patch", map[string]Formatter{
		"patch": patchFormatter(),
		"name-only": FormatterFunc(func(w io.Writer, data interface{}) error {
			for _, d := range data.([]core.FileDiff) {
				if _, err := fmt.Fprintln(w, d.Path); err != nil {
					return err
				}
			}
			return nil
		}),
	})
}

func patchFormatter() FormatterFunc {
	return func(w io.Writer, data interface{}) error {
		bold := color.New(color.Bold)
		for _, d := range data.([]core.FileDiff) {
			for _, line := range strings.Split(strings.TrimSuffix(d.Patch, "\n"), "\n") {
				switch {
				case strings.HasPrefix(line, "+++"), strings.HasPrefix(line, "---"):
					line = bold.Sprint(line)
				case strings.HasPrefix(line, "@@"):
					line = color.CyanString(line)
				case strings.HasPrefix(line, "+"):
					line = color.GreenString(line)
				case strings.HasPrefix(line, "-"):
					line = color.RedString(line)
				}
				if _, err := fmt.Fprintln(w, line); err != nil {
					return err
				}
			}
		}
		return nil
	}
}
