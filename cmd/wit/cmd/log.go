// Copyright © 2018 One Concern

package cmd

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/oneconcern/wit/pkg/model"
	"github.com/spf13/cobra"
)

var logCmd = &cobra.Command{
	Use:   "log [branch|commit]",
	Short: "Show the commit history",
	Long: `Show the commits reachable from a branch, a commit, or HEAD when none is given.

Commits are listed as they are reached when walking parents, first parents first.
`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		repo, _, err := openRepo()
		if err != nil {
			wrapFatalln("failed to open repository", err)
			return
		}

		var start string
		if len(args) > 0 {
			start = args[0]
		}
		commits, err := repo.Log(context.Background(), start)
		if err != nil {
			wrapFatalln("failed to read history", err)
			return
		}
		print(cmd, commits)
	},
}

func init() {
	rootCmd.AddCommand(logCmd)
	addFormatters(logCmd, "text", map[string]Formatter{
		"text": logFormatter(),
		"oneline": FormatterFunc(func(w io.Writer, data interface{}) error {
			for _, c := range data.([]model.Commit) {
				firstLine := strings.SplitN(c.Message, "\n", 2)[0]
				if _, err := fmt.Fprintln(w, color.MagentaString(c.ID), firstLine); err != nil {
					return err
				}
			}
			return nil
		}),
	})
}

func logFormatter() FormatterFunc {
	return func(w io.Writer, data interface{}) error {
		magenta := color.New(color.FgMagenta)
		yellow := color.New(color.FgYellow)
		for i, c := range data.([]model.Commit) {
			if i > 0 {
				fmt.Fprintln(w)
			}
			fmt.Fprint(w, "     ID: ")
			magenta.Fprintln(w, c.ID)
			if len(c.Parents) > 0 {
				fmt.Fprintln(w, "Parents:", strings.Join(c.Parents, ", "))
			}
			fmt.Fprint(w, "   Date: ")
			yellow.Fprintln(w, c.Timestamp.Format(model.TimestampLayout))
			fmt.Fprintln(w)
			for _, line := range strings.Split(c.Message, "\n") {
				fmt.Fprintln(w, "    "+line)
			}
		}
		return nil
	}
}
