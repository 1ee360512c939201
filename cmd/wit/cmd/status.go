// Copyright © 2018 One Concern

package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/oneconcern/wit/pkg/diff"
	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the status of the working tree",
	Long: `Show the status of the working tree.

Changes to be committed are the files of the staging area which differ from the HEAD commit.
Changes not staged for commit are the files of the staging area which differ from the working tree.
Untracked files are found in the working tree but not in the staging area.
`,
	Aliases: []string{"st"},
	Args:    cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		repo, _, err := openRepo()
		if err != nil {
			wrapFatalln("failed to open repository", err)
			return
		}

		ctx := context.Background()
		head, err := repo.HeadState(ctx)
		if err != nil {
			wrapFatalln("failed to read HEAD", err)
			return
		}
		report, err := repo.Status(ctx)
		if err != nil {
			wrapFatalln("failed to compute status", err)
			return
		}
		print(cmd, statusResult{Head: head.String(), Report: report})
	},
}

type statusResult struct {
	Head        string `json:"head" yaml:"head"`
	diff.Report `yaml:",inline"`
}

func init() {
	rootCmd.AddCommand(statusCmd)
	addFormatters(statusCmd, "text", map[string]Formatter{
		"text": statusFormatter(),
	})
}

func statusFormatter() FormatterFunc {
	return func(w io.Writer, data interface{}) error {
		val := data.(statusResult)
		fmt.Fprintln(w, val.Head)

		fmt.Fprintln(w, "Changes to be committed:")
		if !val.HasCommit {
			fmt.Fprintln(w, "There is no commit id yet.")
		}
		for _, pth := range val.ToBeCommitted {
			fmt.Fprintln(w, "\t"+color.GreenString(pth))
		}

		fmt.Fprintln(w)
		fmt.Fprintln(w, "Changes not staged for commit:")
		for _, pth := range val.NotStaged {
			fmt.Fprintln(w, "\t"+color.RedString(pth))
		}

		fmt.Fprintln(w)
		fmt.Fprintln(w, "Untracked files:")
		for _, pth := range val.Untracked {
			fmt.Fprintln(w, "\t"+color.RedString(pth))
		}
		return nil
	}
}
