// Copyright © 2018 One Concern

package cmd

import (
	"context"

	"github.com/oneconcern/wit/pkg/core"
	"github.com/spf13/cobra"
)

var mergeCmd = &cobra.Command{
	Use:   "merge <branch|commit>",
	Short: "Record a merge commit with a branch or a commit",
	Long: `Record a merge commit, with HEAD and the given branch or commit as parents.

The content of the merge commit is the content of the target: it replaces the staging area.
The staging area must match the HEAD commit. The working tree is left untouched.
`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		repo, _, err := openRepo()
		if err != nil {
			wrapFatalln("failed to open repository", err)
			return
		}

		result, err := repo.Merge(context.Background(), args[0])
		if err != nil {
			wrapFatalln("failed to merge "+args[0], err)
			return
		}
		print(cmd, commitResult{CommitResult: result, Message: core.MergeMessage(args[0])})
	},
}

func init() {
	rootCmd.AddCommand(mergeCmd)
	addFormatters(mergeCmd, "text", map[string]Formatter{
		"text": commitFormatter(),
	})
}
