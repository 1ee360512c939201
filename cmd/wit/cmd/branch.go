// Copyright © 2018 One Concern

package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/oneconcern/wit/pkg/core"
	"github.com/spf13/cobra"
)

var branchCmd = &cobra.Command{
	Use:   "branch [name]",
	Short: "Create a branch, or list the branches",
	Long: `Create a branch pointing at the HEAD commit.

Without a name, list the known branches. The active branch is marked with a '*'.
The new branch is not checked out.
`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		repo, _, err := openRepo()
		if err != nil {
			wrapFatalln("failed to open repository", err)
			return
		}
		ctx := context.Background()

		if len(args) == 0 {
			branches, erb := repo.Branches(ctx)
			if erb != nil {
				wrapFatalln("failed to list branches", erb)
				return
			}
			print(cmd, branchListResult{Branches: branches})
			return
		}

		id, err := repo.Branch(ctx, args[0])
		if err != nil {
			wrapFatalln("failed to create branch "+args[0], err)
			return
		}
		print(cmd, branchListResult{Branches: []core.BranchInfo{{Name: args[0], Commit: id}}, Created: true})
	},
}

type branchListResult struct {
	Branches []core.BranchInfo `json:"branches" yaml:"branches"`
	Created  bool              `json:"-" yaml:"-"`
}

func init() {
	rootCmd.AddCommand(branchCmd)
	addFormatters(branchCmd, "list", map[string]Formatter{
		"list": branchListFormatter(),
	})
}

func branchListFormatter() FormatterFunc {
	return func(w io.Writer, data interface{}) error {
		val := data.(branchListResult)
		if val.Created {
			b := val.Branches[0]
			_, err := fmt.Fprintf(w, "Created branch %s at %s\n", b.Name, color.MagentaString(b.Commit))
			return err
		}

		table := uitable.New()
		for _, b := range val.Branches {
			marker := " "
			if b.Active {
				marker = color.YellowString("*")
			}
			table.AddRow(marker, b.Name, b.Commit)
		}
		if len(val.Branches) == 0 {
			return nil
		}
		_, err := fmt.Fprintln(w, table)
		return err
	}
}
