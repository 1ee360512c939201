// Copyright © 2018 One Concern

package cmd

import (
	"context"
	"fmt"

	"github.com/oneconcern/wit/pkg/core"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var addCmd = &cobra.Command{
	Use:   "add <path>...",
	Short: "Add files and directories to the staging area",
	Long: `Add files and directories to the staging area.

A directory is copied recursively and replaces its previous copy in the staging area.
Adding the root of the repository replaces the whole staging area.
Each path goes to the repository found from that path, searching upward: it may lie outside
the current directory, or inside a nested repository.
`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cwd, err := getwd()
		if err != nil {
			wrapFatalln("cannot determine working directory", err)
			return
		}

		// each path is staged in the repository enclosing it
		repos := make(map[string]*core.Repository)
		for _, arg := range args {
			pth := absPath(cwd, arg)
			repo, err := repoAt(pth, repos)
			if err != nil {
				wrapFatalln(fmt.Sprintf("failed to open repository for %s", arg), err)
				return
			}
			if err = repo.Add(context.Background(), pth); err != nil {
				wrapFatalln(fmt.Sprintf("failed to add %s", arg), err)
				return
			}
			logger.Debug("staged", zap.String("path", pth), zap.String("repo", repo.Root()))
		}
	},
}

func repoAt(pth string, repos map[string]*core.Repository) (*core.Repository, error) {
	root, err := core.Locate(appFs, pth)
	if err != nil {
		return nil, err
	}
	if repo, ok := repos[root]; ok {
		return repo, nil
	}
	repo, err := core.Open(appFs, root, core.WithLogger(logger))
	if err != nil {
		return nil, err
	}
	repos[root] = repo
	return repo, nil
}

func init() {
	rootCmd.AddCommand(addCmd)
}
