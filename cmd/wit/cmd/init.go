// Copyright © 2018 One Concern

package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/oneconcern/wit/pkg/core"
	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init [directory]",
	Short: "Create an empty repository",
	Long: `Create an empty repository in the given directory, or in the current directory.

This creates the .wit directory with an empty staging area, and makes master the active branch.
`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cwd, err := getwd()
		if err != nil {
			wrapFatalln("cannot determine working directory", err)
			return
		}
		dir := cwd
		if len(args) > 0 {
			dir = absPath(cwd, args[0])
		}

		repo, err := core.Init(context.Background(), appFs, dir, core.WithLogger(logger))
		if err != nil {
			wrapFatalln("failed to initialize repository", err)
			return
		}
		print(cmd, initResult{Control: repo.Layout().Control()})
	},
}

type initResult struct {
	Control string `json:"control" yaml:"control"`
}

func init() {
	rootCmd.AddCommand(initCmd)
	addFormatters(initCmd, "text", map[string]Formatter{
		"text": FormatterFunc(func(w io.Writer, data interface{}) error {
			_, err := fmt.Fprintln(w, "Initialized empty wit repository in", data.(initResult).Control)
			return err
		}),
	})
}
