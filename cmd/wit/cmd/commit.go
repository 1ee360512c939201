// Copyright © 2018 One Concern

package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/docker/go-units"
	"github.com/fatih/color"
	"github.com/oneconcern/wit/pkg/core"
	"github.com/spf13/cobra"
)

var commitCmd = &cobra.Command{
	Use:   "commit [message]",
	Short: "Record the staging area as a new commit",
	Long: `Record a full snapshot of the staging area as a new commit.

HEAD moves to the new commit. The active branch moves along when it pointed at HEAD.
The message is given either as an argument or with the --message flag.
A message is required: an empty one is refused.
`,
	Aliases: []string{"ci"},
	Args:    cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		message := witFlags.commit.message
		if len(args) > 0 {
			if message != "" {
				wrapFatalln("the commit message is given twice, as an argument and with --message", nil)
				return
			}
			message = args[0]
		}
		if message == "" {
			wrapFatalln("a commit message is required", nil)
			return
		}

		repo, _, err := openRepo()
		if err != nil {
			wrapFatalln("failed to open repository", err)
			return
		}

		result, err := repo.Commit(context.Background(), message)
		if err != nil {
			wrapFatalln("failed to commit", err)
			return
		}
		print(cmd, commitResult{CommitResult: result, Message: message})
	},
}

type commitResult struct {
	core.CommitResult `yaml:",inline"`
	Message           string `json:"message" yaml:"message"`
}

func init() {
	rootCmd.AddCommand(commitCmd)
	addMessageFlag(commitCmd)
	addFormatters(commitCmd, "text", map[string]Formatter{
		"text": commitFormatter(),
	})
}

func commitFormatter() FormatterFunc {
	return func(w io.Writer, data interface{}) error {
		val := data.(commitResult)
		where := "detached HEAD"
		if val.Branch != "" {
			where = val.Branch
		}
		if _, err := fmt.Fprintf(w, "[%s %s] %s\n", where, color.MagentaString(val.ID), val.Message); err != nil {
			return err
		}
		_, err := fmt.Fprintf(w, " %d file(s), %s\n", val.Files, units.HumanSize(float64(val.Size)))
		return err
	}
}
