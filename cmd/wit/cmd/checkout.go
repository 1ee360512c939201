// Copyright © 2018 One Concern

package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/oneconcern/wit/pkg/core"
	"github.com/spf13/cobra"
)

var checkoutCmd = &cobra.Command{
	Use:   "checkout <branch|commit>",
	Short: "Restore a branch or a commit",
	Long: `Restore a branch or a commit into the working tree and the staging area.

Checking out a branch makes it the active branch. Checking out a commit id, or HEAD, detaches HEAD.
Checkout is refused while there are changes to be committed or changes not staged for commit.
Untracked files are left untouched.
`,
	Aliases: []string{"co"},
	Args:    cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		repo, _, err := openRepo()
		if err != nil {
			wrapFatalln("failed to open repository", err)
			return
		}

		result, err := repo.Checkout(context.Background(), args[0])
		if err != nil {
			wrapFatalln("failed to checkout "+args[0], err)
			return
		}
		print(cmd, result)
	},
}

func init() {
	rootCmd.AddCommand(checkoutCmd)
	addFormatters(checkoutCmd, "text", map[string]Formatter{
		"text": FormatterFunc(func(w io.Writer, data interface{}) error {
			val := data.(core.CheckoutResult)
			var err error
			if val.Branch != "" {
				_, err = fmt.Fprintf(w, "Switched to branch %s at %s\n", color.YellowString(val.Branch), color.MagentaString(val.ID))
			} else {
				_, err = fmt.Fprintf(w, "HEAD is now detached at %s\n", color.MagentaString(val.ID))
			}
			return err
		}),
	})
}
