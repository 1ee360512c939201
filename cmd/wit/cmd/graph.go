// Copyright © 2018 One Concern

package cmd

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/oneconcern/wit/pkg/model"
	"github.com/oneconcern/wit/pkg/snapshot"
	"github.com/spf13/cobra"
)

var graphCmd = &cobra.Command{
	Use:   "graph [branch|commit]",
	Short: "Show the parent graph of the history",
	Long: `Show the edges between commits and their parents, from a branch, a commit, or HEAD when none is given.

Formats:
	list: one "child -> parent" line per edge
	dot:  a graphviz digraph, to render with e.g. "wit graph --format dot | dot -Tpng > graph.png"
	json, yaml: the list of edges
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
		history, err := repo.History(context.Background(), start)
		if err != nil {
			wrapFatalln("failed to read history", err)
			return
		}
		edges, err := snapshot.Edges(history)
		if err != nil {
			wrapFatalln("failed to walk history", err)
			return
		}
		print(cmd, edges)
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)
	addFormatters(graphCmd, "list", map[string]Formatter{
		"list": FormatterFunc(func(w io.Writer, data interface{}) error {
			for _, edge := range data.([]model.Edge) {
				var err error
				if edge.IsRoot() {
					_, err = fmt.Fprintln(w, edge.Child)
				} else {
					_, err = fmt.Fprintln(w, edge.Child, "->", edge.Parent)
				}
				if err != nil {
					return err
				}
			}
			return nil
		}),
		"dot": dotFormatter(),
	})
}

// nodeLabel splits a commit id on two lines
func nodeLabel(id string) string {
	half := len(id) / 2
	return id[:half] + `\n` + id[half:]
}

func dotFormatter() FormatterFunc {
	return func(w io.Writer, data interface{}) error {
		edges := data.([]model.Edge)

		var b strings.Builder
		b.WriteString("digraph wit {\n")
		b.WriteString("\tnode [shape=box, fontname=monospace];\n")
		seen := make(map[string]struct{})
		for _, edge := range edges {
			for _, id := range []string{edge.Child, edge.Parent} {
				if id == "" {
					continue
				}
				if _, ok := seen[id]; ok {
					continue
				}
				seen[id] = struct{}{}
				fmt.Fprintf(&b, "\t%q [label=\"%s\"];\n", id, nodeLabel(id))
			}
		}
		for _, edge := range edges {
			if !edge.IsRoot() {
				fmt.Fprintf(&b, "\t%q -> %q;\n", edge.Child, edge.Parent)
			}
		}
		b.WriteString("}\n")

		_, err := io.WriteString(w, b.String())
		return err
	}
}
