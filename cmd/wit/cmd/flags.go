// Copyright © 2018 One Concern

package cmd

import (
	"github.com/oneconcern/wit/pkg/dlogger"
	"github.com/spf13/cobra"
)

type flagsT struct {
	root struct {
		logLevel string
		logFile  string
		noColor  bool
		format   string
		cpuProf  string
		memProf  string
	}
	commit struct {
		message string
	}
	diff struct {
		staged bool
	}
	doc struct {
		target string
	}
}

var witFlags = flagsT{}

func addLogLevelFlag(cmd *cobra.Command) string {
	c := "loglevel"
	cmd.PersistentFlags().StringVar(&witFlags.root.logLevel, c, dlogger.LogLevelWarn,
		"The logging level: debug, info, warn, error or none")
	return c
}

func addLogFileFlag(cmd *cobra.Command) string {
	c := "logfile"
	cmd.PersistentFlags().StringVar(&witFlags.root.logFile, c, "", "Write logs to this file instead of stderr")
	return c
}

func addNoColorFlag(cmd *cobra.Command) string {
	c := "no-color"
	cmd.PersistentFlags().BoolVar(&witFlags.root.noColor, c, false, "Disable colored output")
	return c
}

func addFormatFlag(cmd *cobra.Command) string {
	c := "format"
	cmd.PersistentFlags().StringVar(&witFlags.root.format, c, "",
		"Output format: json, yaml, or a format specific to the command (defaults to the command's own)")
	return c
}

func addCPUProfFlag(cmd *cobra.Command) string {
	c := "cpuprof"
	cmd.PersistentFlags().StringVar(&witFlags.root.cpuProf, c, "", "Write a cpu profile to this file")
	_ = cmd.PersistentFlags().MarkHidden(c)
	return c
}

func addMemProfFlag(cmd *cobra.Command) string {
	c := "memprof"
	cmd.PersistentFlags().StringVar(&witFlags.root.memProf, c, "", "Write a heap profile to this file")
	_ = cmd.PersistentFlags().MarkHidden(c)
	return c
}

func addMessageFlag(cmd *cobra.Command) string {
	c := "message"
	cmd.Flags().StringVarP(&witFlags.commit.message, c, "m", "", "The message describing the commit")
	return c
}

func addStagedFlag(cmd *cobra.Command) string {
	c := "staged"
	cmd.Flags().BoolVar(&witFlags.diff.staged, c, false, "Show the changes to be committed instead of the changes not staged")
	return c
}

func addTargetFlag(cmd *cobra.Command) string {
	c := "target-dir"
	cmd.Flags().StringVar(&witFlags.doc.target, c, ".", "The target directory where to generate the markdown documentation")
	return c
}
