// Copyright © 2018 One Concern

package cmd

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
	"github.com/oneconcern/wit/internal"
	"github.com/oneconcern/wit/pkg/dlogger"
	"github.com/oneconcern/wit/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "wit",
	Short: "wit keeps the history of a local directory",
	Long: `wit is a minimal version control system for a local directory.

It works with a git like interface: files are added to a staging area, then committed as a full snapshot.
Branches point to commits, and checkout restores a branch or a commit into the working tree.

All the state lives in a .wit directory at the root of the working tree.
`,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if witFlags.root.noColor || !isTerminal(cmd.OutOrStdout()) {
			color.NoColor = true
		}

		var outputs []string
		if witFlags.root.logFile != "" {
			outputs = append(outputs, witFlags.root.logFile)
		}
		l, err := dlogger.GetLogger(witFlags.root.logLevel, outputs...)
		if err != nil {
			wrapFatalln("failed to set up logging", err)
			return
		}
		logger = l
		if configFileUsed != "" {
			logger.Debug("using config file", zap.String("path", configFileUsed))
		}

		if witFlags.root.cpuProf != "" {
			stopCPUProf, err = internal.StartCPUProfile(witFlags.root.cpuProf, logger)
			if err != nil {
				wrapFatalln("failed to start cpu profile", err)
				return
			}
		}
	},
	// upstream api note:  *PostRun functions aren't called in case of a panic() in Run
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if stopCPUProf != nil {
			stopCPUProf()
			stopCPUProf = nil
		}
		if witFlags.root.memProf != "" {
			if err := internal.WriteMemProfile(witFlags.root.memProf, logger); err != nil {
				wrapFatalln("failed to write heap profile", err)
			}
		}
		_ = logger.Sync()
	},
}

var (
	config         *CLIConfig
	configFileUsed string
	logger         = zap.NewNop()
	stopCPUProf    func()

	// stdout translates color escape sequences on windows consoles
	stdout = colorable.NewColorableStdout()
)

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	rootCmd.SetOut(stdout)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		osExit(1)
	}
}

func init() {
	log.SetFlags(0)
	cobra.OnInitialize(initConfig)

	bindFlag("loglevel", addLogLevelFlag(rootCmd))
	bindFlag("logfile", addLogFileFlag(rootCmd))
	bindFlag("nocolor", addNoColorFlag(rootCmd))
	bindFlag("format", addFormatFlag(rootCmd))
	addCPUProfFlag(rootCmd)
	addMemProfFlag(rootCmd)
}

// isTerminal tells if colors may be written to w
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if w == stdout {
		f, ok = os.Stdout, true
	}
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func bindFlag(key, flag string) {
	if err := viper.BindPFlag(key, rootCmd.PersistentFlags().Lookup(flag)); err != nil {
		log.Fatalln(err)
	}
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if os.Getenv("WIT_CONFIG") != "" {
		viper.SetConfigFile(os.Getenv("WIT_CONFIG"))
	} else {
		viper.AddConfigPath(".")
		viper.AddConfigPath("$HOME/.wit")
		viper.SetConfigName("wit")
	}

	viper.SetEnvPrefix("wit")
	viper.AutomaticEnv() // read in environment variables that match

	configFileUsed = ""
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			wrapFatalln("failed to read config file", err)
			return
		}
	} else {
		configFileUsed = viper.ConfigFileUsed()
	}

	var err error
	config, err = newConfig()
	if err != nil {
		wrapFatalln("failed to read configuration", err)
		return
	}
	config.setRootFlags(&witFlags)
}
