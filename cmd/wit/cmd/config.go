package cmd

import (
	"github.com/spf13/viper"
)

// CLIConfig describes the CLI configuration.
//
// Values come from the command line flags, WIT_* environment variables or the config file, in this order.
type CLIConfig struct {
	LogLevel string `json:"loglevel" yaml:"loglevel" mapstructure:"loglevel"`
	LogFile  string `json:"logfile" yaml:"logfile" mapstructure:"logfile"`
	Format   string `json:"format" yaml:"format" mapstructure:"format"`
	NoColor  bool   `json:"nocolor" yaml:"nocolor" mapstructure:"nocolor"`
}

func newConfig() (*CLIConfig, error) {
	var config CLIConfig
	err := viper.Unmarshal(&config)
	if err != nil {
		return nil, err
	}
	return &config, nil
}

func (c *CLIConfig) setRootFlags(flags *flagsT) {
	if c.LogLevel != "" {
		flags.root.logLevel = c.LogLevel
	}
	flags.root.logFile = c.LogFile
	flags.root.format = c.Format
	flags.root.noColor = c.NoColor
}
