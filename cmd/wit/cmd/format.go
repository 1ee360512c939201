package cmd

import (
	"fmt"
	"io"
	"sort"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v2"
)

// Formatter renders the result of a command
type Formatter interface {
	Format(io.Writer, interface{}) error
}

// FormatterFunc is a function usable as a Formatter
type FormatterFunc func(io.Writer, interface{}) error

// Format the data with this function
func (f FormatterFunc) Format(w io.Writer, data interface{}) error {
	return f(w, data)
}

var (
	json = jsoniter.ConfigCompatibleWithStandardLibrary

	builtinFormatters = map[string]Formatter{
		"json": FormatterFunc(func(w io.Writer, data interface{}) error {
			enc := json.NewEncoder(w)
			enc.SetIndent("", "  ")
			return enc.Encode(data)
		}),
		"yaml": FormatterFunc(func(w io.Writer, data interface{}) error {
			b, err := yaml.Marshal(data)
			if err != nil {
				return err
			}
			_, err = w.Write(b)
			return err
		}),
	}

	commandFormatters = make(map[*cobra.Command]map[string]Formatter)
	defaultFormats    = make(map[*cobra.Command]string)
)

// addFormatters registers the output formats of a command, besides json and yaml.
//
// The --format flag selects one of them, defaulting to defaultFormat.
func addFormatters(cmd *cobra.Command, defaultFormat string, formatters map[string]Formatter) {
	commandFormatters[cmd] = formatters
	defaultFormats[cmd] = defaultFormat
}

func formatterFor(cmd *cobra.Command) (Formatter, error) {
	name := witFlags.root.format
	if name == "" {
		name = defaultFormats[cmd]
	}
	if f, ok := commandFormatters[cmd][name]; ok {
		return f, nil
	}
	if f, ok := builtinFormatters[name]; ok {
		return f, nil
	}
	return nil, fmt.Errorf("unknown format %q, expected one of: %s", name, strings.Join(formatNames(cmd), ", "))
}

func formatNames(cmd *cobra.Command) []string {
	names := make([]string, 0, len(builtinFormatters)+len(commandFormatters[cmd]))
	for name := range commandFormatters[cmd] {
		names = append(names, name)
	}
	for name := range builtinFormatters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// print the result of a command on its output, with the selected format
func print(cmd *cobra.Command, data interface{}) {
	f, err := formatterFor(cmd)
	if err != nil {
		wrapFatalln("invalid output format", err)
		return
	}
	if err = f.Format(cmd.OutOrStdout(), data); err != nil {
		wrapFatalln("failed to print result", err)
	}
}
