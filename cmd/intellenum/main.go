// Command intellenum generates the lookup, validation and conversion code of
// closed value types declared with //intellenum: directives.
//
// Usage:
//
//	intellenum generate [packages]   write the generated files
//	intellenum check [packages]      report diagnostics only
//	intellenum fix <file> <Type>     add a validation method stub
//	intellenum cache clean           drop the incremental cache
//	intellenum version
//
// Settings come from flags, INTELLENUM_* environment variables and an
// optional .intellenum.yaml in the working directory, in that order of
// precedence.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// errReported is returned by commands whose failure was already printed as
// diagnostics.
var errReported = errors.New("problems reported")

var rootCmd = &cobra.Command{
	Use:               "intellenum",
	Short:             "Closed value type generator",
	Long:              "intellenum generates named instances, lookups, validation and conversions for Go value types.",
	SilenceErrors:     true,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringP("dir", "C", "", "run as if started in this directory")
	flags.String("config", "", "settings file (default .intellenum.yaml)")
	flags.String("color", "auto", "colorize output (auto|always|never)")
	flags.BoolP("verbose", "v", false, "log debug messages")
	flags.Bool("json-log", false, "log as JSON")

	rootCmd.Version = version
	rootCmd.AddCommand(generateCmd, checkCmd, fixCmd, cacheCmd, versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, errReported) {
			fmt.Fprintln(os.Stderr, "intellenum:", err)
		}

		os.Exit(1)
	}
}
