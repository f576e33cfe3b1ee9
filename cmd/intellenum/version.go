package main

import (
	"fmt"
	"runtime/debug"

	"github.com/spf13/cobra"
)

// version is set at build time with -ldflags "-X main.version=...". It also
// keys the incremental cache, so a new build never reuses stale output.
var version = "dev"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show the build version",
	RunE: func(cmd *cobra.Command, _ []string) error {
		fmt.Fprintln(cmd.OutOrStdout(), "intellenum", version)

		if info, ok := debug.ReadBuildInfo(); ok {
			fmt.Fprintln(cmd.OutOrStdout(), info.GoVersion)
		}

		return nil
	},
}
