package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage the incremental cache",
}

var cacheCleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Drop every cached file",
	RunE: func(cmd *cobra.Command, _ []string) error {
		c, err := openCache(current, zap.NewNop())
		if err != nil {
			return err
		}

		if err := c.DropAll(); err != nil {
			return fmt.Errorf("failed to clean %s: %w", c.Dir(), err)
		}

		fmt.Fprintln(cmd.OutOrStdout(), "cleaned", c.Dir())

		return nil
	},
}

func init() {
	cacheCleanCmd.Flags().String("cache-dir", "", "incremental cache directory")
	cacheCmd.AddCommand(cacheCleanCmd)
}
