package main

import (
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "zkcheck",
		Short:         "Run zkVM core end-to-end scenarios and maintain ROM table caches",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newRunCmd())
	root.AddCommand(newCacheCmd())
	return root
}
