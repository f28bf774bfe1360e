package main

import (
	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	var configFlag string

	rootCmd := &cobra.Command{
		Use:           "shownotes",
		Short:         "Sync Trakt watched-show history into a notes vault",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Configuration file path")

	rootCmd.AddCommand(newSyncCommand(&configFlag))
	rootCmd.AddCommand(newRunCommand(&configFlag))
	rootCmd.AddCommand(newAuthCommand(&configFlag))
	rootCmd.AddCommand(newStatusCommand(&configFlag))

	return rootCmd
}
