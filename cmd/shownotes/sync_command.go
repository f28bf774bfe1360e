package main

import (
	"github.com/spf13/cobra"

	"shownotes/internal/app"
)

func newSyncCommand(configFlag *string) *cobra.Command {
	return &cobra.Command{
		Use:   "sync",
		Short: "Run one sync pass and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := app.New(*configFlag)
			if err != nil {
				return err
			}
			defer a.Close()

			return a.SyncOnce(cmd.Context())
		},
	}
}

func newRunCommand(configFlag *string) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Sync periodically until interrupted",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := app.New(*configFlag)
			if err != nil {
				return err
			}
			defer a.Close()

			return a.Run(cmd.Context())
		},
	}
}
