package main

import (
	"github.com/spf13/cobra"

	"shownotes/internal/clients"
	"shownotes/internal/config"
)

func newAuthCommand(configFlag *string) *cobra.Command {
	return &cobra.Command{
		Use:   "auth",
		Short: "Run the Trakt device-code flow and store a fresh token",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configFlag)
			if err != nil {
				return err
			}
			return clients.Authenticate(cfg)
		},
	}
}
