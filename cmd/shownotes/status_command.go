package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"shownotes/internal/config"
	"shownotes/internal/storage"
)

func newStatusCommand(configFlag *string) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "List synced shows and their notes",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configFlag)
			if err != nil {
				return err
			}

			shows, err := storage.OpenShowRepository(cfg.DBPath())
			if err != nil {
				return err
			}
			defer shows.Close()

			records, err := shows.FindAll(cmd.Context())
			if err != nil {
				return err
			}
			if len(records) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No shows synced yet.")
				return nil
			}

			rows := make([][]string, 0, len(records))
			for _, record := range records {
				rating := ""
				if record.Rating > 0 {
					rating = strconv.FormatInt(record.Rating, 10) + "/10"
				}
				rows = append(rows, []string{
					record.Title,
					strconv.FormatInt(record.Year, 10),
					strconv.FormatInt(record.SeasonCount, 10),
					strconv.FormatInt(record.EpisodeCount, 10),
					rating,
					record.LastSyncedAt.Format("2006-01-02 15:04"),
				})
			}

			headers := []string{"Title", "Year", "Seasons", "Episodes", "Rating", "Last Synced"}
			fmt.Fprintln(cmd.OutOrStdout(), renderShowTable(headers, rows, 1, 2, 3, 4))
			return nil
		},
	}
}
