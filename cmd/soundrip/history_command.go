package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"soundrip/internal/session"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var limitFlag int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recent downloads",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ctx.openSession()
			if err != nil {
				return err
			}
			defer store.Close()

			records, err := store.History(cmd.Context(), limitFlag)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(records) == 0 {
				fmt.Fprintln(out, "No downloads recorded")
				return nil
			}
			fmt.Fprintln(out, renderHistoryTable(records))
			return nil
		},
	}

	cmd.Flags().IntVarP(&limitFlag, "limit", "n", 20, "Maximum rows to show")
	return cmd
}

func renderHistoryTable(records []session.ExtractionRecord) string {
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		title := record.Title
		if title == "" {
			title = record.SourceURL
		}
		status := "failed"
		if record.Succeeded {
			status = "ok"
		}
		rows = append(rows, []string{
			record.CreatedAt.Local().Format("2006-01-02 15:04"),
			truncateCell(title, 48),
			record.AudioFormat,
			formatDuration(record.DurationSeconds),
			status,
		})
	}
	return renderTable([]string{"When", "Title", "Format", "Duration", "Status"}, rows, 3)
}
