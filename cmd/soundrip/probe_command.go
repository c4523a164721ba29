package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"soundrip/internal/services"
)

func newProbeCommand(ctx *commandContext) *cobra.Command {
	var jsonFlag bool

	cmd := &cobra.Command{
		Use:   "probe <url>",
		Short: "Show video metadata without downloading",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			prober, err := ctx.newProber()
			if err != nil {
				return err
			}

			meta, err := prober.Probe(services.WithStage(cmd.Context(), "probe"), args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if jsonFlag {
				encoder := json.NewEncoder(out)
				encoder.SetIndent("", "  ")
				return encoder.Encode(map[string]any{
					"title":            meta.Title,
					"uploader":         meta.Uploader,
					"duration_seconds": meta.DurationSeconds,
					"thumbnail_url":    meta.ThumbnailURL,
				})
			}

			fmt.Fprintf(out, "Title:    %s\n", meta.Title)
			fmt.Fprintf(out, "Uploader: %s\n", meta.Uploader)
			fmt.Fprintf(out, "Duration: %s\n", formatDuration(meta.DurationSeconds))
			if meta.ThumbnailURL != "" {
				fmt.Fprintf(out, "Thumbnail: %s\n", meta.ThumbnailURL)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonFlag, "json", false, "Emit metadata as JSON")
	return cmd
}
