package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"soundrip/internal/comments"
	"soundrip/internal/media"
	"soundrip/internal/services"
	"soundrip/internal/session"
)

func newCommentsCommand(ctx *commandContext) *cobra.Command {
	var limitFlag int

	cmd := &cobra.Command{
		Use:   "comments <url>",
		Short: "Show the most liked comments for a video",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			apiKey := cfg.Comments.APIKey
			if strings.TrimSpace(apiKey) == "" {
				value, err := promptSecret(cmd.InOrStdin(), cmd.ErrOrStderr(), "YouTube API key")
				if err != nil {
					return err
				}
				apiKey = value
			}

			maxResults := cfg.Comments.MaxResults
			if limitFlag > 0 {
				maxResults = limitFlag
			}
			client := comments.NewClient(comments.Config{
				APIKey:     apiKey,
				BaseURL:    cfg.Comments.BaseURL,
				MaxResults: maxResults,
			})

			runCtx := services.WithStage(cmd.Context(), "comments")
			records, err := client.Fetch(runCtx, args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(records) == 0 {
				fmt.Fprintln(out, "No comments found")
				return nil
			}

			if store, err := ctx.openSession(); err == nil {
				if videoID, idErr := media.ExtractVideoID(args[0]); idErr == nil {
					fetch := session.CommentFetchRecord{VideoID: videoID, CommentCount: len(records)}
					if recordErr := store.RecordCommentFetch(runCtx, fetch); recordErr != nil {
						ctx.ensureLogger().Warn("record comment fetch failed", "error", recordErr)
					}
				}
				store.Close()
			}

			fmt.Fprintln(out, renderCommentsTable(records))
			return nil
		},
	}

	cmd.Flags().IntVarP(&limitFlag, "limit", "n", 0, "Maximum comments to fetch (default from config)")
	return cmd
}

func renderCommentsTable(records []comments.CommentRecord) string {
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, []string{
			record.Author,
			strconv.Itoa(record.LikeCount),
			truncateCell(record.Text, 80),
		})
	}
	return renderTable([]string{"Author", "Likes", "Comment"}, rows, 1)
}

func truncateCell(value string, limit int) string {
	value = strings.Join(strings.Fields(value), " ")
	runes := []rune(value)
	if len(runes) <= limit {
		return value
	}
	return string(runes[:limit-1]) + "…"
}
