package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"soundrip/internal/analysis"
	"soundrip/internal/comments"
	"soundrip/internal/media"
	"soundrip/internal/services"
	"soundrip/internal/services/llm"
	"soundrip/internal/session"
)

func newAnalyzeCommand(ctx *commandContext) *cobra.Command {
	var jsonFlag bool
	var skipComments bool

	cmd := &cobra.Command{
		Use:   "analyze <url>",
		Short: "Summarize a transcribed video with an LLM",
		Long: "Run an LLM analysis over the stored transcript and top comments of a video.\n" +
			"The video must have been downloaded and transcribed first.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			videoID, err := media.ExtractVideoID(args[0])
			if err != nil {
				return err
			}

			store, err := ctx.openSession()
			if err != nil {
				return err
			}
			defer store.Close()

			runCtx := services.WithStage(cmd.Context(), "analyze")
			transcriptText, err := loadStoredTranscript(runCtx, store, videoID)
			if err != nil {
				return err
			}

			extraction, _, err := store.LatestExtraction(runCtx, videoID)
			if err != nil {
				return err
			}

			var records []comments.CommentRecord
			if !skipComments && strings.TrimSpace(cfg.Comments.APIKey) != "" {
				client := comments.NewClient(comments.Config{
					APIKey:     cfg.Comments.APIKey,
					BaseURL:    cfg.Comments.BaseURL,
					MaxResults: cfg.Comments.MaxResults,
				})
				records, err = client.Fetch(runCtx, args[0])
				if err != nil {
					fmt.Fprintf(cmd.ErrOrStderr(), "Comments unavailable: %v\n", err)
					records = nil
				}
			}

			apiKey := cfg.LLM.APIKey
			if strings.TrimSpace(apiKey) == "" {
				value, err := promptSecret(cmd.InOrStdin(), cmd.ErrOrStderr(), "OpenRouter API key")
				if err != nil {
					return err
				}
				apiKey = value
			}
			completer := llm.NewClient(llm.Config{
				APIKey:         apiKey,
				BaseURL:        cfg.LLM.BaseURL,
				Model:          cfg.LLM.Model,
				Referer:        cfg.LLM.Referer,
				Title:          cfg.LLM.Title,
				TimeoutSeconds: cfg.LLM.TimeoutSeconds,
			})

			bar := newProgress(cmd.OutOrStdout(), "Analyzing")
			report, err := analysis.New(completer).Analyze(runCtx, analysis.Input{
				Title:      extraction.Title,
				Uploader:   extraction.Uploader,
				Transcript: transcriptText,
				Comments:   records,
			})
			bar.Done()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if jsonFlag {
				encoder := json.NewEncoder(out)
				encoder.SetIndent("", "  ")
				return encoder.Encode(report)
			}

			fmt.Fprintf(out, "Summary:   %s\n", report.Summary)
			fmt.Fprintf(out, "Sentiment: %s\n", report.Sentiment)
			if len(report.Themes) > 0 {
				fmt.Fprintf(out, "Themes:    %s\n", strings.Join(report.Themes, ", "))
			}
			if report.AudienceReaction != "" {
				fmt.Fprintf(out, "Audience:  %s\n", report.AudienceReaction)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonFlag, "json", false, "Emit the report as JSON")
	cmd.Flags().BoolVar(&skipComments, "no-comments", false, "Analyze the transcript alone")
	return cmd
}

// loadStoredTranscript reads the most recent stored transcript text for a
// video from the session pointers.
func loadStoredTranscript(ctx context.Context, store *session.Store, videoID string) (string, error) {
	records, err := store.Transcripts(ctx, videoID)
	if err != nil {
		return "", err
	}
	if len(records) == 0 {
		return "", errors.New("no transcript for this video; run `soundrip transcribe` first")
	}
	text, err := os.ReadFile(records[0].TextPath)
	if err != nil {
		return "", fmt.Errorf("read transcript %s: %w (run `soundrip transcribe` again)", records[0].TextPath, err)
	}
	if strings.TrimSpace(string(text)) == "" {
		return "", fmt.Errorf("transcript %s is empty; run `soundrip transcribe` again", records[0].TextPath)
	}
	return strings.TrimSpace(string(text)), nil
}
