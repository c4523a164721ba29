package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"soundrip/internal/config"
	"soundrip/internal/media"
	"soundrip/internal/services"
	"soundrip/internal/session"
)

func newDownloadCommand(ctx *commandContext) *cobra.Command {
	var formatFlag string
	var qualityFlag string
	var outputFlag string

	cmd := &cobra.Command{
		Use:   "download <url>",
		Short: "Download the audio track of a video",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			req, err := buildExtractionRequest(cfg.Extract.AudioFormat, cfg.Extract.AudioQuality,
				cfg.Paths.DownloadDir, args[0], formatFlag, qualityFlag, outputFlag)
			if err != nil {
				return err
			}

			extractor, err := ctx.newExtractor()
			if err != nil {
				return err
			}
			store, err := ctx.openSession()
			if err != nil {
				return err
			}
			defer store.Close()

			runCtx := services.WithStage(cmd.Context(), "extract")
			bar := newProgress(cmd.OutOrStdout(), "Downloading audio")
			result := extractor.Extract(runCtx, req)
			bar.Done()

			record := extractionRecordFromResult(req, result)
			if _, err := store.RecordExtraction(runCtx, record); err != nil {
				ctx.ensureLogger().Warn("record extraction failed", "error", err)
			}

			out := cmd.OutOrStdout()
			if !result.Succeeded {
				return fmt.Errorf("download failed: %s", result.Message)
			}
			fmt.Fprintf(out, "Saved %s\n", result.FilePath)
			if result.Title != media.UnknownTitle {
				fmt.Fprintf(out, "Title:    %s\n", result.Title)
			}
			if result.Uploader != media.UnknownUploader {
				fmt.Fprintf(out, "Uploader: %s\n", result.Uploader)
			}
			if result.DurationSeconds > 0 {
				fmt.Fprintf(out, "Duration: %s\n", formatDuration(result.DurationSeconds))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&formatFlag, "format", "f", "", "Audio format (mp3, m4a, wav, flac)")
	cmd.Flags().StringVarP(&qualityFlag, "quality", "q", "", "Audio quality (192, 256, 320, best)")
	cmd.Flags().StringVarP(&outputFlag, "output", "o", "", "Output directory (defaults to the configured download dir)")
	return cmd
}

func buildExtractionRequest(defaultFormat, defaultQuality, defaultDir, url, formatFlag, qualityFlag, outputFlag string) (media.ExtractionRequest, error) {
	formatValue := strings.TrimSpace(formatFlag)
	if formatValue == "" {
		formatValue = defaultFormat
	}
	format, err := media.ParseAudioFormat(formatValue)
	if err != nil {
		return media.ExtractionRequest{}, err
	}

	qualityValue := strings.TrimSpace(qualityFlag)
	if qualityValue == "" {
		qualityValue = defaultQuality
	}
	quality, err := media.ParseAudioQuality(qualityValue)
	if err != nil {
		return media.ExtractionRequest{}, err
	}

	dir := strings.TrimSpace(outputFlag)
	if dir == "" {
		dir = defaultDir
	} else {
		expanded, err := config.ExpandPath(dir)
		if err != nil {
			return media.ExtractionRequest{}, err
		}
		dir = expanded
	}
	if dir == "" {
		return media.ExtractionRequest{}, errors.New("output directory required")
	}

	return media.ExtractionRequest{
		SourceURL:       url,
		OutputDirectory: dir,
		AudioFormat:     format,
		AudioQuality:    quality,
	}, nil
}

func extractionRecordFromResult(req media.ExtractionRequest, result media.ExtractionResult) session.ExtractionRecord {
	// Non-YouTube URLs have no extractable ID; the history row still records
	// the attempt, it just cannot participate in per-video state clearing.
	videoID, err := media.ExtractVideoID(req.SourceURL)
	if err != nil {
		videoID = ""
	}
	return session.ExtractionRecord{
		VideoID:         videoID,
		SourceURL:       req.SourceURL,
		Title:           result.Title,
		Uploader:        result.Uploader,
		DurationSeconds: result.DurationSeconds,
		FilePath:        result.FilePath,
		AudioFormat:     string(req.AudioFormat),
		AudioQuality:    string(req.AudioQuality),
		Succeeded:       result.Succeeded,
		Message:         result.Message,
	}
}

func formatDuration(totalSeconds int) string {
	minutes := totalSeconds / 60
	seconds := totalSeconds % 60
	if minutes >= 60 {
		return fmt.Sprintf("%d:%02d:%02d", minutes/60, minutes%60, seconds)
	}
	return fmt.Sprintf("%d:%02d", minutes, seconds)
}
