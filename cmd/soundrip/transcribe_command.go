package main

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"soundrip/internal/config"
	"soundrip/internal/fileutil"
	"soundrip/internal/language"
	"soundrip/internal/media"
	"soundrip/internal/services"
	"soundrip/internal/services/speech"
	"soundrip/internal/services/whisper"
	"soundrip/internal/session"
	"soundrip/internal/transcribe"
)

type transcriber interface {
	Transcribe(ctx context.Context, audioPath string, durationSeconds int, stem string) (transcribe.Transcript, error)
}

func newTranscribeCommand(ctx *commandContext) *cobra.Command {
	var modelFlag string

	cmd := &cobra.Command{
		Use:   "transcribe <url-or-file>",
		Short: "Transcribe previously downloaded audio",
		Long: "Transcribe an audio file, or the stored download of a video URL.\n" +
			"URLs must have been downloaded first with `soundrip download`.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			store, err := ctx.openSession()
			if err != nil {
				return err
			}
			defer store.Close()

			runCtx := services.WithStage(cmd.Context(), "transcribe")
			audioPath, videoID, duration, err := resolveAudioSource(runCtx, store, args[0])
			if err != nil {
				return err
			}
			stem := strings.TrimSuffix(filepath.Base(audioPath), filepath.Ext(audioPath))

			service, err := buildTranscriber(ctx, cmd, cfg, modelFlag)
			if err != nil {
				return err
			}

			bar := newProgress(cmd.OutOrStdout(), "Transcribing")
			transcript, err := service.Transcribe(runCtx, audioPath, duration, stem)
			bar.Done()
			if err != nil {
				return err
			}

			if videoID != "" {
				cache := transcribe.NewCache(cfg.Paths.TranscriptDir)
				record := session.TranscriptRecord{
					VideoID:     videoID,
					Model:       transcript.Model,
					TextPath:    cache.TextPath(stem, transcript.Model),
					Language:    transcript.Language,
					Approximate: transcript.Approximate,
				}
				if err := store.RecordTranscript(runCtx, record); err != nil {
					ctx.ensureLogger().Warn("record transcript failed", "error", err)
				}
			}

			out := cmd.OutOrStdout()
			if transcript.CacheHit {
				fmt.Fprintln(cmd.ErrOrStderr(), "Using cached transcript")
			}
			if summary := transcriptionSummary(cfg.Speech.Language, transcript.Model); summary != "" {
				fmt.Fprintln(cmd.ErrOrStderr(), summary)
			}
			fmt.Fprintln(out, transcript.Text)
			return nil
		},
	}

	cmd.Flags().StringVarP(&modelFlag, "model", "m", "", "Recognizer model override")
	return cmd
}

// resolveAudioSource maps the argument to an audio file on disk. A path that
// exists wins; anything else is treated as a video URL resolved through the
// session history.
func resolveAudioSource(ctx context.Context, store *session.Store, arg string) (audioPath, videoID string, durationSeconds int, err error) {
	expanded, pathErr := config.ExpandPath(arg)
	if pathErr == nil && fileutil.IsNonEmptyFile(expanded) {
		return expanded, "", 0, nil
	}

	videoID, err = media.ExtractVideoID(arg)
	if err != nil {
		return "", "", 0, fmt.Errorf("argument is neither an audio file nor a recognizable video URL: %w", err)
	}

	record, found, err := store.LatestExtraction(ctx, videoID)
	if err != nil {
		return "", "", 0, err
	}
	if !found || !record.Succeeded {
		return "", "", 0, errors.New("no downloaded audio for this video; run `soundrip download` first")
	}
	if !fileutil.IsNonEmptyFile(record.FilePath) {
		return "", "", 0, fmt.Errorf("downloaded audio missing at %s; run `soundrip download` again", record.FilePath)
	}
	return record.FilePath, videoID, record.DurationSeconds, nil
}

// transcriptionSummary renders the human-readable language and model line
// printed alongside a fresh transcript.
func transcriptionSummary(languageSetting, model string) string {
	parts := make([]string, 0, 2)
	if name := strings.TrimSpace(language.DisplayName(languageSetting)); name != "" {
		parts = append(parts, "language "+name)
	}
	if model = strings.TrimSpace(model); model != "" {
		parts = append(parts, "model "+model)
	}
	if len(parts) == 0 {
		return ""
	}
	return "Transcribed (" + strings.Join(parts, ", ") + ")"
}

func buildTranscriber(ctx *commandContext, cmd *cobra.Command, cfg *config.Config, modelFlag string) (transcriber, error) {
	cache := transcribe.NewCache(cfg.Paths.TranscriptDir)
	iso := language.ToISO2(cfg.Speech.Language)
	model := strings.TrimSpace(modelFlag)
	if model == "" {
		model = cfg.Speech.Model
	}

	switch cfg.Speech.Backend {
	case "cloud":
		apiKey := cfg.Speech.APIKey
		if strings.TrimSpace(apiKey) == "" {
			value, err := promptSecret(cmd.InOrStdin(), cmd.ErrOrStderr(), "Speech API key")
			if err != nil {
				return nil, err
			}
			apiKey = value
		}
		client := speech.NewClient(speech.Config{
			APIKey:         apiKey,
			Endpoint:       cfg.Speech.Endpoint,
			Model:          model,
			Language:       iso,
			TimeoutSeconds: cfg.Speech.TimeoutSeconds,
		})
		return transcribe.NewCloudService(client, cache, iso, ctx.ensureLogger()), nil
	default:
		client, err := whisper.New(whisper.Config{
			Binary:         cfg.WhisperBinary(),
			FFmpegBinary:   cfg.FFmpegBinary(),
			FFprobeBinary:  cfg.FFprobeBinary(),
			Model:          model,
			Language:       cfg.Speech.Language,
			TimeoutSeconds: cfg.Speech.TimeoutSeconds,
		})
		if err != nil {
			return nil, err
		}
		return transcribe.NewLocalService(client, cache, iso,
			cfg.Speech.ChunkSeconds, cfg.Speech.ChunkDelaySeconds, ctx.ensureLogger()), nil
	}
}
