package extract

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"soundrip/internal/fileutil"
	"soundrip/internal/logging"
	"soundrip/internal/media"
	"soundrip/internal/textutil"
)

// Prober resolves a source URL to video metadata without downloading media.
type Prober interface {
	Probe(ctx context.Context, sourceURL string) (media.VideoMetadata, error)
}

// AudioDownloader extracts and transcodes the audio stream to outputPath.
type AudioDownloader interface {
	ExtractAudio(ctx context.Context, sourceURL, outputPath string, format media.AudioFormat, quality media.AudioQuality) (string, error)
}

// Extractor runs the extraction pipeline. Stages are strictly sequential:
// probe, sanitize, download, reconcile. Concurrent requests that sanitize to
// the same stem race last-writer-wins; no locking is attempted.
type Extractor struct {
	prober     Prober
	downloader AudioDownloader
	logger     *slog.Logger
}

// New constructs an Extractor.
func New(prober Prober, downloader AudioDownloader, logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Extractor{prober: prober, downloader: downloader, logger: logger}
}

// Extract runs one extraction request to completion and maps every outcome
// into the ExtractionResult union. A probe failure short-circuits: the
// extraction subprocess is never invoked without known title and duration.
func (e *Extractor) Extract(ctx context.Context, req media.ExtractionRequest) media.ExtractionResult {
	log := logging.WithContext(ctx, e.logger).With(logging.FieldComponent, "extract")

	if err := req.Validate(); err != nil {
		return media.Failure(err.Error())
	}

	meta, err := e.prober.Probe(ctx, req.SourceURL)
	if err != nil {
		log.Error("metadata probe failed", "url", req.SourceURL, "error", err)
		return media.Failure(err.Error())
	}
	log.Info("metadata probed", "title", meta.Title, "uploader", meta.Uploader, "duration_seconds", meta.DurationSeconds)

	stem := textutil.SanitizeStem(meta.Title)
	expectedPath := filepath.Join(req.OutputDirectory, fmt.Sprintf("%s.%s", stem, req.AudioFormat))

	if err := os.MkdirAll(req.OutputDirectory, 0o755); err != nil {
		return media.Failure(fmt.Sprintf("create output directory: %v", err))
	}

	if _, err := e.downloader.ExtractAudio(ctx, req.SourceURL, expectedPath, req.AudioFormat, req.AudioQuality); err != nil {
		log.Error("audio extraction failed", "url", req.SourceURL, "error", err)
		return media.Failure(err.Error())
	}

	resolvedPath := expectedPath
	if !fileutil.IsNonEmptyFile(resolvedPath) {
		// yt-dlp sometimes finalizes a different extension than requested.
		scanned, ok := fileutil.ResolveByStem(req.OutputDirectory, stem)
		if !ok {
			log.Error("extractor reported success but produced no file", "expected", expectedPath)
			return media.Failure("File not found after download")
		}
		resolvedPath = scanned
	}
	if !fileutil.IsNonEmptyFile(resolvedPath) {
		return media.Failure(fmt.Sprintf("downloaded file is empty: %s", resolvedPath))
	}

	log.Info("extraction complete", "file", filepath.Base(resolvedPath))
	return media.Success(resolvedPath, meta)
}
