package extract_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"soundrip/internal/extract"
	"soundrip/internal/media"
	"soundrip/internal/services"
)

type fakeProber struct {
	meta media.VideoMetadata
	err  error
}

func (f fakeProber) Probe(context.Context, string) (media.VideoMetadata, error) {
	return f.meta, f.err
}

type fakeDownloader struct {
	err error
	// writeFiles maps file names (relative to the output directory) to
	// contents written when ExtractAudio runs, simulating yt-dlp output.
	writeFiles map[string]string

	calls      int
	outputPath string
	format     media.AudioFormat
	quality    media.AudioQuality
}

func (f *fakeDownloader) ExtractAudio(_ context.Context, _, outputPath string, format media.AudioFormat, quality media.AudioQuality) (string, error) {
	f.calls++
	f.outputPath = outputPath
	f.format = format
	f.quality = quality
	if f.err != nil {
		return f.err.Error(), f.err
	}
	dir := filepath.Dir(outputPath)
	for name, contents := range f.writeFiles {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(contents), 0o644); err != nil {
			return "", err
		}
	}
	return "", nil
}

func request(t *testing.T) media.ExtractionRequest {
	t.Helper()
	return media.ExtractionRequest{
		SourceURL:       "https://www.youtube.com/watch?v=dQw4w9WgXcQ",
		OutputDirectory: t.TempDir(),
		AudioFormat:     media.FormatMP3,
		AudioQuality:    media.Quality192,
	}
}

func TestExtractProbeFailureShortCircuits(t *testing.T) {
	prober := fakeProber{err: services.Wrap(services.ErrProbe, "ytdlp", "probe", "ERROR: network error", errors.New("exit status 1"))}
	downloader := &fakeDownloader{}
	extractor := extract.New(prober, downloader, nil)

	result := extractor.Extract(context.Background(), request(t))
	if result.Succeeded {
		t.Fatal("expected failure result")
	}
	if !strings.Contains(result.Message, "network error") {
		t.Fatalf("diagnostic not surfaced: %q", result.Message)
	}
	if downloader.calls != 0 {
		t.Fatal("extraction subprocess must not run after probe failure")
	}
}

func TestExtractSanitizedTitleSuccess(t *testing.T) {
	prober := fakeProber{meta: media.VideoMetadata{Title: "My: Video? <Test>", Uploader: "Chan", DurationSeconds: 100}}
	downloader := &fakeDownloader{writeFiles: map[string]string{"My_ Video_ _Test_.mp3": "audio"}}
	extractor := extract.New(prober, downloader, nil)

	result := extractor.Extract(context.Background(), request(t))
	if !result.Succeeded {
		t.Fatalf("expected success, got %q", result.Message)
	}
	if result.FileName != "My_ Video_ _Test_.mp3" {
		t.Fatalf("unexpected file name %q", result.FileName)
	}
	if result.Title != "My: Video? <Test>" || result.Uploader != "Chan" || result.DurationSeconds != 100 {
		t.Fatalf("metadata not echoed: %+v", result)
	}
	if filepath.Base(downloader.outputPath) != "My_ Video_ _Test_.mp3" {
		t.Fatalf("unexpected requested output path %q", downloader.outputPath)
	}
}

func TestExtractMissingFileReportsNotFound(t *testing.T) {
	prober := fakeProber{meta: media.VideoMetadata{Title: "Ghost"}}
	downloader := &fakeDownloader{} // exits zero, writes nothing
	extractor := extract.New(prober, downloader, nil)

	result := extractor.Extract(context.Background(), request(t))
	if result.Succeeded {
		t.Fatal("expected failure result")
	}
	if result.Message != "File not found after download" {
		t.Fatalf("unexpected message %q", result.Message)
	}
}

func TestExtractReconcilesDifferentExtension(t *testing.T) {
	prober := fakeProber{meta: media.VideoMetadata{Title: "Clip"}}
	downloader := &fakeDownloader{writeFiles: map[string]string{"Clip.opus": "audio"}}
	extractor := extract.New(prober, downloader, nil)

	result := extractor.Extract(context.Background(), request(t))
	if !result.Succeeded {
		t.Fatalf("expected success, got %q", result.Message)
	}
	if result.FileName != "Clip.opus" {
		t.Fatalf("extension not reconciled: %q", result.FileName)
	}
}

func TestExtractDownloaderFailureSurfacesDiagnostic(t *testing.T) {
	prober := fakeProber{meta: media.VideoMetadata{Title: "Clip"}}
	downloader := &fakeDownloader{err: services.Wrap(services.ErrExtraction, "ytdlp", "extract", "ERROR: no formats found", errors.New("exit status 1"))}
	extractor := extract.New(prober, downloader, nil)

	result := extractor.Extract(context.Background(), request(t))
	if result.Succeeded {
		t.Fatal("expected failure result")
	}
	if !strings.Contains(result.Message, "no formats found") {
		t.Fatalf("diagnostic lost: %q", result.Message)
	}
}

func TestExtractRejectsEmptyURLBeforeAnyCall(t *testing.T) {
	downloader := &fakeDownloader{}
	extractor := extract.New(fakeProber{}, downloader, nil)

	req := request(t)
	req.SourceURL = "   "
	result := extractor.Extract(context.Background(), req)
	if result.Succeeded {
		t.Fatal("expected failure result")
	}
	if downloader.calls != 0 {
		t.Fatal("no external call should be made for an invalid request")
	}
}

func TestExtractEmptyTitleUsesFallbackStem(t *testing.T) {
	prober := fakeProber{meta: media.VideoMetadata{Title: "..."}}
	downloader := &fakeDownloader{writeFiles: map[string]string{"soundrip-audio.mp3": "audio"}}
	extractor := extract.New(prober, downloader, nil)

	result := extractor.Extract(context.Background(), request(t))
	if !result.Succeeded {
		t.Fatalf("expected success, got %q", result.Message)
	}
	if result.FileName != "soundrip-audio.mp3" {
		t.Fatalf("fallback stem not applied: %q", result.FileName)
	}
}
