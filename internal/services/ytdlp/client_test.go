package ytdlp_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"soundrip/internal/media"
	"soundrip/internal/services"
	"soundrip/internal/services/ytdlp"
)

type fakeExecutor struct {
	stdout []byte
	stderr []byte
	err    error

	binary string
	args   []string
	calls  int
}

func (f *fakeExecutor) Run(_ context.Context, binary string, args []string) ([]byte, []byte, error) {
	f.binary = binary
	f.args = args
	f.calls++
	return f.stdout, f.stderr, f.err
}

func TestProbeParsesMetadata(t *testing.T) {
	exec := &fakeExecutor{stdout: []byte(`{"title":"My Video","uploader":"Chan","duration":212.4,"thumbnail":"https://img.example/t.jpg"}`)}
	client, err := ytdlp.New("yt-dlp", 0, ytdlp.WithExecutor(exec))
	if err != nil {
		t.Fatal(err)
	}

	meta, err := client.Probe(context.Background(), "https://youtu.be/dQw4w9WgXcQ")
	if err != nil {
		t.Fatalf("Probe: %v", err)
	}
	if meta.Title != "My Video" || meta.Uploader != "Chan" {
		t.Fatalf("unexpected metadata: %+v", meta)
	}
	if meta.DurationSeconds != 212 {
		t.Fatalf("unexpected duration: %d", meta.DurationSeconds)
	}
	if meta.ThumbnailURL != "https://img.example/t.jpg" {
		t.Fatalf("unexpected thumbnail: %q", meta.ThumbnailURL)
	}

	joined := strings.Join(exec.args, " ")
	if !strings.Contains(joined, "-J") || !strings.Contains(joined, "--no-playlist") {
		t.Fatalf("unexpected args: %v", exec.args)
	}
}

func TestProbeAppliesFallbacks(t *testing.T) {
	exec := &fakeExecutor{stdout: []byte(`{}`)}
	client, _ := ytdlp.New("yt-dlp", 0, ytdlp.WithExecutor(exec))

	meta, err := client.Probe(context.Background(), "https://youtu.be/dQw4w9WgXcQ")
	if err != nil {
		t.Fatalf("Probe: %v", err)
	}
	if meta.Title != media.UnknownTitle {
		t.Fatalf("unexpected title fallback: %q", meta.Title)
	}
	if meta.Uploader != media.UnknownUploader {
		t.Fatalf("unexpected uploader fallback: %q", meta.Uploader)
	}
	if meta.DurationSeconds != 0 || meta.ThumbnailURL != "" {
		t.Fatalf("unexpected fallbacks: %+v", meta)
	}
}

func TestProbeCarriesStderrVerbatim(t *testing.T) {
	exec := &fakeExecutor{stderr: []byte("ERROR: network error"), err: errors.New("exit status 1")}
	client, _ := ytdlp.New("yt-dlp", 0, ytdlp.WithExecutor(exec))

	_, err := client.Probe(context.Background(), "https://youtu.be/dQw4w9WgXcQ")
	if err == nil {
		t.Fatal("expected probe failure")
	}
	if !errors.Is(err, services.ErrProbe) {
		t.Fatalf("expected probe marker: %v", err)
	}
	if !strings.Contains(err.Error(), "network error") {
		t.Fatalf("stderr not carried: %v", err)
	}
}

func TestProbeFailsOnUnparsableOutput(t *testing.T) {
	exec := &fakeExecutor{stdout: []byte("WARNING: not json")}
	client, _ := ytdlp.New("yt-dlp", 0, ytdlp.WithExecutor(exec))

	_, err := client.Probe(context.Background(), "https://youtu.be/dQw4w9WgXcQ")
	if err == nil {
		t.Fatal("expected parse failure")
	}
	if !errors.Is(err, services.ErrProbe) {
		t.Fatalf("expected probe marker: %v", err)
	}
}

func TestExtractAudioBuildsArguments(t *testing.T) {
	exec := &fakeExecutor{}
	client, _ := ytdlp.New("yt-dlp", 0, ytdlp.WithExecutor(exec))

	_, err := client.ExtractAudio(context.Background(), "https://youtu.be/dQw4w9WgXcQ", "/tmp/out.mp3", media.FormatMP3, media.Quality192)
	if err != nil {
		t.Fatalf("ExtractAudio: %v", err)
	}
	joined := strings.Join(exec.args, " ")
	for _, want := range []string{"-f bestaudio", "-x", "--audio-format mp3", "--audio-quality 192K", "-o /tmp/out.mp3", "--no-playlist"} {
		if !strings.Contains(joined, want) {
			t.Fatalf("args missing %q: %v", want, exec.args)
		}
	}
}

func TestExtractAudioBestQualityMapsToZero(t *testing.T) {
	exec := &fakeExecutor{}
	client, _ := ytdlp.New("yt-dlp", 0, ytdlp.WithExecutor(exec))

	if _, err := client.ExtractAudio(context.Background(), "url", "/tmp/out.flac", media.FormatFLAC, media.QualityBest); err != nil {
		t.Fatalf("ExtractAudio: %v", err)
	}
	joined := strings.Join(exec.args, " ")
	if !strings.Contains(joined, "--audio-quality 0") {
		t.Fatalf("best quality not mapped: %v", exec.args)
	}
}

func TestExtractAudioReturnsDiagnosticOnFailure(t *testing.T) {
	exec := &fakeExecutor{stderr: []byte("ERROR: no formats"), err: errors.New("exit status 1")}
	client, _ := ytdlp.New("yt-dlp", 0, ytdlp.WithExecutor(exec))

	diagnostic, err := client.ExtractAudio(context.Background(), "url", "/tmp/out.mp3", media.FormatMP3, media.Quality192)
	if err == nil {
		t.Fatal("expected extraction failure")
	}
	if !errors.Is(err, services.ErrExtraction) {
		t.Fatalf("expected extraction marker: %v", err)
	}
	if !strings.Contains(diagnostic, "no formats") {
		t.Fatalf("diagnostic lost: %q", diagnostic)
	}
}

func TestNewRequiresBinary(t *testing.T) {
	if _, err := ytdlp.New("  ", 0); err == nil {
		t.Fatal("expected error for empty binary")
	}
}
