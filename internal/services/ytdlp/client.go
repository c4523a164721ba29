package ytdlp

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"soundrip/internal/media"
	"soundrip/internal/services"
)

// Executor abstracts command execution for testability.
type Executor interface {
	Run(ctx context.Context, binary string, args []string) (stdout, stderr []byte, err error)
}

type commandExecutor struct{}

func (commandExecutor) Run(ctx context.Context, binary string, args []string) ([]byte, []byte, error) {
	cmd := exec.CommandContext(ctx, binary, args...) //nolint:gosec
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	return stdout.Bytes(), stderr.Bytes(), err
}

// Option configures the client.
type Option func(*Client)

// WithExecutor injects a custom executor (primarily for tests).
func WithExecutor(exec Executor) Option {
	return func(c *Client) {
		if exec != nil {
			c.exec = exec
		}
	}
}

// Client wraps yt-dlp CLI interactions.
type Client struct {
	binary  string
	timeout time.Duration
	exec    Executor
}

// New constructs a yt-dlp client. timeoutSeconds bounds every invocation;
// zero disables the ceiling.
func New(binary string, timeoutSeconds int, opts ...Option) (*Client, error) {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		return nil, errors.New("yt-dlp binary required")
	}
	client := &Client{
		binary:  binary,
		timeout: time.Duration(timeoutSeconds) * time.Second,
		exec:    commandExecutor{},
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// probePayload matches the fields soundrip needs from yt-dlp -J output.
type probePayload struct {
	Title     string  `json:"title"`
	Uploader  string  `json:"uploader"`
	Duration  float64 `json:"duration"`
	Thumbnail string  `json:"thumbnail"`
}

// Probe asks yt-dlp for metadata only, without downloading media. Missing
// fields carry documented fallbacks. A single attempt is made; a non-zero
// exit fails with the tool's diagnostic text verbatim.
func (c *Client) Probe(ctx context.Context, sourceURL string) (media.VideoMetadata, error) {
	var meta media.VideoMetadata
	if strings.TrimSpace(sourceURL) == "" {
		return meta, services.Wrap(services.ErrProbe, "ytdlp", "probe", "source URL required", nil)
	}

	runCtx, cancel := c.boundContext(ctx)
	defer cancel()

	args := []string{"-J", "--no-playlist", "-q", sourceURL}
	stdout, stderr, err := c.exec.Run(runCtx, c.binary, args)
	if err != nil {
		return meta, services.Wrap(services.ErrProbe, "ytdlp", "probe", diagnosticText(stdout, stderr), err)
	}

	var payload probePayload
	if err := json.Unmarshal(stdout, &payload); err != nil {
		return meta, services.Wrap(services.ErrProbe, "ytdlp", "parse metadata", err.Error(), err)
	}

	meta = media.VideoMetadata{
		Title:           strings.TrimSpace(payload.Title),
		Uploader:        strings.TrimSpace(payload.Uploader),
		DurationSeconds: int(payload.Duration),
		ThumbnailURL:    strings.TrimSpace(payload.Thumbnail),
	}
	if meta.Title == "" {
		meta.Title = media.UnknownTitle
	}
	if meta.Uploader == "" {
		meta.Uploader = media.UnknownUploader
	}
	if meta.DurationSeconds < 0 {
		meta.DurationSeconds = 0
	}
	return meta, nil
}

// ExtractAudio downloads the best audio-only stream for sourceURL and
// transcodes it to the requested format/quality at outputPath. The call
// blocks until yt-dlp exits; combined output is returned as diagnostic text
// alongside any error.
func (c *Client) ExtractAudio(ctx context.Context, sourceURL, outputPath string, format media.AudioFormat, quality media.AudioQuality) (string, error) {
	if strings.TrimSpace(sourceURL) == "" {
		return "", services.Wrap(services.ErrExtraction, "ytdlp", "extract", "source URL required", nil)
	}
	if strings.TrimSpace(outputPath) == "" {
		return "", services.Wrap(services.ErrExtraction, "ytdlp", "extract", "output path required", nil)
	}

	runCtx, cancel := c.boundContext(ctx)
	defer cancel()

	args := []string{
		"-f", "bestaudio",
		"-x",
		"--audio-format", string(format),
		"--audio-quality", qualityArg(quality),
		"-o", outputPath,
		"--no-playlist",
		"-q",
		sourceURL,
	}
	stdout, stderr, err := c.exec.Run(runCtx, c.binary, args)
	diagnostic := diagnosticText(stdout, stderr)
	if err != nil {
		return diagnostic, services.Wrap(services.ErrExtraction, "ytdlp", "extract", diagnostic, err)
	}
	return diagnostic, nil
}

func (c *Client) boundContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.timeout > 0 {
		return context.WithTimeout(ctx, c.timeout)
	}
	return context.WithCancel(ctx)
}

// qualityArg maps the quality enum to yt-dlp's --audio-quality syntax.
func qualityArg(quality media.AudioQuality) string {
	if quality == media.QualityBest {
		return "0"
	}
	return fmt.Sprintf("%sK", quality)
}

func diagnosticText(stdout, stderr []byte) string {
	parts := make([]string, 0, 2)
	if text := strings.TrimSpace(string(stderr)); text != "" {
		parts = append(parts, text)
	}
	if text := strings.TrimSpace(string(stdout)); text != "" {
		parts = append(parts, text)
	}
	return strings.Join(parts, "\n")
}
