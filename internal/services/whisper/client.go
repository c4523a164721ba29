package whisper

import (
	"context"
	"errors"
	"fmt"
	"math"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	langpkg "soundrip/internal/language"
	"soundrip/internal/services"
)

// DefaultModel is used when no model is configured.
const DefaultModel = "base"

// Executor abstracts command execution for testability.
type Executor interface {
	Run(ctx context.Context, binary string, args []string) ([]byte, error)
}

type commandExecutor struct{}

func (commandExecutor) Run(ctx context.Context, binary string, args []string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, binary, args...) //nolint:gosec
	return cmd.CombinedOutput()
}

// Config captures the runtime settings for the local recognizer.
type Config struct {
	Binary         string
	FFmpegBinary   string
	FFprobeBinary  string
	Model          string
	Language       string
	TimeoutSeconds int
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

// Client invokes the offline recognizer and ffmpeg.
type Client struct {
	cfg  Config
	exec Executor
}

// New constructs a whisper client.
func New(cfg Config, opts ...Option) (*Client, error) {
	if strings.TrimSpace(cfg.Binary) == "" {
		cfg.Binary = "whisper"
	}
	if strings.TrimSpace(cfg.FFmpegBinary) == "" {
		cfg.FFmpegBinary = "ffmpeg"
	}
	if strings.TrimSpace(cfg.FFprobeBinary) == "" {
		cfg.FFprobeBinary = "ffprobe"
	}
	client := &Client{cfg: cfg, exec: commandExecutor{}}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// Model returns the configured model identifier used in cache filenames.
func (c *Client) Model() string {
	if strings.TrimSpace(c.cfg.Model) != "" {
		return c.cfg.Model
	}
	return DefaultModel
}

// ExtractChunk extracts a time-range segment of audio from source as a mono
// 16kHz WAV at dest.
func (c *Client) ExtractChunk(ctx context.Context, source string, startSec, durationSec int, dest string) error {
	if durationSec <= 0 {
		return fmt.Errorf("extract chunk: invalid duration %d", durationSec)
	}
	args := []string{
		"-y",
		"-hide_banner",
		"-loglevel", "error",
		"-ss", fmt.Sprintf("%d", startSec),
		"-t", fmt.Sprintf("%d", durationSec),
		"-i", source,
		"-vn",
		"-ac", "1",
		"-ar", "16000",
		"-c:a", "pcm_s16le",
		dest,
	}
	ctx, cancel := c.boundContext(ctx)
	defer cancel()
	if output, err := c.exec.Run(ctx, c.cfg.FFmpegBinary, args); err != nil {
		return services.Wrap(services.ErrExternalTool, "whisper", "extract chunk", strings.TrimSpace(string(output)), err)
	}
	return nil
}

// Duration reports the audio duration of the file in whole seconds,
// rounding partial seconds up so the final chunk is never dropped.
func (c *Client) Duration(ctx context.Context, audioPath string) (int, error) {
	if strings.TrimSpace(audioPath) == "" {
		return 0, errors.New("duration: audio path required")
	}
	args := []string{
		"-v", "error",
		"-show_entries", "format=duration",
		"-of", "default=noprint_wrappers=1:nokey=1",
		audioPath,
	}
	ctx, cancel := c.boundContext(ctx)
	defer cancel()
	output, err := c.exec.Run(ctx, c.cfg.FFprobeBinary, args)
	if err != nil {
		return 0, services.Wrap(services.ErrExternalTool, "whisper", "probe duration", strings.TrimSpace(string(output)), err)
	}
	seconds, err := strconv.ParseFloat(strings.TrimSpace(string(output)), 64)
	if err != nil {
		return 0, services.Wrap(services.ErrTranscription, "whisper", "parse duration", strings.TrimSpace(string(output)), err)
	}
	if seconds <= 0 {
		return 0, services.Wrap(services.ErrTranscription, "whisper", "probe duration", fmt.Sprintf("reported %v seconds", seconds), nil)
	}
	return int(math.Ceil(seconds)), nil
}

// Recognize transcribes one WAV chunk and returns its text. The recognizer
// writes a plain-text file next to its input; an empty or missing transcript
// yields an empty string with no error, which callers treat as an
// unrecognized chunk.
func (c *Client) Recognize(ctx context.Context, wavPath string) (string, error) {
	if strings.TrimSpace(wavPath) == "" {
		return "", errors.New("recognize: wav path required")
	}
	outputDir := filepath.Dir(wavPath)

	args := []string{
		wavPath,
		"--model", c.Model(),
		"--output_format", "txt",
		"--output_dir", outputDir,
		"--fp16", "False",
		"--verbose", "False",
	}
	if lang := langpkg.ToISO2(c.cfg.Language); lang != "" {
		args = append(args, "--language", lang)
	}

	ctx, cancel := c.boundContext(ctx)
	defer cancel()
	if output, err := c.exec.Run(ctx, c.cfg.Binary, args); err != nil {
		return "", services.Wrap(services.ErrExternalTool, "whisper", "recognize", strings.TrimSpace(string(output)), err)
	}

	baseName := strings.TrimSuffix(filepath.Base(wavPath), filepath.Ext(wavPath))
	textPath := filepath.Join(outputDir, baseName+".txt")
	data, err := os.ReadFile(textPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", nil
		}
		return "", services.Wrap(services.ErrTranscription, "whisper", "read transcript", textPath, err)
	}
	return strings.TrimSpace(string(data)), nil
}

func (c *Client) boundContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.cfg.TimeoutSeconds > 0 {
		return context.WithTimeout(ctx, time.Duration(c.cfg.TimeoutSeconds)*time.Second)
	}
	return context.WithCancel(ctx)
}
