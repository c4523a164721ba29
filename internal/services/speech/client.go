package speech

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	langpkg "soundrip/internal/language"
	"soundrip/internal/services"
)

const (
	defaultEndpoint    = "https://api.openai.com/v1/audio/transcriptions"
	defaultModel       = "whisper-1"
	defaultHTTPTimeout = 120 * time.Second
)

// Config captures the runtime settings required to talk to the speech API.
type Config struct {
	APIKey         string
	Endpoint       string
	Model          string
	Language       string
	TimeoutSeconds int
}

// Option customizes the client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client (useful for tests).
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// Client wraps the cloud transcription endpoint.
type Client struct {
	cfg        Config
	httpClient *http.Client
}

// NewClient constructs a speech client using the supplied configuration.
func NewClient(cfg Config, opts ...Option) *Client {
	timeout := defaultHTTPTimeout
	if cfg.TimeoutSeconds > 0 {
		timeout = time.Duration(cfg.TimeoutSeconds) * time.Second
	}
	client := &Client{
		cfg: Config{
			APIKey:         strings.TrimSpace(cfg.APIKey),
			Endpoint:       strings.TrimSpace(cfg.Endpoint),
			Model:          strings.TrimSpace(cfg.Model),
			Language:       strings.TrimSpace(cfg.Language),
			TimeoutSeconds: cfg.TimeoutSeconds,
		},
		httpClient: &http.Client{Timeout: timeout},
	}
	for _, opt := range opts {
		opt(client)
	}
	if client.cfg.Endpoint == "" {
		client.cfg.Endpoint = defaultEndpoint
	}
	if client.cfg.Model == "" {
		client.cfg.Model = defaultModel
	}
	return client
}

// Model returns the configured model identifier used in cache filenames.
func (c *Client) Model() string {
	return c.cfg.Model
}

type transcriptionResponse struct {
	Text  string `json:"text"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Transcribe uploads the audio file and returns its plain-text transcript.
// A single attempt is made; callers decide retry policy.
func (c *Client) Transcribe(ctx context.Context, audioPath string) (string, error) {
	if c.cfg.APIKey == "" {
		return "", services.Wrap(services.ErrConfiguration, "speech", "transcribe", "speech API key required", nil)
	}

	file, err := os.Open(audioPath)
	if err != nil {
		return "", services.Wrap(services.ErrTranscription, "speech", "open audio", audioPath, err)
	}
	defer file.Close()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", filepath.Base(audioPath))
	if err != nil {
		return "", services.Wrap(services.ErrTranscription, "speech", "build request", "", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return "", services.Wrap(services.ErrTranscription, "speech", "read audio", "", err)
	}
	if err := writer.WriteField("model", c.cfg.Model); err != nil {
		return "", services.Wrap(services.ErrTranscription, "speech", "build request", "", err)
	}
	if lang := langpkg.ToISO2(c.cfg.Language); lang != "" {
		if err := writer.WriteField("language", lang); err != nil {
			return "", services.Wrap(services.ErrTranscription, "speech", "build request", "", err)
		}
	}
	if err := writer.Close(); err != nil {
		return "", services.Wrap(services.ErrTranscription, "speech", "build request", "", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.Endpoint, &body)
	if err != nil {
		return "", services.Wrap(services.ErrTranscription, "speech", "new request", "", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", services.Wrap(services.ErrTranscription, "speech", "http request", "", err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", services.Wrap(services.ErrTranscription, "speech", "read response", "", err)
	}
	if resp.StatusCode != http.StatusOK {
		detail := fmt.Sprintf("http %d: %s", resp.StatusCode, strings.TrimSpace(string(payload)))
		return "", services.Wrap(services.ErrTranscription, "speech", "transcribe", detail, nil)
	}

	var parsed transcriptionResponse
	if err := json.Unmarshal(payload, &parsed); err != nil {
		return "", services.Wrap(services.ErrTranscription, "speech", "decode response", "", err)
	}
	if parsed.Error != nil {
		return "", services.Wrap(services.ErrTranscription, "speech", "transcribe", parsed.Error.Message, nil)
	}
	return strings.TrimSpace(parsed.Text), nil
}
