package transcribe

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"soundrip/internal/logging"
	"soundrip/internal/services"
)

// UnrecognizedPlaceholder stands in for chunks the recognizer could not
// understand or that failed after the single retry.
const UnrecognizedPlaceholder = "[unrecognized]"

const defaultRetryDelay = 2 * time.Second

// LocalRecognizer is the offline backend: duration probing, chunk
// preparation, and per-chunk recognition.
type LocalRecognizer interface {
	Duration(ctx context.Context, audioPath string) (int, error)
	ExtractChunk(ctx context.Context, source string, startSec, durationSec int, dest string) error
	Recognize(ctx context.Context, wavPath string) (string, error)
	Model() string
}

// FileRecognizer is the cloud backend: one call for the whole file.
type FileRecognizer interface {
	Transcribe(ctx context.Context, audioPath string) (string, error)
	Model() string
}

// Option configures a service.
type Option func(*options)

type options struct {
	retryDelay time.Duration
	sleeper    func(time.Duration)
}

// WithRetryDelay overrides the delay before the single transient-error retry.
func WithRetryDelay(delay time.Duration) Option {
	return func(o *options) { o.retryDelay = delay }
}

// WithSleeper overrides how delays are performed (useful for tests).
func WithSleeper(sleeper func(time.Duration)) Option {
	return func(o *options) { o.sleeper = sleeper }
}

func newOptions(opts []Option) options {
	o := options{retryDelay: defaultRetryDelay, sleeper: time.Sleep}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// LocalService transcribes audio with the offline recognizer, one
// fixed-length chunk at a time with a fixed inter-chunk delay. Processing is
// strictly sequential.
type LocalService struct {
	recognizer   LocalRecognizer
	cache        *Cache
	language     string
	chunkSeconds int
	chunkDelay   time.Duration
	opts         options
	logger       *slog.Logger
}

// NewLocalService constructs the chunked local transcription service.
func NewLocalService(recognizer LocalRecognizer, cache *Cache, language string, chunkSeconds, chunkDelaySeconds int, logger *slog.Logger, opts ...Option) *LocalService {
	if chunkSeconds <= 0 {
		chunkSeconds = 30
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	return &LocalService{
		recognizer:   recognizer,
		cache:        cache,
		language:     language,
		chunkSeconds: chunkSeconds,
		chunkDelay:   time.Duration(chunkDelaySeconds) * time.Second,
		opts:         newOptions(opts),
		logger:       logger,
	}
}

// Transcribe produces a transcript for the audio file, consulting the cache
// first. stem keys the cache entry; durationSeconds drives chunking and is
// probed from the file when the caller does not know it.
func (s *LocalService) Transcribe(ctx context.Context, audioPath string, durationSeconds int, stem string) (Transcript, error) {
	log := logging.WithContext(ctx, s.logger).With(logging.FieldComponent, "transcribe")

	if s.cache != nil {
		if cached, ok := s.cache.Lookup(stem, s.recognizer.Model()); ok {
			log.Info("transcript cache hit", "stem", stem, "model", s.recognizer.Model())
			return cached, nil
		}
	}

	if durationSeconds <= 0 {
		probed, err := s.recognizer.Duration(ctx, audioPath)
		if err != nil {
			return Transcript{}, services.Wrap(services.ErrTranscription, "transcribe", "probe duration", audioPath, err)
		}
		durationSeconds = probed
	}

	chunks := chunkCount(durationSeconds, s.chunkSeconds)
	workDir, err := os.MkdirTemp("", "soundrip-chunks-*")
	if err != nil {
		return Transcript{}, services.Wrap(services.ErrTranscription, "transcribe", "create work directory", "", err)
	}
	defer os.RemoveAll(workDir)

	texts := make([]string, 0, chunks)
	segments := make([]Segment, 0, chunks)
	for i := 0; i < chunks; i++ {
		if err := ctx.Err(); err != nil {
			return Transcript{}, services.Wrap(services.ErrTranscription, "transcribe", "canceled", "", err)
		}

		start := i * s.chunkSeconds
		duration := s.chunkSeconds
		if durationSeconds > 0 && start+duration > durationSeconds {
			duration = durationSeconds - start
		}

		text := s.recognizeChunk(ctx, log, audioPath, workDir, i, start, duration)
		texts = append(texts, text)
		segments = append(segments, Segment{
			Start: float64(start),
			End:   float64(start + duration),
			Text:  text,
		})

		if i < chunks-1 && s.chunkDelay > 0 {
			s.opts.sleeper(s.chunkDelay)
		}
	}

	transcript := Transcript{
		Text:     strings.Join(texts, " "),
		Language: s.language,
		Model:    s.recognizer.Model(),
		Segments: segments,
	}
	if s.cache != nil {
		if err := s.cache.Store(stem, transcript); err != nil {
			log.Warn("transcript cache store failed", "error", err)
		}
	}
	return transcript, nil
}

// recognizeChunk extracts and recognizes one chunk. Failures degrade to the
// placeholder: transient errors get exactly one retry after a fixed delay.
func (s *LocalService) recognizeChunk(ctx context.Context, log *slog.Logger, audioPath, workDir string, index, start, duration int) string {
	wavPath := filepath.Join(workDir, fmt.Sprintf("chunk_%03d.wav", index))
	if err := s.extractWithRetry(ctx, audioPath, start, duration, wavPath); err != nil {
		log.Warn("chunk extraction failed", "chunk", index, "error", err)
		return UnrecognizedPlaceholder
	}

	text, err := s.recognizer.Recognize(ctx, wavPath)
	if err != nil {
		s.opts.sleeper(s.opts.retryDelay)
		text, err = s.recognizer.Recognize(ctx, wavPath)
	}
	if err != nil {
		log.Warn("chunk recognition failed after retry", "chunk", index, "error", err)
		return UnrecognizedPlaceholder
	}
	if strings.TrimSpace(text) == "" {
		return UnrecognizedPlaceholder
	}
	return strings.TrimSpace(text)
}

func (s *LocalService) extractWithRetry(ctx context.Context, audioPath string, start, duration int, wavPath string) error {
	err := s.recognizer.ExtractChunk(ctx, audioPath, start, duration, wavPath)
	if err == nil {
		return nil
	}
	s.opts.sleeper(s.opts.retryDelay)
	return s.recognizer.ExtractChunk(ctx, audioPath, start, duration, wavPath)
}

// CloudService transcribes the whole file in one upload. The returned
// transcript carries synthesized, approximate segments because the service
// reports no timing data.
type CloudService struct {
	recognizer FileRecognizer
	cache      *Cache
	language   string
	logger     *slog.Logger
}

// NewCloudService constructs the whole-file cloud transcription service.
func NewCloudService(recognizer FileRecognizer, cache *Cache, language string, logger *slog.Logger) *CloudService {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &CloudService{recognizer: recognizer, cache: cache, language: language, logger: logger}
}

// Transcribe produces a transcript for the audio file, consulting the cache
// first. durationSeconds is accepted for interface symmetry; the synthesized
// segment timing does not use it.
func (s *CloudService) Transcribe(ctx context.Context, audioPath string, durationSeconds int, stem string) (Transcript, error) {
	log := logging.WithContext(ctx, s.logger).With(logging.FieldComponent, "transcribe")

	if s.cache != nil {
		if cached, ok := s.cache.Lookup(stem, s.recognizer.Model()); ok {
			log.Info("transcript cache hit", "stem", stem, "model", s.recognizer.Model())
			return cached, nil
		}
	}

	text, err := s.recognizer.Transcribe(ctx, audioPath)
	if err != nil {
		return Transcript{}, err
	}

	transcript := Transcript{
		Text:        text,
		Language:    s.language,
		Model:       s.recognizer.Model(),
		Segments:    SynthesizeSegments(text),
		Approximate: true,
	}
	if s.cache != nil {
		if err := s.cache.Store(stem, transcript); err != nil {
			log.Warn("transcript cache store failed", "error", err)
		}
	}
	return transcript, nil
}

// chunkCount returns how many fixed-length chunks cover the duration.
// Callers resolve an unknown duration before chunking.
func chunkCount(durationSeconds, chunkSeconds int) int {
	if durationSeconds <= 0 {
		return 1
	}
	return (durationSeconds + chunkSeconds - 1) / chunkSeconds
}
