package media

import (
	"errors"
	"fmt"
	"strings"
)

// AudioFormat enumerates the container formats the extractor may be asked to
// produce. No other value is ever passed to the external extractor.
type AudioFormat string

const (
	FormatMP3  AudioFormat = "mp3"
	FormatM4A  AudioFormat = "m4a"
	FormatWAV  AudioFormat = "wav"
	FormatFLAC AudioFormat = "flac"
)

// AudioQuality enumerates the bitrate selections accepted by the extractor.
type AudioQuality string

const (
	Quality192  AudioQuality = "192"
	Quality256  AudioQuality = "256"
	Quality320  AudioQuality = "320"
	QualityBest AudioQuality = "best"
)

// ParseAudioFormat validates a user-supplied format string.
func ParseAudioFormat(value string) (AudioFormat, error) {
	switch format := AudioFormat(strings.ToLower(strings.TrimSpace(value))); format {
	case FormatMP3, FormatM4A, FormatWAV, FormatFLAC:
		return format, nil
	default:
		return "", fmt.Errorf("unsupported audio format %q (expected mp3, m4a, wav, or flac)", value)
	}
}

// ParseAudioQuality validates a user-supplied quality string.
func ParseAudioQuality(value string) (AudioQuality, error) {
	switch quality := AudioQuality(strings.ToLower(strings.TrimSpace(value))); quality {
	case Quality192, Quality256, Quality320, QualityBest:
		return quality, nil
	default:
		return "", fmt.Errorf("unsupported audio quality %q (expected 192, 256, 320, or best)", value)
	}
}

// ContentType returns the MIME type for the format, used when serving the
// extracted file as a byte stream.
func (f AudioFormat) ContentType() string {
	switch f {
	case FormatMP3:
		return "audio/mpeg"
	case FormatM4A:
		return "audio/mp4"
	case FormatWAV:
		return "audio/wav"
	case FormatFLAC:
		return "audio/flac"
	default:
		return "application/octet-stream"
	}
}

// ExtractionRequest describes one audio extraction. SourceURL must be
// non-empty; AudioFormat and AudioQuality must come from the enumerations
// above.
type ExtractionRequest struct {
	SourceURL       string
	OutputDirectory string
	AudioFormat     AudioFormat
	AudioQuality    AudioQuality
}

// Validate rejects malformed requests before any external call is made.
func (r ExtractionRequest) Validate() error {
	if strings.TrimSpace(r.SourceURL) == "" {
		return errors.New("source URL required")
	}
	if strings.TrimSpace(r.OutputDirectory) == "" {
		return errors.New("output directory required")
	}
	if _, err := ParseAudioFormat(string(r.AudioFormat)); err != nil {
		return err
	}
	if _, err := ParseAudioQuality(string(r.AudioQuality)); err != nil {
		return err
	}
	return nil
}
