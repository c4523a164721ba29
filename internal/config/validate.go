package config

import (
	"errors"
	"fmt"

	"soundrip/internal/media"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateExtract(); err != nil {
		return err
	}
	if err := c.validateSpeech(); err != nil {
		return err
	}
	if err := c.validateComments(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateExtract() error {
	if _, err := media.ParseAudioFormat(c.Extract.AudioFormat); err != nil {
		return fmt.Errorf("extract.audio_format: %w", err)
	}
	if _, err := media.ParseAudioQuality(c.Extract.AudioQuality); err != nil {
		return fmt.Errorf("extract.audio_quality: %w", err)
	}
	return nil
}

func (c *Config) validateSpeech() error {
	switch c.Speech.Backend {
	case "local", "cloud":
	default:
		return fmt.Errorf("speech.backend must be \"local\" or \"cloud\", got %q", c.Speech.Backend)
	}
	if c.Speech.ChunkSeconds > 300 {
		return errors.New("speech.chunk_seconds must be at most 300")
	}
	return nil
}

func (c *Config) validateComments() error {
	if c.Comments.MaxResults > 100 {
		return errors.New("comments.max_results must be at most 100")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be \"console\" or \"json\", got %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be debug, info, warn, or error, got %q", c.Logging.Level)
	}
	return nil
}
