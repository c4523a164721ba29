package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeExtract()
	c.normalizeSpeech()
	c.normalizeComments()
	c.normalizeLLM()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.DownloadDir) == "" {
		c.Paths.DownloadDir = defaultDownloadDir
	}
	if c.Paths.DownloadDir, err = expandPath(c.Paths.DownloadDir); err != nil {
		return fmt.Errorf("paths.download_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.TranscriptDir) == "" {
		c.Paths.TranscriptDir = defaultTranscriptDir
	}
	if c.Paths.TranscriptDir, err = expandPath(c.Paths.TranscriptDir); err != nil {
		return fmt.Errorf("paths.transcript_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeExtract() {
	c.Extract.AudioFormat = strings.ToLower(strings.TrimSpace(c.Extract.AudioFormat))
	if c.Extract.AudioFormat == "" {
		c.Extract.AudioFormat = defaultAudioFormat
	}
	c.Extract.AudioQuality = strings.ToLower(strings.TrimSpace(c.Extract.AudioQuality))
	if c.Extract.AudioQuality == "" {
		c.Extract.AudioQuality = defaultAudioQuality
	}
	if c.Extract.TimeoutSeconds <= 0 {
		c.Extract.TimeoutSeconds = defaultExtractTimeout
	}
}

func (c *Config) normalizeSpeech() {
	c.Speech.Backend = strings.ToLower(strings.TrimSpace(c.Speech.Backend))
	if c.Speech.Backend == "" {
		c.Speech.Backend = defaultSpeechBackend
	}
	if c.Speech.APIKey == "" {
		if value, ok := os.LookupEnv("SPEECH_API_KEY"); ok {
			c.Speech.APIKey = strings.TrimSpace(value)
		}
	}
	if strings.TrimSpace(c.Speech.Model) == "" {
		c.Speech.Model = defaultSpeechModel
	}
	if strings.TrimSpace(c.Speech.Language) == "" {
		c.Speech.Language = defaultSpeechLanguage
	}
	if c.Speech.ChunkSeconds <= 0 {
		c.Speech.ChunkSeconds = defaultChunkSeconds
	}
	if c.Speech.ChunkDelaySeconds < 0 {
		c.Speech.ChunkDelaySeconds = defaultChunkDelaySeconds
	}
	if c.Speech.TimeoutSeconds <= 0 {
		c.Speech.TimeoutSeconds = defaultSpeechTimeout
	}
}

func (c *Config) normalizeComments() {
	if c.Comments.APIKey == "" {
		if value, ok := os.LookupEnv("YOUTUBE_API_KEY"); ok {
			c.Comments.APIKey = strings.TrimSpace(value)
		}
	}
	c.Comments.BaseURL = strings.TrimRight(strings.TrimSpace(c.Comments.BaseURL), "/")
	if c.Comments.BaseURL == "" {
		c.Comments.BaseURL = defaultCommentsBaseURL
	}
	if c.Comments.MaxResults <= 0 {
		c.Comments.MaxResults = defaultCommentsMax
	}
}

func (c *Config) normalizeLLM() {
	if c.LLM.APIKey == "" {
		if value, ok := os.LookupEnv("OPENROUTER_API_KEY"); ok {
			c.LLM.APIKey = strings.TrimSpace(value)
		}
	}
	if strings.TrimSpace(c.LLM.BaseURL) == "" {
		c.LLM.BaseURL = defaultLLMBaseURL
	}
	if strings.TrimSpace(c.LLM.Model) == "" {
		c.LLM.Model = defaultLLMModel
	}
	if c.LLM.TimeoutSeconds <= 0 {
		c.LLM.TimeoutSeconds = defaultLLMTimeout
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
