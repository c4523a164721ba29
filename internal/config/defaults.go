package config

const (
	defaultDownloadDir       = "~/.local/share/soundrip/downloads"
	defaultTranscriptDir     = "~/.local/share/soundrip/transcripts"
	defaultLogDir            = "~/.local/share/soundrip/logs"
	defaultAudioFormat       = "mp3"
	defaultAudioQuality      = "192"
	defaultExtractTimeout    = 600
	defaultSpeechBackend     = "local"
	defaultSpeechModel       = "base"
	defaultSpeechLanguage    = "en"
	defaultChunkSeconds      = 30
	defaultChunkDelaySeconds = 1
	defaultSpeechTimeout     = 120
	defaultCommentsBaseURL   = "https://www.googleapis.com/youtube/v3"
	defaultCommentsMax       = 100
	defaultLLMBaseURL        = "https://openrouter.ai/api/v1/chat/completions"
	defaultLLMModel          = "google/gemini-3-flash-preview"
	defaultLLMReferer        = "https://github.com/soundrip/soundrip"
	defaultLLMTitle          = "soundrip analysis"
	defaultLLMTimeout        = 60
	defaultLogFormat         = "console"
	defaultLogLevel          = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DownloadDir:   defaultDownloadDir,
			TranscriptDir: defaultTranscriptDir,
			LogDir:        defaultLogDir,
		},
		Extract: Extract{
			AudioFormat:    defaultAudioFormat,
			AudioQuality:   defaultAudioQuality,
			TimeoutSeconds: defaultExtractTimeout,
		},
		Speech: Speech{
			Backend:           defaultSpeechBackend,
			Model:             defaultSpeechModel,
			Language:          defaultSpeechLanguage,
			ChunkSeconds:      defaultChunkSeconds,
			ChunkDelaySeconds: defaultChunkDelaySeconds,
			TimeoutSeconds:    defaultSpeechTimeout,
		},
		Comments: Comments{
			BaseURL:    defaultCommentsBaseURL,
			MaxResults: defaultCommentsMax,
		},
		LLM: LLM{
			BaseURL:        defaultLLMBaseURL,
			Model:          defaultLLMModel,
			Referer:        defaultLLMReferer,
			Title:          defaultLLMTitle,
			TimeoutSeconds: defaultLLMTimeout,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
