package session

import "time"

// ExtractionRecord is one extraction attempt, successful or not.
type ExtractionRecord struct {
	ID              string
	VideoID         string
	SourceURL       string
	Title           string
	Uploader        string
	DurationSeconds int
	FilePath        string
	AudioFormat     string
	AudioQuality    string
	Succeeded       bool
	Message         string
	CreatedAt       time.Time
}

// TranscriptRecord points at a stored transcript for a video/model pair.
type TranscriptRecord struct {
	VideoID     string
	Model       string
	TextPath    string
	Language    string
	Approximate bool
	CreatedAt   time.Time
}

// CommentFetchRecord notes the most recent comment fetch for a video.
type CommentFetchRecord struct {
	VideoID      string
	CommentCount int
	CreatedAt    time.Time
}
