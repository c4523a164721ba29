package main

import (
	"testing"

	"soundrip/internal/media"
)

func TestBuildExtractionRequestDefaults(t *testing.T) {
	req, err := buildExtractionRequest("mp3", "192", "/downloads", "https://youtu.be/abc123def45", "", "", "")
	if err != nil {
		t.Fatalf("buildExtractionRequest: %v", err)
	}
	if req.AudioFormat != media.FormatMP3 {
		t.Errorf("format = %v", req.AudioFormat)
	}
	if req.AudioQuality != media.Quality192 {
		t.Errorf("quality = %v", req.AudioQuality)
	}
	if req.OutputDirectory != "/downloads" {
		t.Errorf("dir = %q", req.OutputDirectory)
	}
}

func TestBuildExtractionRequestFlagOverrides(t *testing.T) {
	req, err := buildExtractionRequest("mp3", "192", "/downloads", "url", "flac", "best", "")
	if err != nil {
		t.Fatalf("buildExtractionRequest: %v", err)
	}
	if req.AudioFormat != media.FormatFLAC || req.AudioQuality != media.QualityBest {
		t.Errorf("overrides not applied: %+v", req)
	}
}

func TestBuildExtractionRequestRejectsBadFormat(t *testing.T) {
	if _, err := buildExtractionRequest("mp3", "192", "/d", "url", "ogg", "", ""); err == nil {
		t.Fatal("expected error for unsupported format")
	}
	if _, err := buildExtractionRequest("mp3", "192", "/d", "url", "", "128", ""); err == nil {
		t.Fatal("expected error for unsupported quality")
	}
}

func TestExtractionRecordFromResult(t *testing.T) {
	req := media.ExtractionRequest{
		SourceURL:       "https://www.youtube.com/watch?v=dQw4w9WgXcQ",
		OutputDirectory: "/downloads",
		AudioFormat:     media.FormatMP3,
		AudioQuality:    media.Quality192,
	}
	result := media.Success("/downloads/clip.mp3", media.VideoMetadata{
		Title: "Clip", Uploader: "Someone", DurationSeconds: 90,
	})

	record := extractionRecordFromResult(req, result)
	if record.VideoID != "dQw4w9WgXcQ" {
		t.Errorf("video id = %q", record.VideoID)
	}
	if !record.Succeeded || record.FilePath != "/downloads/clip.mp3" {
		t.Errorf("record = %+v", record)
	}
	if record.AudioFormat != "mp3" || record.AudioQuality != "192" {
		t.Errorf("format/quality = %q/%q", record.AudioFormat, record.AudioQuality)
	}
}

func TestExtractionRecordNonYouTubeURL(t *testing.T) {
	req := media.ExtractionRequest{SourceURL: "https://vimeo.com/12345"}
	record := extractionRecordFromResult(req, media.Failure("probe failed"))
	if record.VideoID != "" {
		t.Errorf("video id = %q, want empty for non-YouTube URL", record.VideoID)
	}
	if record.Succeeded || record.Message != "probe failed" {
		t.Errorf("record = %+v", record)
	}
}
