package session

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"soundrip/internal/config"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.DownloadDir = filepath.Join(base, "downloads")
	cfg.Paths.TranscriptDir = filepath.Join(base, "transcripts")
	cfg.Paths.LogDir = filepath.Join(base, "logs")
	return &cfg
}

func openStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(testConfig(t))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestRecordExtractionAndHistory(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	first, err := store.RecordExtraction(ctx, ExtractionRecord{
		VideoID:   "abc123def45",
		SourceURL: "https://youtu.be/abc123def45",
		Title:     "First Video",
		Succeeded: true,
		FilePath:  "/tmp/first.mp3",
		CreatedAt: time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("RecordExtraction: %v", err)
	}
	if first.ID == "" {
		t.Error("expected generated record ID")
	}

	if _, err := store.RecordExtraction(ctx, ExtractionRecord{
		VideoID:   "xyz987wvu65",
		SourceURL: "https://youtu.be/xyz987wvu65",
		Title:     "Second Video",
		Succeeded: false,
		Message:   "probe failed",
		CreatedAt: time.Date(2026, 1, 2, 10, 0, 0, 0, time.UTC),
	}); err != nil {
		t.Fatalf("RecordExtraction: %v", err)
	}

	history, err := store.History(ctx, 10)
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(history) != 2 {
		t.Fatalf("history length = %d, want 2", len(history))
	}
	if history[0].Title != "Second Video" {
		t.Errorf("newest first: got %q", history[0].Title)
	}
	if history[1].Succeeded != true || history[0].Succeeded != false {
		t.Errorf("succeeded flags wrong: %+v", history)
	}
	if history[0].Message != "probe failed" {
		t.Errorf("message = %q", history[0].Message)
	}
}

func TestRecordExtractionClearsDependentState(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()
	const videoID = "abc123def45"

	if _, err := store.RecordExtraction(ctx, ExtractionRecord{
		VideoID: videoID, SourceURL: "https://youtu.be/" + videoID, Succeeded: true,
	}); err != nil {
		t.Fatalf("RecordExtraction: %v", err)
	}
	if err := store.RecordTranscript(ctx, TranscriptRecord{
		VideoID: videoID, Model: "base", TextPath: "/tmp/t.txt", Language: "en",
	}); err != nil {
		t.Fatalf("RecordTranscript: %v", err)
	}
	if err := store.RecordCommentFetch(ctx, CommentFetchRecord{VideoID: videoID, CommentCount: 42}); err != nil {
		t.Fatalf("RecordCommentFetch: %v", err)
	}

	// A fresh extraction of the same video resets its downstream rows.
	if _, err := store.RecordExtraction(ctx, ExtractionRecord{
		VideoID: videoID, SourceURL: "https://youtu.be/" + videoID, Succeeded: true,
	}); err != nil {
		t.Fatalf("RecordExtraction: %v", err)
	}

	transcripts, err := store.Transcripts(ctx, videoID)
	if err != nil {
		t.Fatalf("Transcripts: %v", err)
	}
	if len(transcripts) != 0 {
		t.Errorf("transcripts = %d rows, want 0 after re-extraction", len(transcripts))
	}
}

func TestRecordTranscriptUpsert(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()
	const videoID = "abc123def45"

	if err := store.RecordTranscript(ctx, TranscriptRecord{
		VideoID: videoID, Model: "base", TextPath: "/old.txt",
	}); err != nil {
		t.Fatalf("RecordTranscript: %v", err)
	}
	if err := store.RecordTranscript(ctx, TranscriptRecord{
		VideoID: videoID, Model: "base", TextPath: "/new.txt", Approximate: true,
	}); err != nil {
		t.Fatalf("RecordTranscript: %v", err)
	}

	transcripts, err := store.Transcripts(ctx, videoID)
	if err != nil {
		t.Fatalf("Transcripts: %v", err)
	}
	if len(transcripts) != 1 {
		t.Fatalf("transcripts = %d rows, want 1", len(transcripts))
	}
	if transcripts[0].TextPath != "/new.txt" || !transcripts[0].Approximate {
		t.Errorf("upsert kept stale row: %+v", transcripts[0])
	}
}

func TestLatestExtraction(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	if _, found, err := store.LatestExtraction(ctx, "missing00000"); err != nil || found {
		t.Fatalf("LatestExtraction on empty store = found=%v err=%v", found, err)
	}

	const videoID = "abc123def45"
	if _, err := store.RecordExtraction(ctx, ExtractionRecord{
		VideoID: videoID, SourceURL: "u", Title: "Old",
		CreatedAt: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}); err != nil {
		t.Fatal(err)
	}
	if _, err := store.RecordExtraction(ctx, ExtractionRecord{
		VideoID: videoID, SourceURL: "u", Title: "New",
		CreatedAt: time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
	}); err != nil {
		t.Fatal(err)
	}

	record, found, err := store.LatestExtraction(ctx, videoID)
	if err != nil {
		t.Fatalf("LatestExtraction: %v", err)
	}
	if !found || record.Title != "New" {
		t.Errorf("latest = %+v found=%v, want the newer row", record, found)
	}
}

func TestRecordExtractionRequiresURL(t *testing.T) {
	store := openStore(t)
	if _, err := store.RecordExtraction(context.Background(), ExtractionRecord{}); err == nil {
		t.Fatal("expected error for missing source url")
	}
}

func TestOpenRejectsSecondInstance(t *testing.T) {
	cfg := testConfig(t)
	first, err := Open(cfg)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer first.Close()

	if _, err := Open(cfg); err == nil {
		t.Fatal("expected second Open on the same directory to fail")
	}
}
