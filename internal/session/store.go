package session

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"soundrip/internal/config"
)

// Store manages session persistence backed by SQLite. A lock file next to
// the database serializes access across processes.
type Store struct {
	db       *sql.DB
	path     string
	lock     *flock.Flock
	lockPath string
}

const timeLayout = time.RFC3339

// Open initializes or connects to the session database, acquiring the
// process lock. It fails fast when another soundrip process holds the lock.
func Open(cfg *config.Config) (*Store, error) {
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("ensure directories: %w", err)
	}

	lockPath := filepath.Join(cfg.Paths.LogDir, "session.lock")
	lock := flock.New(lockPath)
	ok, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire session lock: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("another soundrip process holds the session database (lock %s)", lockPath)
	}

	dbPath := filepath.Join(cfg.Paths.LogDir, "session.db")
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		_ = lock.Unlock()
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			_ = lock.Unlock()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: dbPath, lock: lock, lockPath: lockPath}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		_ = lock.Unlock()
		return nil, err
	}
	return store, nil
}

// Close closes the database and releases the process lock.
func (s *Store) Close() error {
	if s == nil {
		return nil
	}
	var errs []error
	if s.db != nil {
		if err := s.db.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close db: %w", err))
		}
		s.db = nil
	}
	if s.lock != nil {
		if err := s.lock.Unlock(); err != nil {
			errs = append(errs, fmt.Errorf("release session lock: %w", err))
		}
		s.lock = nil
	}
	return errors.Join(errs...)
}

// Path reports the database file location.
func (s *Store) Path() string {
	return s.path
}

// RecordExtraction inserts an extraction row and clears the video's
// transcript and comment rows. Deleting the dependents and inserting the new
// row happen in one transaction, so downstream state never outlives the
// extraction it described.
func (s *Store) RecordExtraction(ctx context.Context, record ExtractionRecord) (ExtractionRecord, error) {
	if strings.TrimSpace(record.SourceURL) == "" {
		return ExtractionRecord{}, errors.New("session: source url required")
	}
	if record.ID == "" {
		record.ID = uuid.NewString()
	}
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now().UTC()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return ExtractionRecord{}, fmt.Errorf("session: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if record.VideoID != "" {
		if _, err := tx.ExecContext(ctx, "DELETE FROM transcripts WHERE video_id = ?", record.VideoID); err != nil {
			return ExtractionRecord{}, fmt.Errorf("session: clear transcripts: %w", err)
		}
		if _, err := tx.ExecContext(ctx, "DELETE FROM comment_fetches WHERE video_id = ?", record.VideoID); err != nil {
			return ExtractionRecord{}, fmt.Errorf("session: clear comment fetches: %w", err)
		}
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO extractions
			(id, video_id, source_url, title, uploader, duration_seconds,
			 file_path, audio_format, audio_quality, succeeded, message, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		record.ID, record.VideoID, record.SourceURL, record.Title, record.Uploader,
		record.DurationSeconds, record.FilePath, record.AudioFormat, record.AudioQuality,
		boolToInt(record.Succeeded), record.Message, record.CreatedAt.Format(timeLayout))
	if err != nil {
		return ExtractionRecord{}, fmt.Errorf("session: insert extraction: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return ExtractionRecord{}, fmt.Errorf("session: commit: %w", err)
	}
	return record, nil
}

// RecordTranscript upserts the transcript pointer for a video/model pair.
func (s *Store) RecordTranscript(ctx context.Context, record TranscriptRecord) error {
	if record.VideoID == "" || record.Model == "" {
		return errors.New("session: video id and model required")
	}
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now().UTC()
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO transcripts (video_id, model, text_path, language, approximate, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(video_id, model) DO UPDATE SET
			text_path = excluded.text_path,
			language = excluded.language,
			approximate = excluded.approximate,
			created_at = excluded.created_at`,
		record.VideoID, record.Model, record.TextPath, record.Language,
		boolToInt(record.Approximate), record.CreatedAt.Format(timeLayout))
	if err != nil {
		return fmt.Errorf("session: record transcript: %w", err)
	}
	return nil
}

// RecordCommentFetch upserts the comment fetch note for a video.
func (s *Store) RecordCommentFetch(ctx context.Context, record CommentFetchRecord) error {
	if record.VideoID == "" {
		return errors.New("session: video id required")
	}
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now().UTC()
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO comment_fetches (video_id, comment_count, created_at)
		VALUES (?, ?, ?)
		ON CONFLICT(video_id) DO UPDATE SET
			comment_count = excluded.comment_count,
			created_at = excluded.created_at`,
		record.VideoID, record.CommentCount, record.CreatedAt.Format(timeLayout))
	if err != nil {
		return fmt.Errorf("session: record comment fetch: %w", err)
	}
	return nil
}

// Transcripts returns the transcript pointers recorded for a video.
func (s *Store) Transcripts(ctx context.Context, videoID string) ([]TranscriptRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT video_id, model, text_path, language, approximate, created_at
		FROM transcripts WHERE video_id = ? ORDER BY created_at DESC`, videoID)
	if err != nil {
		return nil, fmt.Errorf("session: list transcripts: %w", err)
	}
	defer rows.Close()

	var records []TranscriptRecord
	for rows.Next() {
		var record TranscriptRecord
		var approximate int
		var createdAt string
		if err := rows.Scan(&record.VideoID, &record.Model, &record.TextPath,
			&record.Language, &approximate, &createdAt); err != nil {
			return nil, fmt.Errorf("session: scan transcript: %w", err)
		}
		record.Approximate = approximate != 0
		record.CreatedAt, _ = time.Parse(timeLayout, createdAt)
		records = append(records, record)
	}
	return records, rows.Err()
}

// History returns the most recent extractions, newest first.
func (s *Store) History(ctx context.Context, limit int) ([]ExtractionRecord, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, video_id, source_url, title, uploader, duration_seconds,
		       file_path, audio_format, audio_quality, succeeded, message, created_at
		FROM extractions ORDER BY created_at DESC, id LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("session: list history: %w", err)
	}
	defer rows.Close()

	var records []ExtractionRecord
	for rows.Next() {
		record, err := scanExtraction(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, rows.Err()
}

// LatestExtraction returns the most recent extraction row for a video.
func (s *Store) LatestExtraction(ctx context.Context, videoID string) (ExtractionRecord, bool, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, video_id, source_url, title, uploader, duration_seconds,
		       file_path, audio_format, audio_quality, succeeded, message, created_at
		FROM extractions WHERE video_id = ? ORDER BY created_at DESC, id LIMIT 1`, videoID)
	record, err := scanExtraction(row)
	if errors.Is(err, sql.ErrNoRows) {
		return ExtractionRecord{}, false, nil
	}
	if err != nil {
		return ExtractionRecord{}, false, err
	}
	return record, true, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanExtraction(row rowScanner) (ExtractionRecord, error) {
	var record ExtractionRecord
	var succeeded int
	var createdAt string
	err := row.Scan(&record.ID, &record.VideoID, &record.SourceURL, &record.Title,
		&record.Uploader, &record.DurationSeconds, &record.FilePath,
		&record.AudioFormat, &record.AudioQuality, &succeeded, &record.Message, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ExtractionRecord{}, err
		}
		return ExtractionRecord{}, fmt.Errorf("session: scan extraction: %w", err)
	}
	record.Succeeded = succeeded != 0
	record.CreatedAt, _ = time.Parse(timeLayout, createdAt)
	return record, nil
}

func boolToInt(value bool) int {
	if value {
		return 1
	}
	return 0
}
