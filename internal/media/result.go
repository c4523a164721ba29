package media

import (
	"io"
	"os"
	"path/filepath"
	"strings"
)

// ExtractionResult is the sole contract boundary between the extraction
// pipeline and its consumers: either a success carrying the resolved file and
// echoed metadata, or a failure carrying a diagnostic message. Exactly one of
// the two shapes is populated; Succeeded discriminates.
type ExtractionResult struct {
	Succeeded bool

	// Populated on success.
	FilePath        string
	FileName        string
	Title           string
	Uploader        string
	DurationSeconds int

	// Populated on failure, verbatim diagnostic text from the failing step.
	Message string
}

// Success builds a success result for the resolved file path.
func Success(filePath string, meta VideoMetadata) ExtractionResult {
	return ExtractionResult{
		Succeeded:       true,
		FilePath:        filePath,
		FileName:        filepath.Base(filePath),
		Title:           meta.Title,
		Uploader:        meta.Uploader,
		DurationSeconds: meta.DurationSeconds,
	}
}

// Failure builds a failure result carrying the diagnostic message.
func Failure(message string) ExtractionResult {
	return ExtractionResult{Message: strings.TrimSpace(message)}
}

// Open returns a byte stream over the extracted file together with its MIME
// content type, for serving to a player or download link. Callers own the
// returned ReadCloser.
func (r ExtractionResult) Open() (io.ReadCloser, string, error) {
	file, err := os.Open(r.FilePath)
	if err != nil {
		return nil, "", err
	}
	ext := strings.TrimPrefix(filepath.Ext(r.FileName), ".")
	return file, AudioFormat(ext).ContentType(), nil
}
