package transcribe

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"soundrip/internal/textutil"
)

// Cache persists transcripts in a flat directory. Each transcript is a
// plain-text file plus a JSON sidecar; the pair is keyed by audio filename
// stem and recognizer model.
type Cache struct {
	dir string
}

// NewCache creates a cache rooted at dir.
func NewCache(dir string) *Cache {
	return &Cache{dir: dir}
}

// sidecar is the JSON document stored next to the plain-text transcript.
type sidecar struct {
	Language    string    `json:"language"`
	Model       string    `json:"model"`
	Approximate bool      `json:"approximate,omitempty"`
	Segments    []Segment `json:"segments"`
}

func (c *Cache) paths(stem, model string) (textPath, jsonPath string) {
	base := fmt.Sprintf("%s.%s", stem, textutil.SanitizeToken(model))
	return filepath.Join(c.dir, base+".txt"), filepath.Join(c.dir, base+".json")
}

// Lookup returns the cached transcript for the stem/model pair. Presence of
// both the text file and the sidecar is treated as a hit; anything less is a
// miss, never an error.
func (c *Cache) Lookup(stem, model string) (Transcript, bool) {
	var transcript Transcript
	textPath, jsonPath := c.paths(stem, model)

	text, err := os.ReadFile(textPath)
	if err != nil {
		return transcript, false
	}
	meta, err := os.ReadFile(jsonPath)
	if err != nil {
		return transcript, false
	}
	var side sidecar
	if err := json.Unmarshal(meta, &side); err != nil {
		return transcript, false
	}

	transcript = Transcript{
		Text:        strings.TrimSpace(string(text)),
		Language:    side.Language,
		Model:       side.Model,
		Segments:    side.Segments,
		Approximate: side.Approximate,
		CacheHit:    true,
	}
	if transcript.Model == "" {
		transcript.Model = model
	}
	return transcript, true
}

// Store writes the transcript pair for the given stem. The text file is
// written last so a crash cannot leave a hit without its sidecar.
func (c *Cache) Store(stem string, transcript Transcript) error {
	if strings.TrimSpace(stem) == "" {
		return errors.New("transcript cache: stem required")
	}
	if err := os.MkdirAll(c.dir, 0o755); err != nil {
		return fmt.Errorf("transcript cache: ensure directory: %w", err)
	}

	textPath, jsonPath := c.paths(stem, transcript.Model)
	side := sidecar{
		Language:    transcript.Language,
		Model:       transcript.Model,
		Approximate: transcript.Approximate,
		Segments:    transcript.Segments,
	}
	meta, err := json.MarshalIndent(side, "", "  ")
	if err != nil {
		return fmt.Errorf("transcript cache: encode sidecar: %w", err)
	}
	if err := os.WriteFile(jsonPath, meta, 0o644); err != nil {
		return fmt.Errorf("transcript cache: write sidecar: %w", err)
	}
	if err := os.WriteFile(textPath, []byte(transcript.Text+"\n"), 0o644); err != nil {
		return fmt.Errorf("transcript cache: write text: %w", err)
	}
	return nil
}

// TextPath returns the plain-text transcript location for a stem/model pair.
func (c *Cache) TextPath(stem, model string) string {
	textPath, _ := c.paths(stem, model)
	return textPath
}
