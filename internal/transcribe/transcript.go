package transcribe

// Segment is a transcript fragment with an associated time range. For the
// cloud backend the times are a linear approximation, flagged by
// Transcript.Approximate.
type Segment struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Text  string  `json:"text"`
}

// Transcript is the result of transcribing one audio file.
type Transcript struct {
	Text     string
	Language string
	Model    string
	Segments []Segment

	// Approximate marks synthesized segment timing with no relation to the
	// actual audio.
	Approximate bool
	// CacheHit marks a transcript loaded from the cache instead of
	// regenerated.
	CacheHit bool
}
