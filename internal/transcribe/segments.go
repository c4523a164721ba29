package transcribe

import "strings"

// Synthesis constants for the cloud backend, which returns no timing data.
// Words are divided into fixed-size groups and each group is assumed to span
// a fixed duration. This is a linear approximation with no relation to the
// actual audio timing.
const (
	synthWordsPerSegment = 12
	synthSegmentSeconds  = 5.0
)

// SynthesizeSegments fabricates evenly spaced segments from plain text.
// Returns nil for empty text.
func SynthesizeSegments(text string) []Segment {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}
	segments := make([]Segment, 0, (len(words)+synthWordsPerSegment-1)/synthWordsPerSegment)
	for start := 0; start < len(words); start += synthWordsPerSegment {
		end := start + synthWordsPerSegment
		if end > len(words) {
			end = len(words)
		}
		index := float64(len(segments))
		segments = append(segments, Segment{
			Start: index * synthSegmentSeconds,
			End:   (index + 1) * synthSegmentSeconds,
			Text:  strings.Join(words[start:end], " "),
		})
	}
	return segments
}
