package transcribe

import (
	"fmt"
	"strings"
	"testing"
)

func TestSynthesizeSegmentsEmpty(t *testing.T) {
	if got := SynthesizeSegments("   "); got != nil {
		t.Errorf("expected nil for blank text, got %v", got)
	}
}

func TestSynthesizeSegmentsGrouping(t *testing.T) {
	words := make([]string, 25)
	for i := range words {
		words[i] = fmt.Sprintf("w%d", i)
	}

	segments := SynthesizeSegments(strings.Join(words, " "))
	if len(segments) != 3 {
		t.Fatalf("segment count = %d, want 3", len(segments))
	}
	if got := len(strings.Fields(segments[0].Text)); got != 12 {
		t.Errorf("first segment words = %d, want 12", got)
	}
	if got := len(strings.Fields(segments[2].Text)); got != 1 {
		t.Errorf("final segment words = %d, want 1", got)
	}
	for i, seg := range segments {
		wantStart := float64(i) * 5.0
		if seg.Start != wantStart || seg.End != wantStart+5.0 {
			t.Errorf("segment %d spans %.1f-%.1f, want %.1f-%.1f", i, seg.Start, seg.End, wantStart, wantStart+5.0)
		}
	}
}

func TestSynthesizeSegmentsCollapsesWhitespace(t *testing.T) {
	segments := SynthesizeSegments("one\n two\t three")
	if len(segments) != 1 {
		t.Fatalf("segment count = %d, want 1", len(segments))
	}
	if segments[0].Text != "one two three" {
		t.Errorf("text = %q", segments[0].Text)
	}
}
