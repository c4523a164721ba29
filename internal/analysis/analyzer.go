// Package analysis produces an LLM-generated content report combining a
// video transcript with its top viewer comments.
package analysis

import (
	"context"
	"fmt"
	"strings"

	"soundrip/internal/comments"
	"soundrip/internal/services"
	"soundrip/internal/services/llm"
)

// Completer is the JSON chat completion surface of the LLM client.
type Completer interface {
	CompleteJSON(ctx context.Context, systemPrompt, userPrompt string) (string, error)
	Model() string
}

// Report is the structured analysis of one video.
type Report struct {
	Summary          string   `json:"summary"`
	Sentiment        string   `json:"sentiment"`
	Themes           []string `json:"themes"`
	AudienceReaction string   `json:"audience_reaction"`
	Model            string   `json:"-"`
}

// Input carries everything the analyzer feeds the model.
type Input struct {
	Title      string
	Uploader   string
	Transcript string
	Comments   []comments.CommentRecord
}

// Limits on prompt size. Transcripts and comment lists beyond these are
// truncated so the request stays within typical context windows.
const (
	maxTranscriptRunes = 24000
	maxPromptComments  = 30
	maxCommentRunes    = 500
)

// Analyzer runs the analysis completion.
type Analyzer struct {
	completer Completer
}

// New constructs an analyzer over the supplied completion client.
func New(completer Completer) *Analyzer {
	return &Analyzer{completer: completer}
}

// Analyze produces a report for the input. The transcript is required;
// comments are optional context.
func (a *Analyzer) Analyze(ctx context.Context, input Input) (Report, error) {
	if strings.TrimSpace(input.Transcript) == "" {
		return Report{}, services.Wrap(services.ErrAnalysis, "analysis", "analyze",
			"transcript required", nil)
	}

	content, err := a.completer.CompleteJSON(ctx, systemPrompt, buildUserPrompt(input))
	if err != nil {
		return Report{}, services.Wrap(services.ErrAnalysis, "analysis", "analyze", "", err)
	}

	var report Report
	if err := llm.DecodeLLMJSON(content, &report); err != nil {
		return Report{}, services.Wrap(services.ErrAnalysis, "analysis", "parse report", "", err)
	}
	report.Summary = strings.TrimSpace(report.Summary)
	report.Sentiment = strings.ToLower(strings.TrimSpace(report.Sentiment))
	report.AudienceReaction = strings.TrimSpace(report.AudienceReaction)
	report.Model = a.completer.Model()
	if report.Summary == "" {
		return Report{}, services.Wrap(services.ErrAnalysis, "analysis", "parse report",
			"model returned no summary", nil)
	}
	return report, nil
}

const systemPrompt = `You analyze video content. Given a transcript and top viewer comments, respond with a single JSON object:
{
  "summary": "2-4 sentence summary of the video content",
  "sentiment": "positive" | "negative" | "mixed" | "neutral",
  "themes": ["up to 5 key themes"],
  "audience_reaction": "1-2 sentence summary of how viewers reacted, based on the comments"
}
Base sentiment and audience_reaction on the comments when present; with no comments, set audience_reaction to "" and derive sentiment from the transcript tone. Respond with JSON only.`

func buildUserPrompt(input Input) string {
	var b strings.Builder
	if title := strings.TrimSpace(input.Title); title != "" {
		fmt.Fprintf(&b, "Title: %s\n", title)
	}
	if uploader := strings.TrimSpace(input.Uploader); uploader != "" {
		fmt.Fprintf(&b, "Uploader: %s\n", uploader)
	}
	b.WriteString("\nTranscript:\n")
	b.WriteString(truncateRunes(input.Transcript, maxTranscriptRunes))
	b.WriteString("\n")

	if len(input.Comments) == 0 {
		b.WriteString("\nNo comments available.\n")
		return b.String()
	}

	b.WriteString("\nTop comments (by likes):\n")
	limit := len(input.Comments)
	if limit > maxPromptComments {
		limit = maxPromptComments
	}
	for _, record := range input.Comments[:limit] {
		fmt.Fprintf(&b, "- [%d likes] %s\n", record.LikeCount, truncateRunes(record.Text, maxCommentRunes))
	}
	return b.String()
}

func truncateRunes(value string, limit int) string {
	runes := []rune(value)
	if len(runes) <= limit {
		return value
	}
	return string(runes[:limit]) + "..."
}
