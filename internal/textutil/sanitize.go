package textutil

import "strings"

// FallbackStem is used when a title sanitizes to nothing, e.g. a title made
// entirely of invalid characters and dots.
const FallbackStem = "soundrip-audio"

// maxStemLength bounds worst-case path length from very long titles.
const maxStemLength = 100

// stemReplacer replaces characters that are invalid across common filesystem
// conventions with underscores.
var stemReplacer = strings.NewReplacer(
	"\\", "_",
	"/", "_",
	"*", "_",
	"?", "_",
	":", "_",
	"\"", "_",
	"<", "_",
	">", "_",
	"|", "_",
)

// SanitizeStem converts an arbitrary title into a filesystem-safe filename
// stem. Invalid characters become underscores, leading/trailing spaces and
// dots are stripped, and the result is truncated to 100 characters. The
// function is total and idempotent; titles that sanitize to an empty string
// yield FallbackStem.
func SanitizeStem(title string) string {
	stem := stemReplacer.Replace(title)
	stem = strings.Trim(stem, " .")
	if runes := []rune(stem); len(runes) > maxStemLength {
		stem = string(runes[:maxStemLength])
		// Truncation can expose a trailing space or dot again.
		stem = strings.Trim(stem, " .")
	}
	if stem == "" {
		return FallbackStem
	}
	return stem
}
