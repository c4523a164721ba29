package media

import (
	"fmt"
	"regexp"
)

// videoIDPatterns cover the common URL conventions that embed an 11-character
// video identifier.
var videoIDPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?:m\.)?youtube\.com/watch\?(?:[^#]*&)?v=([a-zA-Z0-9_-]{11})`),
	regexp.MustCompile(`youtu\.be/([a-zA-Z0-9_-]{11})`),
	regexp.MustCompile(`youtube\.com/(?:embed|v)/([a-zA-Z0-9_-]{11})`),
	regexp.MustCompile(`youtube\.com/shorts/([a-zA-Z0-9_-]{11})`),
	regexp.MustCompile(`youtube\.com/live/([a-zA-Z0-9_-]{11})`),
}

var bareVideoID = regexp.MustCompile(`^[a-zA-Z0-9_-]{11}$`)

// ExtractVideoID pulls the video identifier out of a source URL. A value that
// is already a bare 11-character ID passes through. URLs matching none of the
// known conventions are a hard failure, not a crash.
func ExtractVideoID(sourceURL string) (string, error) {
	for _, pattern := range videoIDPatterns {
		if matches := pattern.FindStringSubmatch(sourceURL); len(matches) > 1 {
			return matches[1], nil
		}
	}
	if bareVideoID.MatchString(sourceURL) {
		return sourceURL, nil
	}
	return "", fmt.Errorf("could not extract video ID from %q", sourceURL)
}
