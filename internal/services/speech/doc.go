// Package speech wraps a cloud speech-to-text API. The whole audio file is
// uploaded in one request and the service returns plain text with no timing
// data; any segment display for this backend is synthesized downstream and
// must be labeled as approximate.
package speech
