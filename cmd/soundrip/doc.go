// Command soundrip downloads the audio track of a video URL, transcribes it
// locally or through a cloud speech API, fetches top viewer comments, and
// optionally produces an LLM content analysis.
package main
