// Package llm provides a thin client for OpenRouter chat completions used
// by the content analysis stage. Requests are JSON-only and retried on
// transient HTTP failures with exponential backoff.
package llm
