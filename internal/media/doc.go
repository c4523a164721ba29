// Package media defines the domain types shared across the extraction
// pipeline: probed video metadata, extraction requests, and the uniform
// result record consumed by the CLI and downstream collaborators.
package media
