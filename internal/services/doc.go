// Package services defines shared utilities consumed by the pipeline stages
// and the external tool integrations beneath them.
//
// Key responsibilities:
//   - Context helpers that stamp request correlation identifiers and stage
//     names for logging.
//   - Structured error markers plus the Wrap helper so every external-call
//     failure carries a uniform taxonomy and verbatim diagnostic text.
//
// Use these helpers when wiring new pipeline logic so error handling and
// observability stay uniform across probing, extraction, transcription,
// comment retrieval, and analysis.
package services
