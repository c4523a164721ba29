// Package logging builds slog loggers used across soundrip.
//
// Two output formats are supported: a human-oriented console format with
// optional ANSI color (enabled only on a terminal), and plain JSON for
// machine consumption. Loggers can tee into a log file under the configured
// log directory. Context helpers stamp request correlation IDs and pipeline
// stage names onto records.
package logging
