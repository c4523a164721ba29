// Package config loads, normalizes, and validates soundrip configuration.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks for
// secrets such as SPEECH_API_KEY, YOUTUBE_API_KEY, and OPENROUTER_API_KEY.
// The Config type centralizes every knob the CLI needs, so download and
// transcript directories and external service credentials are discovered in
// one pass.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical enum values, and clear validation errors.
package config
