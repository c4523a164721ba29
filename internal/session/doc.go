// Package session persists extraction history and related transcript and
// comment state in a SQLite database under the log directory. A lock file
// keeps concurrent soundrip processes from writing the same database. A new
// extraction for a video clears that video's transcript and comment rows so
// stale downstream state never outlives the audio it described.
package session
