// Package transcribe turns extracted audio files into transcripts.
//
// Two backends are supported. The local backend splits long audio into
// fixed-length chunks and feeds them to an offline recognizer one at a time,
// tolerating per-chunk failures with a placeholder and a single retry for
// transient errors. The cloud backend uploads the whole file and receives
// plain text with no timing data; its segments are synthesized by evenly
// dividing words and are labeled approximate.
//
// Generated transcripts are cached on disk as a plain-text file plus a JSON
// sidecar keyed by audio filename stem and recognizer model; when both files
// exist the transcript is loaded instead of regenerated.
package transcribe
