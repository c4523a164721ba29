// Package textutil provides text processing helpers for filename stems.
//
// Video titles arrive from an external extractor and may contain characters
// that are invalid on common filesystems, leading/trailing dots, or excessive
// length. SanitizeStem maps any title to a safe, bounded filename stem and is
// idempotent, so already-sanitized values pass through unchanged.
package textutil
