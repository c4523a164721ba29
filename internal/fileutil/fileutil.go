// Package fileutil provides small filesystem helpers for locating and
// verifying extractor output.
package fileutil

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// IsNonEmptyFile reports whether path references an existing regular file
// with at least one byte.
func IsNonEmptyFile(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.Mode().IsRegular() && info.Size() > 0
}

// ResolveByStem scans dir for files whose name starts with "stem." and
// returns the first match in lexical order. The external extractor sometimes
// finalizes a different extension than requested, so the expected path may
// not exist while "stem.opus" does. Returns false when nothing matches.
func ResolveByStem(dir, stem string) (string, bool) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", false
	}
	prefix := stem + "."
	matches := make([]string, 0, 1)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if strings.HasPrefix(entry.Name(), prefix) {
			matches = append(matches, entry.Name())
		}
	}
	if len(matches) == 0 {
		return "", false
	}
	sort.Strings(matches)
	return filepath.Join(dir, matches[0]), true
}
