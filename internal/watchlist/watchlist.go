// Package watchlist persists the operator's channel watchlist as a flat
// newline-delimited file and extracts IDs out of pasted URLs and handles.
package watchlist

import (
	"fmt"
	"os"
	"regexp"
	"strings"
)

var (
	videoURLRe  = regexp.MustCompile(`(?:v=|/)([a-zA-Z0-9_-]{11})`)
	bareVideoRe = regexp.MustCompile(`^[a-zA-Z0-9_-]{11}$`)
	channelIDRe = regexp.MustCompile(`(UC[a-zA-Z0-9_-]{22})`)
	handleRe    = regexp.MustCompile(`@([a-zA-Z0-9_.-]+)`)
)

// Load reads the watchlist file. A missing file is an empty watchlist,
// not an error. Blank lines are skipped.
func Load(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read watchlist: %w", err)
	}

	var entries []string
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			entries = append(entries, line)
		}
	}
	return entries, nil
}

// Save rewrites the watchlist file with one entry per line. Blank entries
// are dropped.
func Save(path string, entries []string) error {
	var b strings.Builder
	for _, entry := range entries {
		entry = strings.TrimSpace(entry)
		if entry != "" {
			b.WriteString(entry)
			b.WriteString("\n")
		}
	}

	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("write watchlist: %w", err)
	}
	return nil
}

// ExtractVideoID pulls an 11-character video ID out of a pasted URL or
// bare ID. Structured URL forms ("v=" parameter or path segment) win over
// the bare-ID length fallback.
func ExtractVideoID(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", false
	}
	if m := videoURLRe.FindStringSubmatch(s); m != nil {
		return m[1], true
	}
	if bareVideoRe.MatchString(s) {
		return s, true
	}
	return "", false
}

// ExtractChannelID pulls a UC-prefixed channel ID out of a pasted URL or
// bare ID.
func ExtractChannelID(s string) (string, bool) {
	if m := channelIDRe.FindStringSubmatch(s); m != nil {
		return m[1], true
	}
	return "", false
}

// ExtractHandle pulls an @handle out of a pasted URL or bare handle. It
// is only consulted when ExtractChannelID found nothing.
func ExtractHandle(s string) (string, bool) {
	if m := handleRe.FindStringSubmatch(s); m != nil {
		return m[1], true
	}
	return "", false
}
