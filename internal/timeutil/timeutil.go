// Package timeutil holds the duration and timestamp codec shared by the
// fetcher, the store and the export path.
package timeutil

import (
	"regexp"
	"strconv"
	"time"
)

const (
	// CompactLayout is the normalized UTC textual form used for
	// persistence and range comparisons.
	CompactLayout = "2006-01-02 15:04:05"

	rfc3339ZLayout = "2006-01-02T15:04:05Z"
	localLayout    = "02 Jan 2006, 03:04 PM"
)

// Restricted ISO-8601 grammar: hours/minutes/seconds only.
var durationRe = regexp.MustCompile(`^PT(?:(\d+)H)?(?:(\d+)M)?(?:(\d+)S)?$`)

// ParseDuration converts an ISO-8601 duration code like "PT4M13S" into
// seconds. Any input outside the PT[nH][nM][nS] grammar yields 0.
func ParseDuration(code string) int {
	m := durationRe.FindStringSubmatch(code)
	if m == nil {
		return 0
	}
	h := atoiOrZero(m[1])
	min := atoiOrZero(m[2])
	s := atoiOrZero(m[3])
	return h*3600 + min*60 + s
}

func atoiOrZero(s string) int {
	if s == "" {
		return 0
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}

// ToUTCCompact renders a timestamp in the normalized storage form.
func ToUTCCompact(t time.Time) string {
	return t.UTC().Format(CompactLayout)
}

// ToRFC3339 renders a timestamp as an outbound API filter parameter.
func ToRFC3339(t time.Time) string {
	return t.UTC().Format(rfc3339ZLayout)
}

// NormalizeForStorage accepts a time.Time, an already-normalized string,
// or nil. Timestamps are rendered to the compact UTC form, non-empty
// strings pass through unchanged, and anything absent defaults to now.
// Feeding its own output back in yields the same output.
func NormalizeForStorage(v any) string {
	switch val := v.(type) {
	case time.Time:
		return ToUTCCompact(val)
	case string:
		if val != "" {
			return val
		}
	}
	return ToUTCCompact(time.Now())
}

// ParseStored parses a stored timestamp, accepting both the compact form
// and the RFC3339 strings the platform API returns.
func ParseStored(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.ParseInLocation(CompactLayout, s, time.UTC)
}

// FormatLocal renders a stored timestamp in the operator's timezone for
// display and CSV export. Unparseable input yields an empty string.
func FormatLocal(stored string, loc *time.Location) string {
	t, err := ParseStored(stored)
	if err != nil {
		return ""
	}
	return t.In(loc).Format(localLayout)
}
