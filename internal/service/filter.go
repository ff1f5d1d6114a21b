package service

import (
	"sort"
	"strings"
	"time"

	"github.com/rvslm/youtubemobile/internal/models"
	"github.com/rvslm/youtubemobile/internal/timeutil"
)

// Sort orders accepted by ApplyView.
const (
	SortNewest        = "newest"
	SortMostViewed    = "views"
	SortMostCommented = "comments"
)

// ViewOptions is the filter/sort state owned by the presentation layer.
// Core components never depend on it; it is only passed into ApplyView.
//
//nolint:govet // fieldalignment: Accept minor memory overhead for better readability
type ViewOptions struct {
	Search      string
	Channel     string
	Category    string // "", Short, Video, LIVE or UPCOMING
	SortBy      string
	WindowHours int
}

// ApplyView filters and sorts a fetched record set. It is pure: the input
// slice is not modified and rows with unparseable published times are
// dropped by the time-window filter only.
func ApplyView(records []models.VideoRecord, opts ViewOptions, now time.Time) []models.VideoRecord {
	out := make([]models.VideoRecord, 0, len(records))

	cutoff := time.Time{}
	if opts.WindowHours > 0 {
		cutoff = now.Add(-time.Duration(opts.WindowHours) * time.Hour)
	}
	needle := strings.ToLower(opts.Search)

	for _, rec := range records {
		if !cutoff.IsZero() {
			published, err := timeutil.ParseStored(rec.PublishedAt)
			if err != nil || published.Before(cutoff) {
				continue
			}
		}
		if !matchCategory(rec, opts.Category) {
			continue
		}
		if opts.Channel != "" && rec.Channel != opts.Channel {
			continue
		}
		if needle != "" &&
			!strings.Contains(strings.ToLower(rec.Title), needle) &&
			!strings.Contains(strings.ToLower(rec.Channel), needle) {
			continue
		}
		out = append(out, rec)
	}

	switch opts.SortBy {
	case SortMostViewed:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Views > out[j].Views })
	case SortMostCommented:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Comments > out[j].Comments })
	case SortNewest, "":
		sort.SliceStable(out, func(i, j int) bool {
			return laterPublished(out[i].PublishedAt, out[j].PublishedAt)
		})
	}

	return out
}

// matchCategory treats Short/Video as runtime categories and
// LIVE/UPCOMING as broadcast states, matching how the operator filter
// mixes the two.
func matchCategory(rec models.VideoRecord, category string) bool {
	switch category {
	case "", "All":
		return true
	case string(models.CategoryShort), string(models.CategoryVideo):
		return rec.Category == models.Category(category)
	default:
		return rec.LiveStatus == models.LiveStatus(category)
	}
}

func laterPublished(a, b string) bool {
	ta, errA := timeutil.ParseStored(a)
	tb, errB := timeutil.ParseStored(b)
	if errA != nil {
		return false
	}
	if errB != nil {
		return true
	}
	return ta.After(tb)
}
