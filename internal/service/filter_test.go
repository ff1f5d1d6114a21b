package service

import (
	"testing"
	"time"

	"github.com/rvslm/youtubemobile/internal/models"
)

func filterFixture() []models.VideoRecord {
	return []models.VideoRecord{
		{
			VideoID: "aaaaaaaaaa1", Title: "Morning Headlines", Channel: "Daily Wire Desk",
			PublishedAt: "2024-03-15 06:00:00", Views: 500, Comments: 20,
			Category: models.CategoryVideo, LiveStatus: models.LiveStatusNormal,
		},
		{
			VideoID: "aaaaaaaaaa2", Title: "Breaking: storm update", Channel: "Weather Now",
			PublishedAt: "2024-03-15 12:00:00", Views: 9000, Comments: 5,
			Category: models.CategoryShort, LiveStatus: models.LiveStatusNormal,
		},
		{
			VideoID: "aaaaaaaaaa3", Title: "Live coverage", Channel: "Daily Wire Desk",
			PublishedAt: "2024-03-15 11:00:00", Views: 3000, Comments: 400,
			Category: models.CategoryVideo, LiveStatus: models.LiveStatusLive,
		},
		{
			VideoID: "aaaaaaaaaa4", Title: "Unparseable time", Channel: "Weather Now",
			PublishedAt: "yesterday", Views: 1, Comments: 1,
			Category: models.CategoryVideo, LiveStatus: models.LiveStatusNormal,
		},
	}
}

func TestApplyView(t *testing.T) {
	now := time.Date(2024, 3, 15, 13, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		opts ViewOptions
		want []string
	}{
		{
			name: "default sorts newest first, keeps unparseable",
			opts: ViewOptions{},
			want: []string{"aaaaaaaaaa2", "aaaaaaaaaa3", "aaaaaaaaaa1", "aaaaaaaaaa4"},
		},
		{
			name: "search matches title case-insensitively",
			opts: ViewOptions{Search: "STORM"},
			want: []string{"aaaaaaaaaa2"},
		},
		{
			name: "search matches channel too",
			opts: ViewOptions{Search: "daily wire"},
			want: []string{"aaaaaaaaaa3", "aaaaaaaaaa1"},
		},
		{
			name: "channel is an exact match",
			opts: ViewOptions{Channel: "Weather Now"},
			want: []string{"aaaaaaaaaa2", "aaaaaaaaaa4"},
		},
		{
			name: "category Short",
			opts: ViewOptions{Category: "Short"},
			want: []string{"aaaaaaaaaa2"},
		},
		{
			name: "category LIVE matches broadcast state",
			opts: ViewOptions{Category: "LIVE"},
			want: []string{"aaaaaaaaaa3"},
		},
		{
			name: "category All passes everything",
			opts: ViewOptions{Category: "All"},
			want: []string{"aaaaaaaaaa2", "aaaaaaaaaa3", "aaaaaaaaaa1", "aaaaaaaaaa4"},
		},
		{
			name: "time window drops old and unparseable rows",
			opts: ViewOptions{WindowHours: 3},
			want: []string{"aaaaaaaaaa2", "aaaaaaaaaa3"},
		},
		{
			name: "sort by views",
			opts: ViewOptions{SortBy: SortMostViewed},
			want: []string{"aaaaaaaaaa2", "aaaaaaaaaa3", "aaaaaaaaaa1", "aaaaaaaaaa4"},
		},
		{
			name: "sort by comments",
			opts: ViewOptions{SortBy: SortMostCommented},
			want: []string{"aaaaaaaaaa3", "aaaaaaaaaa1", "aaaaaaaaaa2", "aaaaaaaaaa4"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ApplyView(filterFixture(), tt.opts, now)

			ids := make([]string, 0, len(got))
			for _, rec := range got {
				ids = append(ids, rec.VideoID)
			}
			if len(ids) != len(tt.want) {
				t.Fatalf("ApplyView() returned %v, want %v", ids, tt.want)
			}
			for i := range ids {
				if ids[i] != tt.want[i] {
					t.Fatalf("ApplyView() returned %v, want %v", ids, tt.want)
				}
			}
		})
	}
}

func TestApplyView_DoesNotMutateInput(t *testing.T) {
	records := filterFixture()
	first := records[0].VideoID

	ApplyView(records, ViewOptions{SortBy: SortMostViewed}, time.Now())

	if records[0].VideoID != first {
		t.Error("input slice was reordered")
	}
}
