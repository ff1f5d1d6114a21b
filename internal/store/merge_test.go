package store

import (
	"testing"

	"github.com/rvslm/youtubemobile/internal/models"
)

func TestMerge(t *testing.T) {
	existing := models.VideoRecord{
		VideoID:         "vid-1",
		Title:           "old title",
		Views:           10,
		Serial:          7,
		FirstSeenSource: "push",
		SourceKeyword:   "election",
	}

	t.Run("mutable fields follow incoming", func(t *testing.T) {
		incoming := models.VideoRecord{
			VideoID:       "vid-1",
			Title:         "new title",
			Views:         42,
			Sentiment:     models.SentimentPositive,
			SourceKeyword: "budget",
		}

		merged := Merge(existing, incoming)
		if merged.Title != "new title" || merged.Views != 42 {
			t.Errorf("merged stats = (%q, %d), want incoming values", merged.Title, merged.Views)
		}
		if merged.SourceKeyword != "budget" {
			t.Errorf("merged keyword = %q, want incoming %q", merged.SourceKeyword, "budget")
		}
	})

	t.Run("serial and provenance stay with existing", func(t *testing.T) {
		incoming := models.VideoRecord{VideoID: "vid-1", Serial: 99, FirstSeenSource: models.SourcePull}

		merged := Merge(existing, incoming)
		if merged.Serial != 7 {
			t.Errorf("merged serial = %d, want 7", merged.Serial)
		}
		if merged.FirstSeenSource != "push" {
			t.Errorf("merged first-seen = %q, want %q", merged.FirstSeenSource, "push")
		}
	})

	t.Run("empty incoming keyword keeps existing", func(t *testing.T) {
		incoming := models.VideoRecord{VideoID: "vid-1"}

		merged := Merge(existing, incoming)
		if merged.SourceKeyword != "election" {
			t.Errorf("merged keyword = %q, want preserved %q", merged.SourceKeyword, "election")
		}
	})
}
