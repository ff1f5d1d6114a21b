package export

import (
	"bytes"
	"encoding/csv"
	"reflect"
	"testing"
	"time"

	"github.com/rvslm/youtubemobile/internal/models"
)

func TestWriteCSV(t *testing.T) {
	ist := time.FixedZone("IST", 5*3600+1800)
	records := []models.VideoRecord{
		{
			VideoID:       "aaaaaaaaaa1",
			Title:         "Breaking <b>news</b> update",
			Channel:       "Weather Now",
			PublishedAt:   "2024-03-15T13:00:00Z",
			Views:         9000,
			Likes:         120,
			Comments:      30,
			Category:      models.CategoryVideo,
			Duration:      253,
			LiveStatus:    models.LiveStatusNormal,
			URL:           "https://www.youtube.com/watch?v=aaaaaaaaaa1",
			Sentiment:     models.SentimentNeutral,
			SourceKeyword: "storm",
		},
	}

	var buf bytes.Buffer
	if err := WriteCSV(&buf, records, ist); err != nil {
		t.Fatalf("WriteCSV() error = %v", err)
	}

	rows, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want header + 1", len(rows))
	}

	if !reflect.DeepEqual(rows[0], header) {
		t.Errorf("header = %v, want %v", rows[0], header)
	}

	want := []string{
		"Breaking news update", "Weather Now", "15 Mar 2024, 06:30 PM",
		"9000", "120", "30", "Video", "253", "NORMAL",
		"https://www.youtube.com/watch?v=aaaaaaaaaa1", "Neutral", "storm",
	}
	if !reflect.DeepEqual(rows[1], want) {
		t.Errorf("row = %v, want %v", rows[1], want)
	}
}

func TestWriteCSV_EmptySet(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, nil, time.UTC); err != nil {
		t.Fatalf("WriteCSV() error = %v", err)
	}

	rows, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}
	if len(rows) != 1 {
		t.Errorf("got %d rows, want header only", len(rows))
	}
}

func TestWriteCSV_UnparseableTimeRendersEmpty(t *testing.T) {
	records := []models.VideoRecord{{Title: "t", PublishedAt: "yesterday"}}

	var buf bytes.Buffer
	if err := WriteCSV(&buf, records, time.UTC); err != nil {
		t.Fatalf("WriteCSV() error = %v", err)
	}

	rows, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}
	if got := rows[1][2]; got != "" {
		t.Errorf("publishedTime = %q, want empty for unparseable input", got)
	}
}
