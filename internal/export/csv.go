// Package export serializes a filtered record set to CSV on demand.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"time"

	"github.com/rvslm/youtubemobile/internal/models"
	"github.com/rvslm/youtubemobile/internal/timeutil"
)

var header = []string{
	"title", "channel", "publishedTime", "views", "likes", "comments",
	"category", "duration", "liveStatus", "link", "sentiment", "sourceKeyword",
}

var htmlTagRe = regexp.MustCompile(`<[^>]+>`)

// WriteCSV writes records as CSV with the published time rendered in the
// operator's timezone. Titles are stripped of HTML tags.
func WriteCSV(w io.Writer, records []models.VideoRecord, loc *time.Location) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}

	for _, rec := range records {
		row := []string{
			htmlTagRe.ReplaceAllString(rec.Title, ""),
			rec.Channel,
			timeutil.FormatLocal(rec.PublishedAt, loc),
			strconv.FormatInt(rec.Views, 10),
			strconv.FormatInt(rec.Likes, 10),
			strconv.FormatInt(rec.Comments, 10),
			string(rec.Category),
			strconv.Itoa(rec.Duration),
			string(rec.LiveStatus),
			rec.URL,
			string(rec.Sentiment),
			rec.SourceKeyword,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}
