package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/rvslm/youtubemobile/internal/metrics"
	"github.com/rvslm/youtubemobile/internal/models"
	"github.com/rvslm/youtubemobile/internal/timeutil"
)

// VideoRepository defines operations for managing video rows.
type VideoRepository interface {
	// Upsert inserts new rows and updates existing ones for the batch,
	// preserving serial and first-seen provenance on updates.
	Upsert(ctx context.Context, records []models.VideoRecord) error

	// FetchAll retrieves every row in insertion (serial) order.
	FetchAll(ctx context.Context) ([]models.VideoRecord, error)

	// ListIDs retrieves video IDs, optionally restricted to rows published
	// after a cutoff, ordered by published time descending, and limited.
	ListIDs(ctx context.Context, publishedAfter *time.Time, limit int, orderByPublished bool) ([]string, error)

	// PurgeOlderThan deletes rows published before the cutoff and reports
	// how many were removed.
	PurgeOlderThan(ctx context.Context, cutoff time.Time) (int64, error)

	// ClearAll deletes every row.
	ClearAll(ctx context.Context) error
}

type videoRepository struct {
	db *sql.DB
}

// NewVideoRepository creates a new VideoRepository over an open store.
func NewVideoRepository(db *sql.DB) VideoRepository {
	return &videoRepository{db: db}
}

const videoColumns = `video_id, title, channel, channel_id, published_at, views, likes, comments,
	category, duration, live_status, url, thumbnail, first_seen_source, last_updated,
	sentiment, source_keyword, serial`

func (r *videoRepository) Upsert(ctx context.Context, records []models.VideoRecord) error {
	if len(records) == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return wrapError(err, "begin upsert")
	}
	defer tx.Rollback()

	existing, err := existingByID(ctx, tx, records)
	if err != nil {
		return err
	}

	var maxSerial int64
	if err := tx.QueryRowContext(ctx, "SELECT COALESCE(MAX(serial), 0) FROM videos").Scan(&maxSerial); err != nil {
		return wrapError(err, "read max serial")
	}

	now := timeutil.ToUTCCompact(time.Now())
	var inserted, updated int64

	for _, rec := range records {
		rec.PublishedAt = timeutil.NormalizeForStorage(rec.PublishedAt)
		rec.LastUpdated = now

		if prev, ok := existing[rec.VideoID]; ok {
			merged := Merge(prev, rec)
			_, err := tx.ExecContext(ctx, `UPDATE videos SET
					title = ?, channel = ?, channel_id = ?, published_at = ?,
					views = ?, likes = ?, comments = ?, category = ?, duration = ?,
					live_status = ?, url = ?, thumbnail = ?, last_updated = ?,
					sentiment = ?, source_keyword = ?
				WHERE video_id = ?`,
				merged.Title, merged.Channel, merged.ChannelID, merged.PublishedAt,
				merged.Views, merged.Likes, merged.Comments, string(merged.Category), merged.Duration,
				string(merged.LiveStatus), merged.URL, merged.Thumbnail, merged.LastUpdated,
				string(merged.Sentiment), nullIfEmpty(merged.SourceKeyword),
				merged.VideoID,
			)
			if err != nil {
				return wrapError(err, "update video")
			}
			updated++
			continue
		}

		maxSerial++
		firstSeen := rec.SourceKeyword
		if firstSeen == "" {
			firstSeen = models.SourcePull
		}
		_, err := tx.ExecContext(ctx, `INSERT INTO videos (`+videoColumns+`)
				VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			rec.VideoID, rec.Title, rec.Channel, rec.ChannelID, rec.PublishedAt,
			rec.Views, rec.Likes, rec.Comments, string(rec.Category), rec.Duration,
			string(rec.LiveStatus), rec.URL, rec.Thumbnail, firstSeen, rec.LastUpdated,
			string(rec.Sentiment), nullIfEmpty(rec.SourceKeyword), maxSerial,
		)
		if err != nil {
			return wrapError(err, "insert video")
		}
		inserted++
	}

	if err := tx.Commit(); err != nil {
		return wrapError(err, "commit upsert")
	}

	metrics.RowsInserted.Add(float64(inserted))
	metrics.RowsUpdated.Add(float64(updated))
	return nil
}

// existingByID answers, in one query, which of the batch's IDs are
// already present, together with the fields the merge policy preserves.
func existingByID(ctx context.Context, tx *sql.Tx, records []models.VideoRecord) (map[string]models.VideoRecord, error) {
	ids := make([]any, 0, len(records))
	marks := make([]string, 0, len(records))
	for _, rec := range records {
		ids = append(ids, rec.VideoID)
		marks = append(marks, "?")
	}

	query := fmt.Sprintf(
		"SELECT video_id, serial, first_seen_source, source_keyword FROM videos WHERE video_id IN (%s)",
		strings.Join(marks, ","),
	)
	rows, err := tx.QueryContext(ctx, query, ids...)
	if err != nil {
		return nil, wrapError(err, "query existing videos")
	}
	defer rows.Close()

	existing := make(map[string]models.VideoRecord)
	for rows.Next() {
		var (
			rec       models.VideoRecord
			firstSeen sql.NullString
			keyword   sql.NullString
		)
		if err := rows.Scan(&rec.VideoID, &rec.Serial, &firstSeen, &keyword); err != nil {
			return nil, fmt.Errorf("scan existing video: %w", err)
		}
		rec.FirstSeenSource = firstSeen.String
		rec.SourceKeyword = keyword.String
		existing[rec.VideoID] = rec
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate existing videos: %w", err)
	}

	return existing, nil
}

func (r *videoRepository) FetchAll(ctx context.Context) ([]models.VideoRecord, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT "+videoColumns+" FROM videos ORDER BY serial")
	if err != nil {
		return nil, wrapError(err, "fetch all videos")
	}
	defer rows.Close()

	return scanVideos(rows)
}

func (r *videoRepository) ListIDs(ctx context.Context, publishedAfter *time.Time, limit int, orderByPublished bool) ([]string, error) {
	query := "SELECT video_id FROM videos"
	var args []any

	if publishedAfter != nil {
		query += " WHERE datetime(published_at) >= datetime(?)"
		args = append(args, timeutil.ToUTCCompact(*publishedAfter))
	}
	if orderByPublished {
		query += " ORDER BY datetime(published_at) DESC"
	}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, wrapError(err, "list video ids")
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan video id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate video ids: %w", err)
	}

	return ids, nil
}

func (r *videoRepository) PurgeOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		"DELETE FROM videos WHERE datetime(published_at) < datetime(?)",
		timeutil.ToUTCCompact(cutoff),
	)
	if err != nil {
		return 0, wrapError(err, "purge videos")
	}

	removed, err := res.RowsAffected()
	if err != nil {
		return 0, wrapError(err, "purge videos rows affected")
	}

	metrics.RowsPurged.Add(float64(removed))
	return removed, nil
}

func (r *videoRepository) ClearAll(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, "DELETE FROM videos")
	return wrapError(err, "clear videos")
}

// scanVideos reads rows laid out as videoColumns.
func scanVideos(rows *sql.Rows) ([]models.VideoRecord, error) {
	var videos []models.VideoRecord

	for rows.Next() {
		var (
			rec       models.VideoRecord
			category  sql.NullString
			status    sql.NullString
			firstSeen sql.NullString
			sent      sql.NullString
			keyword   sql.NullString
		)
		err := rows.Scan(
			&rec.VideoID, &rec.Title, &rec.Channel, &rec.ChannelID, &rec.PublishedAt,
			&rec.Views, &rec.Likes, &rec.Comments, &category, &rec.Duration,
			&status, &rec.URL, &rec.Thumbnail, &firstSeen, &rec.LastUpdated,
			&sent, &keyword, &rec.Serial,
		)
		if err != nil {
			return nil, fmt.Errorf("scan video: %w", err)
		}
		rec.Category = models.Category(category.String)
		rec.LiveStatus = models.LiveStatus(status.String)
		rec.FirstSeenSource = firstSeen.String
		rec.Sentiment = models.Sentiment(sent.String)
		rec.SourceKeyword = keyword.String
		videos = append(videos, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate videos: %w", err)
	}

	return videos, nil
}

func nullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}
