// Package service orchestrates refresh cycles over the fetcher and the
// store, and provides the pure view transforms the presentation layer
// consumes.
package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/rvslm/youtubemobile/internal/models"
	"github.com/rvslm/youtubemobile/internal/store"
	"github.com/rvslm/youtubemobile/internal/timeutil"
	"github.com/rvslm/youtubemobile/internal/watchlist"
	"github.com/rvslm/youtubemobile/internal/youtube"
	"github.com/rvslm/youtubemobile/pkg/logger"
)

// MetadataFetcher is the slice of the API client the monitor needs.
type MetadataFetcher interface {
	Search(ctx context.Context, query string, opts youtube.SearchOptions) ([]models.VideoRef, error)
	FetchVideoDetails(ctx context.Context, refs []models.VideoRef) ([]models.VideoRecord, error)
	FetchChannelDetails(ctx context.Context, channelIDs []string) ([]models.ChannelRecord, error)
	ResolveHandle(ctx context.Context, handle string) (string, bool)
}

// Monitor drives refresh cycles. Every method is synchronous and runs to
// completion before returning; there is no background scheduling.
type Monitor struct {
	fetcher MetadataFetcher
	repo    store.VideoRepository

	retention    time.Duration
	refreshTopUp int
}

// NewMonitor creates a Monitor. retentionDays bounds how long rows
// survive before a full refresh purges them; refreshTopUp is how many of
// the most recently published known videos get their stats refreshed on
// top of the search results.
func NewMonitor(fetcher MetadataFetcher, repo store.VideoRepository, retentionDays, refreshTopUp int) *Monitor {
	return &Monitor{
		fetcher:      fetcher,
		repo:         repo,
		retention:    time.Duration(retentionDays) * 24 * time.Hour,
		refreshTopUp: refreshTopUp,
	}
}

// RefreshAll runs a full cycle: purge rows beyond retention, search every
// query, top the batch up with the most recently published known IDs so
// their stats refresh too, de-duplicate keeping the first keyword, fetch
// details and upsert. Failed searches and batches degrade to warnings;
// only a store failure aborts the cycle.
func (m *Monitor) RefreshAll(ctx context.Context, queries []string) (*models.RefreshSummary, error) {
	summary := &models.RefreshSummary{}

	purged, err := m.repo.PurgeOlderThan(ctx, time.Now().Add(-m.retention))
	if err != nil {
		return nil, fmt.Errorf("purge before refresh: %w", err)
	}
	summary.Purged = purged

	var refs []models.VideoRef
	for _, q := range queries {
		found, err := m.fetcher.Search(ctx, q, youtube.SearchOptions{})
		if err != nil {
			logger.Log.Error("search failed", zap.String("query", q), zap.Error(err))
			summary.Warnings = append(summary.Warnings, err.Error())
		}
		refs = append(refs, found...)
	}

	known, err := m.repo.ListIDs(ctx, nil, m.refreshTopUp, true)
	if err != nil {
		return nil, fmt.Errorf("list known videos: %w", err)
	}
	for _, id := range known {
		refs = append(refs, models.VideoRef{VideoID: id})
	}

	return m.fetchAndStore(ctx, dedupeRefs(refs), summary)
}

// QuickRefresh searches only for videos published within the last hour
// and upserts them. No purge, no known-ID top-up.
func (m *Monitor) QuickRefresh(ctx context.Context, queries []string) (*models.RefreshSummary, error) {
	summary := &models.RefreshSummary{}
	publishedAfter := timeutil.ToRFC3339(time.Now().Add(-time.Hour))

	var refs []models.VideoRef
	for _, q := range queries {
		found, err := m.fetcher.Search(ctx, q, youtube.SearchOptions{PublishedAfter: publishedAfter})
		if err != nil {
			logger.Log.Error("quick search failed", zap.String("query", q), zap.Error(err))
			summary.Warnings = append(summary.Warnings, err.Error())
		}
		refs = append(refs, found...)
	}

	return m.fetchAndStore(ctx, dedupeRefs(refs), summary)
}

func (m *Monitor) fetchAndStore(ctx context.Context, refs []models.VideoRef, summary *models.RefreshSummary) (*models.RefreshSummary, error) {
	if len(refs) == 0 {
		return summary, nil
	}

	records, err := m.fetcher.FetchVideoDetails(ctx, refs)
	if err != nil {
		logger.Log.Error("detail fetch incomplete", zap.Error(err))
		summary.Warnings = append(summary.Warnings, err.Error())
	}
	summary.Fetched = len(records)

	if len(records) > 0 {
		if err := m.repo.Upsert(ctx, records); err != nil {
			return nil, fmt.Errorf("store refresh batch: %w", err)
		}
		summary.Upserted = len(records)
	}

	return summary, nil
}

// PinnedDetails is a read-through detail fetch for pinned video IDs;
// nothing is written to the store.
func (m *Monitor) PinnedDetails(ctx context.Context, videoIDs []string) ([]models.VideoRecord, error) {
	refs := make([]models.VideoRef, 0, len(videoIDs))
	for _, id := range videoIDs {
		refs = append(refs, models.VideoRef{VideoID: id})
	}
	return m.fetcher.FetchVideoDetails(ctx, refs)
}

// WatchlistChannels resolves raw watchlist entries (channel IDs, URLs or
// @handles) to channel records. Entries that cannot be resolved are
// reported back, not dropped silently.
func (m *Monitor) WatchlistChannels(ctx context.Context, entries []string) ([]models.ChannelRecord, []string, error) {
	var (
		channelIDs []string
		unresolved []string
	)
	for _, entry := range entries {
		if id, ok := watchlist.ExtractChannelID(entry); ok {
			channelIDs = append(channelIDs, id)
			continue
		}
		if handle, ok := watchlist.ExtractHandle(entry); ok {
			if id, ok := m.fetcher.ResolveHandle(ctx, handle); ok {
				channelIDs = append(channelIDs, id)
				continue
			}
		}
		unresolved = append(unresolved, entry)
	}

	if len(channelIDs) == 0 {
		return nil, unresolved, nil
	}

	channels, err := m.fetcher.FetchChannelDetails(ctx, channelIDs)
	return channels, unresolved, err
}

// dedupeRefs keeps the first occurrence of every video ID, so the first
// keyword that surfaced a video wins.
func dedupeRefs(refs []models.VideoRef) []models.VideoRef {
	seen := make(map[string]struct{}, len(refs))
	out := make([]models.VideoRef, 0, len(refs))
	for _, ref := range refs {
		if _, ok := seen[ref.VideoID]; ok {
			continue
		}
		seen[ref.VideoID] = struct{}{}
		out = append(out, ref)
	}
	return out
}
