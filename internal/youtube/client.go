// Package youtube talks to the platform's public data API: keyword
// search, batched video and channel detail lookups, and handle
// resolution, all through the credential rotator.
package youtube

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/rvslm/youtubemobile/internal/models"
	"github.com/rvslm/youtubemobile/internal/sentiment"
	"github.com/rvslm/youtubemobile/internal/timeutil"
	"github.com/rvslm/youtubemobile/pkg/logger"
)

const (
	defaultBaseURL = "https://www.googleapis.com/youtube/v3"

	// API batch ceiling for the id parameter of list endpoints.
	maxBatchSize = 50

	// searchPageSize is both the requested page size and the accumulation
	// cap of the search loop.
	searchPageSize = 50

	handleCacheTTL = time.Hour

	defaultShortsMax = 60
)

// Client is the metadata fetcher. It is synchronous: every method runs a
// blocking round trip per page or batch.
type Client struct {
	rotator   *Rotator
	baseURL   string
	shortsMax int

	mu          sync.Mutex
	handleCache map[string]handleEntry
}

type handleEntry struct {
	channelID string
	expires   time.Time
}

// NewClient creates a metadata fetcher over the given rotator. shortsMax
// is the runtime ceiling, in seconds, below which a video is a Short.
func NewClient(rotator *Rotator, shortsMax int) *Client {
	if shortsMax <= 0 {
		shortsMax = defaultShortsMax
	}
	return &Client{
		rotator:     rotator,
		baseURL:     defaultBaseURL,
		shortsMax:   shortsMax,
		handleCache: make(map[string]handleEntry),
	}
}

// SearchOptions narrows a keyword search.
type SearchOptions struct {
	// PublishedAfter, when set, is passed through as an RFC3339 filter.
	PublishedAfter string
}

type searchResponse struct {
	Items []struct {
		ID struct {
			Kind      string `json:"kind"`
			VideoID   string `json:"videoId"`
			ChannelID string `json:"channelId"`
		} `json:"id"`
	} `json:"items"`
	NextPageToken string `json:"nextPageToken"`
}

// Search issues a paged video search for query and returns the found IDs
// tagged with the originating keyword. The loop follows pagination tokens
// but stops once the accumulated count reaches the page size, so it
// returns at most one page's worth. On a failing page the refs gathered
// so far are returned together with a *FetchError.
func (c *Client) Search(ctx context.Context, query string, opts SearchOptions) ([]models.VideoRef, error) {
	params := url.Values{}
	params.Set("part", "snippet")
	params.Set("q", query)
	params.Set("type", "video")
	params.Set("maxResults", strconv.Itoa(searchPageSize))
	params.Set("order", "date")
	if opts.PublishedAfter != "" {
		params.Set("publishedAfter", opts.PublishedAfter)
	}

	var refs []models.VideoRef
	pageToken := ""
	for {
		if pageToken != "" {
			params.Set("pageToken", pageToken)
		}

		resp := c.rotator.Do(ctx, c.baseURL+"/search", params)
		if !resp.OK() {
			return refs, &FetchError{
				Op:         fmt.Sprintf("search %q", query),
				StatusCode: resp.StatusCode,
				Message:    resp.Status,
			}
		}

		var payload searchResponse
		if err := json.Unmarshal(resp.Body, &payload); err != nil {
			return refs, &FetchError{
				Op:         fmt.Sprintf("search %q", query),
				StatusCode: resp.StatusCode,
				Message:    "malformed response: " + err.Error(),
			}
		}

		for _, item := range payload.Items {
			if item.ID.VideoID == "" {
				continue
			}
			refs = append(refs, models.VideoRef{VideoID: item.ID.VideoID, SourceKeyword: query})
		}

		pageToken = payload.NextPageToken
		if pageToken == "" || len(refs) >= searchPageSize {
			break
		}
	}

	return refs, nil
}

type videoListResponse struct {
	Items []videoItem `json:"items"`
}

type videoItem struct {
	ID      string `json:"id"`
	Snippet struct {
		Title        string `json:"title"`
		ChannelTitle string `json:"channelTitle"`
		ChannelID    string `json:"channelId"`
		PublishedAt  string `json:"publishedAt"`
		Thumbnails   struct {
			High struct {
				URL string `json:"url"`
			} `json:"high"`
		} `json:"thumbnails"`
	} `json:"snippet"`
	Statistics struct {
		ViewCount    string `json:"viewCount"`
		LikeCount    string `json:"likeCount"`
		CommentCount string `json:"commentCount"`
	} `json:"statistics"`
	LiveStreamingDetails struct {
		ActualStartTime    string `json:"actualStartTime"`
		ScheduledStartTime string `json:"scheduledStartTime"`
	} `json:"liveStreamingDetails"`
	ContentDetails struct {
		Duration string `json:"duration"`
	} `json:"contentDetails"`
}

// FetchVideoDetails requests snippet, statistics, live-streaming and
// content details for the referenced videos in batches of at most 50 and
// maps each item to a VideoRecord. A failed batch is skipped; its error
// is joined into the returned error while remaining batches proceed.
func (c *Client) FetchVideoDetails(ctx context.Context, refs []models.VideoRef) ([]models.VideoRecord, error) {
	ids := make([]string, 0, len(refs))
	keywords := make(map[string]string, len(refs))
	for _, ref := range refs {
		ids = append(ids, ref.VideoID)
		keywords[ref.VideoID] = ref.SourceKeyword
	}

	var (
		records []models.VideoRecord
		errs    []error
	)
	for _, batch := range batchIDs(ids, maxBatchSize) {
		params := url.Values{}
		params.Set("part", "snippet,statistics,liveStreamingDetails,contentDetails")
		params.Set("id", joinIDs(batch))

		resp := c.rotator.Do(ctx, c.baseURL+"/videos", params)
		if !resp.OK() {
			errs = append(errs, &FetchError{
				Op:         "video details",
				StatusCode: resp.StatusCode,
				Message:    resp.Status,
			})
			continue
		}

		var payload videoListResponse
		if err := json.Unmarshal(resp.Body, &payload); err != nil {
			errs = append(errs, &FetchError{
				Op:         "video details",
				StatusCode: resp.StatusCode,
				Message:    "malformed response: " + err.Error(),
			})
			continue
		}

		for _, item := range payload.Items {
			records = append(records, c.mapVideo(item, keywords[item.ID]))
		}
	}

	return records, errors.Join(errs...)
}

func (c *Client) mapVideo(item videoItem, keyword string) models.VideoRecord {
	duration := timeutil.ParseDuration(item.ContentDetails.Duration)

	category := models.CategoryVideo
	if duration <= c.shortsMax {
		category = models.CategoryShort
	}

	liveStatus := models.LiveStatusNormal
	switch {
	case item.LiveStreamingDetails.ActualStartTime != "":
		liveStatus = models.LiveStatusLive
	case item.LiveStreamingDetails.ScheduledStartTime != "":
		liveStatus = models.LiveStatusUpcoming
	}

	views := parseCount(item.Statistics.ViewCount)
	likes := parseCount(item.Statistics.LikeCount)
	comments := parseCount(item.Statistics.CommentCount)

	return models.VideoRecord{
		VideoID:       item.ID,
		Title:         item.Snippet.Title,
		Channel:       item.Snippet.ChannelTitle,
		ChannelID:     item.Snippet.ChannelID,
		PublishedAt:   item.Snippet.PublishedAt,
		Views:         views,
		Likes:         likes,
		Comments:      comments,
		Category:      category,
		Duration:      duration,
		LiveStatus:    liveStatus,
		URL:           "https://www.youtube.com/watch?v=" + item.ID,
		Thumbnail:     item.Snippet.Thumbnails.High.URL,
		SourceKeyword: keyword,
		Sentiment:     sentiment.Classify(likes, comments),
	}
}

type channelListResponse struct {
	Items []struct {
		ID      string `json:"id"`
		Snippet struct {
			Title       string `json:"title"`
			Description string `json:"description"`
			Thumbnails  struct {
				Default struct {
					URL string `json:"url"`
				} `json:"default"`
			} `json:"thumbnails"`
		} `json:"snippet"`
		Statistics struct {
			SubscriberCount string `json:"subscriberCount"`
			VideoCount      string `json:"videoCount"`
		} `json:"statistics"`
	} `json:"items"`
}

// FetchChannelDetails de-duplicates the given channel IDs and fetches
// snippet and statistics in batches of at most 50. Failed batches are
// skipped, not fatal. Results are read-through only and never persisted.
func (c *Client) FetchChannelDetails(ctx context.Context, channelIDs []string) ([]models.ChannelRecord, error) {
	var (
		records []models.ChannelRecord
		errs    []error
	)
	for _, batch := range batchIDs(dedupe(channelIDs), maxBatchSize) {
		params := url.Values{}
		params.Set("part", "snippet,statistics")
		params.Set("id", joinIDs(batch))

		resp := c.rotator.Do(ctx, c.baseURL+"/channels", params)
		if !resp.OK() {
			errs = append(errs, &FetchError{
				Op:         "channel details",
				StatusCode: resp.StatusCode,
				Message:    resp.Status,
			})
			continue
		}

		var payload channelListResponse
		if err := json.Unmarshal(resp.Body, &payload); err != nil {
			errs = append(errs, &FetchError{
				Op:         "channel details",
				StatusCode: resp.StatusCode,
				Message:    "malformed response: " + err.Error(),
			})
			continue
		}

		for _, item := range payload.Items {
			records = append(records, models.ChannelRecord{
				ChannelID:       item.ID,
				Name:            item.Snippet.Title,
				Description:     item.Snippet.Description,
				Thumbnail:       item.Snippet.Thumbnails.Default.URL,
				URL:             "https://www.youtube.com/channel/" + item.ID,
				SubscriberCount: parseCount(item.Statistics.SubscriberCount),
				VideoCount:      parseCount(item.Statistics.VideoCount),
			})
		}
	}

	return records, errors.Join(errs...)
}

// ResolveHandle looks up the channel ID behind an @handle via a
// single-result channel search. Handle-to-ID mappings are effectively
// static, so positive results are cached for an hour.
func (c *Client) ResolveHandle(ctx context.Context, handle string) (string, bool) {
	c.mu.Lock()
	if entry, ok := c.handleCache[handle]; ok && time.Now().Before(entry.expires) {
		c.mu.Unlock()
		return entry.channelID, true
	}
	c.mu.Unlock()

	params := url.Values{}
	params.Set("part", "id")
	params.Set("q", handle)
	params.Set("type", "channel")
	params.Set("maxResults", "1")

	resp := c.rotator.Do(ctx, c.baseURL+"/search", params)
	if !resp.OK() {
		logger.Log.Warn("handle resolution failed",
			zap.String("handle", handle),
			zap.Int("status", resp.StatusCode),
		)
		return "", false
	}

	var payload searchResponse
	if err := json.Unmarshal(resp.Body, &payload); err != nil {
		return "", false
	}
	if len(payload.Items) == 0 || payload.Items[0].ID.Kind != "youtube#channel" {
		return "", false
	}
	channelID := payload.Items[0].ID.ChannelID

	c.mu.Lock()
	c.handleCache[handle] = handleEntry{channelID: channelID, expires: time.Now().Add(handleCacheTTL)}
	c.mu.Unlock()

	return channelID, true
}

// batchIDs splits ids into chunks of at most size.
func batchIDs(ids []string, size int) [][]string {
	if size <= 0 {
		size = maxBatchSize
	}
	var batches [][]string
	for i := 0; i < len(ids); i += size {
		end := i + size
		if end > len(ids) {
			end = len(ids)
		}
		batches = append(batches, ids[i:end])
	}
	return batches
}

func joinIDs(ids []string) string {
	return strings.Join(ids, ",")
}

func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func parseCount(s string) int64 {
	if s == "" {
		return 0
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0
	}
	return n
}
