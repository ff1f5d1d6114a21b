// Package models contains the data models and DTOs for the keyword monitor service.
package models

import "time"

// Category classifies a video by runtime.
type Category string

// Category constants. A video whose runtime is at most the configured
// shorts ceiling is a Short, everything else a regular Video.
const (
	CategoryShort Category = "Short"
	CategoryVideo Category = "Video"
)

// LiveStatus represents the broadcast state of a video.
type LiveStatus string

// LiveStatus constants define the possible broadcast states.
const (
	LiveStatusLive     LiveStatus = "LIVE"
	LiveStatusUpcoming LiveStatus = "UPCOMING"
	LiveStatusNormal   LiveStatus = "NORMAL"
)

// Sentiment is the engagement-ratio bucket assigned to a video. It is a
// likes/comments heuristic, not language analysis.
type Sentiment string

// Sentiment constants define the heuristic buckets.
const (
	SentimentPositive Sentiment = "Positive"
	SentimentNegative Sentiment = "Negative"
	SentimentNeutral  Sentiment = "Neutral"
)

// SourcePull is recorded as first_seen_source for rows inserted by a
// refresh cycle that carried no originating keyword.
const SourcePull = "pull"

// VideoRecord is one row in the videos table, keyed by the platform's
// video ID. PublishedAt and LastUpdated hold the normalized UTC textual
// form used for persistence and range comparisons.
//
//nolint:govet // fieldalignment: Accept minor memory overhead for better readability
type VideoRecord struct {
	VideoID         string     `json:"videoId"`
	Title           string     `json:"title"`
	Channel         string     `json:"channel"`
	ChannelID       string     `json:"channelId"`
	PublishedAt     string     `json:"publishedAt"`
	Views           int64      `json:"views"`
	Likes           int64      `json:"likes"`
	Comments        int64      `json:"comments"`
	Category        Category   `json:"category"`
	Duration        int        `json:"duration"`
	LiveStatus      LiveStatus `json:"liveStatus"`
	URL             string     `json:"url"`
	Thumbnail       string     `json:"thumbnail"`
	FirstSeenSource string     `json:"firstSeenSource"`
	LastUpdated     string     `json:"lastUpdated"`
	Sentiment       Sentiment  `json:"sentiment"`
	SourceKeyword   string     `json:"sourceKeyword,omitempty"`
	Serial          int64      `json:"serial"`
}

// ChannelRecord holds channel metadata fetched on demand. It is
// read-through only and never persisted.
type ChannelRecord struct {
	ChannelID       string `json:"channelId"`
	Name            string `json:"channelName"`
	Description     string `json:"description"`
	Thumbnail       string `json:"thumbnail"`
	URL             string `json:"url"`
	SubscriberCount int64  `json:"subscriberCount"`
	VideoCount      int64  `json:"videoCount"`
}

// VideoRef ties a video ID to the query that surfaced it. An empty
// SourceKeyword means the ID came from a stats refresh, not a search.
type VideoRef struct {
	VideoID       string `json:"videoId"`
	SourceKeyword string `json:"sourceKeyword,omitempty"`
}

// RefreshSummary reports the outcome of a refresh cycle.
type RefreshSummary struct {
	Purged   int64    `json:"purged"`
	Fetched  int      `json:"fetched"`
	Upserted int      `json:"upserted"`
	Warnings []string `json:"warnings,omitempty"`
}

// ErrorResponse is the JSON error envelope returned by the HTTP API.
type ErrorResponse struct {
	Status    int       `json:"status"`
	Error     string    `json:"error"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
	Path      string    `json:"path"`
}
