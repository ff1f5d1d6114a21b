// Package sentiment buckets videos by their engagement ratio. This is a
// likes-to-comments heuristic, not natural-language sentiment analysis.
package sentiment

import "github.com/rvslm/youtubemobile/internal/models"

// Classify maps like/comment counts to a sentiment bucket:
// no engagement at all is Neutral; otherwise the ratio likes/(comments+1)
// is Positive above 10, Negative below 1, and Neutral in between. Both
// boundaries are exclusive.
func Classify(likes, comments int64) models.Sentiment {
	if likes == 0 && comments == 0 {
		return models.SentimentNeutral
	}
	ratio := float64(likes) / float64(comments+1)
	if ratio > 10 {
		return models.SentimentPositive
	}
	if ratio < 1 {
		return models.SentimentNegative
	}
	return models.SentimentNeutral
}
