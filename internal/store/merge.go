package store

import "github.com/rvslm/youtubemobile/internal/models"

// Merge applies the field-level update policy for a row that already
// exists: every mutable field (title, channel, stats, category, duration,
// live status, url, thumbnail, sentiment) is overwritten by the incoming
// record, while serial and first-seen provenance are kept from the
// existing row and the source keyword is keep-if-present — an incoming
// record without one never erases a previously recorded keyword.
func Merge(existing, incoming models.VideoRecord) models.VideoRecord {
	merged := incoming
	merged.Serial = existing.Serial
	merged.FirstSeenSource = existing.FirstSeenSource
	if merged.SourceKeyword == "" {
		merged.SourceKeyword = existing.SourceKeyword
	}
	return merged
}
