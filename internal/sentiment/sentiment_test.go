package sentiment

import (
	"testing"

	"github.com/rvslm/youtubemobile/internal/models"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		likes    int64
		comments int64
		want     models.Sentiment
	}{
		{"no engagement", 0, 0, models.SentimentNeutral},
		{"high ratio", 100, 1, models.SentimentPositive},
		{"low ratio", 1, 10, models.SentimentNegative},
		{"just below one", 5, 5, models.SentimentNegative},
		{"ratio exactly one", 10, 9, models.SentimentNeutral},
		{"ratio exactly ten", 10, 0, models.SentimentNeutral},
		{"just above ten", 11, 0, models.SentimentPositive},
		{"comments only", 0, 3, models.SentimentNegative},
		{"likes only above ten", 50, 0, models.SentimentPositive},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.likes, tt.comments); got != tt.want {
				t.Errorf("Classify(%d, %d) = %q, want %q", tt.likes, tt.comments, got, tt.want)
			}
		})
	}
}
