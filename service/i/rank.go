package i

import (
	"context"
)

// RankEntry is one member of a sorted rank store.
type RankEntry struct {
	Member string
	Score  float64
}

// SortedRank is a score-ordered store of members, highest first.
type SortedRank interface {
	// SubmitBest records the score for member only if it beats the
	// member's current score.
	SubmitBest(ctx context.Context, member string, score float64) error

	// Top returns up to n entries ordered by descending score.
	Top(ctx context.Context, n int64) ([]RankEntry, error)

	// Count returns the number of ranked members.
	Count(ctx context.Context) (int64, error)
}
