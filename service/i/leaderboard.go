package i

import (
	"context"

	"github.com/google/uuid"
)

// LeaderboardEntry is one row of the ranked best-score listing.
type LeaderboardEntry struct {
	Rank      int    `json:"rank"`
	PlayerID  string `json:"playerId"`
	Username  string `json:"username"`
	Archetype string `json:"archetype"`
	Score     int    `json:"score"`
}

// Leaderboard ranks players by their best overall score.
type Leaderboard interface {
	// Submit records a player's score if it beats their current best.
	Submit(ctx context.Context, playerID uuid.UUID, score int) error

	// Top returns up to n entries, best first.
	Top(ctx context.Context, n int64) ([]LeaderboardEntry, error)

	// Count returns the number of ranked players.
	Count(ctx context.Context) int64
}
