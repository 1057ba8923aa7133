package i

import (
	"context"

	"github.com/beka-birhanu/mindmaze-api/game/profile"
	"github.com/google/uuid"
)

// GameAnalyzer produces the final profile for a completed session,
// falling back to local classification when the remote peer is down.
type GameAnalyzer interface {
	AnalyzeGame(ctx context.Context, userID uuid.UUID, moves, timeTakenSeconds, hesitations, decisions int) (profile.Profile, error)
}
