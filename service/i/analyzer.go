package i

import (
	"context"

	"github.com/beka-birhanu/mindmaze-api/game/profile"
)

// Analyzer is an optional remote peer that turns final session metrics
// into a richer profile. Implementations return an error on any failure
// so callers can fall back to the local classifier.
type Analyzer interface {
	Analyze(ctx context.Context, moves, timeTakenSeconds, hesitations, decisions int) (*profile.Profile, error)
}
