package service

import (
	"context"
	"log"

	"github.com/beka-birhanu/mindmaze-api/config"
	"github.com/beka-birhanu/mindmaze-api/game/profile"
	"github.com/beka-birhanu/mindmaze-api/service/i"
	"github.com/google/uuid"
)

// Analysis turns final session metrics into a profile. A remote analyzer
// is consulted first when configured; on any failure the local
// classifier produces the same profile shape, so the caller always gets
// a complete result. Implements i.GameAnalyzer.
type Analysis struct {
	analyzer    i.Analyzer     // Optional remote peer.
	leaderboard i.Leaderboard  // Optional, receives the overall score.
	playerRepo  i.PlayerRepo   // Optional, keeps the player's best result.
	logger      *log.Logger
}

// AnalysisConfig holds the collaborators for a new Analysis service.
// Everything but the logger is optional.
type AnalysisConfig struct {
	Analyzer    i.Analyzer
	Leaderboard i.Leaderboard
	PlayerRepo  i.PlayerRepo
	Logger      *log.Logger
}

// NewAnalysisService creates an Analysis service.
func NewAnalysisService(c *AnalysisConfig) (*Analysis, error) {
	if c == nil {
		c = &AnalysisConfig{}
	}
	if c.Logger == nil {
		c.Logger = log.Default()
	}
	return &Analysis{
		analyzer:    c.Analyzer,
		leaderboard: c.Leaderboard,
		playerRepo:  c.PlayerRepo,
		logger:      c.Logger,
	}, nil
}

// AnalyzeGame produces the profile for a completed session and records
// the outcome against the player, best-effort.
func (a *Analysis) AnalyzeGame(ctx context.Context, userID uuid.UUID, moves, timeTakenSeconds, hesitations, decisions int) (profile.Profile, error) {
	p := a.resolveProfile(ctx, moves, timeTakenSeconds, hesitations, decisions)
	a.recordOutcome(ctx, userID, p)
	return p, nil
}

// resolveProfile asks the remote analyzer first and falls back to the
// local classifier on any failure.
func (a *Analysis) resolveProfile(ctx context.Context, moves, timeTakenSeconds, hesitations, decisions int) profile.Profile {
	if a.analyzer != nil {
		remote, err := a.analyzer.Analyze(ctx, moves, timeTakenSeconds, hesitations, decisions)
		if err == nil && remote != nil {
			return *remote
		}
		a.logger.Printf("%s[ERROR]%s remote analyzer unavailable, using local classifier: %s", config.LogErrorColor, config.LogColorReset, err)
	}
	return profile.Classify(moves, timeTakenSeconds, hesitations, decisions)
}

// recordOutcome submits the score to the leaderboard and updates the
// player's best result. Failures are logged and swallowed; they must
// never reach the player-facing response.
func (a *Analysis) recordOutcome(ctx context.Context, userID uuid.UUID, p profile.Profile) {
	if a.leaderboard != nil {
		if err := a.leaderboard.Submit(ctx, userID, p.Metrics.OverallScore); err != nil {
			a.logger.Printf("%s[ERROR]%s submitting score for %s: %s", config.LogErrorColor, config.LogColorReset, userID, err)
		}
	}

	if a.playerRepo == nil {
		return
	}
	player, err := a.playerRepo.ByID(userID)
	if err != nil {
		return
	}
	if p.Metrics.OverallScore <= player.BestScore && player.Archetype != "" {
		return
	}
	player.BestScore = p.Metrics.OverallScore
	player.Archetype = p.Archetype.Type
	if err := a.playerRepo.Save(player); err != nil {
		a.logger.Printf("%s[ERROR]%s saving best result for %s: %s", config.LogErrorColor, config.LogColorReset, userID, err)
	}
}
