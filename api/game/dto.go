// Package gameapi provides structures and utilities for managing game
// session, event, and analysis requests and responses.
package gameapi

import (
	"github.com/beka-birhanu/mindmaze-api/game/profile"
	"github.com/beka-birhanu/mindmaze-api/game/session"
	"github.com/beka-birhanu/mindmaze-api/service/i"
	"github.com/google/uuid"
)

// StartSessionRequest asks for a new game session for a user.
type StartSessionRequest struct {
	UserID     uuid.UUID `json:"userId" binding:"required"`
	PuzzleType string    `json:"puzzleType" binding:"required"`
}

// StartSessionResponse wraps the created session descriptor.
type StartSessionResponse struct {
	Session i.SessionInfo `json:"session"`
}

// MoveRequest carries one move intent for a session.
type MoveRequest struct {
	Direction string `json:"direction" binding:"required"`
}

// MoveResponse reports the outcome of a move with a fresh snapshot.
type MoveResponse struct {
	Accepted  bool             `json:"accepted"`
	Completed bool             `json:"completed"`
	Snapshot  session.Snapshot `json:"snapshot"`
}

// SnapshotResponse wraps a read-only session view.
type SnapshotResponse struct {
	Snapshot session.Snapshot `json:"snapshot"`
}

// TrackEventRequest reports one client-side observation.
type TrackEventRequest struct {
	SessionID uuid.UUID              `json:"sessionId" binding:"required"`
	EventType string                 `json:"eventType" binding:"required"`
	Data      map[string]interface{} `json:"data"`
}

// TrackEventResponse echoes the accepted event.
type TrackEventResponse struct {
	Event i.TrackedEvent `json:"event"`
}

// AnalyzeGameRequest carries the final metrics of a finished run.
type AnalyzeGameRequest struct {
	SessionID   uuid.UUID `json:"sessionId" binding:"required"`
	Moves       int       `json:"moves"`
	TimeTaken   int       `json:"timeTaken"`
	Decisions   int       `json:"decisions"`
	Hesitations int       `json:"hesitations"`
}

// AnalyzeGameResponse wraps the resulting profile.
type AnalyzeGameResponse struct {
	Profile profile.Profile `json:"profile"`
}

// LeaderboardResponse lists the ranked best scores.
type LeaderboardResponse struct {
	Leaderboard []i.LeaderboardEntry `json:"leaderboard"`
}

// StatsResponse reports aggregate service counters.
type StatsResponse struct {
	TotalSessions     int64 `json:"totalSessions"`
	ActiveSessions    int64 `json:"activeSessions"`
	CompletedSessions int64 `json:"completedSessions"`
	EventsTracked     int64 `json:"eventsTracked"`
	RankedPlayers     int64 `json:"rankedPlayers"`
}
