package i

import (
	"time"

	"github.com/beka-birhanu/mindmaze-api/game/maze"
	"github.com/beka-birhanu/mindmaze-api/game/session"
	"github.com/google/uuid"
)

// SessionInfo describes a live session for API consumers.
type SessionInfo struct {
	SessionID  uuid.UUID `json:"sessionId"`
	UserID     uuid.UUID `json:"userId"`
	PuzzleType string    `json:"puzzleType"`
	StartTime  time.Time `json:"startTime"`
	Status     string    `json:"status"`
}

// TrackedEvent is a client-reported observation echoed back by the API.
type TrackedEvent struct {
	SessionID  uuid.UUID              `json:"sessionId"`
	EventType  string                 `json:"eventType"`
	Data       map[string]interface{} `json:"data"`
	ReceivedAt time.Time              `json:"receivedAt"`
}

// RegistryStats are aggregate counters over all sessions.
type RegistryStats struct {
	TotalSessions     int64 `json:"totalSessions"`
	ActiveSessions    int64 `json:"activeSessions"`
	CompletedSessions int64 `json:"completedSessions"`
	EventsTracked     int64 `json:"eventsTracked"`
}

// SessionRegistrar owns live game sessions and routes operations to them.
type SessionRegistrar interface {
	StartSession(userID uuid.UUID, puzzleType string) (SessionInfo, error)
	Move(sessionID uuid.UUID, dir maze.Direction) (session.MoveResult, session.Snapshot, error)
	Snapshot(sessionID uuid.UUID) (session.Snapshot, error)
	ResetSession(sessionID uuid.UUID) error
	TrackEvent(sessionID uuid.UUID, eventType string, data map[string]interface{}) (TrackedEvent, error)
	Stats() RegistryStats
}
