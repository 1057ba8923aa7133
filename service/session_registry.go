package service

import (
	"errors"
	"log"
	"sync"
	"time"

	"github.com/beka-birhanu/mindmaze-api/config"
	"github.com/beka-birhanu/mindmaze-api/game/maze"
	"github.com/beka-birhanu/mindmaze-api/game/session"
	"github.com/beka-birhanu/mindmaze-api/service/i"
	"github.com/google/uuid"
)

const (
	defaultMazeWidth  = 15
	defaultMazeHeight = 15
)

// Registry-related errors.
var (
	ErrSessionNotFound  = errors.New("session not found")
	ErrUnknownEventType = errors.New("unknown event type")
)

// trackableEvents is the closed set of event names clients may report.
var trackableEvents = map[string]struct{}{
	session.GameStart.String():    {},
	session.Move.String():         {},
	session.InvalidMove.String():  {},
	session.Hesitation.String():   {},
	session.GameComplete.String(): {},
	session.GameReset.String():    {},
}

type liveSession struct {
	game       *session.Session
	userID     uuid.UUID
	puzzleType string
	startedAt  time.Time
}

// SessionRegistry owns all live sessions, keyed by session ID.
// Implements i.SessionRegistrar.
type SessionRegistry struct {
	sessions map[uuid.UUID]*liveSession
	recorder session.Recorder
	logger   *log.Logger

	mazeWidth  int
	mazeHeight int

	completed     int64
	eventsTracked int64

	sync.RWMutex
}

// RegistryConfig holds the collaborators for a new SessionRegistry.
type RegistryConfig struct {
	MazeWidth  int
	MazeHeight int
	Recorder   session.Recorder // Optional telemetry sink shared by all sessions.
	Logger     *log.Logger
}

// NewSessionRegistry creates an empty registry.
func NewSessionRegistry(c *RegistryConfig) (*SessionRegistry, error) {
	if c == nil {
		c = &RegistryConfig{}
	}
	if c.MazeWidth < maze.MinDimension {
		c.MazeWidth = defaultMazeWidth
	}
	if c.MazeHeight < maze.MinDimension {
		c.MazeHeight = defaultMazeHeight
	}
	if c.Logger == nil {
		c.Logger = log.Default()
	}

	return &SessionRegistry{
		sessions:   make(map[uuid.UUID]*liveSession),
		recorder:   c.Recorder,
		logger:     c.Logger,
		mazeWidth:  c.MazeWidth,
		mazeHeight: c.MazeHeight,
	}, nil
}

// StartSession creates a session over a fresh maze and activates it.
func (r *SessionRegistry) StartSession(userID uuid.UUID, puzzleType string) (i.SessionInfo, error) {
	width, height := r.mazeWidth, r.mazeHeight
	game, err := session.New(session.Config{
		MazeFactory: func() (*maze.Maze, error) { return maze.New(width, height) },
		Recorder:    r.recorder,
	})
	if err != nil {
		r.logger.Printf("%s[ERROR]%s creating session for user %s: %s", config.LogErrorColor, config.LogColorReset, userID, err)
		return i.SessionInfo{}, err
	}
	game.Start()

	live := &liveSession{
		game:       game,
		userID:     userID,
		puzzleType: puzzleType,
		startedAt:  game.Metrics().StartTime,
	}

	sessionID := uuid.New()
	r.Lock()
	r.sessions[sessionID] = live
	r.Unlock()

	r.logger.Printf("%s[INFO]%s started session %s for user %s", config.LogInfoColor, config.LogColorReset, sessionID, userID)
	return i.SessionInfo{
		SessionID:  sessionID,
		UserID:     userID,
		PuzzleType: puzzleType,
		StartTime:  live.startedAt,
		Status:     game.State().String(),
	}, nil
}

// Move applies a move intent to the identified session and returns the
// outcome with a fresh snapshot.
func (r *SessionRegistry) Move(sessionID uuid.UUID, dir maze.Direction) (session.MoveResult, session.Snapshot, error) {
	live, err := r.lookup(sessionID)
	if err != nil {
		return session.MoveResult{}, session.Snapshot{}, err
	}

	res, err := live.game.AttemptMove(dir)
	if err != nil {
		return session.MoveResult{}, session.Snapshot{}, err
	}

	if res.Completed {
		r.Lock()
		r.completed++
		r.Unlock()
		r.logger.Printf("%s[INFO]%s session %s completed in %d moves", config.LogInfoColor, config.LogColorReset, sessionID, live.game.Metrics().Moves)
	}

	return res, live.game.Snapshot(), nil
}

// Snapshot returns a read-only view of the identified session.
func (r *SessionRegistry) Snapshot(sessionID uuid.UUID) (session.Snapshot, error) {
	live, err := r.lookup(sessionID)
	if err != nil {
		return session.Snapshot{}, err
	}
	return live.game.Snapshot(), nil
}

// ResetSession discards the identified session's maze and counters and
// regenerates a fresh maze.
func (r *SessionRegistry) ResetSession(sessionID uuid.UUID) error {
	live, err := r.lookup(sessionID)
	if err != nil {
		return err
	}
	return live.game.Reset()
}

// TrackEvent validates and echoes a client-reported observation. The
// event set is closed; unknown names fail fast.
func (r *SessionRegistry) TrackEvent(sessionID uuid.UUID, eventType string, data map[string]interface{}) (i.TrackedEvent, error) {
	if _, ok := trackableEvents[eventType]; !ok {
		return i.TrackedEvent{}, ErrUnknownEventType
	}
	if _, err := r.lookup(sessionID); err != nil {
		return i.TrackedEvent{}, err
	}

	r.Lock()
	r.eventsTracked++
	r.Unlock()

	return i.TrackedEvent{
		SessionID:  sessionID,
		EventType:  eventType,
		Data:       data,
		ReceivedAt: time.Now().UTC(),
	}, nil
}

// Stats returns aggregate counters over all sessions.
func (r *SessionRegistry) Stats() i.RegistryStats {
	r.RLock()
	defer r.RUnlock()

	var active int64
	for _, live := range r.sessions {
		if live.game.State() == session.Active {
			active++
		}
	}

	return i.RegistryStats{
		TotalSessions:     int64(len(r.sessions)),
		ActiveSessions:    active,
		CompletedSessions: r.completed,
		EventsTracked:     r.eventsTracked,
	}
}

func (r *SessionRegistry) lookup(sessionID uuid.UUID) (*liveSession, error) {
	r.RLock()
	defer r.RUnlock()
	live, ok := r.sessions[sessionID]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return live, nil
}
