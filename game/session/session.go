/*
Package session implements the per-player game session state machine.

A session owns a generated maze, the player position, the visited path,
and the move/hesitation counters that feed the archetype classifier. It
moves through the states Idle -> Active -> Complete, with Reset leading
back to Idle over a freshly generated maze. All operations are applied
strictly in call order under a single lock.
*/
package session

import (
	"errors"
	"sync"
	"time"

	"github.com/beka-birhanu/mindmaze-api/game/maze"
)

const (
	// HesitationThreshold is the pause before an accepted move that
	// counts it as a hesitation.
	HesitationThreshold = 1000 * time.Millisecond

	// HesitatingThreshold is the longer pause after which the live
	// Hesitating query reports true. Read-only signal for renderers;
	// it never touches the hesitation counter.
	HesitatingThreshold = 2000 * time.Millisecond
)

// Session-related errors.
var (
	ErrNilMazeFactory   = errors.New("maze factory is required")
	ErrInvalidDirection = errors.New("unknown move direction")
)

// State is the lifecycle state of a session.
type State byte

const (
	Idle State = iota
	Active
	Complete
)

// String returns the wire name of the state.
func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Active:
		return "active"
	case Complete:
		return "complete"
	default:
		return "unknown"
	}
}

// Metrics are the counters accumulated over a session's lifetime.
type Metrics struct {
	Moves       int       `json:"moves"`
	Decisions   int       `json:"decisions"`
	Hesitations int       `json:"hesitations"`
	StartTime   time.Time `json:"startTime"`
	EndTime     time.Time `json:"endTime"`
}

// TimeTakenSeconds returns the elapsed play time in whole seconds, using
// now for sessions that have not completed yet.
func (m Metrics) TimeTakenSeconds(now time.Time) int {
	if m.StartTime.IsZero() {
		return 0
	}
	end := m.EndTime
	if end.IsZero() {
		end = now
	}
	return int(end.Sub(m.StartTime) / time.Second)
}

// MoveResult reports the outcome of a move intent.
type MoveResult struct {
	Accepted  bool          // The move changed the player position.
	Completed bool          // This move landed on the exit.
	Position  maze.Position // Player position after the attempt.
}

// Snapshot is a read-only view of the session for renderers.
type Snapshot struct {
	Grid       [][]maze.CellState `json:"grid"`
	Position   maze.Position      `json:"position"`
	Path       []maze.Position    `json:"path"`
	Exit       maze.Position      `json:"exit"`
	State      string             `json:"state"`
	Hesitating bool               `json:"hesitating"`
	Metrics    Metrics            `json:"metrics"`
}

// MazeFactory produces a fresh maze for a new or reset session.
type MazeFactory func() (*maze.Maze, error)

// Config holds the collaborators for a new Session.
type Config struct {
	MazeFactory MazeFactory
	Recorder    Recorder         // Optional observation sink.
	Clock       func() time.Time // Optional, defaults to time.Now.
}

// Session is the per-player game state machine. Safe for concurrent use,
// though move intents are applied strictly one at a time.
type Session struct {
	mazeFactory MazeFactory
	recorder    Recorder
	clock       func() time.Time

	maze       *maze.Maze
	state      State
	pos        maze.Position
	path       []maze.Position
	metrics    Metrics
	lastMoveAt time.Time

	sync.Mutex
}

// New creates an Idle session over a freshly generated maze.
func New(c Config) (*Session, error) {
	if c.MazeFactory == nil {
		return nil, ErrNilMazeFactory
	}
	if c.Clock == nil {
		c.Clock = time.Now
	}

	m, err := c.MazeFactory()
	if err != nil {
		return nil, err
	}

	s := &Session{
		mazeFactory: c.MazeFactory,
		recorder:    c.Recorder,
		clock:       c.Clock,
	}
	s.adopt(m)
	return s, nil
}

// adopt installs a maze and clears all per-run state. Caller holds the
// lock (or owns the session exclusively, as in New).
func (s *Session) adopt(m *maze.Maze) {
	s.maze = m
	s.state = Idle
	s.pos = m.Start()
	s.path = []maze.Position{m.Start()}
	s.metrics = Metrics{}
	s.lastMoveAt = time.Time{}
}

// record hands an event to the recorder, if any. Best-effort only.
func (s *Session) record(e Event) {
	if s.recorder != nil {
		s.recorder.Record(e)
	}
}

// Start transitions Idle -> Active and stamps the session start time.
// No-op when the session is already Active or Complete.
func (s *Session) Start() {
	s.Lock()
	defer s.Unlock()
	s.start()
}

func (s *Session) start() {
	if s.state != Idle {
		return
	}
	now := s.clock()
	s.state = Active
	s.metrics.StartTime = now
	s.record(Event{Kind: GameStart, At: now})
}

// AttemptMove applies one move intent. Unknown directions fail fast;
// moves into walls or out of bounds are rejected without changing state;
// a move that lands on the exit completes the session. After completion
// all further intents are no-ops until Reset.
func (s *Session) AttemptMove(d maze.Direction) (MoveResult, error) {
	if !d.Valid() {
		return MoveResult{}, ErrInvalidDirection
	}

	s.Lock()
	defer s.Unlock()

	if s.state == Complete {
		return MoveResult{Position: s.pos}, nil
	}
	if s.state == Idle {
		s.start()
	}

	target := s.pos.Add(maze.Directions[d])
	now := s.clock()

	if !s.maze.Walkable(target) {
		s.record(Event{Kind: InvalidMove, At: now, Direction: d, From: s.pos, To: target})
		return MoveResult{Position: s.pos}, nil
	}

	// A hesitation is attached to the move that ends the pause, so it
	// is counted before the move is applied.
	if !s.lastMoveAt.IsZero() {
		if pause := now.Sub(s.lastMoveAt); pause > HesitationThreshold {
			s.metrics.Hesitations++
			s.record(Event{Kind: Hesitation, At: now, PauseMillis: pause.Milliseconds()})
		}
	}

	from := s.pos
	s.pos = target
	s.metrics.Moves++
	s.metrics.Decisions++
	if s.path[len(s.path)-1] != target {
		s.path = append(s.path, target)
	}
	s.lastMoveAt = now
	s.record(Event{Kind: Move, At: now, Direction: d, From: from, To: target})

	if target == s.maze.Exit() {
		s.state = Complete
		s.metrics.EndTime = now
		final := s.metrics
		s.record(Event{Kind: GameComplete, At: now, Metrics: &final})
		return MoveResult{Accepted: true, Completed: true, Position: target}, nil
	}

	return MoveResult{Accepted: true, Position: target}, nil
}

// Reset discards the maze, path, and counters, regenerates a maze, and
// returns the session to Idle.
func (s *Session) Reset() error {
	s.Lock()
	defer s.Unlock()

	m, err := s.mazeFactory()
	if err != nil {
		return err
	}
	s.adopt(m)
	s.record(Event{Kind: GameReset, At: s.clock()})
	return nil
}

// Hesitating reports whether the player has been idle past the UI
// threshold. Read-only; the hesitation counter is untouched.
func (s *Session) Hesitating() bool {
	s.Lock()
	defer s.Unlock()

	if s.state != Active {
		return false
	}
	since := s.lastMoveAt
	if since.IsZero() {
		since = s.metrics.StartTime
	}
	return s.clock().Sub(since) > HesitatingThreshold
}

// State returns the current lifecycle state.
func (s *Session) State() State {
	s.Lock()
	defer s.Unlock()
	return s.state
}

// Position returns the current player position.
func (s *Session) Position() maze.Position {
	s.Lock()
	defer s.Unlock()
	return s.pos
}

// Path returns a copy of the visited positions, in order.
func (s *Session) Path() []maze.Position {
	s.Lock()
	defer s.Unlock()
	path := make([]maze.Position, len(s.path))
	copy(path, s.path)
	return path
}

// Metrics returns the counters accumulated so far.
func (s *Session) Metrics() Metrics {
	s.Lock()
	defer s.Unlock()
	return s.metrics
}

// Maze returns the maze the session is being played on.
func (s *Session) Maze() *maze.Maze {
	s.Lock()
	defer s.Unlock()
	return s.maze
}

// Snapshot returns a read-only view of the whole session.
func (s *Session) Snapshot() Snapshot {
	s.Lock()
	defer s.Unlock()

	path := make([]maze.Position, len(s.path))
	copy(path, s.path)

	hesitating := false
	if s.state == Active {
		since := s.lastMoveAt
		if since.IsZero() {
			since = s.metrics.StartTime
		}
		hesitating = s.clock().Sub(since) > HesitatingThreshold
	}

	return Snapshot{
		Grid:       s.maze.Grid(),
		Position:   s.pos,
		Path:       path,
		Exit:       s.maze.Exit(),
		State:      s.state.String(),
		Hesitating: hesitating,
		Metrics:    s.metrics,
	}
}
