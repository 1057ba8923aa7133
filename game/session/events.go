package session

import (
	"time"

	"github.com/beka-birhanu/mindmaze-api/game/maze"
)

// EventKind enumerates every observation a session can emit. The set is
// closed so consumers always know the payload shape per kind.
type EventKind byte

const (
	GameStart EventKind = iota
	Move
	InvalidMove
	Hesitation
	GameComplete
	GameReset
)

// String returns the wire name of the event kind.
func (k EventKind) String() string {
	switch k {
	case GameStart:
		return "game_start"
	case Move:
		return "move"
	case InvalidMove:
		return "invalid_move"
	case Hesitation:
		return "hesitation"
	case GameComplete:
		return "game_complete"
	case GameReset:
		return "game_reset"
	default:
		return "unknown"
	}
}

// Event is a single session observation. Which fields are set depends on
// Kind: Direction/From/To accompany Move and InvalidMove, PauseMillis
// accompanies Hesitation, and Metrics accompanies GameComplete.
type Event struct {
	Kind        EventKind
	At          time.Time
	Direction   maze.Direction
	From        maze.Position
	To          maze.Position
	PauseMillis int64
	Metrics     *Metrics
}

// Recorder receives session observations. Delivery is best-effort: the
// session never blocks on a recorder and ignores whatever it does with
// the event.
type Recorder interface {
	Record(Event)
}
