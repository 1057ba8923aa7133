package session

import (
	"math/rand"
	"testing"
	"time"

	"github.com/beka-birhanu/mindmaze-api/game/maze"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.now = c.now.Add(d)
}

type captureRecorder struct {
	events []Event
}

func (r *captureRecorder) Record(e Event) {
	r.events = append(r.events, e)
}

func (r *captureRecorder) kinds() []EventKind {
	kinds := make([]EventKind, 0, len(r.events))
	for _, e := range r.events {
		kinds = append(kinds, e.Kind)
	}
	return kinds
}

// seededFactory generates the same maze on every call.
func seededFactory(seed int64) MazeFactory {
	return func() (*maze.Maze, error) {
		return maze.NewWithRand(15, 15, rand.New(rand.NewSource(seed)))
	}
}

func newTestSession(t *testing.T, seed int64) (*Session, *fakeClock, *captureRecorder) {
	t.Helper()
	clock := newFakeClock()
	rec := &captureRecorder{}
	s, err := New(Config{
		MazeFactory: seededFactory(seed),
		Recorder:    rec,
		Clock:       clock.Now,
	})
	require.NoError(t, err)
	return s, clock, rec
}

// directionsToExit finds the unique corridor path from the current start
// to the exit via BFS and returns it as a direction sequence.
func directionsToExit(t *testing.T, m *maze.Maze) []maze.Direction {
	t.Helper()

	type step struct {
		from maze.Position
		dir  maze.Direction
	}
	parent := map[maze.Position]step{}
	visited := map[maze.Position]bool{m.Start(): true}
	queue := []maze.Position{m.Start()}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for dir, delta := range maze.Directions {
			next := cur.Add(delta)
			if m.Walkable(next) && !visited[next] {
				visited[next] = true
				parent[next] = step{from: cur, dir: dir}
				queue = append(queue, next)
			}
		}
	}

	require.True(t, visited[m.Exit()], "exit must be reachable")

	var reversed []maze.Direction
	for cur := m.Exit(); cur != m.Start(); cur = parent[cur].from {
		reversed = append(reversed, parent[cur].dir)
	}
	dirs := make([]maze.Direction, 0, len(reversed))
	for i := len(reversed) - 1; i >= 0; i-- {
		dirs = append(dirs, reversed[i])
	}
	return dirs
}

func TestNewRequiresFactory(t *testing.T) {
	_, err := New(Config{})
	assert.ErrorIs(t, err, ErrNilMazeFactory)
}

func TestAttemptMoveRejectsUnknownDirection(t *testing.T) {
	s, _, _ := newTestSession(t, 1)

	_, err := s.AttemptMove(maze.Direction("diagonal"))
	assert.ErrorIs(t, err, ErrInvalidDirection)
	assert.Equal(t, Idle, s.State(), "bad input must not start the session")
}

func TestImplicitStartOnFirstMove(t *testing.T) {
	s, clock, rec := newTestSession(t, 1)
	assert.Equal(t, Idle, s.State())

	// Moving up from (1,1) hits the border wall, but even a rejected
	// intent activates the session.
	res, err := s.AttemptMove(maze.Up)
	require.NoError(t, err)
	assert.False(t, res.Accepted)
	assert.Equal(t, Active, s.State())
	assert.Equal(t, clock.Now(), s.Metrics().StartTime)
	assert.Equal(t, []EventKind{GameStart, InvalidMove}, rec.kinds())
}

func TestStartIsIdempotent(t *testing.T) {
	s, _, rec := newTestSession(t, 1)

	s.Start()
	started := s.Metrics().StartTime
	s.Start()
	s.Start()

	assert.Equal(t, Active, s.State())
	assert.Equal(t, started, s.Metrics().StartTime)
	assert.Equal(t, []EventKind{GameStart}, rec.kinds())
}

func TestWallMoveChangesNothing(t *testing.T) {
	s, _, _ := newTestSession(t, 1)
	s.Start()

	before := s.Snapshot()
	res, err := s.AttemptMove(maze.Up) // (1,0) is part of the border wall
	require.NoError(t, err)

	assert.False(t, res.Accepted)
	assert.Equal(t, before.Position, s.Position())
	assert.Equal(t, before.Path, s.Path())
	assert.Equal(t, 0, s.Metrics().Moves)
	assert.Equal(t, 0, s.Metrics().Decisions)
}

func TestAcceptedMoveUpdatesCountersAndPath(t *testing.T) {
	s, _, rec := newTestSession(t, 1)
	dirs := directionsToExit(t, s.Maze())

	res, err := s.AttemptMove(dirs[0])
	require.NoError(t, err)

	assert.True(t, res.Accepted)
	assert.Equal(t, 1, s.Metrics().Moves)
	assert.Equal(t, 1, s.Metrics().Decisions)
	assert.Len(t, s.Path(), 2)
	assert.Equal(t, res.Position, s.Path()[1])
	assert.Contains(t, rec.kinds(), Move)
}

func TestCountersAreMonotonic(t *testing.T) {
	s, _, _ := newTestSession(t, 7)
	rng := rand.New(rand.NewSource(7))
	all := []maze.Direction{maze.Up, maze.Down, maze.Left, maze.Right}

	prev := s.Metrics()
	for i := 0; i < 200 && s.State() != Complete; i++ {
		res, err := s.AttemptMove(all[rng.Intn(len(all))])
		require.NoError(t, err)

		cur := s.Metrics()
		assert.GreaterOrEqual(t, cur.Moves, prev.Moves)
		assert.GreaterOrEqual(t, cur.Decisions, prev.Decisions)
		if !res.Accepted {
			assert.Equal(t, prev.Moves, cur.Moves, "rejected intents must not count")
		}
		prev = cur
	}
}

func TestHesitationCountedRetroactively(t *testing.T) {
	s, clock, rec := newTestSession(t, 1)
	dirs := directionsToExit(t, s.Maze())
	require.GreaterOrEqual(t, len(dirs), 3)

	_, err := s.AttemptMove(dirs[0])
	require.NoError(t, err)

	// Gap of exactly the threshold: not a hesitation.
	clock.Advance(HesitationThreshold)
	_, err = s.AttemptMove(dirs[1])
	require.NoError(t, err)
	assert.Equal(t, 0, s.Metrics().Hesitations)

	// Gap past the threshold: hesitation, recorded before the move.
	clock.Advance(HesitationThreshold + 500*time.Millisecond)
	_, err = s.AttemptMove(dirs[2])
	require.NoError(t, err)
	assert.Equal(t, 1, s.Metrics().Hesitations)

	kinds := rec.kinds()
	last, secondToLast := kinds[len(kinds)-1], kinds[len(kinds)-2]
	assert.Equal(t, Move, last)
	assert.Equal(t, Hesitation, secondToLast)
}

func TestHesitatingQueryIsReadOnly(t *testing.T) {
	s, clock, _ := newTestSession(t, 1)

	assert.False(t, s.Hesitating(), "idle sessions never report hesitating")

	s.Start()
	assert.False(t, s.Hesitating())

	clock.Advance(HesitatingThreshold + time.Millisecond)
	assert.True(t, s.Hesitating())
	assert.True(t, s.Hesitating())
	assert.Equal(t, 0, s.Metrics().Hesitations, "query must not touch the counter")
}

func TestCompletionOnReachingExit(t *testing.T) {
	s, clock, rec := newTestSession(t, 1)
	dirs := directionsToExit(t, s.Maze())

	var completed int
	for _, d := range dirs {
		clock.Advance(100 * time.Millisecond)
		res, err := s.AttemptMove(d)
		require.NoError(t, err)
		require.True(t, res.Accepted)
		if res.Completed {
			completed++
		}
	}

	assert.Equal(t, 1, completed, "completion fires exactly once")
	assert.Equal(t, Complete, s.State())
	assert.Equal(t, s.Maze().Exit(), s.Position())
	assert.False(t, s.Metrics().EndTime.IsZero())

	kinds := rec.kinds()
	assert.Equal(t, GameComplete, kinds[len(kinds)-1])
	final := rec.events[len(rec.events)-1].Metrics
	require.NotNil(t, final)
	assert.Equal(t, len(dirs), final.Moves)

	// Further intents are no-ops until reset.
	movesBefore := s.Metrics().Moves
	res, err := s.AttemptMove(dirs[len(dirs)-1])
	require.NoError(t, err)
	assert.False(t, res.Accepted)
	assert.Equal(t, movesBefore, s.Metrics().Moves)
}

func TestResetReturnsToIdleWithFreshState(t *testing.T) {
	s, _, rec := newTestSession(t, 1)
	dirs := directionsToExit(t, s.Maze())

	_, err := s.AttemptMove(dirs[0])
	require.NoError(t, err)

	require.NoError(t, s.Reset())
	assert.Equal(t, Idle, s.State())
	assert.Equal(t, s.Maze().Start(), s.Position())
	assert.Equal(t, Metrics{}, s.Metrics())
	assert.Len(t, s.Path(), 1)
	assert.Equal(t, GameReset, rec.kinds()[len(rec.kinds())-1])

	// Resetting twice in a row still leaves a playable session.
	require.NoError(t, s.Reset())
	assert.Equal(t, Idle, s.State())
	assert.NotEmpty(t, directionsToExit(t, s.Maze()))
}

func TestSnapshotIsDetached(t *testing.T) {
	s, _, _ := newTestSession(t, 1)
	dirs := directionsToExit(t, s.Maze())

	snap := s.Snapshot()
	snap.Grid[1][1] = maze.Wall
	snap.Path = append(snap.Path, maze.Position{X: 9, Y: 9})

	_, err := s.AttemptMove(dirs[0])
	require.NoError(t, err)
	assert.Equal(t, maze.Open, s.Maze().CellAt(maze.Position{X: 1, Y: 1}))
	assert.Len(t, s.Path(), 2)
}
