package gameapi

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/beka-birhanu/mindmaze-api/game/maze"
	"github.com/beka-birhanu/mindmaze-api/game/profile"
	"github.com/beka-birhanu/mindmaze-api/game/session"
	"github.com/beka-birhanu/mindmaze-api/service"
	"github.com/beka-birhanu/mindmaze-api/service/i"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubAnalysis struct{}

func (stubAnalysis) AnalyzeGame(_ context.Context, _ uuid.UUID, moves, timeTaken, hesitations, decisions int) (profile.Profile, error) {
	return profile.Classify(moves, timeTaken, hesitations, decisions), nil
}

type stubBoard struct {
	entries []i.LeaderboardEntry
}

func (s *stubBoard) Submit(_ context.Context, _ uuid.UUID, _ int) error {
	return nil
}

func (s *stubBoard) Top(_ context.Context, n int64) ([]i.LeaderboardEntry, error) {
	if n < int64(len(s.entries)) {
		return s.entries[:n], nil
	}
	return s.entries, nil
}

func (s *stubBoard) Count(_ context.Context) int64 {
	return int64(len(s.entries))
}

func newTestEngine(t *testing.T) (*gin.Engine, *service.SessionRegistry) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	registry, err := service.NewSessionRegistry(&service.RegistryConfig{MazeWidth: 9, MazeHeight: 9})
	require.NoError(t, err)

	board := &stubBoard{entries: []i.LeaderboardEntry{
		{Rank: 1, Username: "maze_runner", Score: 90},
	}}

	controller, err := NewGameController(registry, stubAnalysis{}, board)
	require.NoError(t, err)

	engine := gin.New()
	group := engine.Group("/api/v1")
	controller.RegisterPublic(group)
	controller.RegisterProtected(group)
	return engine, registry
}

func doJSON(t *testing.T, engine *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	return rec
}

func startSession(t *testing.T, engine *gin.Engine) i.SessionInfo {
	t.Helper()
	rec := doJSON(t, engine, http.MethodPost, "/api/v1/session/start", StartSessionRequest{
		UserID:     uuid.New(),
		PuzzleType: "maze",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp StartSessionResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp.Session
}

func TestStartSessionEndpoint(t *testing.T) {
	engine, _ := newTestEngine(t)

	t.Run("creates an active session", func(t *testing.T) {
		info := startSession(t, engine)
		assert.NotEqual(t, uuid.Nil, info.SessionID)
		assert.Equal(t, "maze", info.PuzzleType)
		assert.Equal(t, "active", info.Status)
		assert.False(t, info.StartTime.IsZero())
	})

	t.Run("rejects missing fields", func(t *testing.T) {
		rec := doJSON(t, engine, http.MethodPost, "/api/v1/session/start", gin.H{"userId": uuid.New()})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestMoveEndpoint(t *testing.T) {
	engine, _ := newTestEngine(t)
	info := startSession(t, engine)

	t.Run("rejected wall move keeps state", func(t *testing.T) {
		rec := doJSON(t, engine, http.MethodPost, "/api/v1/session/"+info.SessionID.String()+"/move", MoveRequest{Direction: "up"})
		require.Equal(t, http.StatusOK, rec.Code)

		var resp MoveResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.False(t, resp.Accepted)
		assert.Equal(t, maze.Position{X: 1, Y: 1}, resp.Snapshot.Position)
		assert.Equal(t, 0, resp.Snapshot.Metrics.Moves)
	})

	t.Run("unknown direction is a bad request", func(t *testing.T) {
		rec := doJSON(t, engine, http.MethodPost, "/api/v1/session/"+info.SessionID.String()+"/move", MoveRequest{Direction: "sideways"})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("unknown session is not found", func(t *testing.T) {
		rec := doJSON(t, engine, http.MethodPost, "/api/v1/session/"+uuid.New().String()+"/move", MoveRequest{Direction: "down"})
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestSessionLifecycleOverHTTP(t *testing.T) {
	engine, registry := newTestEngine(t)
	info := startSession(t, engine)

	// Drive the session to completion through the registry's own maze.
	snap, err := registry.Snapshot(info.SessionID)
	require.NoError(t, err)

	// Reconstruct the maze path via BFS over the snapshot grid.
	dirs := solve(t, snap)
	var last MoveResponse
	for _, d := range dirs {
		rec := doJSON(t, engine, http.MethodPost, "/api/v1/session/"+info.SessionID.String()+"/move", MoveRequest{Direction: string(d)})
		require.Equal(t, http.StatusOK, rec.Code)
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &last))
		require.True(t, last.Accepted)
	}
	assert.True(t, last.Completed)
	assert.Equal(t, "complete", last.Snapshot.State)

	// Reset brings the session back to idle.
	rec := doJSON(t, engine, http.MethodPost, "/api/v1/session/"+info.SessionID.String()+"/reset", nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	getRec := doJSON(t, engine, http.MethodGet, "/api/v1/session/"+info.SessionID.String(), nil)
	require.Equal(t, http.StatusOK, getRec.Code)
	var got SnapshotResponse
	require.NoError(t, json.Unmarshal(getRec.Body.Bytes(), &got))
	assert.Equal(t, "idle", got.Snapshot.State)
}

func TestTrackEventEndpoint(t *testing.T) {
	engine, _ := newTestEngine(t)
	info := startSession(t, engine)

	t.Run("echoes the event", func(t *testing.T) {
		rec := doJSON(t, engine, http.MethodPost, "/api/v1/events/track", TrackEventRequest{
			SessionID: info.SessionID,
			EventType: "hesitation",
			Data:      map[string]interface{}{"pauseMs": 1500},
		})
		require.Equal(t, http.StatusOK, rec.Code)

		var resp TrackEventResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, info.SessionID, resp.Event.SessionID)
		assert.Equal(t, "hesitation", resp.Event.EventType)
	})

	t.Run("rejects unknown event types", func(t *testing.T) {
		rec := doJSON(t, engine, http.MethodPost, "/api/v1/events/track", TrackEventRequest{
			SessionID: info.SessionID,
			EventType: "teleport",
		})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestAnalyzeGameEndpoint(t *testing.T) {
	engine, _ := newTestEngine(t)
	info := startSession(t, engine)

	rec := doJSON(t, engine, http.MethodPost, "/api/v1/analyze/game", AnalyzeGameRequest{
		SessionID:   info.SessionID,
		Moves:       20,
		TimeTaken:   45,
		Decisions:   20,
		Hesitations: 1,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp AnalyzeGameResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "balanced", resp.Profile.Archetype.Type)
	assert.Equal(t, 78, resp.Profile.Metrics.OverallScore)
	assert.NotNil(t, resp.Profile.Biases)
}

func TestPublicEndpoints(t *testing.T) {
	engine, _ := newTestEngine(t)

	t.Run("health", func(t *testing.T) {
		rec := doJSON(t, engine, http.MethodGet, "/api/v1/health", nil)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("leaderboard", func(t *testing.T) {
		rec := doJSON(t, engine, http.MethodGet, "/api/v1/leaderboard", nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var resp LeaderboardResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		require.Len(t, resp.Leaderboard, 1)
		assert.Equal(t, "maze_runner", resp.Leaderboard[0].Username)
	})

	t.Run("leaderboard rejects bad limit", func(t *testing.T) {
		rec := doJSON(t, engine, http.MethodGet, "/api/v1/leaderboard?limit=-2", nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("stats", func(t *testing.T) {
		startSession(t, engine)
		rec := doJSON(t, engine, http.MethodGet, "/api/v1/stats", nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var resp StatsResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.GreaterOrEqual(t, resp.TotalSessions, int64(1))
		assert.Equal(t, int64(1), resp.RankedPlayers)
	})
}

// solve finds the direction sequence from the snapshot position to the
// exit via BFS over the snapshot grid.
func solve(t *testing.T, snap session.Snapshot) []maze.Direction {
	t.Helper()

	walkable := func(p maze.Position) bool {
		return p.Y >= 0 && p.Y < len(snap.Grid) && p.X >= 0 && p.X < len(snap.Grid[0]) && snap.Grid[p.Y][p.X] != maze.Wall
	}

	type step struct {
		from maze.Position
		dir  maze.Direction
	}
	parent := map[maze.Position]step{}
	visited := map[maze.Position]bool{snap.Position: true}
	queue := []maze.Position{snap.Position}
	deadline := time.Now().Add(time.Second)

	for len(queue) > 0 && time.Now().Before(deadline) {
		cur := queue[0]
		queue = queue[1:]
		for dir, delta := range maze.Directions {
			next := cur.Add(delta)
			if walkable(next) && !visited[next] {
				visited[next] = true
				parent[next] = step{from: cur, dir: dir}
				queue = append(queue, next)
			}
		}
	}
	require.True(t, visited[snap.Exit], "exit must be reachable from the snapshot position")

	var reversed []maze.Direction
	for cur := snap.Exit; cur != snap.Position; cur = parent[cur].from {
		reversed = append(reversed, parent[cur].dir)
	}
	dirs := make([]maze.Direction, 0, len(reversed))
	for idx := len(reversed) - 1; idx >= 0; idx-- {
		dirs = append(dirs, reversed[idx])
	}
	return dirs
}
