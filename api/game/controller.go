package gameapi

import (
	"net/http"
	"strconv"

	apiidentity "github.com/beka-birhanu/mindmaze-api/api/identity"
	"github.com/beka-birhanu/mindmaze-api/game/maze"
	"github.com/beka-birhanu/mindmaze-api/game/session"
	"github.com/beka-birhanu/mindmaze-api/service/i"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const defaultLeaderboardSize = 10

// GameController manages game sessions, event tracking, and analysis.
type GameController struct {
	registry    i.SessionRegistrar
	analysis    i.GameAnalyzer
	leaderboard i.Leaderboard
}

// NewGameController initializes a GameController.
func NewGameController(registry i.SessionRegistrar, analysis i.GameAnalyzer, leaderboard i.Leaderboard) (*GameController, error) {
	return &GameController{
		registry:    registry,
		analysis:    analysis,
		leaderboard: leaderboard,
	}, nil
}

// RegisterPublic registers public routes.
func (gc *GameController) RegisterPublic(route *gin.RouterGroup) {
	route.GET("/health", gc.health)
	route.GET("/leaderboard", gc.topPlayers)
	route.GET("/stats", gc.stats)
}

// RegisterProtected registers protected routes.
func (gc *GameController) RegisterProtected(route *gin.RouterGroup) {
	sessions := route.Group("/session")
	{
		sessions.POST("/start", gc.startSession)
		sessions.GET("/:ID", gc.sessionSnapshot)
		sessions.POST("/:ID/move", gc.move)
		sessions.POST("/:ID/reset", gc.reset)
	}

	events := route.Group("/events")
	{
		events.POST("/track", gc.trackEvent)
	}

	analyze := route.Group("/analyze")
	{
		analyze.POST("/game", gc.analyzeGame)
	}
}

// startSession creates a session over a fresh maze.
func (gc *GameController) startSession(ctx *gin.Context) {
	var request StartSessionRequest
	if err := ctx.ShouldBind(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	info, err := gc.registry.StartSession(request.UserID, request.PuzzleType)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "error while creating session"})
		return
	}

	ctx.JSON(http.StatusCreated, &StartSessionResponse{Session: info})
}

// sessionSnapshot returns a read-only view of a session.
func (gc *GameController) sessionSnapshot(ctx *gin.Context) {
	sessionID, ok := sessionIDParam(ctx)
	if !ok {
		return
	}

	snap, err := gc.registry.Snapshot(sessionID)
	if err != nil {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
		return
	}

	ctx.JSON(http.StatusOK, &SnapshotResponse{Snapshot: snap})
}

// move applies one move intent to a session.
func (gc *GameController) move(ctx *gin.Context) {
	sessionID, ok := sessionIDParam(ctx)
	if !ok {
		return
	}

	var request MoveRequest
	if err := ctx.ShouldBind(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	res, snap, err := gc.registry.Move(sessionID, maze.Direction(request.Direction))
	if err != nil {
		switch {
		case err == session.ErrInvalidDirection:
			ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			ctx.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
		}
		return
	}

	ctx.JSON(http.StatusOK, &MoveResponse{
		Accepted:  res.Accepted,
		Completed: res.Completed,
		Snapshot:  snap,
	})
}

// reset regenerates a session's maze and returns it to idle.
func (gc *GameController) reset(ctx *gin.Context) {
	sessionID, ok := sessionIDParam(ctx)
	if !ok {
		return
	}

	if err := gc.registry.ResetSession(sessionID); err != nil {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
		return
	}

	ctx.Status(http.StatusNoContent)
}

// trackEvent validates and echoes a client-reported observation.
func (gc *GameController) trackEvent(ctx *gin.Context) {
	var request TrackEventRequest
	if err := ctx.ShouldBind(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	event, err := gc.registry.TrackEvent(request.SessionID, request.EventType, request.Data)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, &TrackEventResponse{Event: event})
}

// analyzeGame produces the final profile for a finished run.
func (gc *GameController) analyzeGame(ctx *gin.Context) {
	var request AnalyzeGameRequest
	if err := ctx.ShouldBind(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if _, err := gc.registry.Snapshot(request.SessionID); err != nil {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
		return
	}

	playerID := playerIDFromClaims(ctx)
	p, err := gc.analysis.AnalyzeGame(ctx, playerID, request.Moves, request.TimeTaken, request.Hesitations, request.Decisions)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "error while analyzing game"})
		return
	}

	ctx.JSON(http.StatusOK, &AnalyzeGameResponse{Profile: p})
}

// topPlayers lists the ranked best scores.
func (gc *GameController) topPlayers(ctx *gin.Context) {
	limit := int64(defaultLeaderboardSize)
	if raw := ctx.Query("limit"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || parsed <= 0 {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
			return
		}
		limit = parsed
	}

	entries, err := gc.leaderboard.Top(ctx, limit)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "error while reading leaderboard"})
		return
	}

	ctx.JSON(http.StatusOK, &LeaderboardResponse{Leaderboard: entries})
}

// stats reports aggregate service counters.
func (gc *GameController) stats(ctx *gin.Context) {
	s := gc.registry.Stats()
	ctx.JSON(http.StatusOK, &StatsResponse{
		TotalSessions:     s.TotalSessions,
		ActiveSessions:    s.ActiveSessions,
		CompletedSessions: s.CompletedSessions,
		EventsTracked:     s.EventsTracked,
		RankedPlayers:     gc.leaderboard.Count(ctx),
	})
}

// health reports liveness.
func (gc *GameController) health(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{"status": "healthy", "service": "mindmaze-api"})
}

// sessionIDParam parses the :ID path parameter, writing the error
// response itself on failure.
func sessionIDParam(ctx *gin.Context) (uuid.UUID, bool) {
	sessionID, err := uuid.Parse(ctx.Params.ByName("ID"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid session id"})
		return uuid.Nil, false
	}
	return sessionID, true
}

// playerIDFromClaims extracts the authenticated player's ID from the
// bearer-token claims, uuid.Nil when absent.
func playerIDFromClaims(ctx *gin.Context) uuid.UUID {
	raw, exists := ctx.Get(apiidentity.ContextPlayerClaims)
	if !exists {
		return uuid.Nil
	}
	claims, ok := raw.(map[string]interface{})
	if !ok {
		return uuid.Nil
	}
	idStr, ok := claims["playerID"].(string)
	if !ok {
		return uuid.Nil
	}
	playerID, err := uuid.Parse(idStr)
	if err != nil {
		return uuid.Nil
	}
	return playerID
}
