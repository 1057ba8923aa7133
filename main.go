package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/beka-birhanu/mindmaze-api/api"
	gameapi "github.com/beka-birhanu/mindmaze-api/api/game"
	api_i "github.com/beka-birhanu/mindmaze-api/api/i"
	"github.com/beka-birhanu/mindmaze-api/api/identity"
	"github.com/beka-birhanu/mindmaze-api/config"
	"github.com/beka-birhanu/mindmaze-api/infrastruture/analyzer"
	"github.com/beka-birhanu/mindmaze-api/infrastruture/repo"
	"github.com/beka-birhanu/mindmaze-api/infrastruture/sortedstorage"
	"github.com/beka-birhanu/mindmaze-api/infrastruture/telemetry"
	"github.com/beka-birhanu/mindmaze-api/infrastruture/token"
	"github.com/beka-birhanu/mindmaze-api/service"
	"github.com/beka-birhanu/mindmaze-api/service/i"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const leaderboardKey = "leaderboard:best_scores"

// Global variables for dependencies
var (
	mongoClient     *mongo.Client
	redisClient     *redis.Client
	playerRepo      i.PlayerRepo
	jwtTokenizer    i.Tokenizer
	authService     i.Authenticator
	authController  api_i.Controller
	sessionRegistry i.SessionRegistrar
	rankStore       i.SortedRank
	leaderboard     i.Leaderboard
	remoteAnalyzer  i.Analyzer
	analysisService i.GameAnalyzer
	gameController  api_i.Controller
	router          *api.Router
	appLogger       *log.Logger
)

func newLogger(tag, color string) *log.Logger {
	return log.New(os.Stdout, fmt.Sprintf("%s[%s]%s ", color, tag, config.ColorReset), log.LstdFlags)
}

func initMongo(ctx context.Context) {
	uri := fmt.Sprintf("mongodb://%s:%s@%s:%v", config.Envs.DBUser, config.Envs.DBPassword, config.Envs.DBHost, config.Envs.DBPort)

	clientOptions := options.Client().ApplyURI(uri)
	var err error
	mongoClient, err = mongo.Connect(ctx, clientOptions)
	if err != nil {
		appLogger.Printf("Failed to connect to MongoDB: %v", err)
		os.Exit(1)
	}
	if err = mongoClient.Ping(ctx, nil); err != nil {
		appLogger.Printf("MongoDB ping failed: %v", err)
		os.Exit(1)
	}
	appLogger.Println("Connected to MongoDB")
}

func initRedis(ctx context.Context) {
	redisClient = redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", config.Envs.RedisHost, config.Envs.RedisPort),
		Password: config.Envs.RedisPassword,
	})
	if err := redisClient.Ping(ctx).Err(); err != nil {
		appLogger.Printf("Redis ping failed: %v", err)
		os.Exit(1)
	}
	appLogger.Println("Connected to Redis")
}

func initPlayerRepo(client *mongo.Client) {
	playerRepo = repo.NewPlayerRepo(client, config.Envs.DBName, "players")
	appLogger.Println("Player repository initialized")
}

func initJWTTokenizer() {
	jwtTokenizer = token.NewJwtService(config.Envs.JWTSecret, config.Envs.JWTIssuer)
	appLogger.Println("JWT Tokenizer initialized")
}

func initAuthService() {
	var err error
	authService, err = service.NewAuthService(playerRepo, jwtTokenizer)
	if err != nil {
		appLogger.Printf("Creating auth service: %v", err)
		os.Exit(1)
	}
	appLogger.Println("Auth service initialized")
}

func initAuthController() {
	authController = identity.NewIdentityServer(authService)
	appLogger.Println("Auth controller initialized")
}

func initSessionRegistry() {
	sessionLogger := newLogger("SESSION", config.ColorCyan)
	recorder := telemetry.NewLogRecorder(newLogger("TELEMETRY", config.ColorMagenta))

	var err error
	sessionRegistry, err = service.NewSessionRegistry(&service.RegistryConfig{
		MazeWidth:  config.Envs.MazeWidth,
		MazeHeight: config.Envs.MazeHeight,
		Recorder:   recorder,
		Logger:     sessionLogger,
	})
	if err != nil {
		appLogger.Printf("Creating session registry: %v", err)
		os.Exit(1)
	}
	appLogger.Println("Session registry initialized")
}

func initLeaderboard() {
	var err error
	rankStore, err = sortedstorage.NewRedisLeaderboard(redisClient, leaderboardKey)
	if err != nil {
		appLogger.Printf("Creating rank store: %v", err)
		os.Exit(1)
	}

	leaderboard, err = service.NewLeaderboardService(rankStore, playerRepo, newLogger("LEADERBOARD", config.ColorBlue))
	if err != nil {
		appLogger.Printf("Creating leaderboard service: %v", err)
		os.Exit(1)
	}
	appLogger.Println("Leaderboard initialized")
}

func initAnalyzer() {
	if config.Envs.AnalyzerURL == "" {
		appLogger.Println("No remote analyzer configured, using local classifier only")
		return
	}

	var err error
	remoteAnalyzer, err = analyzer.NewClient(config.Envs.AnalyzerURL)
	if err != nil {
		appLogger.Printf("Creating analyzer client: %v", err)
		os.Exit(1)
	}
	appLogger.Println("Remote analyzer client initialized")
}

func initAnalysisService() {
	var err error
	analysisService, err = service.NewAnalysisService(&service.AnalysisConfig{
		Analyzer:    remoteAnalyzer,
		Leaderboard: leaderboard,
		PlayerRepo:  playerRepo,
		Logger:      newLogger("ANALYSIS", config.ColorBlue),
	})
	if err != nil {
		appLogger.Printf("Creating analysis service: %v", err)
		os.Exit(1)
	}
	appLogger.Println("Analysis service initialized")
}

func initGameController() {
	var err error
	gameController, err = gameapi.NewGameController(sessionRegistry, analysisService, leaderboard)
	if err != nil {
		appLogger.Printf("Creating game controller: %v", err)
		os.Exit(1)
	}
	appLogger.Println("Game controller initialized")
}

func initRouter(t i.Tokenizer) {
	router = api.NewRouter(api.Config{
		Addr:                    fmt.Sprintf("%s:%v", config.Envs.HostIP, config.Envs.RESTPort),
		BaseURL:                 "/api",
		Controllers:             []api_i.Controller{authController, gameController},
		AuthorizationMiddleware: identity.Authoriz(t),
	})
	appLogger.Println("Router initialized")
}

func main() {
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel() // Ensure the context is always canceled

	// Initialize dependencies
	appLogger = newLogger("APP", config.ColorGreen)
	config.Load()
	gin.SetMode(config.Envs.GinMode)

	initMongo(ctx)
	defer func() {
		_ = mongoClient.Disconnect(ctx)
	}()

	initRedis(ctx)
	defer redisClient.Close()

	initPlayerRepo(mongoClient)
	initJWTTokenizer()
	initAuthService()
	initAuthController()
	initSessionRegistry()
	initLeaderboard()
	initAnalyzer()
	initAnalysisService()
	initGameController()
	initRouter(jwtTokenizer)

	// Run HTTP server
	if err := router.Run(); err != nil {
		appLogger.Printf("Starting server: %v", err)
		os.Exit(1)
	}

	// Allow time for cleanup operations (TODO: use WaitGroups instead)
	time.Sleep(2 * time.Second)
}
