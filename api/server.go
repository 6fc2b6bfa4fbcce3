package api

import (
	"context"
	"errors"
	"fmt"
	"github.com/Ahmedouyahya/Podium-de-concours/api/controllers"
	"github.com/Ahmedouyahya/Podium-de-concours/api/transport"
	"github.com/Ahmedouyahya/Podium-de-concours/auth"
	"github.com/Ahmedouyahya/Podium-de-concours/competition"
	"github.com/Ahmedouyahya/Podium-de-concours/logging"
	"github.com/Ahmedouyahya/Podium-de-concours/realtime"
	"github.com/Ahmedouyahya/Podium-de-concours/storage"
	"github.com/Ahmedouyahya/Podium-de-concours/storage/redisrank"
	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	ginadapter "github.com/awslabs/aws-lambda-go-api-proxy/gin"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
)

type Server struct {
	config *Config
}

func NewServer(config *Config) *Server {
	return &Server{
		config: config,
	}
}

func (s *Server) Start() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	repo, err := OpenRepository(ctx, s.config.StorageConfig)
	if err != nil {
		logging.Log.Fatalf("STORAGE: failed to open %s backend: %v", s.config.Backend, err)
	}
	defer func() {
		if err := repo.Close(); err != nil {
			logging.Log.Errorf("STORAGE: close failed: %v", err)
		}
	}()

	hub := realtime.NewHub()
	hub.AllowedOrigins = s.config.AllowedOrigins
	go hub.Run(ctx)

	notifier := s.notifier(ctx, repo, hub)
	services := competition.NewServices(repo, notifier)

	retention, err := competition.NewRetention(repo.Activities, s.config.ActivityRetention, s.config.ActivityPruneInterval)
	if err != nil {
		logging.Log.Fatalf("ACTIVITY: failed to create retention scheduler: %v", err)
	}
	if err := retention.Start(); err != nil {
		logging.Log.Fatalf("ACTIVITY: failed to start retention job: %v", err)
	}
	defer func() {
		if err := retention.Stop(); err != nil {
			logging.Log.Errorf("ACTIVITY: failed to stop retention job: %v", err)
		}
	}()

	if s.config.Metrics {
		transport.InitPrometheus(append(competition.Collectors(), realtime.Collectors()...)...)
	}

	r := transport.NewRouter(transport.RouterOptions{
		GinMode:        s.config.GinMode,
		AllowedOrigins: s.config.AllowedOrigins,
		Swagger:        s.config.Swagger,
		Metrics:        s.config.Metrics,
	})

	issuer := auth.NewIssuer(s.config.JWTSecret, s.config.TokenTTL)
	authn := transport.NewAuthenticator(issuer, repo.Users)
	limiter := transport.NewRateLimiter(s.config.RateLimitRPS, s.config.RateLimitBurst)
	go limiter.Cleanup(ctx)

	//Register controllers
	controllers.NewHealthController(string(repo.Mode)).RegisterRoutes(r)
	controllers.NewAuthController(services.Accounts, services.Leaderboard, issuer, authn, limiter).RegisterRoutes(r)
	controllers.NewUserController(services.Accounts, authn).RegisterRoutes(r)
	controllers.NewTeamController(services.Roster, services.Leaderboard, authn).RegisterRoutes(r)
	controllers.NewScoreController(services.Ledger, services.Leaderboard, authn).RegisterRoutes(r)
	controllers.NewChallengeController(services.Challenges, authn).RegisterRoutes(r)
	controllers.NewActivityController(services.Recorder, services.Leaderboard).RegisterRoutes(r)
	controllers.NewSubmissionController(services.Submissions, authn).RegisterRoutes(r)
	controllers.NewRealtimeController(hub).RegisterRoutes(r)

	if s.config.Mode == ServerModeLambda {
		startLambda(r)
		return
	}
	startLocal(ctx, r, s.config.Port, s.config.ShutdownGrace)
}

// notifier fans hints out through Redis when enabled so that every replica's
// subscribers see them. The rank baseline moves to Redis as well.
func (s *Server) notifier(ctx context.Context, repo *storage.Repository, hub *realtime.Hub) competition.Notifier {
	if !s.config.RedisEnabled {
		return hub
	}

	client := redis.NewClient(&redis.Options{
		Addr:     s.config.RedisAddr,
		Password: s.config.RedisPassword,
		DB:       s.config.RedisDB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		logging.Log.Warnf("HUB: redis unavailable at %s, using local hub only: %v", s.config.RedisAddr, err)
		_ = client.Close()
		return hub
	}
	logging.Log.Infof("HUB: redis connected at %s", s.config.RedisAddr)

	repo.Ranks = redisrank.New(client, "")
	repo.OnClose(client.Close)

	bridge := realtime.NewRedisBridge(client, s.config.RealtimeChannel, hub)
	go bridge.Run(ctx)
	return bridge
}

// StartLambda sets up for AWS Lambda
func startLambda(engine *gin.Engine) {
	ginLambda := ginadapter.NewV2(engine)

	handler := func(ctx context.Context, req events.APIGatewayV2HTTPRequest) (events.APIGatewayV2HTTPResponse, error) {
		logging.Log.Debugf("Lambda handler triggered on path: %s", req.RawPath)
		return ginLambda.ProxyWithContext(ctx, req)
	}

	logging.Log.Info("Starting lambda")
	lambda.Start(handler)
}

// startLocal serves HTTP until ctx is cancelled, then drains in-flight requests.
func startLocal(ctx context.Context, engine *gin.Engine, port int, grace time.Duration) {
	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logging.Log.Infof("Starting server on http://localhost:%d", port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Log.Fatalf("Failed to run server: %v", err)
		}
	}()

	<-ctx.Done()
	logging.Log.Info("Shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), grace)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logging.Log.Errorf("Server forced to shutdown: %v", err)
	}
}
