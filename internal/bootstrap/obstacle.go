package bootstrap

import (
	"context"
	"log/slog"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/navassist/nav-backend/internal/health"
	"github.com/navassist/nav-backend/internal/obstacle"
	"github.com/navassist/nav-backend/internal/vision"
	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

func ProvideObstacleLogger(cfg *ObstacleConfig) *slog.Logger {
	return newLogger(cfg.LogLevel)
}

// ProvideModelClient returns nil when no API key is configured; the analyzer
// then short-circuits every call to the default result.
func ProvideModelClient(cfg *ObstacleConfig) (*vision.Client, error) {
	if cfg.GoogleAPIKey == "" {
		return nil, nil
	}
	return vision.NewClient(context.Background(), vision.Config{
		APIKey:  cfg.GoogleAPIKey,
		Model:   cfg.Model,
		Timeout: cfg.VisionTimeout,
	})
}

func ProvideRedis(lc fx.Lifecycle, cfg *ObstacleConfig) *redis.Client {
	if cfg.RedisAddr == "" {
		return nil
	}
	client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return client.Close()
		},
	})
	return client
}

func ProvideFrameStore(client *redis.Client, cfg *ObstacleConfig) *vision.Store {
	if client == nil {
		return nil
	}
	return vision.NewStore(client, cfg.FrameTTL)
}

func ProvideAnalyzer(client *vision.Client, logger *slog.Logger) *obstacle.Analyzer {
	// A typed nil *vision.Client must stay a nil interface for the
	// analyzer's credential check.
	var model obstacle.ModelClient
	if client != nil {
		model = client
	}
	return obstacle.NewAnalyzer(model, logger)
}

func ProvideFrameHandler(analyzer *obstacle.Analyzer, store *vision.Store, cfg *ObstacleConfig, logger *slog.Logger) *obstacle.Handler {
	var archive obstacle.FrameArchive
	if store != nil {
		archive = store
	}
	return obstacle.NewHandler(analyzer, archive, cfg.MaxFrameBytes, logger)
}

func ProvideObstacleHealth(client *redis.Client, cfg *ObstacleConfig) *health.Handler {
	checks := []health.Check{
		{Name: "model", Fn: checkModelCredential(cfg)},
	}
	if client != nil {
		checks = append(checks, health.Check{Name: "redis", Fn: checkRedis(client)})
	}
	return health.NewHandler(checks...)
}

func checkModelCredential(cfg *ObstacleConfig) func(context.Context) health.ComponentStatus {
	return func(ctx context.Context) health.ComponentStatus {
		if cfg.GoogleAPIKey == "" {
			return health.ComponentStatus{
				Status: health.StatusDegraded,
				Error:  "GOOGLE_API_KEY not set",
			}
		}
		return health.ComponentStatus{Status: health.StatusHealthy}
	}
}

func checkRedis(client *redis.Client) func(context.Context) health.ComponentStatus {
	return func(ctx context.Context) health.ComponentStatus {
		start := time.Now()
		if err := client.Ping(ctx).Err(); err != nil {
			return health.ComponentStatus{
				Status:    health.StatusUnhealthy,
				LatencyMs: time.Since(start).Milliseconds(),
				Error:     "ping failed",
			}
		}
		return health.ComponentStatus{
			Status:    health.StatusHealthy,
			LatencyMs: time.Since(start).Milliseconds(),
		}
	}
}

func RegisterObstacleRoutes(e *echo.Echo, handler *obstacle.Handler, healthHandler *health.Handler) {
	handler.RegisterRoutes(e)
	healthHandler.RegisterRoutes(e)
}

func StartObstacleServer(lc fx.Lifecycle, e *echo.Echo, cfg *ObstacleConfig, logger *slog.Logger) {
	logger.Info("obstacle server starting", "addr", cfg.ServerAddr, "model_configured", cfg.GoogleAPIKey != "")
	startServer(lc, e, cfg.ServerAddr)
}

func RunObstacle() {
	fx.New(
		fx.Provide(
			LoadObstacleConfig,
			ProvideObstacleLogger,
			ProvideModelClient,
			ProvideRedis,
			ProvideFrameStore,
			ProvideAnalyzer,
			ProvideFrameHandler,
			ProvideObstacleHealth,
			NewEchoServer,
		),
		fx.Invoke(RegisterObstacleRoutes, StartObstacleServer),
	).Run()
}
