package bootstrap

import (
	"context"
	"log/slog"

	"github.com/labstack/echo/v4"
	"github.com/navassist/nav-backend/internal/health"
	"github.com/navassist/nav-backend/internal/token"
	"go.uber.org/fx"
)

func ProvideTokenLogger(cfg *TokenConfig) *slog.Logger {
	return newLogger(cfg.LogLevel)
}

func ProvideTokenService(cfg *TokenConfig) *token.Service {
	return token.NewService(cfg.LiveKitAPIKey, cfg.LiveKitAPISecret, cfg.LiveKitURL, cfg.RoomName)
}

func ProvideTokenHandler(service *token.Service, logger *slog.Logger) *token.Handler {
	return token.NewHandler(service, logger)
}

func ProvideTokenHealth(cfg *TokenConfig) *health.Handler {
	return health.NewHandler(health.Check{
		Name: "livekit",
		Fn: func(ctx context.Context) health.ComponentStatus {
			if cfg.LiveKitURL == "" || cfg.LiveKitAPIKey == "" || cfg.LiveKitAPISecret == "" {
				return health.ComponentStatus{
					Status: health.StatusUnhealthy,
					Error:  "LIVEKIT_URL, LIVEKIT_API_KEY and LIVEKIT_API_SECRET must be set",
				}
			}
			return health.ComponentStatus{Status: health.StatusHealthy}
		},
	})
}

func RegisterTokenRoutes(e *echo.Echo, handler *token.Handler, healthHandler *health.Handler) {
	handler.RegisterRoutes(e)
	healthHandler.RegisterRoutes(e)
}

func StartTokenServer(lc fx.Lifecycle, e *echo.Echo, cfg *TokenConfig, logger *slog.Logger) {
	logger.Info("token server starting", "addr", cfg.ServerAddr, "room", cfg.RoomName)
	startServer(lc, e, cfg.ServerAddr)
}

func RunToken() {
	fx.New(
		fx.Provide(
			LoadTokenConfig,
			ProvideTokenLogger,
			ProvideTokenService,
			ProvideTokenHandler,
			ProvideTokenHealth,
			NewEchoServer,
		),
		fx.Invoke(RegisterTokenRoutes, StartTokenServer),
	).Run()
}
