package bootstrap

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/navassist/nav-backend/internal/obstacle"
)

// ObstacleConfig is loaded once at startup and passed explicitly; nothing
// reads the environment after boot.
type ObstacleConfig struct {
	ServerAddr string

	GoogleAPIKey  string
	Model         string
	VisionTimeout time.Duration

	MaxFrameBytes int64

	RedisAddr string
	FrameTTL  time.Duration

	LogLevel string
}

type TokenConfig struct {
	ServerAddr string

	LiveKitURL       string
	LiveKitAPIKey    string
	LiveKitAPISecret string
	RoomName         string

	LogLevel string
}

func LoadObstacleConfig() *ObstacleConfig {
	loadDotEnv()

	return &ObstacleConfig{
		ServerAddr: ":" + getEnv("OBSTACLE_SERVER_PORT", "8766"),

		GoogleAPIKey:  strings.TrimSpace(os.Getenv("GOOGLE_API_KEY")),
		Model:         getEnv("GEMINI_MODEL", ""),
		VisionTimeout: time.Duration(getEnvInt("VISION_TIMEOUT_SECONDS", 30)) * time.Second,

		MaxFrameBytes: int64(getEnvInt("OBSTACLE_FRAME_MAX_BYTES", obstacle.DefaultMaxFrameBytes)),

		RedisAddr: getEnv("REDIS_ADDR", ""),
		FrameTTL:  time.Duration(getEnvInt("FRAME_TTL_SECONDS", 60)) * time.Second,

		LogLevel: getEnv("LOG_LEVEL", "info"),
	}
}

func LoadTokenConfig() *TokenConfig {
	loadDotEnv()

	return &TokenConfig{
		ServerAddr: ":" + getEnv("TOKEN_SERVER_PORT", "8765"),

		LiveKitURL:       strings.TrimRight(getEnv("LIVEKIT_URL", ""), "/"),
		LiveKitAPIKey:    getEnv("LIVEKIT_API_KEY", ""),
		LiveKitAPISecret: getEnv("LIVEKIT_API_SECRET", ""),
		RoomName:         getEnv("LIVEKIT_ROOM_NAME", "voice-nav"),

		LogLevel: getEnv("LOG_LEVEL", "info"),
	}
}

// loadDotEnv mirrors the mobile deployment convention of keeping local
// credentials in .env.local; a missing file is not an error.
func loadDotEnv() {
	_ = godotenv.Load(".env.local")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}
