package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	Server  ServerConfig
	Game    GameConfig
	AI      AIConfig
	Logging LoggingConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port string
	Host string
	Env  string // "development" or "production"
}

// GameConfig holds game-related configuration. Values are fixed into a room
// at creation time; changing them only affects rooms created afterwards.
type GameConfig struct {
	Rounds         int
	TimeLimit      time.Duration
	PromptsCount   int
	MaxPlayers     int
	MinNameLength  int
	RoomCodeLength int
	StaleRoomTTL   time.Duration
}

// AIConfig holds prompt-generation configuration
type AIConfig struct {
	Provider       string // "openai" or "deepseek"
	APIKey         string
	RequestTimeout time.Duration
}

// LoggingConfig holds logging-related configuration
type LoggingConfig struct {
	Level  string
	Format string // "json" or "text"
}

// Load loads configuration from a .env file (if present) and environment
// variables, with defaults matching the stock game setup.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Server: ServerConfig{
			Port: getEnv("PORT", "3001"),
			Host: getEnv("HOST", "0.0.0.0"),
			Env:  getEnv("ENV", "development"),
		},
		Game: GameConfig{
			Rounds:         getEnvInt("ROUNDS", 3),
			TimeLimit:      time.Duration(getEnvInt("ROUND_TIME_LIMIT_SECONDS", 60)) * time.Second,
			PromptsCount:   getEnvInt("PROMPTS_COUNT", 5),
			MaxPlayers:     getEnvInt("MAX_PLAYERS", 10),
			MinNameLength:  getEnvInt("MIN_NAME_LENGTH", 2),
			RoomCodeLength: getEnvInt("ROOM_CODE_LENGTH", 6),
			StaleRoomTTL:   time.Duration(getEnvInt("STALE_ROOM_TTL_MINUTES", 120)) * time.Minute,
		},
		AI: AIConfig{
			Provider:       getEnv("AI_PROVIDER", "openai"),
			APIKey:         firstEnv("AI_API_KEY", "OPENAI_API_KEY", "DEEPSEEK_API_KEY"),
			RequestTimeout: time.Duration(getEnvInt("AI_REQUEST_TIMEOUT_SECONDS", 20)) * time.Second,
		},
		Logging: LoggingConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "text"),
		},
	}
}

// IsDevelopment returns true if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Server.Env == "development"
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	return c.Server.Env == "production"
}

// GetAddr returns the server address in host:port format
func (c *Config) GetAddr() string {
	return c.Server.Host + ":" + c.Server.Port
}

// getEnv returns an environment variable or a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvInt returns an environment variable as an integer or a default value
func getEnvInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// firstEnv returns the value of the first key that is set and non-empty
func firstEnv(keys ...string) string {
	for _, key := range keys {
		if value, exists := os.LookupEnv(key); exists && value != "" {
			return value
		}
	}
	return ""
}
