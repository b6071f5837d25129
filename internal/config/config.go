package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/plus3/blockfall/driver"
)

type Config struct {
	// Board
	Width       int
	Height      int
	QueueLength int
	LockDelay   int

	// Game
	Variant string
	Seed    string

	// Replays
	ReplayDir string
	RedisURL  string

	// Spectating
	ServeAddr string

	// Logging
	LogLevel  string
	LogFormat string
}

func Load() *Config {
	// Load .env file if it exists
	godotenv.Load()

	return &Config{
		Width:       getEnvInt("BLOCKFALL_WIDTH", 10),
		Height:      getEnvInt("BLOCKFALL_HEIGHT", 20),
		QueueLength: getEnvInt("BLOCKFALL_QUEUE", 3),
		LockDelay:   getEnvInt("BLOCKFALL_LOCK_DELAY", 30),

		Variant: getEnv("BLOCKFALL_VARIANT", "classic"),
		Seed:    getEnv("BLOCKFALL_SEED", ""),

		ReplayDir: getEnv("BLOCKFALL_REPLAY_DIR", "replays"),
		RedisURL:  getEnv("REDIS_URL", ""),

		ServeAddr: getEnv("BLOCKFALL_SERVE_ADDR", ""),

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "text"),
	}
}

// Driver returns the driver settings. Gravity and the catalog keep their defaults.
func (c *Config) Driver() driver.Config {
	cfg := driver.DefaultConfig()
	cfg.Width = c.Width
	cfg.Height = c.Height
	cfg.QueueLength = c.QueueLength
	cfg.LockDelay = c.LockDelay
	if c.Seed != "" {
		cfg.Seed = []byte(c.Seed)
	}
	return cfg
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}
