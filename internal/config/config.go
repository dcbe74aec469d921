package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

type Config struct {
	HTTPAddr string
	LogLevel zerolog.Level

	JWTSecret string

	TurnTimeout      time.Duration
	FirstTurnTimeout time.Duration
	MinStake         int64

	// LedgerDSN is a sqlite path; empty selects the in-memory ledger.
	LedgerDSN     string
	LedgerTimeout time.Duration
	StartingCoins int64
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int64) int64 {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.ParseInt(v, 10, 64); err == nil {
			return i
		}
	}
	return def
}

func getenvMillis(key string, def int64) time.Duration {
	return time.Duration(getenvInt(key, def)) * time.Millisecond
}

// Load reads the environment, after merging an optional .env file from the
// working directory. Variables already set take precedence over the file.
func Load() Config {
	_ = godotenv.Load()

	level, err := zerolog.ParseLevel(getenv("LOG_LEVEL", "info"))
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}

	return Config{
		HTTPAddr:         getenv("HTTP_ADDR", ":8200"),
		LogLevel:         level,
		JWTSecret:        getenv("JWT_SECRET", "dev_secret_change_me"),
		TurnTimeout:      getenvMillis("TURN_TIMEOUT_MS", 15000),
		FirstTurnTimeout: getenvMillis("FIRST_TURN_TIMEOUT_MS", 19000),
		MinStake:         getenvInt("MIN_STAKE", 5),
		LedgerDSN:        getenv("LEDGER_DSN", ""),
		LedgerTimeout:    getenvMillis("LEDGER_TIMEOUT_MS", 5000),
		StartingCoins:    getenvInt("STARTING_COINS", 0),
	}
}
