package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Load reads the .env file specified by RKS_ENV (or .env by default),
// then loads the corresponding .secret file if it exists.
// All config is flat env vars read via os.Getenv after loading.
func Load() error {
	envFile := os.Getenv("RKS_ENV")
	if envFile == "" {
		envFile = ".env"
	}

	// Missing files are fine; real env vars always win over file values.
	_ = godotenv.Load(envFile)
	_ = godotenv.Load(envFile + ".secret")

	return nil
}

// DataDir is where the append-only logs live.
// Defaults to "data" if not set.
func DataDir() string {
	d := os.Getenv("RKS_DATA_DIR")
	if d == "" {
		return "data"
	}
	return d
}

func ServerPort() int {
	port, err := strconv.Atoi(os.Getenv("SERVER_PORT"))
	if err != nil {
		return 8080
	}
	return port
}

func ServerAddr() string {
	return fmt.Sprintf(":%d", ServerPort())
}

// RateLimitRPS returns requests per second limit.
// Defaults to 100 if not set.
func RateLimitRPS() float64 {
	rps, err := strconv.ParseFloat(os.Getenv("RATE_LIMIT_RPS"), 64)
	if err != nil || rps <= 0 {
		return 100
	}
	return rps
}

// RateLimitBurst returns the burst size for rate limiting.
// Defaults to 20 if not set.
func RateLimitBurst() int {
	burst, err := strconv.Atoi(os.Getenv("RATE_LIMIT_BURST"))
	if err != nil || burst <= 0 {
		return 20
	}
	return burst
}

// LogLevel returns the log level (debug, info, warn, error).
// Defaults to "info" if not set.
func LogLevel() string {
	level := os.Getenv("LOG_LEVEL")
	if level == "" {
		return "info"
	}
	return level
}

// APIToken is the bearer token required on /v1 routes. Empty disables auth.
func APIToken() string {
	return os.Getenv("RKS_API_TOKEN")
}

// RecentRunsLimit is how many runs the state view shows.
// Defaults to 20 if not set.
func RecentRunsLimit() int {
	n, err := strconv.Atoi(os.Getenv("RKS_RECENT_RUNS"))
	if err != nil || n <= 0 {
		return 20
	}
	return n
}
