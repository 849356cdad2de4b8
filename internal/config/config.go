// Package config loads the dashboard configuration from .env files and
// environment variables.
package config

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// AppConfig holds the complete application configuration.
type AppConfig struct {
	// APIBase is the metrics backend base URL.
	APIBase string
	// ListenAddr is the dashboard bind address.
	ListenAddr string
	// ForceMock disables the live backend entirely and serves fixtures.
	ForceMock bool
	// MockDelayScale scales the simulated mock latency; 0 disables it.
	MockDelayScale float64
	// LogDir is where rotating log files are written.
	LogDir string
}

// Load loads the configuration from .env files and environment variables.
func Load() (*AppConfig, error) {
	// 1. Try to load from the executable's directory first so double-clicked
	// binaries pick up their sibling .env.
	exePath, err := os.Executable()
	exeDir := ""
	if err == nil {
		exeDir = filepath.Dir(exePath)
		envPath := filepath.Join(exeDir, ".env")
		if err := godotenv.Load(envPath); err == nil {
			log.Debug().Str("path", envPath).Msg("Loaded configuration from binary directory")
		}
	}

	// 2. Fallback to current working directory (useful for development/go run)
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("No .env file found in working directory, relying on environment variables or binary-relative .env")
	}

	logDir := os.Getenv("LOGS_FOLDER")
	if logDir == "" {
		if exeDir != "" {
			logDir = filepath.Join(exeDir, "logs")
		} else {
			logDir = "logs"
		}
	}

	delayScale := 1.0
	if raw, ok := os.LookupEnv("MOCK_DELAY_SCALE"); ok {
		if parsed, err := strconv.ParseFloat(raw, 64); err == nil && parsed >= 0 {
			delayScale = parsed
		} else {
			log.Warn().Str("value", raw).Msg("Ignoring invalid MOCK_DELAY_SCALE")
		}
	}

	cfg := &AppConfig{
		APIBase:        getEnv("API_BASE", "http://127.0.0.1:5000"),
		ListenAddr:     getEnv("LISTEN_ADDR", ":8080"),
		ForceMock:      getEnvBool("FORCE_MOCK", false),
		MockDelayScale: delayScale,
		LogDir:         logDir,
	}
	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return fallback
}
