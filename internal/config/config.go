package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	// Server
	APIPort            string
	BackendAPIKey      string // API key for authenticating requests (empty = no auth, dev mode)
	CorsAllowedOrigins string // Comma-separated allowed origins (empty = *, dev mode)

	// Remote speech service
	// An empty base URL is not fatal: the catalog loader treats it as a
	// failed load and falls back to the built-in voice.
	SpeechServiceURL string

	// Input bounds
	MaxTextChars int // maximum characters accepted per synthesis request
	HistoryLimit int // maximum retained history entries per session

	// Rate limiting (requests per minute per IP on the synthesize route)
	SynthesizeRateLimit int
}

func Load() (*Config, error) {
	// Load .env file if it exists (ignore error in production)
	_ = godotenv.Load()

	cfg := &Config{
		APIPort:             getEnv("API_PORT", "8080"),
		BackendAPIKey:       getEnv("BACKEND_API_KEY", ""),
		CorsAllowedOrigins:  getEnv("CORS_ALLOWED_ORIGINS", ""),
		SpeechServiceURL:    getEnv("TTS_SERVICE_URL", ""),
		MaxTextChars:        getEnvInt("MAX_TEXT_CHARS", 600),
		HistoryLimit:        getEnvInt("HISTORY_LIMIT", 6),
		SynthesizeRateLimit: getEnvInt("SYNTH_RATE_LIMIT", 30),
	}

	if cfg.MaxTextChars <= 0 {
		cfg.MaxTextChars = 600
	}
	if cfg.HistoryLimit <= 0 {
		cfg.HistoryLimit = 6
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		i, err := strconv.Atoi(value)
		if err == nil {
			return i
		}
	}
	return defaultValue
}
