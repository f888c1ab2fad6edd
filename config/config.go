package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds the process settings, all sourced from the environment
type Config struct {
	// ListenAddr is the host:port the HTTP and WebSocket server binds to.
	ListenAddr string
	// DatabaseURL is the Postgres DSN for hand history. Empty disables
	// persistence; the server still deals and evaluates hands.
	DatabaseURL string
	// EvaluatorURL is the base URL of the hand evaluation API. By default
	// it points back at this process, which serves the API itself.
	EvaluatorURL string
	// AutoMigrate applies the schema on startup when set.
	AutoMigrate bool
	// Debug enables full state dumps after every action.
	Debug bool
}

// Load reads configuration from the environment, honoring a .env file
// when present
func Load() Config {
	_ = godotenv.Load()

	port := getenv("PORT", "8080")
	addr := getenv("LISTEN_ADDR", "0.0.0.0:"+port)

	return Config{
		ListenAddr:   addr,
		DatabaseURL:  getenv("DATABASE_URL", ""),
		EvaluatorURL: getenv("EVALUATOR_URL", "http://localhost:"+port),
		AutoMigrate:  asBool(os.Getenv("AUTO_MIGRATE")),
		Debug:        asBool(os.Getenv("DEBUG")),
	}
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func asBool(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "yes", "on":
		return true
	}
	return false
}
