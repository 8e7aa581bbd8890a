// Package config reads runtime configuration from the environment.
package config

import "os"

// Config carries every environment setting the feature layer consumes. All
// values are plain strings with empty defaults; absence is handled at the
// point of use, not here.
type Config struct {
	// ListenAddr is the HTTP listen address for cmd/server.
	ListenAddr string
	// APIBaseURL is the base URL client tools talk to, e.g. http://localhost:8080/api.
	APIBaseURL string
	// DatabaseURL selects Postgres storage when set; memory storage otherwise.
	DatabaseURL string
	// AuthSecret signs bearer tokens. Auth is disabled when empty.
	AuthSecret string
	// OpenAIAPIKey and AnthropicAPIKey are forwarded to transcript tooling.
	OpenAIAPIKey    string
	AnthropicAPIKey string
}

// FromEnv loads configuration from process environment variables.
func FromEnv() Config {
	return Config{
		ListenAddr:      getenv("LISTEN_ADDR", ":8080"),
		APIBaseURL:      os.Getenv("API_BASE_URL"),
		DatabaseURL:     os.Getenv("DATABASE_URL"),
		AuthSecret:      os.Getenv("AUTH_SECRET"),
		OpenAIAPIKey:    os.Getenv("OPENAI_API_KEY"),
		AnthropicAPIKey: os.Getenv("ANTHROPIC_API_KEY"),
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
