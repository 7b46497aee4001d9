package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	// Server
	Port string
	Env  string

	// Session
	AuthSecret        string
	SessionTTLMinutes int

	// Single PoC account
	POCUser string
	POCPass string

	// OpenAI
	OpenAIAPIKey          string
	OpenAIModel           string
	OpenAIMaxOutputTokens int
	OpenAITimeoutSeconds  int

	// Frontend
	FrontendURL string

	// MissingKeys lists required environment variables that were absent
	// at load time. A non-empty list means the snapshot is degraded:
	// authentication and the relay fail closed off it.
	MissingKeys []string
}

func Load() *Config {
	// Load .env file if it exists
	godotenv.Load()

	cfg := &Config{
		Port:                  getEnvOrDefault("PORT", "8080"),
		Env:                   getEnvOrDefault("ENV", "development"),
		AuthSecret:            getAuthSecret(),
		SessionTTLMinutes:     getEnvAsIntOrDefault("SESSION_TTL_MINUTES", 720),
		POCUser:               os.Getenv("POC_USER"),
		POCPass:               os.Getenv("POC_PASS"),
		OpenAIAPIKey:          os.Getenv("OPENAI_API_KEY"),
		OpenAIModel:           getEnvOrDefault("OPENAI_MODEL", "gpt-5-mini"),
		OpenAIMaxOutputTokens: getEnvAsIntOrDefault("OPENAI_MAX_OUTPUT_TOKENS", 300),
		OpenAITimeoutSeconds:  getEnvAsIntOrDefault("OPENAI_TIMEOUT_SECONDS", 60),
		FrontendURL:           getEnvOrDefault("FRONTEND_URL", "http://localhost:3000"),
	}

	if cfg.AuthSecret == "" {
		cfg.MissingKeys = append(cfg.MissingKeys, "AUTH_SECRET")
	}
	if cfg.POCUser == "" {
		cfg.MissingKeys = append(cfg.MissingKeys, "POC_USER")
	}
	if cfg.POCPass == "" {
		cfg.MissingKeys = append(cfg.MissingKeys, "POC_PASS")
	}
	if cfg.OpenAIAPIKey == "" {
		cfg.MissingKeys = append(cfg.MissingKeys, "OPENAI_API_KEY")
	}

	// Diagnostic only: a missing value degrades the affected feature, it
	// never crashes the process.
	if len(cfg.MissingKeys) > 0 {
		log.Printf("⚠ Missing required environment variables: %v", cfg.MissingKeys)
	}

	return cfg
}

// getAuthSecret resolves the session signing secret. AUTH_SECRET wins;
// NEXTAUTH_SECRET is honored for deployments still using the old name.
func getAuthSecret() string {
	if v := os.Getenv("AUTH_SECRET"); v != "" {
		return v
	}
	return os.Getenv("NEXTAUTH_SECRET")
}

// Misconfigured reports whether any required value was absent at load time.
func (c *Config) Misconfigured() bool {
	return len(c.MissingKeys) > 0
}

// AuthReady reports whether every value the authenticator depends on is
// present. Authentication must fail closed when this is false.
func (c *Config) AuthReady() bool {
	return c.AuthSecret != "" && c.POCUser != "" && c.POCPass != ""
}

// ProviderReady reports whether the relay can reach the model provider.
func (c *Config) ProviderReady() bool {
	return c.OpenAIAPIKey != ""
}

func getEnvOrDefault(key, defaultVal string) string {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func getEnvAsIntOrDefault(key string, defaultVal int) int {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}
	return n
}
