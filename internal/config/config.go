package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds every process-level setting. All values come from the
// environment; a .env file at the working directory is honored when present.
type Config struct {
	Port    string
	Mode    string // "debug" or "release"
	DBPath  string
	CORSOrigins []string

	// JWTSecret signs session tokens. JWTTTL bounds their validity.
	JWTSecret string
	JWTTTL    time.Duration

	// LLMProvider selects the chat-model backend: claude, openai or gemini.
	// FallbackAPIKey is the process-wide credential used when neither a
	// project-scoped nor a user-default key exists.
	LLMProvider    string
	LLMModel       string
	FallbackAPIKey string

	// Requests per minute for the default, generation and chat buckets.
	RateDefaultPerMin  int
	RateGeneratePerMin int
	RateChatPerMin     int
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Port:           getenv("PORT", "5000"),
		Mode:           getenv("APP_MODE", "debug"),
		DBPath:         getenv("DB_PATH", "caseforge.db"),
		CORSOrigins:    splitList(getenv("CORS_ORIGINS", "*")),
		JWTSecret:      os.Getenv("JWT_SECRET"),
		JWTTTL:         24 * time.Hour,
		LLMProvider:    getenv("LLM_PROVIDER", "claude"),
		LLMModel:       os.Getenv("LLM_MODEL"),
		FallbackAPIKey: firstNonEmpty(os.Getenv("LLM_API_KEY"), os.Getenv("CLAUDE_API_KEY")),

		RateDefaultPerMin:  getenvInt("RATE_DEFAULT_PER_MIN", 30),
		RateGeneratePerMin: getenvInt("RATE_GENERATE_PER_MIN", 5),
		RateChatPerMin:     getenvInt("RATE_CHAT_PER_MIN", 10),
	}

	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}
	switch cfg.LLMProvider {
	case "claude", "openai", "gemini":
	default:
		return nil, fmt.Errorf("unknown LLM_PROVIDER %q", cfg.LLMProvider)
	}
	if ttl := os.Getenv("JWT_TTL"); ttl != "" {
		d, err := time.ParseDuration(ttl)
		if err != nil {
			return nil, fmt.Errorf("parse JWT_TTL: %w", err)
		}
		cfg.JWTTTL = d
	}
	return cfg, nil
}

func getenv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func getenvInt(key string, fallback int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}

func splitList(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
