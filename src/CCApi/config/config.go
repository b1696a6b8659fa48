package config

import (
	"crypto/rand"
	"encoding/hex"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/stake-plus/claimcheck/src/CCApi/data"
	"gorm.io/gorm"
)

type Config struct {
	Port      string
	JWTSecret string
	RedisURL  string

	SerpAPIKey string
	GeminiKey  string
	OpenAIKey  string
	AIProvider string
	AIModel    string

	VerifyTimeout time.Duration
	SessionTTL    time.Duration
}

// Load builds the runtime configuration. Settings stored in MySQL win over
// environment variables; db may be nil for env-only deployments.
func Load(db *gorm.DB) Config {
	if db != nil {
		if err := data.LoadSettings(db); err != nil {
			log.Printf("Failed to load settings: %v", err)
		}
	}

	port := setting(db, "port", "PORT")
	if port == "" {
		port = "8080"
	}

	jwtSecret := setting(db, "jwt_secret", "JWT_SECRET")
	if jwtSecret == "" {
		// Ephemeral secret: sessions do not survive a restart, which is
		// acceptable because conversations are session-scoped anyway.
		jwtSecret = randomSecret()
		log.Printf("JWT_SECRET not set; generated an ephemeral secret")
	}

	provider := setting(db, "ai_provider", "AI_PROVIDER")
	if provider == "" {
		provider = "gemini"
	}

	return Config{
		Port:          port,
		JWTSecret:     jwtSecret,
		RedisURL:      setting(db, "redis_url", "REDIS_URL"),
		SerpAPIKey:    setting(db, "serpapi_api_key", "SERPAPI_API_KEY"),
		GeminiKey:     setting(db, "gemini_api_key", "GEMINI_API_KEY"),
		OpenAIKey:     setting(db, "openai_api_key", "OPENAI_API_KEY"),
		AIProvider:    provider,
		AIModel:       setting(db, "ai_model", "AI_MODEL"),
		VerifyTimeout: durationSetting(db, "verify_timeout_seconds", "VERIFY_TIMEOUT_SECONDS", 30*time.Second),
		SessionTTL:    durationSetting(db, "session_ttl_seconds", "SESSION_TTL_SECONDS", 2*time.Hour),
	}
}

func setting(db *gorm.DB, name, envKey string) string {
	if db != nil {
		if v := data.GetSetting(name); v != "" {
			return v
		}
	}
	return os.Getenv(envKey)
}

func durationSetting(db *gorm.DB, name, envKey string, def time.Duration) time.Duration {
	raw := setting(db, name, envKey)
	if raw == "" {
		return def
	}
	secs, err := strconv.Atoi(raw)
	if err != nil || secs <= 0 {
		log.Printf("invalid %s=%q, using default %s", name, raw, def)
		return def
	}
	return time.Duration(secs) * time.Second
}

func randomSecret() string {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		log.Fatalf("config: generate secret: %v", err)
	}
	return hex.EncodeToString(b)
}
