package config

import (
	"os"
	"strconv"
	"time"

	"github.com/stake-plus/claimcheck/src/CCApi/data"
	"gorm.io/gorm"
)

type Config struct {
	Token             string
	VerifyCommand     string
	AnnounceChannelID string
	RedisURL          string

	SerpAPIKey string
	GeminiKey  string
	OpenAIKey  string
	AIProvider string
	AIModel    string

	VerifyTimeout time.Duration
	UserCooldown  time.Duration
}

// Load builds the bot configuration; settings stored in MySQL win over
// environment variables, and db may be nil.
func Load(db *gorm.DB) Config {
	provider := setting(db, "ai_provider", "AI_PROVIDER")
	if provider == "" {
		provider = "gemini"
	}

	command := setting(db, "verify_command", "VERIFY_COMMAND")
	if command == "" {
		command = "!verify"
	}

	return Config{
		Token:             setting(db, "discord_token", "DISCORD_TOKEN"),
		VerifyCommand:     command,
		AnnounceChannelID: setting(db, "announce_channel_id", "ANNOUNCE_CHANNEL_ID"),
		RedisURL:          setting(db, "redis_url", "REDIS_URL"),
		SerpAPIKey:        setting(db, "serpapi_api_key", "SERPAPI_API_KEY"),
		GeminiKey:         setting(db, "gemini_api_key", "GEMINI_API_KEY"),
		OpenAIKey:         setting(db, "openai_api_key", "OPENAI_API_KEY"),
		AIProvider:        provider,
		AIModel:           setting(db, "ai_model", "AI_MODEL"),
		VerifyTimeout:     durationSetting(db, "verify_timeout_seconds", "VERIFY_TIMEOUT_SECONDS", 30*time.Second),
		UserCooldown:      durationSetting(db, "verify_cooldown_seconds", "VERIFY_COOLDOWN_SECONDS", 30*time.Second),
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
		return def
	}
	return time.Duration(secs) * time.Second
}
