package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"gorm.io/gorm"

	aicore "github.com/stake-plus/claimcheck/src/ai/core"
	_ "github.com/stake-plus/claimcheck/src/ai/providers"

	"github.com/stake-plus/claimcheck/src/CCApi/data"
	"github.com/stake-plus/claimcheck/src/CCBot/bot"
	"github.com/stake-plus/claimcheck/src/CCBot/config"
	"github.com/stake-plus/claimcheck/src/search"
	"github.com/stake-plus/claimcheck/src/verifier"
)

func main() {
	var db *gorm.DB
	if dsn := os.Getenv("MYSQL_DSN"); dsn != "" {
		var err error
		db, err = data.ConnectMySQL(dsn)
		if err != nil {
			log.Fatalf("db: %v", err)
		}
		if err := data.LoadSettings(db); err != nil {
			log.Printf("Failed to load settings: %v", err)
		}
	}

	cfg := config.Load(db)
	if cfg.SerpAPIKey == "" {
		log.Fatalf("SERPAPI_API_KEY is not configured")
	}

	aiClient, err := aicore.NewClient(aicore.FactoryConfig{
		Provider:  cfg.AIProvider,
		Model:     cfg.AIModel,
		GeminiKey: cfg.GeminiKey,
		OpenAIKey: cfg.OpenAIKey,
	})
	if err != nil {
		log.Fatalf("ai client: %v", err)
	}

	searchClient := search.NewClient(cfg.SerpAPIKey, cfg.VerifyTimeout)
	vf := verifier.New(searchClient, aiClient, cfg.VerifyTimeout)

	botCfg := bot.Config{
		Token:             cfg.Token,
		Command:           cfg.VerifyCommand,
		AnnounceChannelID: cfg.AnnounceChannelID,
		VerifyTimeout:     cfg.VerifyTimeout,
		UserCooldown:      cfg.UserCooldown,
		Verifier:          vf,
	}
	if cfg.RedisURL != "" {
		botCfg.Redis = data.MustRedis(cfg.RedisURL)
	}

	b, err := bot.New(botCfg)
	if err != nil {
		log.Fatalf("bot: %v", err)
	}
	if err := b.Start(); err != nil {
		log.Fatalf("bot start: %v", err)
	}
	log.Printf("ClaimCheck bot running (command: %s)", cfg.VerifyCommand)

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig

	_ = b.Stop()
}
