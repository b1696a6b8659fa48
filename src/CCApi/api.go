package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	aicore "github.com/stake-plus/claimcheck/src/ai/core"
	_ "github.com/stake-plus/claimcheck/src/ai/providers"

	"github.com/stake-plus/claimcheck/src/CCApi/config"
	"github.com/stake-plus/claimcheck/src/CCApi/data"
	"github.com/stake-plus/claimcheck/src/CCApi/session"
	"github.com/stake-plus/claimcheck/src/CCApi/webserver"
	"github.com/stake-plus/claimcheck/src/search"
	"github.com/stake-plus/claimcheck/src/verifier"
)

func main() {
	// MySQL only carries the settings table and is optional.
	var db *gorm.DB
	if dsn := os.Getenv("MYSQL_DSN"); dsn != "" {
		var err error
		db, err = data.ConnectMySQL(dsn)
		if err != nil {
			log.Fatalf("db: %v", err)
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

	var rdb *redis.Client
	var store session.Store
	if cfg.RedisURL != "" {
		rdb = data.MustRedis(cfg.RedisURL)
		store = session.NewRedisStore(rdb, cfg.SessionTTL)
		log.Printf("Using Redis conversation store")
	} else {
		store = session.NewMemoryStore(cfg.SessionTTL)
		log.Printf("REDIS_URL not set; using in-memory conversation store")
	}

	router := webserver.New(cfg, store, vf, rdb)

	// Write timeout must outlast a full verification round trip.
	httpSrv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.VerifyTimeout + 15*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Starting HTTP server on port %s", cfg.Port)
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("http: %v", err)
		}
	}()

	log.Printf("ClaimCheck API listening on %s (provider: %s)", cfg.Port, cfg.AIProvider)

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig

	shutCtx, cancelShut := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShut()
	_ = httpSrv.Shutdown(shutCtx)
}
