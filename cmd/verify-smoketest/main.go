package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	aicore "github.com/stake-plus/claimcheck/src/ai/core"
	_ "github.com/stake-plus/claimcheck/src/ai/providers"

	"github.com/stake-plus/claimcheck/src/CCApi/report"
	"github.com/stake-plus/claimcheck/src/search"
	"github.com/stake-plus/claimcheck/src/verifier"
)

var (
	claimFlag    = flag.String("claim", defaultClaim, "Claim to verify")
	providerFlag = flag.String("provider", "gemini", "AI provider (gemini|openai)")
	modelFlag    = flag.String("model", "", "Override model name")
	timeoutFlag  = flag.Duration("timeout", verifier.DefaultTimeout, "Verification timeout")
)

const defaultClaim = "The Great Wall of China is visible from space"

func main() {
	log.SetFlags(0)
	flag.Parse()

	serpKey := os.Getenv("SERPAPI_API_KEY")
	if serpKey == "" {
		log.Fatal("SERPAPI_API_KEY is not set")
	}

	aiClient, err := aicore.NewClient(aicore.FactoryConfig{
		Provider:  *providerFlag,
		Model:     *modelFlag,
		GeminiKey: os.Getenv("GEMINI_API_KEY"),
		OpenAIKey: os.Getenv("OPENAI_API_KEY"),
	})
	if err != nil {
		log.Fatalf("client init: %v", err)
	}

	vf := verifier.New(search.NewClient(serpKey, *timeoutFlag), aiClient, *timeoutFlag)

	ctx, cancel := context.WithTimeout(context.Background(), *timeoutFlag)
	defer cancel()

	fmt.Printf("=== %s ===\n", *providerFlag)
	start := time.Now()
	result, err := vf.Verify(ctx, strings.TrimSpace(*claimFlag))
	if err != nil {
		fmt.Printf("verify ❌ %v\n%s\n", err, report.ErrorMessage(err))
		os.Exit(1)
	}

	fmt.Printf("verify ✅ (%.1fs)\n\n%s\n", time.Since(start).Seconds(), report.Render(result).Markdown)
}
