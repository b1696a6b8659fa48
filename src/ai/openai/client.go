package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/stake-plus/claimcheck/src/ai/core"
	"github.com/stake-plus/claimcheck/src/webclient"
)

const (
	defaultBaseURL   = "https://api.openai.com/v1"
	defaultModelName = "gpt-4o-mini"
	defaultMaxTokens = 1024
)

func init() {
	core.RegisterProvider("openai", newClient, "gpt4o")
}

type client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	defaults   core.Options
}

func newClient(cfg core.FactoryConfig) (core.Client, error) {
	if cfg.OpenAIKey == "" {
		return nil, fmt.Errorf("openai: API key not configured")
	}

	return &client{
		apiKey:     cfg.OpenAIKey,
		baseURL:    defaultBaseURL,
		httpClient: webclient.NewDefault(60 * time.Second),
		defaults: core.Options{
			Model:               valueOrDefault(cfg.Model, defaultModelName),
			Temperature:         cfg.Temperature,
			MaxCompletionTokens: valueOrDefaultInt(cfg.MaxCompletionTokens, defaultMaxTokens),
			SystemPrompt:        cfg.SystemPrompt,
		},
	}, nil
}

func (c *client) Reason(ctx context.Context, prompt string, opts core.Options) (string, error) {
	merged := c.merge(opts)

	messages := []map[string]string{}
	if strings.TrimSpace(merged.SystemPrompt) != "" {
		messages = append(messages, map[string]string{"role": "system", "content": merged.SystemPrompt})
	}
	messages = append(messages, map[string]string{"role": "user", "content": prompt})

	reqBody := map[string]interface{}{
		"model":                 merged.Model,
		"messages":              messages,
		"temperature":           merged.Temperature,
		"max_completion_tokens": merged.MaxCompletionTokens,
	}
	bodyBytes, _ := json.Marshal(reqBody)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewBuffer(bodyBytes))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("openai API error: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("openai API error: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("openai API error: status %d", resp.StatusCode)
	}

	var result struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return "", fmt.Errorf("openai: decode: %w", err)
	}
	if len(result.Choices) == 0 {
		return "", fmt.Errorf("openai: empty response")
	}
	return result.Choices[0].Message.Content, nil
}

func (c *client) merge(opts core.Options) core.Options {
	out := c.defaults
	if strings.TrimSpace(opts.Model) != "" {
		out.Model = opts.Model
	}
	if opts.Temperature != 0 {
		out.Temperature = opts.Temperature
	}
	if opts.MaxCompletionTokens != 0 {
		out.MaxCompletionTokens = opts.MaxCompletionTokens
	}
	if strings.TrimSpace(opts.SystemPrompt) != "" {
		out.SystemPrompt = opts.SystemPrompt
	}
	return out
}

func valueOrDefault(v, def string) string {
	if strings.TrimSpace(v) != "" {
		return v
	}
	return def
}

func valueOrDefaultInt(v, def int) int {
	if v > 0 {
		return v
	}
	return def
}
