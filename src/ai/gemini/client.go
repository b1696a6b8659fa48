package gemini

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
	defaultBaseURL   = "https://generativelanguage.googleapis.com/v1beta"
	defaultModelName = "gemini-2.5-flash"
	defaultMaxTokens = 1024
)

func init() {
	core.RegisterProvider("gemini", newClient, "gemini25")
}

type client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	defaults   core.Options
}

func newClient(cfg core.FactoryConfig) (core.Client, error) {
	if cfg.GeminiKey == "" {
		return nil, fmt.Errorf("gemini: API key not configured")
	}

	model := cfg.Model
	if strings.TrimSpace(model) == "" {
		model = defaultModelName
	}

	return &client{
		apiKey:     cfg.GeminiKey,
		baseURL:    defaultBaseURL,
		httpClient: webclient.NewDefault(60 * time.Second),
		defaults: core.Options{
			Model:               model,
			Temperature:         orFloat(cfg.Temperature, 0.2),
			MaxCompletionTokens: orInt(cfg.MaxCompletionTokens, defaultMaxTokens),
			SystemPrompt:        cfg.SystemPrompt,
		},
	}, nil
}

func (c *client) Reason(ctx context.Context, prompt string, opts core.Options) (string, error) {
	merged := c.merge(opts)
	body := c.buildRequestBody(merged, prompt)
	return c.send(ctx, merged.Model, body)
}

func (c *client) buildRequestBody(opts core.Options, userText string) map[string]interface{} {
	content := map[string]interface{}{
		"role": "user",
		"parts": []map[string]string{
			{"text": userText},
		},
	}

	body := map[string]interface{}{
		"contents": []map[string]interface{}{content},
		"generationConfig": map[string]interface{}{
			"temperature":     opts.Temperature,
			"maxOutputTokens": maxTokens(opts.MaxCompletionTokens),
		},
	}

	if strings.TrimSpace(opts.SystemPrompt) != "" {
		body["systemInstruction"] = map[string]interface{}{
			"parts": []map[string]string{
				{"text": opts.SystemPrompt},
			},
		}
	}

	return body
}

func (c *client) send(ctx context.Context, model string, payload map[string]interface{}) (string, error) {
	modelPath := normalizeModel(model)
	url := fmt.Sprintf("%s/%s:generateContent?key=%s", c.baseURL, modelPath, c.apiKey)
	bodyBytes, _ := json.Marshal(payload)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(bodyBytes))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("gemini API error: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("gemini API error: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("gemini API error: status %d", resp.StatusCode)
	}

	var result generateContentResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return "", fmt.Errorf("gemini: decode: %w", err)
	}
	text := result.FirstText()
	if text == "" {
		return "", fmt.Errorf("gemini: empty response")
	}
	return text, nil
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

func maxTokens(requested int) int {
	if requested <= 0 {
		return defaultMaxTokens
	}
	return requested
}

func normalizeModel(model string) string {
	model = strings.TrimSpace(model)
	if model == "" {
		return "models/" + defaultModelName
	}
	if strings.HasPrefix(model, "models/") {
		return model
	}
	return "models/" + model
}

type generateContentResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

func (r generateContentResponse) FirstText() string {
	for _, candidate := range r.Candidates {
		for _, part := range candidate.Content.Parts {
			if strings.TrimSpace(part.Text) != "" {
				return part.Text
			}
		}
	}
	return ""
}

func orInt(v, def int) int {
	if v > 0 {
		return v
	}
	return def
}

func orFloat(v, def float64) float64 {
	if v != 0 {
		return v
	}
	return def
}
