package search

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
)

const defaultBaseURL = "https://serpapi.com"

// Result is one organic web search hit.
type Result struct {
	Title   string `json:"title"`
	Link    string `json:"link"`
	Snippet string `json:"snippet"`
	Source  string `json:"source"`
	Date    string `json:"date,omitempty"`
}

// Client queries the SerpAPI Google engine for evidence about a claim.
type Client struct {
	apiKey  string
	baseURL string
	http    *resty.Client
}

func NewClient(apiKey string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		http:    resty.New().SetTimeout(timeout),
	}
}

// SetBaseURL overrides the endpoint, used by tests.
func (c *Client) SetBaseURL(url string) {
	c.baseURL = url
}

func (c *Client) Search(ctx context.Context, query string, num int) ([]Result, error) {
	if num <= 0 {
		num = 8
	}

	res, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"engine":  "google",
			"q":       query,
			"num":     strconv.Itoa(num),
			"api_key": c.apiKey,
		}).
		Get(c.baseURL + "/search.json")
	if err != nil {
		return nil, fmt.Errorf("serpapi: %w", err)
	}
	if res.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("serpapi: status %d: %s", res.StatusCode(), res.Body())
	}

	var payload struct {
		OrganicResults []struct {
			Title         string `json:"title"`
			Link          string `json:"link"`
			Snippet       string `json:"snippet"`
			DisplayedLink string `json:"displayed_link"`
			Date          string `json:"date"`
		} `json:"organic_results"`
	}
	if err := json.Unmarshal(res.Body(), &payload); err != nil {
		return nil, fmt.Errorf("serpapi: decode: %w", err)
	}

	out := make([]Result, 0, len(payload.OrganicResults))
	for _, r := range payload.OrganicResults {
		out = append(out, Result{
			Title:   r.Title,
			Link:    r.Link,
			Snippet: r.Snippet,
			Source:  r.DisplayedLink,
			Date:    r.Date,
		})
	}
	return out, nil
}
