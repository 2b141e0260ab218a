package search

import (
	"context"
	"fmt"
	"os"

	"github.com/SaiNageswarS/go-api-boot/logger"
	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

const (
	tavilyEndpoint = "https://api.tavily.com/search"

	// DefaultMaxResults caps hits per search when no limit is configured.
	DefaultMaxResults = 3
)

// WebResult is a single hit returned by the web search provider.
type WebResult struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	URL     string `json:"url"`
}

type tavilyRequest struct {
	APIKey     string `json:"api_key"`
	Query      string `json:"query"`
	MaxResults int    `json:"max_results"`
}

type tavilyResponse struct {
	Results []WebResult `json:"results"`
}

// TavilyClient talks to the Tavily search API.
type TavilyClient struct {
	client     *resty.Client
	endpoint   string
	apiKey     string
	maxResults int
}

func NewTavilyClient(maxResults int) *TavilyClient {
	apiKey := os.Getenv("TAVILY_API_KEY")
	if apiKey == "" {
		logger.Fatal("TAVILY_API_KEY is not set")
	}

	if maxResults <= 0 {
		maxResults = DefaultMaxResults
	}

	return &TavilyClient{
		client:     resty.New(),
		endpoint:   tavilyEndpoint,
		apiKey:     apiKey,
		maxResults: maxResults,
	}
}

// Search runs a web search and returns results in provider ranking order.
func (t *TavilyClient) Search(ctx context.Context, query string) ([]WebResult, error) {
	var out tavilyResponse

	resp, err := t.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(tavilyRequest{
			APIKey:     t.apiKey,
			Query:      query,
			MaxResults: t.maxResults,
		}).
		SetResult(&out).
		Post(t.endpoint)

	if err != nil {
		logger.Error("Tavily request failed", zap.Error(err))
		return nil, err
	}

	if resp.IsError() {
		logger.Error("Tavily returned error status", zap.Int("status", resp.StatusCode()))
		return nil, fmt.Errorf("tavily search failed with status %d", resp.StatusCode())
	}

	return out.Results, nil
}
