// Package brave adapts the Brave Web Search API to the agent's
// web_search tool.
//
// Brave (https://brave.com/search/api/) exposes a REST search endpoint
// keyed by a subscription token.
package brave

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/echobuy/echobuy/pkg/agent"
)

const defaultBaseURL = "https://api.search.brave.com"

// Option configures a Search client.
type Option func(*Search)

// WithBaseURL overrides the Brave API base URL.
func WithBaseURL(u string) Option {
	return func(s *Search) { s.baseURL = u }
}

// WithHTTPClient overrides the HTTP client used for requests.
func WithHTTPClient(client *http.Client) Option {
	return func(s *Search) { s.client = client }
}

// Search calls the Brave Web Search API.
type Search struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

// New creates a Brave search client.
func New(apiKey string, opts ...Option) *Search {
	s := &Search{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		client:  http.DefaultClient,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// braveSearchResponse is the subset of the /res/v1/web/search response
// the agent consumes.
type braveSearchResponse struct {
	Web struct {
		Results []braveSearchEntry `json:"results"`
	} `json:"web"`
}

type braveSearchEntry struct {
	Title       string `json:"title"`
	URL         string `json:"url"`
	Description string `json:"description"`
}

// Search runs one web search and returns the hits in ranked order.
func (s *Search) Search(ctx context.Context, query string, count int) (*agent.SearchResults, error) {
	if count <= 0 {
		count = 10
	}

	q := url.Values{}
	q.Set("q", query)
	q.Set("count", strconv.Itoa(count))

	req, err := http.NewRequestWithContext(ctx, "GET", s.baseURL+"/res/v1/web/search?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("brave: create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Subscription-Token", s.apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("brave: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("brave: API error (status %d): %s", resp.StatusCode, string(respBody))
	}

	var braveResp braveSearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&braveResp); err != nil {
		return nil, fmt.Errorf("brave: decode response: %w", err)
	}

	results := &agent.SearchResults{Query: query}
	for _, r := range braveResp.Web.Results {
		results.Results = append(results.Results, agent.SearchHit{
			Title:       r.Title,
			URL:         r.URL,
			Description: r.Description,
		})
	}
	return results, nil
}
