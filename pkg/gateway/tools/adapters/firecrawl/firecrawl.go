// Package firecrawl adapts the Firecrawl batch scrape API to the
// agent's batch_scrape tool.
//
// Firecrawl (https://firecrawl.dev) turns web pages into markdown. A
// batch scrape is asynchronous: submit the URLs, then poll the job
// until it completes.
package firecrawl

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/echobuy/echobuy/pkg/agent"
)

const (
	defaultBaseURL      = "https://api.firecrawl.dev"
	defaultPollInterval = 2 * time.Second
)

// Option configures a Scraper.
type Option func(*Scraper)

// WithBaseURL overrides the Firecrawl API base URL.
func WithBaseURL(u string) Option {
	return func(s *Scraper) { s.baseURL = u }
}

// WithHTTPClient overrides the HTTP client used for requests.
func WithHTTPClient(client *http.Client) Option {
	return func(s *Scraper) { s.client = client }
}

// WithPollInterval overrides the job poll interval.
func WithPollInterval(d time.Duration) Option {
	return func(s *Scraper) {
		if d > 0 {
			s.pollInterval = d
		}
	}
}

// Scraper calls the Firecrawl batch scrape API.
type Scraper struct {
	apiKey       string
	baseURL      string
	client       *http.Client
	pollInterval time.Duration
}

// New creates a Firecrawl scraper.
func New(apiKey string, opts ...Option) *Scraper {
	s := &Scraper{
		apiKey:       apiKey,
		baseURL:      defaultBaseURL,
		client:       http.DefaultClient,
		pollInterval: defaultPollInterval,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// firecrawlBatchRequest is the /v1/batch/scrape request body.
type firecrawlBatchRequest struct {
	URLs    []string `json:"urls"`
	Formats []string `json:"formats"`
}

// firecrawlBatchSubmit is the job submission response.
type firecrawlBatchSubmit struct {
	Success bool   `json:"success"`
	ID      string `json:"id"`
	Error   string `json:"error,omitempty"`
}

// firecrawlBatchStatus is the job status response.
type firecrawlBatchStatus struct {
	Status string `json:"status"`
	Data   []struct {
		Markdown string `json:"markdown"`
		Metadata struct {
			Title     string `json:"title"`
			SourceURL string `json:"sourceURL"`
		} `json:"metadata"`
	} `json:"data"`
	Error string `json:"error,omitempty"`
}

// BatchScrape scrapes every URL and returns the pages as markdown.
// It blocks until the job completes or ctx expires.
func (s *Scraper) BatchScrape(ctx context.Context, urls []string) (*agent.ScrapeResults, error) {
	jobID, err := s.submit(ctx, urls)
	if err != nil {
		return nil, err
	}

	ticker := time.NewTicker(s.pollInterval)
	defer ticker.Stop()

	for {
		status, err := s.poll(ctx, jobID)
		if err != nil {
			return nil, err
		}

		switch status.Status {
		case "completed":
			results := &agent.ScrapeResults{}
			for _, d := range status.Data {
				results.Pages = append(results.Pages, agent.ScrapedPage{
					URL:     d.Metadata.SourceURL,
					Title:   d.Metadata.Title,
					Content: d.Markdown,
				})
			}
			return results, nil
		case "failed", "cancelled":
			return nil, fmt.Errorf("firecrawl: batch job %s %s: %s", jobID, status.Status, status.Error)
		}

		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("firecrawl: batch job %s: %w", jobID, ctx.Err())
		case <-ticker.C:
		}
	}
}

func (s *Scraper) submit(ctx context.Context, urls []string) (string, error) {
	body, err := json.Marshal(firecrawlBatchRequest{URLs: urls, Formats: []string{"markdown"}})
	if err != nil {
		return "", fmt.Errorf("firecrawl: marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", s.baseURL+"/v1/batch/scrape", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("firecrawl: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("firecrawl: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("firecrawl: API error (status %d): %s", resp.StatusCode, string(respBody))
	}

	var submit firecrawlBatchSubmit
	if err := json.NewDecoder(resp.Body).Decode(&submit); err != nil {
		return "", fmt.Errorf("firecrawl: decode response: %w", err)
	}
	if !submit.Success || submit.ID == "" {
		return "", fmt.Errorf("firecrawl: batch submit rejected: %s", submit.Error)
	}
	return submit.ID, nil
}

func (s *Scraper) poll(ctx context.Context, jobID string) (*firecrawlBatchStatus, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", s.baseURL+"/v1/batch/scrape/"+jobID, nil)
	if err != nil {
		return nil, fmt.Errorf("firecrawl: create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("firecrawl: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("firecrawl: API error (status %d): %s", resp.StatusCode, string(respBody))
	}

	var status firecrawlBatchStatus
	if err := json.NewDecoder(resp.Body).Decode(&status); err != nil {
		return nil, fmt.Errorf("firecrawl: decode response: %w", err)
	}
	return &status, nil
}
