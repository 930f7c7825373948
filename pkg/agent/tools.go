package agent

import (
	"context"

	"github.com/echobuy/echobuy/pkg/core/types"
)

// Tool names the agent knows how to post-process.
const (
	ToolWebSearch   = "web_search"
	ToolBatchScrape = "batch_scrape"
)

// ToolExecutor runs side-effecting tools on the agent's behalf.
// Implementations map tool names to concrete backends and return the
// typed payloads below so the agent can post-process them.
type ToolExecutor interface {
	// Definitions lists the tools to advertise to the model.
	Definitions() []types.Tool
	// Invoke runs one named tool. A returned error becomes a
	// structured error result fed back to the model; it never aborts
	// the conversation turn.
	Invoke(ctx context.Context, name string, input map[string]any) (any, error)
}

// SearchResults is the payload for a web_search invocation.
type SearchResults struct {
	Query   string      `json:"query"`
	Results []SearchHit `json:"results"`
}

// SearchHit is a single search result.
type SearchHit struct {
	Title       string `json:"title"`
	URL         string `json:"url"`
	Description string `json:"description,omitempty"`
}

// ScrapeResults is the payload for a batch_scrape invocation.
type ScrapeResults struct {
	Pages []ScrapedPage `json:"pages"`
}

// ScrapedPage is one scraped page's content.
type ScrapedPage struct {
	URL     string `json:"url"`
	Title   string `json:"title,omitempty"`
	Content string `json:"content"`
}
