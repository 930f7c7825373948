// Package tools wires concrete search and scrape backends into the
// agent's tool surface.
package tools

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/echobuy/echobuy/pkg/agent"
	"github.com/echobuy/echobuy/pkg/core"
	"github.com/echobuy/echobuy/pkg/core/types"
)

const maxSearchResults = 10

// SearchBackend serves web_search invocations.
type SearchBackend interface {
	Search(ctx context.Context, query string, count int) (*agent.SearchResults, error)
}

// ScrapeBackend serves batch_scrape invocations.
type ScrapeBackend interface {
	BatchScrape(ctx context.Context, urls []string) (*agent.ScrapeResults, error)
}

// Registry implements agent.ToolExecutor over the configured backends.
type Registry struct {
	search  SearchBackend
	scrape  ScrapeBackend
	timeout timeoutFunc
	logger  *slog.Logger
}

type timeoutFunc func(context.Context) (context.Context, context.CancelFunc)

// Option configures a Registry.
type Option func(*Registry)

// WithLogger sets the registry logger.
func WithLogger(l *slog.Logger) Option {
	return func(r *Registry) { r.logger = l }
}

// WithTimeout bounds every tool invocation.
func WithTimeout(timeout func(context.Context) (context.Context, context.CancelFunc)) Option {
	return func(r *Registry) { r.timeout = timeout }
}

// NewRegistry creates a tool registry.
func NewRegistry(search SearchBackend, scrape ScrapeBackend, opts ...Option) *Registry {
	r := &Registry{
		search:  search,
		scrape:  scrape,
		timeout: func(ctx context.Context) (context.Context, context.CancelFunc) { return ctx, func() {} },
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Definitions lists the tool schemas advertised to the model.
func (r *Registry) Definitions() []types.Tool {
	return []types.Tool{
		{
			Name:        agent.ToolWebSearch,
			Description: "Search the web for Amazon product pages matching a shopping query.",
			InputSchema: &types.JSONSchema{
				Type: "object",
				Properties: map[string]types.JSONSchema{
					"query": {Type: "string", Description: "The search query, e.g. 'wireless mouse site:amazon.com'"},
				},
				Required: []string{"query"},
			},
		},
		{
			Name:        agent.ToolBatchScrape,
			Description: "Scrape a batch of Amazon product page URLs for prices, ratings, and features.",
			InputSchema: &types.JSONSchema{
				Type: "object",
				Properties: map[string]types.JSONSchema{
					"urls": {
						Type:        "array",
						Description: "Product page URLs to scrape",
						Items:       &types.JSONSchema{Type: "string"},
					},
				},
				Required: []string{"urls"},
			},
		},
	}
}

// Invoke dispatches one tool call to its backend.
func (r *Registry) Invoke(ctx context.Context, name string, input map[string]any) (any, error) {
	ctx, cancel := r.timeout(ctx)
	defer cancel()

	r.logger.Debug("tool invocation", "tool", name)

	switch name {
	case agent.ToolWebSearch:
		query, _ := input["query"].(string)
		if query == "" {
			return nil, core.NewError(core.ErrTool, "web_search: missing query")
		}
		return r.search.Search(ctx, query, maxSearchResults)

	case agent.ToolBatchScrape:
		urls := stringSlice(input["urls"])
		if len(urls) == 0 {
			return nil, core.NewError(core.ErrTool, "batch_scrape: missing urls")
		}
		return r.scrape.BatchScrape(ctx, urls)

	default:
		return nil, core.NewError(core.ErrTool, fmt.Sprintf("unknown tool: %s", name))
	}
}

// stringSlice coerces a decoded JSON array into []string, dropping
// non-string entries.
func stringSlice(v any) []string {
	items, ok := v.([]any)
	if !ok {
		if ss, ok := v.([]string); ok {
			return ss
		}
		return nil
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok && s != "" {
			out = append(out, s)
		}
	}
	return out
}
