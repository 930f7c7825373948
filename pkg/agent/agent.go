package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/echobuy/echobuy/pkg/core"
	"github.com/echobuy/echobuy/pkg/core/types"
)

// DefaultModel is the model used when no override is configured.
const DefaultModel = "claude-3-5-sonnet-20240620"

// DefaultMaxToolRounds bounds the tool loop within one user turn.
const DefaultMaxToolRounds = 8

// ChatModel is the slice of a model provider the agent needs.
type ChatModel interface {
	CreateMessage(ctx context.Context, req *types.MessageRequest) (*types.MessageResponse, error)
}

// Agent drives one voice shopping conversation: it detects intent,
// runs the model/tool loop, extracts products from scraped pages, and
// splits replies into spoken text and display payloads. Not safe for
// concurrent use; each live connection owns its own Agent.
type Agent struct {
	model         ChatModel
	tools         ToolExecutor
	modelID       string
	maxToolRounds int
	logger        *slog.Logger

	session         *Session
	currentProducts map[string]Product
}

// Option configures an Agent.
type Option func(*Agent)

// WithModel overrides the model identifier.
func WithModel(id string) Option {
	return func(a *Agent) { a.modelID = id }
}

// WithMaxToolRounds overrides the per-turn tool loop bound.
func WithMaxToolRounds(n int) Option {
	return func(a *Agent) {
		if n > 0 {
			a.maxToolRounds = n
		}
	}
}

// WithLogger sets the agent logger.
func WithLogger(l *slog.Logger) Option {
	return func(a *Agent) { a.logger = l }
}

// New builds an Agent with a freshly-primed session.
func New(model ChatModel, tools ToolExecutor, opts ...Option) *Agent {
	a := &Agent{
		model:           model,
		tools:           tools,
		modelID:         DefaultModel,
		maxToolRounds:   DefaultMaxToolRounds,
		logger:          slog.Default(),
		session:         NewSession(),
		currentProducts: make(map[string]Product),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Session exposes the conversation state for inspection.
func (a *Agent) Session() *Session { return a.session }

// Reset discards all conversation state and re-primes the session.
func (a *Agent) Reset() {
	a.session.Reset()
	a.currentProducts = make(map[string]Product)
}

// Chat runs one full user turn: intent detection, the model/tool
// round-trip loop, and response post-processing. The returned
// ProcessedResponse carries voice-ready spoken text and any display
// payloads the model emitted.
func (a *Agent) Chat(ctx context.Context, userInput string) (*ProcessedResponse, error) {
	intent := DetectIntent(userInput)
	a.session.RecordUtterance(userInput, intent)
	a.session.Messages = append(a.session.Messages, types.UserText(userInput))

	contextInfo := a.session.ContextSummary(intent)

	resp, err := a.createMessage(ctx, voiceSystemPrompt(contextInfo))
	if err != nil {
		return nil, err
	}

	rounds := 0
	for resp.StopReason == types.StopReasonToolUse && resp.HasToolUse() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if rounds >= a.maxToolRounds {
			a.logger.Warn("tool round limit reached, answering with partial context",
				"limit", a.maxToolRounds)
			break
		}
		rounds++

		a.session.Messages = types.AppendAssistantTurn(a.session.Messages, resp.Content)

		toolUses := resp.ToolUses()
		results := make([]types.ToolResultBlock, 0, len(toolUses))
		for _, tu := range toolUses {
			content, isErr := a.invokeTool(ctx, tu)
			results = append(results, types.ToolResultBlock{
				Type:      "tool_result",
				ToolUseID: tu.ID,
				Content:   []types.ContentBlock{types.Text(content)},
				IsError:   isErr,
			})
		}
		a.session.Messages = types.AppendToolResultsTurn(a.session.Messages, results)

		resp, err = a.createMessage(ctx, continuationPrompt(contextInfo))
		if err != nil {
			return nil, err
		}
	}

	raw := resp.TextContent()
	processed := ParseAnnotations(raw)
	processed.SpokenText = OptimizeForVoice(processed.SpokenText)

	if processed.PurchaseIntentData != nil {
		a.session.PurchaseIntent = processed.PurchaseIntentData
	}

	// The unprocessed reply goes into the history so the model can
	// reference its own directives on later turns.
	a.session.Messages = append(a.session.Messages, types.AssistantText(raw))

	return processed, nil
}

func (a *Agent) createMessage(ctx context.Context, system string) (*types.MessageResponse, error) {
	resp, err := a.model.CreateMessage(ctx, &types.MessageRequest{
		Model:    a.modelID,
		Messages: a.session.Messages,
		System:   system,
		Tools:    a.tools.Definitions(),
	})
	if err != nil {
		if core.TypeOf(err) != "" {
			return nil, err
		}
		return nil, core.WrapError(core.ErrModel, err)
	}
	return resp, nil
}

// invokeTool runs one tool call and renders its result for the model.
// Tool failures become structured error results instead of aborting
// the turn.
func (a *Agent) invokeTool(ctx context.Context, tu types.ToolUseBlock) (content string, isError bool) {
	out, err := a.tools.Invoke(ctx, tu.Name, tu.Input)
	if err != nil {
		a.logger.Error("tool invocation failed", "tool", tu.Name, "error", err)
		msg, _ := json.Marshal(map[string]string{
			"error": fmt.Sprintf("tool %s failed: %v", tu.Name, err),
		})
		return string(msg), true
	}

	switch tu.Name {
	case ToolWebSearch:
		if sr, ok := out.(*SearchResults); ok {
			return a.renderSearchResult(sr), false
		}
	case ToolBatchScrape:
		if sc, ok := out.(*ScrapeResults); ok {
			a.recordScrapedProducts(sc)
		}
	}

	raw, err := json.Marshal(out)
	if err != nil {
		return fmt.Sprintf("%v", out), false
	}
	return string(raw), false
}

// renderSearchResult reduces raw search hits to clean product links so
// the model never sees noisy listing URLs.
func (a *Agent) renderSearchResult(sr *SearchResults) string {
	links := ExtractProductLinks(sr)
	if len(links) == 0 {
		raw, _ := json.Marshal(map[string]string{
			"message": "No specific products found in this search. Let me try a different approach or get more details.",
		})
		return string(raw)
	}
	raw, _ := json.Marshal(map[string][]string{"links": links})
	return string(raw)
}

// recordScrapedProducts extracts a Product from every scraped page and
// folds them into the session.
func (a *Agent) recordScrapedProducts(sc *ScrapeResults) {
	a.currentProducts = make(map[string]Product)
	n := 0
	for _, page := range sc.Pages {
		if page.URL == "" {
			continue
		}
		result := ExtractProduct(page.Content, page.URL)
		if result.Degraded {
			a.logger.Warn("product extraction degraded",
				"url", page.URL, "reason", result.Reason)
		}
		n++
		a.currentProducts[fmt.Sprintf("product_%d", n)] = result.Product
		a.session.ProductsViewed = append(a.session.ProductsViewed, result.Product)
	}
}

// CurrentProducts returns the products extracted in the most recent
// scrape, keyed product_1..product_n.
func (a *Agent) CurrentProducts() map[string]Product { return a.currentProducts }
