package anthropic

import (
	"encoding/json"

	"github.com/echobuy/echobuy/pkg/core/types"
)

// anthropicRequest is the Messages API wire request.
type anthropicRequest struct {
	Model     string        `json:"model"`
	Messages  []messageJSON `json:"messages"`
	MaxTokens int           `json:"max_tokens"`
	System    string        `json:"system,omitempty"`
	Tools     []types.Tool  `json:"tools,omitempty"`
}

// messageJSON is the wire format for one message. Content is always an
// array of blocks on the wire; plain-string content is wrapped.
type messageJSON struct {
	Role    string            `json:"role"`
	Content []json.RawMessage `json:"content"`
}

func buildRequest(req *types.MessageRequest) *anthropicRequest {
	out := &anthropicRequest{
		Model:     req.Model,
		MaxTokens: req.MaxTokens,
		System:    req.System,
		Tools:     req.Tools,
	}
	if out.MaxTokens == 0 {
		out.MaxTokens = DefaultMaxTokens
	}
	out.Messages = convertMessages(req.Messages)
	return out
}

func convertMessages(messages []types.Message) []messageJSON {
	result := make([]messageJSON, 0, len(messages))
	for _, msg := range messages {
		wire := messageJSON{Role: msg.Role}
		for _, block := range msg.ContentBlocks() {
			raw, err := json.Marshal(block)
			if err != nil {
				continue
			}
			wire.Content = append(wire.Content, raw)
		}
		result = append(result, wire)
	}
	return result
}
