package anthropic

import (
	"encoding/json"
	"fmt"

	"github.com/echobuy/echobuy/pkg/core/types"
)

// anthropicResponse is the Messages API wire response.
type anthropicResponse struct {
	ID         string            `json:"id"`
	Type       string            `json:"type"`
	Role       string            `json:"role"`
	Model      string            `json:"model"`
	Content    []json.RawMessage `json:"content"`
	StopReason string            `json:"stop_reason"`
	Usage      types.Usage       `json:"usage"`
}

func parseResponse(body []byte) (*types.MessageResponse, error) {
	var wire anthropicResponse
	if err := json.Unmarshal(body, &wire); err != nil {
		return nil, fmt.Errorf("unmarshal response: %w", err)
	}

	content := make([]types.ContentBlock, 0, len(wire.Content))
	for _, raw := range wire.Content {
		block, err := types.UnmarshalContentBlock(raw)
		if err != nil {
			// Skip unparseable blocks rather than failing the turn.
			continue
		}
		content = append(content, block)
	}

	return &types.MessageResponse{
		ID:         wire.ID,
		Type:       wire.Type,
		Role:       wire.Role,
		Model:      wire.Model,
		Content:    content,
		StopReason: types.StopReason(wire.StopReason),
		Usage:      wire.Usage,
	}, nil
}
