package types

import (
	"encoding/json"
	"fmt"
)

// ContentBlock is the interface for all message content types.
// This service only produces and consumes text, tool_use, and
// tool_result blocks.
type ContentBlock interface {
	BlockType() string
}

// TextBlock represents text content.
type TextBlock struct {
	Type string `json:"type"` // "text"
	Text string `json:"text"`
}

func (t TextBlock) BlockType() string { return "text" }

// Text is a shorthand constructor for a TextBlock.
func Text(s string) TextBlock {
	return TextBlock{Type: "text", Text: s}
}

// ToolUseBlock represents a tool call requested by the model.
type ToolUseBlock struct {
	Type  string         `json:"type"` // "tool_use"
	ID    string         `json:"id"`
	Name  string         `json:"name"`
	Input map[string]any `json:"input"`
}

func (t ToolUseBlock) BlockType() string { return "tool_use" }

// ToolResultBlock carries the result of a tool call back to the model.
type ToolResultBlock struct {
	Type      string         `json:"type"` // "tool_result"
	ToolUseID string         `json:"tool_use_id"`
	Content   []ContentBlock `json:"content"`
	IsError   bool           `json:"is_error,omitempty"`
}

func (t ToolResultBlock) BlockType() string { return "tool_result" }

// MarshalJSON emits is_error only when set and content only when present.
func (t ToolResultBlock) MarshalJSON() ([]byte, error) {
	m := map[string]any{
		"type":        t.Type,
		"tool_use_id": t.ToolUseID,
	}
	if t.IsError {
		m["is_error"] = true
	}
	if len(t.Content) > 0 {
		raw := make([]json.RawMessage, len(t.Content))
		for i, block := range t.Content {
			b, err := json.Marshal(block)
			if err != nil {
				return nil, err
			}
			raw[i] = b
		}
		m["content"] = raw
	}
	return json.Marshal(m)
}

// UnmarshalContentBlock deserializes a single content block.
func UnmarshalContentBlock(data []byte) (ContentBlock, error) {
	var head struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return nil, err
	}

	switch head.Type {
	case "text":
		var block TextBlock
		if err := json.Unmarshal(data, &block); err != nil {
			return nil, err
		}
		return block, nil

	case "tool_use":
		var block ToolUseBlock
		if err := json.Unmarshal(data, &block); err != nil {
			return nil, err
		}
		return block, nil

	case "tool_result":
		var raw struct {
			Type      string            `json:"type"`
			ToolUseID string            `json:"tool_use_id"`
			Content   []json.RawMessage `json:"content"`
			IsError   bool              `json:"is_error"`
		}
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, err
		}
		block := ToolResultBlock{Type: raw.Type, ToolUseID: raw.ToolUseID, IsError: raw.IsError}
		for _, c := range raw.Content {
			cb, err := UnmarshalContentBlock(c)
			if err != nil {
				return nil, err
			}
			block.Content = append(block.Content, cb)
		}
		return block, nil

	default:
		// Tolerate unknown block kinds so new API features don't break parsing.
		return TextBlock{Type: head.Type, Text: fmt.Sprintf("[unknown block type: %s]", head.Type)}, nil
	}
}

// UnmarshalContentBlocks deserializes a JSON array of content blocks.
func UnmarshalContentBlocks(data []byte) ([]ContentBlock, error) {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	blocks := make([]ContentBlock, len(raw))
	for i, r := range raw {
		block, err := UnmarshalContentBlock(r)
		if err != nil {
			return nil, err
		}
		blocks[i] = block
	}
	return blocks, nil
}
