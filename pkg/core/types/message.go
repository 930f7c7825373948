package types

import (
	"encoding/json"
)

// Message is a single turn in a conversation transcript.
// Content is either a plain string or a []ContentBlock, matching the
// Messages API wire format.
type Message struct {
	Role    string `json:"role"`    // "user" or "assistant"
	Content any    `json:"content"` // string or []ContentBlock
}

// UserText builds a user message with plain string content.
func UserText(text string) Message {
	return Message{Role: "user", Content: text}
}

// AssistantText builds an assistant message with plain string content.
func AssistantText(text string) Message {
	return Message{Role: "assistant", Content: text}
}

// MarshalJSON normalizes Content before encoding:
// a bare ContentBlock is wrapped in an array, strings pass through.
func (m Message) MarshalJSON() ([]byte, error) {
	type wire struct {
		Role    string `json:"role"`
		Content any    `json:"content"`
	}

	var content any
	switch c := m.Content.(type) {
	case string:
		content = c
	case ContentBlock:
		content = []ContentBlock{c}
	default:
		content = m.Content
	}

	return json.Marshal(wire{Role: m.Role, Content: content})
}

// UnmarshalJSON accepts both string and block-array content.
func (m *Message) UnmarshalJSON(data []byte) error {
	var raw struct {
		Role    string          `json:"role"`
		Content json.RawMessage `json:"content"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	m.Role = raw.Role

	var str string
	if err := json.Unmarshal(raw.Content, &str); err == nil {
		m.Content = str
		return nil
	}

	blocks, err := UnmarshalContentBlocks(raw.Content)
	if err != nil {
		return err
	}
	m.Content = blocks
	return nil
}

// ContentBlocks returns Content as []ContentBlock regardless of input type.
func (m *Message) ContentBlocks() []ContentBlock {
	switch c := m.Content.(type) {
	case string:
		return []ContentBlock{Text(c)}
	case ContentBlock:
		return []ContentBlock{c}
	case []ContentBlock:
		return c
	default:
		return nil
	}
}

// TextContent concatenates all text content in the message.
func (m *Message) TextContent() string {
	if s, ok := m.Content.(string); ok {
		return s
	}
	var text string
	for _, block := range m.ContentBlocks() {
		if tb, ok := block.(TextBlock); ok {
			text += tb.Text
		}
	}
	return text
}

// AppendAssistantTurn appends the model's content as an assistant message.
func AppendAssistantTurn(history []Message, content []ContentBlock) []Message {
	return append(history, Message{Role: "assistant", Content: content})
}

// AppendToolResultsTurn appends tool results as the user message the
// Messages API expects after an assistant tool_use turn.
func AppendToolResultsTurn(history []Message, results []ToolResultBlock) []Message {
	blocks := make([]ContentBlock, len(results))
	for i, r := range results {
		blocks[i] = r
	}
	return append(history, Message{Role: "user", Content: blocks})
}
