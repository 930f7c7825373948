package types

// MessageRequest is a non-streaming Messages API request.
type MessageRequest struct {
	Model    string    `json:"model"`
	Messages []Message `json:"messages"`

	MaxTokens int    `json:"max_tokens,omitempty"`
	System    string `json:"system,omitempty"`

	Tools []Tool `json:"tools,omitempty"`
}
