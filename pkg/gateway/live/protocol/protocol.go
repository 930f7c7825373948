// Package protocol defines the JSON frames exchanged on a live voice
// connection.
//
// The client sends binary frames carrying recorded audio and text
// frames carrying JSON commands. The server replies with plain-text
// notices, JSON display events, and binary frames carrying synthesized
// audio.
package protocol

import "github.com/echobuy/echobuy/pkg/agent"

// EventType tags a server-to-client JSON frame.
type EventType string

const (
	EventProductCards   EventType = "product_cards"
	EventPurchaseIntent EventType = "purchase_intent"
	EventComparison     EventType = "comparison"
	EventDisplayLinks   EventType = "display_links"
	EventResetComplete  EventType = "reset_complete"
	EventError          EventType = "error"
)

// Command types accepted from the client.
const (
	CommandReset = "reset"
	CommandIntro = "intro"
)

// Command is a client control frame.
type Command struct {
	Type string `json:"type"`
	Text string `json:"text,omitempty"`
}

// ProductCardsEvent carries product tiles for the UI.
type ProductCardsEvent struct {
	Type  EventType           `json:"type"`
	Cards []agent.ProductCard `json:"cards"`
}

// PurchaseIntentEvent triggers the checkout modal.
type PurchaseIntentEvent struct {
	Type    EventType                `json:"type"`
	Product agent.PurchaseIntentData `json:"product"`
}

// ComparisonEvent carries comparison text for the UI.
type ComparisonEvent struct {
	Type EventType `json:"type"`
	Data string    `json:"data"`
}

// DisplayLinksEvent carries plain links when no cards were produced.
type DisplayLinksEvent struct {
	Type  EventType           `json:"type"`
	Links []agent.DisplayLink `json:"links"`
}

// AckEvent acknowledges a command with no payload.
type AckEvent struct {
	Type EventType `json:"type"`
}

// ErrorEvent reports a recoverable error to the client.
type ErrorEvent struct {
	Type    EventType `json:"type"`
	Message string    `json:"message"`
}
