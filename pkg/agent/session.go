package agent

import (
	"fmt"
	"strings"
	"time"

	"github.com/echobuy/echobuy/pkg/core/types"
)

// ContextEntry is one logged utterance with its detected intent.
type ContextEntry struct {
	Utterance string    `json:"utterance"`
	Intent    Intent    `json:"intent"`
	At        time.Time `json:"at"`
}

// Session is the per-conversation shopping state: the message history
// sent to the model plus the derived shopping facts. One Session backs
// exactly one live connection; it is not safe for concurrent use.
type Session struct {
	ProductsViewed      []Product
	UserPreferences     map[string]string
	BudgetRange         *int
	ComparisonMode      bool
	PurchaseIntent      *PurchaseIntentData
	ConversationContext []ContextEntry
	Messages            []types.Message
}

// NewSession returns a session primed with the shopping instructions
// and the canned greeting.
func NewSession() *Session {
	s := &Session{}
	s.Reset()
	return s
}

// Reset restores the session to its freshly-primed state. The history
// always starts with the instruction turn and the greeting turn.
func (s *Session) Reset() {
	s.ProductsViewed = nil
	s.UserPreferences = make(map[string]string)
	s.BudgetRange = nil
	s.ComparisonMode = false
	s.PurchaseIntent = nil
	s.ConversationContext = nil
	s.Messages = []types.Message{
		types.UserText(shoppingInstructions),
		types.AssistantText(assistantGreeting),
	}
}

// RecordUtterance logs an utterance and folds its intent into the
// session. A mentioned budget always overwrites the stored one, and
// the context entry is appended in the same step.
func (s *Session) RecordUtterance(utterance string, intent Intent) {
	if intent.BudgetMentioned != nil {
		budget := *intent.BudgetMentioned
		s.BudgetRange = &budget
	}
	if intent.ComparisonRequest {
		s.ComparisonMode = true
	}
	s.ConversationContext = append(s.ConversationContext, ContextEntry{
		Utterance: utterance,
		Intent:    intent,
		At:        time.Now(),
	})
}

// ContextSummary renders the session facts as prompt text.
func (s *Session) ContextSummary(intent Intent) string {
	var b strings.Builder
	if s.BudgetRange != nil {
		fmt.Fprintf(&b, "User budget: $%d. ", *s.BudgetRange)
	}
	if len(s.ProductsViewed) > 0 {
		fmt.Fprintf(&b, "Products discussed: %d items. ", len(s.ProductsViewed))
	}
	if intent.PurchaseIntent {
		b.WriteString("User showing PURCHASE INTENT - guide to checkout! ")
	}
	if intent.ComparisonRequest {
		b.WriteString("User wants to COMPARE products - show comparison! ")
	}
	return b.String()
}
