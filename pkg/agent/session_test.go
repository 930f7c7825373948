package agent

import (
	"strings"
	"testing"

	"github.com/echobuy/echobuy/pkg/core/types"
)

func TestNewSessionPrimed(t *testing.T) {
	s := NewSession()
	if len(s.Messages) != 2 {
		t.Fatalf("Messages = %d entries, want 2", len(s.Messages))
	}
	if s.Messages[0].Role != "user" || s.Messages[1].Role != "assistant" {
		t.Errorf("roles = %s/%s", s.Messages[0].Role, s.Messages[1].Role)
	}
	if !strings.Contains(s.Messages[0].TextContent(), "personal shopping assistant") {
		t.Error("missing priming instructions")
	}
	if s.Messages[1].TextContent() != assistantGreeting {
		t.Error("greeting not seeded")
	}
}

func TestSessionReset(t *testing.T) {
	s := NewSession()
	budget := 50
	s.BudgetRange = &budget
	s.ComparisonMode = true
	s.ProductsViewed = append(s.ProductsViewed, Product{URL: "u"})
	s.PurchaseIntent = &PurchaseIntentData{ProductName: "x"}
	s.RecordUtterance("hello", Intent{})
	s.Messages = append(s.Messages, types.UserText("more"))

	s.Reset()

	if s.BudgetRange != nil || s.ComparisonMode || s.PurchaseIntent != nil {
		t.Error("derived state survived reset")
	}
	if len(s.ProductsViewed) != 0 || len(s.ConversationContext) != 0 {
		t.Error("logs survived reset")
	}
	if len(s.Messages) != 2 {
		t.Errorf("Messages = %d entries after reset, want 2", len(s.Messages))
	}
}

func TestRecordUtteranceBudgetOverwrite(t *testing.T) {
	s := NewSession()
	s.RecordUtterance("budget is $100", DetectIntent("budget is $100"))
	if s.BudgetRange == nil || *s.BudgetRange != 100 {
		t.Fatalf("BudgetRange = %v, want 100", s.BudgetRange)
	}
	s.RecordUtterance("actually make it $40", DetectIntent("actually make it $40"))
	if s.BudgetRange == nil || *s.BudgetRange != 40 {
		t.Fatalf("BudgetRange = %v, want 40", s.BudgetRange)
	}
	s.RecordUtterance("show me options", DetectIntent("show me options"))
	if s.BudgetRange == nil || *s.BudgetRange != 40 {
		t.Fatalf("BudgetRange = %v, want budget retained", s.BudgetRange)
	}
	if len(s.ConversationContext) != 3 {
		t.Errorf("ConversationContext = %d entries, want 3", len(s.ConversationContext))
	}
}

func TestComparisonModeSticky(t *testing.T) {
	s := NewSession()
	s.RecordUtterance("compare these", DetectIntent("compare these"))
	if !s.ComparisonMode {
		t.Fatal("ComparisonMode not set")
	}
	s.RecordUtterance("ok thanks", DetectIntent("ok thanks"))
	if !s.ComparisonMode {
		t.Error("ComparisonMode dropped without a reset")
	}
}

func TestContextSummary(t *testing.T) {
	s := NewSession()
	budget := 30
	s.BudgetRange = &budget
	s.ProductsViewed = []Product{{URL: "a"}, {URL: "b"}}

	got := s.ContextSummary(Intent{PurchaseIntent: true, ComparisonRequest: true})
	for _, want := range []string{
		"User budget: $30. ",
		"Products discussed: 2 items. ",
		"PURCHASE INTENT",
		"COMPARE products",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("summary %q missing %q", got, want)
		}
	}

	if s.ContextSummary(Intent{}) != "User budget: $30. Products discussed: 2 items. " {
		t.Errorf("neutral summary = %q", s.ContextSummary(Intent{}))
	}
}
