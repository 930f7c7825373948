package agent

import "testing"

func TestDetectIntent(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		purchase   bool
		comparison bool
		budget     *int
	}{
		{name: "empty", input: ""},
		{name: "no signals", input: "tell me about wireless mice"},
		{name: "buy keyword", input: "I'd like to BUY a mouse", purchase: true},
		{name: "add to cart", input: "add to cart please", purchase: true},
		{name: "ill take", input: "i'll take the second one", purchase: true},
		{name: "versus", input: "logitech versus razer", comparison: true},
		{name: "which is better", input: "Which is better for gaming?", comparison: true},
		{name: "dollar sign budget", input: "something around $50", budget: intPtr(50)},
		{name: "under budget", input: "keep it under 30 dollars", budget: intPtr(30)},
		{name: "budget keyword", input: "my budget is about 100", budget: intPtr(100)},
		{name: "spend keyword", input: "I can spend up to 75", budget: intPtr(75)},
		{
			name:     "combined purchase and budget",
			input:    "I want to buy a wireless mouse under 30",
			purchase: true,
			budget:   intPtr(30),
		},
		{
			name:       "comparison with budget",
			input:      "Compare these two, my budget is $200",
			comparison: true,
			budget:     intPtr(200),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			intent := DetectIntent(tt.input)
			if intent.PurchaseIntent != tt.purchase {
				t.Errorf("PurchaseIntent = %v, want %v", intent.PurchaseIntent, tt.purchase)
			}
			if intent.ComparisonRequest != tt.comparison {
				t.Errorf("ComparisonRequest = %v, want %v", intent.ComparisonRequest, tt.comparison)
			}
			switch {
			case tt.budget == nil && intent.BudgetMentioned != nil:
				t.Errorf("BudgetMentioned = %d, want nil", *intent.BudgetMentioned)
			case tt.budget != nil && intent.BudgetMentioned == nil:
				t.Errorf("BudgetMentioned = nil, want %d", *tt.budget)
			case tt.budget != nil && *intent.BudgetMentioned != *tt.budget:
				t.Errorf("BudgetMentioned = %d, want %d", *intent.BudgetMentioned, *tt.budget)
			}
		})
	}
}

func TestDetectIntentBudgetPriority(t *testing.T) {
	// The dollar-sign pattern outranks the "under" pattern.
	intent := DetectIntent("under 100 but ideally $50")
	if intent.BudgetMentioned == nil || *intent.BudgetMentioned != 50 {
		t.Fatalf("BudgetMentioned = %v, want 50", intent.BudgetMentioned)
	}
}

func TestDetectIntentCaseInsensitive(t *testing.T) {
	intent := DetectIntent("CHECKOUT now, COMPARE first")
	if !intent.PurchaseIntent || !intent.ComparisonRequest {
		t.Fatalf("got %+v, want both intents set", intent)
	}
}

func intPtr(n int) *int { return &n }
