package agent

import (
	"regexp"
	"strconv"
	"strings"
)

// Intent is the per-utterance shopping intent. It is computed fresh for
// every user turn and recorded in the session context log.
type Intent struct {
	PurchaseIntent    bool `json:"purchase_intent"`
	ComparisonRequest bool `json:"comparison_request"`
	BudgetMentioned   *int `json:"budget_mentioned,omitempty"`
}

var purchaseKeywords = []string{
	"buy", "purchase", "order", "i want", "i'll take", "add to cart", "checkout",
}

var comparisonKeywords = []string{
	"compare", "difference", "which is better", "vs", "versus",
}

// budgetPatterns are tried in priority order; the first match wins.
var budgetPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\$(\d+)`),
	regexp.MustCompile(`under (\d+)`),
	regexp.MustCompile(`budget.*?(\d+)`),
	regexp.MustCompile(`spend.*?(\d+)`),
}

// DetectIntent scans an utterance for purchase intent, comparison
// intent, and a budget figure. It never fails; absent signals yield
// zero values.
func DetectIntent(utterance string) Intent {
	lower := strings.ToLower(utterance)

	intent := Intent{
		PurchaseIntent:    containsAny(lower, purchaseKeywords),
		ComparisonRequest: containsAny(lower, comparisonKeywords),
	}

	for _, pattern := range budgetPatterns {
		m := pattern.FindStringSubmatch(lower)
		if m == nil {
			continue
		}
		// The capture group is digits only, so Atoi cannot fail.
		if n, err := strconv.Atoi(m[1]); err == nil {
			intent.BudgetMentioned = &n
		}
		break
	}

	return intent
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}
