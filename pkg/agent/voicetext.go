package agent

import (
	"regexp"
	"strings"
)

// listMarkers identify enumeration lines that read badly out loud.
var listMarkers = []string{"1.", "2.", "3.", "4.", "5.", "•", "-"}

// residualDirectives catches directive fragments that survived
// annotation parsing, e.g. ones the model malformed slightly.
var residualDirectives = []*regexp.Regexp{
	regexp.MustCompile(`\[DISPLAY_LINK:[^\]]+\]`),
	regexp.MustCompile(`\[PRODUCT_CARD:[^\]]+\]`),
	regexp.MustCompile(`\[COMPARE_PRODUCTS:[^\]]+\]`),
	regexp.MustCompile(`\[PURCHASE_INTENT:[^\]]+\]`),
}

// casualReplacements rewrite stiff phrasing into conversational speech.
// Applied in order, each replacing every occurrence.
var casualReplacements = []struct {
	formal string
	casual string
}{
	{"I apologize", "Sorry about that"},
	{"Could you please", "Can you"},
	{"I would be happy to", "I'd love to"},
	{"assistance", "help"},
	{"purchase", "buy"},
	{"provide me with", "tell me"},
	{"information", "info"},
	{"however", "but"},
	{"therefore", "so"},
	{"additionally", "also"},
	{"Furthermore", "Plus"},
	{"In order to", "To"},
	{"I recommend", "I'd suggest"},
	{"specifications", "details"},
	{"http", ""},
	{"www.", ""},
	{"amazon.com", "Amazon"},
}

const maxSpokenSentences = 3

// OptimizeForVoice rewrites display text for the speaker: list lines
// are dropped, leftover directives are stripped, formal phrasing is
// loosened, and the reply is trimmed to a few sentences. Idempotent on
// its own output.
func OptimizeForVoice(text string) string {
	var kept []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || startsWithAny(line, listMarkers) {
			continue
		}
		kept = append(kept, line)
	}
	result := strings.Join(kept, " ")

	for _, pattern := range residualDirectives {
		result = strings.TrimSpace(pattern.ReplaceAllString(result, ""))
	}

	for _, r := range casualReplacements {
		result = strings.ReplaceAll(result, r.formal, r.casual)
	}

	sentences := strings.Split(result, ".")
	if len(sentences) > maxSpokenSentences+1 {
		result = strings.Join(sentences[:maxSpokenSentences], ".") + "."
	}

	return strings.TrimSpace(result)
}

func startsWithAny(s string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}
