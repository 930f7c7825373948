package agent

import "strings"

const maxProductLinks = 5

// ExtractProductLinks filters search hits down to unique Amazon
// product detail pages. Search and browse listing URLs are rejected,
// tracking suffixes are stripped, and at most five links survive, in
// order of first appearance.
func ExtractProductLinks(results *SearchResults) []string {
	if results == nil {
		return nil
	}

	seen := make(map[string]struct{})
	var links []string
	for _, hit := range results.Results {
		url := hit.URL
		if !strings.Contains(url, "amazon.com") {
			continue
		}
		if !strings.Contains(url, "/dp/") && !strings.Contains(url, "/gp/product/") {
			continue
		}
		if strings.Contains(url, "/s?") || strings.Contains(url, "/b?") {
			continue
		}

		clean := url
		if i := strings.Index(clean, "?"); i >= 0 {
			clean = clean[:i]
		}
		if i := strings.Index(clean, "/ref="); i >= 0 {
			clean = clean[:i]
		}

		if _, dup := seen[clean]; dup {
			continue
		}
		seen[clean] = struct{}{}
		links = append(links, clean)
		if len(links) == maxProductLinks {
			break
		}
	}
	return links
}
