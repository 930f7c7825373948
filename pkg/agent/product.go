package agent

import (
	"regexp"
	"strings"
)

// Product is a structured snapshot of one Amazon product page. Fields
// that could not be recovered from the page carry sentinel values so
// downstream card rendering never deals with empty strings.
type Product struct {
	URL           string   `json:"url"`
	Name          string   `json:"name"`
	Price         string   `json:"price"`
	Rating        string   `json:"rating"`
	KeyFeatures   []string `json:"key_features"`
	Availability  string   `json:"availability"`
	PrimeEligible bool     `json:"prime_eligible"`
}

// ExtractionResult wraps a Product together with a degradation marker.
// Extraction always yields a usable Product; Degraded reports that the
// page content gave the parser nothing to work with.
type ExtractionResult struct {
	Product  Product
	Degraded bool
	Reason   string
}

const (
	priceNotFound       = "Price not found"
	ratingNotFound      = "Rating not found"
	defaultAvailability = "Check Amazon"
	fallbackPrice       = "See Amazon"
	fallbackRating      = "N/A"
	maxKeyFeatures      = 3
)

var productNamePattern = regexp.MustCompile(`Amazon\.com:\s*([^|]+)`)

// pricePatterns and ratingPatterns are tried in order; first match wins.
var pricePatterns = []*regexp.Regexp{
	regexp.MustCompile(`\$(\d+\.?\d*)`),
	regexp.MustCompile(`Price:\s*\$(\d+\.?\d*)`),
	regexp.MustCompile(`(\d+\.?\d*)\s*dollars?`),
}

var ratingPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(\d\.?\d*)\s*out of 5 stars`),
	regexp.MustCompile(`Rating:\s*(\d\.?\d*)`),
	regexp.MustCompile(`(\d\.?\d*)\s*stars?`),
}

var featurePattern = regexp.MustCompile(`[•\-\*]\s*([^•\-\*\n]{10,100})`)

// ExtractProduct parses scraped page content into a Product. Empty
// content degrades to a sentinel-filled product rather than failing.
func ExtractProduct(content, url string) ExtractionResult {
	if strings.TrimSpace(content) == "" {
		return ExtractionResult{
			Product: Product{
				URL:          url,
				Name:         "Amazon Product",
				Price:        fallbackPrice,
				Rating:       fallbackRating,
				Availability: defaultAvailability,
			},
			Degraded: true,
			Reason:   "empty page content",
		}
	}

	p := Product{
		URL:          url,
		Name:         extractName(content),
		Price:        extractPrice(content),
		Rating:       extractRating(content),
		KeyFeatures:  extractFeatures(content),
		Availability: defaultAvailability,
	}

	lower := strings.ToLower(content)
	if strings.Contains(lower, "prime") && (strings.Contains(lower, "eligible") || strings.Contains(lower, "free")) {
		p.PrimeEligible = true
	}

	return ExtractionResult{Product: p}
}

func extractName(content string) string {
	if m := productNamePattern.FindStringSubmatch(content); m != nil {
		return strings.TrimSpace(m[1])
	}
	return "Amazon Product"
}

func extractPrice(content string) string {
	for _, pattern := range pricePatterns {
		if m := pattern.FindStringSubmatch(content); m != nil {
			return "$" + m[1]
		}
	}
	return priceNotFound
}

func extractRating(content string) string {
	for _, pattern := range ratingPatterns {
		if m := pattern.FindStringSubmatch(content); m != nil {
			return m[1] + "/5 stars"
		}
	}
	return ratingNotFound
}

// extractFeatures pulls bullet-point lines, but only from pages that
// actually carry a feature section. Capped at three.
func extractFeatures(content string) []string {
	lower := strings.ToLower(content)
	if !strings.Contains(lower, "features") && !strings.Contains(lower, "specifications") {
		return nil
	}

	matches := featurePattern.FindAllStringSubmatch(content, maxKeyFeatures)
	features := make([]string, 0, len(matches))
	for _, m := range matches {
		features = append(features, strings.TrimSpace(m[1]))
	}
	return features
}
