package agent

import (
	"regexp"
	"strings"
)

// DisplayLink is one clickable link the UI should render alongside the
// spoken answer.
type DisplayLink struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// ProductCard is a rich product tile parsed from a card directive.
type ProductCard struct {
	Name      string `json:"name"`
	URL       string `json:"url"`
	Price     string `json:"price"`
	Rating    string `json:"rating"`
	Feature1  string `json:"feature1"`
	Feature2  string `json:"feature2"`
	ImageHint string `json:"image_hint"`
}

// PurchaseIntentData identifies the product a user is ready to buy.
type PurchaseIntentData struct {
	ProductName string `json:"product_name"`
	URL         string `json:"url"`
	Price       string `json:"price"`
}

// ProcessedResponse is an assistant reply split into the text meant for
// the speaker and the structured payloads meant for the screen.
type ProcessedResponse struct {
	SpokenText         string              `json:"spoken_text"`
	LinksToDisplay     []DisplayLink       `json:"links_to_display"`
	ProductCards       []ProductCard       `json:"product_cards"`
	ComparisonData     string              `json:"comparison_data"`
	PurchaseIntentData *PurchaseIntentData `json:"purchase_intent_data,omitempty"`
}

var (
	displayLinkPattern     = regexp.MustCompile(`\[DISPLAY_LINK:\s*([^|]+)\s*\|\s*([^\]]+)\]`)
	productCardPattern     = regexp.MustCompile(`\[PRODUCT_CARD:\s*([^|]+)\|([^|]+)\|([^|]+)\|([^|]+)\|([^|]*)\|([^|]*)\|([^\]]*)\]`)
	compareProductsPattern = regexp.MustCompile(`\[COMPARE_PRODUCTS:\s*([^\]]+)\]`)
	purchaseIntentPattern  = regexp.MustCompile(`\[PURCHASE_INTENT:\s*([^|]+)\s*\|\s*([^|]+)\s*\|\s*([^\]]+)\]`)
)

// ParseAnnotations lifts inline UI directives out of a model reply.
// Display links and product cards accumulate in order of appearance;
// for comparison and purchase-intent directives the last occurrence
// wins. All directives are stripped from the returned SpokenText,
// which is otherwise left untouched for the voice optimizer.
func ParseAnnotations(text string) *ProcessedResponse {
	pr := &ProcessedResponse{}

	for _, m := range displayLinkPattern.FindAllStringSubmatch(text, -1) {
		pr.LinksToDisplay = append(pr.LinksToDisplay, DisplayLink{
			Name: strings.TrimSpace(m[1]),
			URL:  strings.TrimSpace(m[2]),
		})
	}

	for _, m := range productCardPattern.FindAllStringSubmatch(text, -1) {
		pr.ProductCards = append(pr.ProductCards, ProductCard{
			Name:      strings.TrimSpace(m[1]),
			URL:       strings.TrimSpace(m[2]),
			Price:     strings.TrimSpace(m[3]),
			Rating:    strings.TrimSpace(m[4]),
			Feature1:  strings.TrimSpace(m[5]),
			Feature2:  strings.TrimSpace(m[6]),
			ImageHint: strings.TrimSpace(m[7]),
		})
	}

	if matches := compareProductsPattern.FindAllStringSubmatch(text, -1); len(matches) > 0 {
		pr.ComparisonData = strings.TrimSpace(matches[len(matches)-1][1])
	}

	if matches := purchaseIntentPattern.FindAllStringSubmatch(text, -1); len(matches) > 0 {
		last := matches[len(matches)-1]
		pr.PurchaseIntentData = &PurchaseIntentData{
			ProductName: strings.TrimSpace(last[1]),
			URL:         strings.TrimSpace(last[2]),
			Price:       strings.TrimSpace(last[3]),
		}
	}

	spoken := text
	spoken = displayLinkPattern.ReplaceAllString(spoken, "")
	spoken = productCardPattern.ReplaceAllString(spoken, "")
	spoken = compareProductsPattern.ReplaceAllString(spoken, "")
	spoken = purchaseIntentPattern.ReplaceAllString(spoken, "")
	pr.SpokenText = strings.TrimSpace(spoken)

	return pr
}
