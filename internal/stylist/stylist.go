// Package stylist wraps the external fashion model behind a contract that
// never fails outward: classification and outfit generation always return
// a usable value, falling back to deterministic defaults when the model
// call or response parsing fails.
package stylist

import (
	"context"
	"strings"

	"github.com/outfitly/outfitly/internal/wardrobe"
)

// ItemDraft is a structured candidate description of a clothing item
// awaiting user confirmation. Every field is always populated.
type ItemDraft struct {
	Name     string   `json:"name"`
	Category string   `json:"category"`
	Season   string   `json:"season"`
	Occasion string   `json:"occasion"`
	Tags     []string `json:"tags"`
}

// OutfitPlan is the result of outfit generation. SelectedItems holds the
// names of chosen wardrobe items; an empty selection means no outfit
// could be composed.
type OutfitPlan struct {
	SelectedItems []string `json:"selected_items"`
	StylingTips   []string `json:"styling_tips"`
}

// System defines the public contract for stylist operations. No method
// returns an error: transport failures, malformed responses, and parse
// failures are absorbed internally and replaced with fallback values.
type System interface {
	// ClassifyPhoto analyzes a stored photo blob and returns an item draft.
	ClassifyPhoto(ctx context.Context, photoKey string) ItemDraft
	// ClassifyText analyzes a free-text description and returns an item draft.
	ClassifyText(ctx context.Context, description string) ItemDraft
	// ComposeOutfit selects items from the wardrobe matching the request.
	ComposeOutfit(
		ctx context.Context,
		request string,
		items []wardrobe.ClothingItem,
		prefs *wardrobe.Preferences,
	) OutfitPlan
	// SuggestOutfits returns up to five outfit idea lines for the wardrobe.
	SuggestOutfits(ctx context.Context, items []wardrobe.ClothingItem) []string
	// Close releases the underlying model client.
	Close() error
}

// PhotoFallback is the draft returned when photo classification fails.
func PhotoFallback() ItemDraft {
	return ItemDraft{
		Name:     "Unknown Item",
		Category: "accessories",
		Season:   "all",
		Occasion: "casual",
		Tags:     []string{"unknown"},
	}
}

// TextFallback is the draft returned when text classification fails.
// The name is the brand-corrected input description.
func TextFallback(description string) ItemDraft {
	return ItemDraft{
		Name:     CorrectBrands(strings.TrimSpace(description)),
		Category: "accessories",
		Season:   "all",
		Occasion: "casual",
		Tags:     []string{"clothing", "item"},
	}
}

// OutfitFallback is the plan returned when outfit generation fails.
func OutfitFallback() OutfitPlan {
	return OutfitPlan{
		SelectedItems: []string{},
		StylingTips:   []string{"Keep it simple and comfortable"},
	}
}

// SuggestionsFallback is the suggestion list returned when generation fails.
func SuggestionsFallback() []string {
	return []string{
		"Casual Weekend Look: Comfortable and relaxed style",
		"Professional Office Outfit: Clean and business-appropriate",
		"Evening Party Ensemble: Elegant and stylish",
		"Comfortable Home Style: Cozy and practical",
		"Smart Casual Look: Balanced between formal and relaxed",
	}
}
