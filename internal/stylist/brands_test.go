package stylist_test

import (
	"testing"

	"github.com/outfitly/outfitly/internal/stylist"
)

func TestCorrectBrands(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"lowercase single brand", "blue nike sneakers", "blue Nike sneakers"},
		{"uppercase brand", "NIKE running shoes", "Nike running shoes"},
		{"already canonical", "Nike running shoes", "Nike running shoes"},
		{"apostrophe brand", "classic levis jeans", "classic Levi's jeans"},
		{"hyphenated brand", "off white hoodie", "Off-White hoodie"},
		{"multiple brands", "nike and adidas collab", "Nike and Adidas collab"},
		{"brand at start", "gucci summer dress", "Gucci summer dress"},
		{"brand at end", "sneakers by puma", "sneakers by Puma"},
		{"no brands", "plain cotton t-shirt", "plain cotton t-shirt"},
		{"substring is not a match", "nikeland theme park", "nikeland theme park"},
		{"empty string", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := stylist.CorrectBrands(tt.input)
			if got != tt.want {
				t.Errorf("CorrectBrands(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestCorrectBrandsIdempotent(t *testing.T) {
	inputs := []string{
		"blue nike sneakers",
		"classic levis jeans",
		"off white hoodie",
		"tommy hilfiger polo with calvin klein briefs",
	}

	for _, input := range inputs {
		once := stylist.CorrectBrands(input)
		twice := stylist.CorrectBrands(once)
		if once != twice {
			t.Errorf("CorrectBrands not idempotent for %q: first %q, second %q", input, once, twice)
		}
	}
}

func TestPhotoFallback(t *testing.T) {
	draft := stylist.PhotoFallback()

	if draft.Name != "Unknown Item" {
		t.Errorf("Name = %q, want Unknown Item", draft.Name)
	}
	if draft.Category != "accessories" {
		t.Errorf("Category = %q, want accessories", draft.Category)
	}
	if draft.Season != "all" {
		t.Errorf("Season = %q, want all", draft.Season)
	}
	if draft.Occasion != "casual" {
		t.Errorf("Occasion = %q, want casual", draft.Occasion)
	}
	if len(draft.Tags) != 1 || draft.Tags[0] != "unknown" {
		t.Errorf("Tags = %v, want [unknown]", draft.Tags)
	}
}

func TestTextFallback(t *testing.T) {
	t.Run("brand corrected name", func(t *testing.T) {
		draft := stylist.TextFallback("  blue nike sneakers  ")
		if draft.Name != "blue Nike sneakers" {
			t.Errorf("Name = %q, want blue Nike sneakers", draft.Name)
		}
	})

	t.Run("defaults", func(t *testing.T) {
		draft := stylist.TextFallback("red scarf")
		if draft.Category != "accessories" || draft.Season != "all" || draft.Occasion != "casual" {
			t.Errorf("defaults = %s/%s/%s, want accessories/all/casual",
				draft.Category, draft.Season, draft.Occasion)
		}
		if len(draft.Tags) != 2 || draft.Tags[0] != "clothing" || draft.Tags[1] != "item" {
			t.Errorf("Tags = %v, want [clothing item]", draft.Tags)
		}
	})
}

func TestOutfitFallback(t *testing.T) {
	plan := stylist.OutfitFallback()

	if plan.SelectedItems == nil || len(plan.SelectedItems) != 0 {
		t.Errorf("SelectedItems = %v, want empty non-nil slice", plan.SelectedItems)
	}
	if len(plan.StylingTips) != 1 || plan.StylingTips[0] != "Keep it simple and comfortable" {
		t.Errorf("StylingTips = %v", plan.StylingTips)
	}
}

func TestSuggestionsFallback(t *testing.T) {
	suggestions := stylist.SuggestionsFallback()
	if len(suggestions) != 5 {
		t.Fatalf("len = %d, want 5", len(suggestions))
	}
	for i, s := range suggestions {
		if s == "" {
			t.Errorf("suggestion %d is empty", i)
		}
	}
}
