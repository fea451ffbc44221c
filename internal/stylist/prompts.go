package stylist

import (
	"fmt"
	"strings"

	"github.com/outfitly/outfitly/internal/wardrobe"
)

const photoPrompt = `Analyze this clothing item photo and provide detailed information.

Provide a JSON response with the following structure:
{
	"name": "Full detailed name with brand if visible",
	"category": "One of: tops, bottoms, dresses, outerwear, shoes, accessories",
	"season": "spring/summer/fall/winter/all",
	"occasion": "casual/formal/business/party/sport",
	"tags": ["tag1", "tag2", "tag3"]
}

IMPORTANT RULES:
1. Keep the FULL name with all details (color, brand, style, etc.)
2. If a brand logo or name is visible, include it in the name
3. Be specific about colors, materials, and styles
4. Do NOT shorten or simplify the name
5. Include any distinctive features you can see

Return ONLY the JSON object, no additional text.`

func textPrompt(description string) string {
	return fmt.Sprintf(`Analyze this clothing description and provide detailed information.

Description: %s

Provide a JSON response with the following structure:
{
	"name": "Full corrected name with brand if mentioned",
	"category": "One of: tops, bottoms, dresses, outerwear, shoes, accessories",
	"season": "spring/summer/fall/winter/all",
	"occasion": "casual/formal/business/party/sport",
	"tags": ["tag1", "tag2", "tag3"]
}

IMPORTANT RULES:
1. Keep the FULL name with all details (color, brand, style, etc.)
2. If a brand is mentioned (like "maison margiela", "nike", "adidas"), include it in the name
3. Make spelling corrections but preserve all information
4. Do NOT shorten or simplify the name
5. If the description is unclear, use the original description as the name

Return ONLY the JSON object, no additional text.`, description)
}

func outfitPrompt(request string, items []wardrobe.ClothingItem, prefs *wardrobe.Preferences) string {
	return fmt.Sprintf(`Create a stylish outfit based on the user's request and available clothing items.

User Request: %s

Available Clothing Items:
%s
%s
Provide a JSON response with the following structure:
{
	"selected_items": ["Item name 1", "Item name 2", "Item name 3"],
	"styling_tips": ["Tip 1", "Tip 2", "Tip 3"]
}

Make sure the outfit is practical, stylish, and matches the user's request.
Only use items from the available clothing list.
Return only the names of the items, not descriptions.`, request, formatItems(items), formatPreferences(prefs))
}

func suggestionsPrompt(items []wardrobe.ClothingItem) string {
	return fmt.Sprintf(`Based on the user's wardrobe, suggest 5 different outfit combinations.

Available Clothing Items:
%s

Provide 5 outfit suggestions in this format:
1. [Outfit Name]: [Brief description of the combination]
2. [Outfit Name]: [Brief description of the combination]
3. [Outfit Name]: [Brief description of the combination]
4. [Outfit Name]: [Brief description of the combination]
5. [Outfit Name]: [Brief description of the combination]

Make the suggestions diverse, practical, and stylish.`, formatItems(items))
}

func formatItems(items []wardrobe.ClothingItem) string {
	lines := make([]string, len(items))
	for i, item := range items {
		lines[i] = fmt.Sprintf("- %s (%s): %s", item.Name, item.Category, item.Description)
	}
	return strings.Join(lines, "\n")
}

func formatPreferences(prefs *wardrobe.Preferences) string {
	if prefs == nil {
		return ""
	}
	return fmt.Sprintf(`
User Preferences:
- Style: %s
- Colors: %s
- Season: %s
`,
		orUnspecified(prefs.Style),
		orUnspecified(prefs.Color),
		orUnspecified(prefs.Season),
	)
}

func orUnspecified(v *string) string {
	if v == nil || *v == "" {
		return "Not specified"
	}
	return *v
}
