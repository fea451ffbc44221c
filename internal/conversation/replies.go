package conversation

import (
	"fmt"
	"strings"

	"github.com/outfitly/outfitly/internal/stylist"
	"github.com/outfitly/outfitly/internal/wardrobe"
)

// Reply is one outbound message: text plus an optional reply keyboard
// (rows of labels) or inline action buttons. The transport decides how
// to render each.
type Reply struct {
	Text     string           `json:"text"`
	Keyboard [][]string       `json:"keyboard,omitempty"`
	Actions  [][]ActionButton `json:"actions,omitempty"`
}

// ActionButton is an inline button that produces a ButtonEvent when pressed.
type ActionButton struct {
	Label  string `json:"label"`
	Action string `json:"action"`
	ItemID int64  `json:"item_id,omitempty"`
}

// Global commands and menu button labels. The orchestrator renders these
// verbatim; the machine matches inbound text against them.
const (
	CmdStart = "/start"
	CmdHelp  = "/help"

	BtnAddPhoto         = "📸 Add Photo"
	BtnAddDescription   = "✍️ Add Description"
	BtnBulkUpload       = "📦 Bulk Upload"
	BtnBulkPhotos       = "📸 Bulk Photos (1-10)"
	BtnBulkDescriptions = "✍️ Bulk Descriptions (1-10)"
	BtnCreateOutfit     = "🎨 Create Outfit"
	BtnWardrobe         = "📚 My Wardrobe"
	BtnSuggestions      = "💡 Suggestions"
	BtnHelp             = "❓ Help"

	BtnSaveAsIs    = "✅ Save as is"
	BtnEditDetails = "✏️ Edit details"
	BtnCancel      = "❌ Cancel"
	BtnCancelEdit  = "❌ Cancel Edit"
	BtnDone        = "Done"

	BtnFieldName        = "📝 Name"
	BtnFieldCategory    = "📂 Category"
	BtnFieldTags        = "🏷️ Tags"
	BtnFieldSeason      = "🌤️ Season"
	BtnFieldOccasion    = "🎯 Occasion"
	BtnFieldDescription = "📄 Description"
)

// Inline button actions.
const (
	ActionSaveOutfit    = "save_outfit"
	ActionNewOutfit     = "new_outfit"
	ActionEditItem      = "edit_item"
	ActionDeleteItem    = "delete_item"
	ActionCloseWardrobe = "close_wardrobe"
)

const welcomeText = `👗 Welcome to Outfitly!

I'm your AI fashion assistant that helps you:
• 📸 Add clothes to your wardrobe (photos or descriptions)
• 📦 Add multiple items at once
• ✏️ Edit your existing wardrobe
• 🎨 Create amazing outfits
• 💡 Get styling suggestions

Let's start building your digital wardrobe!`

const helpText = `🤖 Outfitly Help

📸 Adding Clothes:
• Single Photo: Upload one photo at a time
• Single Description: Describe one item at a time
• 📦 Bulk Upload: Add 1-10 items quickly via photos or text

📚 Managing Your Wardrobe:
• My Wardrobe: View, edit, and delete all your clothes
  - Click ✏️ to edit any item
  - Click 🗑️ to delete any item

🎨 Creating Outfits:
• Create Outfit: Get AI-generated outfit suggestions
• Suggestions: Get outfit ideas based on your wardrobe

💡 Tips:
• Use clear, well-lit photos for better analysis
• Be specific in descriptions for accurate categorization
• You can edit any item details after adding them`

const unrecognizedText = "I didn't understand that. Please use the menu buttons or type /help for assistance!"

func mainMenu() [][]string {
	return [][]string{
		{BtnAddPhoto, BtnAddDescription},
		{BtnBulkUpload, BtnCreateOutfit},
		{BtnWardrobe, BtnSuggestions},
		{BtnHelp},
	}
}

func confirmKeyboard() [][]string {
	return [][]string{
		{BtnSaveAsIs, BtnEditDetails},
		{BtnCancel},
	}
}

func draftFieldKeyboard() [][]string {
	return [][]string{
		{BtnFieldName, BtnFieldCategory},
		{BtnFieldTags, BtnFieldSeason},
		{BtnFieldOccasion, BtnCancelEdit},
	}
}

func storedFieldKeyboard() [][]string {
	return [][]string{
		{BtnFieldName, BtnFieldCategory},
		{BtnFieldTags, BtnFieldDescription},
		{BtnCancelEdit},
	}
}

func vocabularyKeyboard(values []string) [][]string {
	rows := make([][]string, 0, (len(values)+1)/2)
	for i := 0; i < len(values); i += 2 {
		row := []string{title(values[i])}
		if i+1 < len(values) {
			row = append(row, title(values[i+1]))
		}
		rows = append(rows, row)
	}
	return rows
}

func title(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func draftSummary(d *Draft) string {
	return fmt.Sprintf(`✅ Analysis Results:

📋 Item Details:
• Name: %s
• Category: %s
• Season: %s
• Occasion: %s
• Tags: %s

Is this correct? You can edit any field if needed.`,
		d.Name, d.Category, d.Season, d.Occasion, strings.Join(d.Tags, ", "))
}

func itemSummary(item *wardrobe.ClothingItem) string {
	tags := "None"
	if len(item.Tags) > 0 {
		tags = strings.Join(item.Tags, ", ")
	}
	return fmt.Sprintf(`📋 Item Details (ID: %d):

• Name: %s
• Category: %s
• Description: %s
• Tags: %s

What would you like to edit?`,
		item.ID, item.Name, item.Category, item.Description, tags)
}

func outfitSummary(plan stylist.OutfitPlan) string {
	var sb strings.Builder
	sb.WriteString("🎨 Your Outfit:\n\n👕 Items to wear:\n")
	for _, item := range plan.SelectedItems {
		fmt.Fprintf(&sb, "  • %s\n", item)
	}
	if len(plan.StylingTips) > 0 {
		sb.WriteString("\n💡 Styling Tips:\n")
		for _, tip := range plan.StylingTips {
			fmt.Fprintf(&sb, "  • %s\n", tip)
		}
	}
	return sb.String()
}

func textReply(text string) Reply {
	return Reply{Text: text}
}

func menuReply(text string) Reply {
	return Reply{Text: text, Keyboard: mainMenu()}
}
