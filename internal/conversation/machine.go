package conversation

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/outfitly/outfitly/internal/stylist"
	"github.com/outfitly/outfitly/internal/wardrobe"
)

// bulkClassifyWorkers bounds concurrent classification calls within a
// single user's bulk commit.
const bulkClassifyWorkers = 4

// Machine applies inbound events to sessions. Transitions themselves are
// pure in-memory updates and cannot fail; failures originate only in the
// store or the stylist and are surfaced as user-visible messages. Every
// error path returns the session to Idle or to the prior confirmation
// state, never to an undefined state.
type Machine struct {
	wardrobe     wardrobe.System
	stylist      stylist.System
	logger       *slog.Logger
	bulkCapacity int
}

// NewMachine creates a Machine over the given wardrobe and stylist systems.
func NewMachine(
	w wardrobe.System,
	st stylist.System,
	bulkCapacity int,
	logger *slog.Logger,
) *Machine {
	return &Machine{
		wardrobe:     w,
		stylist:      st,
		logger:       logger.With("system", "conversation"),
		bulkCapacity: bulkCapacity,
	}
}

// Handle processes one event against the owner's session and returns the
// replies to send. It holds the session lock for the full duration, so
// events for the same user apply strictly in order while other users'
// sessions proceed in parallel.
func (m *Machine) Handle(ctx context.Context, s *Session, event Event) []Reply {
	s.Mu.Lock()
	defer s.Mu.Unlock()

	s.Touch(time.Now())

	switch ev := event.(type) {
	case PhotoEvent:
		return m.handlePhoto(ctx, s, ev)
	case ButtonEvent:
		return m.handleButton(ctx, s, ev)
	case TextEvent:
		return m.handleText(ctx, s, ev.Text)
	default:
		return []Reply{textReply(unrecognizedText)}
	}
}

func (m *Machine) handleText(ctx context.Context, s *Session, text string) []Reply {
	// Global commands win over any state-specific reading of the input.
	if replies, ok := m.handleGlobal(ctx, s, text); ok {
		return replies
	}

	switch s.State {
	case AwaitingDescription:
		return m.classifyDescription(ctx, s, text)
	case ConfirmingDraft:
		return m.confirmDraft(ctx, s, text)
	case EditingDraftField:
		return m.chooseDraftField(s, text)
	case EditingDraftValue:
		return m.applyDraftValue(s, text)
	case AwaitingBulkPhotos:
		return m.bulkPhotosText(ctx, s, text)
	case AwaitingBulkDescriptions:
		return m.bulkDescriptionsText(ctx, s, text)
	case AwaitingOutfitRequest:
		return m.composeOutfit(ctx, s, text)
	case EditingStoredItem:
		return m.chooseStoredField(s, text)
	case EditingStoredValue:
		return m.applyStoredValue(ctx, s, text)
	default:
		return []Reply{textReply(unrecognizedText)}
	}
}

func (m *Machine) handleGlobal(ctx context.Context, s *Session, text string) ([]Reply, bool) {
	switch text {
	case CmdStart:
		return []Reply{menuReply(welcomeText)}, true

	case CmdHelp, BtnHelp:
		return []Reply{textReply(helpText)}, true

	case BtnAddPhoto:
		s.ClearScratch()
		s.State = AwaitingPhoto
		return []Reply{textReply(
			"📸 Please send me a photo of your clothing item.\n\n" +
				"I'll analyze it with AI and show you the details!")}, true

	case BtnAddDescription:
		s.ClearScratch()
		s.State = AwaitingDescription
		return []Reply{textReply(
			"✍️ Please describe the clothing item you want to add.\n\n" +
				"For example:\n" +
				"• 'A blue cotton t-shirt with a small logo'\n" +
				"• 'Black leather jacket with silver zippers'\n" +
				"• 'Red summer dress with floral pattern'")}, true

	case BtnBulkUpload:
		return []Reply{{
			Text: "📦 Choose your bulk upload method:\n\n" +
				"📸 Bulk Photos: Upload 1-10 photos at once\n" +
				"✍️ Bulk Descriptions: Add 1-10 items via text",
			Keyboard: [][]string{
				{BtnBulkPhotos, BtnBulkDescriptions},
				{BtnCancel},
			},
		}}, true

	case BtnBulkPhotos:
		s.ClearScratch()
		s.State = AwaitingBulkPhotos
		s.Bulk = []BulkEntry{}
		return []Reply{textReply(fmt.Sprintf(
			"📸 Send me 1-10 photos of your clothes!\n\n"+
				"When you're done, type '%s' to process all photos.\n"+
				"Type '%s' to stop.\n\n"+
				"📸 Photos added: 0/%d", BtnDone, BtnCancel, m.bulkCapacity))}, true

	case BtnBulkDescriptions:
		s.ClearScratch()
		s.State = AwaitingBulkDescriptions
		s.Bulk = []BulkEntry{}
		return []Reply{textReply(fmt.Sprintf(
			"✍️ Send me 1-10 clothing descriptions, one item per message!\n\n"+
				"When you're done, type '%s' to process all items.\n"+
				"Type '%s' to stop.\n\n"+
				"✍️ Descriptions added: 0/%d", BtnDone, BtnCancel, m.bulkCapacity))}, true

	case BtnCreateOutfit:
		return m.startOutfitRequest(ctx, s), true

	case BtnWardrobe:
		return m.showWardrobe(ctx, s), true

	case BtnSuggestions:
		return m.showSuggestions(ctx, s), true
	}

	return nil, false
}

func (m *Machine) handlePhoto(ctx context.Context, s *Session, ev PhotoEvent) []Reply {
	switch s.State {
	case AwaitingPhoto:
		draft := m.stylist.ClassifyPhoto(ctx, ev.Key)
		s.Draft = &Draft{
			ItemDraft:   draft,
			PhotoFileID: ev.FileID,
			PhotoKey:    ev.Key,
		}
		s.Origin = OriginPhoto
		s.State = ConfirmingDraft
		return []Reply{{Text: draftSummary(s.Draft), Keyboard: confirmKeyboard()}}

	case AwaitingBulkPhotos:
		if len(s.Bulk) >= m.bulkCapacity {
			return []Reply{textReply(fmt.Sprintf(
				"❌ Maximum %d photos reached! Type '%s' to process them.",
				m.bulkCapacity, BtnDone))}
		}
		s.Bulk = append(s.Bulk, BulkEntry{PhotoFileID: ev.FileID, PhotoKey: ev.Key})
		return []Reply{textReply(fmt.Sprintf(
			"📸 Photo %d added! (%d/%d)\n\nSend more photos or type '%s' when finished.",
			len(s.Bulk), len(s.Bulk), m.bulkCapacity, BtnDone))}

	default:
		return []Reply{textReply(
			"📸 To add a photo, choose '" + BtnAddPhoto + "' or '" + BtnBulkUpload + "' first.")}
	}
}

func (m *Machine) handleButton(ctx context.Context, s *Session, ev ButtonEvent) []Reply {
	switch ev.Action {
	case ActionSaveOutfit:
		return m.saveOutfit(ctx, s)

	case ActionNewOutfit:
		s.ClearScratch()
		s.State = AwaitingOutfitRequest
		return []Reply{textReply(outfitRequestPrompt)}

	case ActionEditItem:
		item, err := m.wardrobe.Item(ctx, s.Owner, ev.ItemID)
		if err != nil {
			return []Reply{textReply("❌ Item not found!")}
		}
		s.ClearScratch()
		s.State = EditingStoredItem
		s.EditingItem = item.ID
		return []Reply{{Text: itemSummary(item), Keyboard: storedFieldKeyboard()}}

	case ActionDeleteItem:
		if err := m.wardrobe.DeleteItem(ctx, s.Owner, ev.ItemID); err != nil {
			return []Reply{textReply("❌ Failed to delete: item not found or not yours.")}
		}
		return []Reply{textReply("✅ Item deleted from your wardrobe!")}

	case ActionCloseWardrobe:
		return []Reply{textReply("Wardrobe closed!")}

	default:
		return []Reply{textReply(unrecognizedText)}
	}
}

const outfitRequestPrompt = "🎨 What kind of outfit would you like me to create?\n\n" +
	"Examples:\n" +
	"• 'Casual weekend look'\n" +
	"• 'Professional office outfit'\n" +
	"• 'Evening party ensemble'"

func (m *Machine) startOutfitRequest(ctx context.Context, s *Session) []Reply {
	items, err := m.wardrobe.Items(ctx, s.Owner, nil)
	if err != nil {
		m.logger.Error("wardrobe lookup failed", "owner", s.Owner, "error", err)
		return []Reply{textReply("❌ Something went wrong. Please try again!")}
	}
	if len(items) == 0 {
		return []Reply{textReply("📚 Your wardrobe is empty! Add some clothes first to create outfits.")}
	}

	s.ClearScratch()
	s.State = AwaitingOutfitRequest
	return []Reply{textReply(outfitRequestPrompt)}
}

func (m *Machine) showWardrobe(ctx context.Context, s *Session) []Reply {
	items, err := m.wardrobe.Items(ctx, s.Owner, nil)
	if err != nil {
		m.logger.Error("wardrobe lookup failed", "owner", s.Owner, "error", err)
		return []Reply{textReply("❌ Something went wrong. Please try again!")}
	}
	if len(items) == 0 {
		return []Reply{textReply("📚 Your wardrobe is empty! Add some clothes first.")}
	}

	actions := make([][]ActionButton, 0, len(items)+1)
	for _, item := range items {
		actions = append(actions, []ActionButton{{
			Label:  fmt.Sprintf("✏️ %s (ID: %d)", item.Name, item.ID),
			Action: ActionEditItem,
			ItemID: item.ID,
		}})
		actions = append(actions, []ActionButton{{
			Label:  fmt.Sprintf("🗑️ Delete %s", item.Name),
			Action: ActionDeleteItem,
			ItemID: item.ID,
		}})
	}
	actions = append(actions, []ActionButton{{
		Label:  "❌ Close",
		Action: ActionCloseWardrobe,
	}})

	return []Reply{{
		Text:    fmt.Sprintf("📚 Your Wardrobe (%d items):", len(items)),
		Actions: actions,
	}}
}

func (m *Machine) showSuggestions(ctx context.Context, s *Session) []Reply {
	items, err := m.wardrobe.Items(ctx, s.Owner, nil)
	if err != nil {
		m.logger.Error("wardrobe lookup failed", "owner", s.Owner, "error", err)
		return []Reply{textReply("❌ Something went wrong. Please try again!")}
	}
	if len(items) == 0 {
		return []Reply{textReply("📚 Your wardrobe is empty! Add some clothes first to get suggestions.")}
	}

	suggestions := m.stylist.SuggestOutfits(ctx, items)
	if len(suggestions) > 5 {
		suggestions = suggestions[:5]
	}

	var sb strings.Builder
	sb.WriteString("💡 Outfit Suggestions:\n\n")
	for _, suggestion := range suggestions {
		sb.WriteString(suggestion)
		sb.WriteString("\n\n")
	}

	return []Reply{textReply(sb.String())}
}

func (m *Machine) classifyDescription(ctx context.Context, s *Session, text string) []Reply {
	draft := m.stylist.ClassifyText(ctx, text)
	s.Draft = &Draft{
		ItemDraft: draft,
		RawInput:  text,
	}
	s.Origin = OriginText
	s.State = ConfirmingDraft
	return []Reply{{Text: draftSummary(s.Draft), Keyboard: confirmKeyboard()}}
}

func (m *Machine) confirmDraft(ctx context.Context, s *Session, text string) []Reply {
	switch text {
	case BtnSaveAsIs:
		return m.commitDraft(ctx, s)

	case BtnEditDetails:
		s.State = EditingDraftField
		return []Reply{{Text: "✏️ What would you like to edit?", Keyboard: draftFieldKeyboard()}}

	case BtnCancel:
		s.Reset()
		return []Reply{menuReply("❌ Cancelled. What would you like to do?")}

	default:
		return []Reply{textReply(unrecognizedText)}
	}
}

func (m *Machine) commitDraft(ctx context.Context, s *Session) []Reply {
	draft := s.Draft

	// Photo items store a generated description; text items keep the
	// user's raw input.
	description := fmt.Sprintf("%s - %s", draft.Name, draft.Category)
	if s.Origin == OriginText {
		description = draft.RawInput
	}

	cmd := wardrobe.AddItemCommand{
		Owner:       s.Owner,
		Name:        draft.Name,
		Category:    draft.Category,
		Description: description,
		Tags:        draft.Tags,
	}
	if draft.PhotoKey != "" {
		cmd.PhotoFileID = &draft.PhotoFileID
		cmd.PhotoKey = &draft.PhotoKey
	}

	item, err := m.wardrobe.AddItem(ctx, cmd)
	if err != nil {
		m.logger.Error("item commit failed", "owner", s.Owner, "error", err)
		s.Reset()
		return []Reply{menuReply("❌ Failed to add the item to your wardrobe. Please try again!")}
	}

	name, category := draft.Name, draft.Category
	s.Reset()
	return []Reply{menuReply(fmt.Sprintf(
		"✅ Successfully added '%s' to your wardrobe!\n\nCategory: %s\nItem ID: %d",
		name, title(category), item.ID))}
}

var draftFieldLabels = map[string]string{
	BtnFieldName:     "name",
	BtnFieldCategory: "category",
	BtnFieldTags:     "tags",
	BtnFieldSeason:   "season",
	BtnFieldOccasion: "occasion",
}

func (m *Machine) chooseDraftField(s *Session, text string) []Reply {
	if text == BtnCancelEdit {
		s.State = ConfirmingDraft
		return []Reply{{Text: draftSummary(s.Draft), Keyboard: confirmKeyboard()}}
	}

	field, ok := draftFieldLabels[text]
	if !ok {
		return []Reply{textReply(unrecognizedText)}
	}

	s.EditingField = field
	s.State = EditingDraftValue
	return []Reply{fieldPrompt(field)}
}

func fieldPrompt(field string) Reply {
	switch field {
	case "category":
		return Reply{Text: "📂 Choose the category:", Keyboard: vocabularyKeyboard(wardrobe.Categories)}
	case "season":
		return Reply{Text: "🌤️ Choose the season:", Keyboard: vocabularyKeyboard(wardrobe.Seasons)}
	case "occasion":
		return Reply{Text: "🎯 Choose the occasion:", Keyboard: vocabularyKeyboard(wardrobe.Occasions)}
	default:
		return textReply(fmt.Sprintf("Enter the new %s:", field))
	}
}

func (m *Machine) applyDraftValue(s *Session, text string) []Reply {
	draft := s.Draft

	switch s.EditingField {
	case "name":
		draft.Name = text
	case "tags":
		draft.Tags = splitTags(text)
	case "category":
		value := strings.ToLower(strings.TrimSpace(text))
		if !wardrobe.ValidCategory(value) {
			return []Reply{{
				Text:     "❌ Invalid category. Choose one of the options below.",
				Keyboard: vocabularyKeyboard(wardrobe.Categories),
			}}
		}
		draft.Category = value
	case "season":
		value := strings.ToLower(strings.TrimSpace(text))
		if !wardrobe.ValidSeason(value) {
			return []Reply{{
				Text:     "❌ Invalid season. Choose one of the options below.",
				Keyboard: vocabularyKeyboard(wardrobe.Seasons),
			}}
		}
		draft.Season = value
	case "occasion":
		value := strings.ToLower(strings.TrimSpace(text))
		if !wardrobe.ValidOccasion(value) {
			return []Reply{{
				Text:     "❌ Invalid occasion. Choose one of the options below.",
				Keyboard: vocabularyKeyboard(wardrobe.Occasions),
			}}
		}
		draft.Occasion = value
	}

	s.EditingField = ""
	s.State = ConfirmingDraft
	return []Reply{{Text: draftSummary(draft), Keyboard: confirmKeyboard()}}
}

func (m *Machine) bulkPhotosText(ctx context.Context, s *Session, text string) []Reply {
	switch text {
	case BtnDone:
		return m.commitBulk(ctx, s)
	case BtnCancel:
		s.Reset()
		return []Reply{menuReply("❌ Bulk upload cancelled.")}
	default:
		return []Reply{textReply(fmt.Sprintf(
			"📸 Send photos, or type '%s' when finished.", BtnDone))}
	}
}

func (m *Machine) bulkDescriptionsText(ctx context.Context, s *Session, text string) []Reply {
	switch text {
	case BtnDone:
		return m.commitBulk(ctx, s)
	case BtnCancel:
		s.Reset()
		return []Reply{menuReply("❌ Bulk upload cancelled.")}
	default:
		if len(s.Bulk) >= m.bulkCapacity {
			return []Reply{textReply(fmt.Sprintf(
				"❌ Maximum %d descriptions reached! Type '%s' to process them.",
				m.bulkCapacity, BtnDone))}
		}
		s.Bulk = append(s.Bulk, BulkEntry{Text: text})
		return []Reply{textReply(fmt.Sprintf(
			"✍️ Description %d added! (%d/%d)\n\nSend more descriptions or type '%s' when finished.",
			len(s.Bulk), len(s.Bulk), m.bulkCapacity, BtnDone))}
	}
}

// commitBulk classifies every pending entry and commits each resulting
// draft as its own item. Classification runs concurrently within this
// user's processing path; commits apply in entry order. A failure on one
// item never blocks the rest.
func (m *Machine) commitBulk(ctx context.Context, s *Session) []Reply {
	entries := s.Bulk
	if len(entries) == 0 {
		return []Reply{textReply("❌ Nothing added yet. Send some items first.")}
	}

	drafts := make([]stylist.ItemDraft, len(entries))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(bulkClassifyWorkers)
	for i, entry := range entries {
		g.Go(func() error {
			if entry.Text != "" {
				drafts[i] = m.stylist.ClassifyText(gctx, entry.Text)
			} else {
				drafts[i] = m.stylist.ClassifyPhoto(gctx, entry.PhotoKey)
			}
			return nil
		})
	}
	g.Wait() // workers never return errors; the stylist absorbs failures

	var added []string
	for i, entry := range entries {
		draft := drafts[i]

		description := fmt.Sprintf("%s - %s", draft.Name, draft.Category)
		if entry.Text != "" {
			description = entry.Text
		}

		cmd := wardrobe.AddItemCommand{
			Owner:       s.Owner,
			Name:        draft.Name,
			Category:    draft.Category,
			Description: description,
			Tags:        draft.Tags,
		}
		if entry.PhotoKey != "" {
			cmd.PhotoFileID = &entry.PhotoFileID
			cmd.PhotoKey = &entry.PhotoKey
		}

		if _, err := m.wardrobe.AddItem(ctx, cmd); err != nil {
			m.logger.Warn("bulk item commit failed", "owner", s.Owner, "position", i, "error", err)
			continue
		}
		added = append(added, draft.Name)
	}

	total := len(entries)
	s.Reset()

	if len(added) == 0 {
		return []Reply{menuReply("❌ Failed to add any items. Please try again!")}
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "✅ Successfully added %d out of %d items to your wardrobe!\n\n📋 You added:\n", len(added), total)
	for i, name := range added {
		fmt.Fprintf(&sb, "%d. %s\n", i+1, name)
	}

	return []Reply{menuReply(sb.String())}
}

func (m *Machine) composeOutfit(ctx context.Context, s *Session, request string) []Reply {
	items, err := m.wardrobe.Items(ctx, s.Owner, nil)
	if err != nil {
		m.logger.Error("wardrobe lookup failed", "owner", s.Owner, "error", err)
		s.Reset()
		return []Reply{menuReply("❌ Something went wrong. Please try again!")}
	}

	prefs, err := m.wardrobe.Preferences(ctx, s.Owner)
	if err != nil {
		m.logger.Warn("preferences lookup failed", "owner", s.Owner, "error", err)
	}

	plan := m.stylist.ComposeOutfit(ctx, request, items, prefs)

	s.State = Idle
	s.ClearScratch()

	if len(plan.SelectedItems) == 0 {
		return []Reply{textReply(
			"❌ Sorry, I couldn't create an outfit with your request. Try a different description!")}
	}

	s.LastPlan = &plan
	s.LastRequest = request

	return []Reply{{
		Text: outfitSummary(plan),
		Actions: [][]ActionButton{{
			{Label: "💾 Save Outfit", Action: ActionSaveOutfit},
			{Label: "🔄 New Outfit", Action: ActionNewOutfit},
		}},
	}}
}

func (m *Machine) saveOutfit(ctx context.Context, s *Session) []Reply {
	if s.LastPlan == nil {
		return []Reply{textReply("❌ No outfit to save. Create one first!")}
	}

	items, err := m.wardrobe.Items(ctx, s.Owner, nil)
	if err != nil {
		m.logger.Error("wardrobe lookup failed", "owner", s.Owner, "error", err)
		return []Reply{textReply("❌ Failed to save the outfit. Please try again!")}
	}

	byName := make(map[string]int64, len(items))
	for _, item := range items {
		byName[item.Name] = item.ID
	}

	var ids []int64
	for _, name := range s.LastPlan.SelectedItems {
		if id, ok := byName[name]; ok {
			ids = append(ids, id)
		}
	}
	if len(ids) == 0 {
		return []Reply{textReply("❌ Failed to save the outfit: its items are no longer in your wardrobe.")}
	}

	_, err = m.wardrobe.SaveOutfit(ctx, wardrobe.SaveOutfitCommand{
		Owner:       s.Owner,
		Name:        s.LastRequest,
		Description: strings.Join(s.LastPlan.SelectedItems, ", "),
		ItemIDs:     ids,
	})
	if err != nil {
		m.logger.Error("outfit save failed", "owner", s.Owner, "error", err)
		return []Reply{textReply("❌ Failed to save the outfit. Please try again!")}
	}

	s.LastPlan = nil
	s.LastRequest = ""
	return []Reply{textReply("💾 Outfit saved! ✅")}
}

var storedFieldLabels = map[string]string{
	BtnFieldName:        "name",
	BtnFieldCategory:    "category",
	BtnFieldTags:        "tags",
	BtnFieldDescription: "description",
}

func (m *Machine) chooseStoredField(s *Session, text string) []Reply {
	if text == BtnCancelEdit {
		s.Reset()
		return []Reply{menuReply("❌ Edit cancelled.")}
	}

	field, ok := storedFieldLabels[text]
	if !ok {
		return []Reply{textReply(unrecognizedText)}
	}

	s.EditingField = field
	s.State = EditingStoredValue
	return []Reply{fieldPrompt(field)}
}

// applyStoredValue writes the field straight through the store: stored-item
// edits commit immediately with no confirmation step.
func (m *Machine) applyStoredValue(ctx context.Context, s *Session, text string) []Reply {
	var update wardrobe.FieldUpdate

	switch s.EditingField {
	case "name":
		update = wardrobe.NameUpdate{Value: text}
	case "category":
		update = wardrobe.CategoryUpdate{Value: strings.ToLower(strings.TrimSpace(text))}
	case "tags":
		update = wardrobe.TagsUpdate{Values: splitTags(text)}
	case "description":
		update = wardrobe.DescriptionUpdate{Value: text}
	default:
		s.Reset()
		return []Reply{menuReply(unrecognizedText)}
	}

	field := s.EditingField
	err := m.wardrobe.UpdateField(ctx, s.Owner, s.EditingItem, update)
	s.Reset()

	if err != nil {
		m.logger.Warn("stored item update failed", "owner", s.Owner, "field", field, "error", err)
		return []Reply{menuReply(fmt.Sprintf("❌ Failed to update %s. Please try again.", field))}
	}
	return []Reply{menuReply(fmt.Sprintf("✅ Updated %s successfully!", field))}
}

func splitTags(text string) []string {
	parts := strings.Split(text, ",")
	tags := make([]string, 0, len(parts))
	for _, part := range parts {
		if part = strings.TrimSpace(part); part != "" {
			tags = append(tags, part)
		}
	}
	return tags
}
