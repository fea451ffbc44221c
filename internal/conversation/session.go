// Package conversation implements the per-user conversation state machine
// that drives every multi-step wardrobe flow: single-item add (photo or
// text), bulk add, draft editing, stored-item editing, and outfit requests.
package conversation

import (
	"sync"
	"time"

	"github.com/outfitly/outfitly/internal/stylist"
)

// State identifies the session's position in the conversation flow.
type State int

const (
	Idle State = iota
	AwaitingPhoto
	AwaitingDescription
	AwaitingBulkPhotos
	AwaitingBulkDescriptions
	ConfirmingDraft
	EditingDraftField
	EditingDraftValue
	AwaitingOutfitRequest
	EditingStoredItem
	EditingStoredValue
)

var stateNames = map[State]string{
	Idle:                     "idle",
	AwaitingPhoto:            "awaiting_photo",
	AwaitingDescription:      "awaiting_description",
	AwaitingBulkPhotos:       "awaiting_bulk_photos",
	AwaitingBulkDescriptions: "awaiting_bulk_descriptions",
	ConfirmingDraft:          "confirming_draft",
	EditingDraftField:        "editing_draft_field",
	EditingDraftValue:        "editing_draft_value",
	AwaitingOutfitRequest:    "awaiting_outfit_request",
	EditingStoredItem:        "editing_stored_item",
	EditingStoredValue:       "editing_stored_value",
}

func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return "unknown"
}

// Origin records which entry flow produced the draft currently in
// confirmation, so "confirm" routes the commit correctly.
type Origin int

const (
	OriginNone Origin = iota
	OriginPhoto
	OriginText
)

// Draft is the scratch buffer for a single in-progress item: the
// classified candidate fields plus the photo reference and raw input
// that produced them.
type Draft struct {
	stylist.ItemDraft
	PhotoFileID string
	PhotoKey    string
	RawInput    string
}

// BulkEntry is one pending input in a bulk flow: a photo reference or
// a text description, never both.
type BulkEntry struct {
	PhotoFileID string
	PhotoKey    string
	Text        string
}

// Session holds the transient conversation state for one user. It is
// never persisted; a process restart discards all in-flight sessions.
// The mutex serializes event processing per user: the orchestrator
// locks it for the duration of each event, so events for the same
// user apply strictly one at a time while other users proceed in
// parallel.
type Session struct {
	Mu sync.Mutex

	Owner        int64
	State        State
	Origin       Origin
	Draft        *Draft
	Bulk         []BulkEntry
	EditingField string
	EditingItem  int64

	// LastPlan and LastRequest survive the return to Idle so a
	// generated outfit can still be saved from its action buttons.
	LastPlan    *stylist.OutfitPlan
	LastRequest string

	LastSeen time.Time
}

// ClearScratch discards the in-progress draft, bulk buffer, and edit
// pointers. It never carries data across flows.
func (s *Session) ClearScratch() {
	s.Origin = OriginNone
	s.Draft = nil
	s.Bulk = nil
	s.EditingField = ""
	s.EditingItem = 0
}

// Reset returns the session to Idle and discards all scratch data.
func (s *Session) Reset() {
	s.State = Idle
	s.ClearScratch()
}

// Touch records activity for TTL eviction.
func (s *Session) Touch(now time.Time) {
	s.LastSeen = now
}
