package wardrobe

import "time"

// Outfit represents a saved combination of clothing items. ItemIDs
// references items owned by the same user; the store validates this
// on save. Outfits are created only by an explicit save and never
// mutated afterwards.
type Outfit struct {
	ID          int64     `json:"id"`
	OwnerID     int64     `json:"owner_id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	ItemIDs     []int64   `json:"item_ids"`
	Season      *string   `json:"season,omitempty"`
	Occasion    *string   `json:"occasion,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// SaveOutfitCommand carries the data needed to persist a generated outfit.
type SaveOutfitCommand struct {
	Owner       int64
	Name        string
	Description string
	ItemIDs     []int64
	Season      *string
	Occasion    *string
}
