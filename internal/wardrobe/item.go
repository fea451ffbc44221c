// Package wardrobe implements the wardrobe domain for Outfitly.
// It provides types, data access, and business logic for clothing items,
// saved outfits, and per-user styling preferences.
package wardrobe

import (
	"encoding/json"
	"slices"
	"time"
)

// Closed vocabularies for item classification. Every stored item carries
// a category from this set; season and occasion describe outfits and drafts.
var (
	Categories = []string{"tops", "bottoms", "dresses", "outerwear", "shoes", "accessories"}
	Seasons    = []string{"spring", "summer", "fall", "winter", "all"}
	Occasions  = []string{"casual", "formal", "business", "party", "sport"}
)

// ValidCategory reports whether s is one of the six item categories.
func ValidCategory(s string) bool {
	return slices.Contains(Categories, s)
}

// ValidSeason reports whether s is a recognized season value.
func ValidSeason(s string) bool {
	return slices.Contains(Seasons, s)
}

// ValidOccasion reports whether s is a recognized occasion value.
func ValidOccasion(s string) bool {
	return slices.Contains(Occasions, s)
}

// User identifies a chat user. The ID is the transport's user identifier
// and is assigned externally, never generated here.
type User struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	CreatedAt time.Time `json:"created_at"`
}

// ClothingItem represents a single stored wardrobe item.
// Tags is never nil; an item without tags carries an empty slice.
type ClothingItem struct {
	ID          int64     `json:"id"`
	OwnerID     int64     `json:"owner_id"`
	Name        string    `json:"name"`
	Category    string    `json:"category"`
	Description string    `json:"description"`
	PhotoFileID *string   `json:"photo_file_id,omitempty"`
	PhotoKey    *string   `json:"photo_key,omitempty"`
	Tags        []string  `json:"tags"`
	CreatedAt   time.Time `json:"created_at"`
}

// Preferences holds a user's styling preferences. At most one row per owner;
// writes replace the whole row.
type Preferences struct {
	OwnerID   int64     `json:"owner_id"`
	Style     *string   `json:"style,omitempty"`
	Color     *string   `json:"color,omitempty"`
	Season    *string   `json:"season,omitempty"`
	UpdatedAt time.Time `json:"updated_at"`
}

// AddItemCommand carries the data needed to store a new clothing item.
type AddItemCommand struct {
	Owner       int64
	Name        string
	Category    string
	Description string
	PhotoFileID *string
	PhotoKey    *string
	Tags        []string
}

// FieldUpdate is a single-field mutation of a stored item. The closed set
// of implementations replaces string-keyed field dispatch: each variant
// carries its own typed value and validation.
type FieldUpdate interface {
	assignments() ([]assignment, error)
}

type assignment struct {
	column string
	value  any
}

// NameUpdate replaces an item's name.
type NameUpdate struct {
	Value string
}

func (u NameUpdate) assignments() ([]assignment, error) {
	if u.Value == "" {
		return nil, ErrEmptyValue
	}
	return []assignment{{"name", u.Value}}, nil
}

// CategoryUpdate replaces an item's category. The value must be one of
// the six category values.
type CategoryUpdate struct {
	Value string
}

func (u CategoryUpdate) assignments() ([]assignment, error) {
	if !ValidCategory(u.Value) {
		return nil, ErrInvalidCategory
	}
	return []assignment{{"category", u.Value}}, nil
}

// DescriptionUpdate replaces an item's free-text description.
type DescriptionUpdate struct {
	Value string
}

func (u DescriptionUpdate) assignments() ([]assignment, error) {
	return []assignment{{"description", u.Value}}, nil
}

// TagsUpdate replaces an item's tag list. A nil slice is stored as empty.
type TagsUpdate struct {
	Values []string
}

func (u TagsUpdate) assignments() ([]assignment, error) {
	tags := u.Values
	if tags == nil {
		tags = []string{}
	}
	encoded, err := json.Marshal(tags)
	if err != nil {
		return nil, err
	}
	return []assignment{{"tags", encoded}}, nil
}

// PhotoUpdate replaces an item's photo reference: the transport file
// handle and the blob storage key together.
type PhotoUpdate struct {
	FileID string
	Key    string
}

func (u PhotoUpdate) assignments() ([]assignment, error) {
	if u.FileID == "" || u.Key == "" {
		return nil, ErrEmptyValue
	}
	return []assignment{
		{"photo_file_id", u.FileID},
		{"photo_key", u.Key},
	}, nil
}
