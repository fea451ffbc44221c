package wardrobe

import (
	"encoding/json"
	"net/url"

	"github.com/outfitly/outfitly/pkg/query"
	"github.com/outfitly/outfitly/pkg/repository"
)

var itemProjection = query.
	NewProjectionMap("public", "clothes", "c").
	Project("id", "ID").
	Project("user_id", "OwnerID").
	Project("name", "Name").
	Project("category", "Category").
	Project("description", "Description").
	Project("photo_file_id", "PhotoFileID").
	Project("photo_key", "PhotoKey").
	Project("tags", "Tags").
	Project("created_at", "CreatedAt")

var outfitProjection = query.
	NewProjectionMap("public", "outfits", "o").
	Project("id", "ID").
	Project("user_id", "OwnerID").
	Project("name", "Name").
	Project("description", "Description").
	Project("clothes_ids", "ItemIDs").
	Project("season", "Season").
	Project("occasion", "Occasion").
	Project("created_at", "CreatedAt")

var defaultSort = query.SortField{
	Field:      "CreatedAt",
	Descending: true,
}

// Filters contains optional filtering criteria for item queries.
// Nil fields are ignored.
type Filters struct {
	Category *string `json:"category,omitempty"`
}

// Apply adds filter conditions to a query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	return b.WhereEquals("Category", f.Category)
}

// FiltersFromQuery extracts filter values from URL query parameters.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters

	if c := values.Get("category"); c != "" {
		f.Category = &c
	}

	return f
}

func scanItem(s repository.Scanner) (ClothingItem, error) {
	var (
		item ClothingItem
		tags []byte
	)

	err := s.Scan(
		&item.ID,
		&item.OwnerID,
		&item.Name,
		&item.Category,
		&item.Description,
		&item.PhotoFileID,
		&item.PhotoKey,
		&tags,
		&item.CreatedAt,
	)
	if err != nil {
		return item, err
	}

	if err := json.Unmarshal(tags, &item.Tags); err != nil {
		return item, err
	}
	if item.Tags == nil {
		item.Tags = []string{}
	}

	return item, nil
}

func scanPreferences(s repository.Scanner) (Preferences, error) {
	var p Preferences
	err := s.Scan(
		&p.OwnerID,
		&p.Style,
		&p.Color,
		&p.Season,
		&p.UpdatedAt,
	)
	return p, err
}

func scanOutfit(s repository.Scanner) (Outfit, error) {
	var (
		outfit Outfit
		ids    []byte
	)

	err := s.Scan(
		&outfit.ID,
		&outfit.OwnerID,
		&outfit.Name,
		&outfit.Description,
		&ids,
		&outfit.Season,
		&outfit.Occasion,
		&outfit.CreatedAt,
	)
	if err != nil {
		return outfit, err
	}

	if err := json.Unmarshal(ids, &outfit.ItemIDs); err != nil {
		return outfit, err
	}
	if outfit.ItemIDs == nil {
		outfit.ItemIDs = []int64{}
	}

	return outfit, nil
}
