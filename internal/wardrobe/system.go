package wardrobe

import (
	"context"

	"github.com/outfitly/outfitly/pkg/pagination"
)

// System defines the public contract for wardrobe domain operations.
// Every operation is scoped to an owner; no operation may read or
// mutate another owner's rows.
type System interface {
	Handler() *Handler

	UpsertUser(ctx context.Context, user User) error

	AddItem(ctx context.Context, cmd AddItemCommand) (*ClothingItem, error)
	Items(ctx context.Context, owner int64, category *string) ([]ClothingItem, error)
	List(
		ctx context.Context,
		owner int64,
		page pagination.PageRequest,
		filters Filters,
	) (*pagination.PageResult[ClothingItem], error)
	Item(ctx context.Context, owner, id int64) (*ClothingItem, error)
	UpdateField(ctx context.Context, owner, id int64, update FieldUpdate) error
	DeleteItem(ctx context.Context, owner, id int64) error
	ListCategories(ctx context.Context, owner int64) ([]string, error)

	SaveOutfit(ctx context.Context, cmd SaveOutfitCommand) (*Outfit, error)
	Outfits(ctx context.Context, owner int64) ([]Outfit, error)

	UpsertPreferences(ctx context.Context, prefs Preferences) error
	Preferences(ctx context.Context, owner int64) (*Preferences, error)
}
