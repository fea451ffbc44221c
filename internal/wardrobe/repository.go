package wardrobe

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/outfitly/outfitly/pkg/pagination"
	"github.com/outfitly/outfitly/pkg/query"
	"github.com/outfitly/outfitly/pkg/repository"
	"github.com/outfitly/outfitly/pkg/storage"
)

type repo struct {
	db         *sql.DB
	storage    storage.System
	logger     *slog.Logger
	pagination pagination.Config
}

// New creates a wardrobe repository implementing the System interface.
func New(
	db *sql.DB,
	store storage.System,
	logger *slog.Logger,
	pagination pagination.Config,
) System {
	return &repo{
		db:         db,
		storage:    store,
		logger:     logger.With("system", "wardrobe"),
		pagination: pagination,
	}
}

func (r *repo) Handler() *Handler {
	return NewHandler(r, r.logger, r.pagination)
}

func (r *repo) UpsertUser(ctx context.Context, user User) error {
	q := `
		INSERT INTO users (user_id, username, first_name, last_name)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id) DO UPDATE SET
			username = EXCLUDED.username,
			first_name = EXCLUDED.first_name,
			last_name = EXCLUDED.last_name`

	if _, err := r.db.ExecContext(ctx, q, user.ID, user.Username, user.FirstName, user.LastName); err != nil {
		return fmt.Errorf("upsert user %d: %w", user.ID, err)
	}
	return nil
}

func (r *repo) AddItem(ctx context.Context, cmd AddItemCommand) (*ClothingItem, error) {
	if !ValidCategory(cmd.Category) {
		return nil, ErrInvalidCategory
	}

	tags := cmd.Tags
	if tags == nil {
		tags = []string{}
	}
	encoded, err := json.Marshal(tags)
	if err != nil {
		return nil, fmt.Errorf("encode tags: %w", err)
	}

	q := `
		INSERT INTO clothes (user_id, name, category, description, photo_file_id, photo_key, tags)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, user_id, name, category, description, photo_file_id, photo_key, tags, created_at`

	insertArgs := []any{
		cmd.Owner,
		cmd.Name,
		cmd.Category,
		cmd.Description,
		cmd.PhotoFileID,
		cmd.PhotoKey,
		encoded,
	}

	item, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (ClothingItem, error) {
		return repository.QueryOne(ctx, tx, q, insertArgs, scanItem)
	})
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("item added", "id", item.ID, "owner", item.OwnerID, "category", item.Category)
	return &item, nil
}

func (r *repo) Items(ctx context.Context, owner int64, category *string) ([]ClothingItem, error) {
	q, args := query.
		NewBuilder(itemProjection, defaultSort).
		WhereEquals("OwnerID", owner).
		WhereEquals("Category", category).
		Build()

	items, err := repository.QueryMany(ctx, r.db, q, args, scanItem)
	if err != nil {
		return nil, fmt.Errorf("query items: %w", err)
	}
	return items, nil
}

func (r *repo) List(
	ctx context.Context,
	owner int64,
	page pagination.PageRequest,
	filters Filters,
) (*pagination.PageResult[ClothingItem], error) {
	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(itemProjection, defaultSort).
		WhereEquals("OwnerID", owner).
		WhereSearch(page.Search, "Name", "Description")

	filters.Apply(qb)

	if len(page.Sort) > 0 {
		qb.OrderByFields(page.Sort)
	}

	countSQL, countArgs := qb.BuildCount()
	var total int
	if err := r.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count items: %w", err)
	}

	pageSQL, pageArgs := qb.BuildPage(page.Page, page.PageSize)
	items, err := repository.QueryMany(ctx, r.db, pageSQL, pageArgs, scanItem)
	if err != nil {
		return nil, fmt.Errorf("query items: %w", err)
	}

	result := pagination.NewPageResult(items, total, page.Page, page.PageSize)
	return &result, nil
}

func (r *repo) Item(ctx context.Context, owner, id int64) (*ClothingItem, error) {
	q, args := query.
		NewBuilder(itemProjection).
		WhereEquals("ID", id).
		WhereEquals("OwnerID", owner).
		BuildSingleOrNull()

	item, err := repository.QueryOne(ctx, r.db, q, args, scanItem)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &item, nil
}

func (r *repo) UpdateField(ctx context.Context, owner, id int64, update FieldUpdate) error {
	assigns, err := update.assignments()
	if err != nil {
		return err
	}

	sets := make([]string, len(assigns))
	args := make([]any, 0, len(assigns)+2)
	for i, a := range assigns {
		sets[i] = fmt.Sprintf("%s = $%d", a.column, i+1)
		args = append(args, a.value)
	}
	args = append(args, id, owner)

	q := fmt.Sprintf(
		"UPDATE clothes SET %s WHERE id = $%d AND user_id = $%d",
		strings.Join(sets, ", "),
		len(assigns)+1,
		len(assigns)+2,
	)

	if err := repository.ExecExpectOne(ctx, r.db, q, args...); err != nil {
		return repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("item updated", "id", id, "owner", owner)
	return nil
}

func (r *repo) DeleteItem(ctx context.Context, owner, id int64) error {
	item, err := r.Item(ctx, owner, id)
	if err != nil {
		return err
	}

	if err := repository.ExecExpectOne(
		ctx, r.db,
		"DELETE FROM clothes WHERE id = $1 AND user_id = $2",
		id, owner,
	); err != nil {
		return repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	// Blob cleanup is best-effort: the row is gone either way.
	if item.PhotoKey != nil {
		if delErr := r.storage.Delete(ctx, *item.PhotoKey); delErr != nil {
			r.logger.Warn("photo blob delete failed", "key", *item.PhotoKey, "error", delErr)
		}
	}

	r.logger.Info("item deleted", "id", id, "owner", owner)
	return nil
}

func (r *repo) ListCategories(ctx context.Context, owner int64) ([]string, error) {
	categories, err := repository.QueryMany(
		ctx, r.db,
		"SELECT DISTINCT category FROM clothes WHERE user_id = $1 ORDER BY category",
		[]any{owner},
		func(s repository.Scanner) (string, error) {
			var c string
			err := s.Scan(&c)
			return c, err
		},
	)
	if err != nil {
		return nil, fmt.Errorf("query categories: %w", err)
	}
	return categories, nil
}

func (r *repo) SaveOutfit(ctx context.Context, cmd SaveOutfitCommand) (*Outfit, error) {
	if len(cmd.ItemIDs) == 0 {
		return nil, ErrNoItems
	}

	if err := r.verifyOwnership(ctx, cmd.Owner, cmd.ItemIDs); err != nil {
		return nil, err
	}

	encoded, err := json.Marshal(cmd.ItemIDs)
	if err != nil {
		return nil, fmt.Errorf("encode item ids: %w", err)
	}

	q := `
		INSERT INTO outfits (user_id, name, description, clothes_ids, season, occasion)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, user_id, name, description, clothes_ids, season, occasion, created_at`

	insertArgs := []any{
		cmd.Owner,
		cmd.Name,
		cmd.Description,
		encoded,
		cmd.Season,
		cmd.Occasion,
	}

	outfit, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Outfit, error) {
		return repository.QueryOne(ctx, tx, q, insertArgs, scanOutfit)
	})
	if err != nil {
		return nil, repository.MapError(err, ErrOutfitNotFound, ErrDuplicate)
	}

	r.logger.Info("outfit saved", "id", outfit.ID, "owner", outfit.OwnerID, "items", len(outfit.ItemIDs))
	return &outfit, nil
}

func (r *repo) Outfits(ctx context.Context, owner int64) ([]Outfit, error) {
	q, args := query.
		NewBuilder(outfitProjection, defaultSort).
		WhereEquals("OwnerID", owner).
		Build()

	outfits, err := repository.QueryMany(ctx, r.db, q, args, scanOutfit)
	if err != nil {
		return nil, fmt.Errorf("query outfits: %w", err)
	}
	return outfits, nil
}

func (r *repo) UpsertPreferences(ctx context.Context, prefs Preferences) error {
	q := `
		INSERT INTO user_preferences (user_id, style_preference, color_preference, season_preference, updated_at)
		VALUES ($1, $2, $3, $4, now())
		ON CONFLICT (user_id) DO UPDATE SET
			style_preference = EXCLUDED.style_preference,
			color_preference = EXCLUDED.color_preference,
			season_preference = EXCLUDED.season_preference,
			updated_at = now()`

	if _, err := r.db.ExecContext(ctx, q, prefs.OwnerID, prefs.Style, prefs.Color, prefs.Season); err != nil {
		return fmt.Errorf("upsert preferences %d: %w", prefs.OwnerID, err)
	}

	r.logger.Info("preferences updated", "owner", prefs.OwnerID)
	return nil
}

// Preferences returns the owner's preferences, or nil when none are stored.
// Absence is not an error.
func (r *repo) Preferences(ctx context.Context, owner int64) (*Preferences, error) {
	q := `
		SELECT user_id, style_preference, color_preference, season_preference, updated_at
		FROM user_preferences
		WHERE user_id = $1`

	prefs, err := repository.QueryOne(ctx, r.db, q, []any{owner}, scanPreferences)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("query preferences: %w", err)
	}
	return &prefs, nil
}

// verifyOwnership confirms every referenced item exists and belongs to owner.
func (r *repo) verifyOwnership(ctx context.Context, owner int64, ids []int64) error {
	unique := make(map[int64]struct{}, len(ids))
	values := make([]any, 0, len(ids))
	for _, id := range ids {
		if _, ok := unique[id]; ok {
			continue
		}
		unique[id] = struct{}{}
		values = append(values, id)
	}

	countSQL, args := query.
		NewBuilder(itemProjection).
		WhereEquals("OwnerID", owner).
		WhereIn("ID", values).
		BuildCount()

	var count int
	if err := r.db.QueryRowContext(ctx, countSQL, args...).Scan(&count); err != nil {
		return fmt.Errorf("verify outfit items: %w", err)
	}
	if count != len(unique) {
		return ErrItemNotOwned
	}
	return nil
}
