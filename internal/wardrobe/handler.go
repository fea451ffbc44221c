package wardrobe

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/outfitly/outfitly/pkg/handlers"
	"github.com/outfitly/outfitly/pkg/pagination"
	"github.com/outfitly/outfitly/pkg/routes"
)

// Handler provides HTTP endpoints for wardrobe operations. The owner is a
// path parameter on every route; there is no authenticated surface, callers
// are trusted infrastructure (the chat webhook and internal tooling).
type Handler struct {
	sys        System
	logger     *slog.Logger
	pagination pagination.Config
}

// UpdateRequest carries a single-field item update. Field selects the
// variant; Value is decoded according to the selected field.
type UpdateRequest struct {
	Field string          `json:"field"`
	Value json.RawMessage `json:"value"`
}

// SaveOutfitRequest is the JSON body for saving an outfit.
type SaveOutfitRequest struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	ItemIDs     []int64 `json:"item_ids"`
	Season      *string `json:"season,omitempty"`
	Occasion    *string `json:"occasion,omitempty"`
}

// PreferencesRequest is the JSON body for replacing a user's preferences.
type PreferencesRequest struct {
	Style  *string `json:"style,omitempty"`
	Color  *string `json:"color,omitempty"`
	Season *string `json:"season,omitempty"`
}

// NewHandler creates a Handler with the given system, logger, and pagination config.
func NewHandler(sys System, logger *slog.Logger, pagination pagination.Config) *Handler {
	return &Handler{
		sys:        sys,
		logger:     logger.With("handler", "wardrobe"),
		pagination: pagination,
	}
}

// Routes returns the route group definition for wardrobe endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/wardrobe",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "/{owner}/items", Handler: h.List},
			{Method: "GET", Pattern: "/{owner}/items/{id}", Handler: h.Find},
			{Method: "PATCH", Pattern: "/{owner}/items/{id}", Handler: h.Update},
			{Method: "DELETE", Pattern: "/{owner}/items/{id}", Handler: h.Delete},
			{Method: "GET", Pattern: "/{owner}/categories", Handler: h.Categories},
			{Method: "GET", Pattern: "/{owner}/outfits", Handler: h.Outfits},
			{Method: "POST", Pattern: "/{owner}/outfits", Handler: h.SaveOutfit},
			{Method: "GET", Pattern: "/{owner}/preferences", Handler: h.Preferences},
			{Method: "PUT", Pattern: "/{owner}/preferences", Handler: h.UpsertPreferences},
		},
	}
}

// List returns a paginated list of the owner's items with optional filters.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	owner, ok := h.owner(w, r)
	if !ok {
		return
	}

	page := pagination.PageRequestFromQuery(r.URL.Query(), h.pagination)
	filters := FiltersFromQuery(r.URL.Query())

	result, err := h.sys.List(r.Context(), owner, page, filters)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// Find returns a single item by id, scoped to the owner.
func (h *Handler) Find(w http.ResponseWriter, r *http.Request) {
	owner, id, ok := h.ownerAndID(w, r)
	if !ok {
		return
	}

	item, err := h.sys.Item(r.Context(), owner, id)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, item)
}

// Update applies a single-field update to an item.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	owner, id, ok := h.ownerAndID(w, r)
	if !ok {
		return
	}

	var req UpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	update, err := decodeFieldUpdate(req)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	if err := h.sys.UpdateField(r.Context(), owner, id, update); err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Delete removes an item and its photo blob.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	owner, id, ok := h.ownerAndID(w, r)
	if !ok {
		return
	}

	if err := h.sys.DeleteItem(r.Context(), owner, id); err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Categories returns the distinct categories present in the owner's wardrobe.
func (h *Handler) Categories(w http.ResponseWriter, r *http.Request) {
	owner, ok := h.owner(w, r)
	if !ok {
		return
	}

	categories, err := h.sys.ListCategories(r.Context(), owner)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, categories)
}

// Outfits returns the owner's saved outfits, newest first.
func (h *Handler) Outfits(w http.ResponseWriter, r *http.Request) {
	owner, ok := h.owner(w, r)
	if !ok {
		return
	}

	outfits, err := h.sys.Outfits(r.Context(), owner)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, outfits)
}

// SaveOutfit persists a new outfit for the owner.
func (h *Handler) SaveOutfit(w http.ResponseWriter, r *http.Request) {
	owner, ok := h.owner(w, r)
	if !ok {
		return
	}

	var req SaveOutfitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	outfit, err := h.sys.SaveOutfit(r.Context(), SaveOutfitCommand{
		Owner:       owner,
		Name:        req.Name,
		Description: req.Description,
		ItemIDs:     req.ItemIDs,
		Season:      req.Season,
		Occasion:    req.Occasion,
	})
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusCreated, outfit)
}

// Preferences returns the owner's stored preferences, or 404 when none exist.
func (h *Handler) Preferences(w http.ResponseWriter, r *http.Request) {
	owner, ok := h.owner(w, r)
	if !ok {
		return
	}

	prefs, err := h.sys.Preferences(r.Context(), owner)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
		return
	}
	if prefs == nil {
		handlers.RespondError(w, h.logger, http.StatusNotFound, ErrNotFound)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, prefs)
}

// UpsertPreferences replaces the owner's preferences.
func (h *Handler) UpsertPreferences(w http.ResponseWriter, r *http.Request) {
	owner, ok := h.owner(w, r)
	if !ok {
		return
	}

	var req PreferencesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	if err := h.sys.UpsertPreferences(r.Context(), Preferences{
		OwnerID: owner,
		Style:   req.Style,
		Color:   req.Color,
		Season:  req.Season,
	}); err != nil {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) owner(w http.ResponseWriter, r *http.Request) (int64, bool) {
	owner, err := strconv.ParseInt(r.PathValue("owner"), 10, 64)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return 0, false
	}
	return owner, true
}

func (h *Handler) ownerAndID(w http.ResponseWriter, r *http.Request) (int64, int64, bool) {
	owner, ok := h.owner(w, r)
	if !ok {
		return 0, 0, false
	}

	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return 0, 0, false
	}

	return owner, id, true
}

func decodeFieldUpdate(req UpdateRequest) (FieldUpdate, error) {
	switch req.Field {
	case "name":
		var v string
		if err := json.Unmarshal(req.Value, &v); err != nil {
			return nil, err
		}
		return NameUpdate{Value: v}, nil
	case "category":
		var v string
		if err := json.Unmarshal(req.Value, &v); err != nil {
			return nil, err
		}
		return CategoryUpdate{Value: v}, nil
	case "description":
		var v string
		if err := json.Unmarshal(req.Value, &v); err != nil {
			return nil, err
		}
		return DescriptionUpdate{Value: v}, nil
	case "tags":
		var v []string
		if err := json.Unmarshal(req.Value, &v); err != nil {
			return nil, err
		}
		return TagsUpdate{Values: v}, nil
	case "photo":
		var v struct {
			FileID string `json:"file_id"`
			Key    string `json:"key"`
		}
		if err := json.Unmarshal(req.Value, &v); err != nil {
			return nil, err
		}
		return PhotoUpdate{FileID: v.FileID, Key: v.Key}, nil
	default:
		return nil, ErrInvalidField
	}
}
