package wardrobe

import (
	"errors"
	"net/http"
)

// Domain errors for wardrobe operations.
var (
	ErrNotFound        = errors.New("item not found")
	ErrOutfitNotFound  = errors.New("outfit not found")
	ErrDuplicate       = errors.New("record already exists")
	ErrInvalidCategory = errors.New("invalid category")
	ErrInvalidField    = errors.New("unknown field")
	ErrEmptyValue      = errors.New("value must not be empty")
	ErrItemNotOwned    = errors.New("outfit references items outside the wardrobe")
	ErrNoItems         = errors.New("outfit must reference at least one item")
)

// MapHTTPStatus maps wardrobe domain errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrNotFound) || errors.Is(err, ErrOutfitNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrDuplicate) {
		return http.StatusConflict
	}
	if errors.Is(err, ErrInvalidCategory) ||
		errors.Is(err, ErrInvalidField) ||
		errors.Is(err, ErrEmptyValue) ||
		errors.Is(err, ErrItemNotOwned) ||
		errors.Is(err, ErrNoItems) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
