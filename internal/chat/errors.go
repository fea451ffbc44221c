package chat

import (
	"errors"
	"net/http"
)

// Domain errors for inbound event validation.
var (
	ErrInvalidEvent = errors.New("event must carry exactly one of text, photo, or button")
	ErrMissingUser  = errors.New("event missing user id")
)

// MapHTTPStatus maps chat errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrInvalidEvent) || errors.Is(err, ErrMissingUser) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
