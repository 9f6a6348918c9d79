// Package apperr defines the closed set of business-rule outcomes the service
// layer can return. Handlers map them to HTTP status codes; anything outside
// this set is treated as an internal error.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrForbidden: authenticated but not entitled (not the owner, not the invitee).
	ErrForbidden = errors.New("forbidden")
	// ErrNotFound: entity absent, or an ownership failure deliberately reported
	// as absence so existence does not leak.
	ErrNotFound = errors.New("not found")
	// ErrConflict: uniqueness violation (duplicate pending invite, player
	// already placed in the game).
	ErrConflict = errors.New("conflict")
	// ErrNoFields: a partial update carrying nothing applicable.
	ErrNoFields = errors.New("no updatable fields in payload")
	// ErrNotParticipant: the player is not enrolled in the match.
	ErrNotParticipant = errors.New("player is not a participant of the match")
	// ErrValidation: malformed or missing required input.
	ErrValidation = errors.New("validation failed")
)

// HTTPStatus maps an outcome to its status code. Unknown errors are 500.
func HTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrValidation), errors.Is(err, ErrNoFields):
		return http.StatusBadRequest
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrConflict), errors.Is(err, ErrNotParticipant):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// Validationf wraps ErrValidation with a field-level message.
func Validationf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: "+format, append([]interface{}{ErrValidation}, args...)...)
}
