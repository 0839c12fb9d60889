package models

import "errors"

// Error kinds surfaced to callers as structured payloads. All of these
// are recoverable at the coordinator boundary; none terminates the
// process.
var (
	// ErrBadRequest marks a payload missing a required field or asking
	// for something the game's current state forbids.
	ErrBadRequest = errors.New("bad request")

	// ErrInvalidIdentifier marks a room or name failing the identifier
	// format rule.
	ErrInvalidIdentifier = errors.New("invalid identifier")

	// ErrNotFound marks a referenced card, game or user absent from the
	// store.
	ErrNotFound = errors.New("not found")

	// ErrInsufficientPool marks a pool too small to generate a card of
	// the required size.
	ErrInsufficientPool = errors.New("insufficient pool")

	// ErrWriteConflict marks an optimistic update that lost its race even
	// after retries.
	ErrWriteConflict = errors.New("write conflict")
)

// ErrorKind maps an error onto its wire kind string, or "internal" for
// anything unclassified.
func ErrorKind(err error) string {
	switch {
	case errors.Is(err, ErrBadRequest):
		return "bad_request"
	case errors.Is(err, ErrInvalidIdentifier):
		return "invalid_id"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrInsufficientPool):
		return "insufficient_pool"
	case errors.Is(err, ErrWriteConflict):
		return "write_conflict"
	default:
		return "internal"
	}
}
