package domain

import "errors"

// Sentinel errors shared across services and repositories. Controllers map
// these to HTTP status codes; repositories translate driver errors into them.
var (
	// ErrNotFound is returned when an entity does not exist. The swap
	// response path also returns it for "not yours" and "already resolved"
	// so callers cannot probe for other leaders' requests.
	ErrNotFound = errors.New("not found")

	// ErrForbidden is returned when the caller is not the leader authorized
	// for the action.
	ErrForbidden = errors.New("forbidden")

	// ErrInvalidInput is returned for well-formed but semantically rejected
	// input, such as proposing a swap with yourself.
	ErrInvalidInput = errors.New("invalid input")

	// ErrConflict is returned when a duplicate or concurrent mutation
	// collided with an invariant: a second pending request for the same
	// schedule pair, or the losing side of a double-accept race.
	ErrConflict = errors.New("conflict")

	// ErrInconsistentState is returned when a failed swap transaction could
	// not be rolled back. The affected request must stay non-terminal and
	// the error must reach the operator log.
	ErrInconsistentState = errors.New("inconsistent state, operator reconciliation required")
)
