package history

import "errors"

// Error taxonomy for cache operations. Callers branch with errors.Is; every
// failure path leaves the cache in a previously valid state.
var (
	// ErrAuthorityUnavailable means the remote store could not be reached
	// (network or auth failure). Surfaced as a load error, never retried
	// automatically.
	ErrAuthorityUnavailable = errors.New("authority unavailable")

	// ErrValidationRejected means a mutation was rejected locally before any
	// network round trip was made.
	ErrValidationRejected = errors.New("validation rejected")

	// ErrMutationFailed means the authority refused a write; local state was
	// left unchanged.
	ErrMutationFailed = errors.New("mutation failed")
)
