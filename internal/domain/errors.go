package domain

import "errors"

var (
	// ErrInvalidArgument covers malformed recommendation input:
	// an empty seed list or a non-positive limit.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrNoValidSeeds is returned when none of the requested seed
	// tracks exist in the catalog.
	ErrNoValidSeeds = errors.New("no valid seed tracks")

	// ErrStoreUnavailable wraps catalog store failures that are not
	// caller cancellation.
	ErrStoreUnavailable = errors.New("catalog store unavailable")
)
