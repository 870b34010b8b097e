package engine

import "errors"

var (
	// ErrNotFound reports an actor or agent id that is not live
	ErrNotFound = errors.New("actor not found")

	// ErrPlayerExists rejects a second player while one is live
	ErrPlayerExists = errors.New("player already spawned")
)

var (
	// ErrUnreachable reports a spawn location with no navigable point within the search radius
	ErrUnreachable = errors.New("no navigable point near spawn location")

	// ErrCapacity reports a spawn dropped because the enemy population is at its cap
	ErrCapacity = errors.New("enemy population at capacity")
)
