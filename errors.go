package lrucache

import "errors"

// ErrInvalidCapacity is returned by the cache constructors when the requested
// capacity is less than one. A zero-capacity cache could never hold an entry,
// so rather than silently building a structure that misses on every lookup we
// treat the configuration as invalid and fail construction.
var ErrInvalidCapacity = errors.New("cache capacity must be at least one")
