package bptree

import "errors"

//goland:noinspection GoUnusedGlobalVariable
var (
	ErrInvalidDegree    = errors.New("degree must be at least 3")
	ErrInvalidCacheSize = errors.New("search cache size cannot be negative")
	ErrCorruption       = errors.New("tree corruption detected")
	ErrCursorStale      = errors.New("tree modified since cursor was positioned")
)
