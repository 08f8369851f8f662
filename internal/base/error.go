package base

import "errors"

var (
	ErrInvalidNodeID = errors.New("invalid node id")
	ErrNodeFreed     = errors.New("node has been freed")
)
