package store

import "errors"

var (
	// ErrDuplicateNode is returned when a node id is already taken
	ErrDuplicateNode = errors.New("duplicate node id")
	// ErrSelfLoop is returned for an edge whose endpoints are the same node
	ErrSelfLoop = errors.New("self-loop not allowed")
	// ErrUnknownNode is returned when a node id does not exist
	ErrUnknownNode = errors.New("unknown node")
	// ErrUnknownEdge is returned when an edge id does not exist
	ErrUnknownEdge = errors.New("unknown edge")
	// ErrEmptyID is returned for a node without an id
	ErrEmptyID = errors.New("empty node id")
)
