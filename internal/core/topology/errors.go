// Package topology defines domain-specific errors
package topology

import "errors"

// Domain errors - DRY principle: defined once, used everywhere
var (
	// Topology errors
	ErrEmptyTopology = errors.New("topology has no nodes")
	ErrDuplicateNode = errors.New("duplicate node full name")

	// Node errors
	ErrNilNode         = errors.New("node cannot be nil")
	ErrMissingNodeName = errors.New("node full name is required")
	ErrNoOutputs       = errors.New("node declares no outputs")

	// Variable errors
	ErrNilVariable    = errors.New("variable cannot be nil")
	ErrMissingRawName = errors.New("variable raw name is required")
)
