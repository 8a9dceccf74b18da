// Package tensor defines domain-specific errors
package tensor

import "errors"

// Domain errors - DRY principle: defined once, used everywhere
var (
	ErrInvalidDType    = errors.New("invalid element type")
	ErrShapeMismatch   = errors.New("shape does not match backing length")
	ErrDTypeMismatch   = errors.New("tensor has a different element type")
	ErrBackingMismatch = errors.New("backing slice type does not match element type")
	ErrUnknownDevice   = errors.New("unknown device")
	ErrStringTooLong   = errors.New("string exceeds configured maximum length")
	ErrEmptyShape      = errors.New("shape must have at least one dimension")
	ErrNegativeDim     = errors.New("shape dimensions must be non-negative")
)
