// Package operator defines domain-specific errors
package operator

import "errors"

// Domain errors
var (
	ErrTransformNotFound = errors.New("no transform registered for node")
)
