// Package dto defines the error taxonomy and transfer types of the
// execution engine.
package dto

import (
	"errors"
	"fmt"
)

// Engine errors. Every one of them aborts the current call; there is no
// retry, partial result, or degraded-mode output.
var (
	// ErrUnresolvedName is a configuration mismatch: a declared name
	// failed to resolve while a sibling name did. Fatal at construction.
	ErrUnresolvedName = errors.New("declared name does not resolve to a graph variable")

	// ErrArityMismatch is raised when the number of supplied positional
	// inputs differs from the resolved input count.
	ErrArityMismatch = errors.New("input arity mismatch")

	// ErrUnsupportedInput is raised for inputs that are neither
	// array-like, list-like, a frame, nor already a tensor.
	ErrUnsupportedInput = errors.New("unsupported input type")

	// ErrMissingMaxStringLength is raised when a textual input arrives
	// without a configured maximum text length.
	ErrMissingMaxStringLength = errors.New("string input requires max_string_length in the extra config")

	// ErrUnboundVariable indicates a malformed graph: an operator or a
	// resolved output references a name with no bound value.
	ErrUnboundVariable = errors.New("variable has no bound value")

	// ErrTransformArity indicates a transform returned a different
	// number of results than its node declares outputs.
	ErrTransformArity = errors.New("transform output count does not match declared outputs")
)

// UnresolvedNameError carries the declared name that failed to resolve
// and the side it was declared on.
type UnresolvedNameError struct {
	Name string
	Side string // "input" or "output"
}

func (e *UnresolvedNameError) Error() string {
	return fmt.Sprintf("%s name %q does not resolve to a graph variable", e.Side, e.Name)
}

func (e *UnresolvedNameError) Unwrap() error { return ErrUnresolvedName }

// ArityError carries the expected resolved input names and the number of
// inputs the caller actually supplied.
type ArityError struct {
	Expected []string
	Got      int
}

func (e *ArityError) Error() string {
	return fmt.Sprintf("expected %d inputs %v, got %d", len(e.Expected), e.Expected, e.Got)
}

func (e *ArityError) Unwrap() error { return ErrArityMismatch }

// UnsupportedTypeError names the offending input and its Go type.
type UnsupportedTypeError struct {
	Name  string
	Value any
}

func (e *UnsupportedTypeError) Error() string {
	return fmt.Sprintf("input %q has unsupported type %T", e.Name, e.Value)
}

func (e *UnsupportedTypeError) Unwrap() error { return ErrUnsupportedInput }

// UnboundVariableError names the missing variable and, when known, the
// node whose execution required it. An empty Node means the variable was
// a resolved final output no operator ever produced.
type UnboundVariableError struct {
	Name string
	Node string
}

func (e *UnboundVariableError) Error() string {
	if e.Node == "" {
		return fmt.Sprintf("output %q was resolved but never produced", e.Name)
	}
	return fmt.Sprintf("node %q reads %q which has no bound value", e.Node, e.Name)
}

func (e *UnboundVariableError) Unwrap() error { return ErrUnboundVariable }
