// Package operator defines the opaque executable transform contract
// consumed by the execution engine. Concrete transforms are supplied
// entirely by the external graph builder; the engine only knows their
// positional input/output arity.
package operator

import (
	"context"
	"fmt"

	"github.com/opflow/opflow/internal/core/tensor"
)

// Transform is one executable operator step. Apply receives the node's
// input tensors in declared order and returns one tensor per declared
// output, in declared order. Implementations must be pure with respect
// to the engine: they never retain or mutate their input tensors.
type Transform interface {
	Apply(ctx context.Context, inputs ...*tensor.Tensor) ([]*tensor.Tensor, error)
}

// TransformFunc adapts a plain function to the Transform interface.
type TransformFunc func(ctx context.Context, inputs ...*tensor.Tensor) ([]*tensor.Tensor, error)

// Apply invokes the function.
func (f TransformFunc) Apply(ctx context.Context, inputs ...*tensor.Tensor) ([]*tensor.Tensor, error) {
	return f(ctx, inputs...)
}

// Map associates node full names with their executable transforms.
type Map map[string]Transform

// Lookup returns the transform registered for a node identity.
func (m Map) Lookup(fullName string) (Transform, error) {
	t, ok := m[fullName]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrTransformNotFound, fullName)
	}
	return t, nil
}
