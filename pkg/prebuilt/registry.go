package prebuilt

import (
	"fmt"

	"github.com/opflow/opflow/internal/core/operator"
)

// Registry holds named transform constructors so a graph builder can
// assemble an operator map from configuration.
type Registry struct {
	transforms map[string]operator.Transform
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{transforms: make(map[string]operator.Transform)}
}

// Register adds or replaces a named transform.
func (r *Registry) Register(name string, t operator.Transform) {
	r.transforms[name] = t
}

// MustRegister panics on duplicate names; useful during init() setup.
func (r *Registry) MustRegister(name string, t operator.Transform) {
	if _, exists := r.transforms[name]; exists {
		panic(fmt.Sprintf("transform already registered: %s", name))
	}
	r.transforms[name] = t
}

// Get retrieves a named transform.
func (r *Registry) Get(name string) (operator.Transform, bool) {
	t, ok := r.transforms[name]
	return t, ok
}
