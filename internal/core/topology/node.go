// Package topology provides node definitions
package topology

// Node is one operator step in the topologically ordered sequence.
// FullName is the node's canonical identity and keys the transform that
// executes it. Inputs and Outputs are ordered; their order is the
// positional order the transform is invoked with.
type Node struct {
	FullName string      `json:"full_name"`
	Inputs   []*Variable `json:"inputs"`
	Outputs  []*Variable `json:"outputs"`
}

// Validate ensures node integrity.
func (n *Node) Validate() error {
	if n == nil {
		return ErrNilNode
	}
	if n.FullName == "" {
		return ErrMissingNodeName
	}
	if len(n.Outputs) == 0 {
		return ErrNoOutputs
	}
	for _, v := range n.Inputs {
		if err := v.Validate(); err != nil {
			return err
		}
	}
	for _, v := range n.Outputs {
		if err := v.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// InputNames returns the canonical names of the node inputs, in order.
func (n *Node) InputNames() []string {
	names := make([]string, len(n.Inputs))
	for i, v := range n.Inputs {
		names[i] = v.Canonical()
	}
	return names
}

// OutputNames returns the canonical names of the node outputs, in order.
func (n *Node) OutputNames() []string {
	names := make([]string, len(n.Outputs))
	for i, v := range n.Outputs {
		names[i] = v.Canonical()
	}
	return names
}
