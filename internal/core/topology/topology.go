package topology

// Topology is the ordered operator sequence produced by the external
// graph builder. The order is assumed topological: every variable a node
// reads is either an external input or an output of an earlier node. The
// engine does not re-verify this; it trusts the builder and fails loudly
// on an unbound lookup at run time.
type Topology struct {
	Nodes []*Node `json:"nodes"`
}

// Validate ensures topology integrity: at least one node, valid nodes,
// and unique node identities.
func (t *Topology) Validate() error {
	if len(t.Nodes) == 0 {
		return ErrEmptyTopology
	}
	seen := make(map[string]struct{}, len(t.Nodes))
	for _, n := range t.Nodes {
		if err := n.Validate(); err != nil {
			return err
		}
		if _, exists := seen[n.FullName]; exists {
			return ErrDuplicateNode
		}
		seen[n.FullName] = struct{}{}
	}
	return nil
}
