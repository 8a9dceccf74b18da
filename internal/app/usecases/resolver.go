// Package usecases implements the execution engine: name resolution,
// input normalization, and the compiled program that wires operator
// transforms together through a per-call symbol table.
package usecases

import (
	"github.com/opflow/opflow/internal/app/dto"
	"github.com/opflow/opflow/internal/core/topology"
)

// nameSide selects which side of a node the resolver inspects.
type nameSide int

const (
	inputSide nameSide = iota
	outputSide
)

func (s nameSide) String() string {
	if s == outputSide {
		return "output"
	}
	return "input"
}

// resolveInputNames maps caller-declared input names to the canonical
// names used inside the graph, scanning the operator sequence forward.
func resolveInputNames(nodes []*topology.Node, names []string) ([]string, error) {
	return resolveNames(nodes, names, inputSide)
}

// resolveOutputNames maps caller-declared output names scanning the
// sequence in reverse: the last operator to produce a raw name is the
// authoritative one, since a later stage can re-derive a variable under
// the same raw name.
func resolveOutputNames(nodes []*topology.Node, names []string) ([]string, error) {
	return resolveNames(nodes, names, outputSide)
}

// resolveNames records raw-to-canonical mappings in scan order, stopping
// early once every declared name is mapped. Zero matches means the graph
// builder did not rename anything and the declared names pass through as
// canonical. A partial match is a configuration mismatch.
func resolveNames(nodes []*topology.Node, names []string, side nameSide) ([]string, error) {
	mapped := make(map[string]string, len(names))

scan:
	for i := range nodes {
		node := nodes[i]
		if side == outputSide {
			node = nodes[len(nodes)-1-i]
		}
		vars := node.Inputs
		if side == outputSide {
			vars = node.Outputs
		}
		for _, v := range vars {
			for _, name := range names {
				if v.RawName == name {
					if _, seen := mapped[name]; !seen {
						mapped[name] = v.Canonical()
					}
				}
			}
		}
		if len(mapped) == len(names) {
			break scan
		}
	}

	if len(mapped) == 0 {
		return append([]string(nil), names...), nil
	}

	resolved := make([]string, 0, len(names))
	for _, name := range names {
		full, ok := mapped[name]
		if !ok {
			return nil, &dto.UnresolvedNameError{Name: name, Side: side.String()}
		}
		resolved = append(resolved, full)
	}
	return resolved, nil
}
