// Package topology provides the compiled operator graph entities
// following Clean Architecture principles with zero external dependencies.
package topology

// Variable identifies one graph variable on the input or output side of a
// node. RawName is the caller-facing name and may repeat across the graph;
// FullName is the unique canonical identifier assigned by the upstream
// graph builder. A missing FullName means the builder did not rename the
// variable.
type Variable struct {
	RawName  string `json:"raw_name"`
	FullName string `json:"full_name,omitempty"`
}

// Canonical returns the name used inside the symbol table during
// execution: the full name when assigned, the raw name otherwise.
func (v *Variable) Canonical() string {
	if v.FullName != "" {
		return v.FullName
	}
	return v.RawName
}

// Validate ensures variable integrity.
func (v *Variable) Validate() error {
	if v == nil {
		return ErrNilVariable
	}
	if v.RawName == "" {
		return ErrMissingRawName
	}
	return nil
}
