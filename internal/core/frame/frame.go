// Package frame defines the minimal columnar container contract consumed
// by the execution engine. A frame is only ever split into its columns;
// richer tabular behaviour belongs to the caller's own container.
package frame

// Frame is a read-only columnar container. Col returns the column values
// as a plain Go slice; the engine classifies and converts them the same
// way it treats positional inputs.
type Frame interface {
	NumCols() int
	Col(i int) any
	ColName(i int) string
}

// Columns is a simple in-memory Frame implementation, mainly for tests
// and small callers that do not carry their own container.
type Columns struct {
	names []string
	cols  []any
}

// NewColumns creates an empty container.
func NewColumns() *Columns {
	return &Columns{}
}

// Add appends a named column and returns the container for chaining.
// Values must be a slice; the container stores it as supplied.
func (c *Columns) Add(name string, values any) *Columns {
	c.names = append(c.names, name)
	c.cols = append(c.cols, values)
	return c
}

// NumCols returns the number of columns.
func (c *Columns) NumCols() int { return len(c.cols) }

// Col returns the values of column i.
func (c *Columns) Col(i int) any { return c.cols[i] }

// ColName returns the name of column i.
func (c *Columns) ColName(i int) string { return c.names[i] }
