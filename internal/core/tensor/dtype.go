// Package tensor provides the core tensor value type
// following Clean Architecture principles with zero external dependencies.
package tensor

// DType enumerates the element types a Tensor can carry.
type DType uint8

const (
	// Invalid is the zero value and never a valid element type.
	Invalid DType = iota
	// Bool represents one-byte boolean elements.
	Bool
	// Int32 represents 32-bit signed integer elements.
	Int32
	// Int64 represents 64-bit signed integer elements.
	Int64
	// Float32 represents single-precision floating point elements.
	Float32
	// Float64 represents double-precision floating point elements.
	Float64
)

// String returns the lowercase name of the element type.
func (d DType) String() string {
	switch d {
	case Bool:
		return "bool"
	case Int32:
		return "int32"
	case Int64:
		return "int64"
	case Float32:
		return "float32"
	case Float64:
		return "float64"
	default:
		return "invalid"
	}
}

// Size returns the width of one element in bytes.
func (d DType) Size() int {
	switch d {
	case Bool:
		return 1
	case Int32, Float32:
		return 4
	case Int64, Float64:
		return 8
	default:
		return 0
	}
}

// IsFloat reports whether the element type is a floating point type.
func (d DType) IsFloat() bool {
	return d == Float32 || d == Float64
}
