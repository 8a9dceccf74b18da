package tensor

import (
	"fmt"
	"time"
)

// Tensor is a typed, shaped numeric array with a device placement tag.
// PRINCIPLES:
// - KISS: flat backing slice plus a shape header, no strides
// - SRP: only responsible for holding and converting values, not math
type Tensor struct {
	dtype  DType
	shape  []int
	device Device
	data   any // []bool | []int32 | []int64 | []float32 | []float64
}

// New builds a tensor over the given backing slice. The backing slice type
// must match dtype and its length must equal the product of shape.
func New(dtype DType, shape []int, backing any) (*Tensor, error) {
	n, err := checkShape(shape)
	if err != nil {
		return nil, err
	}
	if backingLen(dtype, backing) != n {
		if backingLen(dtype, backing) < 0 {
			return nil, fmt.Errorf("%w: %s vs %T", ErrBackingMismatch, dtype, backing)
		}
		return nil, fmt.Errorf("%w: shape %v needs %d elements, backing has %d",
			ErrShapeMismatch, shape, n, backingLen(dtype, backing))
	}
	return &Tensor{dtype: dtype, shape: append([]int(nil), shape...), device: CPU, data: backing}, nil
}

// FromFloat32s builds a single-precision tensor. With no shape given the
// tensor is one-dimensional.
func FromFloat32s(v []float32, shape ...int) *Tensor {
	return mustFrom(Float32, v, len(v), shape)
}

// FromFloat64s builds a double-precision tensor.
func FromFloat64s(v []float64, shape ...int) *Tensor {
	return mustFrom(Float64, v, len(v), shape)
}

// FromInt32s builds a 32-bit integer tensor.
func FromInt32s(v []int32, shape ...int) *Tensor {
	return mustFrom(Int32, v, len(v), shape)
}

// FromInt64s builds a 64-bit integer tensor.
func FromInt64s(v []int64, shape ...int) *Tensor {
	return mustFrom(Int64, v, len(v), shape)
}

// FromBools builds a boolean tensor.
func FromBools(v []bool, shape ...int) *Tensor {
	return mustFrom(Bool, v, len(v), shape)
}

// FromTimes converts timestamps into a tensor of whole seconds elapsed
// since the Unix epoch. Sub-second precision is discarded by integer
// division of the elapsed nanoseconds.
func FromTimes(v []time.Time) *Tensor {
	secs := make([]int64, len(v))
	for i, ts := range v {
		secs[i] = ts.UnixNano() / int64(time.Second)
	}
	return FromInt64s(secs)
}

func mustFrom(dtype DType, backing any, n int, shape []int) *Tensor {
	if len(shape) == 0 {
		shape = []int{n}
	}
	t, err := New(dtype, shape, backing)
	if err != nil {
		panic(err)
	}
	return t
}

// DType returns the element type.
func (t *Tensor) DType() DType { return t.dtype }

// Device returns the placement tag.
func (t *Tensor) Device() Device { return t.device }

// Shape returns a copy of the dimensions.
func (t *Tensor) Shape() []int { return append([]int(nil), t.shape...) }

// Rank returns the number of dimensions.
func (t *Tensor) Rank() int { return len(t.shape) }

// Len returns the total number of elements.
func (t *Tensor) Len() int {
	n := 1
	for _, d := range t.shape {
		n *= d
	}
	return n
}

// Reshape returns a tensor sharing the same backing with a new shape.
// The element count must be preserved.
func (t *Tensor) Reshape(shape ...int) (*Tensor, error) {
	n, err := checkShape(shape)
	if err != nil {
		return nil, err
	}
	if n != t.Len() {
		return nil, fmt.Errorf("%w: cannot reshape %v into %v", ErrShapeMismatch, t.shape, shape)
	}
	return &Tensor{dtype: t.dtype, shape: append([]int(nil), shape...), device: t.device, data: t.data}, nil
}

// To returns a tensor placed on the given device. The backing is copied so
// that placement never aliases the source value. Moving to the current
// device returns the receiver unchanged.
func (t *Tensor) To(d Device) *Tensor {
	if t.device == d {
		return t
	}
	c := t.Clone()
	c.device = d
	return c
}

// ToFloat32 downcasts double-precision values to single precision. Tensors
// of any other element type are returned unchanged.
func (t *Tensor) ToFloat32() *Tensor {
	if t.dtype != Float64 {
		return t
	}
	src := t.data.([]float64)
	dst := make([]float32, len(src))
	for i, v := range src {
		dst[i] = float32(v)
	}
	return &Tensor{dtype: Float32, shape: append([]int(nil), t.shape...), device: t.device, data: dst}
}

// Clone returns a deep copy of the tensor.
func (t *Tensor) Clone() *Tensor {
	c := &Tensor{dtype: t.dtype, shape: append([]int(nil), t.shape...), device: t.device}
	switch d := t.data.(type) {
	case []bool:
		c.data = append([]bool(nil), d...)
	case []int32:
		c.data = append([]int32(nil), d...)
	case []int64:
		c.data = append([]int64(nil), d...)
	case []float32:
		c.data = append([]float32(nil), d...)
	case []float64:
		c.data = append([]float64(nil), d...)
	}
	return c
}

// Float32s returns the backing slice of a single-precision tensor.
func (t *Tensor) Float32s() ([]float32, error) {
	d, ok := t.data.([]float32)
	if !ok {
		return nil, fmt.Errorf("%w: have %s, want float32", ErrDTypeMismatch, t.dtype)
	}
	return d, nil
}

// Float64s returns the backing slice of a double-precision tensor.
func (t *Tensor) Float64s() ([]float64, error) {
	d, ok := t.data.([]float64)
	if !ok {
		return nil, fmt.Errorf("%w: have %s, want float64", ErrDTypeMismatch, t.dtype)
	}
	return d, nil
}

// Int32s returns the backing slice of a 32-bit integer tensor.
func (t *Tensor) Int32s() ([]int32, error) {
	d, ok := t.data.([]int32)
	if !ok {
		return nil, fmt.Errorf("%w: have %s, want int32", ErrDTypeMismatch, t.dtype)
	}
	return d, nil
}

// Int64s returns the backing slice of a 64-bit integer tensor.
func (t *Tensor) Int64s() ([]int64, error) {
	d, ok := t.data.([]int64)
	if !ok {
		return nil, fmt.Errorf("%w: have %s, want int64", ErrDTypeMismatch, t.dtype)
	}
	return d, nil
}

// Bools returns the backing slice of a boolean tensor.
func (t *Tensor) Bools() ([]bool, error) {
	d, ok := t.data.([]bool)
	if !ok {
		return nil, fmt.Errorf("%w: have %s, want bool", ErrDTypeMismatch, t.dtype)
	}
	return d, nil
}

// Equal reports whether two tensors have identical element type, shape,
// and data. Device placement is not compared.
func (t *Tensor) Equal(o *Tensor) bool {
	if t == nil || o == nil {
		return t == o
	}
	if t.dtype != o.dtype || len(t.shape) != len(o.shape) {
		return false
	}
	for i := range t.shape {
		if t.shape[i] != o.shape[i] {
			return false
		}
	}
	switch a := t.data.(type) {
	case []bool:
		return equalSlices(a, o.data.([]bool))
	case []int32:
		return equalSlices(a, o.data.([]int32))
	case []int64:
		return equalSlices(a, o.data.([]int64))
	case []float32:
		return equalSlices(a, o.data.([]float32))
	case []float64:
		return equalSlices(a, o.data.([]float64))
	}
	return false
}

// String renders a compact header such as "float32[3 1]@cpu".
func (t *Tensor) String() string {
	return fmt.Sprintf("%s%v@%s", t.dtype, t.shape, t.device)
}

func equalSlices[T comparable](a, b []T) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func checkShape(shape []int) (int, error) {
	if len(shape) == 0 {
		return 0, ErrEmptyShape
	}
	n := 1
	for _, d := range shape {
		if d < 0 {
			return 0, ErrNegativeDim
		}
		n *= d
	}
	return n, nil
}

func backingLen(dtype DType, backing any) int {
	switch d := backing.(type) {
	case []bool:
		if dtype == Bool {
			return len(d)
		}
	case []int32:
		if dtype == Int32 {
			return len(d)
		}
	case []int64:
		if dtype == Int64 {
			return len(d)
		}
	case []float32:
		if dtype == Float32 {
			return len(d)
		}
	case []float64:
		if dtype == Float64 {
			return len(d)
		}
	}
	return -1
}
