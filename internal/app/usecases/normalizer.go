package usecases

import (
	"fmt"
	"time"

	"github.com/opflow/opflow/internal/app/dto"
	"github.com/opflow/opflow/internal/config"
	"github.com/opflow/opflow/internal/core/frame"
	"github.com/opflow/opflow/internal/core/tensor"
	"github.com/opflow/opflow/internal/infrastructure/metrics"
)

// inputKind is the tagged classification of one raw caller input. The
// classification happens once per value; everything downstream dispatches
// on the tag instead of re-inspecting the value.
type inputKind int

const (
	kindUnsupported inputKind = iota
	kindTensor
	kindStrings
	kindTimes
	kindNumeric
)

func (k inputKind) String() string {
	switch k {
	case kindTensor:
		return "tensor"
	case kindStrings:
		return "strings"
	case kindTimes:
		return "times"
	case kindNumeric:
		return "numeric"
	default:
		return "unsupported"
	}
}

// normalizer converts heterogeneous caller inputs into tensors bound
// under the resolved canonical input names.
type normalizer struct {
	cfg        *config.Runtime
	device     tensor.Device
	inputNames []string
}

func newNormalizer(cfg *config.Runtime, device tensor.Device, inputNames []string) *normalizer {
	return &normalizer{cfg: cfg, device: device, inputNames: inputNames}
}

// normalizeAll enforces the arity contract and normalizes every
// positional input. A single frame argument whose column count equals the
// expected input count is split into per-column inputs first; that is the
// only situation a frame is accepted.
func (n *normalizer) normalizeAll(args []any) ([]*tensor.Tensor, error) {
	columnar := false
	if len(args) == 1 {
		if f, ok := args[0].(frame.Frame); ok && f.NumCols() == len(n.inputNames) {
			split := make([]any, f.NumCols())
			for i := range split {
				split[i] = f.Col(i)
			}
			args = split
			columnar = true
		}
	}
	if len(args) != len(n.inputNames) {
		return nil, &dto.ArityError{Expected: append([]string(nil), n.inputNames...), Got: len(args)}
	}

	out := make([]*tensor.Tensor, len(args))
	for i, arg := range args {
		t, err := n.normalizeOne(n.inputNames[i], arg, columnar)
		if err != nil {
			return nil, err
		}
		out[i] = t
	}
	return out, nil
}

// normalizeOne classifies a single input and applies the matching
// coercion strategy, then the shared post-steps: the double precision
// downcast and the device transfer.
func (n *normalizer) normalizeOne(name string, v any, columnar bool) (*tensor.Tensor, error) {
	kind, t, err := n.coerce(name, v)
	if err != nil {
		return nil, err
	}
	metrics.IncInputsNormalized(kind.String())

	// Frame columns become single-feature column tensors. The string
	// encoding is already two-dimensional and keeps its width.
	if columnar && kind != kindStrings && t.Rank() == 1 {
		t, err = t.Reshape(t.Len(), 1)
		if err != nil {
			return nil, fmt.Errorf("reshaping column %q: %w", name, err)
		}
	}

	t = t.ToFloat32()
	if !n.device.IsCPU() {
		t = t.To(n.device)
	}
	return t, nil
}

// coerce performs the one-shot classification and conversion.
func (n *normalizer) coerce(name string, v any) (inputKind, *tensor.Tensor, error) {
	switch in := v.(type) {
	case *tensor.Tensor:
		return kindTensor, in, nil

	case []string:
		if n.cfg.MaxStringLength <= 0 {
			return kindStrings, nil, fmt.Errorf("input %q: %w", name, dto.ErrMissingMaxStringLength)
		}
		t, err := tensor.FromStrings(in, n.cfg.MaxStringLength)
		if err != nil {
			return kindStrings, nil, fmt.Errorf("input %q: %w", name, err)
		}
		return kindStrings, t, nil

	case []time.Time:
		return kindTimes, tensor.FromTimes(in), nil

	case []float32:
		return kindNumeric, tensor.FromFloat32s(in), nil
	case []float64:
		return kindNumeric, tensor.FromFloat64s(in), nil
	case []int32:
		return kindNumeric, tensor.FromInt32s(in), nil
	case []int64:
		return kindNumeric, tensor.FromInt64s(in), nil
	case []int:
		widened := make([]int64, len(in))
		for i, x := range in {
			widened[i] = int64(x)
		}
		return kindNumeric, tensor.FromInt64s(widened), nil
	case []bool:
		return kindNumeric, tensor.FromBools(in), nil

	case [][]float32:
		flat, cols, err := flatten(name, in)
		if err != nil {
			return kindNumeric, nil, err
		}
		return kindNumeric, tensor.FromFloat32s(flat, len(in), cols), nil
	case [][]float64:
		flat, cols, err := flatten(name, in)
		if err != nil {
			return kindNumeric, nil, err
		}
		return kindNumeric, tensor.FromFloat64s(flat, len(in), cols), nil
	case [][]int64:
		flat, cols, err := flatten(name, in)
		if err != nil {
			return kindNumeric, nil, err
		}
		return kindNumeric, tensor.FromInt64s(flat, len(in), cols), nil

	case float32:
		return kindNumeric, tensor.FromFloat32s([]float32{in}), nil
	case float64:
		return kindNumeric, tensor.FromFloat64s([]float64{in}), nil
	case int:
		return kindNumeric, tensor.FromInt64s([]int64{int64(in)}), nil
	case int64:
		return kindNumeric, tensor.FromInt64s([]int64{in}), nil
	case int32:
		return kindNumeric, tensor.FromInt32s([]int32{in}), nil
	case bool:
		return kindNumeric, tensor.FromBools([]bool{in}), nil

	default:
		return kindUnsupported, nil, &dto.UnsupportedTypeError{Name: name, Value: v}
	}
}

// flatten turns a rectangular nested slice into a flat backing plus its
// column count. Ragged rows are rejected.
func flatten[T bool | int32 | int64 | float32 | float64](name string, rows [][]T) ([]T, int, error) {
	cols := 0
	if len(rows) > 0 {
		cols = len(rows[0])
	}
	flat := make([]T, 0, len(rows)*cols)
	for _, row := range rows {
		if len(row) != cols {
			return nil, 0, fmt.Errorf("input %q: ragged rows: %w", name, tensor.ErrShapeMismatch)
		}
		flat = append(flat, row...)
	}
	return flat, cols, nil
}
