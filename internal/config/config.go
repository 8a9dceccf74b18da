// Package config parses the construction-time extra configuration map
// handed in by the external graph builder into a typed runtime
// configuration.
package config

import (
	"fmt"

	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/v2"

	"github.com/opflow/opflow/internal/core/tensor"
	"github.com/opflow/opflow/pkg/validation"
)

// Runtime holds the per-executor configuration. It is resolved once at
// construction time and never changes afterwards.
type Runtime struct {
	// MaxStringLength bounds the fixed-width integer encoding of textual
	// inputs. Zero means unconfigured; supplying a string input then
	// fails the call.
	MaxStringLength int `koanf:"max_string_length" validate:"gte=0"`

	// Device is the compute device every normalized input is placed on.
	Device string `koanf:"device" validate:"omitempty,device"`

	// RecordTraces enables the per-call run trace recorder.
	RecordTraces bool `koanf:"record_traces"`

	// TraceCapacity caps how many serialized run traces are retained.
	TraceCapacity int `koanf:"trace_capacity" validate:"gte=0"`
}

// DefaultTraceCapacity is used when traces are enabled without an
// explicit capacity.
const DefaultTraceCapacity = 64

// FromMap builds a validated Runtime from an extra-config map. A nil map
// yields the defaults.
func FromMap(extra map[string]any) (*Runtime, error) {
	k := koanf.New(".")
	if extra != nil {
		if err := k.Load(confmap.Provider(extra, "."), nil); err != nil {
			return nil, fmt.Errorf("loading extra config: %w", err)
		}
	}

	cfg := &Runtime{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("decoding extra config: %w", err)
	}
	if cfg.Device == "" {
		cfg.Device = tensor.CPU.String()
	}
	if cfg.TraceCapacity == 0 {
		cfg.TraceCapacity = DefaultTraceCapacity
	}

	if err := validation.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid extra config: %w", err)
	}
	return cfg, nil
}

// ParsedDevice returns the configured device as a placement tag.
func (r *Runtime) ParsedDevice() (tensor.Device, error) {
	return tensor.ParseDevice(r.Device)
}
