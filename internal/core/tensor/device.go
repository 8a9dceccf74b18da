package tensor

import (
	"fmt"
	"strconv"
	"strings"
)

// DeviceKind identifies a class of compute device.
type DeviceKind string

const (
	// DeviceCPU is the default host device.
	DeviceCPU DeviceKind = "cpu"
	// DeviceCUDA is an NVIDIA GPU device.
	DeviceCUDA DeviceKind = "cuda"
	// DeviceMetal is an Apple GPU device.
	DeviceMetal DeviceKind = "mps"
)

// Device is a placement tag carried by tensors. The zero value is CPU.
type Device struct {
	Kind  DeviceKind
	Index int
}

// CPU is the default device.
var CPU = Device{Kind: DeviceCPU}

// ParseDevice parses a device spec of the form "cpu", "cuda" or "cuda:1".
func ParseDevice(s string) (Device, error) {
	if s == "" {
		return CPU, nil
	}
	kind, idx, hasIdx := strings.Cut(s, ":")
	d := Device{Kind: DeviceKind(kind)}
	switch d.Kind {
	case DeviceCPU, DeviceCUDA, DeviceMetal:
	default:
		return Device{}, fmt.Errorf("%w: %q", ErrUnknownDevice, s)
	}
	if hasIdx {
		n, err := strconv.Atoi(idx)
		if err != nil || n < 0 {
			return Device{}, fmt.Errorf("%w: %q", ErrUnknownDevice, s)
		}
		d.Index = n
	}
	return d, nil
}

// IsCPU reports whether the device is the host device.
func (d Device) IsCPU() bool {
	return d.Kind == DeviceCPU || d.Kind == ""
}

// String returns the canonical spec for the device.
func (d Device) String() string {
	if d.Kind == "" {
		return string(DeviceCPU)
	}
	if d.Index == 0 {
		return string(d.Kind)
	}
	return fmt.Sprintf("%s:%d", d.Kind, d.Index)
}
