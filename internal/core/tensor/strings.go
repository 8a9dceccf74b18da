package tensor

import (
	"encoding/binary"
	"fmt"
)

// FromStrings encodes a string array into a fixed-width int32 tensor.
// Each string's UTF-8 bytes are zero-padded to the configured maximum
// length rounded up to a multiple of four, then packed little-endian into
// int32 lanes. The result has shape (len(vals), width/4). A string longer
// than maxLen bytes is rejected rather than truncated.
func FromStrings(vals []string, maxLen int) (*Tensor, error) {
	if maxLen <= 0 {
		return nil, fmt.Errorf("%w: maximum length must be positive, got %d", ErrStringTooLong, maxLen)
	}
	width := (maxLen + 3) / 4 * 4
	lanes := width / 4
	data := make([]int32, len(vals)*lanes)
	buf := make([]byte, width)
	for i, s := range vals {
		if len(s) > maxLen {
			return nil, fmt.Errorf("%w: %q has %d bytes, maximum is %d", ErrStringTooLong, s, len(s), maxLen)
		}
		copy(buf, s)
		for j := len(s); j < width; j++ {
			buf[j] = 0
		}
		for lane := 0; lane < lanes; lane++ {
			data[i*lanes+lane] = int32(binary.LittleEndian.Uint32(buf[lane*4:]))
		}
	}
	return New(Int32, []int{len(vals), lanes}, data)
}
