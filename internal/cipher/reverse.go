// Package cipher implements the two primitives of the device key-obfuscation
// scheme: the 4-byte group reversal applied to stored key material, and the
// btea (XXTEA) variant used to cipher v1/v2 device keys under the generic
// key. It also loads external per-device key files.
package cipher

import (
	"errors"
	"fmt"
)

// ErrInvalidLength reports a buffer whose length is not a multiple of 4.
var ErrInvalidLength = errors.New("buffer length must be a multiple of 4")

// ReverseBytes reverses the byte order within each consecutive 4-byte group
// of the input, keeping group order. This is the device's own de-obfuscation
// step for stored key material; applying it twice returns the input.
func ReverseBytes(input []byte) ([]byte, error) {
	if len(input)%4 != 0 {
		return nil, fmt.Errorf("reverse %d bytes: %w", len(input), ErrInvalidLength)
	}

	out := make([]byte, len(input))
	for i := 0; i < len(input); i += 4 {
		out[i] = input[i+3]
		out[i+1] = input[i+2]
		out[i+2] = input[i+1]
		out[i+3] = input[i]
	}
	return out, nil
}
