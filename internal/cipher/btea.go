package cipher

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// ErrCipherFailure reports a buffer the btea engine cannot process. The
// caller cannot recover the device key without the cipher, so this is fatal
// for the device being parsed.
var ErrCipherFailure = errors.New("btea cipher failure")

const bteaDelta = uint32(0x9E3779B9)

// Rounds returns the round count the firmware uses for a buffer of n bytes:
// 1 + 52/words, not the canonical 6 + 52/words of reference btea.
func Rounds(n int) uint32 {
	if n < 4 {
		return 0
	}
	return uint32(1 + 52/(n/4))
}

// BteaDecrypt decrypts data in place-compatible fashion using the btea
// (XXTEA) block cipher over little-endian 32-bit words with the given round
// count. No padding: the buffer length must be a multiple of 4 and hold at
// least two words. Returns the decrypted bytes, same length as the input.
func BteaDecrypt(data []byte, key [4]uint32, rounds uint32) ([]byte, error) {
	v, err := toWords(data)
	if err != nil {
		return nil, err
	}

	n := uint32(len(v))
	y := v[0]
	for sum := rounds * bteaDelta; sum != 0; sum -= bteaDelta {
		e := (sum >> 2) & 3
		var z uint32
		for p := n - 1; p > 0; p-- {
			z = v[p-1]
			v[p] -= mx(sum, y, z, p, e, key)
			y = v[p]
		}
		z = v[n-1]
		v[0] -= mx(sum, y, z, 0, e, key)
		y = v[0]
	}

	return fromWords(v), nil
}

// BteaEncrypt is the forward transform, the exact inverse of BteaDecrypt
// with the same round count. The parsers never encrypt; this exists for key
// tooling and for building test fixtures the way the firmware would.
func BteaEncrypt(data []byte, key [4]uint32, rounds uint32) ([]byte, error) {
	v, err := toWords(data)
	if err != nil {
		return nil, err
	}

	n := uint32(len(v))
	z := v[n-1]
	var sum uint32
	for q := rounds; q > 0; q-- {
		sum += bteaDelta
		e := (sum >> 2) & 3
		var y uint32
		for p := uint32(0); p < n-1; p++ {
			y = v[p+1]
			v[p] += mx(sum, y, z, p, e, key)
			z = v[p]
		}
		y = v[0]
		v[n-1] += mx(sum, y, z, n-1, e, key)
		z = v[n-1]
	}

	return fromWords(v), nil
}

func mx(sum, y, z, p, e uint32, key [4]uint32) uint32 {
	return ((z>>5 ^ y<<2) + (y>>3 ^ z<<4)) ^ ((sum ^ y) + (key[(p&3)^e] ^ z))
}

func toWords(data []byte) ([]uint32, error) {
	if len(data)%4 != 0 || len(data) < 8 {
		return nil, fmt.Errorf("btea buffer of %d bytes: %w", len(data), ErrCipherFailure)
	}
	v := make([]uint32, len(data)/4)
	for i := range v {
		v[i] = binary.LittleEndian.Uint32(data[i*4:])
	}
	return v, nil
}

func fromWords(v []uint32) []byte {
	out := make([]byte, len(v)*4)
	for i, w := range v {
		binary.LittleEndian.PutUint32(out[i*4:], w)
	}
	return out
}
