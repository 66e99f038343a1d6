// Package varint implements VarInt16, a little-endian base-128 variable-length
// encoding of an unsigned 16-bit value into 1-3 bytes: each byte carries 7
// data bits, with the top bit set on every byte except the last.
//
// VarInt16 is deliberately narrower than the standard library's
// encoding/binary.Uvarint (which targets uint64 and up to 10 bytes): the
// blob wire format zig-zags a 16-bit delta, so 3 bytes is both the practical
// and the structural maximum, and a payload that needs a 4th continuation
// byte is corrupt. This mirrors the teacher's own varint usage in
// encoding/ts_delta.go, narrowed to the 16-bit domain the PSP wire format
// requires.
package varint

import (
	"fmt"

	"github.com/tomtom-international/premium-sp-blob/errs"
)

// MaxLen is the largest number of bytes Encode ever produces.
const MaxLen = 3

// Encode appends the VarInt16 encoding of u to dst and returns the extended
// slice.
func Encode(dst []byte, u uint16) []byte {
	for u >= 0x80 {
		dst = append(dst, byte(u)|0x80)
		u >>= 7
	}

	return append(dst, byte(u))
}

// Len returns the number of bytes Encode(nil, u) would produce, without
// allocating.
func Len(u uint16) int {
	switch {
	case u <= 0x7F:
		return 1
	case u <= 0x3FFF:
		return 2
	default:
		return 3
	}
}

// Decode reads a VarInt16 from the front of data, returning the decoded
// value and the number of bytes consumed.
//
// It fails with errs.ErrTruncatedPayload if data ends before a terminating
// byte (top bit clear) is found, or if decoding would require a 4th
// continuation byte — the only structural error this layer can signal.
func Decode(data []byte) (uint16, int, error) {
	var result uint32

	for shift := 0; ; shift += 7 {
		if shift >= 21 {
			return 0, 0, fmt.Errorf("%w: varint16 continues past 3 bytes", errs.ErrTruncatedPayload)
		}
		if len(data) == 0 {
			return 0, 0, fmt.Errorf("%w: varint16 truncated at shift %d", errs.ErrTruncatedPayload, shift)
		}

		b := data[0]
		data = data[1:]
		result |= uint32(b&0x7F) << shift

		if b&0x80 == 0 {
			return uint16(result), shift/7 + 1, nil
		}
	}
}
