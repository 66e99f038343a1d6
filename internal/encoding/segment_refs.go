package encoding

import (
	"fmt"

	"github.com/tomtom-international/premium-sp-blob/endian"
	"github.com/tomtom-international/premium-sp-blob/errs"
)

// EncodeSegmentRefs encodes the ordered list of segment reference strings
// carried by a batch archive (package batch) into a length-prefixed binary
// format: [Count: uint16] [Len1: uint16][Ref1: UTF-8] [Len2: uint16][Ref2: UTF-8] ...
//
// This catalog lets a batch archive disambiguate SegmentIDs that collide
// (two distinct references hashing to the same uint64) without storing the
// full reference string inline with every blob.
func EncodeSegmentRefs(refs []string, engine endian.EndianEngine) ([]byte, error) {
	if len(refs) > 65535 {
		return nil, fmt.Errorf("%w: segment count %d exceeds maximum 65535", errs.ErrSegmentRefTooLong, len(refs))
	}

	totalSize := 2
	for _, ref := range refs {
		refLen := len(ref)
		if refLen > 65535 {
			return nil, fmt.Errorf("%w: segment reference %q exceeds maximum length 65535 bytes", errs.ErrSegmentRefTooLong, ref)
		}
		totalSize += 2 + refLen
	}

	buf := make([]byte, totalSize)
	offset := 0

	engine.PutUint16(buf[offset:], uint16(len(refs))) //nolint:gosec
	offset += 2

	for _, ref := range refs {
		refBytes := []byte(ref)
		refLen := len(refBytes)

		engine.PutUint16(buf[offset:], uint16(refLen)) //nolint:gosec
		offset += 2

		copy(buf[offset:], refBytes)
		offset += refLen
	}

	return buf, nil
}

// DecodeSegmentRefs decodes a segment-reference catalog produced by
// EncodeSegmentRefs, returning the references in order and the number of
// bytes consumed.
func DecodeSegmentRefs(data []byte, engine endian.EndianEngine) ([]string, int, error) {
	offset := 0

	if len(data) < offset+2 {
		return nil, 0, fmt.Errorf("%w: cannot read segment count (need 2 bytes, have %d)", errs.ErrInvalidSegmentRefsPayload, len(data))
	}

	count := engine.Uint16(data[offset:])
	offset += 2

	refs := make([]string, count)

	for i := 0; i < int(count); i++ {
		if len(data) < offset+2 {
			return nil, 0, fmt.Errorf("%w: cannot read length for segment ref %d (need 2 bytes at offset %d, have %d total)",
				errs.ErrInvalidSegmentRefsPayload, i, offset, len(data))
		}

		refLen := engine.Uint16(data[offset:])
		offset += 2

		if len(data) < offset+int(refLen) {
			return nil, 0, fmt.Errorf("%w: cannot read segment ref %d (need %d bytes at offset %d, have %d total)",
				errs.ErrInvalidSegmentRefsPayload, i, refLen, offset, len(data))
		}

		refs[i] = string(data[offset : offset+int(refLen)])
		offset += int(refLen)
	}

	return refs, offset, nil
}

// VerifySegmentRefHashes checks that each decoded segment reference hashes,
// via hashFunc, to the SegmentID recorded for it in the archive index. The
// refs and ids slices must be the same length and in corresponding order.
func VerifySegmentRefHashes(refs []string, ids []uint64, hashFunc func(string) uint64) error {
	if len(refs) != len(ids) {
		return fmt.Errorf("%w: segment ref count %d does not match segment id count %d",
			errs.ErrInvalidSegmentRefsPayload, len(refs), len(ids))
	}

	for i, ref := range refs {
		expected := hashFunc(ref)
		actual := ids[i]

		if expected != actual {
			return fmt.Errorf("%w: segment reference %q at index %d: expected hash 0x%016x, got 0x%016x",
				errs.ErrHashMismatch, ref, i, expected, actual)
		}
	}

	return nil
}
