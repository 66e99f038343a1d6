// Package errs defines the sentinel errors returned across the premium-sp-blob module.
//
// Callers should use errors.Is against these sentinels rather than matching on
// message text; the message carries the offending byte, day, or bin for
// diagnostics but is not part of the contract.
package errs

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput is returned for any semantic violation of the blob data
	// model: an out-of-range speed, a day/bin count mismatch, or a resolution
	// that does not fit the wire format. ErrUnsupportedVersion,
	// ErrTruncatedPayload and ErrDecompression wrap it, so errors.Is against
	// ErrInvalidInput matches every one of those failures too.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnsupportedVersion is returned when a blob's version byte is greater
	// than the highest version this codec understands.
	ErrUnsupportedVersion = fmt.Errorf("%w: unsupported blob version", ErrInvalidInput)

	// ErrTruncatedPayload is returned when the compressed or uncompressed
	// payload ends before the declared number of days/bins has been decoded,
	// or a VarInt16 continues past its 3-byte maximum.
	ErrTruncatedPayload = fmt.Errorf("%w: truncated blob payload", ErrInvalidInput)

	// ErrDecompression is returned when the configured Codec fails to deflate
	// or inflate a payload.
	ErrDecompression = fmt.Errorf("%w: payload decompression failed", ErrInvalidInput)

	// ErrDuplicateSegmentID names the case of two batch entries sharing a
	// SegmentID. Package batch does not return it: SegmentBatch.Add accepts
	// distinct references that share a SegmentID and reports the case through
	// HasCollision.
	ErrDuplicateSegmentID = errors.New("duplicate segment id")

	// ErrInvalidHeaderSize is returned when a byte slice handed to
	// section.Parse is shorter than the fixed header width.
	ErrInvalidHeaderSize = errors.New("invalid header size")

	// ErrEmptySegmentRef is returned when a batch entry is added with an
	// empty segment reference string.
	ErrEmptySegmentRef = errors.New("empty segment reference")

	// ErrSegmentAlreadyAdded is returned when the same segment reference is
	// added to a SegmentBatch twice.
	ErrSegmentAlreadyAdded = errors.New("segment already added to batch")

	// ErrInvalidSegmentRefsPayload is returned when the segment-reference
	// catalog section of a batch archive is truncated or malformed.
	ErrInvalidSegmentRefsPayload = errors.New("invalid segment references payload")

	// ErrSegmentRefTooLong is returned when a segment reference string or the
	// catalog's entry count exceeds the 16-bit length prefix used on the wire.
	ErrSegmentRefTooLong = errors.New("segment reference too long")

	// ErrHashMismatch is returned when a decoded segment reference's SegmentID
	// does not match the hash recorded for it in the archive index.
	ErrHashMismatch = errors.New("segment reference hash mismatch")
)
