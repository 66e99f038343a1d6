// Package format defines small shared enums used by the blob wire format and
// the batch archive container.
package format

// CompressionType identifies which Codec (see the compress package) a given
// payload was compressed with.
//
// Single PSP blobs (blob.BlobCodec) always use CompressionZlib for the
// profile payload — it is the one wire-format-defined choice from spec.md
// §4.4 and is not caller-selectable outside of tests. CompressionType exists
// as its own enum because the batch archive container (package batch) picks
// independently among these for its own, outer compression stage.
type CompressionType uint8

const (
	// CompressionNone performs no compression; used internally to bypass C4
	// for testing and for archives the caller has already compressed.
	CompressionNone CompressionType = 0x1
	// CompressionZlib is the mandatory RFC 1950 zlib wrapper used on the wire
	// for every encoded PSP blob.
	CompressionZlib CompressionType = 0x2
	// CompressionZstd offers the best compression ratio for archive-level use.
	CompressionZstd CompressionType = 0x3
	// CompressionS2 balances compression ratio and speed for archive-level use.
	CompressionS2 CompressionType = 0x4
	// CompressionLZ4 favors fast decompression for archive-level use.
	CompressionLZ4 CompressionType = 0x5
)

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionZlib:
		return "Zlib"
	case CompressionZstd:
		return "Zstd"
	case CompressionS2:
		return "S2"
	case CompressionLZ4:
		return "LZ4"
	default:
		return "Unknown"
	}
}
