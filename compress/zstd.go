package compress

// ZstdCodec provides Zstandard compression, optimized for archive-level use
// in package batch where compression ratio matters more than latency (e.g.
// bundling a day's worth of road-segment PSP blobs for cold storage).
//
// It never appears on the single-blob wire format, which always uses
// ZlibCodec for interoperability (spec.md §4.4 Non-goals).
//
// Performance characteristics:
//   - Compression: ~5-20 ns/byte (depending on compression level)
//   - Decompression: ~2-5 ns/byte
//   - Memory usage: moderate (pooled encoder/decoder, see zstd_impl.go)
type ZstdCodec struct{}

var _ Codec = (*ZstdCodec)(nil)

// NewZstdCodec creates a new Zstd codec with default settings.
func NewZstdCodec() ZstdCodec {
	return ZstdCodec{}
}
