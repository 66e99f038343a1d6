// Package compress provides single-shot compression/decompression codecs
// used by the PSP blob pipeline and the batch archive container.
//
// # Overview
//
// The blob wire format (spec.md §4.4, C4 Deflate) uses exactly one algorithm:
// RFC 1950 zlib, via ZlibCodec. That choice is not caller-configurable on the
// public blob.BlobCodec surface — it is part of the interop contract for
// stored blobs. NoOpCodec lets tests bypass the deflate stage and inspect
// payloadPlain directly; it is also the CompressionNone choice for batch
// archives.
//
// A second, independent use of this package is package batch's archive-level
// compression, where the caller picks among None, Zstd, S2, and LZ4 to trade
// compression ratio against latency when bundling many blobs for transport:
//
//	codec := compress.NewZstdCodec()   // best ratio, cold storage
//	codec := compress.NewS2Codec()     // balanced
//	codec := compress.NewLZ4Codec()    // fastest decompression
//	codec := compress.NewNoOpCodec()   // already compressed / CPU-constrained
//
// # Architecture
//
//	type Compressor interface   { Compress(data []byte) ([]byte, error) }
//	type Decompressor interface { Decompress(data []byte) ([]byte, error) }
//	type Codec interface        { Compressor; Decompressor }
//
// CreateCodec and GetCodec construct a Codec from a format.CompressionType,
// so batch can persist which algorithm it used and recover the matching
// decoder without a type switch at the call site.
//
// # Thread Safety
//
// All codecs are safe for concurrent use; none retain per-call state beyond
// what a single Compress/Decompress invocation needs.
package compress
