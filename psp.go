// Package psp provides a compact binary codec for Premium Speed-Profile
// blobs: per-segment records describing expected driving speeds along a
// directed road segment, with mandatory weekday/weekend mean speeds and an
// optional 24-hour speed profile for any subset of the seven days of the
// week.
//
// # Core Features
//
//   - FlexFloat10 quantization of speeds to a 10-bit code (3-bit exponent,
//     7-bit mantissa), tuned for the [0, 255] km/h domain
//   - First-difference delta coding across the profile's concatenated days,
//     zigzag and base-128 varint packed, deflate-compressed on the wire
//   - A 2-byte header describing which of the seven days are present and at
//     what time resolution
//   - Optional archival bundling of many segments' blobs via package batch
//
// # Basic Usage
//
//	import "github.com/tomtom-international/premium-sp-blob"
//
//	codec := psp.NewBlobCodec()
//	encoded, err := codec.Encode(blob.BlobData{
//	    WeekDaySpeed: 72,
//	    WeekendSpeed: 80,
//	})
//
//	decoded, err := codec.Decode(encoded)
//
// # Package Structure
//
// This package re-exports the most common entry points from blob, batch,
// and sizeest. For the full data model and options, use those packages
// directly.
package psp

import (
	"github.com/tomtom-international/premium-sp-blob/batch"
	"github.com/tomtom-international/premium-sp-blob/blob"
	"github.com/tomtom-international/premium-sp-blob/format"
	"github.com/tomtom-international/premium-sp-blob/sizeest"
)

// NewBlobCodec creates a BlobCodec for encoding and decoding single-segment
// PSP blobs. See blob.NewBlobCodec for available options.
func NewBlobCodec(opts ...blob.BlobCodecOption) *blob.BlobCodec {
	return blob.NewBlobCodec(opts...)
}

// WithBufferSizeHint re-exports blob.WithBufferSizeHint.
func WithBufferSizeHint(n int) blob.BlobCodecOption {
	return blob.WithBufferSizeHint(n)
}

// SegmentID derives the stable 64-bit identifier a segment reference string
// (e.g. a TMC or OpenLR location code) hashes to, for indexing blobs by
// segment in a store or batch archive.
func SegmentID(ref string) blob.SegmentID {
	return blob.NewSegmentID(ref)
}

// NewSegmentBatch creates an empty archive builder for bundling several
// segments' blobs together. See batch.NewSegmentBatch for available
// options.
func NewSegmentBatch(opts ...batch.SegmentBatchOption) *batch.SegmentBatch {
	return batch.NewSegmentBatch(opts...)
}

// WithArchiveCompression re-exports batch.WithArchiveCompression.
func WithArchiveCompression(t format.CompressionType) batch.SegmentBatchOption {
	return batch.WithArchiveCompression(t)
}

// DecodeSegmentBatch re-exports batch.DecodeSegmentBatch.
func DecodeSegmentBatch(archive []byte) (*batch.SegmentBatch, error) {
	return batch.DecodeSegmentBatch(archive)
}

// EstimatePayloadSize fits a regression model to recorded
// (resolution, encoded payload size) samples, for callers that want a
// production-tuned buffer size hint instead of BlobCodec's static
// worst-case estimate. See sizeest.Fit.
func EstimatePayloadSize(observations []sizeest.Observation) (*sizeest.Result, error) {
	return sizeest.Fit(observations)
}
