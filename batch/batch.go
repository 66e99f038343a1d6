// Package batch bundles multiple PSP blobs, one per road segment, into a
// single archive for transport or storage. Each blob keeps its own internal
// zlib payload (see package blob); batch adds an outer, caller-selectable
// compression stage over the bundle's segment-reference catalog and blob
// payloads, and a delta-encoded "last refreshed" timestamp column so a
// consumer can tell which segments in a large archive are stale without
// touching the blobs themselves.
package batch

import (
	"fmt"
	"time"

	"github.com/tomtom-international/premium-sp-blob/blob"
	"github.com/tomtom-international/premium-sp-blob/compress"
	"github.com/tomtom-international/premium-sp-blob/encoding"
	"github.com/tomtom-international/premium-sp-blob/endian"
	"github.com/tomtom-international/premium-sp-blob/errs"
	"github.com/tomtom-international/premium-sp-blob/format"
	"github.com/tomtom-international/premium-sp-blob/internal/collision"
	internalenc "github.com/tomtom-international/premium-sp-blob/internal/encoding"
	"github.com/tomtom-international/premium-sp-blob/internal/options"
	"github.com/tomtom-international/premium-sp-blob/internal/pool"
)

// ArchiveVersion is the current batch wire-format version.
const ArchiveVersion byte = 1

// archiveHeaderSize is ArchiveVersion + CompressionType + Count(uint16).
const archiveHeaderSize = 4

// SegmentEntry is one bundled segment: its natural reference string, the
// SegmentID derived from it, its already-encoded PSP blob, and the instant
// it was last refreshed.
type SegmentEntry struct {
	Ref                string
	ID                 blob.SegmentID
	Blob               []byte
	UpdatedAtUnixMicro int64
}

// SegmentBatch accumulates SegmentEntry values and serializes them into one
// archive. A SegmentBatch is not safe for concurrent use; build it from a
// single goroutine and share only the resulting archive bytes.
type SegmentBatch struct {
	entries  []SegmentEntry
	tracker  *collision.Tracker
	archComp format.CompressionType
}

// SegmentBatchOption configures a SegmentBatch at construction time.
type SegmentBatchOption = options.Option[*SegmentBatch]

// NewSegmentBatch creates an empty SegmentBatch. The archive's outer
// compression defaults to compress.NewS2Codec(), balancing ratio and speed
// for the catalog/payload bundle.
func NewSegmentBatch(opts ...SegmentBatchOption) *SegmentBatch {
	b := &SegmentBatch{
		tracker:  collision.NewTracker(),
		archComp: format.CompressionS2,
	}
	_ = options.Apply(b, opts...)

	return b
}

// WithArchiveCompression overrides the archive's outer compression type.
func WithArchiveCompression(t format.CompressionType) SegmentBatchOption {
	return options.NoError(func(b *SegmentBatch) {
		b.archComp = t
	})
}

// Add appends a segment's blob to the batch. It fails with
// errs.ErrEmptySegmentRef for an empty ref and errs.ErrSegmentAlreadyAdded
// for a ref already present in this batch. Two distinct refs hashing to the
// same SegmentID are not an error; HasCollision reports that case so the
// caller can decide whether the reference catalog is worth keeping on
// decode.
func (b *SegmentBatch) Add(ref string, blobBytes []byte, updatedAt time.Time) error {
	id := blob.NewSegmentID(ref)
	if err := b.tracker.Track(ref, uint64(id)); err != nil {
		return err
	}

	b.entries = append(b.entries, SegmentEntry{
		Ref:                ref,
		ID:                 id,
		Blob:               append([]byte(nil), blobBytes...),
		UpdatedAtUnixMicro: updatedAt.UnixMicro(),
	})

	return nil
}

// Len returns the number of segments added to the batch.
func (b *SegmentBatch) Len() int {
	return len(b.entries)
}

// HasCollision reports whether two distinct references added to this batch
// share a SegmentID.
func (b *SegmentBatch) HasCollision() bool {
	return b.tracker.HasCollision()
}

// Entries returns the batch's segments in the order they were added.
func (b *SegmentBatch) Entries() []SegmentEntry {
	return b.entries
}

// Encode serializes the batch into an archive:
//
//	[ArchiveVersion byte][CompressionType byte][Count uint16]
//	[SegmentIDs: Count x uint64]
//	[CatalogLen uint32][segment reference catalog]
//	[TimestampLen uint32][TimestampCount uint32][delta-of-delta timestamps]
//	[PayloadLen uint32][outer-compressed blob payload]
//
// SegmentIDs is every entry's hash, always present, since that is the key a
// consumer looks a segment up by. The reference catalog is only written
// when HasCollision is true: the IDs alone cannot disambiguate two distinct
// references that hash to the same value, so the original strings are kept
// in that case and omitted (CatalogLen 0) otherwise.
//
// The blob payload section, before outer compression, is each segment's
// blob prefixed by its own uint32 length, concatenated in Add order.
func (b *SegmentBatch) Encode() ([]byte, error) {
	engine := endian.GetLittleEndianEngine()

	if len(b.entries) > 65535 {
		return nil, fmt.Errorf("%w: batch has %d segments, maximum is 65535", errs.ErrInvalidInput, len(b.entries))
	}

	idBytes := make([]byte, 0, len(b.entries)*8)
	for _, e := range b.entries {
		idBytes = engine.AppendUint64(idBytes, uint64(e.ID))
	}

	var catalog []byte
	if b.tracker.HasCollision() {
		refs := make([]string, len(b.entries))
		for i, e := range b.entries {
			refs[i] = e.Ref
		}

		var err error
		catalog, err = internalenc.EncodeSegmentRefs(refs, engine)
		if err != nil {
			return nil, err
		}
	}

	tsEnc := encoding.NewTimestampDeltaEncoder()
	for _, e := range b.entries {
		tsEnc.Write(e.UpdatedAtUnixMicro)
	}
	tsBytes := append([]byte(nil), tsEnc.Bytes()...)
	tsCount := tsEnc.Len()
	tsEnc.Finish()

	payloadBuf := pool.GetArchiveBuffer()
	defer pool.PutArchiveBuffer(payloadBuf)

	for _, e := range b.entries {
		payloadBuf.Grow(4 + len(e.Blob))
		payloadBuf.B = engine.AppendUint32(payloadBuf.B, uint32(len(e.Blob))) //nolint:gosec
		payloadBuf.MustWrite(e.Blob)
	}

	codec, err := compress.CreateCodec(b.archComp, "archive")
	if err != nil {
		return nil, err
	}

	compressedPayload, err := codec.Compress(payloadBuf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrDecompression, err)
	}

	out := make([]byte, 0, archiveHeaderSize+len(idBytes)+len(catalog)+len(tsBytes)+len(compressedPayload)+16)
	out = append(out, ArchiveVersion, byte(b.archComp))
	out = engine.AppendUint16(out, uint16(len(b.entries))) //nolint:gosec
	out = append(out, idBytes...)

	out = engine.AppendUint32(out, uint32(len(catalog))) //nolint:gosec
	out = append(out, catalog...)

	out = engine.AppendUint32(out, uint32(len(tsBytes))) //nolint:gosec
	out = engine.AppendUint32(out, uint32(tsCount))       //nolint:gosec
	out = append(out, tsBytes...)

	out = engine.AppendUint32(out, uint32(len(compressedPayload))) //nolint:gosec
	out = append(out, compressedPayload...)

	return out, nil
}

// DecodeSegmentBatch parses an archive produced by Encode back into a
// SegmentBatch with its entries populated, in original order.
func DecodeSegmentBatch(archive []byte) (*SegmentBatch, error) {
	engine := endian.GetLittleEndianEngine()

	if len(archive) < archiveHeaderSize {
		return nil, fmt.Errorf("%w: archive shorter than header", errs.ErrTruncatedPayload)
	}

	version := archive[0]
	if version > ArchiveVersion {
		return nil, fmt.Errorf("%w: archive version %d", errs.ErrUnsupportedVersion, version)
	}

	archComp := format.CompressionType(archive[1])
	count := int(engine.Uint16(archive[2:4]))

	offset := archiveHeaderSize

	if len(archive) < offset+count*8 {
		return nil, fmt.Errorf("%w: archive truncated in segment ID column", errs.ErrTruncatedPayload)
	}

	ids := make([]blob.SegmentID, count)
	for i := 0; i < count; i++ {
		ids[i] = blob.SegmentID(engine.Uint64(archive[offset:]))
		offset += 8
	}

	catalogLen, err := readUint32Section(archive, offset)
	if err != nil {
		return nil, err
	}
	offset += 4

	if len(archive) < offset+int(catalogLen) {
		return nil, fmt.Errorf("%w: archive truncated in reference catalog", errs.ErrTruncatedPayload)
	}

	// The catalog is only written when the encoder detected a collision; an
	// archive with no colliding SegmentIDs carries just the ID column, and
	// refs stays nil, so decoded entries get ID but no Ref back.
	var refs []string
	if catalogLen > 0 {
		refs, _, err = internalenc.DecodeSegmentRefs(archive[offset:offset+int(catalogLen)], engine)
		if err != nil {
			return nil, err
		}

		if len(refs) != count {
			return nil, fmt.Errorf("%w: catalog has %d references, header declares %d", errs.ErrInvalidSegmentRefsPayload, len(refs), count)
		}

		idVals := make([]uint64, count)
		for i, id := range ids {
			idVals[i] = uint64(id)
		}

		if err := internalenc.VerifySegmentRefHashes(refs, idVals, func(r string) uint64 {
			return uint64(blob.NewSegmentID(r))
		}); err != nil {
			return nil, err
		}
	}
	offset += int(catalogLen)

	tsLen, err := readUint32Section(archive, offset)
	if err != nil {
		return nil, err
	}
	offset += 4

	tsCount, err := readUint32Section(archive, offset)
	if err != nil {
		return nil, err
	}
	offset += 4

	if len(archive) < offset+int(tsLen) {
		return nil, fmt.Errorf("%w: archive truncated in timestamp column", errs.ErrTruncatedPayload)
	}

	tsBytes := archive[offset : offset+int(tsLen)]
	offset += int(tsLen)

	// timestamps only lives long enough to seed each SegmentEntry below, so
	// it comes from the pool rather than a fresh allocation.
	timestamps, putTimestamps := pool.GetInt64Slice(int(tsCount))
	defer putTimestamps()

	decoded := 0
	for ts := range encoding.NewTimestampDeltaDecoder().All(tsBytes, int(tsCount)) {
		timestamps[decoded] = ts
		decoded++
	}
	if decoded != int(tsCount) {
		return nil, fmt.Errorf("%w: decoded %d timestamps, expected %d", errs.ErrTruncatedPayload, decoded, tsCount)
	}

	payloadLen, err := readUint32Section(archive, offset)
	if err != nil {
		return nil, err
	}
	offset += 4

	if len(archive) < offset+int(payloadLen) {
		return nil, fmt.Errorf("%w: archive truncated in blob payload", errs.ErrTruncatedPayload)
	}

	codec, err := compress.CreateCodec(archComp, "archive")
	if err != nil {
		return nil, err
	}

	plainPayload, err := codec.Decompress(archive[offset : offset+int(payloadLen)])
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrDecompression, err)
	}

	b := &SegmentBatch{tracker: collision.NewTracker(), archComp: archComp}

	pOff := 0
	for i := 0; i < count; i++ {
		if len(plainPayload) < pOff+4 {
			return nil, fmt.Errorf("%w: blob payload truncated before entry %d length", errs.ErrTruncatedPayload, i)
		}

		blobLen := int(engine.Uint32(plainPayload[pOff:]))
		pOff += 4

		if len(plainPayload) < pOff+blobLen {
			return nil, fmt.Errorf("%w: blob payload truncated within entry %d", errs.ErrTruncatedPayload, i)
		}

		blobBytes := append([]byte(nil), plainPayload[pOff:pOff+blobLen]...)
		pOff += blobLen

		var ref string
		if refs != nil {
			ref = refs[i]
			if err := b.tracker.Track(ref, uint64(ids[i])); err != nil {
				return nil, err
			}
		}

		b.entries = append(b.entries, SegmentEntry{
			Ref:                ref,
			ID:                 ids[i],
			Blob:               blobBytes,
			UpdatedAtUnixMicro: timestamps[i],
		})
	}

	return b, nil
}

func readUint32Section(data []byte, offset int) (uint32, error) {
	if len(data) < offset+4 {
		return 0, fmt.Errorf("%w: archive truncated reading a section length", errs.ErrTruncatedPayload)
	}

	return endian.GetLittleEndianEngine().Uint32(data[offset:]), nil
}
