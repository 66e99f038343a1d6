package blob

import "github.com/tomtom-international/premium-sp-blob/internal/hash"

// SegmentID identifies a directed road segment a PSP blob describes. Blobs
// themselves carry no identifier — the segment reference lives alongside
// the blob in whatever store or archive holds it (see package batch) — but
// callers need a stable, compact key to index blobs by segment, so SegmentID
// hashes the caller's natural segment reference string (e.g. a TMC/OpenLR
// location code) down to a uint64.
type SegmentID uint64

// NewSegmentID derives a SegmentID from a segment's natural reference
// string, using the same xxHash64 the teacher stack uses for metric-name
// hashing.
func NewSegmentID(ref string) SegmentID {
	return SegmentID(hash.ID(ref))
}
