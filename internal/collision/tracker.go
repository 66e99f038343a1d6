// Package collision tracks SegmentID hash assignments for package batch,
// detecting the rare case where two distinct segment reference strings hash
// to the same 64-bit SegmentID.
package collision

import (
	"github.com/tomtom-international/premium-sp-blob/errs"
)

// Tracker tracks segment reference strings and detects hash collisions
// while a SegmentBatch is being built. It maintains a hash-to-reference map
// for collision detection and an ordered list of references for the
// archive's segment-reference catalog.
type Tracker struct {
	refsByID  map[uint64]string
	refsList  []string
	collision bool
}

// NewTracker creates a new collision tracker.
func NewTracker() *Tracker {
	return &Tracker{
		refsByID: make(map[uint64]string),
		refsList: make([]string, 0),
	}
}

// Track records a segment reference string with its precomputed hash
// (SegmentID). It fails if ref is empty or if ref was already added to this
// tracker. A collision between two distinct, non-empty references sharing
// the same hash is not an error: the flag is set and ref is still recorded,
// since the archive's reference catalog disambiguates by string, not hash.
func (t *Tracker) Track(ref string, id uint64) error {
	if ref == "" {
		return errs.ErrEmptySegmentRef
	}

	if existing, exists := t.refsByID[id]; exists {
		if existing == ref {
			return errs.ErrSegmentAlreadyAdded
		}

		t.collision = true
	}

	t.refsByID[id] = ref
	t.refsList = append(t.refsList, ref)

	return nil
}

// HasCollision returns true if two distinct references were tracked under
// the same hash.
func (t *Tracker) HasCollision() bool {
	return t.collision
}

// Refs returns the ordered list of tracked references, in the order Track
// was called.
func (t *Tracker) Refs() []string {
	return t.refsList
}

// Count returns the number of tracked references.
func (t *Tracker) Count() int {
	return len(t.refsList)
}

// Reset clears all tracked references and collision state, so the tracker
// can be reused for a new batch.
func (t *Tracker) Reset() {
	for k := range t.refsByID {
		delete(t.refsByID, k)
	}
	t.refsList = t.refsList[:0]
	t.collision = false
}
