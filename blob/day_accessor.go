// Package blob implements the PSP blob container and the BlobCodec
// orchestrator that composes flexfloat, zigzag, varint, compress, and
// section into the full encode/decode pipeline.
package blob

// DayAccessor indirects per-day speed access behind a small capability
// instead of requiring a dense two-dimensional array: bin count plus
// speed-by-bin. This lets profile speeds originate from a plain slice, a
// caller-supplied function, or any other source that can answer both
// questions.
type DayAccessor interface {
	// BinCount returns the number of bins in this day's profile. A day with
	// zero bins is considered absent, the same as a day with no accessor at
	// all.
	BinCount() int
	// SpeedAt returns the speed, in km/h, for the given zero-based bin.
	SpeedAt(bin int) float64
}

// DenseDayAccessor adapts a plain slice of speeds into a DayAccessor.
type DenseDayAccessor []float64

// BinCount returns len(d).
func (d DenseDayAccessor) BinCount() int { return len(d) }

// SpeedAt returns d[bin].
func (d DenseDayAccessor) SpeedAt(bin int) float64 { return d[bin] }

// CallableDayAccessor adapts a bin count plus an arbitrary function into a
// DayAccessor, for callers whose speeds are computed on demand rather than
// materialized in a slice.
type CallableDayAccessor struct {
	Count int
	Fn    func(bin int) float64
}

// BinCount returns c.Count.
func (c CallableDayAccessor) BinCount() int { return c.Count }

// SpeedAt calls c.Fn(bin).
func (c CallableDayAccessor) SpeedAt(bin int) float64 { return c.Fn(bin) }
