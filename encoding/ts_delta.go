package encoding

import (
	"encoding/binary"
	"iter"

	"github.com/tomtom-international/premium-sp-blob/internal/pool"
)

// TimestampDeltaEncoder encodes the per-segment "last refreshed" timestamp
// column carried by a batch archive (package batch), one value per bundled
// PSP blob, using delta-of-delta encoding with zigzag and varint compression.
//
// Segments in a batch are usually refreshed together on a regular cadence
// (a nightly map-data rebuild touching many road segments at once), so
// consecutive timestamps tend to differ by nearly the same interval; the
// delta-of-delta chain collapses that regularity to a single byte per entry
// after the first two values, while still tolerating segments refreshed out
// of step with the rest of the batch.
//
// Internal state:
//   - prevTS: previous timestamp, for delta calculation
//   - prevDelta: previous delta, for delta-of-delta calculation
//   - temp: reusable varint scratch buffer
//   - buf: output buffer accumulating encoded data
//   - count: number of timestamps encoded
type TimestampDeltaEncoder struct {
	prevTS    int64
	prevDelta int64
	temp      [binary.MaxVarintLen64]byte
	buf       *pool.ByteBuffer
	count     int
}

var _ ColumnarEncoder[int64] = (*TimestampDeltaEncoder)(nil)

// NewTimestampDeltaEncoder creates an encoder ready to accept the first
// timestamp of a new column.
func NewTimestampDeltaEncoder() *TimestampDeltaEncoder {
	return &TimestampDeltaEncoder{
		buf: pool.GetBlobBuffer(),
	}
}

// Write encodes a single "last refreshed" timestamp, in Unix microseconds.
// The first value in the column is written in full; the second is written
// as a delta from the first; every value after that is written as the
// difference between its delta and the previous one (delta-of-delta).
func (e *TimestampDeltaEncoder) Write(timestampUs int64) {
	e.count++
	e.buf.Grow(10)

	if e.count == 1 {
		n := binary.PutUvarint(e.temp[:], uint64(timestampUs)) //nolint:gosec
		e.buf.MustWrite(e.temp[:n])
		e.prevTS = timestampUs

		return
	}

	delta := timestampUs - e.prevTS

	var valToEncode int64
	if e.count == 2 {
		valToEncode = delta
		e.prevDelta = delta
	} else {
		valToEncode = delta - e.prevDelta
		e.prevDelta = delta
	}

	zigzag := (valToEncode << 1) ^ (valToEncode >> 63)

	n := binary.PutUvarint(e.temp[:], uint64(zigzag)) //nolint:gosec
	e.buf.MustWrite(e.temp[:n])

	e.prevTS = timestampUs
}

// WriteSlice encodes a slice of timestamps in one pass, equivalent to
// calling Write for each element but with a single buffer growth instead of
// one per value.
func (e *TimestampDeltaEncoder) WriteSlice(timestampsUs []int64) {
	tsLen := len(timestampsUs)
	if tsLen == 0 {
		return
	}

	e.count += tsLen

	// Conservative estimate: 2 bytes/timestamp after the first.
	estimatedSize := 6 + (tsLen-1)*2
	e.buf.Grow(estimatedSize)

	prevTS := e.prevTS
	prevDelta := e.prevDelta
	startIdx := 0

	if e.prevTS == 0 {
		ts := timestampsUs[0]
		n := binary.PutUvarint(e.temp[:], uint64(ts)) //nolint:gosec
		e.buf.MustWrite(e.temp[:n])
		prevTS = ts
		startIdx = 1
	}

	if startIdx < tsLen && prevDelta == 0 {
		ts := timestampsUs[startIdx]
		delta := ts - prevTS
		zigzag := (delta << 1) ^ (delta >> 63)
		n := binary.PutUvarint(e.temp[:], uint64(zigzag)) //nolint:gosec
		e.buf.MustWrite(e.temp[:n])
		prevTS = ts
		prevDelta = delta
		startIdx++
	}

	for _, ts := range timestampsUs[startIdx:] {
		delta := ts - prevTS
		deltaOfDelta := delta - prevDelta
		zigzag := (deltaOfDelta << 1) ^ (deltaOfDelta >> 63)
		n := binary.PutUvarint(e.temp[:], uint64(zigzag)) //nolint:gosec
		e.buf.MustWrite(e.temp[:n])
		prevTS = ts
		prevDelta = delta
	}

	e.prevTS = prevTS
	e.prevDelta = prevDelta
}

// Bytes returns the encoded timestamp column accumulated so far. The
// returned slice references the encoder's internal buffer and is
// invalidated by the next Write, WriteSlice, or Finish call.
func (e *TimestampDeltaEncoder) Bytes() []byte {
	return e.buf.Bytes()
}

// Len returns the number of timestamps written since the last Finish.
func (e *TimestampDeltaEncoder) Len() int {
	return e.count
}

// Size returns the number of bytes written to the internal buffer since the
// last Finish.
func (e *TimestampDeltaEncoder) Size() int {
	return e.buf.Len()
}

// Reset clears the delta chain so the next Write starts a new column,
// without releasing or touching the accumulated bytes, length, or size.
func (e *TimestampDeltaEncoder) Reset() {
	e.prevTS = 0
	e.prevDelta = 0
}

// Finish returns the internal buffer to the shared pool and resets the
// encoder to its just-created state. Len, Size, and Bytes all report zero
// values until the next Write.
func (e *TimestampDeltaEncoder) Finish() {
	pool.PutBlobBuffer(e.buf)
	e.buf = pool.GetBlobBuffer()
	e.prevTS = 0
	e.prevDelta = 0
	e.count = 0
}

// TimestampDeltaDecoder decodes a timestamp column produced by
// TimestampDeltaEncoder. It holds no state and is safe to reuse or share
// across goroutines.
type TimestampDeltaDecoder struct{}

var _ ColumnarDecoder[int64] = TimestampDeltaDecoder{}

// NewTimestampDeltaDecoder creates a stateless decoder.
func NewTimestampDeltaDecoder() TimestampDeltaDecoder {
	return TimestampDeltaDecoder{}
}

// All returns an iterator yielding up to count decoded timestamps from data,
// reconstructing the delta-of-delta chain the same way the encoder
// accumulated it. Iteration stops early if the column is malformed or
// exhausted before count values have been produced.
func (d TimestampDeltaDecoder) All(data []byte, count int) iter.Seq[int64] {
	return func(yield func(int64) bool) {
		if len(data) == 0 || count <= 0 {
			return
		}

		offset := 0
		yielded := 0

		firstTS, n := binary.Uvarint(data[offset:])
		if n <= 0 {
			return
		}
		offset += n
		yielded++

		curTS := int64(firstTS) //nolint:gosec
		if !yield(curTS) {
			return
		}

		if yielded >= count {
			return
		}

		zigzag, n := binary.Uvarint(data[offset:])
		if n <= 0 {
			return
		}
		offset += n

		delta := int64(zigzag>>1) ^ -(int64(zigzag & 1)) //nolint:gosec
		curTS += delta
		yielded++

		if !yield(curTS) {
			return
		}

		prevDelta := delta

		for yielded < count && offset < len(data) {
			zigzag, n := binary.Uvarint(data[offset:])
			if n <= 0 {
				return
			}
			offset += n

			deltaOfDelta := int64(zigzag>>1) ^ -(int64(zigzag & 1)) //nolint:gosec
			delta = prevDelta + deltaOfDelta
			curTS += delta
			yielded++

			if !yield(curTS) {
				return
			}

			prevDelta = delta
		}
	}
}

// At returns the timestamp at the given index in the encoded column,
// decoding only as far as needed to reach it rather than materializing the
// whole column.
func (d TimestampDeltaDecoder) At(data []byte, index int, count int) (int64, bool) {
	if index < 0 || index >= count || len(data) == 0 {
		return 0, false
	}

	offset := 0
	curIdx := 0

	firstTS, n := binary.Uvarint(data[offset:])
	if n <= 0 {
		return 0, false
	}
	offset += n

	curTS := int64(firstTS) //nolint:gosec

	if index == 0 {
		return curTS, true
	}

	curIdx++

	if offset >= len(data) {
		return 0, false
	}

	zigzag, n := binary.Uvarint(data[offset:])
	if n <= 0 {
		return 0, false
	}
	offset += n

	delta := int64(zigzag>>1) ^ -(int64(zigzag & 1)) //nolint:gosec
	curTS += delta

	if index == 1 {
		return curTS, true
	}

	curIdx++
	prevDelta := delta

	for curIdx <= index && offset < len(data) {
		zigzag, n := binary.Uvarint(data[offset:])
		if n <= 0 {
			return 0, false
		}
		offset += n

		deltaOfDelta := int64(zigzag>>1) ^ -(int64(zigzag & 1)) //nolint:gosec
		delta = prevDelta + deltaOfDelta
		curTS += delta

		if curIdx == index {
			return curTS, true
		}

		curIdx++
		prevDelta = delta
	}

	return 0, false
}
