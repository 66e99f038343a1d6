package encoding

import (
	"iter"

	"github.com/tomtom-international/premium-sp-blob/internal/pool"
	"github.com/tomtom-international/premium-sp-blob/varint"
	"github.com/tomtom-international/premium-sp-blob/zigzag"
)

// ProfileDeltaEncoder encodes a stream of FlexFloat10 codes (u10 values
// carried in a uint16) as zig-zagged, varint-compressed first differences.
//
// Unlike a delta-of-delta encoder, each emitted value is simply the signed
// difference between the current and previous code; the running `prev` is
// never reset mid-stream, including across day boundaries, so a full profile
// (all seven days concatenated) forms one coherent difference chain.
type ProfileDeltaEncoder struct {
	prev  int16
	buf   *pool.ByteBuffer
	count int
}

// NewProfileDeltaEncoder creates an encoder with prev initialized to 0, as
// required by the wire format (the first value in the stream is always
// delta-encoded against 0).
func NewProfileDeltaEncoder() *ProfileDeltaEncoder {
	return &ProfileDeltaEncoder{buf: pool.GetBlobBuffer()}
}

// Write encodes a single FlexFloat10 code, updating the running delta state.
func (e *ProfileDeltaEncoder) Write(code uint16) {
	curr := int16(code) //nolint:gosec
	delta := curr - e.prev
	e.prev = curr
	e.count++

	u := zigzag.Encode(delta)
	e.buf.Grow(varint.MaxLen)
	e.buf.B = varint.Encode(e.buf.B, u)
}

// WriteAll encodes a slice of codes in order, equivalent to calling Write for
// each element.
func (e *ProfileDeltaEncoder) WriteAll(codes []uint16) {
	e.buf.Grow(len(codes) * varint.MaxLen)
	for _, c := range codes {
		e.Write(c)
	}
}

// Bytes returns the encoded byte slice accumulated so far. The returned slice
// references the encoder's internal buffer and is invalidated by the next
// Write call.
func (e *ProfileDeltaEncoder) Bytes() []byte {
	return e.buf.Bytes()
}

// Len returns the number of codes written.
func (e *ProfileDeltaEncoder) Len() int {
	return e.count
}

// Release returns the encoder's internal buffer to the shared pool. The
// encoder must not be used afterward.
func (e *ProfileDeltaEncoder) Release() {
	pool.PutBlobBuffer(e.buf)
}

// ProfileDeltaDecoder decodes a byte stream produced by ProfileDeltaEncoder
// back into FlexFloat10 codes.
type ProfileDeltaDecoder struct{}

// NewProfileDeltaDecoder creates a stateless decoder, safe to reuse.
func NewProfileDeltaDecoder() ProfileDeltaDecoder {
	return ProfileDeltaDecoder{}
}

// All returns an iterator yielding up to count decoded codes from data,
// reconstructing the running delta the same way the encoder accumulated it.
// Iteration stops early if the stream is malformed or exhausted before count
// values have been produced; callers that need to distinguish truncation
// from a deliberately short stream should use Decode instead.
func (d ProfileDeltaDecoder) All(data []byte, count int) iter.Seq[uint16] {
	return func(yield func(uint16) bool) {
		offset := 0
		prev := int16(0)

		for i := 0; i < count; i++ {
			if offset >= len(data) {
				return
			}

			u, n, err := varint.Decode(data[offset:])
			if err != nil {
				return
			}
			offset += n

			delta := zigzag.Decode(u)
			curr := prev + delta
			prev = curr

			if !yield(uint16(curr)) { //nolint:gosec
				return
			}
		}
	}
}

// Decode fully decodes count codes from data, returning an error if the
// stream is truncated or malformed before count values have been produced.
func (d ProfileDeltaDecoder) Decode(data []byte, count int) ([]uint16, error) {
	out := make([]uint16, 0, count)
	offset := 0
	prev := int16(0)

	for i := 0; i < count; i++ {
		u, n, err := varint.Decode(data[offset:])
		if err != nil {
			return nil, err
		}
		offset += n

		delta := zigzag.Decode(u)
		curr := prev + delta
		prev = curr
		out = append(out, uint16(curr)) //nolint:gosec
	}

	return out, nil
}
