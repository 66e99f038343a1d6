package blob

import (
	"fmt"

	"github.com/tomtom-international/premium-sp-blob/compress"
	"github.com/tomtom-international/premium-sp-blob/encoding"
	"github.com/tomtom-international/premium-sp-blob/errs"
	"github.com/tomtom-international/premium-sp-blob/flexfloat"
	"github.com/tomtom-international/premium-sp-blob/internal/options"
	"github.com/tomtom-international/premium-sp-blob/section"
)

// Version is the current wire-format version. Decoders accept any blob whose
// version byte is <= Version and reject anything newer.
const Version byte = 1

// minZlibOverhead is the room reserved for the zlib wrapper (2-byte header,
// 4-byte Adler-32 trailer, and deflate block framing) when sizing the
// output buffer.
const minZlibOverhead = 11

// BlobCodec composes flexfloat, zigzag/varint (via package encoding), the
// section header, and a compress.Codec into the full PSP blob encode/decode
// pipeline. It is stateless and safe for concurrent use.
type BlobCodec struct {
	codec           compress.Codec
	bufferSizeHint  int
	hasBufferHint   bool
	skipCompression bool
}

// BlobCodecOption configures a BlobCodec at construction time.
type BlobCodecOption = options.Option[*BlobCodec]

// NewBlobCodec creates a BlobCodec. By default it compresses the profile
// payload with compress.ZlibCodec, matching the public wire contract.
func NewBlobCodec(opts ...BlobCodecOption) *BlobCodec {
	c := &BlobCodec{codec: compress.NewZlibCodec()}
	_ = options.Apply(c, opts...)

	return c
}

// WithBufferSizeHint reserves capacity for at least n payload bytes in the
// slice Encode returns, overriding the built-in worst-case estimate. The
// delta encoder's working buffer is not affected. Useful when the caller
// already knows the approximate payload size, e.g. from package sizeest.
func WithBufferSizeHint(n int) BlobCodecOption {
	return options.NoError(func(c *BlobCodec) {
		c.bufferSizeHint = n
		c.hasBufferHint = true
	})
}

// withCompressionDisabled bypasses the C4 deflate stage, writing
// payloadPlain directly. It exists only so tests can inspect or
// hand-construct the uncompressed payload; the public wire format always
// compresses.
func withCompressionDisabled() BlobCodecOption {
	return options.NoError(func(c *BlobCodec) {
		c.skipCompression = true
		c.codec = compress.NewNoOpCodec()
	})
}

// AsEncoded returns dec(enc(s)): the value s would round-trip to after
// FlexFloat10 quantization.
func (c *BlobCodec) AsEncoded(s float64) float64 {
	return flexfloat.Decode(flexfloat.Encode(s))
}

// MinNonZeroInput returns the smallest positive speed that survives
// quantization instead of rounding down to zero.
func (c *BlobCodec) MinNonZeroInput() float64 {
	return flexfloat.MinNonZeroInput()
}

// MinNonZeroOutput returns the smallest positive speed FlexFloat10 can
// represent on decode.
func (c *BlobCodec) MinNonZeroOutput() float64 {
	return flexfloat.MinNonZeroOutput()
}

// HasSupportedVersion reports whether blob's version byte is one this codec
// can decode, i.e. blob[0] <= Version (interpreted as unsigned).
func (c *BlobCodec) HasSupportedVersion(blob []byte) bool {
	if len(blob) < 1 {
		return false
	}

	return blob[0] <= Version
}

// SetMeanSpeeds overwrites bytes 1 and 2 of an already-encoded blob in
// place, leaving the rest of the buffer untouched. It fails if the blob's
// version byte is unsupported. This is the only mutation entry point; the
// two-byte write is not atomic and must not race with a concurrent reader of
// the same buffer.
func (c *BlobCodec) SetMeanSpeeds(blob []byte, weekDaySpeed, weekendSpeed uint8) error {
	if len(blob) < 3 {
		return fmt.Errorf("%w: blob too short to carry mean speeds", errs.ErrInvalidInput)
	}
	if blob[0] > Version {
		return fmt.Errorf("%w: unsupported version %d", errs.ErrUnsupportedVersion, blob[0])
	}

	blob[1] = weekDaySpeed
	blob[2] = weekendSpeed

	return nil
}

// ToText formats a speed, dropping a trailing ".0" for integral results.
func ToText(s float64) string {
	if s == float64(int64(s)) {
		return fmt.Sprintf("%d", int64(s))
	}

	return fmt.Sprintf("%g", s)
}

// ToText formats a speed the same way the package-level ToText does; it
// exists as a method so callers holding only a *BlobCodec reference don't
// need a separate import.
func (c *BlobCodec) ToText(s float64) string {
	return ToText(s)
}

// estimatedPayloadCapacity implements the buffer-sizing heuristic from the
// wire contract: worst case is 2 bytes per value (a zig-zagged 10-bit delta
// never exceeds 2046), rounded up to the next power of two and clamped to a
// 128 byte minimum, plus room for the zlib wrapper.
func estimatedPayloadCapacity(binsPerDay int) int {
	worst := binsPerDay * 7 * 2

	size := 128
	for size < worst {
		size *= 2
	}

	return size + minZlibOverhead
}

// Encode serializes data into a PSP blob. It fails with errs.ErrInvalidInput
// if any §3 invariant is violated: an out-of-range mean speed, a present
// day's bin count mismatched against the resolution, or a profile speed
// outside [0, 255].
func (c *BlobCodec) Encode(data BlobData) ([]byte, error) {
	buf := make([]byte, 0, 3)
	buf = append(buf, Version, data.WeekDaySpeed, data.WeekendSpeed)

	days := data.presentDays()
	if len(days) == 0 {
		return buf, nil
	}

	res := int(data.TimeResolutionMinutes)
	header, err := section.NewHeader(res, daySet(days))
	if err != nil {
		return nil, err
	}

	binsPerDay := header.BinsPerDay()
	for _, d := range days {
		if data.Days[d].BinCount() != binsPerDay {
			return nil, fmt.Errorf(
				"%w: day %d has %d bins, expected %d for resolution %d",
				errs.ErrInvalidInput, d, data.Days[d].BinCount(), binsPerDay, res)
		}
	}

	capHint := estimatedPayloadCapacity(binsPerDay)
	if c.hasBufferHint {
		capHint = c.bufferSizeHint
	}

	enc := encoding.NewProfileDeltaEncoder()
	defer enc.Release()

	for _, d := range days {
		acc := data.Days[d]
		for bin := 0; bin < binsPerDay; bin++ {
			speed := acc.SpeedAt(bin)
			if speed < 0 || speed > flexfloat.MaxInput {
				return nil, fmt.Errorf(
					"%w: day %d bin %d speed %v out of range [0, 255]",
					errs.ErrInvalidInput, d, bin, speed)
			}

			enc.Write(flexfloat.Encode(speed))
		}
	}

	h := header.Bytes()
	buf = append(buf, h[:]...)

	payloadPlain := enc.Bytes()

	compressed, err := c.codec.Compress(payloadPlain)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrDecompression, err)
	}

	out := make([]byte, 0, len(buf)+max(capHint, len(compressed)))
	out = append(out, buf...)
	out = append(out, compressed...)

	return out, nil
}

// Decode parses a PSP blob into a BlobData. It fails with
// errs.ErrUnsupportedVersion if the version byte exceeds Version, and with
// errs.ErrTruncatedPayload or errs.ErrDecompression for malformed or
// undersized wire data.
func (c *BlobCodec) Decode(blob []byte) (BlobData, error) {
	if len(blob) < 1 {
		return BlobData{}, fmt.Errorf("%w: empty blob", errs.ErrTruncatedPayload)
	}
	if blob[0] > Version {
		return BlobData{}, fmt.Errorf("%w: unsupported version %d", errs.ErrUnsupportedVersion, blob[0])
	}
	if len(blob) < 3 {
		return BlobData{}, fmt.Errorf("%w: blob too short for mean speeds", errs.ErrTruncatedPayload)
	}

	data := BlobData{WeekDaySpeed: blob[1], WeekendSpeed: blob[2]}

	if len(blob) == 3 {
		return data, nil
	}
	if len(blob) < 3+section.HeaderSize {
		return BlobData{}, fmt.Errorf("%w: blob too short for profile header", errs.ErrTruncatedPayload)
	}

	header, err := section.Parse(blob[3 : 3+section.HeaderSize])
	if err != nil {
		return BlobData{}, err
	}
	if err := header.Validate(); err != nil {
		return BlobData{}, err
	}

	data.TimeResolutionMinutes = uint16(header.ResolutionMinutes()) //nolint:gosec

	payload := blob[3+section.HeaderSize:]

	plain, err := c.codec.Decompress(payload)
	if err != nil {
		return BlobData{}, fmt.Errorf("%w: %v", errs.ErrDecompression, err)
	}

	binsPerDay := header.BinsPerDay()

	var days []int
	for d := 0; d < 7; d++ {
		if header.HasDay(d) {
			days = append(days, d)
		}
	}

	codes, err := encoding.NewProfileDeltaDecoder().Decode(plain, len(days)*binsPerDay)
	if err != nil {
		return BlobData{}, fmt.Errorf("%w: %v", errs.ErrTruncatedPayload, err)
	}

	data.Days = make(map[int]DayAccessor, len(days))
	idx := 0
	for _, d := range days {
		speeds := make([]float64, binsPerDay)
		for bin := 0; bin < binsPerDay; bin++ {
			speeds[bin] = flexfloat.Decode(codes[idx])
			idx++
		}
		data.Days[d] = DenseDayAccessor(speeds)
	}

	return data, nil
}

func daySet(days []int) map[int]bool {
	m := make(map[int]bool, len(days))
	for _, d := range days {
		m[d] = true
	}

	return m
}
