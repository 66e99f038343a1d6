// Package section implements the fixed-size header that precedes a PSP
// blob's profile payload (C5 in the codec pipeline).
package section

import "github.com/tomtom-international/premium-sp-blob/errs"

// HeaderSize is the number of bytes the profile header occupies when daily
// speed profiles are present.
const HeaderSize = 2

// maxOutRes is the largest resolution value that can be written verbatim into
// outRes; 1440 itself is special-cased to 0 (see Bytes/Parse).
const maxOutRes = 255

// Header is the two-byte section that follows the mean-speed bytes whenever
// a blob carries daily speed profiles: a resolution byte and a day-presence
// bit-field.
type Header struct {
	// OutRes is the on-wire encoding of the time resolution: equal to
	// TimeResolutionMinutes, except that 1440 is written as 0.
	OutRes byte
	// DaysBitSet has bit d set (0 = Sunday .. 6 = Saturday) iff day d carries
	// a speed profile. The top bit is always 0.
	DaysBitSet byte
}

// NewHeader builds a Header from a time resolution in minutes and the set of
// present days. resolutionMinutes must be in [1, 1440] and divide 1440; days
// must contain only indices 0..6.
func NewHeader(resolutionMinutes int, days map[int]bool) (Header, error) {
	if resolutionMinutes <= 0 || resolutionMinutes > 1440 || 1440%resolutionMinutes != 0 {
		return Header{}, errs.ErrInvalidInput
	}

	outRes := resolutionMinutes
	if outRes == 1440 {
		outRes = 0
	}
	if outRes > maxOutRes {
		return Header{}, errs.ErrInvalidInput
	}

	var bitset byte
	for d := range days {
		if d < 0 || d > 6 {
			return Header{}, errs.ErrInvalidInput
		}
		bitset |= 1 << uint(d)
	}

	return Header{OutRes: byte(outRes), DaysBitSet: bitset}, nil
}

// Bytes serializes the header into its two-byte wire form.
func (h Header) Bytes() [HeaderSize]byte {
	return [HeaderSize]byte{h.OutRes, h.DaysBitSet}
}

// Parse reads a Header from its two-byte wire form.
func Parse(data []byte) (Header, error) {
	if len(data) < HeaderSize {
		return Header{}, errs.ErrInvalidHeaderSize
	}

	return Header{OutRes: data[0], DaysBitSet: data[1]}, nil
}

// ResolutionMinutes returns the time resolution in minutes, undoing the
// 1440-to-0 substitution applied in NewHeader/Bytes.
func (h Header) ResolutionMinutes() int {
	if h.OutRes == 0 {
		return 1440
	}

	return int(h.OutRes)
}

// HasDay reports whether day d (0 = Sunday .. 6 = Saturday) is present.
func (h Header) HasDay(d int) bool {
	if d < 0 || d > 6 {
		return false
	}

	return (h.DaysBitSet>>uint(d))&1 == 1
}

// Validate checks that the header describes a coherent profile section: the
// resolution divides 1440 and the top bit of DaysBitSet is clear.
func (h Header) Validate() error {
	res := h.ResolutionMinutes()
	if 1440%res != 0 {
		return errs.ErrInvalidInput
	}
	if h.DaysBitSet&0x80 != 0 {
		return errs.ErrInvalidInput
	}

	return nil
}

// BinsPerDay returns 1440 / ResolutionMinutes(), the number of speed bins in
// each present day's profile.
func (h Header) BinsPerDay() int {
	return 1440 / h.ResolutionMinutes()
}
