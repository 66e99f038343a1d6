package varint

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tomtom-international/premium-sp-blob/errs"
	"github.com/tomtom-international/premium-sp-blob/zigzag"
)

func TestEncodeDecode_RoundTrip(t *testing.T) {
	values := []uint16{0, 1, 0x7F, 0x80, 0x3FFF, 0x4000, 0xFFFF}
	for _, u := range values {
		buf := Encode(nil, u)
		got, n, err := Decode(buf)
		require.NoError(t, err)
		require.Equal(t, u, got)
		require.Equal(t, len(buf), n)
	}
}

func TestLen_MatchesByteBoundaries(t *testing.T) {
	require.Equal(t, 1, Len(0))
	require.Equal(t, 1, Len(0x7F))
	require.Equal(t, 2, Len(0x80))
	require.Equal(t, 2, Len(0x3FFF))
	require.Equal(t, 3, Len(0x4000))
	require.Equal(t, 3, Len(0xFFFF))
}

func TestLen_MatchesActualEncodedLength(t *testing.T) {
	for _, u := range []uint16{0, 1, 127, 128, 16383, 16384, 65535} {
		require.Equal(t, Len(u), len(Encode(nil, u)))
	}
}

func TestDecode_TruncatedStream(t *testing.T) {
	_, _, err := Decode([]byte{0x80})
	require.Error(t, err)
	require.True(t, errors.Is(err, errs.ErrTruncatedPayload))

	_, _, err = Decode(nil)
	require.Error(t, err)
}

func TestDecode_RunsPastThreeBytesIsStructuralError(t *testing.T) {
	// Three continuation bytes followed by a terminator: decoding must stop at 3.
	_, _, err := Decode([]byte{0x80, 0x80, 0x80, 0x01})
	require.Error(t, err)
	require.True(t, errors.Is(err, errs.ErrTruncatedPayload))
}

func TestZigzagDeltaAlwaysFitsThreeBytes(t *testing.T) {
	// deltas between successive 10-bit codes lie in [-1023, 1023]
	for delta := -1023; delta <= 1023; delta++ {
		u := zigzag.Encode(int16(delta))
		require.LessOrEqual(t, Len(u), MaxLen)
	}
}
