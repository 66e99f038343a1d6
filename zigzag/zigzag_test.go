package zigzag

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEncodeDecode_RoundTrip(t *testing.T) {
	values := []int16{0, 1, -1, 2, -2, math.MaxInt16, math.MinInt16, 1023, -1023, 100, -100}
	for _, v := range values {
		u := Encode(v)
		require.Equal(t, v, Decode(u))
	}
}

func TestEncode_SmallMagnitudesStaySmall(t *testing.T) {
	require.Equal(t, uint16(0), Encode(0))
	require.Equal(t, uint16(1), Encode(-1))
	require.Equal(t, uint16(2), Encode(1))
	require.Equal(t, uint16(3), Encode(-2))
	require.Equal(t, uint16(4), Encode(2))
}

func TestEncode_BoundedByTwiceMagnitude(t *testing.T) {
	for _, v := range []int16{0, 1, -1, 500, -500, 32000, -32000} {
		u := Encode(v)
		mag := int(v)
		if mag < 0 {
			mag = -mag
		}
		require.LessOrEqual(t, int(u), 2*mag+1)
	}
}

func TestEncode_AllValuesExhaustive16Range(t *testing.T) {
	// Exhaustive over the full int16 domain is only 65536 values; cheap enough to run.
	for i := -32768; i <= 32767; i++ {
		v := int16(i)
		require.Equal(t, v, Decode(Encode(v)))
	}
}
