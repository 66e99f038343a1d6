package section

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewHeader_MaxResolutionEncodesToZero(t *testing.T) {
	h, err := NewHeader(1440, map[int]bool{0: true})
	require.NoError(t, err)
	require.Equal(t, byte(0), h.OutRes)
	require.Equal(t, 1440, h.ResolutionMinutes())
}

func TestNewHeader_ByteSizedResolutionBoundary(t *testing.T) {
	h, err := NewHeader(240, map[int]bool{0: true, 1: true, 2: true, 3: true, 4: true, 5: true, 6: true})
	require.NoError(t, err)
	require.Equal(t, byte(0xF0), h.OutRes)
	require.Equal(t, byte(0x7F), h.DaysBitSet)
	require.Equal(t, 240, h.ResolutionMinutes())
}

func TestNewHeader_MissingDaysBitSet(t *testing.T) {
	h, err := NewHeader(240, map[int]bool{0: true, 1: true, 3: true, 4: true, 6: true})
	require.NoError(t, err)
	require.Equal(t, byte(0x5B), h.DaysBitSet)
}

func TestNewHeader_InvalidResolution(t *testing.T) {
	_, err := NewHeader(0, nil)
	require.Error(t, err)

	_, err = NewHeader(17, nil)
	require.Error(t, err)

	_, err = NewHeader(1441, nil)
	require.Error(t, err)
}

func TestNewHeader_InvalidDayIndex(t *testing.T) {
	_, err := NewHeader(60, map[int]bool{7: true})
	require.Error(t, err)

	_, err = NewHeader(60, map[int]bool{-1: true})
	require.Error(t, err)
}

func TestHeader_BytesRoundTrip(t *testing.T) {
	h, err := NewHeader(60, map[int]bool{0: true, 6: true})
	require.NoError(t, err)

	raw := h.Bytes()
	parsed, err := Parse(raw[:])
	require.NoError(t, err)
	require.Equal(t, h, parsed)
}

func TestParse_TooShort(t *testing.T) {
	_, err := Parse([]byte{0x01})
	require.Error(t, err)
}

func TestHeader_HasDay(t *testing.T) {
	h, err := NewHeader(240, map[int]bool{0: true, 1: true, 3: true, 4: true, 6: true})
	require.NoError(t, err)

	require.True(t, h.HasDay(0))
	require.True(t, h.HasDay(1))
	require.False(t, h.HasDay(2))
	require.True(t, h.HasDay(3))
	require.True(t, h.HasDay(4))
	require.False(t, h.HasDay(5))
	require.True(t, h.HasDay(6))
	require.False(t, h.HasDay(7))
	require.False(t, h.HasDay(-1))
}

func TestHeader_BinsPerDay(t *testing.T) {
	h, err := NewHeader(240, nil)
	require.NoError(t, err)
	require.Equal(t, 6, h.BinsPerDay())

	h, err = NewHeader(1440, nil)
	require.NoError(t, err)
	require.Equal(t, 1, h.BinsPerDay())

	h, err = NewHeader(1, nil)
	require.NoError(t, err)
	require.Equal(t, 1440, h.BinsPerDay())
}

func TestHeader_Validate(t *testing.T) {
	h, err := NewHeader(240, map[int]bool{0: true})
	require.NoError(t, err)
	require.NoError(t, h.Validate())

	bad := Header{OutRes: 17, DaysBitSet: 0}
	require.Error(t, bad.Validate())

	bad = Header{OutRes: 60, DaysBitSet: 0x80}
	require.Error(t, bad.Validate())
}
