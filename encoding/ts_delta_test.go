package encoding

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func refreshTimes(base time.Time, offsets ...time.Duration) []int64 {
	out := make([]int64, len(offsets))
	for i, d := range offsets {
		out[i] = base.Add(d).UnixMicro()
	}

	return out
}

func decodeAll(t *testing.T, data []byte, count int) []int64 {
	t.Helper()

	out := make([]int64, 0, count)
	for ts := range NewTimestampDeltaDecoder().All(data, count) {
		out = append(out, ts)
	}

	return out
}

func TestTimestampDeltaEncoder_NewEncoder(t *testing.T) {
	enc := NewTimestampDeltaEncoder()

	require.Equal(t, 0, enc.Len())
	require.Equal(t, 0, enc.Size())
	require.Empty(t, enc.Bytes())
}

func TestTimestampDeltaEncoder_SingleSegmentRefresh(t *testing.T) {
	enc := NewTimestampDeltaEncoder()
	ts := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC).UnixMicro()

	enc.Write(ts)

	require.Equal(t, 1, enc.Len())
	require.Greater(t, enc.Size(), 0)
	require.Equal(t, []int64{ts}, decodeAll(t, enc.Bytes(), 1))
}

func TestTimestampDeltaEncoder_NightlyRebuildRegularInterval(t *testing.T) {
	// A batch rebuilt once a day for four consecutive days: after the
	// second entry, every delta-of-delta is zero and collapses to a
	// single byte each.
	base := time.Date(2026, 1, 1, 2, 0, 0, 0, time.UTC)
	timestamps := refreshTimes(base, 0, 24*time.Hour, 48*time.Hour, 72*time.Hour)

	enc := NewTimestampDeltaEncoder()
	for _, ts := range timestamps {
		enc.Write(ts)
	}

	require.Equal(t, timestamps, decodeAll(t, enc.Bytes(), len(timestamps)))
	// First two entries cost the most; the regular tail should be small.
	require.Less(t, enc.Size(), 9+9+2)
}

func TestTimestampDeltaEncoder_StaleSegmentBreaksRegularInterval(t *testing.T) {
	// Most segments refresh nightly, but one lagged behind by three days
	// before catching up; the chain must still round-trip exactly.
	base := time.Date(2026, 1, 1, 2, 0, 0, 0, time.UTC)
	timestamps := refreshTimes(base, 0, 24*time.Hour, 48*time.Hour, 5*24*time.Hour)

	enc := NewTimestampDeltaEncoder()
	for _, ts := range timestamps {
		enc.Write(ts)
	}

	require.Equal(t, timestamps, decodeAll(t, enc.Bytes(), len(timestamps)))
}

func TestTimestampDeltaEncoder_WriteSlice_Empty(t *testing.T) {
	enc := NewTimestampDeltaEncoder()
	enc.WriteSlice(nil)

	require.Equal(t, 0, enc.Len())
	require.Equal(t, 0, enc.Size())
	require.Empty(t, enc.Bytes())
}

func TestTimestampDeltaEncoder_WriteSliceMatchesWrite(t *testing.T) {
	base := time.Date(2026, 1, 1, 2, 0, 0, 0, time.UTC)
	timestamps := refreshTimes(base, 0, 24*time.Hour, 30*time.Hour, 90*time.Hour, 91*time.Hour)

	viaWrite := NewTimestampDeltaEncoder()
	for _, ts := range timestamps {
		viaWrite.Write(ts)
	}

	viaSlice := NewTimestampDeltaEncoder()
	viaSlice.WriteSlice(timestamps)

	require.Equal(t, viaWrite.Bytes(), viaSlice.Bytes())
	require.Equal(t, viaWrite.Len(), viaSlice.Len())
}

func TestTimestampDeltaEncoder_WriteSliceInTwoCalls(t *testing.T) {
	// batch.SegmentBatch.Encode writes the whole column in one WriteSlice
	// call, but the encoder must behave the same if split across calls.
	base := time.Date(2026, 1, 1, 2, 0, 0, 0, time.UTC)
	first := refreshTimes(base, 0, 24*time.Hour)
	second := refreshTimes(base, 48*time.Hour, 72*time.Hour)

	enc := NewTimestampDeltaEncoder()
	enc.WriteSlice(first)
	enc.WriteSlice(second)

	want := append(append([]int64{}, first...), second...)
	require.Equal(t, want, decodeAll(t, enc.Bytes(), len(want)))
}

func TestTimestampDeltaEncoder_Reset(t *testing.T) {
	base := time.Date(2026, 1, 1, 2, 0, 0, 0, time.UTC)

	enc := NewTimestampDeltaEncoder()
	enc.Write(base.UnixMicro())
	before := len(enc.Bytes())

	enc.Reset()
	// Reset clears the delta chain, not the accumulated bytes/length.
	require.Equal(t, 1, enc.Len())
	require.Equal(t, before, enc.Size())

	enc.Write(base.Add(24 * time.Hour).UnixMicro())
	require.Equal(t, 2, enc.Len())
}

func TestTimestampDeltaEncoder_Finish(t *testing.T) {
	enc := NewTimestampDeltaEncoder()
	enc.Write(time.Now().UnixMicro())

	enc.Finish()

	require.Equal(t, 0, enc.Len())
	require.Equal(t, 0, enc.Size())
	require.Empty(t, enc.Bytes())

	// The encoder is reusable after Finish.
	ts := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC).UnixMicro()
	enc.Write(ts)
	require.Equal(t, []int64{ts}, decodeAll(t, enc.Bytes(), 1))
}

func TestTimestampDeltaDecoder_At(t *testing.T) {
	base := time.Date(2026, 1, 1, 2, 0, 0, 0, time.UTC)
	timestamps := refreshTimes(base, 0, 24*time.Hour, 48*time.Hour, 96*time.Hour)

	enc := NewTimestampDeltaEncoder()
	enc.WriteSlice(timestamps)

	dec := NewTimestampDeltaDecoder()
	for i, want := range timestamps {
		got, ok := dec.At(enc.Bytes(), i, len(timestamps))
		require.True(t, ok)
		require.Equal(t, want, got)
	}

	_, ok := dec.At(enc.Bytes(), len(timestamps), len(timestamps))
	require.False(t, ok)

	_, ok = dec.At(nil, 0, 0)
	require.False(t, ok)
}

func TestTimestampDeltaDecoder_AllStopsOnEarlyBreak(t *testing.T) {
	base := time.Date(2026, 1, 1, 2, 0, 0, 0, time.UTC)
	timestamps := refreshTimes(base, 0, 24*time.Hour, 48*time.Hour, 72*time.Hour)

	enc := NewTimestampDeltaEncoder()
	enc.WriteSlice(timestamps)

	var collected []int64
	for ts := range NewTimestampDeltaDecoder().All(enc.Bytes(), len(timestamps)) {
		collected = append(collected, ts)
		if len(collected) == 2 {
			break
		}
	}

	require.Equal(t, timestamps[:2], collected)
}

func TestTimestampDeltaDecoder_EmptyColumn(t *testing.T) {
	require.Empty(t, decodeAll(t, nil, 0))
}

func TestTimestampDeltaDecoder_TruncatedColumnStopsEarly(t *testing.T) {
	base := time.Date(2026, 1, 1, 2, 0, 0, 0, time.UTC)
	timestamps := refreshTimes(base, 0, 24*time.Hour, 48*time.Hour)

	enc := NewTimestampDeltaEncoder()
	enc.WriteSlice(timestamps)

	truncated := enc.Bytes()[:1]
	decoded := decodeAll(t, truncated, len(timestamps))
	require.Less(t, len(decoded), len(timestamps))
}
