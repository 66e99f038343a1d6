package batch

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/tomtom-international/premium-sp-blob/blob"
	"github.com/tomtom-international/premium-sp-blob/format"
)

func sampleBlob(t *testing.T, weekday, weekend uint8) []byte {
	t.Helper()

	codec := blob.NewBlobCodec()
	encoded, err := codec.Encode(blob.BlobData{WeekDaySpeed: weekday, WeekendSpeed: weekend})
	require.NoError(t, err)

	return encoded
}

func TestSegmentBatch_AddAndEncodeDecodeRoundTrip(t *testing.T) {
	b := NewSegmentBatch()

	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	require.NoError(t, b.Add("tmc:1001+", sampleBlob(t, 50, 60), base))
	require.NoError(t, b.Add("tmc:1002+", sampleBlob(t, 70, 80), base.Add(time.Minute)))
	require.NoError(t, b.Add("olr:abcd1234", sampleBlob(t, 30, 40), base.Add(2*time.Minute)))

	archive, err := b.Encode()
	require.NoError(t, err)
	require.NotEmpty(t, archive)

	decoded, err := DecodeSegmentBatch(archive)
	require.NoError(t, err)
	require.Equal(t, 3, decoded.Len())
	require.False(t, decoded.HasCollision())

	entries := decoded.Entries()
	require.Equal(t, "tmc:1001+", entries[0].Ref)
	require.Equal(t, "tmc:1002+", entries[1].Ref)
	require.Equal(t, "olr:abcd1234", entries[2].Ref)
	require.Equal(t, base.UnixMicro(), entries[0].UpdatedAtUnixMicro)
	require.Equal(t, base.Add(time.Minute).UnixMicro(), entries[1].UpdatedAtUnixMicro)
	require.Equal(t, base.Add(2*time.Minute).UnixMicro(), entries[2].UpdatedAtUnixMicro)

	for i, e := range entries {
		require.Equal(t, blob.NewSegmentID(e.Ref), e.ID, "entry %d", i)
	}

	require.Equal(t, sampleBlob(t, 50, 60), entries[0].Blob)
	require.Equal(t, sampleBlob(t, 70, 80), entries[1].Blob)
	require.Equal(t, sampleBlob(t, 30, 40), entries[2].Blob)
}

func TestSegmentBatch_Empty(t *testing.T) {
	b := NewSegmentBatch()

	archive, err := b.Encode()
	require.NoError(t, err)

	decoded, err := DecodeSegmentBatch(archive)
	require.NoError(t, err)
	require.Equal(t, 0, decoded.Len())
	require.Empty(t, decoded.Entries())
}

func TestSegmentBatch_EmptyRefFails(t *testing.T) {
	b := NewSegmentBatch()

	err := b.Add("", sampleBlob(t, 50, 60), time.Now())
	require.Error(t, err)
}

func TestSegmentBatch_DuplicateRefFails(t *testing.T) {
	b := NewSegmentBatch()

	require.NoError(t, b.Add("tmc:1001+", sampleBlob(t, 50, 60), time.Now()))
	err := b.Add("tmc:1001+", sampleBlob(t, 50, 60), time.Now())
	require.Error(t, err)
}

func TestSegmentBatch_ArchiveCompressionOptions(t *testing.T) {
	for name, ct := range map[string]format.CompressionType{
		"None": format.CompressionNone,
		"Zlib": format.CompressionZlib,
		"Zstd": format.CompressionZstd,
		"S2":   format.CompressionS2,
		"LZ4":  format.CompressionLZ4,
	} {
		t.Run(name, func(t *testing.T) {
			b := NewSegmentBatch(WithArchiveCompression(ct))
			require.NoError(t, b.Add("tmc:1001+", sampleBlob(t, 50, 60), time.Now()))

			archive, err := b.Encode()
			require.NoError(t, err)

			decoded, err := DecodeSegmentBatch(archive)
			require.NoError(t, err)
			require.Equal(t, 1, decoded.Len())
			require.Equal(t, sampleBlob(t, 50, 60), decoded.Entries()[0].Blob)
		})
	}
}

func TestDecodeSegmentBatch_TruncatedHeader(t *testing.T) {
	_, err := DecodeSegmentBatch([]byte{0x01, 0x02})
	require.Error(t, err)
}

func TestDecodeSegmentBatch_TruncatedPayload(t *testing.T) {
	b := NewSegmentBatch()
	require.NoError(t, b.Add("tmc:1001+", sampleBlob(t, 50, 60), time.Now()))

	archive, err := b.Encode()
	require.NoError(t, err)

	_, err = DecodeSegmentBatch(archive[:len(archive)-2])
	require.Error(t, err)
}

func TestDecodeSegmentBatch_UnsupportedVersion(t *testing.T) {
	b := NewSegmentBatch()
	require.NoError(t, b.Add("tmc:1001+", sampleBlob(t, 50, 60), time.Now()))

	archive, err := b.Encode()
	require.NoError(t, err)

	archive[0] = ArchiveVersion + 1

	_, err = DecodeSegmentBatch(archive)
	require.Error(t, err)
}
