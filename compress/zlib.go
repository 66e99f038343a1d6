package compress

import (
	"bytes"
	"fmt"
	"io"

	"github.com/klauspost/compress/zlib"
	"github.com/tomtom-international/premium-sp-blob/errs"
)

// ZlibCodec is the mandatory wire-format compressor for PSP blob profile
// payloads (spec.md §4.4, C4 Deflate): a single-shot RFC 1950 zlib stream at
// the default compression level.
//
// It wraps github.com/klauspost/compress/zlib, an API- and stream-compatible
// drop-in for the standard library's compress/zlib that the teacher already
// depends on (via github.com/klauspost/compress) for its S2 codec; using its
// zlib subpackage here keeps the whole module on one flate implementation
// instead of mixing klauspost's with the standard library's.
type ZlibCodec struct{}

var _ Codec = (*ZlibCodec)(nil)

// NewZlibCodec creates a new zlib codec at the default compression level.
func NewZlibCodec() ZlibCodec {
	return ZlibCodec{}
}

// Compress deflates data into an RFC 1950 zlib stream.
func (c ZlibCodec) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	var buf bytes.Buffer

	w := zlib.NewWriter(&buf)
	if _, err := w.Write(data); err != nil {
		_ = w.Close()
		return nil, fmt.Errorf("zlib compress: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("zlib compress: %w", err)
	}

	return buf.Bytes(), nil
}

// Decompress inflates an RFC 1950 zlib stream.
//
// Returns errs.ErrDecompression wrapping the underlying error if data is not
// a valid zlib stream.
func (c ZlibCodec) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	r, err := zlib.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrDecompression, err)
	}
	defer r.Close()

	out, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrDecompression, err)
	}

	return out, nil
}
