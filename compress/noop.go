package compress

// NoOpCodec bypasses compression entirely, returning the input unchanged.
//
// It backs blob.BlobCodec's internal compression toggle (spec.md §4.4/§9):
// the public codec always compresses with NewZlibCodec, but tests that need
// to inspect or hand-construct payloadPlain directly use NoOpCodec through
// an unexported option so the wire layout stays identical minus the deflate
// stage.
type NoOpCodec struct{}

var _ Codec = (*NoOpCodec)(nil)

// NewNoOpCodec creates a no-operation codec that bypasses data unchanged.
func NewNoOpCodec() NoOpCodec {
	return NoOpCodec{}
}

// Compress returns data unchanged.
//
// Note: the returned slice shares the same underlying memory as the input.
func (c NoOpCodec) Compress(data []byte) ([]byte, error) {
	return data, nil
}

// Decompress returns data unchanged.
//
// Note: the returned slice shares the same underlying memory as the input.
func (c NoOpCodec) Decompress(data []byte) ([]byte, error) {
	return data, nil
}
