package compress

// NoOpCodec is the identity codec used for format.CompressionNone: it
// returns the input unchanged, without copying.
//
// Note: the returned slice shares the same underlying memory as the input.
// Callers should not modify the input data after calling Compress/Decompress
// if they plan to keep using the returned slice.
type NoOpCodec struct{}

var _ Codec = (*NoOpCodec)(nil)

// NewNoOpCodec creates a no-operation codec.
func NewNoOpCodec() NoOpCodec {
	return NoOpCodec{}
}

func (c NoOpCodec) Compress(data []byte) ([]byte, error) {
	return data, nil
}

func (c NoOpCodec) Decompress(data []byte, maxLen int) ([]byte, error) {
	if len(data) > maxLen {
		return nil, errTooLarge
	}

	return data, nil
}
