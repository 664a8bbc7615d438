package compress

import (
	"bytes"
	"io"

	"github.com/klauspost/compress/zlib"
)

// ZlibCodec implements format.CompressionZlib, the only compression type
// the wire render frame (C3) may use, and a common choice for PXNT
// pixel and category-map sections (spec.md §4.1, §6.2).
type ZlibCodec struct{}

var _ Codec = (*ZlibCodec)(nil)

// NewZlibCodec creates a new zlib codec.
func NewZlibCodec() ZlibCodec {
	return ZlibCodec{}
}

// Compress compresses data using zlib at the default compression level.
func (c ZlibCodec) Compress(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	w := zlib.NewWriter(&buf)

	if _, err := w.Write(data); err != nil {
		_ = w.Close()
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// Decompress decompresses a zlib stream produced by Compress. The reader
// is bounded by maxLen+1 bytes so a stream that expands far past its
// declared size is cut off instead of fully materialized in memory.
func (c ZlibCodec) Decompress(data []byte, maxLen int) ([]byte, error) {
	r, err := zlib.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer r.Close()

	out, err := io.ReadAll(io.LimitReader(r, int64(maxLen)+1))
	if err != nil {
		return nil, err
	}
	if len(out) > maxLen {
		return nil, errTooLarge
	}

	return out, nil
}
