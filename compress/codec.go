// Package compress provides the section-level compression codecs used by
// the PXNT container format and, for zlib only, the wire render frame
// (spec.md §4.1, §6.1, §6.2).
package compress

import (
	"errors"
	"fmt"

	"github.com/pixnet/pixnet/format"
)

// errTooLarge is returned by a Decompressor when the decompressed output
// would exceed the caller's maxLen bound.
var errTooLarge = errors.New("compress: decompressed size exceeds limit")

// Compressor compresses a section or frame payload.
//
// Memory management:
//   - Returned slice is newly allocated and owned by the caller
//   - Input slice is not modified
//   - Internal buffers may be reused for efficiency
type Compressor interface {
	Compress(data []byte) ([]byte, error)
}

// Decompressor decompresses a payload previously produced by the matching
// Compressor. maxLen bounds how many decompressed bytes the implementation
// will ever materialize, independent of any size a compressed stream
// itself claims to expand to — a zip-bomb guard enforced by the reader,
// not trusted from the input (spec.md §4.2's 256 MiB section ceiling).
//
// Error conditions:
//   - Returns an error if the input is truncated or corrupted
//   - Returns an error if the decompressed output would exceed maxLen
type Decompressor interface {
	Decompress(data []byte, maxLen int) ([]byte, error)
}

// Codec combines both compression and decompression capabilities.
type Codec interface {
	Compressor
	Decompressor
}

var builtinCodecs = map[format.CompressionType]Codec{
	format.CompressionNone: NewNoOpCodec(),
	format.CompressionZlib: NewZlibCodec(),
	format.CompressionLZ4:  NewLZ4Codec(),
}

// GetCodec retrieves the built-in Codec for the given PXNT/wire compression
// type (spec.md §6.2's closed enum: none, zlib, lz4).
func GetCodec(compressionType format.CompressionType) (Codec, error) {
	if codec, ok := builtinCodecs[compressionType]; ok {
		return codec, nil
	}

	return nil, fmt.Errorf("compress: unsupported compression type %s", compressionType)
}
