// Package compress provides compression and decompression codecs for PXNT
// sections and wire render frames.
//
// # Overview
//
// PXNT names one format.CompressionType for the whole file in its header
// (spec.md §6.2). The pixel and category-map sections each carry only a
// compressed flag saying whether that algorithm was applied to them; the
// metadata section is never compressed. The wire frame codec (C3) reuses the same Codec
// interface for the optional compressed render-frame payload, restricted to
// None and Zlib (spec.md §4.1).
//
// # Architecture
//
// The package defines three small interfaces:
//
//	type Compressor interface {
//	    Compress(data []byte) ([]byte, error)
//	}
//
//	type Decompressor interface {
//	    Decompress(data []byte, maxLen int) ([]byte, error)
//	}
//
//	type Codec interface {
//	    Compressor
//	    Decompressor
//	}
//
// GetCodec resolves a format.CompressionType to its built-in Codec:
//
//	codec, err := compress.GetCodec(format.CompressionLZ4)
//	compressed, err := codec.Compress(sectionPayload)
//	original, err := codec.Decompress(compressed, maxSectionSize)
//
// # Supported algorithms
//
// NoOp (format.CompressionNone) returns the input unchanged; use it when a
// section is already small or incompressible.
//
// Zlib (format.CompressionZlib) wraps github.com/klauspost/compress/zlib.
// It is the only compression type a wire render frame may use, and is a
// reasonable default for PXNT pixel and category-map sections.
//
// LZ4 (format.CompressionLZ4) wraps github.com/pierrec/lz4/v4 block
// compression. It favors fast decompression over compression ratio, which
// suits large pixel sections that a viewer must decode on every frame.
//
// # Error handling
//
// Decompress returns an error for truncated or corrupted input, and for
// output that would exceed the caller-supplied maxLen — every
// implementation bounds the decompressed bytes it actually materializes by
// maxLen rather than trusting a stream's own declared or implied expansion
// ratio, so a section that lies about its uncompressed size cannot be used
// to exhaust memory before the length is checked (see
// pxnt.MaxUncompressedSectionSize for the PXNT-level ceiling passed in as
// maxLen).
package compress
