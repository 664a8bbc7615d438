package pxnt

import (
	"github.com/pixnet/pixnet/format"
	"github.com/pixnet/pixnet/internal/options"
)

// WriterOption configures a Writer.
type WriterOption = options.Option[*Writer]

// WithCompression sets the compression algorithm the Writer attempts for
// the pixel and category-map sections. Default is format.CompressionNone.
func WithCompression(c format.CompressionType) WriterOption {
	return options.NoError(func(w *Writer) {
		w.compression = c
	})
}

// ReaderOption configures a Reader.
type ReaderOption = options.Option[*Reader]

// WithMaxUncompressedSectionSize overrides the decompression bomb guard
// (default MaxUncompressedSectionSize).
func WithMaxUncompressedSectionSize(n int) ReaderOption {
	return options.NoError(func(r *Reader) {
		r.maxUncompressed = n
	})
}
