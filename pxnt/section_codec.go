package pxnt

import (
	"github.com/pixnet/pixnet/compress"
	"github.com/pixnet/pixnet/errs"
	"github.com/pixnet/pixnet/wireio"
)

// writeSection appends raw, optionally compressed with codec. If
// compression is requested but does not shrink the section (counting its
// own 8-byte length prefix), the writer falls back to the uncompressed
// form and reports that no compression was used (spec.md §4.2, "the writer
// refuses to emit COMPRESSED if the compressed payload would be larger
// than the raw").
func writeSection(w *wireio.Writer, codec compress.Codec, attempt bool, raw []byte) (usedCompression bool) {
	if attempt && codec != nil {
		compressed, err := codec.Compress(raw)
		if err == nil && len(compressed)+8 < len(raw) {
			w.WriteUint32(uint32(len(compressed)))
			w.WriteUint32(uint32(len(raw)))
			w.WriteBytes(compressed)

			return true
		}
	}

	w.WriteBytes(raw)

	return false
}

// readSection reads a section previously written by writeSection, given
// whether the COMPRESSED flag was set for it, the exact raw length the
// caller expects once decompressed, and a decompression bomb ceiling.
func readSection(r *wireio.Reader, codec compress.Codec, compressed bool, expectedRawLen, maxUncompressed int) ([]byte, error) {
	if !compressed {
		return r.ReadBytes(expectedRawLen)
	}

	compressedLen, err := r.ReadUint32()
	if err != nil {
		return nil, err
	}
	uncompressedLen, err := r.ReadUint32()
	if err != nil {
		return nil, err
	}
	if int(uncompressedLen) > maxUncompressed {
		return nil, errs.SectionOverflow
	}
	if int(uncompressedLen) != expectedRawLen {
		return nil, errs.InvalidDimensions
	}

	compBytes, err := r.ReadBytes(int(compressedLen))
	if err != nil {
		return nil, errs.TruncatedFile
	}

	raw, err := codec.Decompress(compBytes, maxUncompressed)
	if err != nil {
		return nil, err
	}
	if len(raw) != expectedRawLen {
		return nil, errs.TruncatedFile
	}

	return raw, nil
}
