package pxnt

import (
	"github.com/pixnet/pixnet/compress"
	"github.com/pixnet/pixnet/errs"
	"github.com/pixnet/pixnet/format"
	"github.com/pixnet/pixnet/internal/options"
	"github.com/pixnet/pixnet/page"
	"github.com/pixnet/pixnet/wireio"
)

// Writer encodes a *page.Page into the PXNT container format (spec.md
// §4.2). The zero value writes with format.CompressionNone; use
// WithCompression to enable per-section compression.
type Writer struct {
	compression format.CompressionType
}

// NewWriter creates a Writer configured by opts.
func NewWriter(opts ...WriterOption) *Writer {
	w := &Writer{compression: format.CompressionNone}
	_ = options.Apply(w, opts...)

	return w
}

// Write encodes p into a complete PXNT file, computing both CRCs in a
// single pass and back-patching the header once the body is known (spec.md
// §4.2, writer description).
func (w *Writer) Write(p *page.Page) ([]byte, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	var codec compress.Codec
	attemptCompress := w.compression != format.CompressionNone
	if attemptCompress {
		c, err := compress.GetCodec(w.compression)
		if err != nil {
			return nil, err
		}
		codec = c
	}

	body := wireio.NewWriter(le)
	defer body.Release()

	writeMetadata(body, p.Metadata)

	pixelCompressed := writeSection(body, codec, attemptCompress, p.Pixels)

	categoryMapBytes := encodeCategoryMap(p.CategoryMap)
	mapCompressed := writeSection(body, codec, attemptCompress, categoryMapBytes)

	writeCategoryDefs(body, p.Categories)

	flags := uint16(0)
	if pixelCompressed {
		flags |= FlagPixelCompressed
	}
	if mapCompressed {
		flags |= FlagMapCompressed
	}
	if len(p.Animation) > 0 {
		flags |= FlagHasAnimation
		body.WriteUint32(uint32(len(p.Animation)))
		body.WriteBytes(p.Animation)
	}
	if len(p.Audio) > 0 {
		flags |= FlagHasAudio
		body.WriteUint32(uint32(len(p.Audio)))
		body.WriteBytes(p.Audio)
	}
	if len(p.ExtendedMetadata) > 0 {
		flags |= FlagHasExtendedMeta
		body.WriteUint32(uint32(len(p.ExtendedMetadata)))
		body.WriteBytes(p.ExtendedMetadata)
	}

	header := Header{
		Version:     Version,
		PixelFormat: p.Format,
		Compression: w.compression,
		Width:       p.Width,
		Height:      p.Height,
		Flags:       flags,
	}
	headerBytes := header.Bytes()
	bodyBytes := body.Bytes()

	footer := Footer{
		DataCRC:   wireio.Checksum(bodyBytes),
		HeaderCRC: header.CRC,
		FileSize:  uint32(HeaderSize + len(bodyBytes) + FooterSize),
	}

	out := make([]byte, 0, len(headerBytes)+len(bodyBytes)+FooterSize)
	out = append(out, headerBytes...)
	out = append(out, bodyBytes...)
	out = append(out, footer.Bytes()...)

	return out, nil
}

// Reader decodes a PXNT container into a *page.Page (spec.md §4.2).
type Reader struct {
	maxUncompressed int
}

// NewReader creates a Reader configured by opts.
func NewReader(opts ...ReaderOption) *Reader {
	r := &Reader{maxUncompressed: MaxUncompressedSectionSize}
	_ = options.Apply(r, opts...)

	return r
}

// Read parses data as a complete PXNT file.
func (rd *Reader) Read(data []byte) (*page.Page, error) {
	if len(data) < HeaderSize+FooterSize {
		return nil, errs.TruncatedFile
	}

	header, err := ParseHeader(data[:HeaderSize])
	if err != nil {
		return nil, err
	}

	bodyAndFooter := data[HeaderSize:]
	body := bodyAndFooter[:len(bodyAndFooter)-FooterSize]
	footerBytes := bodyAndFooter[len(bodyAndFooter)-FooterSize:]

	if _, err := ParseFooter(footerBytes, header.CRC, body, len(data)); err != nil {
		return nil, err
	}

	var codec compress.Codec
	if header.Flags&(FlagPixelCompressed|FlagMapCompressed) != 0 {
		codec, err = compress.GetCodec(header.Compression)
		if err != nil {
			return nil, err
		}
	}

	r := wireio.NewReader(body, le)

	metadata, err := readMetadata(r)
	if err != nil {
		return nil, err
	}

	bpp := header.PixelFormat.BytesPerPixel()
	pixelLen := int(header.Width) * int(header.Height) * bpp
	pixels, err := readSection(r, codec, header.Flags&FlagPixelCompressed != 0, pixelLen, rd.maxUncompressed)
	if err != nil {
		return nil, err
	}

	mapLen := int(header.Width) * int(header.Height) * 2
	mapBytes, err := readSection(r, codec, header.Flags&FlagMapCompressed != 0, mapLen, rd.maxUncompressed)
	if err != nil {
		return nil, err
	}

	categories, err := readCategoryDefs(r)
	if err != nil {
		return nil, err
	}

	p := &page.Page{
		Width:       header.Width,
		Height:      header.Height,
		Format:      header.PixelFormat,
		Pixels:      pixels,
		CategoryMap: decodeCategoryMap(mapBytes),
		Categories:  categories,
		Metadata:    metadata,
	}

	if header.Flags&FlagHasAnimation != 0 {
		if p.Animation, err = readOptionalBlock(r); err != nil {
			return nil, err
		}
	}
	if header.Flags&FlagHasAudio != 0 {
		if p.Audio, err = readOptionalBlock(r); err != nil {
			return nil, err
		}
	}
	if header.Flags&FlagHasExtendedMeta != 0 {
		if p.ExtendedMetadata, err = readOptionalBlock(r); err != nil {
			return nil, err
		}
	}

	if err := p.Validate(); err != nil {
		return nil, err
	}

	return p, nil
}

func readOptionalBlock(r *wireio.Reader) ([]byte, error) {
	n, err := r.ReadUint32()
	if err != nil {
		return nil, err
	}

	return r.ReadBytes(int(n))
}

func encodeCategoryMap(m []uint16) []byte {
	b := make([]byte, len(m)*2)
	for i, v := range m {
		le.PutUint16(b[i*2:i*2+2], v)
	}

	return b
}

func decodeCategoryMap(b []byte) []uint16 {
	m := make([]uint16, len(b)/2)
	for i := range m {
		m[i] = le.Uint16(b[i*2 : i*2+2])
	}

	return m
}
