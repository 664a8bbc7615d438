package pxnt

import (
	"io"

	"github.com/pixnet/pixnet/page"
)

// SectionReader gives random-access callers (cmd/pxnetdump, a page
// thumbnail lister) a way to read a PXNT file's header without paying for
// the rest of the body, then decode the remaining sections lazily on
// first access (spec.md §4.2, grounded on the teacher's
// header-declares-offsets layout in section.NumericHeader). Unlike the
// teacher's format, PXNT's sections carry no independent offset table —
// metadata, pixels, the category map and the category defs are encoded
// back-to-back and can only be parsed in that order — so SectionReader's
// laziness is at the Header/body granularity: Header() never touches
// anything past the first 32 bytes, and every other accessor triggers one
// full body decode the first time it's called, after which the result is
// cached for every later accessor.
type SectionReader struct {
	ra     io.ReaderAt
	size   int64
	header Header
	rd     *Reader

	decoded bool
	page    *page.Page
	err     error
}

// NewSectionReader parses just the 32-byte header at the start of r and
// returns a SectionReader ready to lazily decode the rest. size is the
// total length of the PXNT file (callers typically have this already, for
// example from os.File.Stat).
func NewSectionReader(r io.ReaderAt, size int64, opts ...ReaderOption) (*SectionReader, error) {
	headerBytes := make([]byte, HeaderSize)
	if _, err := r.ReadAt(headerBytes, 0); err != nil {
		return nil, err
	}

	header, err := ParseHeader(headerBytes)
	if err != nil {
		return nil, err
	}

	return &SectionReader{
		ra:     r,
		size:   size,
		header: header,
		rd:     NewReader(opts...),
	}, nil
}

// Header returns the already-parsed file header.
func (sr *SectionReader) Header() Header {
	return sr.header
}

// decode reads and parses the whole file exactly once, caching the
// resulting Page (or error) for every subsequent accessor.
func (sr *SectionReader) decode() error {
	if sr.decoded {
		return sr.err
	}

	buf := make([]byte, sr.size)
	if _, err := io.ReadFull(io.NewSectionReader(sr.ra, 0, sr.size), buf); err != nil {
		sr.err = err
	} else {
		sr.page, sr.err = sr.rd.Read(buf)
	}
	sr.decoded = true

	return sr.err
}

// Metadata decodes (if needed) and returns the file's metadata section.
func (sr *SectionReader) Metadata() (page.Metadata, error) {
	if err := sr.decode(); err != nil {
		return page.Metadata{}, err
	}

	return sr.page.Metadata, nil
}

// Pixels decodes (if needed) and returns the raw pixel buffer.
func (sr *SectionReader) Pixels() ([]byte, error) {
	if err := sr.decode(); err != nil {
		return nil, err
	}

	return sr.page.Pixels, nil
}

// CategoryMap decodes (if needed) and returns the per-pixel category map.
func (sr *SectionReader) CategoryMap() ([]uint16, error) {
	if err := sr.decode(); err != nil {
		return nil, err
	}

	return sr.page.CategoryMap, nil
}

// CategoryDefs decodes (if needed) and returns the category ID to
// definition map.
func (sr *SectionReader) CategoryDefs() (map[uint16]page.CategoryDef, error) {
	if err := sr.decode(); err != nil {
		return nil, err
	}

	return sr.page.Categories, nil
}

// Animation decodes (if needed) and returns the optional animation block,
// nil if FlagHasAnimation was not set.
func (sr *SectionReader) Animation() ([]byte, error) {
	if err := sr.decode(); err != nil {
		return nil, err
	}

	return sr.page.Animation, nil
}

// Audio decodes (if needed) and returns the optional audio block, nil if
// FlagHasAudio was not set.
func (sr *SectionReader) Audio() ([]byte, error) {
	if err := sr.decode(); err != nil {
		return nil, err
	}

	return sr.page.Audio, nil
}

// ExtendedMetadata decodes (if needed) and returns the optional extended
// metadata block, nil if FlagHasExtendedMeta was not set.
func (sr *SectionReader) ExtendedMetadata() ([]byte, error) {
	if err := sr.decode(); err != nil {
		return nil, err
	}

	return sr.page.ExtendedMetadata, nil
}
