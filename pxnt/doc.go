// Package pxnt implements the PXNT binary container codec (spec.md §4.2,
// §6.2): a 32-byte header, metadata, pixel data, category map, category
// definitions, optional animation/audio/extended-metadata sections, and a
// 16-byte footer, all little-endian.
//
// Reading and writing are both single-pass, in-memory operations: Read
// takes the full file contents and produces a *page.Page; Write takes a
// *page.Page and produces the full file contents, back-patching both CRCs
// once the body is known. Sections carry no offset table and are parsed in
// file order; SectionReader reads the header on its own and decodes the
// whole body on the first access to any other section.
package pxnt

import "github.com/pixnet/pixnet/endian"

var le = endian.GetLittleEndianEngine()

// MaxUncompressedSectionSize is the default decompression bomb guard: a
// compressed section whose declared uncompressed size exceeds this is
// rejected before decompression is attempted (spec.md §4.2 step 4).
const MaxUncompressedSectionSize = 256 * 1024 * 1024

// MimeType and Extension are the registered identifiers for the PXNT
// format (spec.md §6.2).
const (
	MimeType  = "application/vnd.pixnet.pxnt"
	Extension = ".pxnt"
)
