package pxnt

import (
	"github.com/pixnet/pixnet/errs"
	"github.com/pixnet/pixnet/format"
	"github.com/pixnet/pixnet/wireio"
)

// HeaderSize is the fixed size of the PXNT file header (spec.md §6.2).
const HeaderSize = 32

// FooterSize is the fixed size of the PXNT file footer (spec.md §6.2).
const FooterSize = 16

// Magic is the 4-byte magic at offset 0 of every PXNT file.
var Magic = [4]byte{'P', 'X', 'N', 'T'}

// FooterMagic is the 4-byte magic at the start of the footer.
var FooterMagic = [4]byte{'T', 'N', 'X', 'P'}

// Version is the only PXNT version this codec understands (spec.md §4.2).
const Version = 1

// Flag bits of Header.Flags (spec.md §4.2 step 4-7).
const (
	FlagPixelCompressed = 1 << 0
	FlagMapCompressed   = 1 << 1
	FlagHasAnimation    = 1 << 2
	FlagHasAudio        = 1 << 3
	FlagHasExtendedMeta = 1 << 4
)

// Header is the 32-byte PXNT file header.
//
// Layout (little-endian):
//
//	0-3   magic "PXNT"
//	4     version
//	5     pixel_format
//	6     compression (algorithm used by any compressed section)
//	7     reserved, must be zero
//	8-9   width
//	10-11 height
//	12-13 flags
//	14-27 reserved, must be zero
//	28-31 header_crc (CRC-32 over bytes 0-27)
type Header struct {
	Version     uint8
	PixelFormat format.PixelFormat
	Compression format.CompressionType
	Width       uint16
	Height      uint16
	Flags       uint16
	CRC         uint32
}

// Bytes encodes the header, computing CRC over bytes 0-27.
func (h *Header) Bytes() []byte {
	b := make([]byte, HeaderSize)
	copy(b[0:4], Magic[:])
	b[4] = h.Version
	b[5] = uint8(h.PixelFormat)
	b[6] = uint8(h.Compression)
	b[7] = 0
	le.PutUint16(b[8:10], h.Width)
	le.PutUint16(b[10:12], h.Height)
	le.PutUint16(b[12:14], h.Flags)
	// b[14:28] left zero (reserved)
	h.CRC = wireio.Checksum(b[0:28])
	le.PutUint32(b[28:32], h.CRC)

	return b
}

// ParseHeader parses and validates a 32-byte PXNT header (spec.md §4.2
// steps 1-2).
func ParseHeader(data []byte) (Header, error) {
	var h Header
	if len(data) != HeaderSize {
		return h, errs.TruncatedFile
	}
	if string(data[0:4]) != string(Magic[:]) {
		return h, errs.InvalidMagic
	}

	h.Version = data[4]
	if h.Version != Version {
		return h, errs.PxntUnsupportedVer
	}

	h.PixelFormat = format.PixelFormat(data[5])
	h.Compression = format.CompressionType(data[6])
	if data[7] != 0 {
		return h, errs.InvalidDimensions
	}

	h.Width = le.Uint16(data[8:10])
	h.Height = le.Uint16(data[10:12])
	h.Flags = le.Uint16(data[12:14])

	for _, b := range data[14:28] {
		if b != 0 {
			return h, errs.InvalidDimensions
		}
	}

	if !h.PixelFormat.Valid() {
		return h, errs.InvalidDimensions
	}
	if !h.Compression.Valid() {
		return h, errs.InvalidCompression
	}
	if h.Width == 0 || h.Height == 0 {
		return h, errs.InvalidDimensions
	}

	h.CRC = le.Uint32(data[28:32])
	if wireio.Checksum(data[0:28]) != h.CRC {
		return h, errs.PxntChecksumMismatch
	}

	return h, nil
}
