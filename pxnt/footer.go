package pxnt

import (
	"github.com/pixnet/pixnet/errs"
	"github.com/pixnet/pixnet/wireio"
)

// Footer is the 16-byte PXNT file footer.
//
// Layout (little-endian):
//
//	0-3   magic "TNXP"
//	4-7   data_crc (CRC-32 over all bytes after the header, before the footer)
//	8-11  header_crc (echo of Header.CRC, cross-checked against it)
//	12-15 file_size (total file size in bytes)
type Footer struct {
	DataCRC   uint32
	HeaderCRC uint32
	FileSize  uint32
}

// Bytes encodes the footer.
func (f *Footer) Bytes() []byte {
	b := make([]byte, FooterSize)
	copy(b[0:4], FooterMagic[:])
	le.PutUint32(b[4:8], f.DataCRC)
	le.PutUint32(b[8:12], f.HeaderCRC)
	le.PutUint32(b[12:16], f.FileSize)

	return b
}

// ParseFooter parses and validates a 16-byte PXNT footer against the
// header's CRC and the data that preceded it (spec.md §4.2 step 8).
func ParseFooter(data []byte, headerCRC uint32, body []byte, totalSize int) (Footer, error) {
	var f Footer
	if len(data) != FooterSize {
		return f, errs.TruncatedFile
	}
	if string(data[0:4]) != string(FooterMagic[:]) {
		return f, errs.InvalidMagic
	}

	f.DataCRC = le.Uint32(data[4:8])
	f.HeaderCRC = le.Uint32(data[8:12])
	f.FileSize = le.Uint32(data[12:16])

	if f.HeaderCRC != headerCRC {
		return f, errs.PxntChecksumMismatch
	}
	if wireio.Checksum(body) != f.DataCRC {
		return f, errs.PxntChecksumMismatch
	}
	if int(f.FileSize) != totalSize {
		return f, errs.TruncatedFile
	}

	return f, nil
}
