package wireio

import "hash/crc32"

// Checksum computes the standard IEEE 802.3 CRC-32 (polynomial 0xEDB88320
// reflected) used for both PXNT section integrity and wire frame checksums
// (spec.md §4.1).
func Checksum(data []byte) uint32 {
	return crc32.ChecksumIEEE(data)
}
