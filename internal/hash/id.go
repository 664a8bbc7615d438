// Package hash provides fast, non-cryptographic hashing used to shard the
// dispatcher's session table and to key the category interpreter's
// debounce state map. It is never used for the PXNT/frame integrity
// checks, which the spec mandates as CRC-32 (see the wireio package).
package hash

import "github.com/cespare/xxhash/v2"

// ID computes the xxHash64 of the given string.
func ID(data string) uint64 {
	return xxhash.Sum64String(data)
}

// Bytes computes the xxHash64 of the given byte slice, used to shard a
// session table by its 8-byte session_id.
func Bytes(data []byte) uint64 {
	return xxhash.Sum64(data)
}

// Zone computes a stable key for a (zoneID, name) pair, used by the
// category interpreter to key its per-zone debounce state.
func Zone(zoneID uint16, name string) uint64 {
	var buf [2]byte
	buf[0] = byte(zoneID >> 8)
	buf[1] = byte(zoneID)

	d := xxhash.New()
	_, _ = d.Write(buf[:])
	_, _ = d.WriteString(name)

	return d.Sum64()
}
