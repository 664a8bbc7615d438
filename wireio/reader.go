// Package wireio provides bounded, endian-aware binary primitives shared by
// the wire frame codec (big-endian) and the PXNT container codec
// (little-endian). Every read takes from a fixed remaining-bytes budget and
// fails closed on overrun, so a truncated or hostile input can never cause
// an out-of-bounds read (spec.md §4.1).
package wireio

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/pixnet/pixnet/endian"
)

// ErrShortBuffer is returned when a read would consume more bytes than
// remain in the buffer.
var ErrShortBuffer = errors.New("wireio: short buffer")

// Reader reads fixed- and variable-width fields from an in-memory buffer
// using a configured byte order, advancing a cursor and never reading past
// the end of the buffer.
type Reader struct {
	buf    []byte
	pos    int
	engine endian.EndianEngine
}

// NewReader creates a Reader over buf using the given byte order. Wire
// frames use endian.GetBigEndianEngine(); PXNT sections use
// endian.GetLittleEndianEngine() (spec.md §6.1, §6.2).
func NewReader(buf []byte, engine endian.EndianEngine) *Reader {
	return &Reader{buf: buf, engine: engine}
}

// Len returns the number of unread bytes remaining in the buffer.
func (r *Reader) Len() int {
	return len(r.buf) - r.pos
}

// Remaining returns the unread tail of the buffer without consuming it.
func (r *Reader) Remaining() []byte {
	return r.buf[r.pos:]
}

func (r *Reader) take(n int) ([]byte, error) {
	if n < 0 || r.Len() < n {
		return nil, fmt.Errorf("%w: need %d, have %d", ErrShortBuffer, n, r.Len())
	}
	b := r.buf[r.pos : r.pos+n]
	r.pos += n

	return b, nil
}

// ReadUint8 reads one byte.
func (r *Reader) ReadUint8() (uint8, error) {
	b, err := r.take(1)
	if err != nil {
		return 0, err
	}

	return b[0], nil
}

// ReadUint16 reads a 16-bit integer using the reader's byte order.
func (r *Reader) ReadUint16() (uint16, error) {
	b, err := r.take(2)
	if err != nil {
		return 0, err
	}

	return r.engine.Uint16(b), nil
}

// ReadUint32 reads a 32-bit integer using the reader's byte order.
func (r *Reader) ReadUint32() (uint32, error) {
	b, err := r.take(4)
	if err != nil {
		return 0, err
	}

	return r.engine.Uint32(b), nil
}

// ReadUint64 reads a 64-bit integer using the reader's byte order.
func (r *Reader) ReadUint64() (uint64, error) {
	b, err := r.take(8)
	if err != nil {
		return 0, err
	}

	return r.engine.Uint64(b), nil
}

// ReadBytes reads and returns a copy of the next n bytes.
func (r *Reader) ReadBytes(n int) ([]byte, error) {
	b, err := r.take(n)
	if err != nil {
		return nil, err
	}

	out := make([]byte, n)
	copy(out, b)

	return out, nil
}

// ReadString8 reads a byte length prefix followed by that many bytes of
// UTF-8 text, as used by PIXHND's user agent and PIXEVT/PIXERR/PIXBYE's
// name/message/reason fields (spec.md §6.1).
func (r *Reader) ReadString8() (string, error) {
	n, err := r.ReadUint8()
	if err != nil {
		return "", err
	}

	return r.readString(int(n))
}

// ReadString16 reads a 16-bit length prefix followed by that many bytes of
// UTF-8 text, as used by PXNT metadata string fields and the url of a
// Navigate behavior's data.
func (r *Reader) ReadString16() (string, error) {
	n, err := r.ReadUint16()
	if err != nil {
		return "", err
	}

	return r.readString(int(n))
}

func (r *Reader) readString(n int) (string, error) {
	b, err := r.take(n)
	if err != nil {
		return "", err
	}
	if !utf8.Valid(b) {
		return "", fmt.Errorf("wireio: invalid UTF-8 in %d-byte string field", n)
	}

	return string(b), nil
}
