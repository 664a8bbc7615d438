package wireio

import (
	"github.com/pixnet/pixnet/endian"
	"github.com/pixnet/pixnet/internal/pool"
)

// Writer appends fixed- and variable-width fields to a growable buffer
// using a configured byte order. Writer is not safe for concurrent use.
type Writer struct {
	bb     *pool.ByteBuffer
	engine endian.EndianEngine
}

// NewWriter creates a Writer backed by a pooled frame buffer, using the
// given byte order.
func NewWriter(engine endian.EndianEngine) *Writer {
	return &Writer{bb: pool.GetFrameBuffer(), engine: engine}
}

// Release returns the Writer's backing buffer to its pool. Callers must
// not use the Writer after calling Release.
func (w *Writer) Release() {
	pool.PutFrameBuffer(w.bb)
	w.bb = nil
}

// Bytes returns the bytes written so far. The returned slice is owned by
// the Writer's backing buffer and is invalidated by Release.
func (w *Writer) Bytes() []byte {
	return w.bb.Bytes()
}

// WriteUint8 appends a single byte.
func (w *Writer) WriteUint8(v uint8) {
	w.bb.MustWrite([]byte{v})
}

// WriteUint16 appends a 16-bit integer using the writer's byte order.
func (w *Writer) WriteUint16(v uint16) {
	var tmp [2]byte
	w.engine.PutUint16(tmp[:], v)
	w.bb.MustWrite(tmp[:])
}

// WriteUint32 appends a 32-bit integer using the writer's byte order.
func (w *Writer) WriteUint32(v uint32) {
	var tmp [4]byte
	w.engine.PutUint32(tmp[:], v)
	w.bb.MustWrite(tmp[:])
}

// WriteUint64 appends a 64-bit integer using the writer's byte order.
func (w *Writer) WriteUint64(v uint64) {
	var tmp [8]byte
	w.engine.PutUint64(tmp[:], v)
	w.bb.MustWrite(tmp[:])
}

// WriteBytes appends raw bytes verbatim.
func (w *Writer) WriteBytes(b []byte) {
	w.bb.MustWrite(b)
}

// WriteString8 appends a byte length prefix followed by the UTF-8 bytes of
// s. It panics if s is longer than 255 bytes; callers must validate field
// lengths before encoding (spec.md §6.1's ua_len/name_len/msg_len fields).
func (w *Writer) WriteString8(s string) {
	if len(s) > 0xFF {
		panic("wireio: string exceeds 8-bit length prefix")
	}
	w.WriteUint8(uint8(len(s)))
	w.bb.MustWrite([]byte(s))
}

// WriteString16 appends a 16-bit length prefix followed by the UTF-8 bytes
// of s. It panics if s is longer than 65535 bytes.
func (w *Writer) WriteString16(s string) {
	if len(s) > 0xFFFF {
		panic("wireio: string exceeds 16-bit length prefix")
	}
	w.WriteUint16(uint16(len(s)))
	w.bb.MustWrite([]byte(s))
}
