package wireio

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pixnet/pixnet/endian"
)

func TestReaderWriter_RoundTrip_BigEndian(t *testing.T) {
	w := NewWriter(endian.GetBigEndianEngine())
	defer w.Release()

	w.WriteUint8(0x7F)
	w.WriteUint16(0x1234)
	w.WriteUint32(0xDEADBEEF)
	w.WriteUint64(0x0102030405060708)
	w.WriteString8("hello")
	w.WriteBytes([]byte{1, 2, 3})

	r := NewReader(w.Bytes(), endian.GetBigEndianEngine())

	u8, err := r.ReadUint8()
	require.NoError(t, err)
	assert.Equal(t, uint8(0x7F), u8)

	u16, err := r.ReadUint16()
	require.NoError(t, err)
	assert.Equal(t, uint16(0x1234), u16)

	u32, err := r.ReadUint32()
	require.NoError(t, err)
	assert.Equal(t, uint32(0xDEADBEEF), u32)

	u64, err := r.ReadUint64()
	require.NoError(t, err)
	assert.Equal(t, uint64(0x0102030405060708), u64)

	s, err := r.ReadString8()
	require.NoError(t, err)
	assert.Equal(t, "hello", s)

	b, err := r.ReadBytes(3)
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3}, b)

	assert.Equal(t, 0, r.Len())
}

func TestReader_ShortBuffer(t *testing.T) {
	r := NewReader([]byte{0x01}, endian.GetBigEndianEngine())

	_, err := r.ReadUint32()
	assert.ErrorIs(t, err, ErrShortBuffer)
}

func TestReader_String16_InvalidUTF8(t *testing.T) {
	buf := []byte{0x00, 0x02, 0xFF, 0xFE}
	r := NewReader(buf, endian.GetBigEndianEngine())

	_, err := r.ReadString16()
	assert.Error(t, err)
}

func TestWriter_String8_TooLong(t *testing.T) {
	w := NewWriter(endian.GetBigEndianEngine())
	defer w.Release()

	assert.Panics(t, func() {
		w.WriteString8(string(make([]byte, 256)))
	})
}

func TestChecksum_DetectsSingleByteFlip(t *testing.T) {
	data := []byte("the quick brown fox jumps over the lazy dog")
	original := Checksum(data)

	tampered := append([]byte(nil), data...)
	tampered[0] ^= 0x01

	assert.NotEqual(t, original, Checksum(tampered))
}
