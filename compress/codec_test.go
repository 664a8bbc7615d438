package compress

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pixnet/pixnet/format"
)

func TestGetCodec(t *testing.T) {
	tests := []struct {
		name string
		typ  format.CompressionType
		ok   bool
	}{
		{"none", format.CompressionNone, true},
		{"zlib", format.CompressionZlib, true},
		{"lz4", format.CompressionLZ4, true},
		{"unknown", format.CompressionType(99), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			codec, err := GetCodec(tt.typ)
			if !tt.ok {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, codec)
		})
	}
}

func TestCodec_RoundTrip(t *testing.T) {
	payload := make([]byte, 4096)
	for i := range payload {
		payload[i] = byte(i % 251)
	}

	for _, typ := range []format.CompressionType{format.CompressionNone, format.CompressionZlib, format.CompressionLZ4} {
		t.Run(typ.String(), func(t *testing.T) {
			codec, err := GetCodec(typ)
			require.NoError(t, err)

			compressed, err := codec.Compress(payload)
			require.NoError(t, err)

			decompressed, err := codec.Decompress(compressed, len(payload))
			require.NoError(t, err)

			assert.Equal(t, payload, decompressed)
		})
	}
}

func TestCodec_RoundTrip_Empty(t *testing.T) {
	for _, typ := range []format.CompressionType{format.CompressionNone, format.CompressionZlib, format.CompressionLZ4} {
		t.Run(typ.String(), func(t *testing.T) {
			codec, err := GetCodec(typ)
			require.NoError(t, err)

			compressed, err := codec.Compress(nil)
			require.NoError(t, err)

			decompressed, err := codec.Decompress(compressed, 4096)
			require.NoError(t, err)

			assert.Empty(t, decompressed)
		})
	}
}

func TestZlibCodec_Decompress_Corrupt(t *testing.T) {
	codec := NewZlibCodec()
	_, err := codec.Decompress([]byte{0x00, 0x01, 0x02}, 4096)
	assert.Error(t, err)
}

func TestLZ4Codec_Decompress_Corrupt(t *testing.T) {
	codec := NewLZ4Codec()
	_, err := codec.Decompress([]byte{0xff, 0xff, 0xff, 0xff}, 4096)
	assert.Error(t, err)
}

func TestZlibCodec_Decompress_ExceedsMaxLen(t *testing.T) {
	codec := NewZlibCodec()
	payload := make([]byte, 4096)

	compressed, err := codec.Compress(payload)
	require.NoError(t, err)

	_, err = codec.Decompress(compressed, 100)
	assert.Error(t, err)
}
