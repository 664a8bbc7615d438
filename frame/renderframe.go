package frame

import (
	"fmt"

	"github.com/pixnet/pixnet/compress"
	"github.com/pixnet/pixnet/errs"
	"github.com/pixnet/pixnet/format"
	"github.com/pixnet/pixnet/page"
	"github.com/pixnet/pixnet/wireio"
)

// Frame types (spec.md §4.3).
const (
	FrameTypeFull    uint8 = 0
	FrameTypePartial uint8 = 1 // reserved in v1: parsed, not interpreted
	FrameTypeAnim    uint8 = 2
)

// RenderFrameFlags bit 0 marks the pixel payload as zlib-compressed
// (spec.md §4.3).
const FlagCompressed uint16 = 1 << 0

// renderFrameHeaderSize is the sum of the fields spec.md §4.3 lists for the
// PIXNET header: magic(6)+frame_type(1)+sequence(4)+timestamp_us(8)+
// flags(2)+version(1)+width(2)+height(2)+format(1)+checksum(4) = 31 bytes.
const renderFrameHeaderSize = 31

// RenderFrame is the server→client PIXNET rendering frame: a header
// followed by pixel data, the category map, and category definitions
// (spec.md §4.3, §6.1).
type RenderFrame struct {
	FrameType   uint8
	Sequence    uint32
	TimestampUs uint64
	Version     uint8
	Width       uint16
	Height      uint16
	Format      format.PixelFormat

	Pixels      []byte
	CategoryMap []uint16
	Categories  map[uint16]page.CategoryDef
}

func (f *RenderFrame) Magic() Magic { return MagicRenderFrame }

// Encode serializes f, compressing the pixel payload with zlib when
// compressPixels is true (spec.md §4.3). The checksum covers the frame payload
// (pixel + category map + category defs) exactly as it appears on the wire,
// i.e. after compression.
func (f *RenderFrame) Encode(compressPixels bool) ([]byte, error) {
	pixelBytes := f.Pixels
	flags := uint16(0)

	if compressPixels {
		codec, err := compress.GetCodec(format.CompressionZlib)
		if err != nil {
			return nil, err
		}
		compressed, err := codec.Compress(f.Pixels)
		if err != nil {
			return nil, err
		}
		pixelBytes = compressed
		flags |= FlagCompressed
	}

	mapBytes := encodeCategoryMap(f.CategoryMap)

	payload := wireio.NewWriter(be)
	defer payload.Release()
	if compressPixels {
		// The compressed pixel payload carries no implicit length (unlike
		// the raw form, whose length is width·height·bpp); a 4-byte
		// length prefix lets the decoder find the category map that
		// follows it.
		payload.WriteUint32(uint32(len(pixelBytes)))
	}
	payload.WriteBytes(pixelBytes)
	payload.WriteBytes(mapBytes)
	writeCategoryDefs(payload, f.Categories)

	checksum := wireio.Checksum(payload.Bytes())

	out := wireio.NewWriter(be)
	defer out.Release()

	out.WriteBytes(MagicRenderFrame[:])
	out.WriteUint8(f.FrameType)
	out.WriteUint32(f.Sequence)
	out.WriteUint64(f.TimestampUs)
	out.WriteUint16(flags)
	out.WriteUint8(f.Version)
	out.WriteUint16(f.Width)
	out.WriteUint16(f.Height)
	out.WriteUint8(uint8(f.Format))
	out.WriteUint32(checksum)
	out.WriteBytes(payload.Bytes())

	return append([]byte(nil), out.Bytes()...), nil
}

// DecodeRenderFrame parses a complete PIXNET message, verifying its
// checksum and decompressing the pixel payload if flagged.
func DecodeRenderFrame(data []byte) (*RenderFrame, error) {
	if len(data) < renderFrameHeaderSize {
		return nil, errs.ProtocolError
	}

	r := wireio.NewReader(data, be)
	if _, err := r.ReadBytes(6); err != nil {
		return nil, err
	}

	f := &RenderFrame{}
	var err error
	if f.FrameType, err = r.ReadUint8(); err != nil {
		return nil, err
	}
	if f.Sequence, err = r.ReadUint32(); err != nil {
		return nil, err
	}
	if f.TimestampUs, err = r.ReadUint64(); err != nil {
		return nil, err
	}
	flags, err := r.ReadUint16()
	if err != nil {
		return nil, err
	}
	if f.Version, err = r.ReadUint8(); err != nil {
		return nil, err
	}
	if f.Width, err = r.ReadUint16(); err != nil {
		return nil, err
	}
	if f.Height, err = r.ReadUint16(); err != nil {
		return nil, err
	}
	var pf uint8
	if pf, err = r.ReadUint8(); err != nil {
		return nil, err
	}
	f.Format = format.PixelFormat(pf)
	checksum, err := r.ReadUint32()
	if err != nil {
		return nil, err
	}

	payload := r.Remaining()
	if wireio.Checksum(payload) != checksum {
		return nil, errs.ChecksumMismatch
	}

	bpp := f.Format.BytesPerPixel()
	wantPixels := int(f.Width) * int(f.Height) * bpp

	pr := wireio.NewReader(payload, be)

	var pixelBytes []byte
	if flags&FlagCompressed != 0 {
		compLen, err := pr.ReadUint32()
		if err != nil {
			return nil, err
		}
		compBytes, err := pr.ReadBytes(int(compLen))
		if err != nil {
			return nil, err
		}

		codec, err := compress.GetCodec(format.CompressionZlib)
		if err != nil {
			return nil, err
		}
		pixelBytes, err = codec.Decompress(compBytes, wantPixels)
		if err != nil {
			return nil, err
		}
		if len(pixelBytes) != wantPixels {
			return nil, fmt.Errorf("frame: decompressed pixel size %d, want %d", len(pixelBytes), wantPixels)
		}
	} else {
		pixelBytes, err = pr.ReadBytes(wantPixels)
		if err != nil {
			return nil, err
		}
	}
	f.Pixels = pixelBytes

	mapBytes, err := pr.ReadBytes(int(f.Width) * int(f.Height) * 2)
	if err != nil {
		return nil, err
	}
	f.CategoryMap = decodeCategoryMap(mapBytes)

	f.Categories, err = readCategoryDefs(pr)
	if err != nil {
		return nil, err
	}

	return f, nil
}
