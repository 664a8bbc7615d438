package server

import (
	"bufio"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pixnet/pixnet/format"
	"github.com/pixnet/pixnet/frame"
	"github.com/pixnet/pixnet/page"
)

func testPage(t *testing.T) *page.Page {
	t.Helper()

	return &page.Page{
		Width: 1, Height: 1,
		Format:      format.RGBA8,
		Pixels:      []byte{255, 255, 255, 255},
		CategoryMap: []uint16{0},
		Categories:  map[uint16]page.CategoryDef{},
	}
}

// TestConn_HandshakeAndRenderFrame drives one simulated client connection
// through handshake and the initial full-frame push using net.Pipe in
// place of a TCP socket.
func TestConn_HandshakeAndRenderFrame(t *testing.T) {
	srv, err := New(WithRateLimit(1000))
	require.NoError(t, err)
	require.NoError(t, srv.SetPage(testPage(t)))

	clientConn, serverConn := net.Pipe()
	defer clientConn.Close()

	h, err := newConnHandler(srv, serverConn)
	require.NoError(t, err)
	go h.serve()

	clientBR := bufio.NewReader(clientConn)

	hs := &frame.Handshake{Version: 1, Capabilities: frame.CapCompression, UserAgent: "test-client"}
	_, err = clientConn.Write(hs.Encode())
	require.NoError(t, err)

	clientConn.SetReadDeadline(time.Now().Add(2 * time.Second))

	ackMsg, err := readClientMessage(t, clientBR)
	require.NoError(t, err)
	ack, ok := ackMsg.(*frame.Ack)
	require.True(t, ok, "expected PIXACK, got %T", ackMsg)
	assert.Equal(t, uint8(1), ack.Version)

	rfMsg, err := readClientMessage(t, clientBR)
	require.NoError(t, err)
	rf, ok := rfMsg.(*frame.RenderFrame)
	require.True(t, ok, "expected PIXNET render frame, got %T", rfMsg)
	assert.Equal(t, uint16(1), rf.Width)
	assert.Equal(t, uint16(1), rf.Height)
}

// readClientMessage reads one message the server sent, using the same
// incremental framing the server itself uses to read from clients. The
// server can also emit PIXNET and PIXACK, which readMessage otherwise
// rejects as client-only; this helper accepts the full set.
func readClientMessage(t *testing.T, br *bufio.Reader) (frame.Message, error) {
	t.Helper()

	head := make([]byte, 6)
	if _, err := readFull(br, head); err != nil {
		return nil, err
	}

	var magic frame.Magic
	copy(magic[:], head)

	switch magic {
	case frame.MagicAck:
		rest, err := readFixedTail(br, 11)
		if err != nil {
			return nil, err
		}

		return frame.DecodeAck(append(head, rest...))

	case frame.MagicRenderFrame:
		return readRenderFrame(br, head)

	default:
		return nil, &frame.ErrUnknownMagic{Got: magic}
	}
}

func readFull(br *bufio.Reader, buf []byte) (int, error) {
	n := 0
	for n < len(buf) {
		m, err := br.Read(buf[n:])
		n += m
		if err != nil {
			return n, err
		}
	}

	return n, nil
}

// readRenderFrame reads a full PIXNET frame by parsing just enough of its
// header to know the remaining length, mirroring the client-side
// counterpart of the server's own readMessage.
func readRenderFrame(br *bufio.Reader, head []byte) (frame.Message, error) {
	// frame_type(1)+sequence(4)+timestamp_us(8)+flags(2)+version(1)+width(2)+
	// height(2)+format(1)+checksum(4) = 25 bytes after the magic.
	hdr := make([]byte, 25)
	if _, err := readFull(br, hdr); err != nil {
		return nil, err
	}

	// hdr layout (after the 6-byte magic already consumed): frame_type(1)
	// sequence(4) timestamp_us(8) flags(2) version(1) width(2) height(2)
	// format(1) checksum(4).
	flags := uint16(hdr[13])<<8 | uint16(hdr[14])
	width := uint16(hdr[16])<<8 | uint16(hdr[17])
	height := uint16(hdr[18])<<8 | uint16(hdr[19])
	pf := hdr[20]

	bpp := format.PixelFormat(pf).BytesPerPixel()

	var pixelSectionLen int
	if flags&frame.FlagCompressed != 0 {
		lenPrefix := make([]byte, 4)
		if _, err := readFull(br, lenPrefix); err != nil {
			return nil, err
		}
		compLen := int(lenPrefix[0])<<24 | int(lenPrefix[1])<<16 | int(lenPrefix[2])<<8 | int(lenPrefix[3])
		rest := make([]byte, compLen)
		if _, err := readFull(br, rest); err != nil {
			return nil, err
		}

		mapBytes, defs, err := readMapAndDefs(br, int(width)*int(height))
		if err != nil {
			return nil, err
		}

		full := append(head, hdr...)
		full = append(full, lenPrefix...)
		full = append(full, rest...)
		full = append(full, mapBytes...)
		full = append(full, defs...)

		return frame.DecodeRenderFrame(full)
	}

	pixelSectionLen = int(width) * int(height) * bpp
	pixels := make([]byte, pixelSectionLen)
	if _, err := readFull(br, pixels); err != nil {
		return nil, err
	}

	mapBytes, defs, err := readMapAndDefs(br, int(width)*int(height))
	if err != nil {
		return nil, err
	}

	full := append(head, hdr...)
	full = append(full, pixels...)
	full = append(full, mapBytes...)
	full = append(full, defs...)

	return frame.DecodeRenderFrame(full)
}

func readMapAndDefs(br *bufio.Reader, pixelCount int) (mapBytes, defs []byte, err error) {
	mapBytes = make([]byte, pixelCount*2)
	if _, err = readFull(br, mapBytes); err != nil {
		return nil, nil, err
	}

	countBytes := make([]byte, 2)
	if _, err = readFull(br, countBytes); err != nil {
		return nil, nil, err
	}
	count := int(countBytes[0])<<8 | int(countBytes[1])

	defs = append(defs, countBytes...)
	for i := 0; i < count; i++ {
		// id(2) + name_len(1)
		head := make([]byte, 3)
		if _, err = readFull(br, head); err != nil {
			return nil, nil, err
		}
		nameLen := int(head[2])
		name := make([]byte, nameLen)
		if _, err = readFull(br, name); err != nil {
			return nil, nil, err
		}
		// behavior_id(1) + priority(1) + data_len(2)
		tail := make([]byte, 4)
		if _, err = readFull(br, tail); err != nil {
			return nil, nil, err
		}
		dataLen := int(tail[2])<<8 | int(tail[3])
		data := make([]byte, dataLen)
		if _, err = readFull(br, data); err != nil {
			return nil, nil, err
		}

		defs = append(defs, head...)
		defs = append(defs, name...)
		defs = append(defs, tail...)
		defs = append(defs, data...)
	}

	return mapBytes, defs, nil
}
