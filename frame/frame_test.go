package frame

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pixnet/pixnet/format"
	"github.com/pixnet/pixnet/page"
)

func TestHandshake_RoundTrip(t *testing.T) {
	h := &Handshake{Version: 1, Capabilities: CapCompression, UserAgent: "test"}
	decoded, err := DecodeHandshake(h.Encode())
	require.NoError(t, err)
	assert.Equal(t, h, decoded)
}

func TestAck_RoundTrip(t *testing.T) {
	a := &Ack{Version: 1, SessionID: [8]byte{1, 2, 3, 4, 5, 6, 7, 8}, ServerCapabilities: CapCompression}
	decoded, err := DecodeAck(a.Encode())
	require.NoError(t, err)
	assert.Equal(t, a, decoded)
}

func TestRenderFrame_RoundTrip_Uncompressed(t *testing.T) {
	f := &RenderFrame{
		FrameType:   FrameTypeFull,
		Sequence:    1,
		TimestampUs: 123,
		Version:     1,
		Width:       2,
		Height:      1,
		Format:      format.RGBA8,
		Pixels:      []byte{1, 2, 3, 4, 5, 6, 7, 8},
		CategoryMap: []uint16{0, 7},
		Categories: map[uint16]page.CategoryDef{
			7: {ID: 7, Name: "nav", BehaviorID: format.BehaviorNavigate, Priority: 1, BehaviorData: []byte("/x")},
		},
	}

	data, err := f.Encode(false)
	require.NoError(t, err)

	decoded, err := DecodeRenderFrame(data)
	require.NoError(t, err)

	assert.Equal(t, f.Sequence, decoded.Sequence)
	assert.Equal(t, f.Pixels, decoded.Pixels)
	assert.Equal(t, f.CategoryMap, decoded.CategoryMap)
	assert.Equal(t, "nav", decoded.Categories[7].Name)
}

func TestRenderFrame_RoundTrip_Compressed(t *testing.T) {
	pixels := make([]byte, 64)
	f := &RenderFrame{
		FrameType:   FrameTypeFull,
		Width:       4,
		Height:      4,
		Format:      format.RGBA8,
		Pixels:      pixels,
		CategoryMap: make([]uint16, 16),
		Categories:  map[uint16]page.CategoryDef{},
	}

	data, err := f.Encode(true)
	require.NoError(t, err)

	decoded, err := DecodeRenderFrame(data)
	require.NoError(t, err)
	assert.Equal(t, pixels, decoded.Pixels)
}

func TestRenderFrame_ChecksumTamper_Rejected(t *testing.T) {
	f := &RenderFrame{
		Width:       1,
		Height:      1,
		Format:      format.RGBA8,
		Pixels:      []byte{1, 2, 3, 4},
		CategoryMap: []uint16{0},
		Categories:  map[uint16]page.CategoryDef{},
	}

	data, err := f.Encode(false)
	require.NoError(t, err)

	data[renderFrameHeaderSize] ^= 0x01 // flip first pixel byte

	_, err = DecodeRenderFrame(data)
	assert.Error(t, err)
}

func TestEvent_RoundTrip(t *testing.T) {
	e := &Event{
		SessionID: [8]byte{1, 2, 3, 4, 5, 6, 7, 8},
		Sequence:  1,
		ZoneID:    7,
		EventType: 1,
		Timestamp: 99,
		MouseX:    10,
		MouseY:    20,
		Modifiers: 0,
		Name:      "click",
		Payload:   []byte("hi"),
	}

	decoded, err := DecodeEvent(e.Encode())
	require.NoError(t, err)
	assert.Equal(t, e, decoded)
}

func TestScrollUpdate_RoundTrip(t *testing.T) {
	s := &ScrollUpdate{SessionID: [8]byte{1}, ZoneID: 2, ScrollX: 3, ScrollY: 4}
	decoded, err := DecodeScrollUpdate(s.Encode())
	require.NoError(t, err)
	assert.Equal(t, s, decoded)
}

func TestDragUpdate_RoundTrip(t *testing.T) {
	d := &DragUpdate{SessionID: [8]byte{1}, EventType: DragStart, Src: 1, Dst: 2, MouseX: 3, MouseY: 4, Data: []byte("d")}
	decoded, err := DecodeDragUpdate(d.Encode())
	require.NoError(t, err)
	assert.Equal(t, d, decoded)
}

func TestPingPong_RoundTrip(t *testing.T) {
	p := &Ping{SessionID: [8]byte{1}, Timestamp: 123}
	decoded, err := DecodePing(p.Encode())
	require.NoError(t, err)
	assert.Equal(t, p, decoded)

	pg := &Pong{SessionID: [8]byte{1}, Timestamp: 123}
	decodedPong, err := DecodePong(pg.Encode())
	require.NoError(t, err)
	assert.Equal(t, pg, decodedPong)
}

func TestErrorMsg_RoundTrip(t *testing.T) {
	e := &ErrorMsg{SessionID: [8]byte{1}, Code: 1001, Msg: "bad version"}
	decoded, err := DecodeErrorMsg(e.Encode())
	require.NoError(t, err)
	assert.Equal(t, e, decoded)
}

func TestBye_RoundTrip(t *testing.T) {
	b := &Bye{SessionID: [8]byte{1}, ReasonCode: 0, Reason: "done"}
	decoded, err := DecodeBye(b.Encode())
	require.NoError(t, err)
	assert.Equal(t, b, decoded)
}

func TestDecodeAny_UnknownMagic(t *testing.T) {
	_, err := DecodeAny([]byte("BOGUS!"))
	var unknown *ErrUnknownMagic
	assert.ErrorAs(t, err, &unknown)
}

func TestDecodeAny_DispatchesByMagic(t *testing.T) {
	h := &Handshake{Version: 1, Capabilities: 0, UserAgent: "x"}
	msg, err := DecodeAny(h.Encode())
	require.NoError(t, err)
	assert.IsType(t, &Handshake{}, msg)
}
