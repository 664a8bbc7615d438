package frame

import (
	"github.com/pixnet/pixnet/endian"
	"github.com/pixnet/pixnet/wireio"
)

var be = endian.GetBigEndianEngine()

// Capability flag bits negotiated at handshake (spec.md §6.1).
const (
	CapCompression = 1 << 0
	CapPartial     = 1 << 1
	CapAnimation   = 1 << 2
	CapAudio       = 1 << 3
)

// Handshake is the client's initial PIXHND message.
type Handshake struct {
	Version      uint8
	Capabilities uint16
	UserAgent    string
}

func (h *Handshake) Magic() Magic { return MagicHandshake }

func (h *Handshake) Encode() []byte {
	w := wireio.NewWriter(be)
	defer w.Release()

	w.WriteBytes(MagicHandshake[:])
	w.WriteUint8(h.Version)
	w.WriteUint16(h.Capabilities)
	w.WriteString8(h.UserAgent)

	return append([]byte(nil), w.Bytes()...)
}

// DecodeHandshake decodes a PIXHND message. data must begin with the 6-byte
// magic, which is skipped without being checked.
func DecodeHandshake(data []byte) (*Handshake, error) {
	r := wireio.NewReader(data, be)
	if _, err := r.ReadBytes(6); err != nil {
		return nil, err
	}

	h := &Handshake{}
	var err error
	if h.Version, err = r.ReadUint8(); err != nil {
		return nil, err
	}
	if h.Capabilities, err = r.ReadUint16(); err != nil {
		return nil, err
	}
	if h.UserAgent, err = r.ReadString8(); err != nil {
		return nil, err
	}

	return h, nil
}

// Ack is the server's PIXACK response, carrying the freshly assigned
// session ID.
type Ack struct {
	Version            uint8
	SessionID          [8]byte
	ServerCapabilities uint16
}

func (a *Ack) Magic() Magic { return MagicAck }

func (a *Ack) Encode() []byte {
	w := wireio.NewWriter(be)
	defer w.Release()

	w.WriteBytes(MagicAck[:])
	w.WriteUint8(a.Version)
	w.WriteBytes(a.SessionID[:])
	w.WriteUint16(a.ServerCapabilities)

	return append([]byte(nil), w.Bytes()...)
}

func DecodeAck(data []byte) (*Ack, error) {
	r := wireio.NewReader(data, be)
	if _, err := r.ReadBytes(6); err != nil {
		return nil, err
	}

	a := &Ack{}
	var err error
	if a.Version, err = r.ReadUint8(); err != nil {
		return nil, err
	}
	sid, err := r.ReadBytes(8)
	if err != nil {
		return nil, err
	}
	copy(a.SessionID[:], sid)
	if a.ServerCapabilities, err = r.ReadUint16(); err != nil {
		return nil, err
	}

	return a, nil
}
