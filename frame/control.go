package frame

import "github.com/pixnet/pixnet/wireio"

// Ping is the server→client (or either direction's) PIXPNG keepalive probe
// (spec.md §4.4).
type Ping struct {
	SessionID [8]byte
	Timestamp uint64
}

func (p *Ping) Magic() Magic { return MagicPing }

func (p *Ping) Encode() []byte {
	return encodeTimestamped(MagicPing, p.SessionID, p.Timestamp)
}

func DecodePing(data []byte) (*Ping, error) {
	sid, ts, err := decodeTimestamped(data)
	if err != nil {
		return nil, err
	}

	return &Ping{SessionID: sid, Timestamp: ts}, nil
}

// Pong is the PIXPOG keepalive reply, echoing the Ping's timestamp
// (spec.md §4.4).
type Pong struct {
	SessionID [8]byte
	Timestamp uint64
}

func (p *Pong) Magic() Magic { return MagicPong }

func (p *Pong) Encode() []byte {
	return encodeTimestamped(MagicPong, p.SessionID, p.Timestamp)
}

func DecodePong(data []byte) (*Pong, error) {
	sid, ts, err := decodeTimestamped(data)
	if err != nil {
		return nil, err
	}

	return &Pong{SessionID: sid, Timestamp: ts}, nil
}

func encodeTimestamped(m Magic, sessionID [8]byte, timestamp uint64) []byte {
	w := wireio.NewWriter(be)
	defer w.Release()

	w.WriteBytes(m[:])
	w.WriteBytes(sessionID[:])
	w.WriteUint64(timestamp)

	return append([]byte(nil), w.Bytes()...)
}

func decodeTimestamped(data []byte) (sessionID [8]byte, timestamp uint64, err error) {
	r := wireio.NewReader(data, be)
	if _, err = r.ReadBytes(6); err != nil {
		return sessionID, 0, err
	}

	sid, err := r.ReadBytes(8)
	if err != nil {
		return sessionID, 0, err
	}
	copy(sessionID[:], sid)

	timestamp, err = r.ReadUint64()

	return sessionID, timestamp, err
}

// ErrorMsg is the PIXERR message (spec.md §6.1, §6.4).
type ErrorMsg struct {
	SessionID [8]byte
	Code      uint16
	Msg       string
}

func (e *ErrorMsg) Magic() Magic { return MagicError }

func (e *ErrorMsg) Encode() []byte {
	w := wireio.NewWriter(be)
	defer w.Release()

	w.WriteBytes(MagicError[:])
	w.WriteBytes(e.SessionID[:])
	w.WriteUint16(e.Code)
	w.WriteString8(e.Msg)

	return append([]byte(nil), w.Bytes()...)
}

func DecodeErrorMsg(data []byte) (*ErrorMsg, error) {
	r := wireio.NewReader(data, be)
	if _, err := r.ReadBytes(6); err != nil {
		return nil, err
	}

	e := &ErrorMsg{}
	sid, err := r.ReadBytes(8)
	if err != nil {
		return nil, err
	}
	copy(e.SessionID[:], sid)

	if e.Code, err = r.ReadUint16(); err != nil {
		return nil, err
	}
	if e.Msg, err = r.ReadString8(); err != nil {
		return nil, err
	}

	return e, nil
}

// Bye is the PIXBYE graceful termination message (spec.md §4.4, §6.1).
type Bye struct {
	SessionID  [8]byte
	ReasonCode uint8
	Reason     string
}

func (b *Bye) Magic() Magic { return MagicBye }

func (b *Bye) Encode() []byte {
	w := wireio.NewWriter(be)
	defer w.Release()

	w.WriteBytes(MagicBye[:])
	w.WriteBytes(b.SessionID[:])
	w.WriteUint8(b.ReasonCode)
	w.WriteString8(b.Reason)

	return append([]byte(nil), w.Bytes()...)
}

func DecodeBye(data []byte) (*Bye, error) {
	r := wireio.NewReader(data, be)
	if _, err := r.ReadBytes(6); err != nil {
		return nil, err
	}

	b := &Bye{}
	sid, err := r.ReadBytes(8)
	if err != nil {
		return nil, err
	}
	copy(b.SessionID[:], sid)

	if b.ReasonCode, err = r.ReadUint8(); err != nil {
		return nil, err
	}
	if b.Reason, err = r.ReadString8(); err != nil {
		return nil, err
	}

	return b, nil
}
