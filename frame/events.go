package frame

import "github.com/pixnet/pixnet/wireio"

// Event is the client→server PIXEVT message (spec.md §6.1): emitted by
// EmitEvent categories and by the synthetic "navigate" event the handshake
// design note routes a URL's path+query through (spec.md §9, §6.3).
type Event struct {
	SessionID [8]byte
	Sequence  uint32
	ZoneID    uint16
	EventType uint8
	Timestamp uint64
	MouseX    uint16
	MouseY    uint16
	Modifiers uint8
	Name      string
	Payload   []byte
}

func (e *Event) Magic() Magic { return MagicEvent }

func (e *Event) Encode() []byte {
	w := wireio.NewWriter(be)
	defer w.Release()

	w.WriteBytes(MagicEvent[:])
	w.WriteBytes(e.SessionID[:])
	w.WriteUint32(e.Sequence)
	w.WriteUint16(e.ZoneID)
	w.WriteUint8(e.EventType)
	w.WriteUint64(e.Timestamp)
	w.WriteUint16(e.MouseX)
	w.WriteUint16(e.MouseY)
	w.WriteUint8(e.Modifiers)
	w.WriteString8(e.Name)
	w.WriteUint16(uint16(len(e.Payload)))
	w.WriteBytes(e.Payload)

	return append([]byte(nil), w.Bytes()...)
}

func DecodeEvent(data []byte) (*Event, error) {
	r := wireio.NewReader(data, be)
	if _, err := r.ReadBytes(6); err != nil {
		return nil, err
	}

	e := &Event{}
	sid, err := r.ReadBytes(8)
	if err != nil {
		return nil, err
	}
	copy(e.SessionID[:], sid)

	if e.Sequence, err = r.ReadUint32(); err != nil {
		return nil, err
	}
	if e.ZoneID, err = r.ReadUint16(); err != nil {
		return nil, err
	}
	if e.EventType, err = r.ReadUint8(); err != nil {
		return nil, err
	}
	if e.Timestamp, err = r.ReadUint64(); err != nil {
		return nil, err
	}
	if e.MouseX, err = r.ReadUint16(); err != nil {
		return nil, err
	}
	if e.MouseY, err = r.ReadUint16(); err != nil {
		return nil, err
	}
	if e.Modifiers, err = r.ReadUint8(); err != nil {
		return nil, err
	}
	if e.Name, err = r.ReadString8(); err != nil {
		return nil, err
	}
	payloadLen, err := r.ReadUint16()
	if err != nil {
		return nil, err
	}
	if e.Payload, err = r.ReadBytes(int(payloadLen)); err != nil {
		return nil, err
	}

	return e, nil
}

// InputResult is the client→server PIXINP message, the outcome of an
// InputZone submission (spec.md §4.5, §6.1).
type InputResult struct {
	SessionID        [8]byte
	Sequence         uint32
	ZoneID           uint16
	InputType        uint8
	ValidationStatus uint8
	Payload          []byte
}

func (i *InputResult) Magic() Magic { return MagicInput }

func (i *InputResult) Encode() []byte {
	w := wireio.NewWriter(be)
	defer w.Release()

	w.WriteBytes(MagicInput[:])
	w.WriteBytes(i.SessionID[:])
	w.WriteUint32(i.Sequence)
	w.WriteUint16(i.ZoneID)
	w.WriteUint8(i.InputType)
	w.WriteUint8(i.ValidationStatus)
	w.WriteUint16(uint16(len(i.Payload)))
	w.WriteBytes(i.Payload)

	return append([]byte(nil), w.Bytes()...)
}

func DecodeInputResult(data []byte) (*InputResult, error) {
	r := wireio.NewReader(data, be)
	if _, err := r.ReadBytes(6); err != nil {
		return nil, err
	}

	i := &InputResult{}
	sid, err := r.ReadBytes(8)
	if err != nil {
		return nil, err
	}
	copy(i.SessionID[:], sid)

	if i.Sequence, err = r.ReadUint32(); err != nil {
		return nil, err
	}
	if i.ZoneID, err = r.ReadUint16(); err != nil {
		return nil, err
	}
	if i.InputType, err = r.ReadUint8(); err != nil {
		return nil, err
	}
	if i.ValidationStatus, err = r.ReadUint8(); err != nil {
		return nil, err
	}
	payloadLen, err := r.ReadUint16()
	if err != nil {
		return nil, err
	}
	if i.Payload, err = r.ReadBytes(int(payloadLen)); err != nil {
		return nil, err
	}

	return i, nil
}

// ScrollUpdate is the client→server PIXSCR message (spec.md §4.5, §6.1),
// sent at most once per frame interval by a ScrollZone category.
type ScrollUpdate struct {
	SessionID [8]byte
	ZoneID    uint16
	ScrollX   uint16
	ScrollY   uint16
}

func (s *ScrollUpdate) Magic() Magic { return MagicScroll }

func (s *ScrollUpdate) Encode() []byte {
	w := wireio.NewWriter(be)
	defer w.Release()

	w.WriteBytes(MagicScroll[:])
	w.WriteBytes(s.SessionID[:])
	w.WriteUint16(s.ZoneID)
	w.WriteUint16(s.ScrollX)
	w.WriteUint16(s.ScrollY)

	return append([]byte(nil), w.Bytes()...)
}

func DecodeScrollUpdate(data []byte) (*ScrollUpdate, error) {
	r := wireio.NewReader(data, be)
	if _, err := r.ReadBytes(6); err != nil {
		return nil, err
	}

	s := &ScrollUpdate{}
	sid, err := r.ReadBytes(8)
	if err != nil {
		return nil, err
	}
	copy(s.SessionID[:], sid)

	if s.ZoneID, err = r.ReadUint16(); err != nil {
		return nil, err
	}
	if s.ScrollX, err = r.ReadUint16(); err != nil {
		return nil, err
	}
	if s.ScrollY, err = r.ReadUint16(); err != nil {
		return nil, err
	}

	return s, nil
}

// Drag event types (spec.md §4.5's Idle→Dragging→Dropped/Cancelled state
// machine).
const (
	DragStart  uint8 = 0
	DragMove   uint8 = 1
	DragDrop   uint8 = 2
	DragCancel uint8 = 3
)

// DragUpdate is the client→server PIXDRG message (spec.md §4.5, §6.1).
type DragUpdate struct {
	SessionID [8]byte
	EventType uint8
	Src       uint16
	Dst       uint16
	MouseX    uint16
	MouseY    uint16
	Data      []byte
}

func (d *DragUpdate) Magic() Magic { return MagicDrag }

func (d *DragUpdate) Encode() []byte {
	w := wireio.NewWriter(be)
	defer w.Release()

	w.WriteBytes(MagicDrag[:])
	w.WriteBytes(d.SessionID[:])
	w.WriteUint8(d.EventType)
	w.WriteUint16(d.Src)
	w.WriteUint16(d.Dst)
	w.WriteUint16(d.MouseX)
	w.WriteUint16(d.MouseY)
	w.WriteUint16(uint16(len(d.Data)))
	w.WriteBytes(d.Data)

	return append([]byte(nil), w.Bytes()...)
}

func DecodeDragUpdate(data []byte) (*DragUpdate, error) {
	r := wireio.NewReader(data, be)
	if _, err := r.ReadBytes(6); err != nil {
		return nil, err
	}

	d := &DragUpdate{}
	sid, err := r.ReadBytes(8)
	if err != nil {
		return nil, err
	}
	copy(d.SessionID[:], sid)

	if d.EventType, err = r.ReadUint8(); err != nil {
		return nil, err
	}
	if d.Src, err = r.ReadUint16(); err != nil {
		return nil, err
	}
	if d.Dst, err = r.ReadUint16(); err != nil {
		return nil, err
	}
	if d.MouseX, err = r.ReadUint16(); err != nil {
		return nil, err
	}
	if d.MouseY, err = r.ReadUint16(); err != nil {
		return nil, err
	}
	dataLen, err := r.ReadUint16()
	if err != nil {
		return nil, err
	}
	if d.Data, err = r.ReadBytes(int(dataLen)); err != nil {
		return nil, err
	}

	return d, nil
}
