package server

import (
	"bufio"
	"fmt"
	"io"

	"github.com/pixnet/pixnet/frame"
)

// readMessage reads exactly one wire message from br and decodes it. Every
// PIXNET message type is self-describing: a fixed header (sometimes
// containing a length field) tells the reader exactly how many more bytes
// belong to the message, so framing never needs an out-of-band length
// prefix (spec.md §6.1's field lists, read in order).
//
// The server only ever reads client-originated message types; PIXACK and
// the PIXNET rendering frame are server→client only and are rejected here.
func readMessage(br *bufio.Reader, maxFrameSize int) (frame.Message, error) {
	head := make([]byte, 6)
	if _, err := io.ReadFull(br, head); err != nil {
		return nil, err
	}

	var magic frame.Magic
	copy(magic[:], head)

	var rest []byte
	var err error

	switch magic {
	case frame.MagicHandshake:
		rest, err = readHandshakeTail(br)
	case frame.MagicEvent:
		rest, err = readEventTail(br)
	case frame.MagicInput:
		rest, err = readInputResultTail(br)
	case frame.MagicScroll:
		rest, err = readFixedTail(br, 14)
	case frame.MagicDrag:
		rest, err = readDragTail(br)
	case frame.MagicPing, frame.MagicPong:
		rest, err = readFixedTail(br, 16)
	case frame.MagicError:
		rest, err = readErrorTail(br)
	case frame.MagicBye:
		rest, err = readByeTail(br)
	default:
		return nil, &frame.ErrUnknownMagic{Got: magic}
	}
	if err != nil {
		return nil, err
	}

	if 6+len(rest) > maxFrameSize {
		return nil, fmt.Errorf("server: message of %d bytes exceeds max frame size %d", 6+len(rest), maxFrameSize)
	}

	buf := make([]byte, 0, 6+len(rest))
	buf = append(buf, head...)
	buf = append(buf, rest...)

	return frame.DecodeAny(buf)
}

func readFixedTail(br *bufio.Reader, n int) ([]byte, error) {
	buf := make([]byte, n)
	_, err := io.ReadFull(br, buf)

	return buf, err
}

// readHandshakeTail reads version(1)+capabilities(2)+ua_len(1)+ua.
func readHandshakeTail(br *bufio.Reader) ([]byte, error) {
	fixed, err := readFixedTail(br, 4)
	if err != nil {
		return nil, err
	}
	uaLen := int(fixed[3])
	ua, err := readFixedTail(br, uaLen)
	if err != nil {
		return nil, err
	}

	return append(fixed, ua...), nil
}

// readEventTail reads session_id(8)+sequence(4)+zone_id(2)+event_type(1)+
// timestamp(8)+mouse_x(2)+mouse_y(2)+modifiers(1)+name_len(1)+name+
// payload_len(2)+payload.
func readEventTail(br *bufio.Reader) ([]byte, error) {
	fixed, err := readFixedTail(br, 29)
	if err != nil {
		return nil, err
	}
	nameLen := int(fixed[28])
	name, err := readFixedTail(br, nameLen)
	if err != nil {
		return nil, err
	}
	payloadLenBytes, err := readFixedTail(br, 2)
	if err != nil {
		return nil, err
	}
	payloadLen := int(payloadLenBytes[0])<<8 | int(payloadLenBytes[1])
	payload, err := readFixedTail(br, payloadLen)
	if err != nil {
		return nil, err
	}

	out := append(fixed, name...)
	out = append(out, payloadLenBytes...)
	out = append(out, payload...)

	return out, nil
}

// readInputResultTail reads session_id(8)+sequence(4)+zone_id(2)+
// input_type(1)+validation_status(1)+payload_len(2)+payload.
func readInputResultTail(br *bufio.Reader) ([]byte, error) {
	fixed, err := readFixedTail(br, 18)
	if err != nil {
		return nil, err
	}
	payloadLen := int(fixed[16])<<8 | int(fixed[17])
	payload, err := readFixedTail(br, payloadLen)
	if err != nil {
		return nil, err
	}

	return append(fixed, payload...), nil
}

// readDragTail reads session_id(8)+event_type(1)+src(2)+dst(2)+mouse_x(2)+
// mouse_y(2)+data_len(2)+data.
func readDragTail(br *bufio.Reader) ([]byte, error) {
	fixed, err := readFixedTail(br, 19)
	if err != nil {
		return nil, err
	}
	dataLen := int(fixed[17])<<8 | int(fixed[18])
	data, err := readFixedTail(br, dataLen)
	if err != nil {
		return nil, err
	}

	return append(fixed, data...), nil
}

// readErrorTail reads session_id(8)+code(2)+msg_len(1)+msg.
func readErrorTail(br *bufio.Reader) ([]byte, error) {
	fixed, err := readFixedTail(br, 11)
	if err != nil {
		return nil, err
	}
	msgLen := int(fixed[10])
	msg, err := readFixedTail(br, msgLen)
	if err != nil {
		return nil, err
	}

	return append(fixed, msg...), nil
}

// readByeTail reads session_id(8)+reason_code(1)+reason_len(1)+reason.
func readByeTail(br *bufio.Reader) ([]byte, error) {
	fixed, err := readFixedTail(br, 10)
	if err != nil {
		return nil, err
	}
	reasonLen := int(fixed[9])
	reason, err := readFixedTail(br, reasonLen)
	if err != nil {
		return nil, err
	}

	return append(fixed, reason...), nil
}
