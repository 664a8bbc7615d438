package frame

// DecodeAny inspects the first 6 bytes of data and dispatches to the
// matching Decode* function. Unknown magic returns *ErrUnknownMagic, which
// the session state machine treats as a PROTOCOL_ERROR (spec.md §4.3).
func DecodeAny(data []byte) (Message, error) {
	if len(data) < 6 {
		return nil, &ErrUnknownMagic{}
	}

	var m Magic
	copy(m[:], data[:6])

	switch m {
	case MagicHandshake:
		return DecodeHandshake(data)
	case MagicAck:
		return DecodeAck(data)
	case MagicRenderFrame:
		return DecodeRenderFrame(data)
	case MagicEvent:
		return DecodeEvent(data)
	case MagicInput:
		return DecodeInputResult(data)
	case MagicScroll:
		return DecodeScrollUpdate(data)
	case MagicDrag:
		return DecodeDragUpdate(data)
	case MagicPing:
		return DecodePing(data)
	case MagicPong:
		return DecodePong(data)
	case MagicError:
		return DecodeErrorMsg(data)
	case MagicBye:
		return DecodeBye(data)
	default:
		return nil, &ErrUnknownMagic{Got: m}
	}
}
