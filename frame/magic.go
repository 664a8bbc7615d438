// Package frame implements the wire frame codec (C3): encode/decode for
// every typed message that crosses a PIXNET session (spec.md §4.3, §6.1).
// All integers are big-endian, per the wire's byte order (as opposed to
// PXNT's little-endian, see the pxnt package).
package frame

import "fmt"

// Magic identifies a message's 6-byte ASCII type tag (spec.md §4.3).
type Magic [6]byte

func magic(s string) Magic {
	var m Magic
	copy(m[:], s)

	return m
}

var (
	MagicHandshake   = magic("PIXHND")
	MagicAck         = magic("PIXACK")
	MagicRenderFrame = magic("PIXNET")
	MagicEvent       = magic("PIXEVT")
	MagicInput       = magic("PIXINP")
	MagicScroll      = magic("PIXSCR")
	MagicDrag        = magic("PIXDRG")
	MagicPing        = magic("PIXPNG")
	MagicPong        = magic("PIXPOG")
	MagicError       = magic("PIXERR")
	MagicBye         = magic("PIXBYE")
)

func (m Magic) String() string {
	return string(m[:])
}

// Message is implemented by every wire frame type.
type Message interface {
	Magic() Magic
	Encode() []byte
}

// ErrUnknownMagic is returned by DecodeAny when the first 6 bytes do not
// match any known message type (spec.md §4.3: "Unknown magic ⇒
// PROTOCOL_ERROR and the session is closed").
type ErrUnknownMagic struct {
	Got Magic
}

func (e *ErrUnknownMagic) Error() string {
	return fmt.Sprintf("frame: unknown magic %q", e.Got)
}
