// Package format defines the small closed enumerations shared by the PXNT
// container codec and the wire frame codec: pixel formats, the PXNT
// section compression algorithm, and category behavior identifiers.
package format

import "fmt"

// PixelFormat identifies the layout of a Page's pixel buffer (spec.md §3, §6.2).
type PixelFormat uint8

const (
	RGBA8  PixelFormat = 0
	RGB8   PixelFormat = 1
	RGBA16 PixelFormat = 2
)

// BytesPerPixel returns the number of bytes one pixel occupies under this format.
func (f PixelFormat) BytesPerPixel() int {
	switch f {
	case RGBA8:
		return 4
	case RGB8:
		return 3
	case RGBA16:
		return 8
	default:
		return 0
	}
}

func (f PixelFormat) Valid() bool {
	return f == RGBA8 || f == RGB8 || f == RGBA16
}

func (f PixelFormat) String() string {
	switch f {
	case RGBA8:
		return "RGBA8"
	case RGB8:
		return "RGB8"
	case RGBA16:
		return "RGBA16"
	default:
		return fmt.Sprintf("PixelFormat(%d)", uint8(f))
	}
}

// CompressionType identifies the compression algorithm applied to a PXNT
// section (spec.md §6.2). The wire frame codec (C3) only ever uses None or
// Zlib — LZ4 is PXNT-only (spec.md §9 Open Questions).
type CompressionType uint8

const (
	CompressionNone CompressionType = 0
	CompressionZlib CompressionType = 1
	CompressionLZ4  CompressionType = 2
)

func (c CompressionType) Valid() bool {
	return c == CompressionNone || c == CompressionZlib || c == CompressionLZ4
}

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionZlib:
		return "Zlib"
	case CompressionLZ4:
		return "LZ4"
	default:
		return fmt.Sprintf("CompressionType(%d)", uint8(c))
	}
}

// BehaviorID identifies the behavior a CategoryDef dispatches to (spec.md §4.5).
type BehaviorID uint8

const (
	BehaviorNavigate    BehaviorID = 1
	BehaviorEmitEvent   BehaviorID = 2
	BehaviorInputZone   BehaviorID = 3
	BehaviorHoverEffect BehaviorID = 4
	BehaviorClickEffect BehaviorID = 5
	BehaviorDragZone    BehaviorID = 6
	BehaviorDropZone    BehaviorID = 7
	BehaviorScrollZone  BehaviorID = 8
	BehaviorMediaZone   BehaviorID = 9
)

func (b BehaviorID) Valid() bool {
	return b >= BehaviorNavigate && b <= BehaviorMediaZone
}

func (b BehaviorID) String() string {
	switch b {
	case BehaviorNavigate:
		return "Navigate"
	case BehaviorEmitEvent:
		return "EmitEvent"
	case BehaviorInputZone:
		return "InputZone"
	case BehaviorHoverEffect:
		return "HoverEffect"
	case BehaviorClickEffect:
		return "ClickEffect"
	case BehaviorDragZone:
		return "DragZone"
	case BehaviorDropZone:
		return "DropZone"
	case BehaviorScrollZone:
		return "ScrollZone"
	case BehaviorMediaZone:
		return "MediaZone"
	default:
		return fmt.Sprintf("BehaviorID(%d)", uint8(b))
	}
}
