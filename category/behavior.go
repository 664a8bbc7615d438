// Package category implements the category-map interpreter (C5): pixel to
// category lookup, behavior dispatch, priority tie-break, and the
// behavior-specific outbound messages of spec.md §4.5.
package category

import (
	"fmt"

	"github.com/pixnet/pixnet/endian"
	"github.com/pixnet/pixnet/errs"
	"github.com/pixnet/pixnet/format"
	"github.com/pixnet/pixnet/wireio"
)

// BehaviorData is implemented by every decoded behavior_data variant. Each
// variant's Go type is a tagged alternative of the behavior_id sum type
// described in spec.md §9's design note: decoding switches on behavior_id
// up front so an unknown ID fails closed instead of misinterpreting bytes
// under a guessed layout.
type BehaviorData interface {
	behaviorData()
}

// NavigateTarget is the `target` field of NavigateData.
type NavigateTarget uint8

const (
	TargetSame NavigateTarget = 0
	TargetNew  NavigateTarget = 1
)

// NavigateData is behavior_id 1 (spec.md §4.5 item 1).
type NavigateData struct {
	URL    string
	Target NavigateTarget
}

func (NavigateData) behaviorData() {}

// EmitEventData is behavior_id 2 (spec.md §4.5 item 2).
type EmitEventData struct {
	EventName   string
	EventType   uint8
	DebounceMs  uint16
}

func (EmitEventData) behaviorData() {}

// ValidationFlags bits of InputZoneData (spec.md §4.5 item 3).
const (
	ValidationRequired ValidationFlag = 1 << 0
	ValidationNumeric  ValidationFlag = 1 << 1
	ValidationEmail    ValidationFlag = 1 << 2
	ValidationCustom   ValidationFlag = 1 << 3
)

// ValidationFlag is a bitmask of InputZoneData's validation rules.
type ValidationFlag uint8

// InputZoneData is behavior_id 3 (spec.md §4.5 item 3).
type InputZoneData struct {
	ZoneID           uint16
	ValidationFlags  ValidationFlag
}

func (InputZoneData) behaviorData() {}

// HoverEffectData is behavior_id 4: purely client-side, carries no
// outbound-relevant fields (spec.md §4.5 item 4).
type HoverEffectData struct{}

func (HoverEffectData) behaviorData() {}

// ClickEffectData is behavior_id 5: purely client-side (spec.md §4.5 item 4).
type ClickEffectData struct{}

func (ClickEffectData) behaviorData() {}

// DragZoneData is behavior_id 6 (spec.md §4.5 item 6).
type DragZoneData struct {
	ZoneID uint16
}

func (DragZoneData) behaviorData() {}

// DropZoneData is behavior_id 7 (spec.md §4.5 item 6).
type DropZoneData struct {
	ZoneID uint16
}

func (DropZoneData) behaviorData() {}

// ScrollZoneData is behavior_id 8 (spec.md §4.5 item 8).
type ScrollZoneData struct {
	ZoneID uint16
}

func (ScrollZoneData) behaviorData() {}

// MediaZoneData is behavior_id 9: forwarded to the audio collaborator, no
// protocol event in v1 (spec.md §4.5 item 9, §1 Non-goals).
type MediaZoneData struct {
	MediaID string
}

func (MediaZoneData) behaviorData() {}

// DecodeBehaviorData parses raw behavior_data according to id, using
// engine for any multi-byte fields. Callers pass endian.GetBigEndianEngine
// for category defs decoded from a wire rendering frame and
// endian.GetLittleEndianEngine for ones decoded from a PXNT file.
func DecodeBehaviorData(id format.BehaviorID, raw []byte, engine endian.EndianEngine) (BehaviorData, error) {
	r := wireio.NewReader(raw, engine)

	switch id {
	case format.BehaviorNavigate:
		url, err := r.ReadString16()
		if err != nil {
			return nil, err
		}
		target, err := r.ReadUint8()
		if err != nil {
			return nil, err
		}

		return NavigateData{URL: url, Target: NavigateTarget(target)}, nil

	case format.BehaviorEmitEvent:
		name, err := r.ReadString8()
		if err != nil {
			return nil, err
		}
		eventType, err := r.ReadUint8()
		if err != nil {
			return nil, err
		}
		debounce, err := r.ReadUint16()
		if err != nil {
			return nil, err
		}

		return EmitEventData{EventName: name, EventType: eventType, DebounceMs: debounce}, nil

	case format.BehaviorInputZone:
		zoneID, err := r.ReadUint16()
		if err != nil {
			return nil, err
		}
		flags, err := r.ReadUint8()
		if err != nil {
			return nil, err
		}

		return InputZoneData{ZoneID: zoneID, ValidationFlags: ValidationFlag(flags)}, nil

	case format.BehaviorHoverEffect:
		return HoverEffectData{}, nil

	case format.BehaviorClickEffect:
		return ClickEffectData{}, nil

	case format.BehaviorDragZone:
		zoneID, err := r.ReadUint16()
		if err != nil {
			return nil, err
		}

		return DragZoneData{ZoneID: zoneID}, nil

	case format.BehaviorDropZone:
		zoneID, err := r.ReadUint16()
		if err != nil {
			return nil, err
		}

		return DropZoneData{ZoneID: zoneID}, nil

	case format.BehaviorScrollZone:
		zoneID, err := r.ReadUint16()
		if err != nil {
			return nil, err
		}

		return ScrollZoneData{ZoneID: zoneID}, nil

	case format.BehaviorMediaZone:
		mediaID, err := r.ReadString8()
		if err != nil {
			return nil, err
		}

		return MediaZoneData{MediaID: mediaID}, nil

	default:
		return nil, fmt.Errorf("%w: %d", errs.ErrUnknownBehavior, id)
	}
}

// EncodeBehaviorData is the inverse of DecodeBehaviorData, used by writers
// that construct a Page programmatically rather than parsing one.
func EncodeBehaviorData(data BehaviorData, engine endian.EndianEngine) []byte {
	w := wireio.NewWriter(engine)
	defer w.Release()

	switch v := data.(type) {
	case NavigateData:
		w.WriteString16(v.URL)
		w.WriteUint8(uint8(v.Target))
	case EmitEventData:
		w.WriteString8(v.EventName)
		w.WriteUint8(v.EventType)
		w.WriteUint16(v.DebounceMs)
	case InputZoneData:
		w.WriteUint16(v.ZoneID)
		w.WriteUint8(uint8(v.ValidationFlags))
	case HoverEffectData, ClickEffectData:
		// no fields
	case DragZoneData:
		w.WriteUint16(v.ZoneID)
	case DropZoneData:
		w.WriteUint16(v.ZoneID)
	case ScrollZoneData:
		w.WriteUint16(v.ZoneID)
	case MediaZoneData:
		w.WriteString8(v.MediaID)
	}

	return append([]byte(nil), w.Bytes()...)
}
