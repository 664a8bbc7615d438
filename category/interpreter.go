package category

import (
	"strings"
	"time"

	"github.com/pixnet/pixnet/endian"
	"github.com/pixnet/pixnet/errs"
	"github.com/pixnet/pixnet/format"
	"github.com/pixnet/pixnet/internal/hash"
	"github.com/pixnet/pixnet/page"
)

// PointerAction identifies the kind of pointer interaction being resolved
// against the category map (spec.md §4.5).
type PointerAction uint8

const (
	ActionHover PointerAction = iota
	ActionClick
	ActionScroll
	ActionDragStart
	ActionDragMove
	ActionDragDrop
	ActionDragCancel
)

// DragState is the lifecycle of a drag gesture over a DragZone/DropZone
// pair (spec.md §4.5 item 6: "Idle -> Dragging -> Dropped | Cancelled").
type DragState uint8

const (
	DragIdle DragState = iota
	DragDragging
	DragDropped
	DragCancelled
)

// Outcome is what the interpreter decided to do in response to one
// Resolve call. Exactly one of the non-zero-value fields is meaningful,
// selected by Behavior.
type Outcome struct {
	ZoneID     uint16
	CategoryID uint16
	Behavior   format.BehaviorID

	// Navigate
	URL    string
	Target NavigateTarget

	// EmitEvent — Suppressed is true when the event was debounced away.
	EventName  string
	EventType  uint8
	Suppressed bool

	// InputZone
	ValidationFlags ValidationFlag

	// DragZone / DropZone
	Drag DragState
}

// Interpreter resolves pointer events against a Page's category map and
// tracks the small amount of cross-event state the dispatch rules need:
// EmitEvent debounce windows and DragZone/DropZone gesture state (spec.md
// §4.5, §9). An Interpreter is owned by a single session's driving
// goroutine, like the Session itself (spec.md §5).
type Interpreter struct {
	clock func() time.Time

	// debounce maps hash.Zone(zoneID, eventName) to the time the event was
	// last emitted, so repeated EmitEvent triggers inside DebounceMs are
	// suppressed (spec.md §4.5 item 2).
	debounce map[uint64]time.Time

	// drag maps zone ID to its current gesture state.
	drag map[uint16]DragState
}

// NewInterpreter constructs an Interpreter. clock defaults to time.Now if
// nil; tests may supply a deterministic source.
func NewInterpreter(clock func() time.Time) *Interpreter {
	if clock == nil {
		clock = time.Now
	}

	return &Interpreter{
		clock:    clock,
		debounce: make(map[uint64]time.Time),
		drag:     make(map[uint16]DragState),
	}
}

// Overlapping returns every CategoryDef whose region covers (x, y), ordered
// however the underlying map iterates (spec.md §4.5: "the interpreter
// exposes an enumeration of all categories overlapping a region"). Page's
// CategoryMap is flat (one category ID per pixel, see DESIGN.md), so this
// is at most a single entry today; Resolve still always routes the pixel
// it looked up through this enumeration and ResolvePriority rather than
// reading p.Categories directly, so a future layered Page that can return
// more than one candidate needs no change to the tie-break path.
func (in *Interpreter) Overlapping(p *page.Page, x, y int) []page.CategoryDef {
	cid := p.CategoryAt(x, y)
	if cid == 0 {
		return nil
	}

	def, ok := p.Categories[cid]
	if !ok {
		return nil
	}

	return []page.CategoryDef{def}
}

// Resolve looks up the category at (x, y) on p and dispatches it according
// to action, returning the outcome the caller should act on (send an
// event frame, start a navigation, etc). A zero category ID or an action
// the category's behavior doesn't respond to both yield ok == false.
func (in *Interpreter) Resolve(p *page.Page, x, y int, action PointerAction) (Outcome, bool, error) {
	rawCid := p.CategoryAt(x, y)
	if rawCid == 0 {
		return Outcome{}, false, nil
	}

	candidates := in.Overlapping(p, x, y)
	def, ok := ResolvePriority(candidates)
	if !ok {
		return Outcome{}, false, errs.ErrCategoryNotFound
	}
	cid := def.ID

	data, err := DecodeBehaviorData(def.BehaviorID, def.BehaviorData, endian.GetLittleEndianEngine())
	if err != nil {
		return Outcome{}, false, err
	}

	base := Outcome{CategoryID: cid, Behavior: def.BehaviorID}

	switch v := data.(type) {
	case NavigateData:
		if action != ActionClick {
			return Outcome{}, false, nil
		}
		if err := ValidateNavigateURL(v.URL); err != nil {
			return Outcome{}, false, err
		}
		base.URL, base.Target = v.URL, v.Target

		return base, true, nil

	case EmitEventData:
		if action != ActionClick && action != ActionHover {
			return Outcome{}, false, nil
		}
		base.EventName, base.EventType = v.EventName, v.EventType
		base.Suppressed = in.debounced(cid, v.EventName, v.DebounceMs)

		return base, true, nil

	case InputZoneData:
		if action != ActionClick {
			return Outcome{}, false, nil
		}
		base.ZoneID, base.ValidationFlags = v.ZoneID, v.ValidationFlags

		return base, true, nil

	case HoverEffectData:
		if action != ActionHover {
			return Outcome{}, false, nil
		}

		return base, true, nil

	case ClickEffectData:
		if action != ActionClick {
			return Outcome{}, false, nil
		}

		return base, true, nil

	case DragZoneData:
		base.ZoneID = v.ZoneID
		base.Drag = in.advanceDrag(v.ZoneID, action)

		return base, true, nil

	case DropZoneData:
		base.ZoneID = v.ZoneID
		base.Drag = in.advanceDrag(v.ZoneID, action)

		return base, true, nil

	case ScrollZoneData:
		if action != ActionScroll {
			return Outcome{}, false, nil
		}
		base.ZoneID = v.ZoneID

		return base, true, nil

	case MediaZoneData:
		// No protocol event in v1 (spec.md §4.5 item 9, §1 Non-goals).
		return Outcome{}, false, nil

	default:
		return Outcome{}, false, nil
	}
}

// debounced reports whether an EmitEvent trigger for (zoneID, name) falls
// inside its debounce window, and records the trigger time either way.
func (in *Interpreter) debounced(zoneID uint16, name string, debounceMs uint16) bool {
	key := hash.Zone(zoneID, name)
	now := in.clock()

	if debounceMs > 0 {
		if last, ok := in.debounce[key]; ok {
			if now.Sub(last) < time.Duration(debounceMs)*time.Millisecond {
				return true
			}
		}
	}
	in.debounce[key] = now

	return false
}

// advanceDrag drives the DragZone/DropZone gesture state machine (spec.md
// §4.5 item 6). DragStart and DragMove enter/stay in Dragging; DragDrop
// and DragCancel terminate the gesture.
func (in *Interpreter) advanceDrag(zoneID uint16, action PointerAction) DragState {
	switch action {
	case ActionDragStart, ActionDragMove:
		in.drag[zoneID] = DragDragging
	case ActionDragDrop:
		in.drag[zoneID] = DragDropped
	case ActionDragCancel:
		in.drag[zoneID] = DragCancelled
	}

	return in.drag[zoneID]
}

// DragStateOf reports the current gesture state of zoneID, DragIdle if no
// gesture has touched it yet.
func (in *Interpreter) DragStateOf(zoneID uint16) DragState {
	return in.drag[zoneID]
}

// ResolvePriority picks the winning CategoryDef among candidates that
// cover the same region: higher priority wins, and on a tie the smaller
// category ID wins (spec.md §4.5: "Priority tie-break... the category
// with higher priority wins; on a tie, the lower category ID wins").
func ResolvePriority(candidates []page.CategoryDef) (page.CategoryDef, bool) {
	if len(candidates) == 0 {
		return page.CategoryDef{}, false
	}

	winner := candidates[0]
	for _, c := range candidates[1:] {
		if c.Priority > winner.Priority || (c.Priority == winner.Priority && c.ID < winner.ID) {
			winner = c
		}
	}

	return winner, true
}

// pixnetScheme is the only URL scheme a Navigate behavior may use (spec.md
// §6.3).
const pixnetScheme = "pixnet://"

// ValidateNavigateURL checks that raw starts with the pixnet:// scheme
// prefix and has at least one character after it. The host is not parsed
// or checked, so "pixnet:///path" is accepted.
func ValidateNavigateURL(raw string) error {
	if !strings.HasPrefix(raw, pixnetScheme) {
		return errs.ErrInvalidURL
	}
	if len(raw) == len(pixnetScheme) {
		return errs.ErrInvalidURL
	}

	return nil
}
