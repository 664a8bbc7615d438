package category

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pixnet/pixnet/endian"
	"github.com/pixnet/pixnet/errs"
	"github.com/pixnet/pixnet/format"
	"github.com/pixnet/pixnet/page"
)

func navigatePage(t *testing.T, url string) *page.Page {
	t.Helper()
	data := EncodeBehaviorData(NavigateData{URL: url, Target: TargetNew}, endian.GetLittleEndianEngine())

	return &page.Page{
		Width: 1, Height: 1,
		Format:      format.RGBA8,
		Pixels:      []byte{1, 2, 3, 4},
		CategoryMap: []uint16{1},
		Categories: map[uint16]page.CategoryDef{
			1: {ID: 1, Name: "link", BehaviorID: format.BehaviorNavigate, Priority: 1, BehaviorData: data},
		},
	}
}

func TestInterpreter_Resolve_Navigate(t *testing.T) {
	in := NewInterpreter(nil)
	p := navigatePage(t, "pixnet://home/index")

	out, ok, err := in.Resolve(p, 0, 0, ActionClick)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "pixnet://home/index", out.URL)
	assert.Equal(t, TargetNew, out.Target)
}

func TestInterpreter_Resolve_Navigate_WrongActionIgnored(t *testing.T) {
	in := NewInterpreter(nil)
	p := navigatePage(t, "pixnet://home/index")

	_, ok, err := in.Resolve(p, 0, 0, ActionHover)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestInterpreter_Resolve_Navigate_InvalidURL(t *testing.T) {
	in := NewInterpreter(nil)
	p := navigatePage(t, "http://not-pixnet")

	_, _, err := in.Resolve(p, 0, 0, ActionClick)
	assert.ErrorIs(t, err, errs.ErrInvalidURL)
}

func TestInterpreter_Resolve_NoCategoryAtPixel(t *testing.T) {
	in := NewInterpreter(nil)
	p := navigatePage(t, "pixnet://home/index")
	p.CategoryMap[0] = 0

	_, ok, err := in.Resolve(p, 0, 0, ActionClick)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestInterpreter_Resolve_EmitEvent_Debounce(t *testing.T) {
	now := time.Unix(0, 0)
	in := NewInterpreter(func() time.Time { return now })

	data := EncodeBehaviorData(EmitEventData{EventName: "ping", EventType: 1, DebounceMs: 1000}, endian.GetLittleEndianEngine())
	p := &page.Page{
		Width: 1, Height: 1, Format: format.RGBA8,
		Pixels:      []byte{1, 2, 3, 4},
		CategoryMap: []uint16{1},
		Categories: map[uint16]page.CategoryDef{
			1: {ID: 1, Name: "btn", BehaviorID: format.BehaviorEmitEvent, BehaviorData: data},
		},
	}

	out, ok, err := in.Resolve(p, 0, 0, ActionClick)
	require.NoError(t, err)
	require.True(t, ok)
	assert.False(t, out.Suppressed)

	out, ok, err = in.Resolve(p, 0, 0, ActionClick)
	require.NoError(t, err)
	require.True(t, ok)
	assert.True(t, out.Suppressed, "second trigger inside debounce window should be suppressed")

	now = now.Add(2 * time.Second)
	out, ok, err = in.Resolve(p, 0, 0, ActionClick)
	require.NoError(t, err)
	require.True(t, ok)
	assert.False(t, out.Suppressed, "trigger after debounce window should fire")
}

func TestInterpreter_DragZone_Lifecycle(t *testing.T) {
	in := NewInterpreter(nil)
	data := EncodeBehaviorData(DragZoneData{ZoneID: 7}, endian.GetLittleEndianEngine())
	p := &page.Page{
		Width: 1, Height: 1, Format: format.RGBA8,
		Pixels:      []byte{1, 2, 3, 4},
		CategoryMap: []uint16{1},
		Categories: map[uint16]page.CategoryDef{
			1: {ID: 1, Name: "drag", BehaviorID: format.BehaviorDragZone, BehaviorData: data},
		},
	}

	assert.Equal(t, DragIdle, in.DragStateOf(7))

	out, ok, err := in.Resolve(p, 0, 0, ActionDragStart)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, DragDragging, out.Drag)

	out, ok, err = in.Resolve(p, 0, 0, ActionDragDrop)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, DragDropped, out.Drag)
	assert.Equal(t, DragDropped, in.DragStateOf(7))
}

func TestResolvePriority_HigherWins(t *testing.T) {
	candidates := []page.CategoryDef{
		{ID: 2, Priority: 5},
		{ID: 1, Priority: 10},
	}
	winner, ok := ResolvePriority(candidates)
	require.True(t, ok)
	assert.Equal(t, uint16(1), winner.ID)
}

func TestResolvePriority_TieBreaksOnLowerID(t *testing.T) {
	candidates := []page.CategoryDef{
		{ID: 5, Priority: 10},
		{ID: 2, Priority: 10},
		{ID: 8, Priority: 10},
	}
	winner, ok := ResolvePriority(candidates)
	require.True(t, ok)
	assert.Equal(t, uint16(2), winner.ID)
}

func TestResolvePriority_Empty(t *testing.T) {
	_, ok := ResolvePriority(nil)
	assert.False(t, ok)
}

func TestValidateNavigateURL(t *testing.T) {
	assert.NoError(t, ValidateNavigateURL("pixnet://host/path"))
	assert.ErrorIs(t, ValidateNavigateURL("pixnet://"), errs.ErrInvalidURL)
	assert.ErrorIs(t, ValidateNavigateURL("https://example.com"), errs.ErrInvalidURL)
}

func TestDecodeEncodeBehaviorData_RoundTrip(t *testing.T) {
	engine := endian.GetBigEndianEngine()
	cases := []BehaviorData{
		NavigateData{URL: "pixnet://a/b", Target: TargetSame},
		EmitEventData{EventName: "click", EventType: 2, DebounceMs: 250},
		InputZoneData{ZoneID: 9, ValidationFlags: ValidationRequired | ValidationEmail},
		HoverEffectData{},
		ClickEffectData{},
		DragZoneData{ZoneID: 3},
		DropZoneData{ZoneID: 4},
		ScrollZoneData{ZoneID: 6},
		MediaZoneData{MediaID: "track-1"},
	}

	ids := []format.BehaviorID{
		format.BehaviorNavigate, format.BehaviorEmitEvent, format.BehaviorInputZone,
		format.BehaviorHoverEffect, format.BehaviorClickEffect, format.BehaviorDragZone,
		format.BehaviorDropZone, format.BehaviorScrollZone, format.BehaviorMediaZone,
	}

	for i, c := range cases {
		raw := EncodeBehaviorData(c, engine)
		got, err := DecodeBehaviorData(ids[i], raw, engine)
		require.NoError(t, err)
		assert.Equal(t, c, got)
	}
}

func TestDecodeBehaviorData_UnknownID(t *testing.T) {
	_, err := DecodeBehaviorData(format.BehaviorID(99), nil, endian.GetLittleEndianEngine())
	assert.ErrorIs(t, err, errs.ErrUnknownBehavior)
}
