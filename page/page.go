// Package page defines Page, the in-memory model that both the PXNT
// container codec (C2) and the wire rendering frame codec (C3) materialize
// (spec.md §3). A Page is exclusively owned by whichever session currently
// displays it; once published, its buffers are never mutated, which lets
// the category interpreter (C5) run without locking (spec.md §5, §9).
package page

import (
	"fmt"

	"github.com/pixnet/pixnet/format"
)

// Page is the renderable unit: a pixel raster, a parallel category map,
// the category definitions the map refers to, and optional metadata.
type Page struct {
	Width       uint16
	Height      uint16
	Format      format.PixelFormat
	Pixels      []byte
	CategoryMap []uint16
	Categories  map[uint16]CategoryDef

	Metadata Metadata

	// Animation, Audio and ExtendedMetadata hold the optional PXNT blocks
	// verbatim. This implementation parses but does not interpret them
	// (spec.md §1 Non-goals: animation playback timing, script execution).
	Animation        []byte
	Audio            []byte
	ExtendedMetadata []byte
}

// Metadata carries the optional descriptive fields of a Page (spec.md §3).
type Metadata struct {
	Title         string
	Author        string
	Description   string
	CanonicalURL  string
	Keywords      []string
	Custom        map[string]string
}

// CategoryDef assigns a behavior to a category ID (spec.md §3, §4.5).
// BehaviorData is kept opaque here; the category package decodes it into
// a typed variant on demand, keeping Page free of a dependency on the
// interpreter.
type CategoryDef struct {
	ID           uint16
	Name         string
	BehaviorID   format.BehaviorID
	Priority     uint8
	BehaviorData []byte

	// ExtendedProperties is an optional typed key-value list (spec.md §4.4).
	ExtendedProperties []ExtendedProperty
}

// ExtendedProperty is one entry of a CategoryDef's optional typed
// key-value extension list.
type ExtendedProperty struct {
	Key   string
	Value string
}

// Validate checks the global invariants of spec.md §3: dimensions in
// range, pixel buffer size matches width·height·bpp, category map size
// matches width·height, and every non-zero category map entry resolves to
// a known CategoryDef.
func (p *Page) Validate() error {
	if p.Width == 0 || p.Height == 0 {
		return fmt.Errorf("page: width and height must be in [1, 65535], got %dx%d", p.Width, p.Height)
	}
	if !p.Format.Valid() {
		return fmt.Errorf("page: invalid pixel format %s", p.Format)
	}

	bpp := p.Format.BytesPerPixel()
	wantPixels := int(p.Width) * int(p.Height) * bpp
	if len(p.Pixels) != wantPixels {
		return fmt.Errorf("page: pixel buffer is %d bytes, want %d (%dx%d at %d bpp)",
			len(p.Pixels), wantPixels, p.Width, p.Height, bpp)
	}

	wantMap := int(p.Width) * int(p.Height)
	if len(p.CategoryMap) != wantMap {
		return fmt.Errorf("page: category map has %d entries, want %d", len(p.CategoryMap), wantMap)
	}

	for _, cid := range p.CategoryMap {
		if cid == 0 {
			continue
		}
		if _, ok := p.Categories[cid]; !ok {
			return fmt.Errorf("page: category map references unknown category id %d", cid)
		}
	}

	for _, def := range p.Categories {
		if !def.BehaviorID.Valid() {
			return fmt.Errorf("page: category %d has invalid behavior id %d", def.ID, def.BehaviorID)
		}
	}

	return nil
}

// CategoryAt returns the category ID at pixel (x, y), or 0 (no behavior) if
// out of bounds or unassigned.
func (p *Page) CategoryAt(x, y int) uint16 {
	if x < 0 || y < 0 || x >= int(p.Width) || y >= int(p.Height) {
		return 0
	}

	return p.CategoryMap[y*int(p.Width)+x]
}
