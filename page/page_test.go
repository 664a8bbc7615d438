package page

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pixnet/pixnet/format"
)

func whitePixel() *Page {
	return &Page{
		Width:       1,
		Height:      1,
		Format:      format.RGBA8,
		Pixels:      []byte{0xFF, 0xFF, 0xFF, 0xFF},
		CategoryMap: []uint16{0},
		Categories:  map[uint16]CategoryDef{},
	}
}

func TestPage_Validate_Minimal(t *testing.T) {
	require.NoError(t, whitePixel().Validate())
}

func TestPage_Validate_WrongPixelBufferSize(t *testing.T) {
	p := whitePixel()
	p.Pixels = []byte{0xFF, 0xFF}

	assert.Error(t, p.Validate())
}

func TestPage_Validate_WrongCategoryMapSize(t *testing.T) {
	p := whitePixel()
	p.CategoryMap = []uint16{0, 0}

	assert.Error(t, p.Validate())
}

func TestPage_Validate_UnknownCategoryReference(t *testing.T) {
	p := whitePixel()
	p.CategoryMap = []uint16{7}

	assert.Error(t, p.Validate())
}

func TestPage_Validate_InvalidBehaviorID(t *testing.T) {
	p := whitePixel()
	p.CategoryMap = []uint16{1}
	p.Categories[1] = CategoryDef{ID: 1, BehaviorID: format.BehaviorID(99)}

	assert.Error(t, p.Validate())
}

func TestPage_CategoryAt_OutOfBounds(t *testing.T) {
	p := whitePixel()
	assert.Equal(t, uint16(0), p.CategoryAt(-1, 0))
	assert.Equal(t, uint16(0), p.CategoryAt(5, 5))
}

func TestPage_CategoryAt(t *testing.T) {
	p := &Page{
		Width:       2,
		Height:      1,
		Format:      format.RGBA8,
		Pixels:      make([]byte, 8),
		CategoryMap: []uint16{0, 7},
		Categories:  map[uint16]CategoryDef{7: {ID: 7, BehaviorID: format.BehaviorNavigate}},
	}
	assert.Equal(t, uint16(7), p.CategoryAt(1, 0))
}
