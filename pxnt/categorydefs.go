package pxnt

import (
	"github.com/pixnet/pixnet/errs"
	"github.com/pixnet/pixnet/format"
	"github.com/pixnet/pixnet/page"
	"github.com/pixnet/pixnet/wireio"
)

// categoryHeaderSize is the fixed 8-byte per-category header that precedes
// its name and behavior data (spec.md §4.2 step 6).
const categoryHeaderSize = 8

func writeCategoryDefs(w *wireio.Writer, defs map[uint16]page.CategoryDef) {
	w.WriteUint16(uint16(len(defs)))

	for _, def := range defs {
		w.WriteUint16(def.ID)
		w.WriteUint8(uint8(len(def.Name)))
		w.WriteUint8(uint8(def.BehaviorID))
		w.WriteUint8(def.Priority)
		w.WriteUint16(uint16(len(def.BehaviorData)))
		w.WriteUint8(0) // reserved, pads category header to 8 bytes

		w.WriteBytes([]byte(def.Name))
		w.WriteBytes(def.BehaviorData)

		w.WriteUint16(uint16(len(def.ExtendedProperties)))
		for _, p := range def.ExtendedProperties {
			w.WriteString8(p.Key)
			w.WriteString8(p.Value)
		}
	}
}

func readCategoryDefs(r *wireio.Reader) (map[uint16]page.CategoryDef, error) {
	count, err := r.ReadUint16()
	if err != nil {
		return nil, err
	}

	defs := make(map[uint16]page.CategoryDef, count)

	for i := uint16(0); i < count; i++ {
		if r.Len() < categoryHeaderSize {
			return nil, errs.TruncatedFile
		}

		id, err := r.ReadUint16()
		if err != nil {
			return nil, err
		}
		nameLen, err := r.ReadUint8()
		if err != nil {
			return nil, err
		}
		behaviorID, err := r.ReadUint8()
		if err != nil {
			return nil, err
		}
		priority, err := r.ReadUint8()
		if err != nil {
			return nil, err
		}
		dataLen, err := r.ReadUint16()
		if err != nil {
			return nil, err
		}
		if _, err := r.ReadUint8(); err != nil { // reserved
			return nil, err
		}

		nameBytes, err := r.ReadBytes(int(nameLen))
		if err != nil {
			return nil, errs.SectionOverflow
		}
		data, err := r.ReadBytes(int(dataLen))
		if err != nil {
			return nil, errs.SectionOverflow
		}

		extCount, err := r.ReadUint16()
		if err != nil {
			return nil, err
		}
		extProps := make([]page.ExtendedProperty, extCount)
		for j := range extProps {
			key, err := r.ReadString8()
			if err != nil {
				return nil, err
			}
			val, err := r.ReadString8()
			if err != nil {
				return nil, err
			}
			extProps[j] = page.ExtendedProperty{Key: key, Value: val}
		}

		defs[id] = page.CategoryDef{
			ID:                  id,
			Name:                string(nameBytes),
			BehaviorID:          format.BehaviorID(behaviorID),
			Priority:            priority,
			BehaviorData:        data,
			ExtendedProperties:  extProps,
		}
	}

	return defs, nil
}
