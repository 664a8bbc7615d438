package frame

import (
	"github.com/pixnet/pixnet/format"
	"github.com/pixnet/pixnet/page"
	"github.com/pixnet/pixnet/wireio"
)

// writeCategoryDefs encodes the wire form of a rendering frame's category
// definitions (spec.md §6.1): count(2), then for each
// id(2)·name_len(1)·name·behavior_id(1)·priority(1)·data_len(2)·data. This
// differs from the PXNT container's category-def layout (which adds a
// reserved pad byte and an extended-properties block); the two are encoded
// independently since they travel over different framings.
func writeCategoryDefs(w *wireio.Writer, defs map[uint16]page.CategoryDef) {
	w.WriteUint16(uint16(len(defs)))

	for _, def := range defs {
		w.WriteUint16(def.ID)
		w.WriteString8(def.Name)
		w.WriteUint8(uint8(def.BehaviorID))
		w.WriteUint8(def.Priority)
		w.WriteUint16(uint16(len(def.BehaviorData)))
		w.WriteBytes(def.BehaviorData)
	}
}

func readCategoryDefs(r *wireio.Reader) (map[uint16]page.CategoryDef, error) {
	count, err := r.ReadUint16()
	if err != nil {
		return nil, err
	}

	defs := make(map[uint16]page.CategoryDef, count)
	for i := uint16(0); i < count; i++ {
		id, err := r.ReadUint16()
		if err != nil {
			return nil, err
		}
		name, err := r.ReadString8()
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
		data, err := r.ReadBytes(int(dataLen))
		if err != nil {
			return nil, err
		}

		defs[id] = page.CategoryDef{
			ID:           id,
			Name:         name,
			BehaviorID:   format.BehaviorID(behaviorID),
			Priority:     priority,
			BehaviorData: data,
		}
	}

	return defs, nil
}

func encodeCategoryMap(m []uint16) []byte {
	b := make([]byte, len(m)*2)
	for i, v := range m {
		be.PutUint16(b[i*2:i*2+2], v)
	}

	return b
}

func decodeCategoryMap(b []byte) []uint16 {
	m := make([]uint16, len(b)/2)
	for i := range m {
		m[i] = be.Uint16(b[i*2 : i*2+2])
	}

	return m
}
