package pxnt

import (
	"sort"

	"github.com/pixnet/pixnet/page"
	"github.com/pixnet/pixnet/wireio"
)

// writeMetadata appends the metadata section: four optional uint16-length
// prefixed strings, then a keyword list, then a string-keyed string-valued
// custom field list.
func writeMetadata(w *wireio.Writer, m page.Metadata) {
	w.WriteString16(m.Title)
	w.WriteString16(m.Author)
	w.WriteString16(m.Description)
	w.WriteString16(m.CanonicalURL)

	w.WriteUint16(uint16(len(m.Keywords)))
	for _, k := range m.Keywords {
		w.WriteString16(k)
	}

	w.WriteUint16(uint16(len(m.Custom)))

	keys := make([]string, 0, len(m.Custom))
	for k := range m.Custom {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		w.WriteString16(k)
		w.WriteString16(m.Custom[k])
	}
}

func readMetadata(r *wireio.Reader) (page.Metadata, error) {
	var m page.Metadata
	var err error

	if m.Title, err = r.ReadString16(); err != nil {
		return m, err
	}
	if m.Author, err = r.ReadString16(); err != nil {
		return m, err
	}
	if m.Description, err = r.ReadString16(); err != nil {
		return m, err
	}
	if m.CanonicalURL, err = r.ReadString16(); err != nil {
		return m, err
	}

	kwCount, err := r.ReadUint16()
	if err != nil {
		return m, err
	}
	m.Keywords = make([]string, kwCount)
	for i := range m.Keywords {
		if m.Keywords[i], err = r.ReadString16(); err != nil {
			return m, err
		}
	}

	customCount, err := r.ReadUint16()
	if err != nil {
		return m, err
	}
	if customCount > 0 {
		m.Custom = make(map[string]string, customCount)
	}
	for i := uint16(0); i < customCount; i++ {
		key, err := r.ReadString16()
		if err != nil {
			return m, err
		}
		val, err := r.ReadString16()
		if err != nil {
			return m, err
		}
		m.Custom[key] = val
	}

	return m, nil
}
