package ot

import (
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
)

// NameTable represents an OpenType 'name' table.
//
// See https://docs.microsoft.com/en-us/typography/opentype/spec/name
type NameTable struct {
	tableBase
	Records []NameRecord
}

// NameRecord is a single decoded string of a 'name' table.
type NameRecord struct {
	PlatformID uint16
	EncodingID uint16
	LanguageID uint16
	NameID     uint16
	Value      string
}

// Platform IDs of name records.
const (
	PlatformUnicode   uint16 = 0
	PlatformMacintosh uint16 = 1
	PlatformWindows   uint16 = 3
)

// Name returns the first string for a name ID and a platform, or "".
func (t *NameTable) Name(nameID, platformID uint16) string {
	if t == nil {
		return ""
	}
	for _, rec := range t.Records {
		if rec.NameID == nameID && rec.PlatformID == platformID {
			return rec.Value
		}
	}
	return ""
}

// Records with an encoding we cannot decode are dropped silently; this is not
// an error, as a font will usually contain the same string in more than one
// encoding.
func parseNames(tag Tag, b binarySegm, offset, size uint32) (Table, error) {
	if len(b) < 6 {
		return nil, errFontFormat("name section corrupt")
	}
	N := int(u16(b[2:]))
	strOffset := int(u16(b[4:]))
	tracer().Debugf("name table has %d strings, starting at %d", N, strOffset)
	if len(b) < 6+12*N || strOffset > len(b) {
		return nil, errFontFormat("name section corrupt")
	}
	strbuf := b[strOffset:]
	t := &NameTable{tableBase: newTableBase(tag, b, offset, size)}
	for i := 0; i < N; i++ {
		rec := b[6+12*i:]
		r := NameRecord{
			PlatformID: u16(rec),
			EncodingID: u16(rec[2:]),
			LanguageID: u16(rec[4:]),
			NameID:     u16(rec[6:]),
		}
		length, off := int(u16(rec[8:])), int(u16(rec[10:]))
		raw, err := strbuf.view(off, length)
		if err != nil {
			tracer().Infof("name record %d points outside of string storage", i)
			continue
		}
		dec := nameDecoder(r.PlatformID, r.EncodingID)
		if dec == nil {
			continue
		}
		value, err := dec.Bytes(raw)
		if err != nil {
			tracer().Debugf("cannot decode name record %d: %v", i, err)
			continue
		}
		r.Value = string(value)
		t.Records = append(t.Records, r)
	}
	return t, nil
}

// nameDecoder returns a decoder for the string encoding of a platform, or nil.
// Unicode and Windows strings are UTF-16BE, Macintosh strings with encoding 0
// are Mac Roman.
func nameDecoder(pid, eid uint16) *encoding.Decoder {
	switch pid {
	case PlatformUnicode:
		return unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM).NewDecoder()
	case PlatformWindows:
		if eid == 0 || eid == 1 || eid == 10 {
			return unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM).NewDecoder()
		}
	case PlatformMacintosh:
		if eid == 0 {
			return charmap.Macintosh.NewDecoder()
		}
	}
	return nil
}
