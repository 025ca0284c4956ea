package ot

import (
	"fmt"
)

// Code comment often will cite passage from the
// OpenType specification version 1.8.4;
// see https://docs.microsoft.com/en-us/typography/opentype/spec/.

// ---------------------------------------------------------------------------

// Parse parses an OpenType font from a byte slice.
// An ot.Font needs ongoing access to the fonts byte-data after the Parse function returns.
// Its elements are assumed immutable while the ot.Font remains in use.
func Parse(font []byte) (*Font, error) {
	// https://www.microsoft.com/typography/otspec/otff.htm: Offset Table is 12 bytes.
	src := binarySegm(font)
	if len(src) < 12 {
		return nil, errFontFormat("font header too short")
	}
	h := FontHeader{FontType: u32(src), TableCount: u16(src[4:])}
	tracer().Debugf("header = %v, tag = %x|%s", h, h.FontType, Tag(h.FontType).String())
	if !(h.FontType == 0x4f54544f || // OTTO
		h.FontType == 0x00010000 || // TrueType
		h.FontType == 0x74727565) { // true
		return nil, errFontFormat(fmt.Sprintf("font type not supported: %x", h.FontType))
	}
	otf := &Font{Header: &h, tables: make(map[Tag]Table)}
	// "The Offset Table is followed immediately by the Table Record entries …
	// sorted in ascending order by tag", 16 bytes each.
	buf, err := src.view(12, 16*int(h.TableCount))
	if err != nil {
		return nil, errFontFormat("table record entries")
	}
	for b := buf; len(b) > 0; b = b[16:] {
		tag := MakeTag(b)
		off, size := u32(b[8:12]), u32(b[12:16])
		if uint64(off)+uint64(size) > uint64(len(src)) {
			return nil, errFontFormat("table " + tag.String() + " exceeds font data")
		}
		otf.tables[tag], err = parseTable(tag, src[off:off+size], off, size)
		if err != nil {
			return nil, err
		}
	}
	for _, tag := range RequiredTables {
		if otf.tables[T(tag)] == nil {
			return nil, errFontFormat("missing required table " + tag)
		}
	}
	otf.CMap = otf.tables[T("cmap")].(*CMapTable)
	if n, ok := otf.tables[T("name")].(*NameTable); ok {
		otf.Names = n
	}
	return otf, nil
}

// RequiredTables lists the tables we need for a font to be usable by the editor.
// The OpenType spec requires more ("hmtx", "maxp", "name", "OS/2", "post"),
// but we do not rely on them.
var RequiredTables = []string{
	"cmap", "head", "hhea",
}

func parseTable(t Tag, b binarySegm, offset, size uint32) (Table, error) {
	switch t {
	case T("cmap"):
		return parseCMap(t, b, offset, size)
	case T("head"):
		if size < 54 {
			return nil, errFontFormat("size of head table")
		}
	case T("hhea"):
		if size < 36 {
			return nil, errFontFormat("size of hhea table")
		}
	case T("name"):
		return parseNames(t, b, offset, size)
	}
	tracer().Debugf("font contains table (%s)", t)
	return &genericTable{newTableBase(t, b, offset, size)}, nil
}
