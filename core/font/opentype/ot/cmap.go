package ot

// CMapTable represents an OpenType cmap table, i.e. the table to receive glyphs
// from code-points.
//
// See https://docs.microsoft.com/de-de/typography/opentype/spec/cmap
//
// A cmap table may contain more than one lookup table, but we will only
// instantiate the most appropriate one.
type CMapTable struct {
	tableBase
	GlyphIndexMap CMapGlyphIndex
}

// Mapping maps a code-point to a glyph.
type Mapping struct {
	CodePoint  rune
	GlyphIndex GlyphIndex
}

// CMapGlyphIndex represents a CMap table index to receive a glyph index from
// a code-point.
type CMapGlyphIndex interface {
	Lookup(rune) GlyphIndex        // central activiy of CMap
	ReverseLookup(GlyphIndex) rune // this is non-standard, but helps with tests
	Mappings() []Mapping           // every code-point with a glyph other than 0, ascending
}

// platformEncodingWidth returns the number of bytes per character assumed by
// the given Platform ID and Platform Specific ID.
//
// Old fonts, from when Unicode meant the Basic Multilingual Plane (BMP),
// assume that 2 bytes per character is sufficient.
//
// Recent fonts naturally support the full range of Unicode code points, which
// can take up to 4 bytes per character.
func platformEncodingWidth(pid, psid uint16) int {
	switch pid {
	case 0: // Unicode platform
		switch psid {
		case 3: // Unicode BMB
			return 2
		case 4, 10: // Unicode full  (include 10 from FontForge bug)
			return 4
		}
	case 3: // Windows platform
		switch psid {
		case 1: // Unicode BMP
			return 2
		case 10: // Unicode full
			return 4
		}
	}
	return 0 // width 0 will never get selected
}

// We only support the following plaform/encoding/format combinations:
//
//	0 (Unicode)  3    4   Unicode BMB
//	0 (Unicode)  4    12  Unicode full  (10 from FontForge, error)
//	3 (Win)      1    4   Unicode BMP
//	3 (Win)      10   12  Unicode full
func supportedCmapFormat(format, pid, psid uint16) bool {
	return (pid == 0 && psid == 3 && format == 4) ||
		(pid == 0 && (psid == 4 || psid == 10) && format == 12) ||
		(pid == 3 && psid == 1 && format == 4) ||
		(pid == 3 && psid == 10 && format == 12)
}

func parseCMap(tag Tag, b binarySegm, offset, size uint32) (Table, error) {
	n, err := b.u16(2) // number of sub-tables
	if err != nil {
		return nil, errFontFormat("cmap header")
	}
	tracer().Debugf("font cmap has %d sub-tables in %d|%d bytes", n, len(b), size)
	t := &CMapTable{tableBase: newTableBase(tag, b, offset, size)}
	const headerSize, entrySize = 4, 8
	if size < headerSize+entrySize*uint32(n) {
		return nil, errFontFormat("size of cmap table")
	}
	var subtable binarySegm
	var format uint16
	width := 0
	for i := 0; i < int(n); i++ {
		rec, _ := b.view(headerSize+entrySize*i, entrySize)
		pid, psid := u16(rec), u16(rec[2:])
		w := platformEncodingWidth(pid, psid)
		if w <= width {
			continue
		}
		link := int(u32(rec[4:]))
		f, err := b.u16(link)
		if err != nil {
			tracer().Infof("cmap sub-table cannot be parsed")
			continue
		}
		if supportedCmapFormat(f, pid, psid) {
			width, format, subtable = w, f, b[link:]
		}
	}
	if width == 0 {
		return nil, errFontFormat("no supported cmap format found")
	}
	tracer().Debugf("cmap table uses subtable with format %d", format)
	switch format {
	case 4:
		t.GlyphIndexMap, err = makeGlyphIndexFormat4(subtable)
	case 12:
		t.GlyphIndexMap, err = makeGlyphIndexFormat12(subtable)
	}
	if err != nil {
		return nil, err
	}
	return t, nil
}

// --- Format 4 --------------------------------------------------------------

// Format 4: Segment mapping to delta values
// This is the standard character-to-glyph-index mapping subtable for fonts that support
// only Unicode Basic Multilingual Plane characters (U+0000 to U+FFFF).
type format4GlyphIndex struct {
	entries  []cmapEntry16
	glyphIds binarySegm
}

// Format 4 holds four parallel arrays to describe the segments (one segment for
// each contiguous range of codes).
type cmapEntry16 struct {
	end, start, delta, offset uint16
}

func (f4 format4GlyphIndex) Lookup(r rune) GlyphIndex {
	if r < 0 || r > 0xffff { // format 4 is for BMP code-points only
		return 0 // return index for 'missing character'
	}
	c := uint16(r)
	N := len(f4.entries)
	for i, j := 0, N; i < j; {
		h := i + (j-i)/2 // do a binary search on f4.entries (which may get large)
		entry := &f4.entries[h]
		if c < entry.start {
			j = h
		} else if entry.end < c {
			i = h + 1
		} else {
			return f4.glyph(h, c)
		}
	}
	return GlyphIndex(0)
}

// glyph resolves c within segment h.
func (f4 format4GlyphIndex) glyph(h int, c uint16) GlyphIndex {
	entry := &f4.entries[h]
	if entry.offset == 0 {
		return GlyphIndex(c + entry.delta)
	}
	// idRangeOffset is relative to its own position in the offset array. We
	// keep the glyph ID array separately, so we have to skip over the
	// remainder of the offset array first.
	deltaToEndOfEntries := (len(f4.entries) - h) * 2 // 2 = byte size of offset array entry
	index := (int(entry.offset)-deltaToEndOfEntries)/2 + int(c-entry.start)
	glyphInx, err := f4.glyphIds.u16(index * 2)
	if err != nil || glyphInx == 0 {
		return 0
	}
	// If the value obtained from the indexing operation is not 0 (which indicates
	// missingGlyph), idDelta[i] is added to it to get the glyph index
	return GlyphIndex(glyphInx + entry.delta)
}

// ReverseLookup retrieves a code-point for a given glyph. The Cmap tables do not
// support this operation, thus this operation is inefficient.
func (f4 format4GlyphIndex) ReverseLookup(gid GlyphIndex) rune {
	if gid == 0 {
		return 0
	}
	for _, m := range f4.Mappings() {
		if m.GlyphIndex == gid {
			return m.CodePoint
		}
	}
	return 0
}

// Mappings enumerates all segments.
func (f4 format4GlyphIndex) Mappings() []Mapping {
	var mappings []Mapping
	for h, entry := range f4.entries {
		if entry.end < entry.start || entry.start == 0xffff {
			continue
		}
		for c := uint32(entry.start); c <= uint32(entry.end); c++ {
			if c == 0xffff {
				break
			}
			if gid := f4.glyph(h, uint16(c)); gid != 0 {
				mappings = append(mappings, Mapping{CodePoint: rune(c), GlyphIndex: gid})
			}
		}
	}
	return mappings
}

// The format's data is divided into three parts, which must occur in the following order:
//
// - A four-word header gives parameters for an optimized search of the segment list;
// - Four parallel arrays describe the segments (one segment for each contiguous range of codes);
// - A variable-length array of glyph IDs (unsigned words).
func makeGlyphIndexFormat4(b binarySegm) (CMapGlyphIndex, error) {
	const headerSize = 14
	if headerSize > len(b) {
		return nil, errFontFormat("cmap subtable bounds overflow")
	}
	size := int(u16(b[2:]))
	segCount := int(u16(b[6:]))
	if segCount&1 != 0 {
		tracer().Debugf("cmap format 4 segment count is %d", segCount)
		return nil, errFontFormat("cmap table format, illegal segment count")
	}
	segCount /= 2
	eLength := 8*segCount + 2
	if size > len(b) {
		size = len(b) // some fonts get the subtable length wrong
	}
	if headerSize+eLength > size {
		return nil, errFontFormat("cmap internal structure")
	}
	b = b[headerSize:size]
	endCodes := b[:segCount*2]
	next := segCount*2 + 2 // 2 is a padding entry in the cmap table
	startCodes := b[next : next+segCount*2]
	next += segCount * 2
	deltas := b[next : next+segCount*2]
	next += segCount * 2
	offsets := b[next : next+segCount*2]
	next += segCount * 2
	entries := make([]cmapEntry16, segCount)
	for i := range entries {
		entries[i] = cmapEntry16{
			end:    u16(endCodes[i*2:]),
			start:  u16(startCodes[i*2:]),
			delta:  u16(deltas[i*2:]),
			offset: u16(offsets[i*2:]),
		}
	}
	tracer().Debugf("cmap format 4 glyph table starts at offset %d", next)
	return format4GlyphIndex{
		entries:  entries,
		glyphIds: b[next:],
	}, nil
}

// --- Format 12 -------------------------------------------------------------

type cmapEntry32 struct {
	start, end, delta uint32
}

// Each sequential map group record specifies a character range and the starting glyph ID
// mapped from the first character. Glyph IDs for subsequent characters follow in sequence.
type format12GlyphIndex struct {
	entries []cmapEntry32
}

func (f12 format12GlyphIndex) Lookup(r rune) GlyphIndex {
	if r < 0 {
		return 0
	}
	c := uint32(r)
	for i, j := 0, len(f12.entries); i < j; {
		h := i + (j-i)/2 // do a binary search on f12.entries (which may get large)
		entry := &f12.entries[h]
		if c < entry.start {
			j = h
		} else if entry.end < c {
			i = h + 1
		} else {
			return GlyphIndex(c - entry.start + entry.delta)
		}
	}
	return 0
}

// ReverseLookup retrieves a code-point for a given glyph. The Cmap tables do not
// support this operation, thus this operation is inefficient.
func (f12 format12GlyphIndex) ReverseLookup(gid GlyphIndex) rune {
	if gid == 0 {
		return 0
	}
	cid := uint32(gid)
	for _, entry := range f12.entries {
		if cid >= entry.delta && cid-entry.delta <= entry.end-entry.start {
			return rune(entry.start + cid - entry.delta)
		}
	}
	return 0
}

// Mappings enumerates all groups.
func (f12 format12GlyphIndex) Mappings() []Mapping {
	var mappings []Mapping
	for _, entry := range f12.entries {
		for c := entry.start; c <= entry.end && c <= 0x10ffff; c++ {
			if gid := c - entry.start + entry.delta; gid != 0 && gid <= 0xffff {
				mappings = append(mappings, Mapping{CodePoint: rune(c), GlyphIndex: GlyphIndex(gid)})
			}
		}
	}
	return mappings
}

// This is the standard character-to-glyph-index mapping subtable for fonts supporting
// Unicode character repertoires that include supplementary-plane characters (U+10000 to
// U+10FFFF).
func makeGlyphIndexFormat12(b binarySegm) (CMapGlyphIndex, error) {
	const headerSize = 16
	if headerSize > len(b) {
		return nil, errFontFormat("cmap subtable bounds overflow")
	}
	size := u32(b[4:])
	grpCount := u32(b[12:])
	eLength := 12 * uint64(grpCount)
	if uint64(size) > uint64(len(b)) || eLength+headerSize > uint64(size) {
		return nil, errFontFormat("cmap internal structure")
	}
	b = b[headerSize:size]
	// SequentialMapGroup Record:
	// Type     Name            Description
	// uint32   startCharCode   First character code in this group
	// uint32   endCharCode     Last character code in this group
	// uint32   startGlyphID    Glyph index corresponding to the starting character code
	entries := make([]cmapEntry32, grpCount)
	for i := range entries {
		g := b[i*12:]
		entries[i] = cmapEntry32{
			start: u32(g),
			end:   u32(g[4:]),
			delta: u32(g[8:]),
		}
		if entries[i].end < entries[i].start {
			return nil, errFontFormat("cmap group order")
		}
	}
	return format12GlyphIndex{
		entries: entries,
	}, nil
}
