package codec

import (
	"github.com/npillmayer/glyphpad/core"
	"github.com/npillmayer/glyphpad/core/font"
	"github.com/npillmayer/glyphpad/core/font/opentype/ot"
	"github.com/npillmayer/glyphpad/core/font/opentype/otquery"
	xfont "golang.org/x/image/font"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

// SourceGlyph is a glyph as found in a parsed font. Its outline is passed
// through to an exported font unchanged.
type SourceGlyph struct {
	Index   ot.GlyphIndex
	Name    string  // glyph name from the 'post' or 'CFF' table, may be empty
	Advance float64 // advance width in design units
	Outline Outline
}

// ParsedFont is the result of parsing a font file.
type ParsedFont struct {
	Names      otquery.Names
	Glyphs     map[rune]*SourceGlyph
	Ascender   int
	Descender  int
	UnitsPerEm int
}

// Parse parses raw font data. Malformed data results in an error with code
// core.EINVALID. Glyphs whose outlines cannot be loaded are skipped.
//
// Outlines are loaded with ppem = unitsPerEm, so that coordinates are font
// design units.
func Parse(data []byte) (*ParsedFont, error) {
	sf, err := font.ParseOpenTypeFont(data)
	if err != nil {
		return nil, err
	}
	otf, err := ot.Parse(data)
	if err != nil {
		return nil, err
	}
	otf.F = sf
	metrics := otquery.FontMetrics(otf)
	if metrics.UnitsPerEm <= 0 {
		return nil, core.Error(core.EINVALID, "font has invalid units per em: %d", metrics.UnitsPerEm)
	}
	pf := &ParsedFont{
		Names:      otquery.NameInfo(otf),
		Glyphs:     make(map[rune]*SourceGlyph),
		Ascender:   int(metrics.Ascent),
		Descender:  int(metrics.Descent),
		UnitsPerEm: int(metrics.UnitsPerEm),
	}
	ppem := fixed.Int26_6(pf.UnitsPerEm << 6)
	var buf sfnt.Buffer
	loaded := make(map[ot.GlyphIndex]*SourceGlyph)
	skipped := 0
	for _, m := range otquery.CodePoints(otf) {
		if g, ok := loaded[m.GlyphIndex]; ok { // several code-points may share a glyph
			pf.Glyphs[m.CodePoint] = g
			continue
		}
		g, err := loadGlyph(sf.SFNT, &buf, m.GlyphIndex, ppem)
		if err != nil {
			tracer().Debugf("skipping glyph %d for U+%04X: %v", m.GlyphIndex, m.CodePoint, err)
			skipped++
			continue
		}
		loaded[m.GlyphIndex] = g
		pf.Glyphs[m.CodePoint] = g
	}
	if skipped > 0 {
		tracer().Infof("%d glyphs of font could not be loaded", skipped)
	}
	tracer().Infof("parsed font with %d code-points, %d units per em", len(pf.Glyphs), pf.UnitsPerEm)
	return pf, nil
}

func loadGlyph(f *sfnt.Font, buf *sfnt.Buffer, gid ot.GlyphIndex, ppem fixed.Int26_6) (*SourceGlyph, error) {
	x := sfnt.GlyphIndex(gid)
	segs, err := f.LoadGlyph(buf, x, ppem, nil)
	if err != nil {
		return nil, err
	}
	g := &SourceGlyph{Index: gid, Outline: make(Outline, 0, len(segs))}
	for _, s := range segs {
		seg := Segment{}
		switch s.Op {
		case sfnt.SegmentOpMoveTo:
			seg.Op = MoveTo
		case sfnt.SegmentOpLineTo:
			seg.Op = LineTo
		case sfnt.SegmentOpQuadTo:
			seg.Op = QuadTo
		case sfnt.SegmentOpCubeTo:
			seg.Op = CubeTo
		}
		for i := range s.Args {
			seg.Args[i] = designPoint(s.Args[i])
		}
		g.Outline = append(g.Outline, seg)
	}
	if adv, err := f.GlyphAdvance(buf, x, ppem, xfont.HintingNone); err == nil {
		g.Advance = float64(adv) / 64
	}
	if name, err := f.GlyphName(buf, x); err == nil {
		g.Name = name
	}
	return g, nil
}

// designPoint converts a 26.6 point with y pointing down to design units with
// y pointing up.
func designPoint(p fixed.Point26_6) Point {
	return Point{X: float64(p.X) / 64, Y: -float64(p.Y) / 64}
}
