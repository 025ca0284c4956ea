package glyphs

import (
	"github.com/emirpasic/gods/maps/treemap"
	"github.com/emirpasic/gods/utils"

	"github.com/npillmayer/glyphpad/core/font/codec"
	"github.com/npillmayer/glyphpad/engine/typebox"
)

// FontCollection is a font under edit.
type FontCollection struct {
	Metadata Metadata
	Metrics  typebox.Metrics
	glyphs   *treemap.Map // rune → *GlyphRecord
}

// NewCollection creates a collection without any glyphs.
func NewCollection(md Metadata, m typebox.Metrics) *FontCollection {
	if md == nil {
		md = make(Metadata)
	}
	return &FontCollection{
		Metadata: md,
		Metrics:  m,
		glyphs:   treemap.NewWith(utils.RuneComparator),
	}
}

// FromParsed builds a collection from a parsed font. Every glyph of the font
// becomes the source outline of a record for its code point.
func FromParsed(p *codec.ParsedFont) *FontCollection {
	fc := NewCollection(MetadataFrom(p.Names), typebox.Metrics{
		Ascender:   p.Ascender,
		Descender:  p.Descender,
		UnitsPerEm: p.UnitsPerEm,
	})
	for cp, g := range p.Glyphs {
		fc.glyphs.Put(cp, &GlyphRecord{CodePoint: cp, Source: g})
	}
	tracer().Infof("font collection %q with %d glyphs", fc.Metadata.Family(), fc.Len())
	return fc
}

// Len returns the number of glyph records.
func (fc *FontCollection) Len() int {
	return fc.glyphs.Size()
}

// Glyph returns the record for code point cp, if one exists.
func (fc *FontCollection) Glyph(cp rune) (*GlyphRecord, bool) {
	v, ok := fc.glyphs.Get(cp)
	if !ok {
		return nil, false
	}
	return v.(*GlyphRecord), true
}

// Ensure returns the record for code point cp, creating an empty one if
// necessary.
func (fc *FontCollection) Ensure(cp rune) *GlyphRecord {
	if g, ok := fc.Glyph(cp); ok {
		return g
	}
	g := &GlyphRecord{CodePoint: cp}
	fc.glyphs.Put(cp, g)
	return g
}

// Each calls f for every record, in ascending code point order.
func (fc *FontCollection) Each(f func(*GlyphRecord)) {
	it := fc.glyphs.Iterator()
	for it.Next() {
		f(it.Value().(*GlyphRecord))
	}
}

// ExportMode selects the glyphs of an export.
type ExportMode int

// Export modes
const (
	ModifiedOnly ExportMode = iota // glyphs with a compiled outline
	Full                           // glyphs with a compiled or a source outline
)

func (m ExportMode) String() string {
	if m == Full {
		return "full"
	}
	return "modified-only"
}

// AssembleExport walks the glyph table in code point order and builds a
// request for the font serializer. The placeholder glyph .notdef comes
// first. Every glyph gets the same advance width. A compiled outline takes
// precedence over the source outline.
func (fc *FontCollection) AssembleExport(mode ExportMode, advance int) codec.ExportRequest {
	req := codec.ExportRequest{
		FamilyName: fc.Metadata.Family(),
		StyleName:  fc.Metadata.Style(),
		UnitsPerEm: fc.Metrics.UnitsPerEm,
		Ascender:   fc.Metrics.Ascender,
		Descender:  fc.Metrics.Descender,
		Glyphs:     []codec.ExportGlyph{{Name: codec.NotdefName, AdvanceWidth: advance}},
	}
	fc.Each(func(g *GlyphRecord) {
		eg := codec.ExportGlyph{
			Name:         string(g.CodePoint),
			Unicode:      g.CodePoint,
			AdvanceWidth: advance,
		}
		switch {
		case g.Compiled != nil:
			eg.Outline = g.Compiled
		case mode == Full && g.Source != nil:
			eg.Outline = g.Source.Outline
			if g.Source.Name != "" {
				eg.Name = g.Source.Name
			}
		default:
			return
		}
		req.Glyphs = append(req.Glyphs, eg)
	})
	tracer().Infof("assembled %s export with %d glyphs", mode, len(req.Glyphs))
	return req
}
