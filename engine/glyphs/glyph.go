package glyphs

import (
	"github.com/npillmayer/glyphpad/core/font/codec"
	"github.com/npillmayer/glyphpad/engine/stroke"
	"github.com/npillmayer/glyphpad/engine/typebox"
)

// GlyphRecord is the editable state of one code point.
type GlyphRecord struct {
	CodePoint rune
	Source    *codec.SourceGlyph // from the loaded font, nil if not present there
	Live      []stroke.Stroke    // strokes on the canvas
	Committed []stroke.Stroke    // strokes saved for this code point
	Compiled  codec.Outline      // outline compiled from Committed, nil if undefined
}

// HasSource is true if the loaded font has a glyph for the code point.
func (g *GlyphRecord) HasSource() bool {
	return g.Source != nil
}

// AddLive appends a finished stroke to the live strokes.
func (g *GlyphRecord) AddLive(s stroke.Stroke) {
	g.Live = append(g.Live, s)
}

// Revert replaces the live strokes by a copy of the committed ones.
func (g *GlyphRecord) Revert() {
	g.Live = stroke.Copy(g.Committed)
}

// Save commits a copy of the live strokes and compiles them into an outline,
// using the mapping of box. If there are no live strokes, Save does nothing
// and returns false.
func (g *GlyphRecord) Save(box *typebox.Box) bool {
	if len(g.Live) == 0 {
		return false
	}
	g.Committed = stroke.Copy(g.Live)
	g.Compiled = Compile(g.Committed, box)
	tracer().Debugf("saved %d strokes for U+%04X", len(g.Committed), g.CodePoint)
	return true
}

// Delete drops every stroke and the compiled outline.
func (g *GlyphRecord) Delete() {
	g.Live = nil
	g.Committed = nil
	g.Compiled = nil
}

// Compile maps strokes from canvas pixels to font units and joins their
// samples with straight lines, one contour per stroke. Strokes with fewer
// than two samples are skipped. If no stroke qualifies, Compile returns nil.
func Compile(strokes []stroke.Stroke, box *typebox.Box) codec.Outline {
	var o codec.Outline
	for _, st := range strokes {
		if len(st) < 2 {
			continue
		}
		for i, s := range st {
			x, y := box.ToFontUnits(s.X, s.Y)
			op := codec.LineTo
			if i == 0 {
				op = codec.MoveTo
			}
			o = append(o, codec.Segment{Op: op, Args: [3]codec.Point{{X: x, Y: y}}})
		}
	}
	return o
}
