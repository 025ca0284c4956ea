/*
Package typebox computes the geometry of the editing canvas.

The type box is the rectangle representing a font's vertical extent, from
descender to ascender, at the editing pixel size E. It is centred in a square
canvas of side 2E. The box also defines the mapping between canvas pixels
and font design units, which is used when strokes are compiled into glyph
outlines.

The mapping is not clamped: points outside the box map to coordinates outside
the font's nominal extent, including negative ones. They are exported as
drawn.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package typebox

import (
	"math"

	"github.com/npillmayer/glyphpad/backend/gfx"
	"github.com/npillmayer/glyphpad/core"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'glyphpad.editor'.
func tracer() tracing.Trace {
	return tracing.Select("glyphpad.editor")
}

// Metrics are the vertical font metrics, in font design units.
type Metrics struct {
	Ascender   int
	Descender  int // usually negative
	UnitsPerEm int
}

// Box is the type box for a font at an editing size.
type Box struct {
	Metrics
	E          int // editing pixel size
	CanvasSize int // side length of the canvas, 2E
	Size       int // pixel height of the box
	Origin     int // top and left edge of the box
	Baseline   int // y coordinate of the baseline
	End        int // bottom and right edge of the box
}

// New computes the type box for metrics m at editing size e.
func New(m Metrics, e int) (*Box, error) {
	if m.UnitsPerEm <= 0 {
		return nil, core.Error(core.EINVALID, "font has invalid units per em: %d", m.UnitsPerEm)
	}
	if e <= 0 {
		return nil, core.Error(core.EINVALID, "invalid editing size: %d", e)
	}
	b := &Box{Metrics: m, E: e, CanvasSize: 2 * e}
	upem, size := float64(m.UnitsPerEm), float64(e)
	b.Size = int(math.Ceil(float64(m.Ascender-m.Descender) / upem * size))
	half := float64(b.CanvasSize) / 2
	b.Origin = int(math.Floor(half - float64(b.Size)/2))
	b.Baseline = int(math.Ceil(float64(m.Ascender)/upem*size)) + b.Origin
	b.End = int(math.Ceil(half + float64(b.Size)/2))
	tracer().Debugf("type box for %v at E=%d: size=%d, origin=%d, baseline=%d",
		m, e, b.Size, b.Origin, b.Baseline)
	return b, nil
}

// ToFontUnits maps a canvas pixel position to font design units, y pointing up.
func (b *Box) ToFontUnits(x, y float64) (float64, float64) {
	s := float64(b.UnitsPerEm) / float64(b.E)
	return (x - float64(b.Origin)) * s, (float64(b.Baseline) - y) * s
}

// ToCanvas maps a position in font design units to canvas pixels. It is the
// inverse of ToFontUnits.
func (b *Box) ToCanvas(fx, fy float64) (float64, float64) {
	s := float64(b.E) / float64(b.UnitsPerEm)
	return fx*s + float64(b.Origin), float64(b.Baseline) - fy*s
}

// DrawGuides paints the type box as a dashed rectangle, plus the vertical
// centre line and the baseline.
func (b *Box) DrawGuides(s gfx.Surface, color string) {
	c := float64(b.CanvasSize)
	o, e := float64(b.Origin), float64(b.End)
	s.ClearRect(0, 0, c, c)
	s.SetStrokeStyle(color, 1)
	s.SetDash(2, 2)
	s.BeginPath()
	s.MoveTo(o, o)
	s.LineTo(o, e)
	s.LineTo(e, e)
	s.LineTo(e, o)
	s.LineTo(o, o)
	s.Stroke()
	s.BeginPath()
	s.MoveTo(c/2, 0)
	s.LineTo(c/2, c)
	s.Stroke()
	s.BeginPath()
	s.MoveTo(0, float64(b.Baseline))
	s.LineTo(c, float64(b.Baseline))
	s.Stroke()
	s.SetDash()
}
