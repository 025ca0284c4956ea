package editor

import (
	"github.com/npillmayer/glyphpad/backend/gfx"
	"github.com/npillmayer/glyphpad/core/font/codec"
	"github.com/npillmayer/glyphpad/core/parameters"
	"github.com/npillmayer/glyphpad/engine/glyphs"
	"github.com/npillmayer/glyphpad/engine/grid"
	"github.com/npillmayer/glyphpad/engine/stroke"
	"github.com/npillmayer/glyphpad/engine/typebox"
)

// Session is the state of editing one font.
type Session struct {
	Font    *glyphs.FontCollection
	Box     *typebox.Box
	Grid    *grid.Grid
	capture *stroke.Capture
	layers  gfx.Layers
	params  parameters.Editor
	dirty   bool // strokes drawn since the active cell was selected
}

func newSession(p *codec.ParsedFont, params parameters.Editor, layers gfx.Layers) (*Session, error) {
	fc := glyphs.FromParsed(p)
	box, err := typebox.New(fc.Metrics, params.EditingFontSize)
	if err != nil {
		return nil, err
	}
	s := &Session{
		Font:   fc,
		Box:    box,
		layers: layers,
		params: params,
	}
	s.capture = stroke.NewCapture(params.SamplingPeriod, layers.Overlay, layers.Foreground,
		stroke.Style{
			Color:        params.StrokeColor,
			OverlayColor: params.OverlayColor,
			Width:        params.StrokeWidth,
			Smoothing:    params.Smoothing,
			CanvasSize:   box.CanvasSize,
		})
	s.Grid = grid.New(fc, s)
	return s, nil
}

// Current returns the glyph record of the active cell, or nil.
func (s *Session) Current() *glyphs.GlyphRecord {
	cell := s.Grid.Active()
	if cell == nil {
		return nil
	}
	g, _ := s.Font.Glyph(cell.CodePoint)
	return g
}

// Dirty is true if strokes have been drawn since the active cell was selected.
func (s *Session) Dirty() bool {
	return s.dirty
}

// Capture returns the stroke capture of the session.
func (s *Session) Capture() *stroke.Capture {
	return s.capture
}

// Activate repaints the editing canvas for cell: the character of the
// original font as a guide in the background, and the committed strokes of
// the cell's glyph, which become its live strokes.
func (s *Session) Activate(cell *grid.Cell, force bool) {
	s.dirty = false
	size := float64(s.Box.CanvasSize)
	s.layers.Background.ClearRect(0, 0, size, size)
	s.layers.Foreground.ClearRect(0, 0, size, size)
	if cell.Char != "" {
		font := gfx.Font{Family: parameters.OriginalFont, Size: float64(s.params.EditingFontSize)}
		s.layers.Background.FillText(cell.Char, font, s.params.GuideColor, size/2, float64(s.Box.Baseline))
	}
	g, ok := s.Font.Glyph(cell.CodePoint)
	if !ok {
		tracer().Errorf("no glyph record for U+%04X", cell.CodePoint)
		return
	}
	g.Revert()
	if len(g.Live) > 0 {
		s.layers.Foreground.SetStrokeStyle(s.params.StrokeColor, s.params.StrokeWidth)
		stroke.Render(s.layers.Foreground, g.Live, s.params.Smoothing)
	}
	tracer().Debugf("activated U+%04X (force=%v) with %d strokes", cell.CodePoint, force, len(g.Live))
}

// restore puts back live strokes of the active glyph and repaints them.
func (s *Session) restore(live []stroke.Stroke, dirty bool) {
	g := s.Current()
	if g == nil {
		return
	}
	g.Live = live
	s.dirty = dirty
	size := float64(s.Box.CanvasSize)
	s.layers.Foreground.ClearRect(0, 0, size, size)
	s.layers.Foreground.SetStrokeStyle(s.params.StrokeColor, s.params.StrokeWidth)
	stroke.Render(s.layers.Foreground, g.Live, s.params.Smoothing)
}

// drawBox paints the type box guides and clears the editing layers.
func (s *Session) drawBox() {
	size := float64(s.Box.CanvasSize)
	s.Box.DrawGuides(s.layers.Box, s.params.GuideColor)
	s.layers.Background.ClearRect(0, 0, size, size)
	s.layers.Foreground.ClearRect(0, 0, size, size)
	s.layers.Overlay.ClearRect(0, 0, size, size)
}
