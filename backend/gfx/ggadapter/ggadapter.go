/*
Package ggadapter implements drawing surfaces on top of the gg 2D graphics
library.

A Canvas is a square raster image. Text is drawn with faces resolved by
family name, typically from a font registry holding the fonts of an editing
session.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package ggadapter

import (
	"image"
	"image/draw"
	"io"
	"math"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/text"
	"github.com/npillmayer/glyphpad/backend/gfx"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'glyphpad.gfx'.
func tracer() tracing.Trace {
	return tracing.Select("glyphpad.gfx")
}

// FaceResolver finds a font face for a family name and a size.
// A resolver may return a substitute face together with an error.
type FaceResolver interface {
	Face(family string, size float64) (text.Face, error)
}

// Canvas is a gfx.Surface drawing into a raster image.
type Canvas struct {
	dc          *gg.Context
	faces       FaceResolver
	strokeColor string
}

var _ gfx.Surface = &Canvas{}

// New creates a transparent canvas of w × h pixels. faces may be nil, in
// which case no text is drawn.
func New(w, h int, faces FaceResolver) *Canvas {
	dc := gg.NewContext(w, h)
	dc.SetLineCap(gg.LineCapRound)
	return &Canvas{dc: dc, faces: faces, strokeColor: "#000000"}
}

// NewLayers creates a full set of editing layers, each a square canvas with
// side length size.
func NewLayers(size int, faces FaceResolver) (gfx.Layers, []*Canvas) {
	canvases := []*Canvas{New(size, size, faces), New(size, size, faces),
		New(size, size, faces), New(size, size, faces)}
	layers := gfx.Layers{
		Box:        canvases[0],
		Background: canvases[1],
		Foreground: canvases[2],
		Overlay:    canvases[3],
	}
	return layers, canvases
}

// Image returns the canvas' pixels.
func (c *Canvas) Image() image.Image {
	return c.dc.Image()
}

// EncodePNG writes the canvas as a PNG image to w.
func (c *Canvas) EncodePNG(w io.Writer) error {
	return c.dc.EncodePNG(w)
}

// Close releases the drawing context.
func (c *Canvas) Close() error {
	return c.dc.Close()
}

// ClearRect makes a rectangle transparent.
func (c *Canvas) ClearRect(x, y, w, h float64) {
	x0, y0 := int(math.Floor(x)), int(math.Floor(y))
	x1, y1 := int(math.Ceil(x+w)), int(math.Ceil(y+h))
	if x0 <= 0 && y0 <= 0 && x1 >= c.dc.Width() && y1 >= c.dc.Height() {
		c.dc.Clear()
		return
	}
	x0, y0 = max(x0, 0), max(y0, 0)
	x1, y1 = min(x1, c.dc.Width()), min(y1, c.dc.Height())
	for py := y0; py < y1; py++ {
		for px := x0; px < x1; px++ {
			c.dc.SetPixel(px, py, gg.Transparent)
		}
	}
}

func (c *Canvas) SetStrokeStyle(color string, width float64) {
	c.strokeColor = color
	c.dc.SetLineWidth(width)
}

func (c *Canvas) SetDash(pattern ...float64) {
	if len(pattern) == 0 {
		c.dc.ClearDash()
		return
	}
	c.dc.SetDash(pattern...)
}

// FillText draws s centred at x, with its baseline at y.
func (c *Canvas) FillText(s string, font gfx.Font, color string, x, y float64) {
	if c.faces == nil {
		return
	}
	face, err := c.faces.Face(font.Family, font.Size)
	if err != nil {
		tracer().Infof("drawing %q with substitute font: %v", s, err)
	}
	if face == nil {
		return
	}
	c.dc.SetFont(face)
	c.dc.SetHexColor(color)
	c.dc.DrawString(s, x-face.Advance(s)/2, y)
}

func (c *Canvas) BeginPath() {
	c.dc.ClearPath()
}

func (c *Canvas) MoveTo(x, y float64) {
	c.dc.MoveTo(x, y)
}

func (c *Canvas) LineTo(x, y float64) {
	c.dc.LineTo(x, y)
}

func (c *Canvas) CubicTo(c1x, c1y, c2x, c2y, x, y float64) {
	c.dc.CubicTo(c1x, c1y, c2x, c2y, x, y)
}

func (c *Canvas) Stroke() {
	c.dc.SetHexColor(c.strokeColor)
	if err := c.dc.Stroke(); err != nil {
		tracer().Errorf("stroke failed: %v", err)
	}
}

// Flatten composes canvases, bottom first, into a single image.
func Flatten(canvases ...*Canvas) *image.RGBA {
	var bounds image.Rectangle
	for _, c := range canvases {
		bounds = bounds.Union(c.Image().Bounds())
	}
	img := image.NewRGBA(bounds)
	for _, c := range canvases {
		src := c.Image()
		draw.Draw(img, src.Bounds(), src, src.Bounds().Min, draw.Over)
	}
	return img
}
