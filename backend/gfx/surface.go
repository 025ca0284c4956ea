package gfx

// Surface is a vector drawing surface. Coordinates are pixels with the origin
// at the top left corner, y pointing down.
type Surface interface {
	ClearRect(x, y, w, h float64)
	SetStrokeStyle(color string, width float64)
	SetDash(pattern ...float64) // no arguments: solid lines
	// FillText draws s horizontally centred at x, with its baseline at y.
	FillText(s string, font Font, color string, x, y float64)
	BeginPath()
	MoveTo(x, y float64)
	LineTo(x, y float64)
	CubicTo(c1x, c1y, c2x, c2y, x, y float64)
	Stroke()
}

// Font selects a font family registered with the editor, at a pixel size.
type Font struct {
	Family string
	Size   float64
}

// Layers are the surfaces making up the editing canvas.
type Layers struct {
	Box        Surface // type box guides
	Background Surface // character of the original font
	Foreground Surface // persistent strokes
	Overlay    Surface // stroke in flight
}

// NewDebuggingLayers creates layers of debugging surfaces.
func NewDebuggingLayers() Layers {
	return Layers{
		Box:        NewDebuggingSurface(),
		Background: NewDebuggingSurface(),
		Foreground: NewDebuggingSurface(),
		Overlay:    NewDebuggingSurface(),
	}
}
