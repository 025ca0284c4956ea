package stroke

import (
	"time"

	"github.com/npillmayer/glyphpad/backend/gfx"
)

// Sample is a pointer position in canvas pixels, taken at a point in time.
type Sample struct {
	X, Y float64
	At   time.Time
}

// Stroke is the sequence of samples of one gesture.
type Stroke []Sample

// Copy returns a copy of strokes which shares no sample slices with it.
func Copy(strokes []Stroke) []Stroke {
	if strokes == nil {
		return nil
	}
	c := make([]Stroke, len(strokes))
	for i, s := range strokes {
		c[i] = append(Stroke(nil), s...)
	}
	return c
}

// Point is a position in canvas pixels.
type Point struct {
	X, Y float64
}

// PathOp is a command of a smoothed path: either a move to P, or a cubic
// curve to P with control points C1 and C2.
type PathOp struct {
	Cubic  bool
	C1, C2 Point
	P      Point
}

// Smooth computes a piecewise cubic curve through all samples of a stroke,
// with smoothing factor s. For every sample i ≥ 1, the control points are
//
//	c1 = p[i-1] + s·(p[i] − p[i-2])
//	c2 = p[i]   − s·(p[i+1] − p[i-1])
//
// where indices outside the stroke are clamped to the first or last sample.
func Smooth(samples Stroke, s float64) []PathOp {
	n := len(samples)
	if n == 0 {
		return nil
	}
	p := func(i int) Point {
		i = max(0, min(i, n-1))
		return Point{samples[i].X, samples[i].Y}
	}
	ops := make([]PathOp, 0, n)
	ops = append(ops, PathOp{P: p(0)})
	for i := 1; i < n; i++ {
		pp, prev, cur, next := p(i-2), p(i-1), p(i), p(i+1)
		ops = append(ops, PathOp{
			Cubic: true,
			C1:    Point{prev.X + s*(cur.X-pp.X), prev.Y + s*(cur.Y-pp.Y)},
			C2:    Point{cur.X - s*(next.X-prev.X), cur.Y - s*(next.Y-prev.Y)},
			P:     cur,
		})
	}
	return ops
}

// Render draws strokes smoothed with factor s, one path per stroke. The
// stroke style of surface is left as it is.
func Render(surface gfx.Surface, strokes []Stroke, s float64) {
	for _, st := range strokes {
		ops := Smooth(st, s)
		if len(ops) == 0 {
			continue
		}
		surface.BeginPath()
		for _, op := range ops {
			if op.Cubic {
				surface.CubicTo(op.C1.X, op.C1.Y, op.C2.X, op.C2.Y, op.P.X, op.P.Y)
			} else {
				surface.MoveTo(op.P.X, op.P.Y)
			}
		}
		surface.Stroke()
	}
}
