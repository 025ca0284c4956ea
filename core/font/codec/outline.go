package codec

import (
	"fmt"
	"math"
)

// Point is a position in font design units, y pointing up.
type Point struct {
	X, Y float64
}

func (p Point) add(q Point) Point { return Point{p.X + q.X, p.Y + q.Y} }
func (p Point) sub(q Point) Point { return Point{p.X - q.X, p.Y - q.Y} }
func (p Point) scale(s float64) Point { return Point{p.X * s, p.Y * s} }
func (p Point) lerp(q Point, t float64) Point {
	return p.add(q.sub(p).scale(t))
}

// SegmentOp is the drawing operation of a segment.
type SegmentOp uint8

// Segment operations.
const (
	MoveTo SegmentOp = iota
	LineTo
	QuadTo
	CubeTo
)

func (op SegmentOp) String() string {
	switch op {
	case MoveTo:
		return "M"
	case LineTo:
		return "L"
	case QuadTo:
		return "Q"
	case CubeTo:
		return "C"
	}
	return "?"
}

// Segment is a single path command. MoveTo and LineTo use Args[0], QuadTo uses
// Args[0] as control point and Args[1] as end point, CubeTo uses all three.
type Segment struct {
	Op   SegmentOp
	Args [3]Point
}

// Outline is a glyph outline in font design units.
type Outline []Segment

// Empty is true if the outline does not draw anything.
func (o Outline) Empty() bool {
	for _, seg := range o {
		if seg.Op != MoveTo {
			return false
		}
	}
	return true
}

// Contours returns the number of contours of an outline.
func (o Outline) Contours() int {
	n := 0
	for _, seg := range o {
		if seg.Op == MoveTo {
			n++
		}
	}
	return n
}

func (o Outline) String() string {
	s := ""
	for i, seg := range o {
		if i > 0 {
			s += " "
		}
		switch seg.Op {
		case MoveTo, LineTo:
			s += fmt.Sprintf("%s%g,%g", seg.Op, seg.Args[0].X, seg.Args[0].Y)
		case QuadTo:
			s += fmt.Sprintf("%s%g,%g,%g,%g", seg.Op, seg.Args[0].X, seg.Args[0].Y,
				seg.Args[1].X, seg.Args[1].Y)
		case CubeTo:
			s += fmt.Sprintf("%s%g,%g,%g,%g,%g,%g", seg.Op, seg.Args[0].X, seg.Args[0].Y,
				seg.Args[1].X, seg.Args[1].Y, seg.Args[2].X, seg.Args[2].Y)
		}
	}
	return s
}

// --- TrueType contours -----------------------------------------------------

// ttPoint is a point of a TrueType contour, rounded and saturated to int16.
type ttPoint struct {
	X, Y    int16
	OnCurve bool
}

// quadContours converts an outline to TrueType contours. Lines and quadratic
// segments map directly. A cubic segment is split at t=½ and each half is
// approximated by a single quadratic segment with control point
// (3·(c1+c2) − p0 − p3) / 4.
//
// TrueType contours are always closed. An explicit closing point which
// repeats the start of a contour is dropped.
func quadContours(o Outline) [][]ttPoint {
	var contours [][]ttPoint
	var cur []ttPoint
	var pen Point
	flush := func() {
		if len(cur) > 1 && cur[0] == cur[len(cur)-1] {
			cur = cur[:len(cur)-1]
		}
		if len(cur) > 0 {
			contours = append(contours, cur)
		}
		cur = nil
	}
	for _, seg := range o {
		switch seg.Op {
		case MoveTo:
			flush()
			pen = seg.Args[0]
			cur = append(cur, onCurve(pen))
		case LineTo:
			if cur == nil {
				cur = append(cur, onCurve(pen))
			}
			pen = seg.Args[0]
			cur = append(cur, onCurve(pen))
		case QuadTo:
			if cur == nil {
				cur = append(cur, onCurve(pen))
			}
			cur = append(cur, offCurve(seg.Args[0]))
			pen = seg.Args[1]
			cur = append(cur, onCurve(pen))
		case CubeTo:
			if cur == nil {
				cur = append(cur, onCurve(pen))
			}
			p0, c1, c2, p3 := pen, seg.Args[0], seg.Args[1], seg.Args[2]
			// de Casteljau split at t = 0.5
			m01, m12, m23 := p0.lerp(c1, .5), c1.lerp(c2, .5), c2.lerp(p3, .5)
			m012, m123 := m01.lerp(m12, .5), m12.lerp(m23, .5)
			mid := m012.lerp(m123, .5)
			cur = append(cur, offCurve(cubicToQuad(p0, m01, m012, mid)))
			cur = append(cur, onCurve(mid))
			cur = append(cur, offCurve(cubicToQuad(mid, m123, m23, p3)))
			cur = append(cur, onCurve(p3))
			pen = p3
		}
	}
	flush()
	return contours
}

func cubicToQuad(p0, c1, c2, p3 Point) Point {
	return c1.add(c2).scale(3).sub(p0).sub(p3).scale(.25)
}

func onCurve(p Point) ttPoint {
	return ttPoint{X: saturate(p.X), Y: saturate(p.Y), OnCurve: true}
}

func offCurve(p Point) ttPoint {
	return ttPoint{X: saturate(p.X), Y: saturate(p.Y), OnCurve: false}
}

// saturate rounds a design unit coordinate to the int16 range of 'glyf'.
func saturate(v float64) int16 {
	v = math.Round(v)
	if math.IsNaN(v) {
		return 0
	}
	if v > math.MaxInt16 {
		return math.MaxInt16
	}
	if v < math.MinInt16 {
		return math.MinInt16
	}
	return int16(v)
}
