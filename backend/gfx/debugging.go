package gfx

import (
	"fmt"
	"strings"
)

// Op is a drawing command recorded by a DebuggingSurface.
type Op struct {
	Name string
	Args []float64
	Text string // text, colour or font family, depending on the command
}

func (op Op) String() string {
	var b strings.Builder
	b.WriteString(op.Name)
	if op.Text != "" {
		fmt.Fprintf(&b, " %q", op.Text)
	}
	for _, a := range op.Args {
		fmt.Fprintf(&b, " %g", a)
	}
	return b.String()
}

// DebuggingSurface is a surface which records every command it receives.
type DebuggingSurface struct {
	Ops []Op
}

var _ Surface = &DebuggingSurface{}

// NewDebuggingSurface creates an empty recording surface.
func NewDebuggingSurface() *DebuggingSurface {
	return &DebuggingSurface{}
}

func (ds *DebuggingSurface) record(name, text string, args ...float64) {
	op := Op{Name: name, Text: text, Args: args}
	tracer().Debugf("surface: %s", op)
	ds.Ops = append(ds.Ops, op)
}

// Reset forgets all recorded commands.
func (ds *DebuggingSurface) Reset() {
	ds.Ops = ds.Ops[:0]
}

// Count returns how many commands with a given name have been recorded.
func (ds *DebuggingSurface) Count(name string) int {
	n := 0
	for _, op := range ds.Ops {
		if op.Name == name {
			n++
		}
	}
	return n
}

// Last returns the latest command with a given name.
func (ds *DebuggingSurface) Last(name string) (Op, bool) {
	for i := len(ds.Ops) - 1; i >= 0; i-- {
		if ds.Ops[i].Name == name {
			return ds.Ops[i], true
		}
	}
	return Op{}, false
}

func (ds *DebuggingSurface) ClearRect(x, y, w, h float64) {
	ds.record("ClearRect", "", x, y, w, h)
}

func (ds *DebuggingSurface) SetStrokeStyle(color string, width float64) {
	ds.record("SetStrokeStyle", color, width)
}

func (ds *DebuggingSurface) SetDash(pattern ...float64) {
	ds.record("SetDash", "", pattern...)
}

func (ds *DebuggingSurface) FillText(s string, font Font, color string, x, y float64) {
	ds.record("FillText", s, x, y, font.Size)
}

func (ds *DebuggingSurface) BeginPath() {
	ds.record("BeginPath", "")
}

func (ds *DebuggingSurface) MoveTo(x, y float64) {
	ds.record("MoveTo", "", x, y)
}

func (ds *DebuggingSurface) LineTo(x, y float64) {
	ds.record("LineTo", "", x, y)
}

func (ds *DebuggingSurface) CubicTo(c1x, c1y, c2x, c2y, x, y float64) {
	ds.record("CubicTo", "", c1x, c1y, c2x, c2y, x, y)
}

func (ds *DebuggingSurface) Stroke() {
	ds.record("Stroke", "")
}
