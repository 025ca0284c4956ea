package stroke

import (
	"time"

	"github.com/npillmayer/glyphpad/backend/gfx"
)

// State is the state of a Capture.
type State int

// Capture states
const (
	Idle State = iota
	Writing
)

func (st State) String() string {
	if st == Writing {
		return "writing"
	}
	return "idle"
}

// Style holds the drawing parameters of a Capture.
type Style struct {
	Color        string // persistent strokes
	OverlayColor string // stroke in flight
	Width        float64
	Smoothing    float64
	CanvasSize   int
}

// Capture records the samples of one gesture at a time.
type Capture struct {
	period     time.Duration
	overlay    gfx.Surface
	persistent gfx.Surface
	style      Style
	state      State
	current    Stroke
	last       time.Time // time of the latest accepted sample
}

// NewCapture creates a capture drawing in-flight strokes to overlay and
// finished strokes to persistent. Moves are accepted no more often than once
// per sampling period.
func NewCapture(period time.Duration, overlay, persistent gfx.Surface, style Style) *Capture {
	return &Capture{
		period:     period,
		overlay:    overlay,
		persistent: persistent,
		style:      style,
	}
}

// State returns the current state of c.
func (c *Capture) State() State {
	return c.state
}

// Current returns the samples of the gesture in progress.
func (c *Capture) Current() Stroke {
	return c.current
}

// Down starts a new gesture. A gesture still in progress is abandoned.
func (c *Capture) Down(x, y float64, at time.Time) {
	if c.state == Writing {
		tracer().Infof("pointer down while writing, abandoning %d samples", len(c.current))
	}
	c.state = Writing
	c.current = Stroke{{X: x, Y: y, At: at}}
	c.last = at
	c.overlay.SetStrokeStyle(c.style.OverlayColor, c.style.Width)
	c.persistent.SetStrokeStyle(c.style.Color, c.style.Width)
}

// Move adds a sample to the gesture in progress and draws it on the overlay.
// It returns false if the sample is not accepted: when no gesture is in
// progress, when less than the sampling period has passed since the previous
// sample, or when at lies before the previous sample.
func (c *Capture) Move(x, y float64, at time.Time) bool {
	if c.state != Writing {
		return false
	}
	if at.Before(c.last) {
		tracer().Debugf("rejecting sample out of time order")
		return false
	}
	if at.Sub(c.last) < c.period {
		return false
	}
	prev := c.current[len(c.current)-1]
	c.current = append(c.current, Sample{X: x, Y: y, At: at})
	c.last = at
	c.overlay.BeginPath()
	c.overlay.MoveTo(prev.X, prev.Y)
	c.overlay.LineTo(x, y)
	c.overlay.Stroke()
	return true
}

// Up finishes the gesture in progress. The overlay is cleared and the smoothed
// stroke is drawn to the persistent surface. Up returns the stroke, or false
// if no gesture was in progress.
func (c *Capture) Up() (Stroke, bool) {
	if c.state != Writing {
		return nil, false
	}
	st := c.current
	c.state = Idle
	c.current = nil
	size := float64(c.style.CanvasSize)
	c.overlay.ClearRect(0, 0, size, size)
	Render(c.persistent, []Stroke{st}, c.style.Smoothing)
	tracer().Debugf("stroke finished with %d samples", len(st))
	return st, true
}

// Cancel finishes the gesture in progress exactly like Up does.
func (c *Capture) Cancel() (Stroke, bool) {
	return c.Up()
}
