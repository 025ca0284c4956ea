/*
Package parameters holds the tunable parameters of the glyph editor.

Parameters are read from a schuko configuration. Every key is optional;
missing or malformed values fall back to the defaults below.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package parameters

import (
	"strconv"
	"strings"
	"time"

	"github.com/npillmayer/schuko"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'glyphpad.editor'.
func tracer() tracing.Trace {
	return tracing.Select("glyphpad.editor")
}

// Configuration keys
const (
	KeyCellSize        = "cell-size"
	KeyViewportWidth   = "viewport-width"
	KeyViewportHeight  = "viewport-height"
	KeyEditingFontSize = "editing-font-size"
	KeySamplingPeriod  = "sampling-period"
	KeyAdvanceWidth    = "advance-width"
	KeyStrokeWidth     = "stroke-width"
	KeyStrokeColor     = "stroke-color"
	KeyOverlayColor    = "overlay-color"
	KeyGuideColor      = "guide-color"
	KeySmoothing       = "smoothing"
	KeyDownloadDir     = "download-dir"
	KeyAppKey          = "app-key"
)

// Names of the two font families the editor registers.
const (
	OriginalFont = "OriginalFont"
	EditingFont  = "EditingFont"
)

// Editor collects the parameters of an editing session.
type Editor struct {
	CellSize        int           // pixel size of a grid cell
	ViewportWidth   int           // pixel width of the cells panel
	ViewportHeight  int           // pixel height of the cells panel
	EditingFontSize int           // editing pixel size E; the canvas is 2E wide
	SamplingPeriod  time.Duration // minimum time between two accepted stroke samples
	AdvanceWidth    int           // advance width of every exported glyph, in font units
	StrokeWidth     float64
	StrokeColor     string // persistent strokes
	OverlayColor    string // in-flight stroke feedback
	GuideColor      string // type box, baseline and background character
	Smoothing       float64
	DownloadDir     string // empty: resolved from the user cache directory
	AppKey          string
}

// Defaults returns the default editor parameters.
func Defaults() Editor {
	return Editor{
		CellSize:        40,
		ViewportWidth:   480,
		ViewportHeight:  320,
		EditingFontSize: 60,
		SamplingPeriod:  20 * time.Millisecond,
		AdvanceWidth:    650,
		StrokeWidth:     4,
		StrokeColor:     "#F08080",
		OverlayColor:    "#FF7F50",
		GuideColor:      "#2D2D2D",
		Smoothing:       0.5,
		AppKey:          "glyphpad",
	}
}

// CanvasSize is the side length of the square editing canvas.
func (e Editor) CanvasSize() int {
	return 2 * e.EditingFontSize
}

// FromConfig reads editor parameters from conf. conf may be nil, in which
// case the defaults are returned.
func FromConfig(conf schuko.Configuration) Editor {
	p := Defaults()
	if conf == nil {
		return p
	}
	p.CellSize = positiveInt(conf, KeyCellSize, p.CellSize)
	p.ViewportWidth = positiveInt(conf, KeyViewportWidth, p.ViewportWidth)
	p.ViewportHeight = positiveInt(conf, KeyViewportHeight, p.ViewportHeight)
	p.EditingFontSize = positiveInt(conf, KeyEditingFontSize, p.EditingFontSize)
	p.AdvanceWidth = positiveInt(conf, KeyAdvanceWidth, p.AdvanceWidth)
	if s := value(conf, KeySamplingPeriod); s != "" {
		if d, err := time.ParseDuration(s); err == nil && d >= 0 {
			p.SamplingPeriod = d
		} else {
			tracer().Errorf("ignoring malformed %s = %q", KeySamplingPeriod, s)
		}
	}
	p.StrokeWidth = positiveFloat(conf, KeyStrokeWidth, p.StrokeWidth)
	p.Smoothing = positiveFloat(conf, KeySmoothing, p.Smoothing)
	p.StrokeColor = stringOr(conf, KeyStrokeColor, p.StrokeColor)
	p.OverlayColor = stringOr(conf, KeyOverlayColor, p.OverlayColor)
	p.GuideColor = stringOr(conf, KeyGuideColor, p.GuideColor)
	p.DownloadDir = stringOr(conf, KeyDownloadDir, p.DownloadDir)
	p.AppKey = stringOr(conf, KeyAppKey, p.AppKey)
	return p
}

// --- Helpers ---------------------------------------------------------------

func value(conf schuko.Configuration, key string) string {
	return strings.TrimSpace(conf.GetString(key))
}

func stringOr(conf schuko.Configuration, key, dflt string) string {
	if s := value(conf, key); s != "" {
		return s
	}
	return dflt
}

func positiveInt(conf schuko.Configuration, key string, dflt int) int {
	s := value(conf, key)
	if s == "" {
		return dflt
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		tracer().Errorf("ignoring malformed %s = %q", key, s)
		return dflt
	}
	return n
}

func positiveFloat(conf schuko.Configuration, key string, dflt float64) float64 {
	s := value(conf, key)
	if s == "" {
		return dflt
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f <= 0 {
		tracer().Errorf("ignoring malformed %s = %q", key, s)
		return dflt
	}
	return f
}
