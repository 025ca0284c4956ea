/*
Package stroke captures free-hand strokes and renders them smoothly.

A stroke is the sequence of timestamped pointer samples of one gesture, from
pointer-down to pointer-up. Samples are throttled by a sampling period. While
a gesture is in progress, every accepted sample is drawn as a straight line
on an overlay surface. When the gesture ends, the overlay is cleared and the
complete stroke is drawn as a smooth curve on the persistent surface.

Smoothing is a rendering concern only. Strokes keep their raw samples, and
glyph outlines are compiled from straight lines between them.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package stroke

import "github.com/npillmayer/schuko/tracing"

// tracer traces with key 'glyphpad.editor'.
func tracer() tracing.Trace {
	return tracing.Select("glyphpad.editor")
}
