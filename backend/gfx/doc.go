/*
Package gfx defines the drawing surfaces of the glyph editor.

The editor never reads pixels back. It issues drawing commands to a Surface,
which relays them to a concrete graphics implementation (see package
ggadapter), or records them for inspection (see DebuggingSurface).

The editing canvas is made of four layers, from bottom to top: the type box
guides, the background character of the original font, the persistent
strokes and the overlay showing a stroke while it is being written.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package gfx

import "github.com/npillmayer/schuko/tracing"

// tracer traces with key 'glyphpad.gfx'.
func tracer() tracing.Trace {
	return tracing.Select("glyphpad.gfx")
}
