/*
Package glyphs is the in-memory model of a font under edit.

A FontCollection holds a font's metadata, its vertical metrics and a table of
glyph records ordered by code point. A glyph record combines the outline of
the loaded font (if the code point exists there) with the strokes the user
has drawn for it. Records for code points outside the loaded font are
created on demand.

At export time, the collection is walked in code point order and assembled
into a request for the font serializer of package codec.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package glyphs

import "github.com/npillmayer/schuko/tracing"

// tracer traces with key 'glyphpad.editor'.
func tracer() tracing.Trace {
	return tracing.Select("glyphpad.editor")
}
