/*
Package codec converts between font files and the outline data of the glyph
editor.

Parse reads a TrueType or OpenType font into per-code-point outlines in font
design units. Serialize builds a TrueType font from a list of outlines; the
resulting Font may be kept in memory or downloaded to a directory.

Parsing is done with golang.org/x/image/font/sfnt, serialization with
seehuhn.de/go/sfnt.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package codec

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'glyphpad.fonts'.
func tracer() tracing.Trace {
	return tracing.Select("glyphpad.fonts")
}
