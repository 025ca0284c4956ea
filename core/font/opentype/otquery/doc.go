/*
Package otquery queries metrics and other information from OpenType fonts.

It knows about the various tables contained in OpenType fonts and which ones
to address for queries. The glyph editor uses it to find the vertical metrics
of a font, the code-points it covers, and its names per language.

No font collections nor variable fonts are supported.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package otquery

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'glyphpad.fonts'
func tracer() tracing.Trace {
	return tracing.Select("glyphpad.fonts")
}
