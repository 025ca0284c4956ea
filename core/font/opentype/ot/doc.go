/*
Package ot provides access to the raw tables of an OpenType font.

Package `ot` will not interpret outlines or layout features. It exposes the
table directory of a font and decodes the two tables the glyph editor needs
in more detail than package golang.org/x/image/font/sfnt offers:

▪︎ 'cmap': the complete set of code-points covered by a font (sfnt only supports
lookups for single code-points);

▪︎ 'name': every name record, together with its platform and language, instead of
a single preferred string per name ID.

Other tables are kept as byte slices and may be accessed with `Font.Table`.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package ot

import (
	"github.com/npillmayer/glyphpad/core"
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'glyphpad.fonts'
func tracer() tracing.Trace {
	return tracing.Select("glyphpad.fonts")
}

// errFontFormat produces user level errors for font parsing.
func errFontFormat(x string) error {
	return core.Error(core.EINVALID, "OpenType font format: %s", x)
}
