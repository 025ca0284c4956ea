/*
Package fontregistry manages the font resources which are live during an
editing session.

A font resource is a named font made loadable for rendering: the font's data
is written to a temporary file (the analogue of a browser's object URL, which
is what an exported font is handed around as) and parsed into a font source
for drawing text. The glyph editor uses two names, one for the font the user
loaded and one for the latest preview of the edited font.

At most one resource per name may be live at any time. Acquiring a name
always releases the previous resource of that name first, and a session
releases every resource when it is torn down.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package fontregistry

import "github.com/npillmayer/schuko/tracing"

// tracer writes to trace with key 'glyphpad.fonts'
func tracer() tracing.Trace {
	return tracing.Select("glyphpad.fonts")
}
