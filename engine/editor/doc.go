/*
Package editor implements the operations of the hand-writing glyph editor.

An Editor owns the drawing layers, the live font resources and the editor
parameters. Loading a font creates a Session, which holds the font under
edit, the type box, the code point grid and the stroke capture. A session
is replaced as a whole by the next load, and only after the new font has
been read and parsed successfully.

All operations are synchronous and must be called from a single goroutine.
The only exception is reading a font's bytes, which happens in a separate
goroutine and never touches the session.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package editor

import "github.com/npillmayer/schuko/tracing"

// tracer traces with key 'glyphpad.editor'.
func tracer() tracing.Trace {
	return tracing.Select("glyphpad.editor")
}
