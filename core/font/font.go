/*
Package font is for loading fonts from files or byte slices.

A "scalable font" is a font file parsed into an in-memory structure, without
any size or rendering options applied. Loading a font does not yet interpret
its outlines; package codec does this for the glyph editor, package
opentype/ot gives access to raw OpenType tables.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package font

import (
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/npillmayer/glyphpad/core"
	"github.com/npillmayer/schuko/tracing"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/sfnt"
)

// tracer traces with key 'glyphpad.fonts'.
func tracer() tracing.Trace {
	return tracing.Select("glyphpad.fonts")
}

// ScalableFont is a parsed font, not yet scaled to any size.
type ScalableFont struct {
	Fontname string
	Filepath string     // file path, empty for fonts created from bytes
	Binary   []byte     // raw data
	SFNT     *sfnt.Font // the font's container; not safe for concurrent use
}

// LoadOpenTypeFont reads and parses a font file.
func LoadOpenTypeFont(fontfile string) (*ScalableFont, error) {
	bytez, err := os.ReadFile(fontfile)
	if err != nil {
		return nil, core.WrapError(err, core.EMISSING, "cannot read font file %s", fontfile)
	}
	f, err := ParseOpenTypeFont(bytez)
	if err != nil {
		return nil, err
	}
	f.Filepath = fontfile
	if f.Fontname == "" {
		f.Fontname = filepath.Base(fontfile)
	}
	return f, nil
}

// ParseOpenTypeFont parses raw font data. A malformed font results in an
// error with code core.EINVALID.
func ParseOpenTypeFont(fbytes []byte) (f *ScalableFont, err error) {
	f = &ScalableFont{Binary: fbytes}
	f.SFNT, err = sfnt.Parse(f.Binary)
	if err != nil {
		tracer().Infof("font data rejected: %v", err)
		return nil, core.WrapError(err, core.EINVALID, "font file is malformed: %v", err)
	}
	f.Fontname, _ = f.SFNT.Name(nil, sfnt.NameIDFull)
	return
}

// --- Fallback font ---------------------------------------------------------

// FallbackFont returns a font to be used if everything else failes. It is
// always present. Currently we use Go Sans.
func FallbackFont() *ScalableFont {
	fallbackFontLoading.Do(func() {
		fallbackFont = loadFallbackFont()
	})
	return fallbackFont
}

var fallbackFontLoading sync.Once

// fallbackFont is a font that is used if everything else failes.
// Currently we use Go Sans.
var fallbackFont *ScalableFont

func loadFallbackFont() *ScalableFont {
	var err error
	gofont := &ScalableFont{
		Fontname: "Go Sans",
		Filepath: "internal",
		Binary:   goregular.TTF,
	}
	gofont.SFNT, err = sfnt.Parse(gofont.Binary)
	if err != nil {
		panic("cannot load default font") // this cannot happen
	}
	return gofont
}

// ---------------------------------------------------------------------------

// NormalizeFontname strips a font name from its file extension and replaces
// blanks, returning a lowercase name suitable for file names and map keys.
func NormalizeFontname(fname string) string {
	fname = strings.TrimSpace(fname)
	fname = strings.ReplaceAll(fname, " ", "_")
	fname = strings.ReplaceAll(fname, string(filepath.Separator), "_")
	if dot := strings.LastIndex(fname, "."); dot > 0 {
		fname = fname[:dot]
	}
	fname = strings.ToLower(fname)
	return fname
}
