package otquery

import (
	"github.com/npillmayer/glyphpad/core/font/opentype"
	"github.com/npillmayer/glyphpad/core/font/opentype/ot"
	"golang.org/x/image/font/sfnt"
)

// FontMetrics retrieves selected metrics of a font.
//
// Ascent and descent are taken from table 'hhea'. Fonts which leave both at
// zero get them from the typographic values of table 'OS/2'.
func FontMetrics(otf *ot.Font) opentype.FontMetricsInfo {
	metrics := opentype.FontMetricsInfo{}
	if hhea := otf.Table(ot.T("hhea")); hhea != nil {
		b := hhea.Binary()
		metrics.Ascent = sfnt.Units(i16(b[4:]))
		metrics.Descent = sfnt.Units(i16(b[6:]))
		metrics.LineGap = sfnt.Units(i16(b[8:]))
	}
	if metrics.Ascent == 0 && metrics.Descent == 0 {
		if os2 := otf.Table(ot.T("OS/2")); os2 != nil && len(os2.Binary()) >= 72 {
			b := os2.Binary()
			a := sfnt.Units(i16(b[68:]))
			if a > metrics.Ascent {
				tracer().Debugf("override of ascent: %d -> %d", metrics.Ascent, a)
				metrics.Ascent = a
			}
			d := sfnt.Units(i16(b[70:]))
			if d < metrics.Descent {
				tracer().Debugf("override of descent: %d -> %d", metrics.Descent, d)
				metrics.Descent = d
			}
		}
	}
	if head := otf.Table(ot.T("head")); head != nil { // head is a required table
		metrics.UnitsPerEm = sfnt.Units(u16(head.Binary()[18:]))
	}
	return metrics
}

// --- Glyph Routines --------------------------------------------------------

// GlyphIndex returns the glyph index for a give code-point.
// If the code-point cannot be found, 0 is returned.
//
// From the OpenType specification: character codes that do not correspond to any glyph in
// the font should be mapped to glyph index 0. The glyph at this location must be a special
// glyph representing a missing character, commonly known as '.notdef'.
func GlyphIndex(otf *ot.Font, codepoint rune) ot.GlyphIndex {
	return otf.CMap.GlyphIndexMap.Lookup(codepoint)
}

// CodePoints returns every code-point covered by the font, in ascending order.
func CodePoints(otf *ot.Font) []ot.Mapping {
	return otf.CMap.GlyphIndexMap.Mappings()
}

// --- Helpers ----------------------------------------------------------

func u16(b []byte) uint16 {
	return uint16(b[0])<<8 | uint16(b[1])<<0
}

func i16(b []byte) int16 {
	return int16(b[0])<<8 | int16(b[1])<<0
}
