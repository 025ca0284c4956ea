/*
Package opentype handles OpenType fonts.

Sub-package ot gives access to raw OpenType tables, sub-package otquery
answers queries about a font by consulting those tables.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package opentype

import (
	"golang.org/x/image/font/sfnt"
)

// --- Font metrics ----------------------------------------------------------

// FontMetricsInfo contains selected metric information for a font.
type FontMetricsInfo struct {
	UnitsPerEm      sfnt.Units // ad-hoc units per em
	Ascent, Descent sfnt.Units // ascender and descender; descender usually negative
	LineGap         sfnt.Units // typographic line gap
}

// Height is the vertical extent from descender to ascender.
func (m FontMetricsInfo) Height() sfnt.Units {
	return m.Ascent - m.Descent
}
