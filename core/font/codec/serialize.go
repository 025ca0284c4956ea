package codec

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"github.com/npillmayer/glyphpad/core"
	"github.com/npillmayer/glyphpad/core/font"
	"github.com/npillmayer/glyphpad/core/locate/resources"
	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/postscript/funit"
	"seehuhn.de/go/sfnt"
	"seehuhn.de/go/sfnt/cmap"
	"seehuhn.de/go/sfnt/glyf"
	"seehuhn.de/go/sfnt/glyph"
	"seehuhn.de/go/sfnt/maxp"
	"seehuhn.de/go/sfnt/os2"
)

// NotdefName is the name of the placeholder glyph every font starts with.
const NotdefName = ".notdef"

// ExportGlyph is an entry of the glyph list of an ExportRequest.
type ExportGlyph struct {
	Name         string
	Unicode      rune // 0 for .notdef
	AdvanceWidth int
	Outline      Outline
}

// ExportRequest describes a font to serialize.
type ExportRequest struct {
	FamilyName string
	StyleName  string
	UnitsPerEm int
	Ascender   int
	Descender  int
	Glyphs     []ExportGlyph // the first glyph is expected to be .notdef
}

// Font is a serialized TrueType font.
type Font struct {
	Family string
	data   []byte
}

// Bytes returns the binary font data. Clients must not modify it.
func (f *Font) Bytes() []byte {
	return f.data
}

// Download writes the font to directory dir as "<family>.ttf" and returns the
// path of the file. dir is created if it does not exist.
func (f *Font) Download(dir string) (string, error) {
	if _, err := resources.EnsureDir(dir); err != nil {
		return "", err
	}
	name := font.NormalizeFontname(f.Family)
	if name == "" {
		name = "untitled"
	}
	path := filepath.Join(dir, name+".ttf")
	if err := os.WriteFile(path, f.data, 0644); err != nil {
		return "", core.WrapError(err, core.EEXPORT, "cannot write font file %s", path)
	}
	tracer().Infof("font %q saved as %s", f.Family, path)
	return path, nil
}

// Serialize builds a TrueType font from req. Outlines are converted to
// quadratic contours, with coordinates saturated to the int16 range of the
// 'glyf' table. Code-points beyond the Basic Multilingual Plane keep their
// glyphs, but are not entered into the format 4 character map.
func Serialize(req ExportRequest) (*Font, error) {
	if req.UnitsPerEm <= 0 || req.UnitsPerEm > 16384 {
		return nil, core.Error(core.EEXPORT, "units per em out of range: %d", req.UnitsPerEm)
	}
	if len(req.Glyphs) == 0 || req.Glyphs[0].Name != NotdefName {
		req.Glyphs = append([]ExportGlyph{{Name: NotdefName}}, req.Glyphs...)
	}
	upem := float64(req.UnitsPerEm)
	now := time.Now()
	bold, italic := styleFlags(req.StyleName)
	info := &sfnt.Font{
		FamilyName:       req.FamilyName,
		Weight:           os2.WeightNormal,
		Width:            os2.WidthNormal,
		IsBold:           bold,
		IsItalic:         italic,
		IsRegular:        !bold && !italic,
		Version:          0x00010000, // version 1.0
		CreationTime:     now,
		ModificationTime: now,
		PermUse:          os2.PermInstall,
		UnitsPerEm:       uint16(req.UnitsPerEm),
		Ascent:           funit.Int16(saturate(float64(req.Ascender))),
		Descent:          funit.Int16(saturate(float64(req.Descender))),
		FontMatrix:       matrix.Matrix{1 / upem, 0, 0, 1 / upem, 0, 0},
	}
	if bold {
		info.Weight = os2.WeightBold
	}
	outlines := &glyf.Outlines{
		Glyphs: make(glyf.Glyphs, len(req.Glyphs)),
		Widths: make([]funit.Int16, len(req.Glyphs)),
		Names:  make([]string, len(req.Glyphs)),
		Maxp:   &maxp.TTFInfo{MaxZones: 2},
	}
	sub := cmap.Format4{}
	for i, g := range req.Glyphs {
		outlines.Widths[i] = funit.Int16(saturate(float64(g.AdvanceWidth)))
		outlines.Names[i] = postScriptName(g, i)
		contours := quadContours(g.Outline)
		if len(contours) > 0 {
			su := &glyf.SimpleUnpacked{Contours: make([]glyf.Contour, len(contours))}
			points := 0
			for c, contour := range contours {
				su.Contours[c] = make(glyf.Contour, len(contour))
				for p, pt := range contour {
					su.Contours[c][p] = glyf.Point{
						X:       funit.Int16(pt.X),
						Y:       funit.Int16(pt.Y),
						OnCurve: pt.OnCurve,
					}
				}
				points += len(contour)
			}
			tg := su.AsGlyph()
			outlines.Glyphs[i] = &tg
			if np := uint16(min(points, 0xffff)); np > outlines.Maxp.MaxPoints {
				outlines.Maxp.MaxPoints = np
			}
			if nc := uint16(min(len(contours), 0xffff)); nc > outlines.Maxp.MaxContours {
				outlines.Maxp.MaxContours = nc
			}
		}
		if i > 0 && g.Unicode > 0 && g.Unicode <= 0xffff {
			sub[uint16(g.Unicode)] = glyph.ID(i)
		} else if g.Unicode > 0xffff {
			tracer().Debugf("U+%04X not entered into cmap", g.Unicode)
		}
	}
	info.Outlines = outlines
	info.CMapTable = cmap.Table{
		{PlatformID: 0, EncodingID: 3}: sub.Encode(0), // Unicode BMP
		{PlatformID: 3, EncodingID: 1}: sub.Encode(0), // Windows Unicode BMP, language 0
	}
	var out bytes.Buffer
	if _, err := info.Write(&out); err != nil {
		return nil, core.WrapError(err, core.EEXPORT, "font cannot be serialized: %v", err)
	}
	tracer().Infof("serialized font %q with %d glyphs, %d bytes", req.FamilyName,
		len(req.Glyphs), out.Len())
	return &Font{Family: req.FamilyName, data: out.Bytes()}, nil
}

// postScriptName returns g.Name if it is usable in a 'post' table, and a
// uniXXXX style name otherwise.
func postScriptName(g ExportGlyph, inx int) string {
	if inx == 0 {
		return NotdefName
	}
	usable := g.Name != ""
	for _, r := range g.Name {
		if r > unicode.MaxASCII || !(unicode.IsLetter(r) || unicode.IsDigit(r) || r == '.' || r == '_') {
			usable = false
			break
		}
	}
	if usable && !unicode.IsDigit([]rune(g.Name)[0]) {
		return g.Name
	}
	if g.Unicode <= 0xffff {
		return fmt.Sprintf("uni%04X", g.Unicode)
	}
	return fmt.Sprintf("u%X", g.Unicode)
}

func styleFlags(style string) (bold, italic bool) {
	s := strings.ToLower(style)
	bold = strings.Contains(s, "bold") || strings.Contains(s, "black") || strings.Contains(s, "heavy")
	italic = strings.Contains(s, "italic") || strings.Contains(s, "oblique")
	return
}
