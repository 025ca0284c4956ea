package codec

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/npillmayer/glyphpad/core"
	"github.com/npillmayer/glyphpad/core/font/opentype/ot"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/sfnt"
)

func TestParseGoRegular(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "glyphpad.fonts")
	defer teardown()
	//
	pf, err := Parse(goregular.TTF)
	require.NoError(t, err)
	assert.Equal(t, 2048, pf.UnitsPerEm)
	assert.True(t, pf.Ascender > 0)
	assert.True(t, pf.Descender < 0)
	a, ok := pf.Glyphs['A']
	require.True(t, ok, "expected glyph for 'A'")
	assert.Equal(t, "A", a.Name)
	assert.False(t, a.Outline.Empty())
	assert.True(t, a.Advance > 0)
	// y axis points up: the apex of 'A' lies above the baseline
	maxY := 0.0
	for _, seg := range a.Outline {
		for _, p := range seg.Args {
			if p.Y > maxY {
				maxY = p.Y
			}
		}
	}
	assert.True(t, maxY > 1000, "apex of A should be well above baseline, is %g", maxY)
	space, ok := pf.Glyphs[' ']
	require.True(t, ok)
	assert.True(t, space.Outline.Empty())
}

func TestParseMalformed(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "glyphpad.fonts")
	defer teardown()
	//
	_, err := Parse([]byte("not a font at all"))
	require.Error(t, err)
	assert.Equal(t, core.EINVALID, core.Code(err))
	_, err = Parse(goregular.TTF[:len(goregular.TTF)/3])
	require.Error(t, err)
	assert.Equal(t, core.EINVALID, core.Code(err))
}

func TestCubicToQuad(t *testing.T) {
	o := Outline{
		{Op: MoveTo, Args: [3]Point{{0, 0}}},
		{Op: CubeTo, Args: [3]Point{{0, 100}, {100, 100}, {100, 0}}},
	}
	contours := quadContours(o)
	require.Len(t, contours, 1)
	c := contours[0]
	require.Len(t, c, 5)
	assert.Equal(t, ttPoint{0, 0, true}, c[0])
	assert.False(t, c[1].OnCurve)
	assert.Equal(t, ttPoint{50, 75, true}, c[2]) // curve midpoint
	assert.False(t, c[3].OnCurve)
	assert.Equal(t, ttPoint{100, 0, true}, c[4])
}

func TestClosedContourDropsDuplicate(t *testing.T) {
	o := Outline{
		{Op: MoveTo, Args: [3]Point{{0, 0}}},
		{Op: LineTo, Args: [3]Point{{10, 0}}},
		{Op: LineTo, Args: [3]Point{{10, 10}}},
		{Op: LineTo, Args: [3]Point{{0, 0}}},
		{Op: MoveTo, Args: [3]Point{{50, 50}}},
		{Op: LineTo, Args: [3]Point{{60, 60}}},
	}
	contours := quadContours(o)
	require.Len(t, contours, 2)
	assert.Len(t, contours[0], 3)
	assert.Len(t, contours[1], 2)
	assert.Equal(t, 2, o.Contours())
}

func TestSaturate(t *testing.T) {
	assert.Equal(t, int16(3), saturate(2.5))
	assert.Equal(t, int16(-3), saturate(-2.5))
	assert.Equal(t, int16(32767), saturate(1e9))
	assert.Equal(t, int16(-32768), saturate(-1e9))
}

func TestSerializeAndReparse(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "glyphpad.fonts")
	defer teardown()
	//
	stroke := Outline{
		{Op: MoveTo, Args: [3]Point{{100, 0}}},
		{Op: LineTo, Args: [3]Point{{300, 700}}},
		{Op: LineTo, Args: [3]Point{{500, 0}}},
	}
	req := ExportRequest{
		FamilyName: "Handwritten",
		StyleName:  "Regular",
		UnitsPerEm: 1000,
		Ascender:   800,
		Descender:  -200,
		Glyphs: []ExportGlyph{
			{Name: NotdefName, AdvanceWidth: 650},
			{Name: "A", Unicode: 'A', AdvanceWidth: 650, Outline: stroke},
			{Name: "ä", Unicode: 'ä', AdvanceWidth: 650, Outline: stroke},
		},
	}
	f, err := Serialize(req)
	require.NoError(t, err)
	require.NotEmpty(t, f.Bytes())
	//
	xf, err := sfnt.Parse(f.Bytes())
	require.NoError(t, err)
	assert.Equal(t, 3, xf.NumGlyphs())
	var buf sfnt.Buffer
	gid, err := xf.GlyphIndex(&buf, 'A')
	require.NoError(t, err)
	assert.Equal(t, sfnt.GlyphIndex(1), gid)
	//
	pf, err := Parse(f.Bytes())
	require.NoError(t, err)
	assert.Equal(t, 1000, pf.UnitsPerEm)
	require.Contains(t, pf.Glyphs, 'A')
	assert.Equal(t, 650.0, pf.Glyphs['A'].Advance)
	assert.Equal(t, "uni00E4", pf.Glyphs['ä'].Name)
	found := false
	for _, name := range pf.Names[sfnt.NameIDFamily] {
		found = found || name == "Handwritten"
	}
	assert.True(t, found, "family name should survive serialization")
}

func TestSerializeMaxpLimits(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "glyphpad.fonts")
	defer teardown()
	//
	two := Outline{
		{Op: MoveTo, Args: [3]Point{{0, 0}}},
		{Op: LineTo, Args: [3]Point{{100, 100}}},
		{Op: LineTo, Args: [3]Point{{200, 0}}},
		{Op: MoveTo, Args: [3]Point{{0, 300}}},
		{Op: LineTo, Args: [3]Point{{200, 300}}},
	}
	f, err := Serialize(ExportRequest{
		FamilyName: "Limits", UnitsPerEm: 1000, Ascender: 800, Descender: -200,
		Glyphs: []ExportGlyph{{Name: "x", Unicode: 'x', AdvanceWidth: 650, Outline: two}},
	})
	require.NoError(t, err)
	otf, err := ot.Parse(f.Bytes())
	require.NoError(t, err)
	maxp := otf.Table(ot.T("maxp"))
	require.NotNil(t, maxp)
	b := maxp.Binary()
	require.True(t, len(b) >= 10)
	assert.Equal(t, uint16(5), binary.BigEndian.Uint16(b[6:]), "maxPoints")
	assert.Equal(t, uint16(2), binary.BigEndian.Uint16(b[8:]), "maxContours")
}

func TestSerializeRejectsBadUnits(t *testing.T) {
	_, err := Serialize(ExportRequest{FamilyName: "X", UnitsPerEm: 0})
	assert.Equal(t, core.EEXPORT, core.Code(err))
}

func TestDownload(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "glyphpad.fonts")
	defer teardown()
	//
	f := &Font{Family: "My Font", data: []byte{1, 2, 3}}
	dir := filepath.Join(t.TempDir(), "out")
	path, err := f.Download(dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "my_font.ttf"), path)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3}, data)
}

func TestPostScriptNames(t *testing.T) {
	assert.Equal(t, NotdefName, postScriptName(ExportGlyph{Name: "A"}, 0))
	assert.Equal(t, "A", postScriptName(ExportGlyph{Name: "A", Unicode: 'A'}, 1))
	assert.Equal(t, "uni0031", postScriptName(ExportGlyph{Name: "1", Unicode: '1'}, 1))
	assert.Equal(t, "uni0020", postScriptName(ExportGlyph{Name: " ", Unicode: ' '}, 1))
	assert.Equal(t, "u1F600", postScriptName(ExportGlyph{Name: "😀", Unicode: 0x1F600}, 1))
}
