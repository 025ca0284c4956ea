package otquery

import (
	"testing"

	"github.com/npillmayer/glyphpad/core/font"
	"github.com/npillmayer/glyphpad/core/font/opentype/ot"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/suite"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/text/language"
)

// --- Test Suite Preparation ------------------------------------------------

type QueryTestEnviron struct {
	suite.Suite
	otf *ot.Font
}

// listen for 'go test' command --> run test methods
func TestQueryFunctions(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "glyphpad.fonts")
	defer teardown()
	suite.Run(t, new(QueryTestEnviron))
}

// run once, before test suite methods
func (env *QueryTestEnviron) SetupSuite() {
	env.T().Log("Setting up test suite")
	tracing.Select("glyphpad.fonts").SetTraceLevel(tracing.LevelError)
	f := font.FallbackFont()
	otf, err := ot.Parse(f.Binary)
	env.Require().NoError(err)
	otf.F = f
	env.otf = otf
	tracing.Select("glyphpad.fonts").SetTraceLevel(tracing.LevelInfo)
}

// --- Tests -----------------------------------------------------------------

func (env *QueryTestEnviron) TestFontTypeInfo() {
	fti := FontType(env.otf)
	env.Equal("TrueType", fti, "expected font type of test font to be TrueType")
}

func (env *QueryTestEnviron) TestFontMetrics() {
	m := FontMetrics(env.otf)
	ref, err := sfnt.Parse(env.otf.F.Binary)
	env.Require().NoError(err)
	env.Equal(sfnt.Units(ref.UnitsPerEm()), m.UnitsPerEm)
	env.Equal(sfnt.Units(2048), m.UnitsPerEm)
	env.True(m.Ascent > 0, "ascent should be positive")
	env.True(m.Descent < 0, "descent should be negative")
}

func (env *QueryTestEnviron) TestNameInfo() {
	names := NameInfo(env.otf)
	env.Equal("Go", names.Get(sfnt.NameIDFamily, language.English))
	env.Equal("Regular", names.Get(sfnt.NameIDSubfamily, language.English))
	env.Contains(names.Languages(), language.English)
}

func (env *QueryTestEnviron) TestCodePoints() {
	cps := CodePoints(env.otf)
	env.NotEmpty(cps)
	env.Equal(GlyphIndex(env.otf, 'x'), lookup(cps, 'x'))
	env.Equal(ot.GlyphIndex(0), GlyphIndex(env.otf, 0x10FFFD))
}

func TestRecordLanguage(t *testing.T) {
	rec := ot.NameRecord{PlatformID: ot.PlatformWindows, LanguageID: 0x0409}
	if recordLanguage(rec) != language.English {
		t.Errorf("expected LCID 0x409 to map to en, is %v", recordLanguage(rec))
	}
	rec = ot.NameRecord{PlatformID: ot.PlatformMacintosh, LanguageID: 2}
	if recordLanguage(rec) != language.German {
		t.Errorf("expected Mac language 2 to map to de, is %v", recordLanguage(rec))
	}
	rec = ot.NameRecord{PlatformID: ot.PlatformUnicode}
	if recordLanguage(rec) != language.Und {
		t.Errorf("expected Unicode platform to map to und, is %v", recordLanguage(rec))
	}
}

func lookup(cps []ot.Mapping, r rune) ot.GlyphIndex {
	for _, m := range cps {
		if m.CodePoint == r {
			return m.GlyphIndex
		}
	}
	return 0
}
