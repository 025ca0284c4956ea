package grid

import (
	"testing"
	"unicode"

	"github.com/npillmayer/glyphpad/core"
	"github.com/npillmayer/glyphpad/engine/glyphs"
	"github.com/npillmayer/glyphpad/engine/typebox"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/suite"
)

type recorder struct {
	activated []rune
	forced    int
}

func (r *recorder) Activate(cell *Cell, force bool) {
	r.activated = append(r.activated, cell.CodePoint)
	if force {
		r.forced++
	}
}

func (r *recorder) last() rune {
	if len(r.activated) == 0 {
		return -1
	}
	return r.activated[len(r.activated)-1]
}

// --- Test Suite Preparation ------------------------------------------------

type GridTestEnviron struct {
	suite.Suite
	table *glyphs.FontCollection
	rec   *recorder
	grid  *Grid
}

func TestGrid(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "glyphpad.editor")
	defer teardown()
	suite.Run(t, new(GridTestEnviron))
}

// run before every test: a 5 × 5 grid
func (env *GridTestEnviron) SetupTest() {
	env.table = glyphs.NewCollection(nil, typebox.Metrics{Ascender: 800, Descender: -200, UnitsPerEm: 1000})
	env.rec = &recorder{}
	env.grid = New(env.table, env.rec)
	env.grid.Resize(200, 219, 40)
}

func (env *GridTestEnviron) assertWindowConsistent() {
	g := env.grid
	for _, c := range g.Cells() {
		env.Equal(c.Col+c.Row*g.Width(), c.ID)
		env.Equal(g.Start()+rune(c.ID), c.CodePoint, "cell %d", c.ID)
	}
}

func rp(r rune) *rune { return &r }

// --- Tests -----------------------------------------------------------------

func (env *GridTestEnviron) TestResize() {
	env.Equal(5, env.grid.Width())
	env.Equal(5, env.grid.Height())
	env.Len(env.grid.Cells(), 25)
	env.Nil(env.grid.Active())
	env.grid.Update(nil, nil)
	env.NotNil(env.grid.Active())
	env.grid.Resize(120, 80, 40)
	env.Nil(env.grid.Active(), "resize invalidates the active cell")
	env.Equal(6, len(env.grid.Cells()))
	env.assertWindowConsistent()
	env.Nil(env.grid.Cell(3, 0))
	env.Equal(rune(5), env.grid.Cell(2, 1).CodePoint)
}

func (env *GridTestEnviron) TestUpdateDefaults() {
	env.grid.Update(nil, nil)
	env.Equal(rune(0), env.grid.Start())
	env.Equal(rune(0), env.grid.Active().CodePoint)
	env.Equal([]rune{0}, env.rec.activated)
	env.grid.Update(rp(100), nil)
	env.Equal(rune(100), env.grid.Active().CodePoint)
	env.Equal(rune(125), env.grid.End())
	env.assertWindowConsistent()
}

func (env *GridTestEnviron) TestLazyRecords() {
	env.Equal(0, env.table.Len())
	env.grid.Update(rp(1000), nil)
	env.Equal(25, env.table.Len())
	_, ok := env.table.Glyph(1024)
	env.True(ok)
	_, ok = env.table.Glyph(1025)
	env.False(ok)
}

func (env *GridTestEnviron) TestResizeCreatesNoRecords() {
	env.grid.Update(nil, rp(5000))
	env.Equal(25, env.table.Len())
	env.grid.Resize(200, 200, 40)
	env.Equal(25, env.table.Len())
	_, ok := env.table.Glyph(3)
	env.False(ok, "no records for the initial window")
}

func (env *GridTestEnviron) TestSelectionStopsAtMaxRune() {
	env.grid.Update(nil, rp(unicode.MaxRune))
	env.Equal(rune(unicode.MaxRune), env.grid.Active().CodePoint)
	n := len(env.rec.activated)
	env.grid.NextWord()
	env.Equal(rune(unicode.MaxRune), env.grid.Active().CodePoint)
	env.Len(env.rec.activated, n)
	env.grid.SelectCell(&env.grid.Cells()[len(env.grid.Cells())-1], true)
	env.Equal(rune(unicode.MaxRune), env.grid.Active().CodePoint)
	env.Len(env.rec.activated, n)
	env.table.Each(func(r *glyphs.GlyphRecord) {
		env.LessOrEqual(r.CodePoint, rune(unicode.MaxRune))
	})
}

func (env *GridTestEnviron) TestCentering() {
	env.grid.Update(nil, rp(100))
	env.Equal(rune(88), env.grid.Start())
	env.Equal(rune(100), env.grid.Active().CodePoint)
	env.Equal(12, env.grid.Active().ID)
	env.grid.Update(nil, rp(5))
	env.Equal(rune(0), env.grid.Start())
	env.Equal(rune(5), env.grid.Active().CodePoint)
	env.assertWindowConsistent()
}

func (env *GridTestEnviron) TestPagingRoundTrip() {
	env.grid.Update(rp(50), nil)
	env.grid.NextPage()
	env.Equal(rune(75), env.grid.Start())
	env.assertWindowConsistent()
	env.grid.PrePage()
	env.Equal(rune(50), env.grid.Start())
	env.Equal(rune(50), env.grid.Active().CodePoint)
	env.assertWindowConsistent()
}

func (env *GridTestEnviron) TestPrePageAtZero() {
	env.grid.Update(nil, nil)
	n := len(env.rec.activated)
	env.grid.PrePage()
	env.Equal(rune(0), env.grid.Start())
	env.Len(env.rec.activated, n, "no re-selection at the lower boundary")
	env.grid.Update(rp(10), nil)
	env.grid.PrePage()
	env.Equal(rune(0), env.grid.Start(), "paging back clamps at 0")
}

func (env *GridTestEnviron) TestNextPageAtUpperBoundary() {
	last := rune(unicode.MaxRune - 10)
	env.grid.Update(&last, nil)
	env.grid.NextPage()
	env.Equal(last, env.grid.Start())
	for _, c := range env.grid.Cells() {
		if c.CodePoint > unicode.MaxRune {
			env.Empty(c.Char)
		}
	}
}

func (env *GridTestEnviron) TestWordNavigation() {
	env.grid.NextWord()
	env.Equal(rune(0), env.rec.last(), "without an active cell, the first cell is selected")
	env.grid.NextWord()
	env.Equal(rune(1), env.rec.last())
	for i := 0; i < 23; i++ {
		env.grid.NextWord()
	}
	env.Equal(rune(24), env.grid.Active().CodePoint)
	env.Equal(4, env.grid.Active().Col)
	env.Equal(4, env.grid.Active().Row)
	env.grid.NextWord() // crosses the bottom edge
	env.Equal(rune(25), env.grid.Start())
	env.Equal(rune(25), env.grid.Active().CodePoint)
	env.grid.PreWord() // crosses the top edge
	env.Equal(rune(0), env.grid.Start())
	env.Equal(rune(24), env.grid.Active().CodePoint)
	env.grid.PreWord()
	env.Equal(rune(23), env.grid.Active().CodePoint)
	env.assertWindowConsistent()
}

func (env *GridTestEnviron) TestPreWordWithoutActiveCell() {
	env.grid.PreWord()
	env.Equal(rune(24), env.rec.last())
	env.grid.FirstPage()
	env.grid.PreWord() // at code point 0: no page before
	env.Equal(rune(0), env.grid.Active().CodePoint)
}

func (env *GridTestEnviron) TestSelectIdempotence() {
	env.grid.Update(nil, nil)
	c := env.grid.Cell(2, 2)
	env.grid.SelectCell(c, false)
	n := len(env.rec.activated)
	env.grid.SelectCell(c, false)
	env.Len(env.rec.activated, n, "second selection must short-circuit")
	env.grid.SelectCell(c, true)
	env.Len(env.rec.activated, n+1, "forced selection repaints")
	env.Equal(1, env.rec.forced)
}

func (env *GridTestEnviron) TestActiveCellFollowsWindow() {
	env.grid.Update(nil, rp('A'))
	before := len(env.rec.activated)
	env.grid.Update(rp('A'-3), rp('A'))
	env.Equal(3, env.grid.Active().ID)
	env.grid.Update(nil, rp('A'))
	env.Equal(12, env.grid.Active().ID)
	env.Equal(rune('A'), env.grid.Active().CodePoint)
	env.Len(env.rec.activated, before, "same glyph, no re-activation")
}

func (env *GridTestEnviron) TestJumpTo() {
	env.NoError(env.grid.JumpTo("65"))
	env.Equal(rune(65), env.grid.Active().CodePoint)
	env.grid.FirstPage()
	env.NoError(env.grid.JumpTo("A"))
	env.Equal(rune(65), env.grid.Active().CodePoint)
	env.Equal(rune(53), env.grid.Start())
	n := len(env.rec.activated)
	start := env.grid.Start()
	env.NoError(env.grid.JumpTo(""))
	env.NoError(env.grid.JumpTo("   "))
	env.Len(env.rec.activated, n)
	env.Equal(start, env.grid.Start())
	err := env.grid.JumpTo("sixty")
	env.Equal(core.EINVALID, core.Code(err))
	err = env.grid.JumpTo("1114112")
	env.Equal(core.EINVALID, core.Code(err))
	env.Equal(start, env.grid.Start(), "failed jumps have no side effects")
}

func (env *GridTestEnviron) TestParseToken() {
	cases := []struct {
		token string
		cp    rune
		ok    bool
	}{
		{"A", 'A', true},
		{"7", '7', true},
		{" ", ' ', true},
		{"ä", 'ä', true},
		{"65", 65, true},
		{" 66 ", 66, true},
		{"0", '0', true},
		{"00", 0, true},
		{"", 0, false},
	}
	for _, c := range cases {
		cp, ok, err := ParseToken(c.token)
		env.NoError(err, c.token)
		env.Equal(c.ok, ok, c.token)
		env.Equal(c.cp, cp, c.token)
	}
	_, _, err := ParseToken("-5")
	env.Error(err)
}
