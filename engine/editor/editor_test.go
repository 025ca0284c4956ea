package editor

import (
	"bytes"
	"context"
	"io"
	"os"
	"testing"
	"time"

	"github.com/npillmayer/glyphpad/backend/gfx"
	"github.com/npillmayer/glyphpad/core"
	"github.com/npillmayer/glyphpad/core/font/codec"
	"github.com/npillmayer/glyphpad/core/font/fontregistry"
	"github.com/npillmayer/glyphpad/core/parameters"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
)

type answer struct {
	text string
	ok   bool
}

func (a answer) Prompt(ctx context.Context, msg string) (string, bool) {
	return a.text, a.ok
}

func setup(t *testing.T) (*Editor, gfx.Layers, *fontregistry.Registry) {
	params := parameters.Defaults()
	params.DownloadDir = t.TempDir()
	layers := gfx.NewDebuggingLayers()
	fonts := fontregistry.NewRegistry(t.TempDir())
	return New(params, layers, fonts), layers, fonts
}

func load(t *testing.T, e *Editor, data []byte) {
	require.NoError(t, e.LoadFont(context.Background(), bytes.NewReader(data)))
}

var t0 = time.Date(2021, 12, 9, 14, 0, 0, 0, time.UTC)

// draw writes a stroke through the given points, 30 ms apart.
func draw(e *Editor, pts ...float64) {
	e.PointerDown(pts[0], pts[1], t0)
	for i := 2; i+1 < len(pts); i += 2 {
		e.PointerMove(pts[i], pts[i+1], t0.Add(time.Duration(i*15)*time.Millisecond))
	}
	e.PointerUp()
}

func TestLoadFont(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "glyphpad.editor")
	defer teardown()
	//
	e, layers, fonts := setup(t)
	assert.Nil(t, e.Session())
	require.NoError(t, e.LoadFont(context.Background(), nil), "no file selected is a no-op")
	assert.Nil(t, e.Session())
	load(t, e, goregular.TTF)
	s := e.Session()
	require.NotNil(t, s)
	assert.Equal(t, 12, s.Grid.Width())
	assert.Equal(t, 8, s.Grid.Height())
	require.NotNil(t, s.Grid.Active())
	assert.Equal(t, rune(0), s.Grid.Active().CodePoint)
	assert.Equal(t, []string{parameters.OriginalFont}, fonts.Live())
	assert.Equal(t, 3, layers.Box.(*gfx.DebuggingSurface).Count("Stroke"))
	assert.Equal(t, parameters.OriginalFont, e.CellsFamily())
}

func TestLoadFontFailureKeepsSession(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "glyphpad.editor")
	defer teardown()
	//
	e, _, fonts := setup(t)
	load(t, e, goregular.TTF)
	s := e.Session()
	err := e.LoadFont(context.Background(), bytes.NewReader([]byte("no font")))
	require.Error(t, err)
	assert.Equal(t, core.EINVALID, core.Code(err))
	assert.Same(t, s, e.Session())
	assert.Equal(t, []string{parameters.OriginalFont}, fonts.Live())
	//
	pr, pw := io.Pipe()
	defer pw.Close()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err = e.LoadFont(ctx, pr)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Same(t, s, e.Session())
}

func TestLoadReplacesSession(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "glyphpad.editor")
	defer teardown()
	//
	e, _, fonts := setup(t)
	load(t, e, goregular.TTF)
	require.NoError(t, e.JumpTo(context.Background(), answer{"A", true}))
	draw(e, 40, 40, 60, 60, 80, 80)
	_, err := e.Preview()
	require.NoError(t, err)
	assert.Len(t, fonts.Live(), 2)
	first := e.Session()
	load(t, e, gobold.TTF)
	assert.NotSame(t, first, e.Session())
	assert.False(t, e.Previewing())
	assert.Equal(t, []string{parameters.OriginalFont}, fonts.Live(), "preview font is released")
	g, ok := e.Session().Font.Glyph('A')
	require.True(t, ok)
	assert.Empty(t, g.Committed)
}

func TestStrokeSaveAndNavigate(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "glyphpad.editor")
	defer teardown()
	//
	e, layers, _ := setup(t)
	load(t, e, goregular.TTF)
	require.NoError(t, e.JumpTo(context.Background(), answer{"65", true}))
	s := e.Session()
	assert.Equal(t, rune('A'), s.Grid.Active().CodePoint)
	bg := layers.Background.(*gfx.DebuggingSurface)
	text, ok := bg.Last("FillText")
	require.True(t, ok)
	assert.Equal(t, "A", text.Text)
	assert.Equal(t, []float64{60, float64(s.Box.Baseline), 60}, text.Args)
	//
	draw(e, 30, 30, 50, 50, 70, 90)
	assert.True(t, e.Dirty())
	g := s.Current()
	require.Len(t, g.Live, 1)
	assert.Len(t, g.Live[0], 3)
	assert.Nil(t, g.Compiled)
	require.True(t, e.SaveCurrent())
	assert.False(t, e.Dirty())
	assert.NotNil(t, g.Compiled)
	//
	fg := layers.Foreground.(*gfx.DebuggingSurface)
	e.NextWord()
	assert.Equal(t, rune('B'), s.Grid.Active().CodePoint)
	fg.Reset()
	e.PreWord()
	assert.Equal(t, rune('A'), s.Grid.Active().CodePoint)
	assert.Len(t, s.Current().Live, 1, "committed strokes come back")
	assert.Equal(t, 2, fg.Count("CubicTo"), "committed strokes are repainted")
}

func TestResetAndDelete(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "glyphpad.editor")
	defer teardown()
	//
	e, _, _ := setup(t)
	e.ResetCurrent() // no session: no-op
	e.DeleteCurrent()
	load(t, e, goregular.TTF)
	e.SelectCell(1, 5) // code point 61
	s := e.Session()
	assert.Equal(t, rune(61), s.Grid.Active().CodePoint)
	draw(e, 30, 30, 50, 50)
	e.SaveCurrent()
	draw(e, 10, 10, 20, 20)
	assert.Len(t, s.Current().Live, 2)
	e.ResetCurrent()
	assert.Len(t, s.Current().Live, 1)
	assert.False(t, e.Dirty())
	e.DeleteCurrent()
	g := s.Current()
	assert.Empty(t, g.Live)
	assert.Nil(t, g.Committed)
	assert.Nil(t, g.Compiled)
	assert.True(t, g.HasSource(), "source outline survives deletion")
}

func TestJumpToNoOps(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "glyphpad.editor")
	defer teardown()
	//
	e, _, _ := setup(t)
	assert.NoError(t, e.JumpTo(context.Background(), answer{"A", true}))
	load(t, e, goregular.TTF)
	require.NoError(t, e.JumpTo(context.Background(), answer{"A", false}))
	assert.Equal(t, rune(0), e.Session().Grid.Active().CodePoint)
	require.NoError(t, e.JumpTo(context.Background(), answer{"", true}))
	assert.Equal(t, rune(0), e.Session().Grid.Active().CodePoint)
	err := e.JumpTo(context.Background(), answer{"abc", true})
	assert.Equal(t, core.EINVALID, core.Code(err))
}

func TestNoSession(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "glyphpad.editor")
	defer teardown()
	//
	e, _, _ := setup(t)
	assert.False(t, e.SaveCurrent())
	assert.False(t, e.Dirty())
	e.NextWord()
	e.PreWord()
	e.NextPage()
	e.PrePage()
	e.FirstPage()
	e.PointerDown(1, 1, t0)
	assert.False(t, e.PointerMove(2, 2, t0.Add(time.Second)))
	e.PointerUp()
	e.Resize(100, 100)
	_, err := e.Preview()
	assert.Equal(t, core.EMISSING, core.Code(err))
	_, err = e.Download()
	assert.Equal(t, core.EMISSING, core.Code(err))
}

func TestPreview(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "glyphpad.editor")
	defer teardown()
	//
	e, _, fonts := setup(t)
	load(t, e, goregular.TTF)
	require.NoError(t, e.JumpTo(context.Background(), answer{"x", true}))
	draw(e, 30, 30, 90, 90)
	e.PointerDown(90, 30, t0)
	e.PointerMove(30, 90, t0.Add(40*time.Millisecond))
	e.PointerCancel()
	f, err := e.Preview() // saves the active glyph first
	require.NoError(t, err)
	assert.True(t, e.Previewing())
	assert.Equal(t, parameters.EditingFont, e.CellsFamily())
	_, ok := fonts.Lookup(parameters.EditingFont)
	assert.True(t, ok)
	p, err := codec.Parse(f.Bytes())
	require.NoError(t, err)
	assert.Len(t, p.Glyphs, 1)
	require.Contains(t, p.Glyphs, 'x')
	assert.Equal(t, 2, p.Glyphs['x'].Outline.Contours())
	assert.Equal(t, 650.0, p.Glyphs['x'].Advance)
}

func TestDownload(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "glyphpad.editor")
	defer teardown()
	//
	e, _, _ := setup(t)
	load(t, e, goregular.TTF)
	require.NoError(t, e.JumpTo(context.Background(), answer{"ä", true}))
	draw(e, 30, 30, 90, 90)
	path, err := e.Download()
	require.NoError(t, err)
	assert.FileExists(t, path)
	assert.Equal(t, "go.ttf", path[len(path)-len("go.ttf"):])
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	p, err := codec.Parse(data)
	require.NoError(t, err)
	assert.Contains(t, p.Glyphs, 'ä')
	assert.Contains(t, p.Glyphs, 'Q', "full export keeps the loaded font's glyphs")
	assert.False(t, e.Previewing())
}

func TestResizeKeepsActive(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "glyphpad.editor")
	defer teardown()
	//
	e, _, _ := setup(t)
	load(t, e, goregular.TTF)
	require.NoError(t, e.JumpTo(context.Background(), answer{"Z", true}))
	e.Resize(200, 200)
	s := e.Session()
	assert.Equal(t, 5, s.Grid.Width())
	assert.Equal(t, rune('Z'), s.Grid.Active().CodePoint)
	assert.Equal(t, 12, s.Grid.Active().ID)
}

func TestResizeKeepsUnsavedStrokes(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "glyphpad.editor")
	defer teardown()
	//
	e, _, _ := setup(t)
	load(t, e, goregular.TTF)
	require.NoError(t, e.JumpTo(context.Background(), answer{"Z", true}))
	draw(e, 30, 30, 60, 60, 90, 30)
	require.True(t, e.Dirty())
	e.Resize(200, 200)
	assert.True(t, e.Dirty())
	require.NotNil(t, e.Session().Current())
	assert.Len(t, e.Session().Current().Live, 1)
	assert.Empty(t, e.Session().Current().Committed)
	assert.True(t, e.SaveCurrent())
}

func TestRenderCells(t *testing.T) {
	e, _, _ := setup(t)
	load(t, e, goregular.TTF)
	ds := gfx.NewDebuggingSurface()
	e.RenderCells(ds, "#000000")
	// code points 0..95: all are valid runes
	assert.Equal(t, 96, ds.Count("FillText"))
	e.Close()
	assert.Nil(t, e.Session())
}
