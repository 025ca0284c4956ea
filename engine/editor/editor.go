package editor

import (
	"context"
	"io"
	"time"

	"github.com/npillmayer/glyphpad/backend/gfx"
	"github.com/npillmayer/glyphpad/core"
	"github.com/npillmayer/glyphpad/core/font/codec"
	"github.com/npillmayer/glyphpad/core/font/fontregistry"
	"github.com/npillmayer/glyphpad/core/locate/resources"
	"github.com/npillmayer/glyphpad/core/parameters"
	"github.com/npillmayer/glyphpad/engine/glyphs"
	"github.com/npillmayer/glyphpad/engine/stroke"
)

// Prompter asks the user for a line of text. ok is false if the user
// cancelled the prompt.
type Prompter interface {
	Prompt(ctx context.Context, msg string) (answer string, ok bool)
}

// Editor is the glyph editor.
type Editor struct {
	params     parameters.Editor
	layers     gfx.Layers
	fonts      *fontregistry.Registry
	session    *Session
	previewing bool
}

// New creates an editor drawing to layers. Font resources are registered
// with fonts.
func New(params parameters.Editor, layers gfx.Layers, fonts *fontregistry.Registry) *Editor {
	return &Editor{params: params, layers: layers, fonts: fonts}
}

// Params returns the editor's parameters.
func (e *Editor) Params() parameters.Editor {
	return e.params
}

// Session returns the current session, or nil if no font has been loaded.
func (e *Editor) Session() *Session {
	return e.session
}

// Dirty is true if the active glyph has strokes which have not been saved.
func (e *Editor) Dirty() bool {
	return e.session != nil && e.session.dirty
}

// Previewing is true once a preview of the edited font has been produced.
func (e *Editor) Previewing() bool {
	return e.previewing
}

// CellsFamily is the font family the cells of the grid are shown with: the
// preview font while previewing, the loaded font otherwise.
func (e *Editor) CellsFamily() string {
	if e.previewing {
		return parameters.EditingFont
	}
	return parameters.OriginalFont
}

// LoadFont reads a font from r and starts a new session for it. A nil
// reader is a no-op. If the font cannot be read or parsed, the current
// session stays as it is.
func (e *Editor) LoadFont(ctx context.Context, r io.Reader) error {
	if r == nil {
		return nil
	}
	data, err := resources.ReadBytes(r).Await(ctx)
	if err != nil {
		return err
	}
	p, err := codec.Parse(data)
	if err != nil {
		return err
	}
	s, err := newSession(p, e.params, e.layers)
	if err != nil {
		return err
	}
	e.teardown()
	e.session = s
	if _, err := e.fonts.Acquire(parameters.OriginalFont, data); err != nil {
		tracer().Errorf("original font not available for drawing: %v", err)
	}
	s.drawBox()
	s.Grid.Resize(e.params.ViewportWidth, e.params.ViewportHeight, e.params.CellSize)
	s.Grid.Update(nil, nil)
	tracer().Infof("loaded font %q", s.Font.Metadata.Family())
	return nil
}

func (e *Editor) teardown() {
	e.fonts.Release(parameters.OriginalFont)
	e.fonts.Release(parameters.EditingFont)
	e.previewing = false
	e.session = nil
}

// Close ends the current session and releases all font resources.
func (e *Editor) Close() {
	e.teardown()
	e.fonts.ReleaseAll()
}

// Resize changes the size of the cells panel. The grid keeps showing the
// active code point, if any, and unsaved strokes of its glyph survive.
func (e *Editor) Resize(viewportWidth, viewportHeight int) {
	e.params.ViewportWidth, e.params.ViewportHeight = viewportWidth, viewportHeight
	if e.session == nil {
		return
	}
	s := e.session
	g := s.Grid
	start := g.Start()
	current := s.Current()
	g.Resize(viewportWidth, viewportHeight, e.params.CellSize)
	if current == nil {
		g.Update(&start, nil)
		return
	}
	live, dirty := stroke.Copy(current.Live), s.dirty
	cp := current.CodePoint
	g.Update(nil, &cp) // re-activation reverts the live strokes
	s.restore(live, dirty)
}

// --- Navigation ------------------------------------------------------------

// SelectCell activates the cell at a column and row of the grid.
func (e *Editor) SelectCell(col, row int) {
	if e.session == nil {
		return
	}
	e.session.Grid.SelectCell(e.session.Grid.Cell(col, row), false)
}

// NextWord activates the next cell.
func (e *Editor) NextWord() {
	if e.session != nil {
		e.session.Grid.NextWord()
	}
}

// PreWord activates the previous cell.
func (e *Editor) PreWord() {
	if e.session != nil {
		e.session.Grid.PreWord()
	}
}

// NextPage shows the next page of code points.
func (e *Editor) NextPage() {
	if e.session != nil {
		e.session.Grid.NextPage()
	}
}

// PrePage shows the previous page of code points.
func (e *Editor) PrePage() {
	if e.session != nil {
		e.session.Grid.PrePage()
	}
}

// FirstPage shows the page starting at code point 0.
func (e *Editor) FirstPage() {
	if e.session != nil {
		e.session.Grid.FirstPage()
	}
}

// JumpTo prompts for a character or a decimal code point and centres the
// grid on it. A cancelled or blank prompt does nothing.
func (e *Editor) JumpTo(ctx context.Context, p Prompter) error {
	if e.session == nil {
		return nil
	}
	token, ok := p.Prompt(ctx, "Jump to:")
	if !ok {
		return nil
	}
	return e.session.Grid.JumpTo(token)
}

// --- Strokes ---------------------------------------------------------------

// PointerDown starts a stroke.
func (e *Editor) PointerDown(x, y float64, at time.Time) {
	if e.session == nil || e.session.Grid.Active() == nil {
		return
	}
	e.session.capture.Down(x, y, at)
}

// PointerMove extends the stroke in progress. It returns false if the sample
// has not been accepted.
func (e *Editor) PointerMove(x, y float64, at time.Time) bool {
	if e.session == nil {
		return false
	}
	return e.session.capture.Move(x, y, at)
}

// PointerUp finishes the stroke in progress and adds it to the live strokes
// of the active glyph.
func (e *Editor) PointerUp() {
	e.finishStroke(false)
}

// PointerCancel finishes the stroke in progress like PointerUp.
func (e *Editor) PointerCancel() {
	e.finishStroke(true)
}

func (e *Editor) finishStroke(cancel bool) {
	if e.session == nil {
		return
	}
	s := e.session
	var st stroke.Stroke
	var ok bool
	if cancel {
		st, ok = s.capture.Cancel()
	} else {
		st, ok = s.capture.Up()
	}
	if !ok {
		return
	}
	if g := s.Current(); g != nil {
		g.AddLive(st)
	}
	s.dirty = true
}

// SaveCurrent commits the live strokes of the active glyph. It returns false
// if there was nothing to save.
func (e *Editor) SaveCurrent() bool {
	if e.session == nil {
		return false
	}
	g := e.session.Current()
	if g == nil || !g.Save(e.session.Box) {
		return false
	}
	e.session.dirty = false
	return true
}

// ResetCurrent reverts the active glyph to its committed strokes.
func (e *Editor) ResetCurrent() {
	e.reselect(false)
}

// DeleteCurrent drops all strokes of the active glyph.
func (e *Editor) DeleteCurrent() {
	e.reselect(true)
}

func (e *Editor) reselect(del bool) {
	if e.session == nil {
		return
	}
	cell := e.session.Grid.Active()
	g := e.session.Current()
	if cell == nil || g == nil {
		return
	}
	if del {
		g.Delete()
	}
	e.session.Grid.SelectCell(cell, true)
}

// --- Export ----------------------------------------------------------------

// Preview saves the active glyph and builds a font of all glyphs which have
// been drawn. The font is registered as the editing font, replacing the
// previous preview.
func (e *Editor) Preview() (*codec.Font, error) {
	f, err := e.export(glyphs.ModifiedOnly)
	if err != nil {
		return nil, err
	}
	e.previewing = true
	return f, nil
}

// Download saves the active glyph and builds a font of all drawn glyphs plus
// all glyphs of the loaded font, and writes it to the download directory. It
// returns the path of the font file.
func (e *Editor) Download() (string, error) {
	f, err := e.export(glyphs.Full)
	if err != nil {
		return "", err
	}
	dir := e.params.DownloadDir
	if dir == "" {
		if dir, err = resources.CacheDirPath(e.params.AppKey, "fonts"); err != nil {
			return "", err
		}
	}
	return f.Download(dir)
}

func (e *Editor) export(mode glyphs.ExportMode) (*codec.Font, error) {
	if e.session == nil {
		return nil, core.Error(core.EMISSING, "no font loaded")
	}
	e.SaveCurrent()
	req := e.session.Font.AssembleExport(mode, e.params.AdvanceWidth)
	f, err := codec.Serialize(req)
	if err != nil {
		return nil, err
	}
	if _, err := e.fonts.Acquire(parameters.EditingFont, f.Bytes()); err != nil {
		return nil, err
	}
	return f, nil
}

// RenderCells draws the characters of the grid's cells onto s, each centred
// in its cell, in the font family given by CellsFamily.
func (e *Editor) RenderCells(s gfx.Surface, color string) {
	if e.session == nil {
		return
	}
	size := float64(e.params.CellSize)
	font := gfx.Font{Family: e.CellsFamily(), Size: size * 0.6}
	for _, c := range e.session.Grid.Cells() {
		if c.Char == "" {
			continue
		}
		x := (float64(c.Col) + 0.5) * size
		y := (float64(c.Row) + 0.75) * size
		s.FillText(c.Char, font, color, x, y)
	}
}
