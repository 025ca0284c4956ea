/*
Package grid maps a window of Unicode code points onto a fixed grid of cells.

The grid has width × height cells. The cell at column col and row row has id
col + row·width and shows code point start + id, where start is the first
code point of the current window. Paging moves the window by a full grid.
Exactly one cell may be active, i.e. selected for editing.

Glyph records are created lazily, when a cell first shows their code point.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package grid

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/npillmayer/glyphpad/core"
	"github.com/npillmayer/glyphpad/engine/glyphs"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'glyphpad.editor'.
func tracer() tracing.Trace {
	return tracing.Select("glyphpad.editor")
}

// Cell is a slot of the grid. A cell refers to its glyph record by code
// point only; the record is owned by the glyph table.
type Cell struct {
	Col, Row  int
	ID        int
	CodePoint rune
	Char      string // empty if the code point is not a valid character
}

// Table creates glyph records on demand.
type Table interface {
	Ensure(cp rune) *glyphs.GlyphRecord
}

// Activator is notified whenever a cell becomes active. force is true if the
// cell is re-selected although it is already active.
type Activator interface {
	Activate(cell *Cell, force bool)
}

// Grid is a window of code points.
type Grid struct {
	width, height int
	cells         []Cell
	start         rune
	active        int  // index of the active cell, -1 if none
	activeCP      rune // code point of the active cell at selection time
	table         Table
	activator     Activator
}

// New creates an empty grid. Call Resize to give it cells.
func New(table Table, activator Activator) *Grid {
	return &Grid{table: table, activator: activator, active: -1}
}

// Width returns the number of columns.
func (g *Grid) Width() int { return g.width }

// Height returns the number of rows.
func (g *Grid) Height() int { return g.height }

// Start returns the first code point of the window.
func (g *Grid) Start() rune { return g.start }

// End returns the code point following the window.
func (g *Grid) End() rune { return g.start + rune(len(g.cells)) }

// Cells returns the cells, row by row.
func (g *Grid) Cells() []Cell { return g.cells }

// Cell returns the cell at a column and row, or nil if there is none.
func (g *Grid) Cell(col, row int) *Cell {
	if col < 0 || col >= g.width || row < 0 || row >= g.height {
		return nil
	}
	return &g.cells[col+row*g.width]
}

// Active returns the active cell, or nil.
func (g *Grid) Active() *Cell {
	if g.active < 0 {
		return nil
	}
	return &g.cells[g.active]
}

// Resize recomputes the grid's dimensions from a viewport size in pixels. The
// window keeps its start, and no cell is active afterwards. No glyph records
// are created; that happens with the next Update.
func (g *Grid) Resize(viewportWidth, viewportHeight, cellSize int) {
	if cellSize <= 0 {
		cellSize = 1
	}
	g.width = max(0, viewportWidth/cellSize)
	g.height = max(0, viewportHeight/cellSize)
	g.cells = make([]Cell, g.width*g.height)
	for i := range g.cells {
		g.cells[i] = Cell{Col: i % g.width, Row: i / g.width, ID: i}
	}
	g.active = -1
	g.fill(g.start, false)
	tracer().Debugf("grid resized to %d × %d cells", g.width, g.height)
}

// Update re-windows the grid and activates a cell. If both start and active
// are nil, the window starts at code point 0 with 0 active. If only active is
// given, the window is centred on it. If only start is given, the first cell
// becomes active.
func (g *Grid) Update(start, active *rune) {
	var s, a rune
	switch {
	case start == nil && active == nil:
		s, a = 0, 0
	case start == nil:
		a = *active
		s = max(0, a-rune((g.height/2)*g.width+g.width/2))
	case active == nil:
		s, a = *start, *start
	default:
		s, a = *start, *active
	}
	g.fill(s, true)
	if i := int(a - s); i >= 0 && i < len(g.cells) {
		g.SelectCell(&g.cells[i], false)
	}
}

func (g *Grid) fill(start rune, ensure bool) {
	g.start = start
	for i := range g.cells {
		c := &g.cells[i]
		c.CodePoint = start + rune(c.ID)
		c.Char = ""
		if c.CodePoint > unicode.MaxRune {
			continue
		}
		if utf8.ValidRune(c.CodePoint) {
			c.Char = string(c.CodePoint)
		}
		if ensure && g.table != nil {
			g.table.Ensure(c.CodePoint)
		}
	}
	if g.active >= 0 {
		if i := int(g.activeCP - start); i >= 0 && i < len(g.cells) {
			g.active = i
		} else {
			g.active = -1
		}
	}
}

// SelectCell makes cell the active cell and notifies the activator. If the
// glyph of cell is active already and force is false, the activator is not
// notified. Cells beyond the Unicode range cannot be selected.
func (g *Grid) SelectCell(cell *Cell, force bool) {
	if cell == nil || cell.ID < 0 || cell.ID >= len(g.cells) || cell.CodePoint > unicode.MaxRune {
		return
	}
	if !force && g.active >= 0 && g.activeCP == cell.CodePoint {
		g.active = cell.ID // the glyph may have moved to another slot
		return
	}
	g.active = cell.ID
	g.activeCP = cell.CodePoint
	if g.activator != nil {
		g.activator.Activate(&g.cells[cell.ID], force)
	}
}

// NextWord activates the following cell, wrapping to the next row and
// paging forward after the last cell. Nothing happens at the end of the
// Unicode range.
func (g *Grid) NextWord() {
	if len(g.cells) == 0 {
		return
	}
	if g.active < 0 {
		g.SelectCell(&g.cells[0], false)
		return
	}
	if g.active+1 >= len(g.cells) {
		g.NextPage()
		return
	}
	g.SelectCell(&g.cells[g.active+1], false)
}

// PreWord activates the preceding cell, wrapping to the previous row and
// paging back before the first cell. Paging back selects the last cell of
// the previous page.
func (g *Grid) PreWord() {
	if len(g.cells) == 0 {
		return
	}
	if g.active < 0 {
		g.SelectCell(&g.cells[len(g.cells)-1], false)
		return
	}
	if g.active == 0 {
		g.prePage(true)
		return
	}
	g.SelectCell(&g.cells[g.active-1], false)
}

// NextPage moves the window forward by one page. Nothing happens if the next
// page would start beyond the Unicode range.
func (g *Grid) NextPage() {
	n := rune(len(g.cells))
	if n == 0 || g.start+n > unicode.MaxRune {
		return
	}
	s := g.start + n
	g.Update(&s, nil)
}

// PrePage moves the window back by one page, activating its first cell.
// Nothing happens if the window starts at code point 0.
func (g *Grid) PrePage() {
	g.prePage(false)
}

func (g *Grid) prePage(selectLast bool) {
	if g.start == 0 || len(g.cells) == 0 {
		return
	}
	n := rune(len(g.cells))
	s := max(0, g.start-n)
	if selectLast {
		a := s + n - 1
		g.Update(&s, &a)
		return
	}
	g.Update(&s, nil)
}

// FirstPage moves the window to code point 0.
func (g *Grid) FirstPage() {
	var zero rune
	g.Update(&zero, &zero)
}

// JumpTo centres the window on the code point denoted by token and activates
// it. A blank token does nothing. See ParseToken.
func (g *Grid) JumpTo(token string) error {
	cp, ok, err := ParseToken(token)
	if err != nil || !ok {
		return err
	}
	g.Update(nil, &cp)
	return nil
}

// ParseToken interprets token as a code point. A token of exactly one
// character denotes that character, even if it is a digit. Otherwise the
// token must be a decimal number within the Unicode range. ok is false for
// a blank token. Malformed tokens result in an error with code
// core.EINVALID.
func ParseToken(token string) (cp rune, ok bool, err error) {
	if token == "" {
		return 0, false, nil
	}
	if utf8.RuneCountInString(token) == 1 {
		r, _ := utf8.DecodeRuneInString(token)
		return r, true, nil
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return 0, false, nil
	}
	n, err := strconv.ParseInt(token, 10, 32)
	if err != nil {
		return 0, false, core.WrapError(err, core.EINVALID, "not a character or code point: %q", token)
	}
	if n < 0 || n > unicode.MaxRune {
		return 0, false, core.Error(core.EINVALID, "code point out of range: %d", n)
	}
	return rune(n), true, nil
}
