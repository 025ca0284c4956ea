package main

import (
	"context"
	"image/png"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/chzyer/readline"
	"github.com/derekparker/trie"
	"github.com/npillmayer/glyphpad/backend/gfx/ggadapter"
	"github.com/npillmayer/glyphpad/core"
	"github.com/npillmayer/glyphpad/core/locate/resources"
	"github.com/pterm/pterm"
)

// command is an entry of the interpreter's command table.
type command struct {
	name  string
	args  string // usage of arguments, for help
	help  string
	nargs int // minimum number of arguments
	run   func(intp *Intp, ctx context.Context, args []string) (bool, error)
}

var commandTable []*command

var commands *trie.Trie

func init() {
	commandTable = []*command{
		{name: "load", args: "<font>", help: "load a font file or system font", nargs: 1, run: cmdLoad},
		{name: "grid", help: "show the cells of the current page", run: cmdGrid},
		{name: "select", args: "<col> <row>", help: "activate a cell", nargs: 2, run: cmdSelect},
		{name: "next", help: "activate the next cell", run: nav((*Intp).nextWord)},
		{name: "prev", help: "activate the previous cell", run: nav((*Intp).preWord)},
		{name: "nextpage", help: "show the next page of code points", run: nav((*Intp).nextPage)},
		{name: "prevpage", help: "show the previous page of code points", run: nav((*Intp).prePage)},
		{name: "first", help: "show the first page", run: nav((*Intp).firstPage)},
		{name: "jump", help: "jump to a character or code point", run: cmdJump},
		{name: "down", args: "<x> <y>", help: "pointer down on the canvas", nargs: 2, run: cmdDown},
		{name: "move", args: "<x> <y>", help: "move the pointer", nargs: 2, run: cmdMove},
		{name: "up", help: "pointer up, finishing the stroke", run: cmdUp},
		{name: "cancel", help: "pointer cancel, finishing the stroke", run: cmdCancel},
		{name: "stroke", args: "<x,y> <x,y> ...", help: "draw a complete stroke", nargs: 2, run: cmdStroke},
		{name: "save", help: "save the strokes of the active glyph", run: cmdSave},
		{name: "reset", help: "discard unsaved strokes of the active glyph", run: cmdReset},
		{name: "delete", help: "delete all strokes of the active glyph", run: cmdDelete},
		{name: "preview", args: "[file.png]", help: "preview drawn glyphs in the cells", run: cmdPreview},
		{name: "download", help: "save the edited font as a TrueType file", run: cmdDownload},
		{name: "show", args: "<file.png>", help: "write the editing canvas to a PNG file", nargs: 1, run: cmdShow},
		{name: "status", help: "show the active glyph", run: cmdStatus},
		{name: "help", help: "list commands", run: cmdHelp},
		{name: "quit", help: "leave glyphpad", run: func(*Intp, context.Context, []string) (bool, error) {
			return true, nil
		}},
		}
	commands = buildTrie(commandTable)
}

func buildTrie(table []*command) *trie.Trie {
	t := trie.New()
	for _, cmd := range table {
		t.Add(cmd.name, cmd)
	}
	return t
}

func completer() *readline.PrefixCompleter {
	items := make([]readline.PrefixCompleterInterface, len(commandTable))
	for i, cmd := range commandTable {
		items[i] = readline.PcItem(cmd.name)
	}
	return readline.NewPrefixCompleter(items...)
}

// lookup finds a command by name or by an unambiguous prefix of its name.
func lookup(word string) (*command, error) {
	word = strings.ToLower(word)
	if node, ok := commands.Find(word); ok {
		return node.Meta().(*command), nil
	}
	candidates := commands.PrefixSearch(word)
	switch len(candidates) {
	case 0:
		return nil, core.Error(core.EINVALID, "unknown command: %s", word)
	case 1:
		node, _ := commands.Find(candidates[0])
		return node.Meta().(*command), nil
	}
	sort.Strings(candidates)
	return nil, core.Error(core.EINVALID, "ambiguous command %q: %s", word,
		strings.Join(candidates, ", "))
}

// Execute interprets a single command line. It returns true if the user
// wants to quit.
func (intp *Intp) Execute(ctx context.Context, line string) (bool, error) {
	words := strings.Fields(line)
	if len(words) == 0 {
		return false, nil
	}
	cmd, err := lookup(words[0])
	if err != nil {
		return false, err
	}
	args := words[1:]
	if len(args) < cmd.nargs {
		return false, core.Error(core.EINVALID, "usage: %s %s", cmd.name, cmd.args)
	}
	tracer().Debugf("command %s %v", cmd.name, args)
	return cmd.run(intp, ctx, args)
}

// --- Commands --------------------------------------------------------------

func cmdLoad(intp *Intp, ctx context.Context, args []string) (bool, error) {
	return false, intp.loadFont(ctx, strings.Join(args, " "))
}

func (intp *Intp) loadFont(ctx context.Context, name string) error {
	path, err := resources.ResolveFontFile(name).Await(ctx)
	if err != nil {
		return err
	}
	f, err := os.Open(path)
	if err != nil {
		return core.WrapError(err, core.EMISSING, "cannot open font %s", path)
	}
	defer f.Close()
	if err := intp.editor.LoadFont(ctx, f); err != nil {
		return err
	}
	fam := intp.editor.Session().Font.Metadata.Family()
	pterm.Info.Printf("loaded font %q from %s\n", fam, path)
	return nil
}

func cmdGrid(intp *Intp, ctx context.Context, args []string) (bool, error) {
	session := intp.editor.Session()
	if session == nil {
		return false, errNoFont()
	}
	g := session.Grid
	active := g.Active()
	data := pterm.TableData{{""}}
	for col := 0; col < g.Width(); col++ {
		data[0] = append(data[0], strconv.Itoa(col))
	}
	for row := 0; row < g.Height(); row++ {
		line := []string{strconv.Itoa(row)}
		for col := 0; col < g.Width(); col++ {
			c := g.Cell(col, row)
			s := c.Char
			if s == "" || !strconv.IsPrint([]rune(s)[0]) {
				s = "·"
			}
			if active != nil && active.ID == c.ID {
				s = pterm.FgCyan.Sprint("[" + s + "]")
			} else if r, ok := session.Font.Glyph(c.CodePoint); ok && len(r.Committed) > 0 {
				s = pterm.FgLightRed.Sprint(s)
			}
			line = append(line, s)
		}
		data = append(data, line)
	}
	pterm.Printf("U+%04X … U+%04X\n", g.Start(), g.End()-1)
	return false, pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}

func cmdSelect(intp *Intp, ctx context.Context, args []string) (bool, error) {
	col, err1 := strconv.Atoi(args[0])
	row, err2 := strconv.Atoi(args[1])
	if err1 != nil || err2 != nil {
		return false, core.Error(core.EINVALID, "usage: select <col> <row>")
	}
	if session := intp.editor.Session(); session != nil && session.Grid.Cell(col, row) == nil {
		return false, core.Error(core.EINVALID, "no cell at (%d,%d)", col, row)
	}
	intp.editor.SelectCell(col, row)
	return false, intp.status()
}

func nav(f func(*Intp)) func(*Intp, context.Context, []string) (bool, error) {
	return func(intp *Intp, ctx context.Context, args []string) (bool, error) {
		f(intp)
		return false, intp.status()
	}
}

func (intp *Intp) nextWord()  { intp.editor.NextWord() }
func (intp *Intp) preWord()   { intp.editor.PreWord() }
func (intp *Intp) nextPage()  { intp.editor.NextPage() }
func (intp *Intp) prePage()   { intp.editor.PrePage() }
func (intp *Intp) firstPage() { intp.editor.FirstPage() }

func cmdJump(intp *Intp, ctx context.Context, args []string) (bool, error) {
	p := intp.prompter
	if len(args) > 0 { // answer given on the command line
		p = answer(strings.Join(args, " "))
	}
	if err := intp.editor.JumpTo(ctx, p); err != nil {
		return false, err
	}
	return false, intp.status()
}

// answer is a prompter with a fixed reply.
type answer string

func (a answer) Prompt(ctx context.Context, msg string) (string, bool) {
	return string(a), ctx.Err() == nil
}

func cmdDown(intp *Intp, ctx context.Context, args []string) (bool, error) {
	x, y, err := coordinates(args[0], args[1])
	if err != nil {
		return false, err
	}
	if err := intp.needsActiveCell(); err != nil {
		return false, err
	}
	intp.editor.PointerDown(x, y, time.Now())
	return false, nil
}

func cmdMove(intp *Intp, ctx context.Context, args []string) (bool, error) {
	x, y, err := coordinates(args[0], args[1])
	if err != nil {
		return false, err
	}
	if !intp.editor.PointerMove(x, y, time.Now()) {
		tracer().Infof("sample (%g,%g) dropped", x, y)
	}
	return false, nil
}

func cmdUp(intp *Intp, ctx context.Context, args []string) (bool, error) {
	intp.editor.PointerUp()
	return false, nil
}

func cmdCancel(intp *Intp, ctx context.Context, args []string) (bool, error) {
	intp.editor.PointerCancel()
	return false, nil
}

// cmdStroke feeds a sequence of points as one stroke, with samples spaced
// by the sampling period.
func cmdStroke(intp *Intp, ctx context.Context, args []string) (bool, error) {
	if err := intp.needsActiveCell(); err != nil {
		return false, err
	}
	points := make([][2]float64, len(args))
	for i, arg := range args {
		xy := strings.SplitN(arg, ",", 2)
		if len(xy) != 2 {
			return false, core.Error(core.EINVALID, "malformed point: %q", arg)
		}
		x, y, err := coordinates(xy[0], xy[1])
		if err != nil {
			return false, err
		}
		points[i] = [2]float64{x, y}
	}
	at := time.Now()
	period := intp.editor.Params().SamplingPeriod
	intp.editor.PointerDown(points[0][0], points[0][1], at)
	for _, p := range points[1:] {
		at = at.Add(period)
		intp.editor.PointerMove(p[0], p[1], at)
	}
	intp.editor.PointerUp()
	return false, nil
}

func cmdSave(intp *Intp, ctx context.Context, args []string) (bool, error) {
	if intp.editor.SaveCurrent() {
		pterm.Success.Println("glyph saved")
	} else {
		pterm.Info.Println("nothing to save")
	}
	return false, nil
}

func cmdReset(intp *Intp, ctx context.Context, args []string) (bool, error) {
	intp.editor.ResetCurrent()
	return false, nil
}

func cmdDelete(intp *Intp, ctx context.Context, args []string) (bool, error) {
	intp.editor.DeleteCurrent()
	return false, nil
}

func cmdPreview(intp *Intp, ctx context.Context, args []string) (bool, error) {
	f, err := intp.editor.Preview()
	if err != nil {
		return false, err
	}
	pterm.Info.Printf("preview font with %d bytes\n", len(f.Bytes()))
	if len(args) == 0 {
		return false, nil
	}
	p := intp.editor.Params()
	cells := ggadapter.New(p.ViewportWidth, p.ViewportHeight, intp.fonts)
	defer cells.Close()
	intp.editor.RenderCells(cells, p.GuideColor)
	return false, writePNG(args[0], func(out *os.File) error {
		return cells.EncodePNG(out)
	})
}

func cmdDownload(intp *Intp, ctx context.Context, args []string) (bool, error) {
	path, err := intp.editor.Download()
	if err != nil {
		return false, err
	}
	pterm.Success.Printf("font saved as %s\n", path)
	return false, nil
}

func cmdShow(intp *Intp, ctx context.Context, args []string) (bool, error) {
	img := ggadapter.Flatten(intp.canvases...)
	return false, writePNG(args[0], func(out *os.File) error {
		return png.Encode(out, img)
	})
}

func cmdStatus(intp *Intp, ctx context.Context, args []string) (bool, error) {
	return false, intp.status()
}

func cmdHelp(intp *Intp, ctx context.Context, args []string) (bool, error) {
	data := pterm.TableData{{"Command", "Arguments", "Description"}}
	for _, cmd := range commandTable {
		data = append(data, []string{cmd.name, cmd.args, cmd.help})
	}
	return false, pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}

// --- Helpers ---------------------------------------------------------------

func (intp *Intp) status() error {
	session := intp.editor.Session()
	if session == nil {
		return errNoFont()
	}
	r := session.Current()
	if r == nil {
		pterm.Info.Println("no active cell")
		return nil
	}
	dirty := ""
	if intp.editor.Dirty() {
		dirty = ", modified"
	}
	pterm.Info.Printf("U+%04X %q: %d saved strokes, %d strokes%s\n", r.CodePoint,
		string(r.CodePoint), len(r.Committed), len(r.Live), dirty)
	return nil
}

func (intp *Intp) needsActiveCell() error {
	session := intp.editor.Session()
	if session == nil {
		return errNoFont()
	}
	if session.Current() == nil {
		return core.Error(core.EMISSING, "no active cell")
	}
	return nil
}

func errNoFont() error {
	return core.Error(core.EMISSING, "no font loaded")
}

func coordinates(xs, ys string) (float64, float64, error) {
	x, err := strconv.ParseFloat(xs, 64)
	if err != nil {
		return 0, 0, core.WrapError(err, core.EINVALID, "not a coordinate: %q", xs)
	}
	y, err := strconv.ParseFloat(ys, 64)
	if err != nil {
		return 0, 0, core.WrapError(err, core.EINVALID, "not a coordinate: %q", ys)
	}
	return x, y, nil
}

func writePNG(path string, encode func(*os.File) error) error {
	out, err := os.Create(path)
	if err != nil {
		return core.WrapError(err, core.EEXPORT, "cannot create %s", path)
	}
	if err := encode(out); err != nil {
		out.Close()
		return core.WrapError(err, core.EEXPORT, "cannot encode %s", path)
	}
	return out.Close()
}

