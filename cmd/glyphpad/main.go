/*
Command glyphpad is an interactive front end to the glyph editor.

It loads a font, shows its code points in a grid and lets the user draw
strokes onto the editing canvas by typing pointer events. Edited fonts can be
previewed and saved as TrueType files.

Usage:

	glyphpad [-trace Debug|Info|Error] [-font file-or-font-name] [-out dir]

Type "help" at the prompt for a list of commands. Commands may be abbreviated
to any unique prefix.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/npillmayer/glyphpad/backend/gfx/ggadapter"
	"github.com/npillmayer/glyphpad/core"
	"github.com/npillmayer/glyphpad/core/font/fontregistry"
	"github.com/npillmayer/glyphpad/core/parameters"
	"github.com/npillmayer/glyphpad/engine/editor"
	"github.com/npillmayer/schuko/schukonf/testconfig"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/npillmayer/schuko/tracing/trace2go"
	"github.com/pterm/pterm"
)

// tracer traces with key 'glyphpad.cli'
func tracer() tracing.Trace {
	return tracing.Select("glyphpad.cli")
}

func main() {
	initDisplay()

	// command line flags
	tlevel := flag.String("trace", "Error", "Trace level [Debug|Info|Error]")
	fontname := flag.String("font", "", "Font to load")
	outdir := flag.String("out", "", "Directory for downloaded fonts")
	size := flag.String("size", "", "Editing font size in pixels")
	flag.Parse()

	// set up logging and parameters
	tracing.RegisterTraceAdapter("go", gologadapter.GetAdapter(), false)
	conf := testconfig.Conf{
		"tracing.adapter":       "go",
		"trace.glyphpad.cli":    *tlevel,
		"trace.glyphpad.editor": *tlevel,
		"trace.glyphpad.fonts":  *tlevel,
		"trace.glyphpad.gfx":    *tlevel,
		//
		parameters.KeyDownloadDir:     *outdir,
		parameters.KeyEditingFontSize: *size,
	}
	if err := trace2go.ConfigureRoot(conf, "trace", trace2go.ReplaceTracers(true)); err != nil {
		fmt.Printf("error configuring tracing")
		os.Exit(1)
	}
	tracing.SetTraceSelector(trace2go.Selector())
	pterm.Info.Println("Welcome to glyphpad") // colored welcome message
	tracer().Infof("Trace level is %s", *tlevel)
	//
	// set up REPL
	repl, err := readline.NewEx(&readline.Config{
		Prompt:       "glyph > ",
		AutoComplete: completer(),
	})
	if err != nil {
		tracer().Errorf(err.Error())
		os.Exit(3)
	}
	defer repl.Close()
	intp := NewIntp(parameters.FromConfig(conf), readlinePrompter{repl: repl})
	defer intp.Close()
	intp.repl = repl
	//
	// load font to use
	if *fontname != "" {
		if err := intp.loadFont(context.Background(), *fontname); err != nil { // font name provided by flag
			core.UserError(err)
			os.Exit(4)
		}
	}
	//
	// start receiving commands
	pterm.Info.Println("Quit with <ctrl>D") // inform user how to stop the CLI
	intp.REPL() // go into interactive mode
}

// We use pterm for moderately fancy output.
func initDisplay() {
	pterm.EnableDebugMessages()
	pterm.Info.Prefix = pterm.Prefix{
		Text:  " !  ",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  " Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}

// Intp is our interpreter object
type Intp struct {
	repl     *readline.Instance
	editor   *editor.Editor
	fonts    *fontregistry.Registry
	canvases []*ggadapter.Canvas // box, background, foreground, overlay
	prompter editor.Prompter
}

// NewIntp creates an interpreter with an editor drawing to raster canvases.
func NewIntp(params parameters.Editor, prompter editor.Prompter) *Intp {
	fonts := fontregistry.NewRegistry("")
	layers, canvases := ggadapter.NewLayers(params.CanvasSize(), fonts)
	return &Intp{
		editor:   editor.New(params, layers, fonts),
		fonts:    fonts,
		canvases: canvases,
		prompter: prompter,
	}
}

// Close releases the editor's resources.
func (intp *Intp) Close() {
	intp.editor.Close()
	for _, c := range intp.canvases {
		c.Close()
	}
}

// REPL starts interactive mode.
func (intp *Intp) REPL() {
	for {
		line, err := intp.repl.Readline()
		if err == readline.ErrInterrupt {
			continue
		} else if err != nil { // io.EOF
			break
		}
		if line = strings.TrimSpace(line); line == "" {
			continue
		}
		quit, err := intp.Execute(context.Background(), line)
		if err != nil {
			core.UserError(err)
			continue
		}
		if quit {
			break
		}
	}
	pterm.Info.Println("Good bye!")
}

// readlinePrompter asks questions on the REPL's line.
type readlinePrompter struct {
	repl *readline.Instance
}

func (p readlinePrompter) Prompt(ctx context.Context, msg string) (string, bool) {
	if ctx.Err() != nil {
		return "", false
	}
	p.repl.SetPrompt(msg + " ")
	defer p.repl.SetPrompt("glyph > ")
	line, err := p.repl.Readline()
	if err != nil { // interrupted or EOF
		return "", false
	}
	return line, true
}
