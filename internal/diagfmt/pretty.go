package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"bigcalc/internal/diag"
	"bigcalc/internal/source"
)

type palette struct {
	err, warn, info, note, loc, gutter, caret *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		err:    color.New(color.FgRed, color.Bold),
		warn:   color.New(color.FgYellow, color.Bold),
		info:   color.New(color.FgCyan),
		note:   color.New(color.FgBlue, color.Bold),
		loc:    color.New(color.Bold),
		gutter: color.New(color.FgBlue),
		caret:  color.New(color.FgGreen, color.Bold),
	}
	for _, c := range []*color.Color{p.err, p.warn, p.info, p.note, p.loc, p.gutter, p.caret} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func (p palette) severity(sev diag.Severity) *color.Color {
	switch sev {
	case diag.SevError:
		return p.err
	case diag.SevWarning:
		return p.warn
	default:
		return p.info
	}
}

// Pretty форматирует диагностики в человекочитаемый вид.
// Идёт по bag.Items() (ожидается bag.Sort() заранее).
// Для каждого diag печатает:
//
//	<path>:<line>:<col>: <SEV> <CODE>: <Message>
//	  3 | 1 & 2
//	    |   ^
//
// затем Notes, если включены.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) error {
	if bag == nil {
		return nil
	}
	pal := newPalette(opts.Color)
	items := bag.Items()
	if opts.Max > 0 && opts.Max < len(items) {
		items = items[:opts.Max]
	}

	for _, d := range items {
		if err := writeHeader(w, pal, d, fs, opts.PathMode); err != nil {
			return err
		}
		if err := writeSnippet(w, pal, d.Primary, fs); err != nil {
			return err
		}
		if !opts.ShowNotes {
			continue
		}
		for _, n := range d.Notes {
			loc := location(n.Span, fs, opts.PathMode)
			if _, err := fmt.Fprintf(w, "  %s %s %s\n", pal.note.Sprint("note:"), pal.loc.Sprint(loc), n.Msg); err != nil {
				return err
			}
		}
	}
	return nil
}

func writeHeader(w io.Writer, pal palette, d diag.Diagnostic, fs *source.FileSet, mode PathMode) error {
	sev := pal.severity(d.Severity).Sprintf("%s %s", d.Severity, d.Code.ID())
	_, err := fmt.Fprintf(w, "%s: %s: %s\n", pal.loc.Sprint(location(d.Primary, fs, mode)), sev, d.Message)
	return err
}

// location renders "path:line:col"; spans without a resolvable file
// (e.g. I/O failures) render as the path alone or "<unknown>".
func location(sp source.Span, fs *source.FileSet, mode PathMode) string {
	if fs == nil || int(sp.File) >= fs.Len() {
		return "<unknown>"
	}
	f := fs.Get(sp.File)
	if len(f.Content) == 0 && sp.Empty() {
		return formatPath(f.Path, mode)
	}
	start, _ := fs.Resolve(sp)
	return fmt.Sprintf("%s:%d:%d", formatPath(f.Path, mode), start.Line, start.Col)
}

func writeSnippet(w io.Writer, pal palette, sp source.Span, fs *source.FileSet) error {
	if fs == nil || int(sp.File) >= fs.Len() {
		return nil
	}
	f := fs.Get(sp.File)
	if len(f.Content) == 0 {
		return nil
	}
	start, _ := fs.Resolve(sp)
	lineStart, lineEnd, ok := f.LineBounds(start.Line)
	if !ok {
		// пустая последняя строка: показываем её как пустую
		if sp.Start != uint32(len(f.Content)) { //nolint:gosec // G115: file size fits uint32 (checked by FileSet)
			return nil
		}
		lineStart, lineEnd = sp.Start, sp.Start
	}
	text := string(f.Content[lineStart:lineEnd])

	// каретка выравнивается по ширине отображения, а не по байтам
	before := runewidth.StringWidth(string(f.Content[lineStart:sp.Start]))
	spanEnd := min(sp.End, lineEnd)
	width := 1
	if spanEnd > sp.Start {
		width = max(1, runewidth.StringWidth(string(f.Content[sp.Start:spanEnd])))
	}

	num := fmt.Sprintf("%d", start.Line)
	pad := strings.Repeat(" ", len(num))
	_, err := fmt.Fprintf(w, "  %s %s %s\n  %s %s %s%s\n",
		pal.gutter.Sprint(num), pal.gutter.Sprint("|"), text,
		pad, pal.gutter.Sprint("|"), strings.Repeat(" ", before), pal.caret.Sprint(strings.Repeat("^", width)))
	return err
}
