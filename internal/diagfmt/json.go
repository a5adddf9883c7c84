package diagfmt

import (
	"encoding/json"
	"io"

	"bigcalc/internal/diag"
	"bigcalc/internal/source"
)

// Position is a 1-based line and column.
type Position struct {
	Line uint32 `json:"line"`
	Col  uint32 `json:"col"`
}

// Location points into an input file. Span is the byte range [start, end).
type Location struct {
	File  string    `json:"file,omitempty"`
	Span  [2]uint32 `json:"span"`
	Start *Position `json:"start,omitempty"`
	End   *Position `json:"end,omitempty"`
}

// NoteRecord is a secondary message attached to a Record.
type NoteRecord struct {
	Message string `json:"message"`
	Location
}

// Record is one diagnostic. Stage is the REPL prefix it maps to, Expr the
// offending input line.
type Record struct {
	Code     string `json:"code"`
	Stage    string `json:"stage,omitempty"`
	Severity string `json:"severity"`
	Message  string `json:"message"`
	Location
	Expr  string       `json:"expr,omitempty"`
	Notes []NoteRecord `json:"notes,omitempty"`
}

// Report is the top-level JSON document.
type Report struct {
	Count       int      `json:"count"`
	Diagnostics []Record `json:"diagnostics"`
}

type locator struct {
	fs   *source.FileSet
	opts JSONOpts
}

func (l locator) file(sp source.Span) *source.File {
	if l.fs == nil || int(sp.File) >= l.fs.Len() {
		return nil
	}
	return l.fs.Get(sp.File)
}

func (l locator) locate(sp source.Span) Location {
	loc := Location{Span: [2]uint32{sp.Start, sp.End}}
	f := l.file(sp)
	if f == nil {
		return loc
	}
	loc.File = formatPath(f.Path, l.opts.PathMode)
	if l.opts.IncludePositions {
		s, e := l.fs.Resolve(sp)
		loc.Start = &Position{Line: s.Line, Col: s.Col}
		loc.End = &Position{Line: e.Line, Col: e.Col}
	}
	return loc
}

// expr возвращает строку входа, в которой начинается sp.
func (l locator) expr(sp source.Span) string {
	f := l.file(sp)
	if f == nil || !l.opts.IncludePositions {
		return ""
	}
	s, _ := l.fs.Resolve(sp)
	return f.GetLine(s.Line)
}

// BuildReport converts bag into a Report without serialising it.
func BuildReport(bag *diag.Bag, fs *source.FileSet, opts JSONOpts) Report {
	var items []diag.Diagnostic
	if bag != nil {
		items = bag.Items()
	}
	if opts.Max > 0 && len(items) > opts.Max {
		items = items[:opts.Max]
	}
	l := locator{fs: fs, opts: opts}
	rep := Report{Count: len(items), Diagnostics: make([]Record, 0, len(items))}
	for _, d := range items {
		rec := Record{
			Code:     d.Code.ID(),
			Stage:    d.Code.Stage(),
			Severity: d.Severity.String(),
			Message:  d.Message,
			Location: l.locate(d.Primary),
			Expr:     l.expr(d.Primary),
		}
		if opts.IncludeNotes {
			for _, n := range d.Notes {
				rec.Notes = append(rec.Notes, NoteRecord{Message: n.Msg, Location: l.locate(n.Span)})
			}
		}
		rep.Diagnostics = append(rep.Diagnostics, rec)
	}
	return rep
}

// JSON writes BuildReport(bag, fs, opts) as indented JSON.
func JSON(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts JSONOpts) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(BuildReport(bag, fs, opts))
}
