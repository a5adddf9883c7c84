package diag

import (
	"cmp"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"bigcalc/internal/source"
)

// shortLine is one rendered row of the short format.
type shortLine struct {
	label string // error, warning, info or note
	code  string
	path  string
	at    source.LineCol
	text  string
}

func (l shortLine) String() string {
	return l.label + " " + l.code + " " + l.path + ":" +
		strconv.FormatUint(uint64(l.at.Line), 10) + ":" +
		strconv.FormatUint(uint64(l.at.Col), 10) + " " + l.text
}

func compareShort(a, b shortLine) int {
	return cmp.Or(
		strings.Compare(a.path, b.path),
		cmp.Compare(a.at.Line, b.at.Line),
		cmp.Compare(a.at.Col, b.at.Col),
		strings.Compare(a.label, b.label),
		strings.Compare(a.code, b.code),
		strings.Compare(a.text, b.text),
	)
}

// FormatShortDiagnostics prints one "error SYN2002 path:line:col message" row
// per diagnostic, plus "note" rows when includeNotes is set. Rows are sorted
// by position; spans outside fs are skipped.
func FormatShortDiagnostics(diags []Diagnostic, fs *source.FileSet, includeNotes bool) string {
	if fs == nil {
		return ""
	}
	var rows []shortLine
	add := func(label string, code Code, sp source.Span, msg string) {
		if int(sp.File) >= fs.Len() {
			return
		}
		at, _ := fs.Resolve(sp)
		rows = append(rows, shortLine{
			label: label,
			code:  code.ID(),
			path:  shortPath(fs.Get(sp.File).Path),
			at:    at,
			text:  strings.Join(strings.Fields(msg), " "),
		})
	}
	for _, d := range diags {
		add(strings.ToLower(d.Severity.String()), d.Code, d.Primary, d.Message)
		if includeNotes {
			for _, n := range d.Notes {
				add("note", d.Code, n.Span, n.Msg)
			}
		}
	}
	slices.SortStableFunc(rows, compareShort)

	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.String()
	}
	return strings.Join(out, "\n")
}

func shortPath(p string) string {
	p = filepath.ToSlash(p)
	for strings.HasPrefix(p, "./") {
		p = p[2:]
	}
	return p
}
