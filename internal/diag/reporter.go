package diag

import "bigcalc/internal/source"

// Reporter receives diagnostics from the lexer, parser and evaluator.
type Reporter interface {
	Report(d Diagnostic)
}

// ReporterFunc adapts a function to Reporter.
type ReporterFunc func(Diagnostic)

func (f ReporterFunc) Report(d Diagnostic) { f(d) }

// BagReporter stores everything it receives in Bag; a nil Bag drops it.
type BagReporter struct{ Bag *Bag }

func (r BagReporter) Report(d Diagnostic) {
	if r.Bag != nil {
		r.Bag.Add(d)
	}
}

// Pending is a diagnostic being assembled; Emit hands it to the reporter once.
type Pending struct {
	to      Reporter
	diag    Diagnostic
	emitted bool
}

// ReportError starts an error diagnostic for r. A nil r is allowed.
func ReportError(r Reporter, code Code, primary source.Span, msg string) *Pending {
	return &Pending{to: r, diag: NewError(code, primary, msg)}
}

func (p *Pending) WithNote(sp source.Span, msg string) *Pending {
	p.diag = p.diag.WithNote(sp, msg)
	return p
}

func (p *Pending) Emit() {
	if p.emitted {
		return
	}
	p.emitted = true
	if p.to != nil {
		p.to.Report(p.diag)
	}
}

// Diagnostic returns what Emit would send.
func (p *Pending) Diagnostic() Diagnostic {
	return p.diag
}
