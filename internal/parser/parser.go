// Package parser recognises one calculator expression per line:
//
//	<integer> <operator> <integer>
//
// Literals are returned as raw text; turning them into numbers is the job of
// the evaluator.
package parser

import (
	"bigcalc/internal/diag"
	"bigcalc/internal/lexer"
	"bigcalc/internal/source"
	"bigcalc/internal/token"
)

type Options struct {
	// Reporter получает диагностику о первой ошибке строки; может быть nil.
	Reporter diag.Reporter
}

// Expr это разобранная строка.
type Expr struct {
	LHS  token.Token
	Op   Op
	RHS  token.Token
	Span source.Span
}

// Parser хранит состояние разбора одной строки
type Parser struct {
	lx    *lexer.Lexer
	start uint32 // смещение начала строки в файле; Pos считается от него
	opts  Options
}

// Parse разбирает диапазон [start, end) файла как одно выражение.
func Parse(file *source.File, start, end uint32, opts Options) (Expr, *Error) {
	p := Parser{
		lx:    lexer.NewRange(file, start, end, lexer.Options{}),
		start: start,
		opts:  opts,
	}
	return p.parseExpr()
}

// ParseString parses a standalone line. Offsets in the result are relative to line.
func ParseString(line string) (Expr, *Error) {
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("<line>", []byte(line)))
	return Parse(file, 0, uint32(len(file.Content)), Options{}) //nolint:gosec // G115: a single line never exceeds 4 GiB
}

func (p *Parser) parseExpr() (Expr, *Error) {
	lhs, err := p.expectInteger()
	if err != nil {
		return Expr{}, err
	}

	opTok := p.lx.Next()
	op, ok := opFromToken(opTok)
	if !ok {
		return Expr{}, p.fail(ExpectOperator, opTok)
	}

	rhs, err := p.expectInteger()
	if err != nil {
		return Expr{}, err
	}

	if end := p.lx.Next(); end.Kind != token.EOF {
		return Expr{}, p.fail(ExpectEnd, end)
	}

	return Expr{
		LHS:  lhs,
		Op:   op,
		RHS:  rhs,
		Span: lhs.Span.Cover(rhs.Span),
	}, nil
}

func (p *Parser) expectInteger() (token.Token, *Error) {
	tok := p.lx.Next()
	if tok.Kind != token.IntLit {
		return tok, p.fail(ExpectInteger, tok)
	}
	return tok, nil
}

// fail строит ошибку по неожиданному токену и репортит её.
func (p *Parser) fail(expected Expected, tok token.Token) *Error {
	e := &Error{
		Expected: expected,
		Pos:      tok.Span.Start - p.start,
		Span:     tok.Span,
		Text:     tok.Text,
	}
	switch tok.Kind {
	case token.Invalid:
		e.Kind = ErrInvalidChar
	case token.EOF:
		e.Kind = ErrUnexpectedEOF
	default:
		e.Kind = ErrExpected
	}
	if p.opts.Reporter != nil {
		diag.ReportError(p.opts.Reporter, e.Code(), e.Span, e.Error()).Emit()
	}
	return e
}
