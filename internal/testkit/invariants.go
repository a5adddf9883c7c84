// Package testkit holds invariant checks shared by tests and fuzz harnesses.
package testkit

import (
	"fmt"

	"fortio.org/safecast"

	"bigcalc/internal/parser"
	"bigcalc/internal/source"
	"bigcalc/internal/token"
)

// CheckTokenSpans verifies a lexer token stream over sf:
// 1) spans are inside the content and point at sf
// 2) tokens are ordered and do not overlap
// 3) Text matches the covered bytes, EOF is last and empty
func CheckTokenSpans(tokens []token.Token, sf *source.File) error {
	if sf == nil {
		return fmt.Errorf("nil file")
	}
	lenContent, err := safecast.Conv[uint32](len(sf.Content))
	if err != nil {
		return fmt.Errorf("len content overflow: %w", err)
	}
	if len(tokens) == 0 || tokens[len(tokens)-1].Kind != token.EOF {
		return fmt.Errorf("token stream does not end with EOF")
	}

	var prevEnd uint32
	for i, tok := range tokens {
		sp := tok.Span
		if sp.File != sf.ID {
			return fmt.Errorf("token %d: span points to file %d, want %d", i, sp.File, sf.ID)
		}
		if sp.Start > sp.End || sp.End > lenContent {
			return fmt.Errorf("token %d: span %v outside content of %d bytes", i, sp, lenContent)
		}
		if sp.Start < prevEnd {
			return fmt.Errorf("token %d: span %v overlaps previous end %d", i, sp, prevEnd)
		}
		prevEnd = sp.End

		if tok.Kind == token.EOF {
			if i != len(tokens)-1 || !sp.Empty() {
				return fmt.Errorf("token %d: EOF must be last and empty, got %v", i, sp)
			}
			continue
		}
		if sp.Empty() {
			return fmt.Errorf("token %d (%s): empty span", i, tok.Kind)
		}
		if got := string(sf.Content[sp.Start:sp.End]); got != tok.Text {
			return fmt.Errorf("token %d (%s): text %q, content %q", i, tok.Kind, tok.Text, got)
		}
	}
	return nil
}

// CheckExprSpans verifies a parsed expression taken from sf[start:end):
// operands are non-empty integer literals inside the range, LHS precedes RHS,
// and Span covers exactly the two operands.
func CheckExprSpans(expr parser.Expr, sf *source.File, start, end uint32) error {
	if sf == nil {
		return fmt.Errorf("nil file")
	}
	for _, side := range []struct {
		name string
		tok  token.Token
	}{{"lhs", expr.LHS}, {"rhs", expr.RHS}} {
		sp := side.tok.Span
		if side.tok.Kind != token.IntLit {
			return fmt.Errorf("%s: kind %s, want IntLit", side.name, side.tok.Kind)
		}
		if sp.Empty() || sp.Start < start || sp.End > end {
			return fmt.Errorf("%s: span %v outside line [%d, %d)", side.name, sp, start, end)
		}
		if got := string(sf.Content[sp.Start:sp.End]); got != side.tok.Text {
			return fmt.Errorf("%s: text %q, content %q", side.name, side.tok.Text, got)
		}
	}
	if expr.LHS.Span.End > expr.RHS.Span.Start {
		return fmt.Errorf("lhs %v does not precede rhs %v", expr.LHS.Span, expr.RHS.Span)
	}
	if want := expr.LHS.Span.Cover(expr.RHS.Span); expr.Span != want {
		return fmt.Errorf("expr span %v, want %v", expr.Span, want)
	}
	switch expr.Op {
	case parser.OpAdd, parser.OpSub, parser.OpMul, parser.OpMod:
		return nil
	default:
		return fmt.Errorf("unknown operator %q", expr.Op.String())
	}
}
