package token

import "bigcalc/internal/source"

// Token is a lexeme; Text is exactly the bytes under Span.
type Token struct {
	Kind Kind
	Span source.Span
	Text string
}

func (t Token) IsOperator() bool { return t.Kind.Symbol() != 0 }

func (t Token) IsLiteral() bool { return t.Kind == IntLit }
