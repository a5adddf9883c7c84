// Package lexer splits calculator input into integer literals and the four
// operator tokens.
package lexer

import (
	"bigcalc/internal/diag"
	"bigcalc/internal/source"
	"bigcalc/internal/token"
)

type Options struct {
	// Reporter получает LEX1001 на каждый неизвестный символ; при nil ошибки молча пропускаются.
	Reporter diag.Reporter
}

// Lexer produces tokens on demand. After EOF it keeps returning EOF.
type Lexer struct {
	file    *source.File
	cursor  Cursor
	opts    Options
	pending []token.Token // не больше одного, см. Peek
}

// New lexes the whole file.
func New(file *source.File, opts Options) *Lexer {
	return &Lexer{file: file, cursor: NewCursor(file), opts: opts}
}

// NewRange lexes [start, end) of file, normally one line.
func NewRange(file *source.File, start, end uint32, opts Options) *Lexer {
	return &Lexer{file: file, cursor: NewRangeCursor(file, start, end), opts: opts}
}

func (lx *Lexer) Next() token.Token {
	if n := len(lx.pending); n > 0 {
		tok := lx.pending[n-1]
		lx.pending = lx.pending[:n-1]
		return tok
	}
	for classOf(lx.cursor.Peek()) == clsSpace {
		lx.cursor.Bump()
	}
	if lx.cursor.EOF() {
		return token.Token{Kind: token.EOF, Span: source.At(lx.file.ID, lx.cursor.Off)}
	}
	return lx.scan()
}

// Peek returns the next token without consuming it.
func (lx *Lexer) Peek() token.Token {
	tok := lx.Next()
	lx.pending = append(lx.pending, tok)
	return tok
}

// All returns every token up to and including EOF.
func (lx *Lexer) All() []token.Token {
	var out []token.Token
	for {
		tok := lx.Next()
		out = append(out, tok)
		if tok.Kind == token.EOF {
			return out
		}
	}
}

func (lx *Lexer) make(k token.Kind, m Mark) token.Token {
	sp := lx.cursor.SpanFrom(m)
	return token.Token{Kind: k, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
}
