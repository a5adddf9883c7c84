package lexer

import (
	"unicode/utf8"

	"bigcalc/internal/diag"
	"bigcalc/internal/token"
)

type class uint8

const (
	clsOther class = iota
	clsSpace       // C isspace in the "C" locale
	clsDigit
	clsSign
	clsOp // * %
)

var classes = [256]class{
	' ': clsSpace, '\t': clsSpace, '\n': clsSpace, '\v': clsSpace, '\f': clsSpace, '\r': clsSpace,
	'0': clsDigit, '1': clsDigit, '2': clsDigit, '3': clsDigit, '4': clsDigit,
	'5': clsDigit, '6': clsDigit, '7': clsDigit, '8': clsDigit, '9': clsDigit,
	'+': clsSign, '-': clsSign,
	'*': clsOp, '%': clsOp,
}

func classOf(b byte) class { return classes[b] }

// scan reads one token at a non-space byte.
func (lx *Lexer) scan() token.Token {
	m := lx.cursor.Mark()
	b0, b1, two := lx.cursor.Peek2()
	if !two {
		b0 = lx.cursor.Peek()
	}
	switch {
	case classOf(b0) == clsDigit,
		classOf(b0) == clsSign && two && classOf(b1) == clsDigit:
		// [+-]?[0-9]+; ведущие нули снимает bignum.Parse
		lx.cursor.Bump()
		for classOf(lx.cursor.Peek()) == clsDigit {
			lx.cursor.Bump()
		}
		return lx.make(token.IntLit, m)
	case classOf(b0) == clsSign || classOf(b0) == clsOp:
		kind, _ := token.OperatorKind(lx.cursor.Bump())
		return lx.make(kind, m)
	}

	// неизвестный символ: Invalid на всю руну, чтобы Text был валидным UTF-8
	_, size := utf8.DecodeRune(lx.cursor.Rest())
	for range size {
		lx.cursor.Bump()
	}
	tok := lx.make(token.Invalid, m)
	diag.ReportError(lx.opts.Reporter, diag.LexInvalidChar, tok.Span, "invalid character").Emit()
	return tok
}
