package parser

import "bigcalc/internal/token"

// Op is the operator symbol of an expression.
type Op byte

const (
	OpAdd Op = '+'
	OpSub Op = '-'
	OpMul Op = '*'
	OpMod Op = '%'
)

func (op Op) String() string {
	return string(rune(op))
}

func opFromToken(tok token.Token) (Op, bool) {
	if !tok.IsOperator() {
		return 0, false
	}
	return Op(tok.Kind.Symbol()), true
}
