// Package eval applies the big integer core to parsed expressions and
// classifies failures the way the command line reports them.
package eval

import (
	"errors"
	"fmt"

	"bigcalc/internal/bignum"
	"bigcalc/internal/parser"
	"bigcalc/internal/source"
)

// ErrUnsupportedOp is wrapped by errors returned for unknown operator symbols.
var ErrUnsupportedOp = errors.New("unsupported operator")

// UnsupportedOpError carries the offending operator byte.
type UnsupportedOpError struct {
	Op parser.Op
}

func (e *UnsupportedOpError) Error() string {
	return fmt.Sprintf("unsupported operator '%c'", byte(e.Op))
}

func (e *UnsupportedOpError) Unwrap() error { return ErrUnsupportedOp }

// Apply parses both operands and applies op.
func Apply(lhs, rhs string, op parser.Op) (bignum.BigInt, error) {
	a, err := bignum.Parse(lhs)
	if err != nil {
		return bignum.BigInt{}, err
	}
	b, err := bignum.Parse(rhs)
	if err != nil {
		return bignum.BigInt{}, err
	}

	switch op {
	case parser.OpAdd:
		return bignum.Add(a, b), nil
	case parser.OpSub:
		return bignum.Sub(a, b), nil
	case parser.OpMul:
		return bignum.Mul(a, b), nil
	case parser.OpMod:
		return bignum.Mod(a, b)
	default:
		return bignum.BigInt{}, &UnsupportedOpError{Op: op}
	}
}

// Line parses and evaluates a single line of input.
func Line(text string) Result {
	expr, perr := parser.ParseString(text)
	if perr != nil {
		return Result{Input: text, Err: perr, Stage: StageParse}
	}
	return Expr(text, expr)
}

// Range evaluates bytes [start, end) of file as one line.
func Range(file *source.File, start, end uint32, opts parser.Options) Result {
	text := string(file.Content[start:end])
	expr, perr := parser.Parse(file, start, end, opts)
	if perr != nil {
		return Result{Input: text, Err: perr, Stage: StageParse}
	}
	return Expr(text, expr)
}

// Expr evaluates an already parsed expression.
func Expr(input string, expr parser.Expr) Result {
	res := Result{Input: input, Expr: expr}
	v, err := Apply(expr.LHS.Text, expr.RHS.Text, expr.Op)
	if err != nil {
		res.Err = err
		res.Stage = classify(err)
		return res
	}
	res.Value = v
	res.Output = v.String()
	return res
}

// Canonical renders expr with single spaces between parts; whitespace
// variants of one expression share it.
func Canonical(expr parser.Expr) string {
	return expr.LHS.Text + " " + expr.Op.String() + " " + expr.RHS.Text
}

func classify(err error) Stage {
	var perr *parser.Error
	switch {
	case errors.As(err, &perr):
		return StageParse
	case errors.Is(err, bignum.ErrMalformed):
		return StageNumber
	default:
		// деление на ноль и неизвестный оператор
		return StageMath
	}
}
