package eval

import (
	"bigcalc/internal/bignum"
	"bigcalc/internal/diag"
	"bigcalc/internal/parser"
)

// Stage is the pipeline step a line failed in. StageOK means no failure.
type Stage uint8

const (
	StageOK Stage = iota
	StageParse
	StageNumber
	StageMath
)

func (s Stage) String() string {
	switch s {
	case StageOK:
		return "ok"
	case StageParse:
		return "parse"
	case StageNumber:
		return "number"
	case StageMath:
		return "math"
	default:
		return "unknown"
	}
}

// Result is the outcome of evaluating one line.
type Result struct {
	Input  string
	Expr   parser.Expr
	Value  bignum.BigInt
	Output string // каноническая запись Value; пусто при ошибке
	Err    error
	Stage  Stage
}

func (r Result) OK() bool {
	return r.Err == nil
}

// Message renders the failure as "<stage> error: <detail>", or "" on success.
func (r Result) Message() string {
	if r.Err == nil {
		return ""
	}
	return r.Stage.String() + " error: " + r.Err.Error()
}

// Code maps the failure onto a diagnostic code.
func (r Result) Code() diag.Code {
	if perr, ok := r.Err.(*parser.Error); ok {
		return perr.Code()
	}
	switch r.Stage {
	case StageNumber:
		return diag.NumMalformed
	case StageMath:
		if _, ok := r.Err.(*UnsupportedOpError); ok {
			return diag.MathUnsupportedOp
		}
		return diag.MathDivByZero
	default:
		return diag.UnknownCode
	}
}
