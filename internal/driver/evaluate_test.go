package driver

import (
	"testing"

	"bigcalc/internal/bignum"
	"bigcalc/internal/diag"
	"bigcalc/internal/eval"
	"bigcalc/internal/parser"
)

func TestFailedSpan(t *testing.T) {
	expr, perr := parser.ParseString("12 % 0")
	if perr != nil {
		t.Fatal(perr)
	}
	res := eval.Expr("12 % 0", expr)
	if sp := failedSpan(res); sp != expr.RHS.Span {
		t.Errorf("div by zero span = %v, want rhs %v", sp, expr.RHS.Span)
	}

	// операнды из лексера всегда цифры; StageNumber проверяем вручную
	numRes := eval.Result{Expr: expr, Stage: eval.StageNumber, Err: &bignum.ParseError{Kind: bignum.ParseBadChar}}
	numRes.Expr.LHS.Text = "1x"
	if sp := failedSpan(numRes); sp != expr.LHS.Span {
		t.Errorf("number span = %v, want lhs %v", sp, expr.LHS.Span)
	}
}

func TestReportResult(t *testing.T) {
	bag := diag.NewBag(4)
	expr, _ := parser.ParseString("1 % 0")
	reportResult(diag.BagReporter{Bag: bag}, eval.Expr("1 % 0", expr))
	reportResult(diag.BagReporter{Bag: bag}, eval.Expr("1 % 0", expr)) // повтор не схлопывается
	ok, _ := parser.ParseString("1 + 1")
	reportResult(diag.BagReporter{Bag: bag}, eval.Expr("1 + 1", ok))

	if bag.Len() != 2 {
		t.Fatalf("Len = %d, want 2", bag.Len())
	}
	d := bag.Items()[0]
	if d.Code != diag.MathDivByZero || d.Message != "division by zero" || len(d.Notes) != 1 {
		t.Errorf("diagnostic = %+v", d)
	}
}
