package driver

import (
	"errors"
	"fmt"

	"bigcalc/internal/bignum"
	"bigcalc/internal/diag"
	"bigcalc/internal/eval"
	"bigcalc/internal/parser"
	"bigcalc/internal/source"
)

// evaluateExpr runs expr through the cache: a hit skips arithmetic, a miss is
// computed and stored. Cache failures never fail the line.
func evaluateExpr(cache *DiskCache, input string, expr parser.Expr) (res eval.Result, hit bool) {
	if cache == nil {
		return eval.Expr(input, expr), false
	}

	canonical := eval.Canonical(expr)
	key := KeyFor(canonical)

	var payload DiskPayload
	if ok, err := cache.Get(key, &payload); err == nil && ok && payload.Expr == canonical {
		if res, ok := resultFromPayload(input, expr, &payload); ok {
			return res, true
		}
	}

	res = eval.Expr(input, expr)
	payload = DiskPayload{
		Expr:   canonical,
		Output: res.Output,
		Stage:  uint8(res.Stage),
	}
	if res.Err != nil {
		payload.Message = res.Err.Error()
	}
	_ = cache.Put(key, &payload) //nolint:errcheck // кэш необязателен
	return res, false
}

// cachedError restores a failure read back from the cache.
type cachedError struct {
	msg   string
	stage eval.Stage
}

func (e *cachedError) Error() string { return e.msg }

// Unwrap keeps errors.Is working for the sentinel of the original stage.
// The parser only yields known operators, so a math failure is a division by zero.
func (e *cachedError) Unwrap() error {
	switch e.stage {
	case eval.StageNumber:
		return bignum.ErrMalformed
	case eval.StageMath:
		return bignum.ErrDivByZero
	default:
		return nil
	}
}

func resultFromPayload(input string, expr parser.Expr, p *DiskPayload) (eval.Result, bool) {
	res := eval.Result{Input: input, Expr: expr, Stage: eval.Stage(p.Stage)}
	if res.Stage != eval.StageOK {
		res.Err = &cachedError{msg: p.Message, stage: res.Stage}
		return res, true
	}
	v, err := bignum.Parse(p.Output)
	if err != nil || v.String() != p.Output {
		return eval.Result{}, false
	}
	res.Value = v
	res.Output = p.Output
	return res, true
}

// reportResult adds a diagnostic for a failed non-parse result. Parse errors
// are reported by the parser itself.
func reportResult(r diag.Reporter, res eval.Result) {
	if res.OK() || res.Stage == eval.StageParse {
		return
	}
	diag.ReportError(r, res.Code(), failedSpan(res), res.Err.Error()).
		WithNote(res.Expr.Span, "in expression "+eval.Canonical(res.Expr)).
		Emit()
}

// failedSpan points at the operand that could not be read, or at the
// divisor for a division by zero.
func failedSpan(res eval.Result) source.Span {
	switch res.Stage {
	case eval.StageNumber:
		if _, err := bignum.Parse(res.Expr.LHS.Text); err != nil {
			return res.Expr.LHS.Span
		}
		return res.Expr.RHS.Span
	case eval.StageMath:
		if errors.Is(res.Err, bignum.ErrDivByZero) {
			return res.Expr.RHS.Span
		}
	}
	return res.Expr.Span
}

// lineName is the trace span name of a line.
func lineName(n uint32) string {
	return fmt.Sprintf("line:%d", n)
}
