package diag

import (
	"testing"

	"bigcalc/internal/source"
)

func TestFormatShortDiagnostics(t *testing.T) {
	fs := source.NewFileSet()
	file := fs.Add("./testdata/sums.calc", []byte("1 + 2\n1 & 2\n"), 0)

	diags := []Diagnostic{
		{
			Severity: SevError,
			Code:     SynExpected,
			Message:  "expected operator\nat pos 2",
			Primary:  source.Span{File: file, Start: 8, End: 9},
			Notes: []Note{
				{Span: source.Span{File: file, Start: 6, End: 7}, Msg: "left operand"},
			},
		},
		{
			Severity: SevWarning,
			Code:     NumInfo,
			Message:  "first line",
			Primary:  source.Span{File: file, Start: 0, End: 1},
		},
		{
			Severity: SevError,
			Code:     LexInvalidChar,
			Message:  "unresolvable",
			Primary:  source.Span{File: 42},
		},
	}

	expected := "warning NUM3000 testdata/sums.calc:1:1 first line\n" +
		"note SYN2002 testdata/sums.calc:2:1 left operand\n" +
		"error SYN2002 testdata/sums.calc:2:3 expected operator at pos 2"

	if got := FormatShortDiagnostics(diags, fs, true); got != expected {
		t.Fatalf("unexpected short diagnostics:\nwant:\n%s\n\ngot:\n%s", expected, got)
	}
	if got := FormatShortDiagnostics(nil, fs, true); got != "" {
		t.Errorf("empty input produced %q", got)
	}
}
