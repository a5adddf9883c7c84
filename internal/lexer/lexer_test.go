package lexer

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"bigcalc/internal/diag"
	"bigcalc/internal/token"
)

type tok struct {
	Kind  token.Kind
	Text  string
	Start uint32
}

func lexAll(t *testing.T, input string, opts Options) []tok {
	t.Helper()
	lx := New(createFile(input), opts)
	var out []tok
	for _, tk := range lx.All() {
		out = append(out, tok{tk.Kind, tk.Text, tk.Span.Start})
	}
	return out
}

func TestLexer(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []tok
	}{
		{
			name:  "simple sum",
			input: "123 + 456",
			want: []tok{
				{token.IntLit, "123", 0},
				{token.Plus, "+", 4},
				{token.IntLit, "456", 6},
				{token.EOF, "", 9},
			},
		},
		{
			name:  "signed literals with padding",
			input: "   -0012   *   +34 ",
			want: []tok{
				{token.IntLit, "-0012", 3},
				{token.Star, "*", 11},
				{token.IntLit, "+34", 15},
				{token.EOF, "", 19},
			},
		},
		{
			name:  "modulo",
			input: "5 % 2",
			want: []tok{
				{token.IntLit, "5", 0},
				{token.Percent, "%", 2},
				{token.IntLit, "2", 4},
				{token.EOF, "", 5},
			},
		},
		{
			name:  "sign glued to digits",
			input: "1 -2",
			want: []tok{
				{token.IntLit, "1", 0},
				{token.IntLit, "-2", 2},
				{token.EOF, "", 4},
			},
		},
		{
			name:  "sign with space is operator",
			input: "1 - 2",
			want: []tok{
				{token.IntLit, "1", 0},
				{token.Minus, "-", 2},
				{token.IntLit, "2", 4},
				{token.EOF, "", 5},
			},
		},
		{
			name:  "double sign",
			input: "--5",
			want: []tok{
				{token.Minus, "-", 0},
				{token.IntLit, "-5", 1},
				{token.EOF, "", 3},
			},
		},
		{
			name:  "invalid ascii",
			input: "1 & 2",
			want: []tok{
				{token.IntLit, "1", 0},
				{token.Invalid, "&", 2},
				{token.IntLit, "2", 4},
				{token.EOF, "", 5},
			},
		},
		{
			name:  "invalid multibyte",
			input: "7×8",
			want: []tok{
				{token.IntLit, "7", 0},
				{token.Invalid, "×", 1},
				{token.IntLit, "8", 3},
				{token.EOF, "", 4},
			},
		},
		{
			name:  "empty",
			input: " \t\r\v\f",
			want:  []tok{{token.EOF, "", 5}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := lexAll(t, tt.input, Options{})
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("tokens mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestLexerEOFIsSticky(t *testing.T) {
	lx := New(createFile("1"), Options{})
	lx.Next()
	for range 3 {
		if k := lx.Next().Kind; k != token.EOF {
			t.Fatalf("Next() after EOF = %v", k)
		}
	}
}

func TestLexerPeek(t *testing.T) {
	lx := New(createFile("10 % 3"), Options{})
	p := lx.Peek()
	n := lx.Next()
	if p != n {
		t.Errorf("Peek() = %+v, Next() = %+v", p, n)
	}
	if lx.Next().Kind != token.Percent {
		t.Error("expected Percent after literal")
	}
}

func TestLexerRange(t *testing.T) {
	file := createFile("1 + 2\n30 * 4\n")
	lx := NewRange(file, 6, 12, Options{})
	toks := lx.All()
	if len(toks) != 4 {
		t.Fatalf("got %d tokens, want 4", len(toks))
	}
	if toks[0].Text != "30" || toks[0].Span.Start != 6 {
		t.Errorf("first token = %+v", toks[0])
	}
	if toks[3].Kind != token.EOF || toks[3].Span.Start != 12 {
		t.Errorf("EOF token = %+v", toks[3])
	}
}

func TestLexerReportsInvalid(t *testing.T) {
	bag := diag.NewBag(10)
	lexAll(t, "1 ? 2 ! 3", Options{Reporter: diag.BagReporter{Bag: bag}})
	var codes []diag.Code
	var starts []uint32
	for _, d := range bag.Items() {
		codes = append(codes, d.Code)
		starts = append(starts, d.Primary.Start)
	}
	if diff := cmp.Diff([]diag.Code{diag.LexInvalidChar, diag.LexInvalidChar}, codes); diff != "" {
		t.Fatalf("codes mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]uint32{2, 6}, starts); diff != "" {
		t.Errorf("starts mismatch (-want +got):\n%s", diff)
	}
}
