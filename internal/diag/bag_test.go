package diag

import (
	"testing"

	"bigcalc/internal/source"
)

func span(file source.FileID, start, end uint32) source.Span {
	return source.Span{File: file, Start: start, End: end}
}

func TestBagLimit(t *testing.T) {
	b := NewBag(2)
	if !b.Add(NewError(LexInvalidChar, span(0, 0, 1), "a")) {
		t.Fatal("first Add rejected")
	}
	b.Add(NewError(LexInvalidChar, span(0, 1, 2), "b"))
	if b.Add(NewError(LexInvalidChar, span(0, 2, 3), "c")) {
		t.Error("Add beyond limit accepted")
	}
	if b.Len() != 2 || !b.HasErrors() {
		t.Errorf("Len=%d HasErrors=%v", b.Len(), b.HasErrors())
	}
}

func TestBagDropped(t *testing.T) {
	b := NewBag(1)
	for i := range uint32(3) {
		b.Add(NewError(LexInvalidChar, span(0, i, i+1), "x"))
	}
	if b.Cap() != 1 || b.Dropped() != 2 {
		t.Errorf("Cap=%d Dropped=%d, want 1/2", b.Cap(), b.Dropped())
	}
	all := NewBag(0)
	all.Merge(b)
	if all.Len() != 1 || all.Dropped() != 2 || all.Cap() != 1 {
		t.Errorf("merged Len=%d Dropped=%d Cap=%d", all.Len(), all.Dropped(), all.Cap())
	}
}

func TestBagSort(t *testing.T) {
	b := NewBag(10)
	b.Add(NewError(SynExpected, span(1, 0, 1), "file1"))
	b.Add(New(SevWarning, NumInfo, span(0, 4, 5), "warn"))
	b.Add(NewError(MathDivByZero, span(0, 4, 5), "err"))
	b.Add(NewError(LexInvalidChar, span(0, 0, 1), "first"))
	b.Sort()

	want := []string{"first", "err", "warn", "file1"}
	for i, d := range b.Items() {
		if d.Message != want[i] {
			t.Errorf("item %d = %q, want %q", i, d.Message, want[i])
		}
	}
}

func TestBagMergeAndDedup(t *testing.T) {
	a := NewBag(1)
	a.Add(NewError(SynExpected, span(0, 0, 1), "x"))
	other := NewBag(4)
	other.Add(NewError(SynExpected, span(0, 0, 1), "x again"))
	other.Add(NewError(SynUnexpectedEOF, span(0, 3, 3), "eof"))

	a.Merge(other)
	if a.Len() != 3 {
		t.Fatalf("after Merge Len = %d, want 3", a.Len())
	}
	a.Dedup()
	if a.Len() != 2 {
		t.Errorf("after Dedup Len = %d, want 2", a.Len())
	}
}

func TestPendingEmitsOnce(t *testing.T) {
	b := NewBag(10)
	rb := ReportError(BagReporter{Bag: b}, MathUnsupportedOp, span(0, 2, 3), "unsupported operator '^'").
		WithNote(span(0, 0, 1), "left operand")
	rb.Emit()
	rb.Emit()
	if b.Len() != 1 {
		t.Fatalf("Len = %d, want 1", b.Len())
	}
	if got := b.Items()[0]; len(got.Notes) != 1 || got.Code != MathUnsupportedOp {
		t.Errorf("unexpected diagnostic %+v", got)
	}
}

func TestReporterFunc(t *testing.T) {
	var got []Code
	r := ReporterFunc(func(d Diagnostic) { got = append(got, d.Code) })
	ReportError(r, SynExpected, span(0, 1, 2), "expected operator at pos 1").Emit()
	ReportError(nil, SynExpected, span(0, 1, 2), "dropped").Emit()
	if len(got) != 1 || got[0] != SynExpected {
		t.Errorf("got %v", got)
	}
}

func TestWithNoteDoesNotAlias(t *testing.T) {
	base := NewError(MathDivByZero, span(0, 4, 5), "division by zero").
		WithNote(span(0, 0, 5), "in expression 1 % 0")
	a := base.WithNote(span(0, 0, 1), "a")
	b := base.WithNote(span(0, 4, 5), "b")
	if a.Notes[1].Msg != "a" || b.Notes[1].Msg != "b" || len(base.Notes) != 1 {
		t.Errorf("notes aliased: a=%v b=%v base=%v", a.Notes, b.Notes, base.Notes)
	}
}

func TestCodeStrings(t *testing.T) {
	tests := []struct {
		code Code
		id   string
		str  string
	}{
		{LexInvalidChar, "LEX1001", "[LEX1001]: Invalid character"},
		{SynExpected, "SYN2002", "[SYN2002]: Unexpected token"},
		{NumMalformed, "NUM3001", "[NUM3001]: Malformed integer"},
		{MathDivByZero, "MTH4001", "[MTH4001]: Division by zero"},
		{IOLoadFileError, "IO5001", "[IO5001]: I/O load file error"},
		{UnknownCode, "E0000", "[E0000]: Unknown error"},
		{Code(4999), "MTH4999", "[MTH4999]: Unknown error"},
	}
	for _, tt := range tests {
		if got := tt.code.ID(); got != tt.id {
			t.Errorf("ID(%d) = %q, want %q", tt.code, got, tt.id)
		}
		if got := tt.code.String(); got != tt.str {
			t.Errorf("String(%d) = %q, want %q", tt.code, got, tt.str)
		}
	}
}

func TestCodeStage(t *testing.T) {
	for code, want := range map[Code]string{
		LexInvalidChar:    "parse",
		SynUnexpectedEOF:  "parse",
		NumMalformed:      "number",
		MathUnsupportedOp: "math",
		IOLoadFileError:   "io",
		UnknownCode:       "",
		Code(9001):        "",
	} {
		if got := code.Stage(); got != want {
			t.Errorf("%s.Stage() = %q, want %q", code.ID(), got, want)
		}
	}
}

func TestBagNegativeLimit(t *testing.T) {
	b := NewBag(-1)
	if b.Add(NewError(LexInvalidChar, span(0, 0, 1), "a")) {
		t.Error("Add accepted with zero capacity")
	}
}
