package source

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFileSetIDs(t *testing.T) {
	fs := NewFileSet()

	id1 := fs.Add("./exprs.txt", []byte("1 + 2"), 0)
	id2 := fs.Add("exprs.txt", []byte("3 * 4"), 0)
	if id1 != 0 || id2 != 1 {
		t.Fatalf("ids = %d, %d; want 0, 1", id1, id2)
	}
	if string(fs.Get(id1).Content) != "1 + 2" {
		t.Errorf("first version lost: %q", fs.Get(id1).Content)
	}
	if p := fs.Get(id1).Path; p != "exprs.txt" {
		t.Errorf("path not normalised: %q", p)
	}
	if fs.Len() != 2 {
		t.Errorf("Len = %d, want 2", fs.Len())
	}
	if fs.Get(fs.AddVirtual("<stdin>", nil)).Flags&FileVirtual == 0 {
		t.Error("AddVirtual did not set FileVirtual")
	}
}

func TestLoadNormalizes(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "in.txt")
	content := append([]byte{0xEF, 0xBB, 0xBF}, []byte("1 + 2\r\n3 % 0\r\n")...)
	if err := os.WriteFile(path, content, 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	fs := NewFileSet()
	id, err := fs.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	f := fs.Get(id)
	if string(f.Content) != "1 + 2\n3 % 0\n" {
		t.Fatalf("content = %q", f.Content)
	}
	if f.Flags&FileHadBOM == 0 || f.Flags&FileNormalizedCRLF == 0 {
		t.Fatalf("flags = %b", f.Flags)
	}
}

func TestLineBounds(t *testing.T) {
	tests := []struct {
		name    string
		content string
		lines   []string
	}{
		{"empty", "", nil},
		{"single no newline", "1 + 2", []string{"1 + 2"}},
		{"trailing newline", "1 + 2\n", []string{"1 + 2"}},
		{"blank middle", "a\n\nb", []string{"a", "", "b"}},
		{"only newlines", "\n\n", []string{"", ""}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			fs := NewFileSet()
			f := fs.Get(fs.AddVirtual("t", []byte(tc.content)))
			if got := f.LineCount(); int(got) != len(tc.lines) {
				t.Fatalf("LineCount = %d, want %d", got, len(tc.lines))
			}
			for i, want := range tc.lines {
				if got := f.GetLine(uint32(i + 1)); got != want {
					t.Errorf("line %d = %q, want %q", i+1, got, want)
				}
			}
			if _, _, ok := f.LineBounds(uint32(len(tc.lines) + 1)); ok {
				t.Errorf("LineBounds past end reported ok")
			}
		})
	}
}

func TestResolve(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("t", []byte("1 + 2\n30 % x\n"))

	start, end := fs.Resolve(Span{File: id, Start: 11, End: 12})
	if start != (LineCol{Line: 2, Col: 6}) || end != (LineCol{Line: 2, Col: 7}) {
		t.Fatalf("Resolve = %+v..%+v", start, end)
	}
	start, _ = fs.Resolve(Span{File: id, Start: 0, End: 1})
	if start != (LineCol{Line: 1, Col: 1}) {
		t.Fatalf("Resolve first = %+v", start)
	}
}

func TestSpanCover(t *testing.T) {
	a := Span{File: 1, Start: 4, End: 6}
	b := Span{File: 1, Start: 1, End: 5}
	if got := a.Cover(b); got != (Span{File: 1, Start: 1, End: 6}) {
		t.Fatalf("Cover = %v", got)
	}
	if got := a.Cover(Span{File: 2, Start: 0, End: 9}); got != a {
		t.Fatalf("Cover across files = %v", got)
	}
	if !(Span{Start: 3, End: 3}).Empty() || a.Len() != 2 {
		t.Fatal("Empty/Len mismatch")
	}
}

func TestSpanContainsAndString(t *testing.T) {
	sp := Span{File: 2, Start: 4, End: 7}
	for off, want := range map[uint32]bool{3: false, 4: true, 6: true, 7: false} {
		if got := sp.Contains(off); got != want {
			t.Errorf("Contains(%d) = %v, want %v", off, got, want)
		}
	}
	if got := sp.String(); got != "2:4-7" {
		t.Errorf("String() = %q", got)
	}
	if at := At(1, 9); !at.Empty() || at.Contains(9) {
		t.Errorf("At(1, 9) = %v", at)
	}
}

func TestRemoveBOMAndCRLF(t *testing.T) {
	got, bom := removeBOM([]byte("\xEF\xBB\xBF1 + 2"))
	if !bom || string(got) != "1 + 2" {
		t.Errorf("removeBOM = %q, %v", got, bom)
	}
	got, crlf := normalizeCRLF([]byte("1\r\n2\r3"))
	if !crlf || string(got) != "1\n2\r3" {
		t.Errorf("normalizeCRLF = %q, %v", got, crlf)
	}
	if _, crlf := normalizeCRLF([]byte("1\r2")); crlf {
		t.Error("lone CR reported as CRLF")
	}
}
