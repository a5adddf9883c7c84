package source

// FileID indexes a File inside its FileSet.
type FileID uint32

// FileFlags record how Content was obtained.
type FileFlags uint8

const (
	FileVirtual        FileFlags = 1 << iota // stdin, argv or a test
	FileHadBOM                               // UTF-8 BOM stripped
	FileNormalizedCRLF                       // \r\n rewritten to \n
)

// File is one input. Every line of Content is a separate expression.
type File struct {
	ID      FileID
	Path    string
	Content []byte
	LineIdx []uint32 // offsets of '\n'
	Flags   FileFlags
}

// LineCol is a 1-based position.
type LineCol struct {
	Line uint32
	Col  uint32
}

func (f *File) size() uint32 { return uint32(len(f.Content)) } //nolint:gosec // checked in FileSet.Add

// LineCount is the number of lines; a final '\n' does not start a new one.
func (f *File) LineCount() uint32 {
	n := uint32(len(f.LineIdx)) //nolint:gosec // at most size()
	if f.size() > 0 && f.Content[f.size()-1] != '\n' {
		n++
	}
	return n
}

// LineBounds returns [start, end) of line n (1-based) without its '\n'.
func (f *File) LineBounds(n uint32) (start, end uint32, ok bool) {
	if n == 0 || n > f.LineCount() {
		return 0, 0, false
	}
	end = f.size()
	if i := int(n) - 1; i < len(f.LineIdx) {
		end = f.LineIdx[i]
	}
	if n > 1 {
		start = f.LineIdx[n-2] + 1
	}
	return start, end, true
}

// GetLine returns line n or "" when there is none.
func (f *File) GetLine(n uint32) string {
	if s, e, ok := f.LineBounds(n); ok {
		return string(f.Content[s:e])
	}
	return ""
}
