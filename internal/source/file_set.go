package source

import (
	"fmt"
	"os"

	"fortio.org/safecast"
)

// FileSet owns every input of a run and maps spans back to lines.
// It is not safe for concurrent writes; batch loads all files up front.
type FileSet struct {
	files []*File
}

func NewFileSet() *FileSet { return &FileSet{} }

// Add registers content under path and returns a fresh ID, even when the
// path was added before.
func (fs *FileSet) Add(path string, content []byte, flags FileFlags) FileID {
	if _, err := safecast.Conv[uint32](len(content)); err != nil {
		panic(fmt.Errorf("source: %s: %w", path, err))
	}
	n, err := safecast.Conv[uint32](len(fs.files))
	if err != nil {
		panic(fmt.Errorf("source: too many files: %w", err))
	}
	id := FileID(n)
	fs.files = append(fs.files, &File{
		ID:      id,
		Path:    normalizePath(path),
		Content: content,
		LineIdx: buildLineIndex(content),
		Flags:   flags,
	})
	return id
}

// Load reads path, strips a BOM, turns CRLF into LF and adds the result.
func (fs *FileSet) Load(path string) (FileID, error) {
	raw, err := os.ReadFile(path) // #nosec G304 -- paths come from the command line
	if err != nil {
		return 0, err
	}
	var flags FileFlags
	raw, bom := removeBOM(raw)
	raw, crlf := normalizeCRLF(raw)
	if bom {
		flags |= FileHadBOM
	}
	if crlf {
		flags |= FileNormalizedCRLF
	}
	return fs.Add(path, raw, flags), nil
}

// AddVirtual adds in-memory input such as a REPL line or an eval argument.
func (fs *FileSet) AddVirtual(name string, content []byte) FileID {
	return fs.Add(name, content, FileVirtual)
}

func (fs *FileSet) Get(id FileID) *File { return fs.files[id] }

func (fs *FileSet) Len() int { return len(fs.files) }

// Resolve turns both ends of span into line/column positions.
func (fs *FileSet) Resolve(span Span) (start, end LineCol) {
	idx := fs.files[span.File].LineIdx
	return toLineCol(idx, span.Start), toLineCol(idx, span.End)
}
