package lexer

import (
	"fmt"

	"fortio.org/safecast"

	"bigcalc/internal/source"
)

// Cursor ходит по окну байтов файла. Off считается от начала файла,
// а не окна, поэтому спаны получаются сразу в координатах FileSet.
type Cursor struct {
	file source.FileID
	win  []byte // Content[:limit]
	Off  uint32
}

func fileLimit(f *source.File) uint32 {
	n, err := safecast.Conv[uint32](len(f.Content))
	if err != nil {
		panic(fmt.Errorf("lexer: file %q too large: %w", f.Path, err))
	}
	return n
}

// NewCursor covers the whole file.
func NewCursor(f *source.File) Cursor {
	return Cursor{file: f.ID, win: f.Content}
}

// NewRangeCursor covers [start, end) clamped to the file bounds.
func NewRangeCursor(f *source.File, start, end uint32) Cursor {
	end = min(end, fileLimit(f))
	return Cursor{file: f.ID, win: f.Content[:end], Off: min(start, end)}
}

// Limit is the exclusive upper bound for Off.
func (c *Cursor) Limit() uint32 { return uint32(len(c.win)) } //nolint:gosec // bounded by fileLimit

func (c *Cursor) EOF() bool { return c.Off >= c.Limit() }

// Rest returns the unread part of the window.
func (c *Cursor) Rest() []byte {
	if c.EOF() {
		return nil
	}
	return c.win[c.Off:]
}

// Peek returns 0 past the window.
func (c *Cursor) Peek() byte {
	if rest := c.Rest(); len(rest) > 0 {
		return rest[0]
	}
	return 0
}

// Peek2 reports ok=false unless two bytes remain.
func (c *Cursor) Peek2() (b0, b1 byte, ok bool) {
	rest := c.Rest()
	if len(rest) < 2 {
		return 0, 0, false
	}
	return rest[0], rest[1], true
}

func (c *Cursor) Bump() byte {
	b := c.Peek()
	if !c.EOF() {
		c.Off++
	}
	return b
}

func (c *Cursor) Eat(b byte) bool {
	if c.EOF() || c.win[c.Off] != b {
		return false
	}
	c.Off++
	return true
}

// Mark запоминает смещение для SpanFrom и Reset.
type Mark uint32

func (c *Cursor) Mark() Mark { return Mark(c.Off) }

func (c *Cursor) Reset(m Mark) { c.Off = uint32(m) }

func (c *Cursor) SpanFrom(m Mark) source.Span {
	return source.Span{File: c.file, Start: uint32(m), End: c.Off}
}
