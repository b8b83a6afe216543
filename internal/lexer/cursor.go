package lexer

import (
	"fmt"

	"fortio.org/safecast"

	"github.com/Dobios/circt/internal/source"
)

// Cursor is a byte-level reader over a single source file.
type Cursor struct {
	file *source.File
	off  uint32
	end  uint32
}

func NewCursor(file *source.File) Cursor {
	end, err := safecast.Conv[uint32](len(file.Content))
	if err != nil {
		panic(fmt.Errorf("file too large: %w", err))
	}
	return Cursor{file: file, off: 0, end: end}
}

func (c *Cursor) EOF() bool {
	return c.off >= c.end
}

// Peek returns the current byte without consuming it, 0 at EOF.
func (c *Cursor) Peek() byte {
	if c.EOF() {
		return 0
	}
	return c.file.Content[c.off]
}

// PeekAt returns the byte n positions ahead, 0 past EOF.
func (c *Cursor) PeekAt(n uint32) byte {
	if c.off+n >= c.end {
		return 0
	}
	return c.file.Content[c.off+n]
}

// Bump consumes and returns the current byte, 0 at EOF.
func (c *Cursor) Bump() byte {
	if c.EOF() {
		return 0
	}
	b := c.file.Content[c.off]
	c.off++
	return b
}

func (c *Cursor) Offset() uint32 {
	return c.off
}

// SpanFrom builds a span from start to the current offset.
func (c *Cursor) SpanFrom(start uint32) source.Span {
	return source.Span{File: c.file.ID, Start: start, End: c.off}
}

// Slice returns the raw bytes between start and the current offset.
func (c *Cursor) Slice(start uint32) string {
	return string(c.file.Content[start:c.off])
}
