package lexer

import (
	"decay/internal/source"
)

// point is a position in the input; copying it is how the lexer marks and
// rewinds. col counts code points from the start of the line.
type point struct {
	off  uint32
	line uint32
	col  uint32
}

type cursor struct {
	src  []byte
	file source.FileID
	point
}

func newCursor(f *source.File) cursor {
	u32(len(f.Content)) // файлы больше 4 GiB не поддерживаются
	return cursor{src: f.Content, file: f.ID, point: point{line: 1, col: 1}}
}

func (c *cursor) atEnd() bool { return int(c.off) >= len(c.src) }

func (c *cursor) rest() []byte {
	if c.atEnd() {
		return nil
	}
	return c.src[c.off:]
}

// advance consumes n bytes. '\n' starts a new line; UTF-8 continuation
// bytes do not move the column.
func (c *cursor) advance(n int) {
	end := min(int(c.off)+n, len(c.src))
	for _, b := range c.src[c.off:end] {
		if b == '\n' {
			c.line++
			c.col = 1
		} else if b&0xC0 != 0x80 {
			c.col++
		}
	}
	c.off = uint32(end)
}

func (c *cursor) rewind(p point) { c.point = p }

// span covers everything consumed since from.
func (c *cursor) span(from point) source.Span {
	return source.Span{File: c.file, Start: from.off, End: c.off}
}
