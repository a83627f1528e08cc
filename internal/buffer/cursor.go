package buffer

// Cursor tracks the insertion point of a buffer. Vertical movement remembers
// the widest offset reached so short lines do not pull the cursor left for
// good.
type Cursor struct {
	Position
	buf    *Buffer
	sticky int
}

// MoveTo places the cursor at p if p is inside the buffer.
func (c *Cursor) MoveTo(p Position) bool {
	if !c.buf.InBounds(p) {
		return false
	}
	c.Position = p
	c.sticky = p.Offset
	return true
}

// MoveUp moves to the previous line, keeping the remembered column where it fits.
func (c *Cursor) MoveUp() bool {
	if c.Line == 0 {
		return false
	}
	c.moveToLine(c.Line - 1)
	return true
}

// MoveDown moves to the next line, keeping the remembered column where it fits.
func (c *Cursor) MoveDown() bool {
	if c.Line+1 >= c.buf.LineCount() {
		return false
	}
	c.moveToLine(c.Line + 1)
	return true
}

func (c *Cursor) moveToLine(n int) {
	offset := c.sticky
	if l := c.buf.LineLength(n); offset > l {
		offset = l
	}
	c.Position = Position{Line: n, Offset: offset}
}

// MoveLeft moves one grapheme left without leaving the line.
func (c *Cursor) MoveLeft() bool {
	if c.Offset == 0 {
		return false
	}
	return c.MoveTo(Position{Line: c.Line, Offset: c.Offset - 1})
}

// MoveRight moves one grapheme right, up to the end of the line.
func (c *Cursor) MoveRight() bool {
	return c.MoveTo(Position{Line: c.Line, Offset: c.Offset + 1})
}

func (c *Cursor) MoveToStartOfLine() {
	c.MoveTo(Position{Line: c.Line})
}

func (c *Cursor) MoveToEndOfLine() {
	c.MoveTo(Position{Line: c.Line, Offset: c.buf.LineLength(c.Line)})
}

func (c *Cursor) MoveToFirstLine() {
	c.MoveTo(Position{})
}

func (c *Cursor) MoveToLastLine() {
	c.MoveTo(Position{Line: c.buf.LineCount() - 1})
}
